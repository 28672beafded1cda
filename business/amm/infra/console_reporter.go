// Package infra contains infrastructure adapters for the amm context.
package infra

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/fd1az/pairquote/business/amm/app"
	"github.com/fd1az/pairquote/business/amm/domain"
	"github.com/fd1az/pairquote/internal/fraction"
)

const labelWidth = 16

// Price impact thresholds, in basis points, for coloring.
const (
	mediumImpactBps = 100
	highImpactBps   = 500
)

// ConsoleReporter implements app.Reporter for CLI output.
type ConsoleReporter struct {
	mu     sync.Mutex
	out    io.Writer
	styles styles
}

// NewConsoleReporter creates a ConsoleReporter writing to out, or to stdout
// if out is nil. Colors are dropped when out is not a terminal.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleReporter{
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

var _ app.Reporter = (*ConsoleReporter)(nil)

// ReportPair prints the pair address and reserves.
func (r *ConsoleReporter) ReportPair(_ context.Context, pair *domain.Pair) error {
	return r.print(r.styles.title.Render("PAIR "+pair.Token0().Symbol()+"/"+pair.Token1().Symbol()), r.pairRows(pair))
}

// ReportQuote prints the swap, its prices and the reserves after it.
func (r *ConsoleReporter) ReportQuote(_ context.Context, q *app.Quote) error {
	var b strings.Builder
	b.WriteString(r.row("Network", q.Network))
	b.WriteString(r.rowStyled("Pair", q.Pair.Address().Hex(), r.styles.muted))
	b.WriteString(r.row("Trade", q.TradeType.String()))
	b.WriteString(r.row("Amount in", q.AmountIn.String()))
	b.WriteString(r.row("Amount out", q.AmountOut.String()))

	b.WriteString(r.styles.section.Render("PRICES") + "\n")
	b.WriteString(r.row("Mid", q.MidPrice.String()))
	b.WriteString(r.row("Execution", q.ExecutionPrice.String()))
	b.WriteString(r.rowStyled("Price impact", q.PriceImpact.String(), r.impactStyle(q.PriceImpact)))
	b.WriteString(r.row("Fee", q.Pair.Deployment().Fee.String()))

	b.WriteString(r.styles.section.Render("RESERVES AFTER") + "\n")
	b.WriteString(r.row(q.PairAfter.Token0().Symbol(), q.PairAfter.Reserve0().ToExact()))
	b.WriteString(r.row(q.PairAfter.Token1().Symbol(), q.PairAfter.Reserve1().ToExact()))

	title := r.styles.title.Render(fmt.Sprintf("QUOTE %s -> %s", q.AmountIn.Token(), q.AmountOut.Token()))
	return r.print(title, b.String())
}

func (r *ConsoleReporter) pairRows(p *domain.Pair) string {
	var b strings.Builder
	b.WriteString(r.row("Network", p.Deployment().Name))
	b.WriteString(r.rowStyled("Address", p.Address().Hex(), r.styles.muted))
	b.WriteString(r.row(p.Token0().Symbol(), p.Reserve0().ToExact()))
	b.WriteString(r.row(p.Token1().Symbol(), p.Reserve1().ToExact()))
	if price, err := p.Token0Price(); err == nil {
		b.WriteString(r.row("Price", price.String()))
	}
	return b.String()
}

func (r *ConsoleReporter) row(label, value string) string {
	return r.rowStyled(label, value, r.styles.value)
}

func (r *ConsoleReporter) rowStyled(label, value string, style lipgloss.Style) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, r.styles.label.Render(label), style.Render(value)) + "\n"
}

func (r *ConsoleReporter) impactStyle(p fraction.Percent) lipgloss.Style {
	bps := p.BasisPoints().Int64()
	switch {
	case bps >= highImpactBps:
		return r.styles.high
	case bps >= mediumImpactBps:
		return r.styles.medium
	default:
		return r.styles.low
	}
}

func (r *ConsoleReporter) print(title, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	content := lipgloss.JoinVertical(lipgloss.Left, title, strings.TrimRight(body, "\n"))
	_, err := fmt.Fprintln(r.out, r.styles.box.Render(content))
	return err
}
