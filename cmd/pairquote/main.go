// Package main is the entry point for the pairquote CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fd1az/pairquote/business/amm"
	"github.com/fd1az/pairquote/business/amm/app"
	ammDI "github.com/fd1az/pairquote/business/amm/di"
	"github.com/fd1az/pairquote/business/amm/domain"
	"github.com/fd1az/pairquote/internal/apm"
	"github.com/fd1az/pairquote/internal/apperror"
	"github.com/fd1az/pairquote/internal/config"
	"github.com/fd1az/pairquote/internal/logger"
	"github.com/fd1az/pairquote/internal/monolith"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// options holds the parsed command line.
type options struct {
	configPath  string
	network     string
	tokenA      string
	tokenB      string
	reserveA    string
	reserveB    string
	amount      string
	tokenIn     string
	trade       string
	addressOnly bool
}

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.network, "network", "", "Network name (default: configured default_network)")
	flag.StringVar(&opts.tokenA, "token-a", "", "First token, by symbol or address")
	flag.StringVar(&opts.tokenB, "token-b", "", "Second token, by symbol or address")
	flag.StringVar(&opts.reserveA, "reserve-a", "", "Reserve of token-a, in whole tokens")
	flag.StringVar(&opts.reserveB, "reserve-b", "", "Reserve of token-b, in whole tokens")
	flag.StringVar(&opts.amount, "amount", "", "Trade amount in whole tokens; omit to print the pair only")
	flag.StringVar(&opts.tokenIn, "token-in", "", "Token sold (default: token-a). The amount is in this token for exact-input, in the other for exact-output")
	flag.StringVar(&opts.trade, "trade", "exact-input", "Trade type: exact-input or exact-output")
	flag.BoolVar(&opts.addressOnly, "address-only", false, "Print the pair address and exit")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pairquote %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(apperror.ExitCode(err))
	}
}

func run(ctx context.Context, opts options) error {
	if opts.tokenA == "" || opts.tokenB == "" {
		return apperror.Validation(apperror.CodeRequiredField, "-token-a and -token-b")
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return apperror.New(apperror.CodeConfigurationError, apperror.WithCause(err), apperror.WithContext(err.Error()))
	}

	log := logger.New(os.Stderr, logger.ParseLevel(cfg.App.LogLevel), cfg.App.Name, apm.TraceIDFromContext)
	log.Debug(ctx, "starting pairquote", "version", version, "environment", cfg.App.Environment)

	if cfg.Telemetry.Enabled {
		shutdown, err := setupTelemetry(ctx, cfg.Telemetry, log)
		if err != nil {
			return fmt.Errorf("failed to set up telemetry: %w", err)
		}
		defer func() {
			if serr := shutdown(context.WithoutCancel(ctx)); serr != nil {
				log.Warn(ctx, "telemetry shutdown failed", "error", serr)
			}
		}()
	}

	// Create monolith (application container)
	mono, err := monolith.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create monolith: %w", err)
	}
	defer func() {
		if cerr := mono.Close(); cerr != nil {
			log.Warn(ctx, "close failed", "error", cerr)
		}
	}()

	modules := []monolith.Module{
		&amm.Module{},
	}

	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	svc := ammDI.GetQuoteService(mono.Services())
	return quote(ctx, svc, opts)
}

func quote(ctx context.Context, svc *app.QuoteService, opts options) error {
	tokenA, err := svc.ResolveToken(ctx, opts.network, opts.tokenA)
	if err != nil {
		return err
	}
	tokenB, err := svc.ResolveToken(ctx, opts.network, opts.tokenB)
	if err != nil {
		return err
	}

	if opts.addressOnly {
		addr, err := svc.PairAddress(ctx, opts.network, tokenA, tokenB)
		if err != nil {
			return err
		}
		fmt.Println(addr.Hex())
		return nil
	}

	if opts.reserveA == "" || opts.reserveB == "" {
		return apperror.Validation(apperror.CodeRequiredField, "-reserve-a and -reserve-b, unless -address-only is set")
	}
	reserveA, err := svc.ParseAmount(ctx, opts.network, opts.tokenA, opts.reserveA)
	if err != nil {
		return err
	}
	reserveB, err := svc.ParseAmount(ctx, opts.network, opts.tokenB, opts.reserveB)
	if err != nil {
		return err
	}
	snapshot := app.SnapshotRequest{Network: opts.network, ReserveA: reserveA, ReserveB: reserveB}

	if opts.amount == "" {
		_, err := svc.Snapshot(ctx, snapshot)
		return err
	}

	tradeType, err := domain.ParseTradeType(opts.trade)
	if err != nil {
		return apperror.Validation(apperror.CodeInvalidInput, err.Error())
	}

	in, out := opts.tokenA, opts.tokenB
	if opts.tokenIn != "" {
		tokenIn, err := svc.ResolveToken(ctx, opts.network, opts.tokenIn)
		if err != nil {
			return err
		}
		switch {
		case tokenIn.Equals(tokenA):
		case tokenIn.Equals(tokenB):
			in, out = opts.tokenB, opts.tokenA
		default:
			return apperror.Validation(apperror.CodeTokenNotInPair, "-token-in "+opts.tokenIn)
		}
	}

	amountRef := in
	if tradeType == domain.ExactOutput {
		amountRef = out
	}
	amount, err := svc.ParseAmount(ctx, opts.network, amountRef, opts.amount)
	if err != nil {
		return err
	}

	_, err = svc.Quote(ctx, app.QuoteRequest{
		SnapshotRequest: snapshot,
		TradeType:       tradeType,
		Amount:          amount,
	})
	return err
}
