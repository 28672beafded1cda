// Package amm implements the constant-product pair bounded context: pair
// addresses, swap quotes and liquidity math.
package amm

import (
	"context"
	"io"
	"os"

	"github.com/fd1az/pairquote/business/amm/app"
	ammDI "github.com/fd1az/pairquote/business/amm/di"
	"github.com/fd1az/pairquote/business/amm/infra"
	"github.com/fd1az/pairquote/internal/asset"
	"github.com/fd1az/pairquote/internal/config"
	"github.com/fd1az/pairquote/internal/di"
	"github.com/fd1az/pairquote/internal/logger"
	"github.com/fd1az/pairquote/internal/monolith"
)

// Module implements the amm bounded context.
type Module struct {
	// Out receives reports. Defaults to stdout.
	Out io.Writer
}

// RegisterServices registers all amm services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register Book (private - internal dependency)
	di.RegisterToken(c, ammDI.Book, func(sr di.ServiceRegistry) *app.Book {
		cfg := sr.Get(monolith.ConfigService).(*config.Config)

		book, err := app.NewBookFromConfig(cfg)
		if err != nil {
			panic("failed to create deployment book: " + err.Error())
		}
		return book
	})

	// Register Reporter (private - internal dependency)
	di.RegisterToken(c, ammDI.Reporter, func(sr di.ServiceRegistry) app.Reporter {
		out := m.Out
		if out == nil {
			out = os.Stdout
		}
		return infra.NewConsoleReporter(out)
	})

	// Register QuoteService (public - exposed to other modules)
	di.RegisterToken(c, ammDI.QuoteService, func(sr di.ServiceRegistry) *app.QuoteService {
		cfg := sr.Get(monolith.ConfigService).(*config.Config)
		log := sr.Get(monolith.LoggerService).(logger.LoggerInterface)
		tokens := sr.Get(monolith.TokenRegistryService).(*asset.Registry)

		svc, err := app.NewQuoteService(
			ammDI.GetBook(sr),
			tokens,
			ammDI.GetReporter(sr),
			log,
			app.WithAddressCache(cfg.Cache.AddressTTL, cfg.Cache.CleanupInterval, cfg.Cache.MaxEntries),
		)
		if err != nil {
			panic("failed to create quote service: " + err.Error())
		}
		return svc
	})

	return nil
}

// Startup builds the quote service and logs the configured networks.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()

	svc := ammDI.GetQuoteService(mono.Services())
	mono.OnClose(func() error {
		svc.Close()
		return nil
	})

	book := svc.Book()
	for _, name := range book.Names() {
		d, err := book.Deployment(name)
		if err != nil {
			return err
		}
		log.Info(ctx, "network configured",
			"network", name,
			"chain_id", d.ChainID,
			"factory", d.Factory.Hex(),
			"fee", d.Fee.String(),
			"default", name == book.Default(),
		)
	}

	log.Info(ctx, "amm module started", "tokens", mono.TokenRegistry().Count())
	return nil
}
