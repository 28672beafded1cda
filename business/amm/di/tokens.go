// Package di contains dependency injection tokens for the amm context.
package di

import (
	"github.com/fd1az/pairquote/business/amm/app"
	"github.com/fd1az/pairquote/internal/di"
)

// Public service tokens - exposed to other modules
var (
	QuoteService = di.NewToken[*app.QuoteService]("amm.QuoteService")
)

// Private dependency tokens - internal to amm module
var (
	Book     = di.NewToken[*app.Book]("amm:book")
	Reporter = di.NewToken[app.Reporter]("amm:reporter")
)

// Helper functions for type-safe access
func GetQuoteService(c di.ServiceRegistry) *app.QuoteService {
	return di.GetToken(c, QuoteService)
}

func GetBook(c di.ServiceRegistry) *app.Book {
	return di.GetToken(c, Book)
}

func GetReporter(c di.ServiceRegistry) app.Reporter {
	return di.GetToken(c, Reporter)
}
