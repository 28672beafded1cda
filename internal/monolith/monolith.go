// Package monolith provides the application container and module interface.
package monolith

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/fd1az/pairquote/internal/apperror"
	"github.com/fd1az/pairquote/internal/asset"
	"github.com/fd1az/pairquote/internal/config"
	"github.com/fd1az/pairquote/internal/di"
	"github.com/fd1az/pairquote/internal/logger"
)

// Names of the shared services every module may resolve.
const (
	ConfigService        = "config"
	LoggerService        = "logger"
	TokenRegistryService = "tokenRegistry"
)

// Monolith is the main application container providing access to shared infrastructure.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	TokenRegistry() *asset.Registry
	Services() di.ServiceRegistry
	// OnClose registers fn to run on Close, in reverse registration order.
	OnClose(fn func() error)
}

// Module represents a bounded context module that can register services and start up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

// app implements the Monolith interface.
type app struct {
	config        *config.Config
	logger        logger.LoggerInterface
	tokenRegistry *asset.Registry
	container     di.Container

	mu      sync.Mutex
	closers []func() error
}

// New creates a new Monolith instance. The token registry holds the
// well-known tokens plus those listed in cfg.Tokens.
func New(cfg *config.Config, log logger.LoggerInterface) (*app, error) {
	tokenRegistry := asset.DefaultRegistry()
	if err := registerTokens(tokenRegistry, cfg); err != nil {
		return nil, err
	}

	container := di.NewContainer()

	// Register global services
	container.Register(ConfigService, cfg)
	container.Register(LoggerService, log)
	container.Register(TokenRegistryService, tokenRegistry)

	return &app{
		config:        cfg,
		logger:        log,
		tokenRegistry: tokenRegistry,
		container:     container,
	}, nil
}

func registerTokens(r *asset.Registry, cfg *config.Config) error {
	for i, tc := range cfg.Tokens {
		network, ok := cfg.Networks[tc.Network]
		if !ok {
			return apperror.New(apperror.CodeUnknownNetwork, apperror.WithContext(fmt.Sprintf("tokens[%d]: %s", i, tc.Network)))
		}
		addr, err := asset.ParseAddress(tc.Address)
		if err != nil {
			return apperror.New(apperror.CodeInvalidAddress,
				apperror.WithContext(fmt.Sprintf("tokens[%d]", i)), apperror.WithCause(err))
		}
		t := asset.NewToken(network.ChainID, addr, uint8(tc.Decimals), tc.Symbol, tc.Name)
		if err := r.Register(t); err != nil {
			return apperror.New(apperror.CodeConfigurationError,
				apperror.WithContext(fmt.Sprintf("tokens[%d]", i)), apperror.WithCause(err))
		}
	}
	return nil
}

func (a *app) Config() *config.Config {
	return a.config
}

func (a *app) Logger() logger.LoggerInterface {
	return a.logger
}

func (a *app) TokenRegistry() *asset.Registry {
	return a.tokenRegistry
}

func (a *app) Services() di.ServiceRegistry {
	return a.container
}

// Container returns the DI container for module registration.
func (a *app) Container() di.Container {
	return a.container
}

func (a *app) OnClose(fn func() error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closers = append(a.closers, fn)
}

// RegisterModules registers all provided modules.
func (a *app) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts all provided modules.
func (a *app) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Close runs the close hooks, newest first, and returns all their errors.
func (a *app) Close() error {
	a.mu.Lock()
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()

	var err error
	for i := len(closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, closers[i]())
	}
	return err
}
