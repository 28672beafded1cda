package app

import (
	"fmt"
	"sort"

	"github.com/fd1az/pairquote/business/amm/domain"
	"github.com/fd1az/pairquote/internal/apperror"
	"github.com/fd1az/pairquote/internal/config"
)

// Book holds the known deployments by network name.
type Book struct {
	deployments map[string]domain.Deployment
	defaultName string
}

// NewBook validates every deployment and the default name.
func NewBook(defaultName string, deployments ...domain.Deployment) (*Book, error) {
	b := &Book{deployments: make(map[string]domain.Deployment, len(deployments)), defaultName: defaultName}
	for _, d := range deployments {
		if err := d.Validate(); err != nil {
			return nil, apperror.New(apperror.CodeConfigurationError, apperror.WithCause(err), apperror.WithContext(d.Name))
		}
		if _, dup := b.deployments[d.Name]; dup {
			return nil, apperror.New(apperror.CodeConfigurationError, apperror.WithContext("duplicate network "+d.Name))
		}
		b.deployments[d.Name] = d
	}
	if _, ok := b.deployments[defaultName]; !ok {
		return nil, apperror.New(apperror.CodeUnknownNetwork, apperror.WithContext("default network "+defaultName))
	}
	return b, nil
}

// NewBookFromConfig builds a book from the networks section.
func NewBookFromConfig(cfg *config.Config) (*Book, error) {
	deployments := make([]domain.Deployment, 0, len(cfg.Networks))
	for _, name := range cfg.NetworkNames() {
		d, err := DeploymentFromConfig(name, cfg.Networks[name])
		if err != nil {
			return nil, err
		}
		deployments = append(deployments, d)
	}
	return NewBook(cfg.DefaultNetwork, deployments...)
}

// DeploymentFromConfig converts one configured network.
func DeploymentFromConfig(name string, n config.NetworkConfig) (domain.Deployment, error) {
	fee, err := domain.NewFee(n.FeeNumerator, n.FeeDenominator)
	if err != nil {
		return domain.Deployment{}, apperror.New(apperror.CodeConfigurationError,
			apperror.WithCause(err), apperror.WithContext(fmt.Sprintf("network %s", name)))
	}
	return domain.Deployment{
		Name:         name,
		ChainID:      n.ChainID,
		Factory:      n.FactoryAddressHex(),
		InitCodeHash: n.InitCodeHashHex(),
		Fee:          fee,
	}, nil
}

// Deployment returns the named deployment; "" means the default.
func (b *Book) Deployment(name string) (domain.Deployment, error) {
	if name == "" {
		name = b.defaultName
	}
	d, ok := b.deployments[name]
	if !ok {
		return domain.Deployment{}, apperror.NotFound(apperror.CodeUnknownNetwork, name)
	}
	return d, nil
}

func (b *Book) Default() string { return b.defaultName }

// Names returns the network names, sorted.
func (b *Book) Names() []string {
	names := make([]string, 0, len(b.deployments))
	for name := range b.deployments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
