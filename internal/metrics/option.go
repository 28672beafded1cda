package metrics

import (
	promclient "github.com/prometheus/client_golang/prometheus"
	metric2 "go.opentelemetry.io/otel/sdk/metric"
)

type Provider string

const (
	PrometheusProvider Provider = "prometheus"
	OtelCollector      Provider = "customOtelCollector"
	ManualReader       Provider = "manual"
	InsecureOtel                = false
	SecureOtel                  = true
)

func NewOtelCollectorConfig(url string, headers map[string]string, insecure bool) ProviderCfg {
	provider := ProviderCfg{
		Provider: OtelCollector,
		Endpoint: url,
		Headers:  headers,
		Insecure: insecure,
	}

	return provider
}

// NewReaderConfig plugs in an existing reader, e.g. a ManualReader in tests.
func NewReaderConfig(r metric2.Reader) ProviderCfg {
	return ProviderCfg{Provider: ManualReader, Reader: r}
}

type Config struct {
	ServiceName string
	Provider    []ProviderCfg
	Registerer  promclient.Registerer
}

func (c Config) registerer() promclient.Registerer {
	if c.Registerer != nil {
		return c.Registerer
	}
	return promclient.DefaultRegisterer
}

type ProviderCfg struct {
	Provider Provider
	Endpoint string
	Headers  map[string]string
	Insecure bool
	Reader   metric2.Reader
}

type OptionFn func(config Config) Config

func WithProviderConfig(provider ProviderCfg) OptionFn {
	return func(config Config) Config {
		config.Provider = append(config.Provider, provider)

		return config
	}
}

func WithServiceName(serviceName string) OptionFn {
	return func(config Config) Config {
		config.ServiceName = serviceName

		return config
	}
}

// WithRegisterer sends Prometheus metrics to r instead of the default registry.
func WithRegisterer(r promclient.Registerer) OptionFn {
	return func(config Config) Config {
		config.Registerer = r

		return config
	}
}

type PromServerConfig struct {
	host     string
	port     string
	gatherer promclient.Gatherer
}

type PromOptionFn func(config PromServerConfig) PromServerConfig

func WithPort(port string) PromOptionFn {
	return func(config PromServerConfig) PromServerConfig {
		config.port = port
		return config
	}
}

func WithHost(host string) PromOptionFn {
	return func(config PromServerConfig) PromServerConfig {
		config.host = host
		return config
	}
}

func WithGatherer(g promclient.Gatherer) PromOptionFn {
	return func(config PromServerConfig) PromServerConfig {
		config.gatherer = g
		return config
	}
}
