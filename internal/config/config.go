// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// EnvPrefix prefixes every environment variable, e.g. PAIRQUOTE_APP_LOG_LEVEL.
const EnvPrefix = "PAIRQUOTE"

// Config holds all application configuration.
type Config struct {
	App            AppConfig                `mapstructure:"app"`
	Networks       map[string]NetworkConfig `mapstructure:"networks"`
	DefaultNetwork string                   `mapstructure:"default_network"`
	Tokens         []TokenConfig            `mapstructure:"tokens"`
	Cache          CacheConfig              `mapstructure:"cache"`
	Telemetry      TelemetryConfig          `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// NetworkConfig holds the factory constants of one deployment.
type NetworkConfig struct {
	ChainID        uint64 `mapstructure:"chain_id"`
	FactoryAddress string `mapstructure:"factory_address"`
	InitCodeHash   string `mapstructure:"init_code_hash"`
	FeeNumerator   uint64 `mapstructure:"fee_numerator"`
	FeeDenominator uint64 `mapstructure:"fee_denominator"`
}

// FactoryAddressHex returns the factory address as common.Address.
func (n NetworkConfig) FactoryAddressHex() common.Address {
	return common.HexToAddress(n.FactoryAddress)
}

// InitCodeHashHex returns the pair init code hash as common.Hash.
func (n NetworkConfig) InitCodeHashHex() common.Hash {
	return common.HexToHash(n.InitCodeHash)
}

// TokenConfig registers an extra token on a configured network.
type TokenConfig struct {
	Network  string `mapstructure:"network"`
	Address  string `mapstructure:"address"`
	Symbol   string `mapstructure:"symbol"`
	Name     string `mapstructure:"name"`
	Decimals uint   `mapstructure:"decimals"`
}

// CacheConfig tunes the pair address cache.
type CacheConfig struct {
	AddressTTL      time.Duration `mapstructure:"address_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	MaxEntries      int           `mapstructure:"max_entries"`
}

// Trace providers.
const (
	TraceConsole  = "console"
	TraceZipkin   = "zipkin"
	TraceOTLPGRPC = "otlp-grpc"
	TraceOTLPHTTP = "otlp-http"
	TraceNone     = "none"
)

// Metrics providers.
const (
	MetricsPrometheus = "prometheus"
	MetricsOTLP       = "otlp"
	MetricsNone       = "none"
)

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	ServiceName     string `mapstructure:"service_name"`
	TraceProvider   string `mapstructure:"trace_provider"`
	ZipkinEndpoint  string `mapstructure:"zipkin_endpoint"`
	OTLPEndpoint    string `mapstructure:"otlp_endpoint"`
	OTLPHeaders     string `mapstructure:"otlp_headers"`
	MetricsProvider string `mapstructure:"metrics_provider"`
	PrometheusPort  int    `mapstructure:"prometheus_port"`
}

// Headers parses OTLPHeaders ("k1=v1,k2=v2").
func (t TelemetryConfig) Headers() map[string]string {
	headers := make(map[string]string)
	for _, pair := range strings.Split(t.OTLPHeaders, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if ok && k != "" {
			headers[k] = v
		}
	}
	return headers
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "PAIRQUOTE_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "PAIRQUOTE_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "PAIRQUOTE_LOG_LEVEL", "LOG_LEVEL")

	v.BindEnv("default_network", "PAIRQUOTE_NETWORK", "PAIRQUOTE_DEFAULT_NETWORK")

	// Telemetry
	v.BindEnv("telemetry.enabled", "PAIRQUOTE_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "PAIRQUOTE_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "PAIRQUOTE_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
	v.BindEnv("telemetry.otlp_headers", "PAIRQUOTE_OTEL_HEADERS", "OTEL_EXPORTER_OTLP_HEADERS")
	v.BindEnv("telemetry.zipkin_endpoint", "PAIRQUOTE_ZIPKIN_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "pairquote")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Built-in deployments
	v.SetDefault("networks.mainnet.chain_id", 42161)
	v.SetDefault("networks.mainnet.factory_address", "0x3e40739d8478c58f9b973266974c58998d4f9e8b")
	v.SetDefault("networks.mainnet.init_code_hash", "0x1380cfdf0df827009c1a086d451af646c609434128cafc98e3aa6c812fb35354")
	v.SetDefault("networks.mainnet.fee_numerator", 9975)
	v.SetDefault("networks.mainnet.fee_denominator", 10000)

	v.SetDefault("networks.testnet.chain_id", 421613)
	v.SetDefault("networks.testnet.factory_address", "0x2eec20b56aeb2a20ad58fddb5b52c54d8bed3e1c")
	v.SetDefault("networks.testnet.init_code_hash", "0xb2a2004fadfb01ffc2282aebd766945a4af2055a101303b31e2fc932eeb87ca2")
	v.SetDefault("networks.testnet.fee_numerator", 9975)
	v.SetDefault("networks.testnet.fee_denominator", 10000)

	v.SetDefault("default_network", "mainnet")

	// Cache defaults
	v.SetDefault("cache.address_ttl", "10m")
	v.SetDefault("cache.cleanup_interval", "1m")
	v.SetDefault("cache.max_entries", 4096)

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "pairquote")
	v.SetDefault("telemetry.trace_provider", TraceConsole)
	v.SetDefault("telemetry.zipkin_endpoint", "http://localhost:9411/api/v2/spans")
	v.SetDefault("telemetry.metrics_provider", MetricsPrometheus)
	v.SetDefault("telemetry.prometheus_port", 9090)
}

var hashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// Validate validates the configuration and reports every problem found.
func (c *Config) Validate() error {
	var err error

	if len(c.Networks) == 0 {
		err = multierr.Append(err, fmt.Errorf("networks cannot be empty"))
	}
	for _, name := range c.NetworkNames() {
		err = multierr.Append(err, c.Networks[name].validate(name))
	}
	if _, ok := c.Networks[c.DefaultNetwork]; !ok {
		err = multierr.Append(err, fmt.Errorf("default_network %q is not configured", c.DefaultNetwork))
	}

	for i, t := range c.Tokens {
		if _, ok := c.Networks[t.Network]; !ok {
			err = multierr.Append(err, fmt.Errorf("tokens[%d]: unknown network %q", i, t.Network))
		}
		if !common.IsHexAddress(t.Address) || common.HexToAddress(t.Address) == (common.Address{}) {
			err = multierr.Append(err, fmt.Errorf("tokens[%d]: invalid address: %s", i, t.Address))
		}
		if t.Symbol == "" {
			err = multierr.Append(err, fmt.Errorf("tokens[%d]: symbol is required", i))
		}
		if t.Decimals > 255 {
			err = multierr.Append(err, fmt.Errorf("tokens[%d]: decimals %d exceed uint8", i, t.Decimals))
		}
	}

	if c.Cache.AddressTTL < 0 {
		err = multierr.Append(err, fmt.Errorf("cache.address_ttl cannot be negative"))
	}

	switch c.Telemetry.TraceProvider {
	case TraceConsole, TraceZipkin, TraceOTLPGRPC, TraceOTLPHTTP, TraceNone:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown telemetry.trace_provider: %s", c.Telemetry.TraceProvider))
	}
	switch c.Telemetry.MetricsProvider {
	case MetricsPrometheus, MetricsOTLP, MetricsNone:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown telemetry.metrics_provider: %s", c.Telemetry.MetricsProvider))
	}

	return err
}

func (n NetworkConfig) validate(name string) error {
	var err error
	if n.ChainID == 0 {
		err = multierr.Append(err, fmt.Errorf("networks.%s.chain_id is required", name))
	}
	if !common.IsHexAddress(n.FactoryAddress) {
		err = multierr.Append(err, fmt.Errorf("invalid networks.%s.factory_address: %s", name, n.FactoryAddress))
	}
	if !hashPattern.MatchString(n.InitCodeHash) {
		err = multierr.Append(err, fmt.Errorf("invalid networks.%s.init_code_hash: %s", name, n.InitCodeHash))
	}
	if n.FeeNumerator == 0 || n.FeeDenominator == 0 || n.FeeNumerator > n.FeeDenominator {
		err = multierr.Append(err, fmt.Errorf("invalid networks.%s fee: %d/%d", name, n.FeeNumerator, n.FeeDenominator))
	}
	return err
}

// NetworkNames returns the configured network names, sorted.
func (c *Config) NetworkNames() []string {
	names := make([]string, 0, len(c.Networks))
	for name := range c.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
