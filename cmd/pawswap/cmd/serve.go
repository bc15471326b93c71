package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/api"
	"github.com/paw-chain/pawswap/app/telemetry"
	"github.com/paw-chain/pawswap/pkg/sandbox"
)

const (
	flagChainID         = "chain-id"
	flagGenesis         = "genesis"
	flagHost            = "host"
	flagPort            = "port"
	flagCORSOrigins     = "cors-origins"
	flagRateLimitRPS    = "rate-limit-rps"
	flagShutdownTimeout = "shutdown-timeout"
	flagFaucet          = "faucet"
	flagFaucetMax       = "faucet-max-amount"

	flagTelemetryEnabled = "telemetry-enabled"
	flagOTLPEndpoint     = "otlp-endpoint"
	flagSampleRate       = "sample-rate"
	flagEnvironment      = "environment"
	flagOTelPrometheus   = "otel-prometheus"
)

// serveConfig is everything the serve command needs, resolved from flags,
// environment and config file.
type serveConfig struct {
	ChainID     string
	GenesisFile string
	API         api.Config
	Telemetry   telemetry.Config
}

// ServeCmd runs the paper-trading sandbox behind the HTTP API
func ServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an in-memory AMM sandbox behind the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cfg, err := loadServeConfig(v)
			if err != nil {
				return err
			}
			genesis, err := loadGenesis(cfg.GenesisFile)
			if err != nil {
				return err
			}

			provider, err := telemetry.NewProvider(cfg.Telemetry)
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := provider.Shutdown(ctx); err != nil {
					logger.Error("telemetry shutdown failed", "error", err)
				}
			}()

			sb, err := sandbox.New(logger, cfg.ChainID, *genesis)
			if err != nil {
				return err
			}
			server, err := api.NewServer(sb, &cfg.API, logger)
			if err != nil {
				return err
			}

			logger.Info("sandbox ready", "chain_id", cfg.ChainID, "pools", len(genesis.Pools))
			return server.Start(cmd.Context())
		},
	}

	defaults := api.DefaultConfig()
	f := cmd.Flags()
	f.String(flagChainID, "pawswap-sandbox", "chain id reported in block headers")
	f.String(flagGenesis, "", "amm genesis JSON to start from (default genesis if empty)")
	f.String(flagHost, defaults.Host, "listen host")
	f.String(flagPort, defaults.Port, "listen port")
	f.StringSlice(flagCORSOrigins, defaults.CORSOrigins, "allowed CORS origins")
	f.Int(flagRateLimitRPS, defaults.RateLimitRPS, "requests per second allowed per client IP")
	f.Duration(flagShutdownTimeout, defaults.ShutdownTimeout, "graceful shutdown timeout")
	f.Bool(flagFaucet, defaults.FaucetEnabled, "expose the minting faucet")
	f.Int64(flagFaucetMax, defaults.FaucetMaxAmount, "largest amount of one coin per faucet request (0 for no cap)")

	f.Bool(flagTelemetryEnabled, false, "export traces over OTLP")
	f.String(flagOTLPEndpoint, "localhost:4318", "OTLP/HTTP collector endpoint")
	f.Float64(flagSampleRate, 1.0, "trace sample rate in [0,1]")
	f.String(flagEnvironment, "development", "deployment environment attribute")
	f.Bool(flagOTelPrometheus, false, "also export OpenTelemetry metrics on /metrics")

	return cmd
}

// loadServeConfig resolves the serve settings out of v. Environment values
// arrive as strings, so every read goes through cast.
func loadServeConfig(v *viper.Viper) (serveConfig, error) {
	cfg := serveConfig{
		ChainID:     cast.ToString(v.Get(flagChainID)),
		GenesisFile: cast.ToString(v.Get(flagGenesis)),
		API:         *api.DefaultConfig(),
	}
	if cfg.ChainID == "" {
		return serveConfig{}, fmt.Errorf("%s cannot be empty", flagChainID)
	}

	var err error
	if host := cast.ToString(v.Get(flagHost)); host != "" {
		cfg.API.Host = host
	}
	if port := cast.ToString(v.Get(flagPort)); port != "" {
		cfg.API.Port = port
	}
	if raw := v.Get(flagCORSOrigins); raw != nil {
		if cfg.API.CORSOrigins, err = stringList(raw); err != nil {
			return serveConfig{}, fmt.Errorf("%s: %w", flagCORSOrigins, err)
		}
	}
	if raw := v.Get(flagRateLimitRPS); raw != nil {
		if cfg.API.RateLimitRPS, err = cast.ToIntE(raw); err != nil {
			return serveConfig{}, fmt.Errorf("%s: %w", flagRateLimitRPS, err)
		}
	}
	if raw := v.Get(flagShutdownTimeout); raw != nil {
		if cfg.API.ShutdownTimeout, err = cast.ToDurationE(raw); err != nil {
			return serveConfig{}, fmt.Errorf("%s: %w", flagShutdownTimeout, err)
		}
	}
	if raw := v.Get(flagFaucet); raw != nil {
		if cfg.API.FaucetEnabled, err = cast.ToBoolE(raw); err != nil {
			return serveConfig{}, fmt.Errorf("%s: %w", flagFaucet, err)
		}
	}
	if raw := v.Get(flagFaucetMax); raw != nil {
		if cfg.API.FaucetMaxAmount, err = cast.ToInt64E(raw); err != nil {
			return serveConfig{}, fmt.Errorf("%s: %w", flagFaucetMax, err)
		}
	}

	cfg.Telemetry = telemetry.Config{
		OTLPEndpoint: cast.ToString(v.Get(flagOTLPEndpoint)),
		Environment:  cast.ToString(v.Get(flagEnvironment)),
	}
	if cfg.Telemetry.Enabled, err = cast.ToBoolE(v.Get(flagTelemetryEnabled)); err != nil {
		return serveConfig{}, fmt.Errorf("%s: %w", flagTelemetryEnabled, err)
	}
	if cfg.Telemetry.SampleRate, err = cast.ToFloat64E(v.Get(flagSampleRate)); err != nil {
		return serveConfig{}, fmt.Errorf("%s: %w", flagSampleRate, err)
	}
	if cfg.Telemetry.PrometheusEnabled, err = cast.ToBoolE(v.Get(flagOTelPrometheus)); err != nil {
		return serveConfig{}, fmt.Errorf("%s: %w", flagOTelPrometheus, err)
	}
	return cfg, nil
}

// stringList accepts a list or a comma separated string
func stringList(raw any) ([]string, error) {
	if s, ok := raw.(string); ok {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	}
	return cast.ToStringSliceE(raw)
}
