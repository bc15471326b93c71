package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/amm/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestQuoteSwap(t *testing.T) {
	out, err := execute(t, "quote", "swap", "1000", "1000", "100")
	require.NoError(t, err)

	var quote types.SwapQuote
	require.NoError(t, json.Unmarshal([]byte(out), &quote))
	require.Equal(t, "90", quote.AmountOut.String())
	require.Equal(t, "1100", quote.NewReserveIn.String())
	require.Equal(t, "910", quote.NewReserveOut.String())
}

func TestQuoteSwapZeroFee(t *testing.T) {
	out, err := execute(t, "quote", "swap", "1000", "1000", "100", "--fee", "0/1")
	require.NoError(t, err)

	var quote types.SwapQuote
	require.NoError(t, json.Unmarshal([]byte(out), &quote))
	require.Equal(t, "90", quote.AmountOut.String())
}

func TestQuoteSwapExactOutput(t *testing.T) {
	out, err := execute(t, "quote", "swap-exact-output", "1000", "1000", "90")
	require.NoError(t, err)

	var quote types.SwapQuote
	require.NoError(t, json.Unmarshal([]byte(out), &quote))
	require.Equal(t, "100", quote.AmountIn.String())
}

func TestQuoteLiquidity(t *testing.T) {
	out, err := execute(t, "quote", "initial-deposit", "100", "400")
	require.NoError(t, err)
	var initial types.DepositQuote
	require.NoError(t, json.Unmarshal([]byte(out), &initial))
	require.Equal(t, "200", initial.Shares.String())

	out, err = execute(t, "quote", "deposit", "100", "400", "200", "10")
	require.NoError(t, err)
	var deposit types.DepositQuote
	require.NoError(t, json.Unmarshal([]byte(out), &deposit))
	require.Equal(t, "40", deposit.AmountB.String())
	require.Equal(t, "20", deposit.Shares.String())

	out, err = execute(t, "quote", "withdraw", "100", "400", "200", "50")
	require.NoError(t, err)
	var withdrawal map[string]math.Int
	require.NoError(t, json.Unmarshal([]byte(out), &withdrawal))
	require.Equal(t, "25", withdrawal["amount_a"].String())
	require.Equal(t, "100", withdrawal["amount_b"].String())

	out, err = execute(t, "quote", "spot-price", "100", "400")
	require.NoError(t, err)
	var price map[string]math.LegacyDec
	require.NoError(t, json.Unmarshal([]byte(out), &price))
	require.True(t, price["price"].Equal(math.LegacyNewDec(4)))
}

func TestQuoteRejections(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"not a number", []string{"quote", "swap", "1000", "lots", "100"}},
		{"missing argument", []string{"quote", "swap", "1000", "1000"}},
		{"malformed fee", []string{"quote", "swap", "1000", "1000", "100", "--fee", "0.3%"}},
		{"fee of one", []string{"quote", "swap", "1000", "1000", "100", "--fee", "5/5"}},
		{"empty pool", []string{"quote", "swap", "0", "1000", "100"}},
		{"withdraw too much", []string{"quote", "withdraw", "100", "400", "200", "201"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			require.Error(t, err)
		})
	}
}

func TestParseFee(t *testing.T) {
	fee, err := parseFee("3/1000")
	require.NoError(t, err)
	require.Equal(t, types.DefaultFee(), fee)

	fee, err = parseFee(" 1 / 100 ")
	require.NoError(t, err)
	require.Equal(t, types.NewFee(1, 100), fee)

	_, err = parseFee("1/0")
	require.ErrorIs(t, err, types.ErrInvalidFee)
	_, err = parseFee("-1/100")
	require.Error(t, err)
}

func TestGenesisCommands(t *testing.T) {
	out, err := execute(t, "genesis", "default")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "genesis.json")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))

	out, err = execute(t, "genesis", "validate", path)
	require.NoError(t, err)
	require.Contains(t, out, "is valid: 0 pools")

	require.NoError(t, os.WriteFile(path, []byte(`{"next_pool_id": 0}`), 0o600))
	_, err = execute(t, "genesis", "validate", path)
	require.Error(t, err)
}

func TestLoadServeConfigFromEnv(t *testing.T) {
	t.Setenv("PAWSWAP_CORS_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("PAWSWAP_RATE_LIMIT_RPS", "7")
	t.Setenv("PAWSWAP_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("PAWSWAP_FAUCET", "false")
	t.Setenv("PAWSWAP_SAMPLE_RATE", "0.25")

	v := viper.New()
	require.NoError(t, initViper(v, ServeCmd(v)))

	cfg, err := loadServeConfig(v)
	require.NoError(t, err)
	require.Equal(t, "pawswap-sandbox", cfg.ChainID)
	require.Equal(t, "5000", cfg.API.Port)
	require.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.API.CORSOrigins)
	require.Equal(t, 7, cfg.API.RateLimitRPS)
	require.Equal(t, 3*time.Second, cfg.API.ShutdownTimeout)
	require.False(t, cfg.API.FaucetEnabled)
	require.False(t, cfg.Telemetry.Enabled)
	require.InDelta(t, 0.25, cfg.Telemetry.SampleRate, 1e-9)
}

func TestLoadServeConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pawswap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"6001\"\nfaucet-max-amount: 50\n"), 0o600))
	t.Setenv("PAWSWAP_CONFIG", path)

	v := viper.New()
	require.NoError(t, initViper(v, ServeCmd(v)))

	cfg, err := loadServeConfig(v)
	require.NoError(t, err)
	require.Equal(t, "6001", cfg.API.Port)
	require.Equal(t, int64(50), cfg.API.FaucetMaxAmount)
	require.True(t, cfg.API.FaucetEnabled)
}

func TestLoadServeConfigRejectsBadValues(t *testing.T) {
	t.Setenv("PAWSWAP_RATE_LIMIT_RPS", "fast")

	v := viper.New()
	require.NoError(t, initViper(v, ServeCmd(v)))

	_, err := loadServeConfig(v)
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	v := viper.New()
	v.Set(flagLogLevel, "debug")
	v.Set(flagLogFormat, "json")
	_, err := newLogger(v, new(bytes.Buffer))
	require.NoError(t, err)

	v.Set(flagLogLevel, "loud")
	_, err = newLogger(v, new(bytes.Buffer))
	require.Error(t, err)

	v.Set(flagLogLevel, "info")
	v.Set(flagLogFormat, "xml")
	_, err = newLogger(v, new(bytes.Buffer))
	require.Error(t, err)
}
