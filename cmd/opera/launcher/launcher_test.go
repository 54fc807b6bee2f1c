package launcher

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/urfave/cli.v1"
)

func TestDefaultConfigHasSaneValues(t *testing.T) {
	cfg := defaultConfig()
	require.Equal(t, "go-opera", cfg.Node.Name)
	require.Equal(t, 18545, cfg.Node.RPC.HTTPPort)
	require.Equal(t, "fakenet", cfg.Opera.NetworkName)
	require.False(t, cfg.Opera.FakeNet)
}

func TestMakeAllConfigsAppliesCLIOverrides(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("datadir", t.TempDir(), "")
	set.Bool("http", true, "")
	set.Bool("fakenet", true, "")
	ctx := cli.NewContext(nil, set, nil)
	require.NoError(t, set.Parse([]string{"-datadir", set.Lookup("datadir").Value.String(), "-http", "-fakenet"}))

	cfg := MakeAllConfigs(ctx)
	require.True(t, cfg.Node.RPC.HTTPEnabled)
	require.True(t, cfg.Opera.FakeNet)
	require.Equal(t, "fakenet", cfg.Opera.NetworkName)
}

func TestSetupLoggingWithoutSentryDSN(t *testing.T) {
	log := SetupLogging(LoggingConfig{Verbosity: 3, Format: "text"})
	require.NotNil(t, log)
}

func TestRunActionConfiguresLoggerAndNetwork(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("datadir", t.TempDir(), "")
	ctx := cli.NewContext(nil, set, nil)

	require.NoError(t, runAction(ctx))
}
