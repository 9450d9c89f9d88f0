package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockberries/execution/internal/logging"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "", nil, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8551", cfg.Addr)
	assert.Equal(t, DecodeJSON, cfg.Decode)
	assert.EqualValues(t, "status.test.near", cfg.Contract)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "execinspect.yaml")
	require.NoError(t, os.WriteFile(file, []byte("addr: 10.0.0.1:1\nsender: carol.test.near\ndecode: raw\n"), 0o600))

	t.Setenv("EXECINSPECT_ADDR", "10.0.0.2:2")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(DecodeField, DecodeJSON, "")
	require.NoError(t, flags.Parse([]string{"--decode", "base64"}))

	cfg, err := Load(New(), file, flags, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.2:2", cfg.Addr, "env beats file")
	assert.EqualValues(t, "carol.test.near", cfg.Sender)
	assert.Equal(t, DecodeBase64, cfg.Decode, "flag beats file")
}

func TestValidate(t *testing.T) {
	cfg := Config{Addr: "x:1", Decode: "yaml"}
	require.Error(t, cfg.Validate())

	cfg = Config{Addr: "x:1", Decode: DecodeJSON, Sender: "Bad Sender"}
	require.Error(t, cfg.Validate())

	cfg = Config{Decode: DecodeJSON}
	require.Error(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"), nil, logging.Nop())
	require.Error(t, err)
}
