package runconfig

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultsAreValidOnceRecordFileIsSet(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "record-*.txt")
	assert.NoError(t, err)
	cfg := Defaults
	cfg.RecordFile = f.Name()
	assert.NoError(t, Validate(cfg))
}

func TestMissingRecordFileFailsValidation(t *testing.T) {
	cfg := Defaults
	cfg.RecordFile = "/no/such/file"
	assert.Error(t, Validate(cfg))
}

func TestZeroMaxChainSizeFailsValidation(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "record-*.txt")
	assert.NoError(t, err)
	cfg := Defaults
	cfg.RecordFile = f.Name()
	cfg.MaxChainSize = 0
	assert.Error(t, Validate(cfg))
}

func TestFromEnvOverlaysSetVariables(t *testing.T) {
	t.Setenv("DICTREC_MAX_CHAIN_SIZE", "42")
	cfg := FromEnv(Defaults)
	assert.Equal(t, 42, cfg.MaxChainSize)
}

func TestFromEnvIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("DICTREC_MAX_CHAIN_SIZE", "not-a-number")
	cfg := FromEnv(Defaults)
	assert.Equal(t, Defaults.MaxChainSize, cfg.MaxChainSize)
}
