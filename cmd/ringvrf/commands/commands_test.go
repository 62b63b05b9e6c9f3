package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) error {
	RootCmd.SetArgs(args)
	return RootCmd.Execute()
}

func TestDecodeKeyCmd(t *testing.T) {
	assert := assert.New(t)

	assert.Nil(run("decode-key", "--log-level", "none",
		"5e465beb01dbafe160ce8216047f2155dd0569f058afd52dcea601025a8d161d",
		"3d5e5a51aab2b048f8686ecd79712a80e3265a114cc73f14bdb2a59233fb66d0"))
	assert.Error(run("decode-key", "--log-level", "none", "00"))
	assert.Error(run("decode-key", "--log-level", "none", "zz"))
}

func TestConfigFromEnv(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("RINGVRF_RING_SIZE", "6")
	t.Setenv("RINGVRF_SRS_PATH", filepath.Join(t.TempDir(), "missing.bin"))
	initConfig()
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(6, cfg.RingSize)

	_, _, err = newRegistry()
	assert.Error(err)
}

func TestVersionCmd(t *testing.T) {
	assert.Nil(t, run("version"))
}
