package commands

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/MixinNetwork/ringvrf-go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	logger  = ringvrf.NewNopLogger()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "ringvrf",
	Short: "Verify Bandersnatch ring VRF signatures",
	Long: `ringvrf decodes Bandersnatch public keys, builds ring commitments and
verifies anonymous ring VRF signatures and their IETF counterparts.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		l, err := ringvrf.NewLogger(os.Stderr, viper.GetString("log_level"))
		if err != nil {
			return err
		}
		logger = l.With("module", "main")
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	def := ringvrf.DefaultConfig()
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ringvrf.yaml)")
	flags.String("srs", def.SRSPath, "path to the uncompressed KZG parameters")
	flags.Int("ring-size", def.RingSize, "number of ring slots")
	flags.String("log-level", def.LogLevel, "debug, info, error or none")
	flags.Int("cache-size", def.CacheSize, "number of ring commitments kept in memory")

	for key, flag := range map[string]string{
		"srs_path":   "srs",
		"ring_size":  "ring-size",
		"log_level":  "log-level",
		"cache_size": "cache-size",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("RINGVRF")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "failed reading config file %s: %v\n", viper.ConfigFileUsed(), err)
			os.Exit(1)
		}
		return
	}
	viper.SetConfigName(".ringvrf")
	viper.AddConfigPath("$HOME")
	viper.ReadInConfig() //nolint:errcheck
}

func loadConfig() (*ringvrf.Config, error) {
	cfg := ringvrf.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	return cfg, cfg.Validate()
}

func newRegistry() (*ringvrf.Registry, *ringvrf.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	r, err := ringvrf.NewRegistryFromConfig(cfg, ringvrf.WithLogger(logger.With("module", "ringvrf")))
	return r, cfg, err
}

// decodeRing decodes comma separated hex keys. An empty entry or "padding"
// marks a padding slot.
func decodeRing(r *ringvrf.Registry, list string) ([]ringvrf.KeyHandle, error) {
	parts := strings.Split(list, ",")
	ring := make([]ringvrf.KeyHandle, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == "padding" {
			continue
		}
		buf, err := hex.DecodeString(p)
		if err != nil {
			return nil, errors.Wrapf(err, "ring key %d", i)
		}
		h, ok := r.DecodePublicKey(buf)
		if !ok {
			return nil, errors.Errorf("ring key %d is not a valid public key", i)
		}
		ring[i] = h
	}
	return ring, nil
}

func hexFlag(cmd *cobra.Command, name string) ([]byte, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, err
	}
	buf, err := hex.DecodeString(s)
	return buf, errors.Wrap(err, name)
}
