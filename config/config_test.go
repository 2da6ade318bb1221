// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/luxfi/log"
	"github.com/luxfi/log/level"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func newConfig(t *testing.T, args ...string) (Config, error) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(fs)
	require.NoError(t, fs.Parse(args))

	v, err := BuildViper(fs)
	require.NoError(t, err)
	return NewConfig(v)
}

func TestFlags(t *testing.T) {
	require := require.New(t)

	programID := solana.NewWallet().PublicKey()
	router := solana.NewWallet().PublicKey()
	cfg, err := newConfig(t,
		"--"+ProgramIDKey, programID.String(),
		"--"+RouterKey, router.String(),
		"--"+ReplayProtectionKey,
	)
	require.NoError(err)
	require.Equal(programID, cfg.GetProgramID())
	require.Equal(router, cfg.GetRouter())
	require.Equal(defaultLogLevel, cfg.LogLevel)
	require.True(cfg.ReplayProtection)
	require.Equal(uint64(DefaultMetadataCacheSize), cfg.MetadataCacheSize)
}

func TestConfigFile(t *testing.T) {
	require := require.New(t)

	programID := solana.NewWallet().PublicKey()
	router := solana.NewWallet().PublicKey()
	path := filepath.Join(t.TempDir(), "config.json")
	contents := fmt.Sprintf(`{
	"program-id": %q,
	"router": %q,
	"log-level": "debug",
	"metadata-cache-size": 16
}`, programID, router)
	require.NoError(os.WriteFile(path, []byte(contents), 0o600))

	// Flags take precedence over the file.
	cfg, err := newConfig(t, "--"+ConfigFileKey, path, "--"+LogLevelKey, "warn")
	require.NoError(err)
	require.Equal(programID, cfg.GetProgramID())
	require.Equal(router, cfg.GetRouter())
	require.Equal("warn", cfg.LogLevel)
	require.False(cfg.ReplayProtection)
	require.Equal(uint64(16), cfg.MetadataCacheSize)
}

func TestEnvironment(t *testing.T) {
	require := require.New(t)

	programID := solana.NewWallet().PublicKey()
	router := solana.NewWallet().PublicKey()
	t.Setenv("PROGRAM_ID", programID.String())
	t.Setenv("ROUTER", router.String())

	cfg, err := newConfig(t)
	require.NoError(err)
	require.Equal(programID, cfg.GetProgramID())
	require.Equal(router, cfg.GetRouter())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			ProgramID:         solana.NewWallet().PublicKey().String(),
			Router:            solana.NewWallet().PublicKey().String(),
			LogLevel:          defaultLogLevel,
			MetadataCacheSize: 1,
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectedErr error
	}{
		{
			name: "valid",
		},
		{
			name:        "missing program id",
			mutate:      func(c *Config) { c.ProgramID = "" },
			expectedErr: errMissingProgramID,
		},
		{
			name:        "missing router",
			mutate:      func(c *Config) { c.Router = "" },
			expectedErr: errMissingRouter,
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			expectedErr: errInvalidLogLevel,
		},
		{
			name:        "zero cache size",
			mutate:      func(c *Config) { c.MetadataCacheSize = 0 },
			expectedErr: errInvalidCacheSize,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := valid()
			if test.mutate != nil {
				test.mutate(&cfg)
			}
			require.ErrorIs(t, cfg.Validate(), test.expectedErr)
		})
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		logLevel string
		expected log.Level
	}{
		{logLevel: "debug", expected: level.Debug},
		{logLevel: "info", expected: level.Info},
		{logLevel: "ERROR", expected: level.Error},
		{logLevel: "off", expected: level.Off},
	}
	for _, test := range tests {
		t.Run(test.logLevel, func(t *testing.T) {
			cfg := Config{
				ProgramID:         solana.NewWallet().PublicKey().String(),
				Router:            solana.NewWallet().PublicKey().String(),
				LogLevel:          test.logLevel,
				MetadataCacheSize: 1,
			}
			require.NoError(t, cfg.Validate())
			require.Equal(t, test.expected, cfg.GetLogLevel())
		})
	}

	cfg := Config{
		ProgramID:         solana.NewWallet().PublicKey().String(),
		Router:            solana.NewWallet().PublicKey().String(),
		LogLevel:          "loud",
		MetadataCacheSize: 1,
	}
	err := cfg.Validate()
	require.ErrorIs(t, err, errInvalidLogLevel)
	require.ErrorIs(t, err, log.ErrUnknownLevel)
}

func TestValidateMalformedKey(t *testing.T) {
	cfg := Config{
		ProgramID:         "not base58 0OIl",
		Router:            solana.NewWallet().PublicKey().String(),
		LogLevel:          defaultLogLevel,
		MetadataCacheSize: 1,
	}
	require.Error(t, cfg.Validate())
}
