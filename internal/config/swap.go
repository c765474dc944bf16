package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// SwapConfig holds configuration for the swap command.
type SwapConfig struct {
	RPCURL                  string
	ProgramID               string
	InputMint               string
	OutputMint              string
	Amount                  uint64
	MinAmountOut            uint64
	SourceTokenAccount      string
	DestinationTokenAccount string
	TokenTransferAuthority  string
	LogLevel                string
}

// LoadSwap merges config file, environment variables, and flags into
// SwapConfig.
func LoadSwap(cfgFile string, flags *pflag.FlagSet) (SwapConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("SPOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("rpc", "https://api.mainnet-beta.solana.com")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return SwapConfig{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return SwapConfig{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return SwapConfig{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := SwapConfig{
		RPCURL:                  v.GetString("rpc"),
		ProgramID:               v.GetString("program"),
		InputMint:               v.GetString("input"),
		OutputMint:              v.GetString("output"),
		Amount:                  v.GetUint64("amount"),
		MinAmountOut:            v.GetUint64("min-amount-out"),
		SourceTokenAccount:      v.GetString("source-token-account"),
		DestinationTokenAccount: v.GetString("destination-token-account"),
		TokenTransferAuthority:  v.GetString("authority"),
		LogLevel:                v.GetString("log-level"),
	}

	return cfg, nil
}
