package config

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RPCURL == "" {
		t.Fatalf("rpc url default missing")
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFlagsOverride(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("rpc", "", "")
	flags.String("program", "", "")
	flags.Uint64("amount", 0, "")
	flags.String("log-level", "info", "")
	if err := flags.Parse([]string{
		"--rpc", "http://localhost:8899",
		"--program", "abc",
		"--amount", "123",
		"--log-level", "debug",
	}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RPCURL != "http://localhost:8899" {
		t.Fatalf("rpc = %q", cfg.RPCURL)
	}
	if cfg.ProgramID != "abc" {
		t.Fatalf("program = %q", cfg.ProgramID)
	}
	if cfg.Amount != 123 {
		t.Fatalf("amount = %d", cfg.Amount)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}
}
