package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mgild/spool/internal/catalog"
	"github.com/mgild/spool/internal/chain"
	"github.com/mgild/spool/internal/config"
	"github.com/mgild/spool/internal/spool"
)

func main() {
	root := &cobra.Command{
		Use:          "spool",
		Short:        "S-pool quoting and swap assembly",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote an exact-in swap against the pool",
		RunE:  runQuote,
	}

	quoteCmd.Flags().String("rpc", "", "Solana RPC URL")
	quoteCmd.Flags().String("program", "", "pool controller program id")
	quoteCmd.Flags().String("input", "", "input LST mint")
	quoteCmd.Flags().String("output", "", "output LST mint")
	quoteCmd.Flags().Uint64("amount", 0, "input amount in native LST units")
	quoteCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(quoteCmd)

	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the accounts the pool mirror refreshes from",
		RunE:  runAccounts,
	}

	accountsCmd.Flags().String("rpc", "", "Solana RPC URL")
	accountsCmd.Flags().String("program", "", "pool controller program id")
	accountsCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(accountsCmd)

	swapCmd := &cobra.Command{
		Use:   "swap",
		Short: "Assemble a SwapExactIn instruction",
		RunE:  runSwap,
	}

	swapCmd.Flags().String("rpc", "", "Solana RPC URL")
	swapCmd.Flags().String("program", "", "pool controller program id")
	swapCmd.Flags().String("input", "", "input LST mint")
	swapCmd.Flags().String("output", "", "output LST mint")
	swapCmd.Flags().Uint64("amount", 0, "input amount in native LST units")
	swapCmd.Flags().Uint64("min-amount-out", 0, "minimum output amount")
	swapCmd.Flags().String("source-token-account", "", "user token account for the input LST")
	swapCmd.Flags().String("destination-token-account", "", "user token account for the output LST")
	swapCmd.Flags().String("authority", "", "token transfer authority")
	swapCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(swapCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runQuote(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	inputMint, err := solana.PublicKeyFromBase58(cfg.InputMint)
	if err != nil {
		return fmt.Errorf("input mint: %w", err)
	}
	outputMint, err := solana.PublicKeyFromBase58(cfg.OutputMint)
	if err != nil {
		return fmt.Errorf("output mint: %w", err)
	}
	if cfg.Amount == 0 {
		return fmt.Errorf("amount is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, client, err := buildPool(ctx, cfg.RPCURL, cfg.ProgramID, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	quote, err := pool.QuoteExactIn(spool.QuoteParams{
		Amount:     cfg.Amount,
		InputMint:  inputMint,
		OutputMint: outputMint,
	})
	if err != nil {
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
		"in_amount":            quote.InAmount,
		"out_amount":           quote.OutAmount,
		"fee_mint":             quote.FeeMint.String(),
		"fee_amount":           quote.FeeAmount,
		"fee_pct":              quote.FeePct.String(),
		"not_enough_liquidity": quote.NotEnoughLiquidity,
	})
}

func runAccounts(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, client, err := buildPool(ctx, cfg.RPCURL, cfg.ProgramID, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	for _, key := range pool.AccountsToUpdate() {
		fmt.Println(key.String())
	}
	return nil
}

// buildPool constructs a pool mirror from the on-chain state and runs one
// refresh round so quotes see current calculator rates and reserves.
func buildPool(ctx context.Context, rpcURL, program string, logger *zap.Logger) (*spool.SPool, *chain.Client, error) {
	if rpcURL == "" {
		return nil, nil, fmt.Errorf("rpc url is required")
	}
	programID, err := solana.PublicKeyFromBase58(program)
	if err != nil {
		return nil, nil, fmt.Errorf("program id: %w", err)
	}

	client := chain.NewClient(rpcURL)

	lstStateList, poolState, err := spool.InitAccounts(programID)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	roots, err := client.FetchAccounts(ctx, []solana.PublicKey{lstStateList, poolState})
	if err != nil {
		client.Close()
		return nil, nil, err
	}

	pool, err := spool.NewFromFetchedAccounts(programID, roots, catalog.Default(), logger)
	if err != nil {
		client.Close()
		return nil, nil, err
	}

	snapshot, err := client.FetchAccounts(ctx, pool.AccountsToUpdate())
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	if err := pool.Update(snapshot); err != nil {
		client.Close()
		return nil, nil, err
	}

	logger.Info("pool mirror ready",
		zap.String("program", programID.String()),
		zap.Int("reserve_mints", len(pool.ReserveMints())),
	)

	return pool, client, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
