package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/mgild/spool/internal/config"
	"github.com/mgild/spool/internal/spool"
)

func runSwap(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadSwap(cfgFile, cmd.Flags())
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
	sourceAcc, err := solana.PublicKeyFromBase58(cfg.SourceTokenAccount)
	if err != nil {
		return fmt.Errorf("source token account: %w", err)
	}
	destAcc, err := solana.PublicKeyFromBase58(cfg.DestinationTokenAccount)
	if err != nil {
		return fmt.Errorf("destination token account: %w", err)
	}
	authority, err := solana.PublicKeyFromBase58(cfg.TokenTransferAuthority)
	if err != nil {
		return fmt.Errorf("authority: %w", err)
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

	ix, err := pool.SwapExactInInstruction(spool.SwapParams{
		Amount:                  cfg.Amount,
		MinAmountOut:            cfg.MinAmountOut,
		InputMint:               inputMint,
		OutputMint:              outputMint,
		SourceTokenAccount:      sourceAcc,
		DestinationTokenAccount: destAcc,
		TokenTransferAuthority:  authority,
	})
	if err != nil {
		return err
	}

	data, err := ix.Data()
	if err != nil {
		return err
	}
	accounts := make([]map[string]interface{}, 0, len(ix.Accounts()))
	for _, meta := range ix.Accounts() {
		accounts = append(accounts, map[string]interface{}{
			"pubkey":   meta.PublicKey.String(),
			"signer":   meta.IsSigner,
			"writable": meta.IsWritable,
		})
	}

	return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
		"program_id": ix.ProgramID().String(),
		"accounts":   accounts,
		"data":       base64.StdEncoding.EncodeToString(data),
	})
}
