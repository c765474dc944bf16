package state

import (
	"github.com/gagliardetto/solana-go"
)

// PDA seeds of the controller program's root accounts.
var (
	poolStateSeed    = []byte("pool-state")
	lstStateListSeed = []byte("lst-state-list")
	protocolFeeSeed  = []byte("protocol-fee")
)

// FindPoolStateAddress derives the pool state PDA for a controller program.
func FindPoolStateAddress(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{poolStateSeed}, programID)
}

// FindLstStateListAddress derives the LST state list PDA for a controller
// program.
func FindLstStateListAddress(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{lstStateListSeed}, programID)
}

// FindProtocolFeeAddress derives the protocol fee authority PDA, the wallet
// that owns the per-LST protocol fee accumulator token accounts.
func FindProtocolFeeAddress(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{protocolFeeSeed}, programID)
}

// CreateAtaAddress recreates an associated token account address from its
// stored bump, avoiding the find loop when the bump is already known.
func CreateAtaAddress(wallet, tokenProgram, mint solana.PublicKey, bump uint8) (solana.PublicKey, error) {
	return solana.CreateProgramAddress(
		[][]byte{wallet.Bytes(), tokenProgram.Bytes(), mint.Bytes(), {bump}},
		solana.SPLAssociatedTokenAccountProgramID,
	)
}
