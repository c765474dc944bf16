package spool

import (
	"github.com/gagliardetto/solana-go"

	"github.com/mgild/spool/internal/accounts"
)

// Amm is the host-facing surface of a pool mirror: enumerate accounts,
// refresh from snapshots, quote, and assemble swaps.
type Amm interface {
	Label() string
	ProgramID() solana.PublicKey
	Key() solana.PublicKey
	ReserveMints() []solana.PublicKey
	AccountsToUpdate() []solana.PublicKey
	Update(snapshot accounts.Map) error
	QuoteExactIn(params QuoteParams) (*Quote, error)
	SwapExactInInstruction(params SwapParams) (*solana.GenericInstruction, error)
}

var _ Amm = (*SPool)(nil)

// Label names the pool kind.
func (p *SPool) Label() string {
	return "S Pool"
}

// Key identifies this pool instance. A controller program runs exactly one
// pool, so the program id doubles as the pool key.
func (p *SPool) Key() solana.PublicKey {
	return p.programID
}
