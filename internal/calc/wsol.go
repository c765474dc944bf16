package calc

import (
	"github.com/gagliardetto/solana-go"

	"github.com/mgild/spool/internal/accounts"
)

// WsolCalc is the native family: wrapped SOL is worth exactly its own
// amount in SOL value, needs no external accounts and never goes stale.
type WsolCalc struct {
	mint solana.PublicKey
}

// NewWsolCalc returns the native calculator for a mint, normally
// solana.SolMint.
func NewWsolCalc(mint solana.PublicKey) WsolCalc {
	return WsolCalc{mint: mint}
}

func (WsolCalc) LstToSol(lstAmount uint64) (Range, error) {
	return Exact(lstAmount), nil
}

func (WsolCalc) SolToLst(solValue uint64) (Range, error) {
	return Exact(solValue), nil
}

func (WsolCalc) AccountsToUpdate() []solana.PublicKey {
	return nil
}

func (WsolCalc) Update(accounts.Map) error {
	return nil
}

func (WsolCalc) IxAccounts() []*solana.AccountMeta {
	return nil
}

func (c WsolCalc) LstMint() solana.PublicKey {
	return c.mint
}

func (WsolCalc) ProgramID() solana.PublicKey {
	return WsolProgramID
}
