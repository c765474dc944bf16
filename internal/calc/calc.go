// Package calc holds the per-LST SOL value calculators. Each known family
// converts between an LST's native amount and its SOL value using rates
// cached from that family's on-chain accounts.
package calc

import (
	"github.com/gagliardetto/solana-go"

	"github.com/mgild/spool/internal/accounts"
)

// Range bounds a converted value. Some families have rounding-direction
// ambiguity, so conversions return both bounds; callers take Min to avoid
// over-crediting the pool.
type Range struct {
	Min uint64
	Max uint64
}

// Exact is the Range of a conversion with no rounding ambiguity.
func Exact(v uint64) Range {
	return Range{Min: v, Max: v}
}

// SolValueCalc converts between an LST's native amount and SOL value.
//
// Update consumes a refreshed snapshot batch and refreshes the cached rate;
// a decode failure is returned as an error but must not stop the caller
// from updating other calculators in the same batch. LstMint and ProgramID
// together form the identity used to re-bind a calculator across refreshes.
type SolValueCalc interface {
	LstToSol(lstAmount uint64) (Range, error)
	SolToLst(solValue uint64) (Range, error)

	// AccountsToUpdate lists the accounts whose snapshots Update consumes.
	AccountsToUpdate() []solana.PublicKey
	Update(snapshot accounts.Map) error

	// IxAccounts lists the account metas the family's on-chain program
	// needs appended to a swap instruction. May be empty.
	IxAccounts() []*solana.AccountMeta

	LstMint() solana.PublicKey
	ProgramID() solana.PublicKey
}

// Known value calculator family program identities. Sanctum-SPL pools use
// the SPL stake pool account layout under a separate calculator program.
var (
	SplProgramID        = solana.MustPublicKeyFromBase58("Sp1Ca1c111111111111111111111111111111111111")
	SanctumSplProgramID = solana.MustPublicKeyFromBase58("SanctumSp1Ca1c11111111111111111111111111111")
	MarinadeProgramID   = solana.MustPublicKeyFromBase58("Mar1nadeCa1c1111111111111111111111111111111")
	LidoProgramID       = solana.MustPublicKeyFromBase58("L1doCa1c11111111111111111111111111111111111")
	WsolProgramID       = solana.MustPublicKeyFromBase58("Wso1Ca1c11111111111111111111111111111111111")
)
