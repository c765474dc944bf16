// Package pricing holds the pool-wide pricing oracle: given the SOL value
// of an input LST amount, a pricing program decides the SOL value of the
// output leg under the pool's currently configured policy.
package pricing

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/mgild/spool/internal/accounts"
)

// ErrUnresolvable marks a pricing program id that is not in the known
// family set.
var ErrUnresolvable = errors.New("unknown pricing program")

// PriceExactInKeys names the LST pair being priced.
type PriceExactInKeys struct {
	InputLstMint  solana.PublicKey
	OutputLstMint solana.PublicKey
}

// PriceExactInArgs carries the input leg of an exact-in pricing request.
type PriceExactInArgs struct {
	Amount   uint64
	SolValue uint64
}

// Program is the pricing oracle contract.
type Program interface {
	// PriceExactIn returns the SOL value of the output leg for a given
	// input leg.
	PriceExactIn(keys PriceExactInKeys, args PriceExactInArgs) (uint64, error)

	// PriceExactInAccounts lists the account metas the on-chain pricing
	// program needs appended to a swap instruction for this pair, not
	// including the program's own account entry.
	PriceExactInAccounts(keys PriceExactInKeys) ([]*solana.AccountMeta, error)

	AccountsToUpdate() []solana.PublicKey
	Update(snapshot accounts.Map) error

	ProgramID() solana.PublicKey
}

// New resolves a pricing program id against the known family set. The mint
// list seeds per-LST pricing accounts where the family has them.
func New(programID solana.PublicKey, mints []solana.PublicKey) (Program, error) {
	switch {
	case programID.Equals(FlatFeeProgramID):
		return NewFlatFee(mints)
	default:
		return nil, fmt.Errorf("pricing program %s: %w", programID, ErrUnresolvable)
	}
}
