package calc

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/mgild/spool/internal/accounts"
	"github.com/mgild/spool/internal/state"
)

// msolPriceDenom is the fixed-point denominator of Marinade's mSOL price
// field (price is lamports per mSOL, scaled by 2^32).
const msolPriceDenom = uint64(1) << 32

// marinadeState is the prefix of the Marinade state account consumed here.
type marinadeState struct {
	Discriminator [8]uint8
	MsolMint      solana.PublicKey
	MsolPrice     uint64
	MsolSupply    uint64
}

// MarinadeCalc values mSOL by the protocol's published fixed-point price.
type MarinadeCalc struct {
	lstMint   solana.PublicKey
	stateAddr solana.PublicKey
	rate      *ratio
}

// NewMarinadeCalc builds a Marinade calculator reading the given state
// account.
func NewMarinadeCalc(lstMint, stateAddr solana.PublicKey) *MarinadeCalc {
	return &MarinadeCalc{
		lstMint:   lstMint,
		stateAddr: stateAddr,
	}
}

func (c *MarinadeCalc) LstToSol(lstAmount uint64) (Range, error) {
	if c.rate == nil {
		return Range{}, fmt.Errorf("marinade state %s: %w", c.stateAddr, state.ErrNotReady)
	}
	return c.rate.apply(lstAmount)
}

func (c *MarinadeCalc) SolToLst(solValue uint64) (Range, error) {
	if c.rate == nil {
		return Range{}, fmt.Errorf("marinade state %s: %w", c.stateAddr, state.ErrNotReady)
	}
	return c.rate.reverse(solValue)
}

func (c *MarinadeCalc) AccountsToUpdate() []solana.PublicKey {
	return []solana.PublicKey{c.stateAddr}
}

func (c *MarinadeCalc) Update(snapshot accounts.Map) error {
	acc, ok := snapshot.Get(c.stateAddr)
	if !ok {
		return nil
	}
	var ms marinadeState
	if err := bin.NewBinDecoder(acc.Data).Decode(&ms); err != nil {
		return fmt.Errorf("marinade state %s: %v: %w", c.stateAddr, err, state.ErrMalformedState)
	}
	if ms.MsolPrice == 0 {
		return fmt.Errorf("marinade state %s has zero msol price: %w", c.stateAddr, state.ErrMalformedState)
	}
	c.rate = &ratio{num: ms.MsolPrice, denom: msolPriceDenom}
	return nil
}

func (c *MarinadeCalc) IxAccounts() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.Meta(c.stateAddr),
	}
}

func (c *MarinadeCalc) LstMint() solana.PublicKey {
	return c.lstMint
}

func (c *MarinadeCalc) ProgramID() solana.PublicKey {
	return MarinadeProgramID
}
