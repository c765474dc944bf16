package calc

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/mgild/spool/internal/accounts"
	"github.com/mgild/spool/internal/state"
)

// lidoState is the prefix of the Lido (solido) state account consumed
// here: the exchange rate computed at the start of the current epoch.
type lidoState struct {
	LidoVersion     uint8
	Manager         solana.PublicKey
	StSolMint       solana.PublicKey
	ComputedInEpoch uint64
	StSolSupply     uint64
	SolBalance      uint64
}

// LidoCalc values stSOL by the solido exchange rate
// (sol-balance : stSOL-supply).
type LidoCalc struct {
	lstMint   solana.PublicKey
	stateAddr solana.PublicKey
	rate      *ratio
}

// NewLidoCalc builds a Lido calculator reading the given state account.
func NewLidoCalc(lstMint, stateAddr solana.PublicKey) *LidoCalc {
	return &LidoCalc{
		lstMint:   lstMint,
		stateAddr: stateAddr,
	}
}

func (c *LidoCalc) LstToSol(lstAmount uint64) (Range, error) {
	if c.rate == nil {
		return Range{}, fmt.Errorf("lido state %s: %w", c.stateAddr, state.ErrNotReady)
	}
	return c.rate.apply(lstAmount)
}

func (c *LidoCalc) SolToLst(solValue uint64) (Range, error) {
	if c.rate == nil {
		return Range{}, fmt.Errorf("lido state %s: %w", c.stateAddr, state.ErrNotReady)
	}
	return c.rate.reverse(solValue)
}

func (c *LidoCalc) AccountsToUpdate() []solana.PublicKey {
	return []solana.PublicKey{c.stateAddr}
}

func (c *LidoCalc) Update(snapshot accounts.Map) error {
	acc, ok := snapshot.Get(c.stateAddr)
	if !ok {
		return nil
	}
	var ls lidoState
	if err := bin.NewBinDecoder(acc.Data).Decode(&ls); err != nil {
		return fmt.Errorf("lido state %s: %v: %w", c.stateAddr, err, state.ErrMalformedState)
	}
	if ls.StSolSupply == 0 {
		return fmt.Errorf("lido state %s has zero stSOL supply: %w", c.stateAddr, state.ErrMalformedState)
	}
	c.rate = &ratio{num: ls.SolBalance, denom: ls.StSolSupply}
	return nil
}

func (c *LidoCalc) IxAccounts() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.Meta(c.stateAddr),
	}
}

func (c *LidoCalc) LstMint() solana.PublicKey {
	return c.lstMint
}

func (c *LidoCalc) ProgramID() solana.PublicKey {
	return LidoProgramID
}
