package calc

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/mgild/spool/internal/accounts"
	"github.com/mgild/spool/internal/state"
)

// splStakePool is the prefix of an SPL stake pool account, up to and
// including the two fields this calculator consumes.
type splStakePool struct {
	AccountType           uint8
	Manager               solana.PublicKey
	Staker                solana.PublicKey
	StakeDepositAuthority solana.PublicKey
	StakeWithdrawBumpSeed uint8
	ValidatorList         solana.PublicKey
	ReserveStake          solana.PublicKey
	PoolMint              solana.PublicKey
	ManagerFeeAccount     solana.PublicKey
	TokenProgramID        solana.PublicKey
	TotalLamports         uint64
	PoolTokenSupply       uint64
}

// StakePoolCalc values a stake pool LST by the pool's
// total-lamports : pool-token-supply ratio. The same core serves both the
// SPL and Sanctum-SPL families; they differ only in calculator program.
type StakePoolCalc struct {
	lstMint   solana.PublicKey
	stakePool solana.PublicKey
	program   solana.PublicKey
	rate      *ratio
}

// NewStakePoolCalc builds an SPL stake pool calculator. The rate is unknown
// until the first Update delivers the stake pool account.
func NewStakePoolCalc(lstMint, stakePoolAddr solana.PublicKey) *StakePoolCalc {
	return &StakePoolCalc{
		lstMint:   lstMint,
		stakePool: stakePoolAddr,
		program:   SplProgramID,
	}
}

// NewSanctumSplCalc builds a Sanctum-SPL stake pool calculator.
func NewSanctumSplCalc(lstMint, stakePoolAddr solana.PublicKey) *StakePoolCalc {
	return &StakePoolCalc{
		lstMint:   lstMint,
		stakePool: stakePoolAddr,
		program:   SanctumSplProgramID,
	}
}

func (c *StakePoolCalc) LstToSol(lstAmount uint64) (Range, error) {
	if c.rate == nil {
		return Range{}, fmt.Errorf("stake pool %s: %w", c.stakePool, state.ErrNotReady)
	}
	return c.rate.apply(lstAmount)
}

func (c *StakePoolCalc) SolToLst(solValue uint64) (Range, error) {
	if c.rate == nil {
		return Range{}, fmt.Errorf("stake pool %s: %w", c.stakePool, state.ErrNotReady)
	}
	return c.rate.reverse(solValue)
}

func (c *StakePoolCalc) AccountsToUpdate() []solana.PublicKey {
	return []solana.PublicKey{c.stakePool}
}

// Update refreshes the cached rate from the stake pool account. A missing
// snapshot keeps the previous rate; an undecodable one is an error.
func (c *StakePoolCalc) Update(snapshot accounts.Map) error {
	acc, ok := snapshot.Get(c.stakePool)
	if !ok {
		return nil
	}
	var sp splStakePool
	if err := bin.NewBinDecoder(acc.Data).Decode(&sp); err != nil {
		return fmt.Errorf("stake pool %s: %v: %w", c.stakePool, err, state.ErrMalformedState)
	}
	if sp.PoolTokenSupply == 0 {
		return fmt.Errorf("stake pool %s has zero token supply: %w", c.stakePool, state.ErrMalformedState)
	}
	c.rate = &ratio{num: sp.TotalLamports, denom: sp.PoolTokenSupply}
	return nil
}

func (c *StakePoolCalc) IxAccounts() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.Meta(c.lstMint),
		solana.Meta(c.stakePool),
	}
}

func (c *StakePoolCalc) LstMint() solana.PublicKey {
	return c.lstMint
}

func (c *StakePoolCalc) ProgramID() solana.PublicKey {
	return c.program
}
