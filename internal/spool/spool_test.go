package spool

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/mgild/spool/internal/accounts"
	"github.com/mgild/spool/internal/calc"
	"github.com/mgild/spool/internal/pricing"
	"github.com/mgild/spool/internal/state"
)

func testKey(b byte) solana.PublicKey {
	var k solana.PublicKey
	k[0] = b
	k[31] = b
	return k
}

func uintPtr(v uint64) *uint64 {
	return &v
}

// stubCalc converts at a fixed num/denom rate with no rounding range and
// no external accounts.
type stubCalc struct {
	mint    solana.PublicKey
	program solana.PublicKey
	num     uint64
	denom   uint64
	metas   []*solana.AccountMeta
}

func (c stubCalc) LstToSol(v uint64) (calc.Range, error) {
	return calc.Exact(v * c.num / c.denom), nil
}

func (c stubCalc) SolToLst(v uint64) (calc.Range, error) {
	return calc.Exact(v * c.denom / c.num), nil
}

func (c stubCalc) AccountsToUpdate() []solana.PublicKey { return nil }
func (c stubCalc) Update(accounts.Map) error            { return nil }
func (c stubCalc) IxAccounts() []*solana.AccountMeta    { return c.metas }
func (c stubCalc) LstMint() solana.PublicKey            { return c.mint }
func (c stubCalc) ProgramID() solana.PublicKey          { return c.program }

// stubPricing skims feeBps from the input SOL value, or inflates it to
// provoke the value-loss guard.
type stubPricing struct {
	id      solana.PublicKey
	feeBps  uint64
	inflate bool
	metas   []*solana.AccountMeta
}

func (s stubPricing) PriceExactIn(_ pricing.PriceExactInKeys, args pricing.PriceExactInArgs) (uint64, error) {
	if s.inflate {
		return args.SolValue + 1, nil
	}
	return args.SolValue * (10_000 - s.feeBps) / 10_000, nil
}

func (s stubPricing) PriceExactInAccounts(pricing.PriceExactInKeys) ([]*solana.AccountMeta, error) {
	return s.metas, nil
}

func (s stubPricing) AccountsToUpdate() []solana.PublicKey { return nil }
func (s stubPricing) Update(accounts.Map) error            { return nil }
func (s stubPricing) ProgramID() solana.PublicKey          { return s.id }

type testLst struct {
	state state.LstState
	data  *LstData
}

func newTestPool(t *testing.T, ps *state.PoolState, lsts []testLst) *SPool {
	t.Helper()

	programID := testKey(200)
	listAddr, poolAddr, err := InitAccounts(programID)
	if err != nil {
		t.Fatalf("init accounts: %v", err)
	}

	list := make([]state.LstState, len(lsts))
	bindings := make([]*LstData, len(lsts))
	for i, l := range lsts {
		list[i] = l.state
		bindings[i] = l.data
	}
	listData, err := state.EncodeLstStateList(list)
	if err != nil {
		t.Fatalf("encode list: %v", err)
	}

	p := &SPool{
		programID:        programID,
		lstStateListAddr: listAddr,
		poolStateAddr:    poolAddr,
		lstStateListData: listData,
		lstDataList:      bindings,
		logger:           zap.NewNop(),
	}
	if ps != nil {
		psData, err := state.EncodePoolState(ps)
		if err != nil {
			t.Fatalf("encode pool state: %v", err)
		}
		p.poolStateData = psData
	}
	return p
}

func TestLabelAndKey(t *testing.T) {
	p := newTestPool(t, nil, nil)
	if p.Label() != "S Pool" {
		t.Fatalf("label = %q", p.Label())
	}
	if !p.Key().Equals(p.ProgramID()) {
		t.Fatalf("key %s != program id %s", p.Key(), p.ProgramID())
	}
}

func TestPoolStateNotReady(t *testing.T) {
	p := newTestPool(t, nil, nil)
	if _, err := p.PoolState(); err == nil {
		t.Fatalf("expected not-ready error")
	}
	if _, err := p.Pricing(); err == nil {
		t.Fatalf("expected not-ready error")
	}
	if _, err := p.LpMintSupply(); err == nil {
		t.Fatalf("expected not-ready error")
	}
}
