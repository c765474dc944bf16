package spool

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/mgild/spool/internal/accounts"
	"github.com/mgild/spool/internal/calc"
	"github.com/mgild/spool/internal/catalog"
	"github.com/mgild/spool/internal/pricing"
	"github.com/mgild/spool/internal/state"
)

func constructCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Entry{
		{
			Mint:         solana.SolMint,
			TokenProgram: solana.TokenProgramID,
			Family:       catalog.FamilyNative,
		},
		{
			Mint:         testKey(1),
			TokenProgram: solana.TokenProgramID,
			Family:       catalog.FamilySplStakePool,
			Pool:         testKey(2),
		},
		{
			Mint:         testKey(5),
			TokenProgram: solana.TokenProgramID,
			Family:       catalog.FamilySanctumSpl,
			Pool:         testKey(6),
		},
	})
}

func constructListData(t *testing.T) []byte {
	t.Helper()
	data, err := state.EncodeLstStateList([]state.LstState{
		{Mint: solana.SolMint, SolValueCalculator: calc.WsolProgramID},
		{Mint: testKey(1), SolValueCalculator: calc.SplProgramID},
		{Mint: testKey(5), SolValueCalculator: calc.SanctumSplProgramID},
		{Mint: testKey(90), SolValueCalculator: testKey(91)}, // not in catalog
	})
	if err != nil {
		t.Fatalf("encode list: %v", err)
	}
	return data
}

func TestNewFromLstStateList(t *testing.T) {
	p, err := NewFromLstStateList(testKey(200), constructListData(t), constructCatalog(), nil)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	if len(p.lstDataList) != 4 {
		t.Fatalf("bindings = %d, want 4", len(p.lstDataList))
	}
	if p.lstDataList[0] == nil || p.lstDataList[1] == nil || p.lstDataList[2] == nil {
		t.Fatalf("known LSTs should be bound")
	}
	if p.lstDataList[3] != nil {
		t.Fatalf("unknown LST should be unbound")
	}
	if !p.lstDataList[0].Calc.ProgramID().Equals(calc.WsolProgramID) {
		t.Fatalf("native binding program = %s", p.lstDataList[0].Calc.ProgramID())
	}
	if !p.lstDataList[2].Calc.ProgramID().Equals(calc.SanctumSplProgramID) {
		t.Fatalf("sanctum spl binding program = %s", p.lstDataList[2].Calc.ProgramID())
	}

	// pool state never fetched
	if _, err := p.PoolState(); !errors.Is(err, state.ErrNotReady) {
		t.Fatalf("pool state err = %v, want ErrNotReady", err)
	}
}

func TestNewFromLstStateListCalculatorMismatch(t *testing.T) {
	// catalog says SPL stake pool, list entry names a different calculator
	data, err := state.EncodeLstStateList([]state.LstState{
		{Mint: testKey(1), SolValueCalculator: testKey(55)},
	})
	if err != nil {
		t.Fatalf("encode list: %v", err)
	}

	p, err := NewFromLstStateList(testKey(200), data, constructCatalog(), nil)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if p.lstDataList[0] != nil {
		t.Fatalf("mismatched calculator should leave LST unbound")
	}
}

func TestNewFromFetchedAccounts(t *testing.T) {
	programID := testKey(200)
	listAddr, poolAddr, err := InitAccounts(programID)
	if err != nil {
		t.Fatalf("init accounts: %v", err)
	}

	psData, err := state.EncodePoolState(&state.PoolState{
		TotalSolValue:  1000,
		PricingProgram: pricing.FlatFeeProgramID,
		LpTokenMint:    testKey(220),
	})
	if err != nil {
		t.Fatalf("encode pool state: %v", err)
	}

	snap := accounts.Map{
		listAddr: {Data: constructListData(t)},
		poolAddr: {Data: psData},
	}
	p, err := NewFromFetchedAccounts(programID, snap, constructCatalog(), nil)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	prog, err := p.Pricing()
	if err != nil {
		t.Fatalf("pricing: %v", err)
	}
	if !prog.ProgramID().Equals(pricing.FlatFeeProgramID) {
		t.Fatalf("pricing program = %s", prog.ProgramID())
	}
	ps, err := p.PoolState()
	if err != nil {
		t.Fatalf("pool state: %v", err)
	}
	if ps.TotalSolValue != 1000 {
		t.Fatalf("total = %d, want 1000", ps.TotalSolValue)
	}
}

func TestNewFromFetchedAccountsMissingRoot(t *testing.T) {
	programID := testKey(200)
	listAddr, _, err := InitAccounts(programID)
	if err != nil {
		t.Fatalf("init accounts: %v", err)
	}

	snap := accounts.Map{listAddr: {Data: constructListData(t)}}
	_, err = NewFromFetchedAccounts(programID, snap, constructCatalog(), nil)
	if !errors.Is(err, state.ErrNotReady) {
		t.Fatalf("err = %v, want ErrNotReady", err)
	}
}
