package calc

import (
	"bytes"
	"errors"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/mgild/spool/internal/accounts"
	"github.com/mgild/spool/internal/state"
)

func testKey(b byte) solana.PublicKey {
	var k solana.PublicKey
	k[0] = b
	k[31] = b
	return k
}

func encodeFixture(t *testing.T, v interface{}) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := bin.NewBinEncoder(buf).Encode(v); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestMulDiv(t *testing.T) {
	tests := []struct {
		amount, num, denom uint64
		want               Range
	}{
		{10, 3, 4, Range{Min: 7, Max: 8}},
		{8, 2, 4, Range{Min: 4, Max: 4}},
		{0, 3, 4, Range{Min: 0, Max: 0}},
		{1000, 1, 1, Range{Min: 1000, Max: 1000}},
	}
	for _, tc := range tests {
		got, err := mulDiv(tc.amount, tc.num, tc.denom)
		if err != nil {
			t.Fatalf("mulDiv(%d, %d, %d): %v", tc.amount, tc.num, tc.denom, err)
		}
		if got != tc.want {
			t.Fatalf("mulDiv(%d, %d, %d) = %+v, want %+v", tc.amount, tc.num, tc.denom, got, tc.want)
		}
	}
}

func TestMulDivZeroDenom(t *testing.T) {
	_, err := mulDiv(1, 1, 0)
	if !errors.Is(err, state.ErrMalformedState) {
		t.Fatalf("err = %v, want ErrMalformedState", err)
	}
}

func TestMulDivOverflow(t *testing.T) {
	_, err := mulDiv(^uint64(0), 2, 1)
	if !errors.Is(err, state.ErrOverflow) {
		t.Fatalf("err = %v, want ErrOverflow", err)
	}
}

func TestWsolCalcIdentity(t *testing.T) {
	c := NewWsolCalc(solana.SolMint)

	got, err := c.LstToSol(12345)
	if err != nil {
		t.Fatalf("lst to sol: %v", err)
	}
	if got != Exact(12345) {
		t.Fatalf("lst to sol = %+v", got)
	}

	got, err = c.SolToLst(54321)
	if err != nil {
		t.Fatalf("sol to lst: %v", err)
	}
	if got != Exact(54321) {
		t.Fatalf("sol to lst = %+v", got)
	}

	if len(c.AccountsToUpdate()) != 0 || len(c.IxAccounts()) != 0 {
		t.Fatalf("native calc should not need accounts")
	}
	if !c.LstMint().Equals(solana.SolMint) {
		t.Fatalf("lst mint = %s", c.LstMint())
	}
}

func TestWsolCalcMintFollowsConstructor(t *testing.T) {
	c := NewWsolCalc(testKey(9))
	if !c.LstMint().Equals(testKey(9)) {
		t.Fatalf("lst mint = %s, want %s", c.LstMint(), testKey(9))
	}
}

func TestStakePoolCalc(t *testing.T) {
	mint := testKey(1)
	poolAddr := testKey(2)
	c := NewStakePoolCalc(mint, poolAddr)

	if _, err := c.LstToSol(100); !errors.Is(err, state.ErrNotReady) {
		t.Fatalf("before update err = %v, want ErrNotReady", err)
	}

	snap := accounts.Map{
		poolAddr: {Data: encodeFixture(t, &splStakePool{
			TotalLamports:   1500,
			PoolTokenSupply: 1000,
		})},
	}
	if err := c.Update(snap); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := c.LstToSol(1000)
	if err != nil {
		t.Fatalf("lst to sol: %v", err)
	}
	if got != Exact(1500) {
		t.Fatalf("lst to sol = %+v, want 1500", got)
	}

	got, err = c.SolToLst(1500)
	if err != nil {
		t.Fatalf("sol to lst: %v", err)
	}
	if got != Exact(1000) {
		t.Fatalf("sol to lst = %+v, want 1000", got)
	}

	// rounding splits the range
	got, err = c.LstToSol(1)
	if err != nil {
		t.Fatalf("lst to sol: %v", err)
	}
	if got.Min != 1 || got.Max != 2 {
		t.Fatalf("lst to sol = %+v, want {1 2}", got)
	}
}

func TestStakePoolCalcKeepsRateOnMissingSnapshot(t *testing.T) {
	poolAddr := testKey(2)
	c := NewStakePoolCalc(testKey(1), poolAddr)

	snap := accounts.Map{
		poolAddr: {Data: encodeFixture(t, &splStakePool{
			TotalLamports:   2000,
			PoolTokenSupply: 1000,
		})},
	}
	if err := c.Update(snap); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := c.Update(accounts.Map{}); err != nil {
		t.Fatalf("empty update: %v", err)
	}

	got, err := c.LstToSol(10)
	if err != nil {
		t.Fatalf("lst to sol: %v", err)
	}
	if got != Exact(20) {
		t.Fatalf("lst to sol = %+v, want 20", got)
	}
}

func TestStakePoolCalcZeroSupply(t *testing.T) {
	poolAddr := testKey(2)
	c := NewStakePoolCalc(testKey(1), poolAddr)

	snap := accounts.Map{
		poolAddr: {Data: encodeFixture(t, &splStakePool{TotalLamports: 1})},
	}
	if err := c.Update(snap); !errors.Is(err, state.ErrMalformedState) {
		t.Fatalf("err = %v, want ErrMalformedState", err)
	}
}

func TestStakePoolCalcBadData(t *testing.T) {
	poolAddr := testKey(2)
	c := NewStakePoolCalc(testKey(1), poolAddr)

	snap := accounts.Map{poolAddr: {Data: []byte{1, 2, 3}}}
	if err := c.Update(snap); !errors.Is(err, state.ErrMalformedState) {
		t.Fatalf("err = %v, want ErrMalformedState", err)
	}
}

func TestSanctumSplCalc(t *testing.T) {
	mint := testKey(1)
	poolAddr := testKey(2)
	c := NewSanctumSplCalc(mint, poolAddr)

	if !c.ProgramID().Equals(SanctumSplProgramID) {
		t.Fatalf("program id = %s, want sanctum spl", c.ProgramID())
	}
	if spl := NewStakePoolCalc(mint, poolAddr); !spl.ProgramID().Equals(SplProgramID) {
		t.Fatalf("spl program id = %s", spl.ProgramID())
	}

	// same account layout and ratio core as the SPL family
	snap := accounts.Map{
		poolAddr: {Data: encodeFixture(t, &splStakePool{
			TotalLamports:   1200,
			PoolTokenSupply: 1000,
		})},
	}
	if err := c.Update(snap); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := c.LstToSol(1000)
	if err != nil {
		t.Fatalf("lst to sol: %v", err)
	}
	if got != Exact(1200) {
		t.Fatalf("lst to sol = %+v, want 1200", got)
	}
}

func TestMarinadeCalc(t *testing.T) {
	stateAddr := testKey(3)
	c := NewMarinadeCalc(testKey(1), stateAddr)

	// price 1.5 SOL per mSOL in 2^32 fixed point
	snap := accounts.Map{
		stateAddr: {Data: encodeFixture(t, &marinadeState{
			MsolPrice:  msolPriceDenom + msolPriceDenom/2,
			MsolSupply: 1,
		})},
	}
	if err := c.Update(snap); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := c.LstToSol(2)
	if err != nil {
		t.Fatalf("lst to sol: %v", err)
	}
	if got != Exact(3) {
		t.Fatalf("lst to sol = %+v, want 3", got)
	}

	got, err = c.SolToLst(3)
	if err != nil {
		t.Fatalf("sol to lst: %v", err)
	}
	if got != Exact(2) {
		t.Fatalf("sol to lst = %+v, want 2", got)
	}
}

func TestMarinadeCalcZeroPrice(t *testing.T) {
	stateAddr := testKey(3)
	c := NewMarinadeCalc(testKey(1), stateAddr)

	snap := accounts.Map{
		stateAddr: {Data: encodeFixture(t, &marinadeState{MsolSupply: 1})},
	}
	if err := c.Update(snap); !errors.Is(err, state.ErrMalformedState) {
		t.Fatalf("err = %v, want ErrMalformedState", err)
	}
}

func TestLidoCalc(t *testing.T) {
	stateAddr := testKey(4)
	c := NewLidoCalc(testKey(1), stateAddr)

	snap := accounts.Map{
		stateAddr: {Data: encodeFixture(t, &lidoState{
			StSolSupply: 1000,
			SolBalance:  1100,
		})},
	}
	if err := c.Update(snap); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := c.LstToSol(1000)
	if err != nil {
		t.Fatalf("lst to sol: %v", err)
	}
	if got != Exact(1100) {
		t.Fatalf("lst to sol = %+v, want 1100", got)
	}
}

func TestLidoCalcZeroSupply(t *testing.T) {
	stateAddr := testKey(4)
	c := NewLidoCalc(testKey(1), stateAddr)

	snap := accounts.Map{
		stateAddr: {Data: encodeFixture(t, &lidoState{SolBalance: 1})},
	}
	if err := c.Update(snap); !errors.Is(err, state.ErrMalformedState) {
		t.Fatalf("err = %v, want ErrMalformedState", err)
	}
}

func TestIxAccountsOrder(t *testing.T) {
	mint := testKey(1)
	poolAddr := testKey(2)
	c := NewStakePoolCalc(mint, poolAddr)

	metas := c.IxAccounts()
	if len(metas) != 2 {
		t.Fatalf("metas = %d, want 2", len(metas))
	}
	if !metas[0].PublicKey.Equals(mint) || !metas[1].PublicKey.Equals(poolAddr) {
		t.Fatalf("meta order wrong: %s, %s", metas[0].PublicKey, metas[1].PublicKey)
	}
}
