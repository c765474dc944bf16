package pricing

import (
	"fmt"
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/mgild/spool/internal/accounts"
	"github.com/mgild/spool/internal/state"
)

// FlatFeeProgramID is the flat-fee pricing program.
var FlatFeeProgramID = solana.MustPublicKeyFromBase58("F1atFee111111111111111111111111111111111111")

var feeAccountSeed = []byte("fee")

const feeBpsDenom = 10_000

// feeAccount is the flat-fee program's per-LST fee record.
type feeAccount struct {
	Bump         uint8
	Padding      [1]uint8
	InputFeeBps  int16
	OutputFeeBps int16
}

// FlatFee prices swaps by skimming a flat basis-point fee from the input
// SOL value: the input LST's input-fee plus the output LST's output-fee.
type FlatFee struct {
	feeAccs map[solana.PublicKey]solana.PublicKey // lst mint -> fee PDA
	fees    map[solana.PublicKey]feeAccount       // lst mint -> last decoded fees
}

// NewFlatFee builds the flat-fee oracle for the given LST mints, deriving
// one fee PDA per mint.
func NewFlatFee(mints []solana.PublicKey) (*FlatFee, error) {
	feeAccs := make(map[solana.PublicKey]solana.PublicKey, len(mints))
	for _, mint := range mints {
		addr, _, err := solana.FindProgramAddress(
			[][]byte{feeAccountSeed, mint.Bytes()},
			FlatFeeProgramID,
		)
		if err != nil {
			return nil, fmt.Errorf("derive fee account for %s: %w", mint, err)
		}
		feeAccs[mint] = addr
	}
	return &FlatFee{
		feeAccs: feeAccs,
		fees:    make(map[solana.PublicKey]feeAccount, len(mints)),
	}, nil
}

func (f *FlatFee) PriceExactIn(keys PriceExactInKeys, args PriceExactInArgs) (uint64, error) {
	in, ok := f.fees[keys.InputLstMint]
	if !ok {
		return 0, fmt.Errorf("fee account for input %s: %w", keys.InputLstMint, state.ErrNotReady)
	}
	out, ok := f.fees[keys.OutputLstMint]
	if !ok {
		return 0, fmt.Errorf("fee account for output %s: %w", keys.OutputLstMint, state.ErrNotReady)
	}

	remaining := int64(feeBpsDenom) - int64(in.InputFeeBps) - int64(out.OutputFeeBps)
	if remaining <= 0 {
		return 0, nil
	}

	v := new(big.Int).SetUint64(args.SolValue)
	v.Mul(v, big.NewInt(remaining))
	v.Div(v, big.NewInt(feeBpsDenom))
	if !v.IsUint64() {
		return 0, fmt.Errorf("price exact in: %w", state.ErrOverflow)
	}
	return v.Uint64(), nil
}

func (f *FlatFee) PriceExactInAccounts(keys PriceExactInKeys) ([]*solana.AccountMeta, error) {
	inAcc, ok := f.feeAccs[keys.InputLstMint]
	if !ok {
		return nil, fmt.Errorf("fee account for input %s: %w", keys.InputLstMint, state.ErrNotReady)
	}
	outAcc, ok := f.feeAccs[keys.OutputLstMint]
	if !ok {
		return nil, fmt.Errorf("fee account for output %s: %w", keys.OutputLstMint, state.ErrNotReady)
	}
	return []*solana.AccountMeta{
		solana.Meta(inAcc),
		solana.Meta(outAcc),
	}, nil
}

func (f *FlatFee) AccountsToUpdate() []solana.PublicKey {
	res := make([]solana.PublicKey, 0, len(f.feeAccs))
	for _, addr := range f.feeAccs {
		res = append(res, addr)
	}
	return res
}

// Update refreshes every fee record present in the snapshot batch. All
// decodable records take effect; the first decode failure is returned.
func (f *FlatFee) Update(snapshot accounts.Map) error {
	var firstErr error
	for mint, addr := range f.feeAccs {
		acc, ok := snapshot.Get(addr)
		if !ok {
			continue
		}
		var fa feeAccount
		if err := bin.NewBinDecoder(acc.Data).Decode(&fa); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("fee account %s: %v: %w", addr, err, state.ErrMalformedState)
			}
			continue
		}
		f.fees[mint] = fa
	}
	return firstErr
}

func (f *FlatFee) ProgramID() solana.PublicKey {
	return FlatFeeProgramID
}
