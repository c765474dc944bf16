package state

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// SwapExactIn instruction data layout, all little-endian:
//
//	offset 0  discriminator (u8)
//	offset 1  src LST value calculator account count (u32)
//	offset 5  dst LST value calculator account count (u32)
//	offset 9  src LST index (u32)
//	offset 13 dst LST index (u32)
//	offset 17 min amount out (u64)
//	offset 25 amount (u64)
//
// The two count fields give the lengths of the variable account-list
// prefixes appended after the fixed accounts; each count includes the
// calculator program's own account entry.
const (
	SwapExactInDiscm     uint8 = 1
	SwapExactInDataLen         = 33
	swapExactInCountsOff       = 1
)

// SwapExactInArgs is the decoded instruction data of a SwapExactIn.
type SwapExactInArgs struct {
	SrcLstValueCalcAccs uint32
	DstLstValueCalcAccs uint32
	SrcLstIndex         uint32
	DstLstIndex         uint32
	MinAmountOut        uint64
	Amount              uint64
}

// SwapExactInKeys are the fixed accounts of a SwapExactIn instruction, in
// wire order.
type SwapExactInKeys struct {
	Signer                 solana.PublicKey
	SrcLstMint             solana.PublicKey
	DstLstMint             solana.PublicKey
	SrcLstAcc              solana.PublicKey
	DstLstAcc              solana.PublicKey
	ProtocolFeeAccumulator solana.PublicKey
	SrcLstTokenProgram     solana.PublicKey
	DstLstTokenProgram     solana.PublicKey
	PoolState              solana.PublicKey
	LstStateList           solana.PublicKey
	SrcPoolReserves        solana.PublicKey
	DstPoolReserves        solana.PublicKey
}

func (k SwapExactInKeys) metas() solana.AccountMetaSlice {
	return solana.AccountMetaSlice{
		solana.Meta(k.Signer).SIGNER(),
		solana.Meta(k.SrcLstMint),
		solana.Meta(k.DstLstMint),
		solana.Meta(k.SrcLstAcc).WRITE(),
		solana.Meta(k.DstLstAcc).WRITE(),
		solana.Meta(k.ProtocolFeeAccumulator).WRITE(),
		solana.Meta(k.SrcLstTokenProgram),
		solana.Meta(k.DstLstTokenProgram),
		solana.Meta(k.PoolState).WRITE(),
		solana.Meta(k.LstStateList).WRITE(),
		solana.Meta(k.SrcPoolReserves).WRITE(),
		solana.Meta(k.DstPoolReserves).WRITE(),
	}
}

// SwapExactInFullArgs are the caller-facing assembly inputs. Indices are
// plain ints straight out of the LST list; they are checked against the u32
// wire range before anything is encoded.
type SwapExactInFullArgs struct {
	SrcLstIndex  int
	DstLstIndex  int
	MinAmountOut uint64
	Amount       uint64
}

// NewSwapExactInInstruction assembles a full SwapExactIn instruction.
//
// The calculator account-list lengths are only known once the calculators
// are selected, so assembly is two-pass: the data is first encoded with
// zero-valued counts and all variable accounts are appended (src calculator
// accounts, dst calculator accounts, then pricing accounts led by the
// pricing program's own entry); the true counts are then written back into
// the fixed header region, which is safe to overwrite independently of the
// appended tail.
func NewSwapExactInInstruction(
	programID solana.PublicKey,
	keys SwapExactInKeys,
	args SwapExactInFullArgs,
	srcCalcProgram solana.PublicKey,
	srcCalcAccounts []*solana.AccountMeta,
	dstCalcProgram solana.PublicKey,
	dstCalcAccounts []*solana.AccountMeta,
	pricingProgram solana.PublicKey,
	pricingAccounts []*solana.AccountMeta,
) (*solana.GenericInstruction, error) {
	srcIndex, err := IndexToU32(args.SrcLstIndex)
	if err != nil {
		return nil, err
	}
	dstIndex, err := IndexToU32(args.DstLstIndex)
	if err != nil {
		return nil, err
	}

	data := encodeSwapExactInArgs(SwapExactInArgs{
		SrcLstIndex:  srcIndex,
		DstLstIndex:  dstIndex,
		MinAmountOut: args.MinAmountOut,
		Amount:       args.Amount,
	})

	metas := keys.metas()
	metas = append(metas, solana.Meta(srcCalcProgram))
	metas = append(metas, srcCalcAccounts...)
	metas = append(metas, solana.Meta(dstCalcProgram))
	metas = append(metas, dstCalcAccounts...)
	metas = append(metas, solana.Meta(pricingProgram))
	metas = append(metas, pricingAccounts...)

	binary.LittleEndian.PutUint32(data[swapExactInCountsOff:], uint32(len(srcCalcAccounts)+1))
	binary.LittleEndian.PutUint32(data[swapExactInCountsOff+4:], uint32(len(dstCalcAccounts)+1))

	return solana.NewInstruction(programID, metas, data), nil
}

func encodeSwapExactInArgs(args SwapExactInArgs) []byte {
	data := make([]byte, SwapExactInDataLen)
	data[0] = SwapExactInDiscm
	binary.LittleEndian.PutUint32(data[1:], args.SrcLstValueCalcAccs)
	binary.LittleEndian.PutUint32(data[5:], args.DstLstValueCalcAccs)
	binary.LittleEndian.PutUint32(data[9:], args.SrcLstIndex)
	binary.LittleEndian.PutUint32(data[13:], args.DstLstIndex)
	binary.LittleEndian.PutUint64(data[17:], args.MinAmountOut)
	binary.LittleEndian.PutUint64(data[25:], args.Amount)
	return data
}

// DecodeSwapExactInArgs parses SwapExactIn instruction data.
func DecodeSwapExactInArgs(data []byte) (SwapExactInArgs, error) {
	if len(data) != SwapExactInDataLen {
		return SwapExactInArgs{}, fmt.Errorf("swap exact in data: %d bytes, want %d: %w", len(data), SwapExactInDataLen, ErrMalformedState)
	}
	if data[0] != SwapExactInDiscm {
		return SwapExactInArgs{}, fmt.Errorf("swap exact in discriminator %d: %w", data[0], ErrMalformedState)
	}
	return SwapExactInArgs{
		SrcLstValueCalcAccs: binary.LittleEndian.Uint32(data[1:]),
		DstLstValueCalcAccs: binary.LittleEndian.Uint32(data[5:]),
		SrcLstIndex:         binary.LittleEndian.Uint32(data[9:]),
		DstLstIndex:         binary.LittleEndian.Uint32(data[13:]),
		MinAmountOut:        binary.LittleEndian.Uint64(data[17:]),
		Amount:              binary.LittleEndian.Uint64(data[25:]),
	}, nil
}
