package state

import (
	"fmt"
	"math"
	"math/big"
)

// SyncSolValue recomputes the pool's total SOL value after an LST's SOL
// value has been re-derived from its current reserve balance. Both structs
// are updated by value and returned; nothing is committed to the mirror.
func SyncSolValue(pool PoolState, lst LstState, newSolValue uint64) (PoolState, LstState, error) {
	total, ok := subU64(pool.TotalSolValue, lst.SolValue)
	if !ok {
		return pool, lst, fmt.Errorf("total SOL value %d below lst SOL value %d: %w", pool.TotalSolValue, lst.SolValue, ErrOverflow)
	}
	total, ok = addU64(total, newSolValue)
	if !ok {
		return pool, lst, fmt.Errorf("total SOL value: %w", ErrOverflow)
	}
	pool.TotalSolValue = total
	lst.SolValue = newSolValue
	return pool, lst, nil
}

// SwapProtocolFeesArgs are the inputs of CalcSwapProtocolFees.
type SwapProtocolFeesArgs struct {
	InSolValue            uint64
	OutSolValue           uint64
	DstLstOut             uint64
	TradingProtocolFeeBps uint16
}

// CalcSwapProtocolFees returns the protocol's cut of a swap in native units
// of the destination LST. The protocol takes TradingProtocolFeeBps of the
// SOL-value spread between the two legs, pro-rated into destination LST
// units against the output leg.
func CalcSwapProtocolFees(a SwapProtocolFeesArgs) (uint64, error) {
	if a.OutSolValue > a.InSolValue {
		return 0, fmt.Errorf("out SOL value %d > in SOL value %d: %w", a.OutSolValue, a.InSolValue, ErrValueLoss)
	}
	if a.OutSolValue == 0 {
		return 0, fmt.Errorf("out SOL value: %w", ErrZeroValue)
	}
	spread := a.InSolValue - a.OutSolValue

	protocolSol := new(big.Int).SetUint64(spread)
	protocolSol.Mul(protocolSol, big.NewInt(int64(a.TradingProtocolFeeBps)))
	protocolSol.Div(protocolSol, big.NewInt(10_000))

	fee := new(big.Int).SetUint64(a.DstLstOut)
	fee.Mul(fee, protocolSol)
	fee.Div(fee, new(big.Int).SetUint64(a.OutSolValue))
	if !fee.IsUint64() {
		return 0, fmt.Errorf("protocol fee: %w", ErrOverflow)
	}
	return fee.Uint64(), nil
}

// IndexToU32 converts an LST list index into its u32 wire form.
func IndexToU32(i int) (uint32, error) {
	if i < 0 || int64(i) > math.MaxUint32 {
		return 0, fmt.Errorf("lst index %d does not fit u32: %w", i, ErrOverflow)
	}
	return uint32(i), nil
}

func addU64(a, b uint64) (uint64, bool) {
	s := a + b
	return s, s >= a
}

func subU64(a, b uint64) (uint64, bool) {
	return a - b, a >= b
}
