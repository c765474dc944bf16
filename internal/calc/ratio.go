package calc

import (
	"fmt"
	"math/big"

	"github.com/mgild/spool/internal/state"
)

// ratio is a num/denom exchange rate between SOL value and LST amount:
// one LST unit is worth num/denom lamports of SOL value.
type ratio struct {
	num   uint64
	denom uint64
}

// apply converts an LST amount to SOL value. Floor and ceiling of the
// true quotient bound the result.
func (r ratio) apply(lstAmount uint64) (Range, error) {
	return mulDiv(lstAmount, r.num, r.denom)
}

// reverse converts a SOL value back to an LST amount.
func (r ratio) reverse(solValue uint64) (Range, error) {
	return mulDiv(solValue, r.denom, r.num)
}

func (r ratio) isOneToOne() bool {
	return r.num == r.denom
}

// mulDiv computes amount*num/denom with a 128-bit intermediate product,
// returning the floor and ceiling of the quotient.
func mulDiv(amount, num, denom uint64) (Range, error) {
	if denom == 0 {
		return Range{}, fmt.Errorf("zero rate denominator: %w", state.ErrMalformedState)
	}
	product := new(big.Int).SetUint64(amount)
	product.Mul(product, new(big.Int).SetUint64(num))

	quo, rem := new(big.Int).QuoRem(product, new(big.Int).SetUint64(denom), new(big.Int))
	if !quo.IsUint64() {
		return Range{}, fmt.Errorf("rate conversion of %d: %w", amount, state.ErrOverflow)
	}
	min := quo.Uint64()
	max := min
	if rem.Sign() != 0 {
		if max == ^uint64(0) {
			return Range{}, fmt.Errorf("rate conversion of %d: %w", amount, state.ErrOverflow)
		}
		max++
	}
	return Range{Min: min, Max: max}, nil
}
