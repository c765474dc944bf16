package spool

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/mgild/spool/internal/pricing"
	"github.com/mgild/spool/internal/state"
)

// QuoteParams is an exact-in quote request.
type QuoteParams struct {
	Amount     uint64
	InputMint  solana.PublicKey
	OutputMint solana.PublicKey
}

// Quote is the result of an exact-in quote. FeeAmount is denominated in
// the output LST; FeePct is the fraction of the input's SOL value kept by
// the pool, in [0, 1]. NotEnoughLiquidity flags an output leg the pool's
// reserves cannot currently cover.
type Quote struct {
	InAmount           uint64
	OutAmount          uint64
	FeeMint            solana.PublicKey
	FeeAmount          uint64
	FeePct             decimal.Decimal
	NotEnoughLiquidity bool
}

// QuoteExactIn quotes a swap of params.Amount input LST for the output
// LST at the mirror's current snapshot. Both legs' SOL values are re-synced
// from reserve balances before pricing, so a stale list snapshot does not
// skew the totals the pricing oracle sees.
func (p *SPool) QuoteExactIn(params QuoteParams) (*Quote, error) {
	pool, err := p.PoolState()
	if err != nil {
		return nil, err
	}
	if pool.IsDisabled != 0 {
		return nil, fmt.Errorf("pool is disabled")
	}
	pricingProg, err := p.Pricing()
	if err != nil {
		return nil, err
	}

	srcLst, srcData, _, err := p.findReadyLst(params.InputMint)
	if err != nil {
		return nil, err
	}
	if srcLst.IsInputDisabled != 0 {
		return nil, fmt.Errorf("input disabled for lst %s", params.InputMint)
	}
	dstLst, dstData, _, err := p.findReadyLst(params.OutputMint)
	if err != nil {
		return nil, err
	}

	ps, srcLst, err := p.applySyncSolValue(*pool, srcLst, srcData)
	if err != nil {
		return nil, err
	}
	ps, dstLst, err = p.applySyncSolValue(ps, dstLst, dstData)
	if err != nil {
		return nil, err
	}

	inRange, err := srcData.Calc.LstToSol(params.Amount)
	if err != nil {
		return nil, err
	}
	inSol := inRange.Min
	if inSol == 0 {
		return nil, fmt.Errorf("input SOL value: %w", state.ErrZeroValue)
	}

	outSol, err := pricingProg.PriceExactIn(
		pricing.PriceExactInKeys{
			InputLstMint:  params.InputMint,
			OutputLstMint: params.OutputMint,
		},
		pricing.PriceExactInArgs{
			Amount:   params.Amount,
			SolValue: inSol,
		},
	)
	if err != nil {
		return nil, err
	}
	if outSol > inSol {
		return nil, fmt.Errorf("output SOL value %d > input SOL value %d: %w", outSol, inSol, state.ErrValueLoss)
	}

	outRange, err := dstData.Calc.SolToLst(outSol)
	if err != nil {
		return nil, err
	}
	dstOut := outRange.Min
	if dstOut == 0 {
		return nil, fmt.Errorf("output amount: %w", state.ErrZeroValue)
	}

	protocolFees, err := state.CalcSwapProtocolFees(state.SwapProtocolFeesArgs{
		InSolValue:            inSol,
		OutSolValue:           outSol,
		DstLstOut:             dstOut,
		TradingProtocolFeeBps: ps.TradingProtocolFeeBps,
	})
	if err != nil {
		return nil, err
	}

	// The output leg plus the protocol's cut both come out of reserves.
	total := dstOut + protocolFees
	if total < dstOut {
		return nil, fmt.Errorf("total output: %w", state.ErrOverflow)
	}
	notEnoughLiquidity := dstData.ReservesBalance == nil || total > *dstData.ReservesBalance

	feeAmount, feePct, err := quoteFees(inSol, outSol, dstData)
	if err != nil {
		return nil, err
	}

	return &Quote{
		InAmount:           params.Amount,
		OutAmount:          dstOut,
		FeeMint:            params.OutputMint,
		FeeAmount:          feeAmount,
		FeePct:             feePct,
		NotEnoughLiquidity: notEnoughLiquidity,
	}, nil
}

// applySyncSolValue re-derives one LST's SOL value from its current
// reserve balance and folds the delta into the pool total, all by value.
func (p *SPool) applySyncSolValue(pool state.PoolState, lst state.LstState, ld *LstData) (state.PoolState, state.LstState, error) {
	if ld.ReservesBalance == nil {
		return pool, lst, fmt.Errorf("reserves balance for lst %s: %w", lst.Mint, state.ErrNotReady)
	}
	r, err := ld.Calc.LstToSol(*ld.ReservesBalance)
	if err != nil {
		return pool, lst, err
	}
	return state.SyncSolValue(pool, lst, r.Min)
}

// quoteFees derives the fee leg of a quote: the SOL-value spread between
// the legs, expressed both as a fraction of the input and in output LST
// units.
func quoteFees(inSol, outSol uint64, dst *LstData) (uint64, decimal.Decimal, error) {
	feeSol := inSol - outSol
	feePct := decimal.NewFromUint64(feeSol).Div(decimal.NewFromUint64(inSol))
	r, err := dst.Calc.SolToLst(feeSol)
	if err != nil {
		return 0, decimal.Decimal{}, err
	}
	return r.Min, feePct, nil
}
