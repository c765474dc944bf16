package spool

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/mgild/spool/internal/pricing"
	"github.com/mgild/spool/internal/state"
)

// SwapParams names everything needed to assemble a SwapExactIn
// instruction: the trade itself plus the user's token accounts and the
// authority that will sign the transfer out of the source account.
type SwapParams struct {
	Amount                  uint64
	MinAmountOut            uint64
	InputMint               solana.PublicKey
	OutputMint              solana.PublicKey
	SourceTokenAccount      solana.PublicKey
	DestinationTokenAccount solana.PublicKey
	TokenTransferAuthority  solana.PublicKey
}

// SwapExactInInstruction assembles the SwapExactIn instruction for a trade
// at the mirror's current snapshot: fixed accounts from the pool's PDAs,
// then the source and destination calculator account groups, then the
// pricing program's accounts for the pair.
func (p *SPool) SwapExactInInstruction(params SwapParams) (*solana.GenericInstruction, error) {
	if _, err := p.PoolState(); err != nil {
		return nil, err
	}
	pricingProg, err := p.Pricing()
	if err != nil {
		return nil, err
	}

	srcLst, srcData, srcIndex, err := p.findReadyLst(params.InputMint)
	if err != nil {
		return nil, err
	}
	dstLst, dstData, dstIndex, err := p.findReadyLst(params.OutputMint)
	if err != nil {
		return nil, err
	}

	srcReserves, err := p.PoolReservesAddress(srcLst, srcData)
	if err != nil {
		return nil, fmt.Errorf("src reserves: %w", err)
	}
	dstReserves, err := p.PoolReservesAddress(dstLst, dstData)
	if err != nil {
		return nil, fmt.Errorf("dst reserves: %w", err)
	}
	feeAccumulator, err := p.protocolFeeAccumulator(dstLst, dstData)
	if err != nil {
		return nil, fmt.Errorf("protocol fee accumulator: %w", err)
	}

	pricingAccounts, err := pricingProg.PriceExactInAccounts(pricing.PriceExactInKeys{
		InputLstMint:  params.InputMint,
		OutputLstMint: params.OutputMint,
	})
	if err != nil {
		return nil, err
	}

	keys := state.SwapExactInKeys{
		Signer:                 params.TokenTransferAuthority,
		SrcLstMint:             params.InputMint,
		DstLstMint:             params.OutputMint,
		SrcLstAcc:              params.SourceTokenAccount,
		DstLstAcc:              params.DestinationTokenAccount,
		ProtocolFeeAccumulator: feeAccumulator,
		SrcLstTokenProgram:     srcData.TokenProgram,
		DstLstTokenProgram:     dstData.TokenProgram,
		PoolState:              p.poolStateAddr,
		LstStateList:           p.lstStateListAddr,
		SrcPoolReserves:        srcReserves,
		DstPoolReserves:        dstReserves,
	}

	return state.NewSwapExactInInstruction(
		p.programID,
		keys,
		state.SwapExactInFullArgs{
			SrcLstIndex:  srcIndex,
			DstLstIndex:  dstIndex,
			MinAmountOut: params.MinAmountOut,
			Amount:       params.Amount,
		},
		srcData.Calc.ProgramID(),
		srcData.Calc.IxAccounts(),
		dstData.Calc.ProgramID(),
		dstData.Calc.IxAccounts(),
		pricingProg.ProgramID(),
		pricingAccounts,
	)
}
