package spool

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/mgild/spool/internal/accounts"
	"github.com/mgild/spool/internal/pricing"
	"github.com/mgild/spool/internal/state"
)

// AccountsToUpdate lists every account the mirror wants in the next
// snapshot batch: the two root accounts, the pricing oracle's accounts,
// the LP mint, and each bound LST's calculator accounts and reserve
// token account. A partially initialized mirror lists what it can.
func (p *SPool) AccountsToUpdate() []solana.PublicKey {
	res := []solana.PublicKey{p.lstStateListAddr, p.poolStateAddr}
	if p.pricingProg != nil {
		res = append(res, p.pricingProg.AccountsToUpdate()...)
	}
	if ps, err := p.PoolState(); err == nil {
		res = append(res, ps.LpTokenMint)
	}
	list, err := p.LstStateList()
	if err != nil {
		return res
	}
	for i := range list {
		if i >= len(p.lstDataList) || p.lstDataList[i] == nil {
			continue
		}
		ld := p.lstDataList[i]
		res = append(res, ld.Calc.AccountsToUpdate()...)
		if reserves, err := p.PoolReservesAddress(list[i], ld); err == nil {
			res = append(res, reserves)
		}
	}
	return res
}

// ReserveMints lists the mints this pool holds reserves of, plus the LP
// token mint once the pool state is known.
func (p *SPool) ReserveMints() []solana.PublicKey {
	list, err := p.LstStateList()
	if err != nil {
		return nil
	}
	mints := mintsOf(list)
	if ps, err := p.PoolState(); err == nil {
		mints = append(mints, ps.LpTokenMint)
	}
	return mints
}

// Update refreshes the mirror from a snapshot batch. Every field with a
// fresh snapshot is applied even when another field fails; the first
// failure is returned after the full pass. Accounts absent from the batch
// are skipped, so callers may fetch in partial batches.
//
// Order matters: calculators and reserves refresh against the current
// list, then the pricing oracle, then the list itself is reconciled, then
// the pool state (re-resolving the pricing oracle if the pool switched
// pricing programs), then the LP supply.
func (p *SPool) Update(snapshot accounts.Map) error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	list, err := p.LstStateList()
	record(err)
	for i := range list {
		if i >= len(p.lstDataList) || p.lstDataList[i] == nil {
			continue
		}
		ld := p.lstDataList[i]
		record(ld.Calc.Update(snapshot))

		reserves, err := p.PoolReservesAddress(list[i], ld)
		if err != nil {
			record(err)
			continue
		}
		acc, ok := snapshot.Get(reserves)
		if !ok {
			continue
		}
		bal, err := accounts.TokenAccountBalance(acc)
		if err != nil {
			record(fmt.Errorf("reserves %s: %w", reserves, err))
			continue
		}
		ld.ReservesBalance = &bal
	}

	if p.pricingProg != nil {
		record(p.pricingProg.Update(snapshot))
	}

	if acc, ok := snapshot.Get(p.lstStateListAddr); ok {
		record(p.updateLstStateList(acc.Data))
	}

	if acc, ok := snapshot.Get(p.poolStateAddr); ok {
		record(p.updatePoolState(acc.Data, snapshot))
	}

	if ps, err := p.PoolState(); err == nil {
		if acc, ok := snapshot.Get(ps.LpTokenMint); ok {
			supply, err := accounts.MintSupply(acc)
			if err != nil {
				record(fmt.Errorf("lp mint %s: %w", ps.LpTokenMint, err))
			} else {
				p.lpMintSupply = &supply
			}
		}
	}

	return firstErr
}

// updatePoolState installs a fresh pool state snapshot. When the pool has
// switched pricing programs, the oracle is re-resolved against the current
// mint list; an unresolvable program leaves the mirror without an oracle
// rather than failing the refresh.
func (p *SPool) updatePoolState(newData []byte, snapshot accounts.Map) error {
	ps, err := state.DecodePoolState(newData)
	if err != nil {
		return err
	}

	changed := p.pricingProg == nil || !p.pricingProg.ProgramID().Equals(ps.PricingProgram)
	if changed {
		list, err := p.LstStateList()
		if err != nil {
			return err
		}
		prog, err := pricing.New(ps.PricingProgram, mintsOf(list))
		if err != nil {
			p.logger.Warn("pricing program unresolvable",
				zap.String("program", ps.PricingProgram.String()),
				zap.Error(err),
			)
			p.pricingProg = nil
		} else {
			p.pricingProg = prog
			if err := prog.Update(snapshot); err != nil {
				p.poolStateData = newData
				return err
			}
		}
	}

	p.poolStateData = newData
	return nil
}
