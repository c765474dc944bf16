package spool

import (
	"go.uber.org/zap"

	"github.com/mgild/spool/internal/state"
)

// updateLstStateList reconciles the binding list against a freshly fetched
// LST state list. When the list shape is unchanged (same length, same mint
// and calculator program at every index) only the raw bytes are swapped
// and every binding survives, cached rates included. Otherwise bindings
// are re-matched index by index: an entry keeps its binding if its mint
// and calculator program are unchanged at the same index, a moved entry
// reclaims its old binding by mint and calculator identity, and anything
// else ends up unbound. The new list and bytes are installed together only
// after matching succeeds, so a decode failure leaves the mirror on the
// previous snapshot.
func (p *SPool) updateLstStateList(newData []byte) error {
	newList, err := state.DecodeLstStateList(newData)
	if err != nil {
		return err
	}
	oldList, err := p.LstStateList()
	if err != nil {
		// Previous bytes are unreadable; rebind everything from scratch.
		oldList = nil
	}

	if len(newList) == len(oldList) && sameShape(newList, oldList) {
		p.lstStateListData = newData
		return nil
	}

	newBindings := make([]*LstData, len(newList))
	for i := range newList {
		ns := newList[i]
		if i < len(oldList) &&
			oldList[i].Mint.Equals(ns.Mint) &&
			oldList[i].SolValueCalculator.Equals(ns.SolValueCalculator) {
			newBindings[i] = p.lstDataList[i]
			continue
		}
		newBindings[i] = p.findBinding(ns)
		if newBindings[i] == nil {
			p.logger.Warn("lst binding lost",
				zap.String("mint", ns.Mint.String()),
				zap.String("calculator", ns.SolValueCalculator.String()),
			)
		}
	}

	p.lstDataList = newBindings
	p.lstStateListData = newData
	return nil
}

// sameShape reports whether two equal-length lists agree on mint and
// calculator program at every index.
func sameShape(a, b []state.LstState) bool {
	for i := range a {
		if !a[i].Mint.Equals(b[i].Mint) ||
			!a[i].SolValueCalculator.Equals(b[i].SolValueCalculator) {
			return false
		}
	}
	return true
}

// findBinding searches the current bindings for one matching the entry's
// mint and calculator program, so entries that merely moved on the list
// keep their calculator and its cached rate.
func (p *SPool) findBinding(ns state.LstState) *LstData {
	for _, ld := range p.lstDataList {
		if ld == nil {
			continue
		}
		if ld.Calc.LstMint().Equals(ns.Mint) && ld.Calc.ProgramID().Equals(ns.SolValueCalculator) {
			return ld
		}
	}
	return nil
}
