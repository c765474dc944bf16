package state

import (
	"github.com/gagliardetto/solana-go"
)

// SetAdminKeys is the static account set of a SetAdmin instruction. Unlike
// swaps, admin changes need no variable account tail; the whole set falls
// out of the pool state.
type SetAdminKeys struct {
	CurrentAdmin solana.PublicKey
	NewAdmin     solana.PublicKey
	PoolState    solana.PublicKey
}

// ResolveSetAdmin builds the SetAdmin account set from a decoded pool state.
func ResolveSetAdmin(poolStateAddr solana.PublicKey, ps *PoolState, newAdmin solana.PublicKey) SetAdminKeys {
	return SetAdminKeys{
		CurrentAdmin: ps.Admin,
		NewAdmin:     newAdmin,
		PoolState:    poolStateAddr,
	}
}
