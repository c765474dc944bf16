// Package catalog is the static LST metadata table used to bootstrap which
// valuation family applies to which mint. It is consulted at construction
// time only; reconciliation never needs it.
package catalog

import (
	"github.com/gagliardetto/solana-go"
)

// Family identifies a value calculator family.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyNative
	FamilySplStakePool
	FamilySanctumSpl
	FamilyMarinade
	FamilyLido
)

// Entry is the static metadata of one known LST.
type Entry struct {
	Mint         solana.PublicKey
	TokenProgram solana.PublicKey
	Family       Family

	// Pool is the family's main state account: the stake pool address for
	// SPL pools, the protocol state for Marinade/Lido. Unused for the
	// native family.
	Pool solana.PublicKey
}

// Catalog indexes entries by mint.
type Catalog struct {
	entries map[solana.PublicKey]Entry
}

// New builds a catalog from a list of entries. Later duplicates win.
func New(entries []Entry) *Catalog {
	m := make(map[solana.PublicKey]Entry, len(entries))
	for _, e := range entries {
		m[e.Mint] = e
	}
	return &Catalog{entries: m}
}

// Lookup returns the entry for a mint, if the mint is known.
func (c *Catalog) Lookup(mint solana.PublicKey) (Entry, bool) {
	e, ok := c.entries[mint]
	return e, ok
}

// Len returns the number of known LSTs.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Default is the built-in mainnet catalog.
func Default() *Catalog {
	return New([]Entry{
		{
			Mint:         solana.SolMint,
			TokenProgram: solana.TokenProgramID,
			Family:       FamilyNative,
		},
		{
			Mint:         solana.MustPublicKeyFromBase58("J1toso1uCHvby22szRVcSbGnSBYonm8AbF824UkUNmHn"),
			TokenProgram: solana.TokenProgramID,
			Family:       FamilySplStakePool,
			Pool:         solana.MustPublicKeyFromBase58("Jito4APyf642JPZPx3hGc6WWJ8zPKtRbRs4P815Awbb"),
		},
		{
			Mint:         solana.MustPublicKeyFromBase58("jupSoLaHXQiZZTSfEWMTRRgpnyFm8f6sZdosWBjx93v"),
			TokenProgram: solana.TokenProgramID,
			Family:       FamilySanctumSpl,
			Pool:         solana.MustPublicKeyFromBase58("8VpRhuxa7sUUepdY3kQiTmX9rS5vx4WgaXiAnXq4KCtr"),
		},
		{
			Mint:         solana.MustPublicKeyFromBase58("mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So"),
			TokenProgram: solana.TokenProgramID,
			Family:       FamilyMarinade,
			Pool:         solana.MustPublicKeyFromBase58("8szGkuLTAux9XMgZ2vtY39jVSowEcpBfFfD8hXSEqdGC"),
		},
		{
			Mint:         solana.MustPublicKeyFromBase58("7dHbWXmci3dT8UFYWYZweBLXgycu7Y3iL6trKn1Y7ARj"),
			TokenProgram: solana.TokenProgramID,
			Family:       FamilyLido,
			Pool:         solana.MustPublicKeyFromBase58("49Yi1TKkNyYjPAFdR9LBvoHcUjuPX4Df5T5yv39w2XTn"),
		},
	})
}
