package accounts

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// Account is the latest fetched state of a single on-chain account.
type Account struct {
	Data  []byte
	Owner solana.PublicKey
}

// Map is a caller-supplied batch of account snapshots keyed by address.
// The core never fetches accounts itself; it only consumes a Map that the
// surrounding host filled in before calling refresh.
type Map map[solana.PublicKey]Account

// Get returns the snapshot for key, if present in the batch.
func (m Map) Get(key solana.PublicKey) (Account, bool) {
	acc, ok := m[key]
	return acc, ok
}

// TokenAccountBalance decodes an SPL token account snapshot and returns its
// amount.
func TokenAccountBalance(acc Account) (uint64, error) {
	var ta token.Account
	if err := bin.NewBinDecoder(acc.Data).Decode(&ta); err != nil {
		return 0, fmt.Errorf("decode token account: %w", err)
	}
	return ta.Amount, nil
}

// MintSupply decodes an SPL mint snapshot and returns its supply.
func MintSupply(acc Account) (uint64, error) {
	var m token.Mint
	if err := bin.NewBinDecoder(acc.Data).Decode(&m); err != nil {
		return 0, fmt.Errorf("decode mint: %w", err)
	}
	return m.Supply, nil
}
