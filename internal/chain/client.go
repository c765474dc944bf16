// Package chain wraps the Solana RPC client used to fill account snapshot
// batches for the pool mirror.
package chain

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/mgild/spool/internal/accounts"
)

// getMultipleAccounts caps keys per request.
const fetchChunkSize = 100

// Client wraps a Solana JSON-RPC client.
type Client struct {
	rpcClient *rpc.Client
}

// NewClient creates a new chain client from the RPC URL.
func NewClient(rpcURL string) *Client {
	return &Client{rpcClient: rpc.New(rpcURL)}
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// FetchAccounts fetches the given accounts in chunks and returns them as a
// snapshot batch. Accounts that do not exist on chain are left out of the
// batch rather than failing the fetch.
func (c *Client) FetchAccounts(ctx context.Context, keys []solana.PublicKey) (accounts.Map, error) {
	snapshot := make(accounts.Map, len(keys))
	for start := 0; start < len(keys); start += fetchChunkSize {
		end := start + fetchChunkSize
		if end > len(keys) {
			end = len(keys)
		}
		chunk := keys[start:end]

		res, err := c.rpcClient.GetMultipleAccountsWithOpts(ctx, chunk, &rpc.GetMultipleAccountsOpts{
			Commitment: rpc.CommitmentConfirmed,
		})
		if err != nil {
			return nil, fmt.Errorf("get multiple accounts: %w", err)
		}
		if len(res.Value) != len(chunk) {
			return nil, fmt.Errorf("get multiple accounts: %d results for %d keys", len(res.Value), len(chunk))
		}
		for i, acc := range res.Value {
			if acc == nil {
				continue
			}
			snapshot[chunk[i]] = accounts.Account{
				Data:  acc.Data.GetBinary(),
				Owner: acc.Owner,
			}
		}
	}
	return snapshot, nil
}
