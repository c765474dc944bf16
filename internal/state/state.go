package state

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Fixed account layout sizes in bytes.
const (
	PoolStateSize = 176
	LstStateSize  = 80
)

// PoolState is the pool's singleton configuration account. It is only ever
// replaced wholesale after a successful decode, never field-patched.
type PoolState struct {
	TotalSolValue          uint64
	TradingProtocolFeeBps  uint16
	LpProtocolFeeBps       uint16
	Version                uint8
	IsDisabled             uint8
	IsRebalancing          uint8
	Padding                [1]uint8
	Admin                  solana.PublicKey
	RebalanceAuthority     solana.PublicKey
	ProtocolFeeBeneficiary solana.PublicKey
	PricingProgram         solana.PublicKey
	LpTokenMint            solana.PublicKey
}

// LstState is one entry of the pool's canonical ordered LST list. The list
// index doubles as the wire index in swap instructions.
type LstState struct {
	IsInputDisabled            uint8
	PoolReservesBump           uint8
	ProtocolFeeAccumulatorBump uint8
	Padding                    [5]uint8
	SolValue                   uint64
	Mint                       solana.PublicKey
	SolValueCalculator         solana.PublicKey
}

// DecodePoolState parses a pool state account's raw bytes.
func DecodePoolState(data []byte) (*PoolState, error) {
	if len(data) < PoolStateSize {
		return nil, fmt.Errorf("pool state: %d bytes, want %d: %w", len(data), PoolStateSize, ErrMalformedState)
	}
	var ps PoolState
	if err := bin.NewBinDecoder(data[:PoolStateSize]).Decode(&ps); err != nil {
		return nil, fmt.Errorf("pool state: %v: %w", err, ErrMalformedState)
	}
	return &ps, nil
}

// DecodeLstStateList parses an LST state list account's raw bytes. The
// account is a flat array of fixed-size entries.
func DecodeLstStateList(data []byte) ([]LstState, error) {
	if len(data)%LstStateSize != 0 {
		return nil, fmt.Errorf("lst state list: %d bytes is not a multiple of %d: %w", len(data), LstStateSize, ErrMalformedState)
	}
	list := make([]LstState, len(data)/LstStateSize)
	dec := bin.NewBinDecoder(data)
	for i := range list {
		if err := dec.Decode(&list[i]); err != nil {
			return nil, fmt.Errorf("lst state %d: %v: %w", i, err, ErrMalformedState)
		}
	}
	return list, nil
}

// EncodePoolState emits the fixed pool state layout. Used by hosts seeding
// fixtures and by tests; on-chain data is produced by the program itself.
func EncodePoolState(ps *PoolState) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewBinEncoder(buf).Encode(ps); err != nil {
		return nil, fmt.Errorf("encode pool state: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeLstStateList emits the flat LST list layout.
func EncodeLstStateList(list []LstState) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)
	for i := range list {
		if err := enc.Encode(&list[i]); err != nil {
			return nil, fmt.Errorf("encode lst state %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}
