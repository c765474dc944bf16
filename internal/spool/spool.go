// Package spool maintains an in-memory mirror of one S-pool's on-chain
// state and answers quote and swap-assembly requests against it. The
// mirror never fetches accounts itself; the host supplies snapshot batches
// and calls Update between reads.
package spool

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/mgild/spool/internal/accounts"
	"github.com/mgild/spool/internal/calc"
	"github.com/mgild/spool/internal/catalog"
	"github.com/mgild/spool/internal/pricing"
	"github.com/mgild/spool/internal/state"
)

// LstData is the per-index binding of a supported LST: its bound value
// calculator, the last observed reserve balance, and its token program.
// A nil *LstData means the LST at that index is unrecognized.
type LstData struct {
	Calc            calc.SolValueCalc
	ReservesBalance *uint64
	TokenProgram    solana.PublicKey
}

// SPool mirrors one pool instance. Indices of lstDataList match the
// decoded LST state list. The mirror is single-owner; concurrent use
// requires external mutual exclusion over the whole struct.
type SPool struct {
	programID        solana.PublicKey
	lstStateListAddr solana.PublicKey
	poolStateAddr    solana.PublicKey

	poolStateData    []byte // nil until first fetched
	lstStateListData []byte
	lstDataList      []*LstData
	pricingProg      pricing.Program // nil until resolved
	lpMintSupply     *uint64

	logger *zap.Logger
}

// InitAccounts returns the two root accounts that must be fetched to
// initialize a mirror for the given controller program.
func InitAccounts(programID solana.PublicKey) (lstStateList, poolState solana.PublicKey, err error) {
	lstStateList, _, err = state.FindLstStateListAddress(programID)
	if err != nil {
		return lstStateList, poolState, fmt.Errorf("derive lst state list: %w", err)
	}
	poolState, _, err = state.FindPoolStateAddress(programID)
	if err != nil {
		return lstStateList, poolState, fmt.Errorf("derive pool state: %w", err)
	}
	return lstStateList, poolState, nil
}

// NewFromLstStateList constructs a partially initialized mirror from an
// LST state list snapshot. Pool state and pricing oracle stay absent until
// the first Update that carries them. Unrecognized LSTs get nil bindings
// rather than failing construction.
func NewFromLstStateList(programID solana.PublicKey, lstStateListData []byte, cat *catalog.Catalog, logger *zap.Logger) (*SPool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	lstStateListAddr, poolStateAddr, err := InitAccounts(programID)
	if err != nil {
		return nil, err
	}
	list, err := state.DecodeLstStateList(lstStateListData)
	if err != nil {
		return nil, err
	}

	lstDataList := make([]*LstData, len(list))
	for i := range list {
		lstDataList[i] = tryLstData(cat, list[i])
		if lstDataList[i] == nil {
			logger.Warn("unsupported lst",
				zap.String("mint", list[i].Mint.String()),
				zap.String("calculator", list[i].SolValueCalculator.String()),
			)
		}
	}

	return &SPool{
		programID:        programID,
		lstStateListAddr: lstStateListAddr,
		poolStateAddr:    poolStateAddr,
		lstStateListData: lstStateListData,
		lstDataList:      lstDataList,
		logger:           logger,
	}, nil
}

// NewFromFetchedAccounts constructs a fully initialized mirror from a
// snapshot batch containing both root accounts.
func NewFromFetchedAccounts(programID solana.PublicKey, snapshot accounts.Map, cat *catalog.Catalog, logger *zap.Logger) (*SPool, error) {
	lstStateListAddr, poolStateAddr, err := InitAccounts(programID)
	if err != nil {
		return nil, err
	}
	listAcc, ok := snapshot.Get(lstStateListAddr)
	if !ok {
		return nil, fmt.Errorf("lst state list %s: %w", lstStateListAddr, state.ErrNotReady)
	}
	poolAcc, ok := snapshot.Get(poolStateAddr)
	if !ok {
		return nil, fmt.Errorf("pool state %s: %w", poolStateAddr, state.ErrNotReady)
	}

	p, err := NewFromLstStateList(programID, listAcc.Data, cat, logger)
	if err != nil {
		return nil, err
	}
	ps, err := state.DecodePoolState(poolAcc.Data)
	if err != nil {
		return nil, err
	}
	list, err := p.LstStateList()
	if err != nil {
		return nil, err
	}
	prog, err := pricing.New(ps.PricingProgram, mintsOf(list))
	if err != nil {
		return nil, err
	}
	p.poolStateData = poolAcc.Data
	p.pricingProg = prog
	return p, nil
}

// PoolState decodes the last fetched pool state.
func (p *SPool) PoolState() (*state.PoolState, error) {
	if p.poolStateData == nil {
		return nil, fmt.Errorf("pool state: %w", state.ErrNotReady)
	}
	return state.DecodePoolState(p.poolStateData)
}

// LstStateList decodes the last fetched LST state list.
func (p *SPool) LstStateList() ([]state.LstState, error) {
	return state.DecodeLstStateList(p.lstStateListData)
}

// Pricing returns the bound pricing oracle.
func (p *SPool) Pricing() (pricing.Program, error) {
	if p.pricingProg == nil {
		return nil, fmt.Errorf("pricing program: %w", state.ErrNotReady)
	}
	return p.pricingProg, nil
}

// LpMintSupply returns the last observed LP token supply.
func (p *SPool) LpMintSupply() (uint64, error) {
	if p.lpMintSupply == nil {
		return 0, fmt.Errorf("lp mint supply: %w", state.ErrNotReady)
	}
	return *p.lpMintSupply, nil
}

// ProgramID returns the controller program this mirror tracks.
func (p *SPool) ProgramID() solana.PublicKey {
	return p.programID
}

// PoolReservesAddress recreates the pool's reserve token account for an
// LST from the bump stored in its state entry.
func (p *SPool) PoolReservesAddress(ls state.LstState, ld *LstData) (solana.PublicKey, error) {
	return state.CreateAtaAddress(p.poolStateAddr, ld.TokenProgram, ls.Mint, ls.PoolReservesBump)
}

// protocolFeeAccumulator recreates the protocol fee token account for an
// LST, owned by the program's protocol fee authority.
func (p *SPool) protocolFeeAccumulator(ls state.LstState, ld *LstData) (solana.PublicKey, error) {
	authority, _, err := state.FindProtocolFeeAddress(p.programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive protocol fee authority: %w", err)
	}
	return state.CreateAtaAddress(authority, ld.TokenProgram, ls.Mint, ls.ProtocolFeeAccumulatorBump)
}

// findReadyLst returns the state, binding and index of a supported LST.
func (p *SPool) findReadyLst(mint solana.PublicKey) (state.LstState, *LstData, int, error) {
	list, err := p.LstStateList()
	if err != nil {
		return state.LstState{}, nil, 0, err
	}
	for i := range list {
		if !list[i].Mint.Equals(mint) {
			continue
		}
		if i >= len(p.lstDataList) || p.lstDataList[i] == nil {
			return state.LstState{}, nil, 0, fmt.Errorf("lst %s: %w", mint, ErrUnsupported)
		}
		return list[i], p.lstDataList[i], i, nil
	}
	return state.LstState{}, nil, 0, fmt.Errorf("lst %s: %w", mint, ErrNotFound)
}

// tryLstData binds a value calculator to an LST state entry via the static
// catalog. Returns nil when the mint is unknown or the entry's configured
// calculator program does not match the family's.
func tryLstData(cat *catalog.Catalog, ls state.LstState) *LstData {
	e, ok := cat.Lookup(ls.Mint)
	if !ok {
		return nil
	}
	var c calc.SolValueCalc
	switch e.Family {
	case catalog.FamilyNative:
		c = calc.NewWsolCalc(e.Mint)
	case catalog.FamilySplStakePool:
		c = calc.NewStakePoolCalc(e.Mint, e.Pool)
	case catalog.FamilySanctumSpl:
		c = calc.NewSanctumSplCalc(e.Mint, e.Pool)
	case catalog.FamilyMarinade:
		c = calc.NewMarinadeCalc(e.Mint, e.Pool)
	case catalog.FamilyLido:
		c = calc.NewLidoCalc(e.Mint, e.Pool)
	default:
		return nil
	}
	if !c.ProgramID().Equals(ls.SolValueCalculator) {
		return nil
	}
	return &LstData{
		Calc:         c,
		TokenProgram: e.TokenProgram,
	}
}

func mintsOf(list []state.LstState) []solana.PublicKey {
	mints := make([]solana.PublicKey, len(list))
	for i := range list {
		mints[i] = list[i].Mint
	}
	return mints
}
