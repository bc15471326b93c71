// Package sandbox runs the amm keeper against an in-memory multistore with a
// store-backed bank, one transaction per block. It backs the test harness and
// the paper-trading API.
package sandbox

import (
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/keeper"
	"github.com/paw-chain/pawswap/x/amm/types"
)

// Sandbox is a single-node AMM ledger. Deliver and Query are safe for
// concurrent use; transactions are applied one at a time.
type Sandbox struct {
	mu     sync.Mutex
	cms    storetypes.CommitMultiStore
	logger log.Logger
	chain  string
	height int64

	bank   *Bank
	keeper keeper.Keeper
}

// New builds a sandbox and initializes the amm module from genesis
func New(logger log.Logger, chainID string, genesis types.GenesisState) (*Sandbox, error) {
	ammKey := storetypes.NewKVStoreKey(types.StoreKey)
	bankKey := storetypes.NewKVStoreKey(BankStoreKey)

	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	// A nil db gives each store its own prefix of the root db.
	cms.MountStoreWithDB(ammKey, storetypes.StoreTypeIAVL, nil)
	cms.MountStoreWithDB(bankKey, storetypes.StoreTypeIAVL, nil)
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load sandbox store: %w", err)
	}

	bank := NewBank(bankKey)
	s := &Sandbox{
		cms:    cms,
		logger: logger,
		chain:  chainID,
		bank:   bank,
		keeper: keeper.NewKeeper(ammKey, bank),
	}

	if err := s.keeper.InitGenesis(s.context(s.cms, 0), genesis); err != nil {
		return nil, fmt.Errorf("failed to init amm genesis: %w", err)
	}
	s.cms.Commit()
	return s, nil
}

// Keeper returns the amm keeper
func (s *Sandbox) Keeper() keeper.Keeper {
	return s.keeper
}

// Bank returns the sandbox bank
func (s *Sandbox) Bank() *Bank {
	return s.bank
}

// Height returns the height of the last delivered block
func (s *Sandbox) Height() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

// Context returns a context at the current height for direct, single
// goroutine use such as tests. Writes through it are committed by the next
// Deliver.
func (s *Sandbox) Context() sdk.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.context(s.cms, s.height)
}

// Deliver executes fn as the only transaction of a new block and commits
// the block. fn runs on a branch of the store that is written back only when
// fn returns nil; a failed transaction still produces an empty block. A panic
// in fn leaves both state and height untouched. Events emitted by fn are
// returned even when it fails.
func (s *Sandbox) Deliver(fn func(ctx sdk.Context) error) (sdk.Events, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	height := s.height + 1
	branch := s.cms.CacheMultiStore()
	ctx := s.context(branch, height)
	err := fn(ctx)
	if err != nil {
		s.logger.Debug("sandbox tx failed", "height", height, "error", err)
	} else {
		branch.Write()
	}

	s.cms.Commit()
	s.height = height
	return ctx.EventManager().Events(), err
}

// Query runs fn against the latest state without producing a block. fn
// must not write.
func (s *Sandbox) Query(fn func(ctx sdk.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.context(s.cms.CacheMultiStore(), s.height))
}

func (s *Sandbox) context(ms storetypes.MultiStore, height int64) sdk.Context {
	header := cmtproto.Header{
		ChainID: s.chain,
		Height:  height,
		Time:    time.Now().UTC(),
	}
	return sdk.NewContext(ms, header, false, s.logger)
}
