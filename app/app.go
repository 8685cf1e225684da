package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cosmos/cosmos-sdk/store"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	pruningtypes "github.com/cosmos/cosmos-sdk/pruning/types"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	tmdb "github.com/tendermint/tm-db"

	"github.com/GPTx-global/guru-dataoracle/x/dataoracle"
	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/keeper"
	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

const (
	// Name is the application name
	Name = "oracled"

	DefaultChainID = "guru-dataoracle-1"
)

// ErrAlreadyInitialized is returned by InitChain on a store that already holds state.
var ErrAlreadyInitialized = errors.New("store already initialized")

// EventListener receives the events of every committed call.
type EventListener func(height int64, events []abci.Event)

// Options configure the App.
type Options struct {
	ChainID string
	// Pruning is one of default, nothing, everything.
	Pruning string
	// Clock supplies block time. Defaults to time.Now in UTC.
	Clock func() time.Time
}

// App is the execution environment of the registry. It serializes every write
// into a single total order: each Deliver call runs to completion, and a
// successful one is committed as its own store version.
type App struct {
	mtx sync.RWMutex

	logger  log.Logger
	db      tmdb.DB
	cms     storetypes.CommitMultiStore
	chainID string
	clock   func() time.Time

	keys    map[string]*storetypes.KVStoreKey
	Keeper  keeper.Keeper
	handler dataoracle.Handler

	listeners []EventListener
}

var _ types.QueryServer = (*App)(nil)

// New mounts the registry store on db and loads its latest version.
func New(db tmdb.DB, logger log.Logger, opts Options) (*App, error) {
	if opts.ChainID == "" {
		opts.ChainID = DefaultChainID
	}
	if opts.Pruning == "" {
		opts.Pruning = pruningtypes.PruningOptionDefault
	}
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return time.Now().UTC() }
	}

	keys := sdk.NewKVStoreKeys(types.StoreKey)

	cms := store.NewCommitMultiStore(db)
	cms.SetPruning(pruningtypes.NewPruningOptionsFromString(opts.Pruning))
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "failed to load latest version")
	}

	k := keeper.NewKeeper(types.ModuleCdc, keys[types.StoreKey])

	return &App{
		logger:  logger.With("module", "app"),
		db:      db,
		cms:     cms,
		chainID: opts.ChainID,
		clock:   opts.Clock,
		keys:    keys,
		Keeper:  k,
		handler: dataoracle.NewHandler(k),
	}, nil
}

// Initialized reports whether genesis has been committed.
func (a *App) Initialized() bool {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	return a.cms.LastCommitID().Version > 0
}

// InitChain loads genesis into an empty store and commits it as version 1.
func (a *App) InitChain(genesis types.GenesisState) (err error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	if a.cms.LastCommitID().Version > 0 {
		return ErrAlreadyInitialized
	}
	if err := genesis.Validate(); err != nil {
		return errors.Wrap(err, "invalid genesis")
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("init genesis: %v", r)
		}
	}()

	cache := a.cms.CacheMultiStore()
	ctx := a.newContext(0).WithMultiStore(cache)
	dataoracle.InitGenesis(ctx, a.Keeper, genesis)
	cache.Write()

	commitID := a.cms.Commit()
	a.logger.Info("genesis committed", "owner", genesis.Owner, "hash", fmt.Sprintf("%X", commitID.Hash))
	return nil
}

// Deliver executes msg as the next call in the total order. A failed call
// leaves the store untouched.
func (a *App) Deliver(goCtx context.Context, msg types.Msg) (res *sdk.Result, height int64, err error) {
	defer telemetry.MeasureSince(time.Now(), Name, "deliver")

	a.mtx.Lock()
	defer a.mtx.Unlock()

	if err := goCtx.Err(); err != nil {
		return nil, 0, err
	}
	if a.cms.LastCommitID().Version == 0 {
		return nil, 0, errors.New("genesis has not been committed")
	}

	height = a.cms.LastCommitID().Version + 1
	ctx := a.newContext(height).WithContext(goCtx)

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("panic while delivering message", "type", msg.Type(), "panic", r)
			res, height, err = nil, 0, fmt.Errorf("panic while delivering %s: %v", msg.Type(), r)
		}
	}()

	res, err = a.handler(ctx, msg)
	if err != nil {
		a.logger.Debug("message rejected", "type", msg.Type(), "signer", msg.GetSigner(), "err", err)
		return nil, 0, err
	}

	a.cms.Commit()
	a.logger.Debug("message committed", "type", msg.Type(), "signer", msg.GetSigner(), "height", height)

	for _, l := range a.listeners {
		l(height, res.Events)
	}

	return res, height, nil
}

// AddEventListener registers l to be called after every committed call.
// Listeners run while the write lock is held and must not call back into the App.
func (a *App) AddEventListener(l EventListener) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	a.listeners = append(a.listeners, l)
}

// Height returns the last committed version.
func (a *App) Height() int64 {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	return a.cms.LastCommitID().Version
}

// ExportGenesis returns the committed state as a genesis document.
func (a *App) ExportGenesis() *types.GenesisState {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	return dataoracle.ExportGenesis(a.queryContext(context.Background()), a.Keeper)
}

// Close releases the database.
func (a *App) Close() error {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	return a.db.Close()
}

func (a *App) newContext(height int64) sdk.Context {
	header := tmproto.Header{
		ChainID: a.chainID,
		Height:  height,
		Time:    a.clock(),
	}
	return sdk.NewContext(a.cms, header, false, a.logger)
}

// queryContext returns a context over a throwaway cache of the committed state.
func (a *App) queryContext(goCtx context.Context) sdk.Context {
	header := tmproto.Header{
		ChainID: a.chainID,
		Height:  a.cms.LastCommitID().Version,
		Time:    a.clock(),
	}
	return sdk.NewContext(a.cms.CacheMultiStore(), header, false, a.logger).WithContext(goCtx)
}
