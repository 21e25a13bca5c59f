package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berrybet/wagerd/internal/domain"
	"github.com/berrybet/wagerd/internal/usecase"
	"github.com/berrybet/wagerd/internal/usecase/mocks"
)

var (
	masterClass = domain.OutcomeClass{Label: "master", Weight: 140, Multiplier: decimal.NewFromFloat(1.7)}
	lossClass   = domain.OutcomeClass{Label: "perca", Weight: 6435, Multiplier: decimal.Zero}
)

func newEngine(store *memStore, drawer usecase.OutcomeDrawer) *usecase.WagerUseCase {
	return usecase.NewWagerUseCase(
		&memTxManager{store: store},
		&memAccountRepo{store: store},
		&memEntryRepo{store: store},
		&memWagerRepo{store: store},
		&memStatsRepo{store: store},
		drawer,
		mocks.NewMockIDGenerator(),
		nil,
		nil,
	)
}

func TestPlaceWagerRejectsInvalidStake(t *testing.T) {
	store := newMemStore()
	store.seedAccount("u1", 10000)
	uc := newEngine(store, &mocks.MockDrawer{Classes: []domain.OutcomeClass{lossClass}})

	for _, stake := range []int64{0, -1, usecase.MaxStake + 1} {
		_, err := uc.PlaceWager(context.Background(), usecase.PlaceWagerInput{UserID: "u1", Stake: stake})
		assert.ErrorIs(t, err, domain.ErrInvalidStake, "stake %d", stake)
	}

	// Nothing touched storage.
	assert.Equal(t, int64(10000), store.balance("u1"))
	assert.Empty(t, store.entriesFor("u1", ""))
}

func TestPlaceWagerInsufficientFunds(t *testing.T) {
	store := newMemStore()
	store.seedAccount("u1", 500)
	uc := newEngine(store, &mocks.MockDrawer{Classes: []domain.OutcomeClass{masterClass}})

	_, err := uc.PlaceWager(context.Background(), usecase.PlaceWagerInput{UserID: "u1", Stake: 1000})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Rejected before any state change: no ledger entry, balance intact.
	assert.Equal(t, int64(500), store.balance("u1"))
	assert.Empty(t, store.entriesFor("u1", ""))
}

func TestPlaceWagerUnknownUser(t *testing.T) {
	store := newMemStore()
	uc := newEngine(store, &mocks.MockDrawer{Classes: []domain.OutcomeClass{lossClass}})

	_, err := uc.PlaceWager(context.Background(), usecase.PlaceWagerInput{UserID: "ghost", Stake: 100})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestPlaceWagerWin(t *testing.T) {
	// Balance 10000 (R$100), stake 1000 (R$10), master pays 1.7 → final 10700.
	store := newMemStore()
	store.seedAccount("u1", 10000)
	uc := newEngine(store, &mocks.MockDrawer{Classes: []domain.OutcomeClass{masterClass}})

	result, err := uc.PlaceWager(context.Background(), usecase.PlaceWagerInput{UserID: "u1", Stake: 1000})
	require.NoError(t, err)

	assert.Equal(t, "master", result.Wager.Outcome)
	assert.Equal(t, int64(1700), result.Wager.Payout)
	assert.Equal(t, int64(10700), result.Wager.ResultBalance)
	assert.Equal(t, domain.StateSettled, result.Wager.State)
	assert.Equal(t, int64(10700), store.balance("u1"))

	bets := store.entriesFor("u1", domain.EntryBet)
	wins := store.entriesFor("u1", domain.EntryWin)
	require.Len(t, bets, 1)
	require.Len(t, wins, 1)
	assert.Equal(t, int64(-1000), bets[0].Amount)
	assert.Equal(t, int64(1700), wins[0].Amount)
	assert.Equal(t, result.Wager.ID, bets[0].WagerID)
	assert.Equal(t, result.Wager.ID, wins[0].WagerID)
}

func TestPlaceWagerLoss(t *testing.T) {
	store := newMemStore()
	store.seedAccount("u1", 10000)
	uc := newEngine(store, &mocks.MockDrawer{Classes: []domain.OutcomeClass{lossClass}})

	result, err := uc.PlaceWager(context.Background(), usecase.PlaceWagerInput{UserID: "u1", Stake: 1000})
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.Wager.Payout)
	assert.Equal(t, int64(9000), result.Wager.ResultBalance)
	assert.Equal(t, int64(9000), store.balance("u1"))

	// Exactly one bet entry, no win entry for a loss.
	assert.Len(t, store.entriesFor("u1", domain.EntryBet), 1)
	assert.Empty(t, store.entriesFor("u1", domain.EntryWin))
}

func TestPlaceWagerAtomicRollbackOnWinEntryFault(t *testing.T) {
	store := newMemStore()
	store.seedAccount("u1", 10000)

	// Storage fails right after the debit, when the win entry is appended.
	storageErr := errors.New("connection reset")
	store.failEntry = func(e *domain.Entry) error {
		if e.Type == domain.EntryWin {
			return storageErr
		}
		return nil
	}

	uc := newEngine(store, &mocks.MockDrawer{Classes: []domain.OutcomeClass{masterClass}})

	_, err := uc.PlaceWager(context.Background(), usecase.PlaceWagerInput{UserID: "u1", Stake: 1000})
	require.ErrorIs(t, err, storageErr)

	// Full rollback: pre-wager balance, no orphan bet entry, no wager row.
	assert.Equal(t, int64(10000), store.balance("u1"))
	assert.Empty(t, store.entriesFor("u1", ""))
	assert.Empty(t, store.wagers)
}

func TestPlaceWagerConservation(t *testing.T) {
	store := newMemStore()
	store.seedAccount("u1", 100000)
	uc := newEngine(store, &mocks.MockDrawer{Classes: []domain.OutcomeClass{
		masterClass, lossClass, lossClass,
		{Label: "miseria", Weight: 2625, Multiplier: decimal.NewFromFloat(1.005)},
	}})

	var stakes, payouts int64
	for i := 0; i < 40; i++ {
		stake := int64(100 + i*13)
		result, err := uc.PlaceWager(context.Background(), usecase.PlaceWagerInput{UserID: "u1", Stake: stake})
		require.NoError(t, err)
		stakes += stake
		payouts += result.Wager.Payout
	}

	// finalBalance = initialBalance - Σstakes + Σpayouts, exactly.
	assert.Equal(t, 100000-stakes+payouts, store.balance("u1"))

	// The ledger reconstructs the same movement.
	sum, err := (&memEntryRepo{store: store}).SumByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, payouts-stakes, sum)
}

func TestPlaceWagerPerUserSerialization(t *testing.T) {
	// 100 simultaneous stake-1 wagers against balance 50: exactly 50 settle
	// and 50 reject, and conservation holds.
	store := newMemStore()
	store.seedAccount("u1", 50)
	uc := newEngine(store, &mocks.MockDrawer{Classes: []domain.OutcomeClass{lossClass}})

	var wg sync.WaitGroup
	var mu sync.Mutex
	var settled, rejected int

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.PlaceWager(context.Background(), usecase.PlaceWagerInput{UserID: "u1", Stake: 1})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				settled++
			case errors.Is(err, domain.ErrInsufficientFunds):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, settled)
	assert.Equal(t, 50, rejected)
	assert.Equal(t, int64(0), store.balance("u1"))
	assert.Len(t, store.entriesFor("u1", domain.EntryBet), 50)
}

func TestPlaceWagerCrossUserParallelism(t *testing.T) {
	store := newMemStore()
	store.seedAccount("u1", 1000)
	store.seedAccount("u2", 1000)
	uc := newEngine(store, &mocks.MockDrawer{Classes: []domain.OutcomeClass{lossClass}})

	var wg sync.WaitGroup
	for _, userID := range []string{"u1", "u2"} {
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_, err := uc.PlaceWager(context.Background(), usecase.PlaceWagerInput{UserID: id, Stake: 10})
				assert.NoError(t, err)
			}(userID)
		}
	}
	wg.Wait()

	assert.Equal(t, int64(800), store.balance("u1"))
	assert.Equal(t, int64(800), store.balance("u2"))
}

func TestPlaceWagerStatsAggregate(t *testing.T) {
	store := newMemStore()
	store.seedAccount("u1", 10000)
	uc := newEngine(store, &mocks.MockDrawer{Classes: []domain.OutcomeClass{masterClass, lossClass}})

	_, err := uc.PlaceWager(context.Background(), usecase.PlaceWagerInput{UserID: "u1", Stake: 1000})
	require.NoError(t, err)
	_, err = uc.PlaceWager(context.Background(), usecase.PlaceWagerInput{UserID: "u1", Stake: 500})
	require.NoError(t, err)

	stats, err := (&memStatsRepo{store: store}).GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalBets)
	assert.Equal(t, int64(1), stats.TotalWins)
	assert.Equal(t, int64(1), stats.TotalLosses)
	assert.Equal(t, int64(1500), stats.TotalWagered)
	// master: +1700-1000, loss: -500
	assert.Equal(t, int64(200), stats.TotalProfit)
}

func TestPlaceWagerRetriesTransientConflicts(t *testing.T) {
	store := newMemStore()
	store.seedAccount("u1", 10000)

	attempts := 0
	retrier := retrierFunc(func(ctx context.Context, op func() error) error {
		for {
			attempts++
			if err := op(); err == nil || attempts >= 3 {
				return err
			}
		}
	})

	transient := errors.New("serialization failure")
	calls := 0
	store.failEntry = func(e *domain.Entry) error {
		calls++
		if calls == 1 {
			return transient
		}
		return nil
	}

	uc := usecase.NewWagerUseCase(
		&memTxManager{store: store},
		&memAccountRepo{store: store},
		&memEntryRepo{store: store},
		&memWagerRepo{store: store},
		&memStatsRepo{store: store},
		&mocks.MockDrawer{Classes: []domain.OutcomeClass{lossClass}},
		mocks.NewMockIDGenerator(),
		retrier,
		nil,
	)

	result, err := uc.PlaceWager(context.Background(), usecase.PlaceWagerInput{UserID: "u1", Stake: 1000})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)

	// No double-applied debit from the retry.
	assert.Equal(t, int64(9000), result.Wager.ResultBalance)
	assert.Equal(t, int64(9000), store.balance("u1"))
	assert.Len(t, store.entriesFor("u1", domain.EntryBet), 1)
}

type retrierFunc func(ctx context.Context, op func() error) error

func (f retrierFunc) Retry(ctx context.Context, op func() error) error {
	return f(ctx, op)
}
