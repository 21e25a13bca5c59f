package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/berrybet/wagerd/internal/domain"
	"github.com/berrybet/wagerd/internal/infrastructure/metrics"
)

// WagerUseCase is the wager engine: it resolves one bet atomically against
// the account store and the ledger. The sequence debit, bet entry, draw,
// credit, win entry, settlement runs inside a single transaction holding the
// user's account row lock, so a mid-sequence failure leaves account and
// ledger exactly as before the call.
type WagerUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	wagerRepo   WagerRepository
	statsRepo   StatsRepository
	drawer      OutcomeDrawer
	idGen       IDGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewWagerUseCase creates a new WagerUseCase. The retrier and metrics are
// optional; when the retrier is present, transient storage conflicts retry
// the whole operation.
func NewWagerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	wagerRepo WagerRepository,
	statsRepo StatsRepository,
	drawer OutcomeDrawer,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
) *WagerUseCase {
	return &WagerUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		wagerRepo:   wagerRepo,
		statsRepo:   statsRepo,
		drawer:      drawer,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     metrics,
	}
}

// PlaceWagerInput represents one bet request.
type PlaceWagerInput struct {
	UserID string
	Stake  int64
}

// WagerResult is what the caller gets back from a settled wager.
// ResultBalance on the wager is the sole truth for the new balance.
type WagerResult struct {
	Wager   *domain.Wager
	Outcome domain.OutcomeClass
}

// PlaceWager resolves one bet. Stake is validated before any storage is
// touched; insufficient funds reject the wager with no ledger entry written.
func (uc *WagerUseCase) PlaceWager(ctx context.Context, input PlaceWagerInput) (*WagerResult, error) {
	if input.UserID == "" {
		return nil, domain.ErrInvalidUserID
	}
	if input.Stake <= 0 || input.Stake > MaxStake {
		uc.countRejection(domain.ErrInvalidStake)
		return nil, domain.ErrInvalidStake
	}

	start := time.Now()

	var result *WagerResult
	var err error
	if uc.retrier == nil {
		result, err = uc.placeWager(ctx, input)
	} else {
		err = uc.retrier.Retry(ctx, func() error {
			var opErr error
			result, opErr = uc.placeWager(ctx, input)
			return opErr
		})
	}
	if err != nil {
		uc.countRejection(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WagersPlaced.Inc()
		uc.metrics.WagerDuration.Observe(time.Since(start).Seconds())
		uc.metrics.WagerStake.Observe(float64(input.Stake))
		uc.metrics.WagerOutcomes.WithLabelValues(result.Outcome.Label).Inc()
		uc.metrics.WagerPayout.Observe(float64(result.Wager.Payout))
		uc.metrics.EntriesAppended.WithLabelValues(string(domain.EntryBet)).Inc()
		if result.Wager.Payout > 0 {
			uc.metrics.EntriesAppended.WithLabelValues(string(domain.EntryWin)).Inc()
		}
	}

	return result, nil
}

// countRejection records business rejections; storage failures are not
// rejections and stay out of this counter.
func (uc *WagerUseCase) countRejection(err error) {
	if uc.metrics == nil {
		return
	}

	var reason string
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		reason = "insufficient_funds"
	case errors.Is(err, domain.ErrInvalidStake):
		reason = "invalid_stake"
	case errors.Is(err, domain.ErrAccountInactive):
		reason = "account_inactive"
	default:
		return
	}

	uc.metrics.WagersRejected.WithLabelValues(reason).Inc()
}

func (uc *WagerUseCase) placeWager(ctx context.Context, input PlaceWagerInput) (*WagerResult, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultStorageTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	defer tx.Rollback(ctx)

	// FundsReserved: lock the account row, check and debit the stake.
	account, err := uc.accountRepo.GetByUserIDForUpdate(ctx, tx, input.UserID)
	if err != nil {
		return nil, mapStorageErr(err)
	}

	if err := account.ValidateDebit(input.Stake); err != nil {
		// Rejected: no state change, no ledger entry.
		return nil, err
	}

	now := time.Now().UTC()
	wagerID := uc.idGen.Generate()

	balance := account.ApplyDebit(input.Stake)
	version := account.Version + 1

	betEntry := &domain.Entry{
		ID:             uc.idGen.Generate(),
		UserID:         input.UserID,
		WagerID:        wagerID,
		Type:           domain.EntryBet,
		Amount:         -input.Stake,
		BalanceBefore:  account.Balance,
		BalanceAfter:   balance,
		AccountVersion: version,
		Description:    fmt.Sprintf("Aposta na roleta - Valor: %s", formatCents(input.Stake)),
		CreatedAt:      now,
	}
	if err := uc.entryRepo.Append(ctx, tx, betEntry); err != nil {
		return nil, mapStorageErr(err)
	}
	if err := uc.accountRepo.UpdateBalance(ctx, tx, input.UserID, balance, version, now); err != nil {
		return nil, mapStorageErr(err)
	}

	// OutcomeDrawn: the draw consumes only the random source.
	class := uc.drawer.Draw()
	payout := class.Payout(input.Stake)

	if payout > 0 {
		before := balance
		balance += payout
		version++

		winEntry := &domain.Entry{
			ID:             uc.idGen.Generate(),
			UserID:         input.UserID,
			WagerID:        wagerID,
			Type:           domain.EntryWin,
			Amount:         payout,
			BalanceBefore:  before,
			BalanceAfter:   balance,
			AccountVersion: version,
			Description:    fmt.Sprintf("Ganho na roleta - Carta: %s - Valor: %s", class.Label, formatCents(payout)),
			CreatedAt:      now,
		}
		if err := uc.entryRepo.Append(ctx, tx, winEntry); err != nil {
			return nil, mapStorageErr(err)
		}
		if err := uc.accountRepo.UpdateBalance(ctx, tx, input.UserID, balance, version, now); err != nil {
			return nil, mapStorageErr(err)
		}
	}

	wager := &domain.Wager{
		ID:            wagerID,
		UserID:        input.UserID,
		Stake:         input.Stake,
		Outcome:       class.Label,
		Payout:        payout,
		ResultBalance: balance,
		State:         domain.StateSettled,
		CreatedAt:     now,
	}
	if err := wager.Validate(); err != nil {
		return nil, err
	}
	if err := uc.wagerRepo.Create(ctx, tx, wager); err != nil {
		return nil, mapStorageErr(err)
	}

	delta := domain.UserStats{
		UserID:       input.UserID,
		TotalBets:    1,
		TotalWagered: input.Stake,
		TotalProfit:  payout - input.Stake,
		UpdatedAt:    now,
	}
	if class.IsWin() {
		delta.TotalWins = 1
	} else {
		delta.TotalLosses = 1
	}
	if err := uc.statsRepo.Apply(ctx, tx, delta); err != nil {
		return nil, mapStorageErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapStorageErr(err)
	}

	return &WagerResult{Wager: wager, Outcome: class}, nil
}

// GetWager retrieves a settled wager by ID.
func (uc *WagerUseCase) GetWager(ctx context.Context, id string) (*domain.Wager, error) {
	return uc.wagerRepo.GetByID(ctx, id)
}

// ListWagersByUserInput represents input for listing wagers.
type ListWagersByUserInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListWagersByUser lists a user's settled wagers, most recent first.
func (uc *WagerUseCase) ListWagersByUser(ctx context.Context, input ListWagersByUserInput) ([]*domain.Wager, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	return uc.wagerRepo.ListByUser(ctx, input.UserID, input.Limit, input.Offset)
}

// mapStorageErr surfaces bounded-timeout expiry as the retryable storage
// timeout error; everything else passes through.
func mapStorageErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrStorageTimeout
	}
	return err
}

// formatCents renders integer cents as a BRL amount for ledger descriptions.
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%sR$ %d.%02d", sign, cents/100, cents%100)
}
