package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/berrybet/wagerd/internal/domain"
	"github.com/berrybet/wagerd/internal/infrastructure/metrics"
)

// AccountUseCase handles account business logic: registration, balance
// reads, and the deposit/withdrawal/bonus operations that route through the
// account store with a matching ledger entry in one transaction.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	statsRepo   StatsRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. Metrics are optional.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	statsRepo StatsRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		statsRepo:   statsRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	UserID         string
	InitialBalance int64
}

// CreateAccount creates a new account at registration, with zero or seeded
// balance. Accounts are never deleted, only deactivated.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if input.UserID == "" {
		return nil, domain.ErrInvalidUserID
	}
	if input.InitialBalance < 0 {
		return nil, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		UserID:    input.UserID,
		Balance:   input.InitialBalance,
		Version:   0,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, mapStorageErr(err)
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves the account for a user.
func (uc *AccountUseCase) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	return uc.accountRepo.GetByUserID(ctx, userID)
}

// GetBalance returns the user's current balance in cents.
func (uc *AccountUseCase) GetBalance(ctx context.Context, userID string) (int64, error) {
	account, err := uc.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

// GetStats returns the user's running aggregates.
func (uc *AccountUseCase) GetStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	return uc.statsRepo.GetByUserID(ctx, userID)
}

// Deposit credits the account and appends a deposit entry atomically.
func (uc *AccountUseCase) Deposit(ctx context.Context, userID string, amount int64, description string) (*domain.Account, error) {
	if description == "" {
		description = fmt.Sprintf("Depósito - Valor: %s", formatCents(amount))
	}
	return uc.adjust(ctx, userID, amount, domain.EntryDeposit, description)
}

// Withdraw debits the account and appends a withdrawal entry atomically.
// The non-negative balance invariant holds: overdrawing fails with
// ErrInsufficientFunds and nothing is written.
func (uc *AccountUseCase) Withdraw(ctx context.Context, userID string, amount int64, description string) (*domain.Account, error) {
	if description == "" {
		description = fmt.Sprintf("Saque - Valor: %s", formatCents(amount))
	}
	return uc.adjust(ctx, userID, -amount, domain.EntryWithdrawal, description)
}

// CreditBonus credits a promotional bonus with its ledger entry.
func (uc *AccountUseCase) CreditBonus(ctx context.Context, userID string, amount int64, description string) (*domain.Account, error) {
	if description == "" {
		description = fmt.Sprintf("Bônus - Valor: %s", formatCents(amount))
	}
	return uc.adjust(ctx, userID, amount, domain.EntryBonus, description)
}

// adjust is the single mutation path for non-wager balance changes: lock the
// account row, apply the signed delta, append the ledger entry, commit.
func (uc *AccountUseCase) adjust(ctx context.Context, userID string, delta int64, entryType domain.EntryType, description string) (*domain.Account, error) {
	if delta == 0 {
		return nil, domain.ErrInvalidAmount
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultStorageTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByUserIDForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, mapStorageErr(err)
	}

	if delta < 0 {
		if err := account.ValidateDebit(-delta); err != nil {
			return nil, err
		}
	} else {
		if err := account.ValidateCredit(delta); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	balance := account.Balance + delta
	version := account.Version + 1

	entry := &domain.Entry{
		ID:             uc.idGen.Generate(),
		UserID:         userID,
		Type:           entryType,
		Amount:         delta,
		BalanceBefore:  account.Balance,
		BalanceAfter:   balance,
		AccountVersion: version,
		Description:    description,
		CreatedAt:      now,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := uc.entryRepo.Append(ctx, tx, entry); err != nil {
		return nil, mapStorageErr(err)
	}
	if err := uc.accountRepo.UpdateBalance(ctx, tx, userID, balance, version, now); err != nil {
		return nil, mapStorageErr(err)
	}

	// Bonus credits stay out of the profit aggregate; only deposit, win,
	// withdrawal and bet movements count toward ranking profit.
	if entryType != domain.EntryBonus {
		statsDelta := domain.UserStats{UserID: userID, TotalProfit: delta, UpdatedAt: now}
		if err := uc.statsRepo.Apply(ctx, tx, statsDelta); err != nil {
			return nil, mapStorageErr(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapStorageErr(err)
	}

	if uc.metrics != nil {
		uc.metrics.AccountOperations.WithLabelValues(string(entryType)).Inc()
		uc.metrics.EntriesAppended.WithLabelValues(string(entryType)).Inc()
	}

	account.Balance = balance
	account.Version = version
	account.UpdatedAt = now

	return account, nil
}
