package usecase_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/berrybet/wagerd/internal/domain"
	"github.com/berrybet/wagerd/internal/usecase"
)

// memStore is a transactional in-memory store used to exercise the wager
// engine's atomicity and per-user serialization. Writes are staged on the
// transaction and applied only on Commit; GetByUserIDForUpdate takes the
// user's lock and holds it until Commit or Rollback, mirroring a row lock.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	entries  []*domain.Entry
	wagers   map[string]*domain.Wager
	stats    map[string]*domain.UserStats
	locks    map[string]*sync.Mutex

	// failEntry, when set, injects a storage fault on matching appends.
	failEntry func(*domain.Entry) error
}

func newMemStore() *memStore {
	return &memStore{
		accounts: make(map[string]*domain.Account),
		wagers:   make(map[string]*domain.Wager),
		stats:    make(map[string]*domain.UserStats),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *memStore) seedAccount(userID string, balance int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[userID] = &domain.Account{
		ID:      "acc-" + userID,
		UserID:  userID,
		Balance: balance,
		Active:  true,
	}
	s.locks[userID] = &sync.Mutex{}
}

func (s *memStore) balance(userID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[userID].Balance
}

func (s *memStore) entriesFor(userID string, typ domain.EntryType) []*domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Entry
	for _, e := range s.entries {
		if e.UserID == userID && (typ == "" || e.Type == typ) {
			out = append(out, e)
		}
	}
	return out
}

type balanceUpdate struct {
	userID  string
	balance int64
	version int64
}

type memTx struct {
	store   *memStore
	entries []*domain.Entry
	wagers  []*domain.Wager
	updates []balanceUpdate
	deltas  []domain.UserStats
	locked  []string
	done    bool
}

func (t *memTx) lock(userID string) {
	for _, id := range t.locked {
		if id == userID {
			return
		}
	}
	t.store.mu.Lock()
	l := t.store.locks[userID]
	t.store.mu.Unlock()
	if l != nil {
		l.Lock()
		t.locked = append(t.locked, userID)
	}
}

func (t *memTx) release() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, id := range t.locked {
		t.store.locks[id].Unlock()
	}
	t.locked = nil
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Lock()
	for _, e := range t.entries {
		t.store.entries = append(t.store.entries, e)
	}
	for _, w := range t.wagers {
		t.store.wagers[w.ID] = w
	}
	for _, u := range t.updates {
		acc := t.store.accounts[u.userID]
		acc.Balance = u.balance
		acc.Version = u.version
	}
	for _, d := range t.deltas {
		st, ok := t.store.stats[d.UserID]
		if !ok {
			st = &domain.UserStats{UserID: d.UserID}
			t.store.stats[d.UserID] = st
		}
		st.TotalBets += d.TotalBets
		st.TotalWins += d.TotalWins
		st.TotalLosses += d.TotalLosses
		st.TotalWagered += d.TotalWagered
		st.TotalProfit += d.TotalProfit
	}
	t.store.mu.Unlock()
	t.release()
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.release()
	return nil
}

type memTxManager struct{ store *memStore }

func (m *memTxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	return &memTx{store: m.store}, nil
}

type memAccountRepo struct{ store *memStore }

func (r *memAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	r.store.seedAccount(account.UserID, account.Balance)
	return nil
}

func (r *memAccountRepo) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	acc, ok := r.store.accounts[userID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *acc
	return &cp, nil
}

func (r *memAccountRepo) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Account, error) {
	t := tx.(*memTx)
	t.lock(userID)
	return r.GetByUserID(ctx, userID)
}

func (r *memAccountRepo) UpdateBalance(ctx context.Context, tx usecase.Transaction, userID string, balance, version int64, updatedAt time.Time) error {
	t := tx.(*memTx)
	t.updates = append(t.updates, balanceUpdate{userID: userID, balance: balance, version: version})
	return nil
}

func (r *memAccountRepo) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*domain.Account, 0, len(r.store.accounts))
	for _, acc := range r.store.accounts {
		cp := *acc
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type memEntryRepo struct{ store *memStore }

func (r *memEntryRepo) Append(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if r.store.failEntry != nil {
		if err := r.store.failEntry(entry); err != nil {
			return err
		}
	}
	t := tx.(*memTx)
	t.entries = append(t.entries, entry)
	return nil
}

func (r *memEntryRepo) ListByUser(ctx context.Context, userID string, typeFilter domain.EntryType, limit, offset int) ([]*domain.Entry, error) {
	all := r.store.entriesFor(userID, typeFilter)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memEntryRepo) SumByUser(ctx context.Context, userID string) (int64, error) {
	var sum int64
	for _, e := range r.store.entriesFor(userID, "") {
		sum += e.Amount
	}
	return sum, nil
}

type memWagerRepo struct{ store *memStore }

func (r *memWagerRepo) Create(ctx context.Context, tx usecase.Transaction, wager *domain.Wager) error {
	t := tx.(*memTx)
	t.wagers = append(t.wagers, wager)
	return nil
}

func (r *memWagerRepo) GetByID(ctx context.Context, id string) (*domain.Wager, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if w, ok := r.store.wagers[id]; ok {
		return w, nil
	}
	return nil, domain.ErrWagerNotFound
}

func (r *memWagerRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Wager, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domain.Wager
	for _, w := range r.store.wagers {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

type memStatsRepo struct{ store *memStore }

func (r *memStatsRepo) Apply(ctx context.Context, tx usecase.Transaction, delta domain.UserStats) error {
	t := tx.(*memTx)
	t.deltas = append(t.deltas, delta)
	return nil
}

func (r *memStatsRepo) GetByUserID(ctx context.Context, userID string) (*domain.UserStats, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if s, ok := r.store.stats[userID]; ok {
		cp := *s
		return &cp, nil
	}
	return &domain.UserStats{UserID: userID}, nil
}

func (r *memStatsRepo) TopByProfit(ctx context.Context, limit int) ([]*domain.RankRow, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rows := make([]*domain.RankRow, 0, len(r.store.stats))
	for _, s := range r.store.stats {
		row := &domain.RankRow{UserID: s.UserID, TotalProfit: s.TotalProfit}
		if acc, ok := r.store.accounts[s.UserID]; ok {
			row.Balance = acc.Balance
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalProfit != rows[j].TotalProfit {
			return rows[i].TotalProfit > rows[j].TotalProfit
		}
		if rows[i].Balance != rows[j].Balance {
			return rows[i].Balance > rows[j].Balance
		}
		return rows[i].UserID < rows[j].UserID
	})
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}
