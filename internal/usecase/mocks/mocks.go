// Package mocks provides hand-rolled mock implementations of the usecase
// interfaces. Each mock keeps simple in-memory state and exposes function
// fields to override individual behaviors per test.
package mocks

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/berrybet/wagerd/internal/domain"
	"github.com/berrybet/wagerd/internal/usecase"
)

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.Entry

	AppendFunc     func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	ListByUserFunc func(ctx context.Context, userID string, typeFilter domain.EntryType, limit, offset int) ([]*domain.Entry, error)
	SumByUserFunc  func(ctx context.Context, userID string) (int64, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

func (m *MockEntryRepository) Append(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockEntryRepository) ListByUser(ctx context.Context, userID string, typeFilter domain.EntryType, limit, offset int) ([]*domain.Entry, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, typeFilter, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*domain.Entry
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if e.UserID != userID {
			continue
		}
		if typeFilter != "" && e.Type != typeFilter {
			continue
		}
		matched = append(matched, e)
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *MockEntryRepository) SumByUser(ctx context.Context, userID string) (int64, error) {
	if m.SumByUserFunc != nil {
		return m.SumByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, e := range m.entries {
		if e.UserID == userID {
			sum += e.Amount
		}
	}
	return sum, nil
}

// MockStatsRepository is a mock implementation of StatsRepository.
type MockStatsRepository struct {
	mu    sync.RWMutex
	stats map[string]*domain.UserStats

	ApplyFunc       func(ctx context.Context, tx usecase.Transaction, delta domain.UserStats) error
	GetByUserIDFunc func(ctx context.Context, userID string) (*domain.UserStats, error)
	TopByProfitFunc func(ctx context.Context, limit int) ([]*domain.RankRow, error)
}

func NewMockStatsRepository() *MockStatsRepository {
	return &MockStatsRepository{
		stats: make(map[string]*domain.UserStats),
	}
}

func (m *MockStatsRepository) Apply(ctx context.Context, tx usecase.Transaction, delta domain.UserStats) error {
	if m.ApplyFunc != nil {
		return m.ApplyFunc(ctx, tx, delta)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stats[delta.UserID]
	if !ok {
		s = &domain.UserStats{UserID: delta.UserID}
		m.stats[delta.UserID] = s
	}
	s.TotalBets += delta.TotalBets
	s.TotalWins += delta.TotalWins
	s.TotalLosses += delta.TotalLosses
	s.TotalWagered += delta.TotalWagered
	s.TotalProfit += delta.TotalProfit
	s.UpdatedAt = delta.UpdatedAt
	return nil
}

func (m *MockStatsRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserStats, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.stats[userID]; ok {
		cp := *s
		return &cp, nil
	}
	return &domain.UserStats{UserID: userID}, nil
}

func (m *MockStatsRepository) TopByProfit(ctx context.Context, limit int) ([]*domain.RankRow, error) {
	if m.TopByProfitFunc != nil {
		return m.TopByProfitFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := make([]*domain.RankRow, 0, len(m.stats))
	for _, s := range m.stats {
		rows = append(rows, &domain.RankRow{UserID: s.UserID, TotalProfit: s.TotalProfit})
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

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + strconv.Itoa(m.counter)
}

// MockDrawer is a mock implementation of OutcomeDrawer returning a fixed
// sequence of classes (cycling when exhausted).
type MockDrawer struct {
	mu      sync.Mutex
	idx     int
	Classes []domain.OutcomeClass

	DrawFunc func() domain.OutcomeClass
}

func (m *MockDrawer) Draw() domain.OutcomeClass {
	if m.DrawFunc != nil {
		return m.DrawFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.Classes[m.idx%len(m.Classes)]
	m.idx++
	return c
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu    sync.RWMutex
	items map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[key]; ok {
		return v, nil
	}
	return nil, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
