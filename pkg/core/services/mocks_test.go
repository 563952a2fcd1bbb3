package services

import (
	"context"
	"strings"
	"sync"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
)

type mockRepo struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]*domain.ProfileRecord
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[int64]*domain.ProfileRecord)}
}

func cloneRecord(rec *domain.ProfileRecord) *domain.ProfileRecord {
	c := *rec
	c.Draft = *rec.Draft.Clone()
	c.Published = rec.Published.Clone()
	return &c
}

func (m *mockRepo) Create(_ context.Context, rec *domain.ProfileRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	rec.ID = m.nextID
	m.records[rec.ID] = cloneRecord(rec)
	return nil
}

func (m *mockRepo) GetByOwner(_ context.Context, owner string) (*domain.ProfileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records {
		if rec.OwnerEmail == owner {
			return cloneRecord(rec), nil
		}
	}
	return nil, nil
}

func (m *mockRepo) GetByUsername(_ context.Context, username string) (*domain.ProfileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records {
		if rec.Published != nil && rec.Published.Username == strings.ToLower(username) {
			return cloneRecord(rec), nil
		}
	}
	return nil, nil
}

func (m *mockRepo) SaveDraft(_ context.Context, rec *domain.ProfileRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ID].Draft = *rec.Draft.Clone()
	return nil
}

func (m *mockRepo) Publish(_ context.Context, rec *domain.ProfileRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ID] = cloneRecord(rec)
	return nil
}

func (m *mockRepo) Dump(_ context.Context) ([]domain.ProfileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ProfileRecord
	for _, rec := range m.records {
		out = append(out, *cloneRecord(rec))
	}
	return out, nil
}

type mockCache struct {
	mu      sync.Mutex
	storage map[string]*domain.Profile
	getErr  error
	setErr  error
	sets    int
}

func newMockCache() *mockCache {
	return &mockCache{storage: make(map[string]*domain.Profile)}
}

func (m *mockCache) Get(_ context.Context, id string) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.storage[id].Clone(), nil
}

func (m *mockCache) Set(_ context.Context, id string, p *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.storage[id] = p.Clone()
	return nil
}
