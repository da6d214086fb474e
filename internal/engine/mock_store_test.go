package engine

import (
	"context"
	"sync"

	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/models"
)

// MockStore implements PredictionStore for testing
type MockStore struct {
	mu             sync.Mutex
	InsertFunc     func(ctx context.Context, rec *models.PredictionRecord) error
	FindRecentFunc func(ctx context.Context, factor, sport, competition string, limit int) ([]models.PredictionRecord, error)
	InsertCalls    int
	Inserted       []*models.PredictionRecord
	FindCalls      int
}

func (m *MockStore) Insert(ctx context.Context, rec *models.PredictionRecord) error {
	m.mu.Lock()
	m.InsertCalls++
	m.Inserted = append(m.Inserted, rec)
	m.mu.Unlock()
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, rec)
	}
	return nil
}

func (m *MockStore) FindRecent(ctx context.Context, factor, sport, competition string, limit int) ([]models.PredictionRecord, error) {
	m.mu.Lock()
	m.FindCalls++
	m.mu.Unlock()
	if m.FindRecentFunc != nil {
		return m.FindRecentFunc(ctx, factor, sport, competition, limit)
	}
	return nil, nil
}

func (m *MockStore) insertCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.InsertCalls
}
