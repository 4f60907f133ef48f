package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zdziszkee/swift-codes-registry/internal/models"
	"github.com/zdziszkee/swift-codes-registry/internal/repositories"
)

// MemorySwiftRepository is an in-memory SwiftRepository with the same
// uniqueness, headquarter reference and soft-delete rules as the SQL store. WithinTx restores the
// previous state when the unit of work fails.
type MemorySwiftRepository struct {
	mu      sync.Mutex
	records []models.SwiftCode
	inTx    bool
}

func NewMemorySwiftRepository() *MemorySwiftRepository {
	return &MemorySwiftRepository{}
}

// Records returns a copy of everything stored, soft-deleted rows included.
func (m *MemorySwiftRepository) Records() []models.SwiftCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.SwiftCode(nil), m.records...)
}

func (m *MemorySwiftRepository) GetByCode(_ context.Context, code string) (*models.SwiftCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, record := range m.records {
		if record.SwiftCode == code && !record.IsDeleted {
			found := record
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *MemorySwiftRepository) GetAnyByCode(_ context.Context, code string) (*models.SwiftCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *models.SwiftCode
	for i := range m.records {
		record := m.records[i]
		if record.SwiftCode != code {
			continue
		}
		if best == nil || (best.IsDeleted && !record.IsDeleted) ||
			(best.IsDeleted == record.IsDeleted && record.CreatedAt.After(best.CreatedAt)) {
			best = &record
		}
	}
	if best == nil {
		return nil, repositories.ErrNotFound
	}
	return best, nil
}

func (m *MemorySwiftRepository) GetBranches(_ context.Context, headquarterID uuid.UUID) ([]models.SwiftCode, error) {
	return m.filter(func(record models.SwiftCode) bool {
		return record.HeadquarterID != nil && *record.HeadquarterID == headquarterID
	}), nil
}

func (m *MemorySwiftRepository) GetByCountry(_ context.Context, countryISO2 string) ([]models.SwiftCode, error) {
	return m.filter(func(record models.SwiftCode) bool {
		return record.CountryISO2 == countryISO2
	}), nil
}

func (m *MemorySwiftRepository) Create(_ context.Context, record *models.SwiftCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(record)
}

func (m *MemorySwiftRepository) CreateBatch(_ context.Context, records []*models.SwiftCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, record := range records {
		if err := m.insert(record); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemorySwiftRepository) SoftDelete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id && !m.records[i].IsDeleted {
			m.records[i].IsDeleted = true
			m.records[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *MemorySwiftRepository) Count(_ context.Context) (int, error) {
	return len(m.filter(func(models.SwiftCode) bool { return true })), nil
}

func (m *MemorySwiftRepository) WithinTx(_ context.Context, fn func(repo repositories.SwiftRepository) error) error {
	m.mu.Lock()
	if m.inTx {
		m.mu.Unlock()
		return fn(m)
	}
	snapshot := append([]models.SwiftCode(nil), m.records...)
	m.inTx = true
	m.mu.Unlock()

	err := fn(m)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inTx = false
	if err != nil {
		m.records = snapshot
	}
	return err
}

// insert must be called with mu held.
func (m *MemorySwiftRepository) insert(record *models.SwiftCode) error {
	referenced := record.HeadquarterID == nil
	for _, existing := range m.records {
		if existing.SwiftCode == record.SwiftCode && !existing.IsDeleted {
			return repositories.ErrDuplicate
		}
		if record.HeadquarterID != nil && existing.ID == *record.HeadquarterID {
			referenced = true
		}
	}
	if !referenced {
		return fmt.Errorf("%s references headquarter %s which is not stored", record.SwiftCode, record.HeadquarterID)
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	m.records = append(m.records, *record)
	return nil
}

func (m *MemorySwiftRepository) filter(keep func(models.SwiftCode) bool) []models.SwiftCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []models.SwiftCode{}
	for _, record := range m.records {
		if !record.IsDeleted && keep(record) {
			result = append(result, record)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SwiftCode < result[j].SwiftCode })
	return result
}
