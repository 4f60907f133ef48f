package mocks

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/zdziszkee/swift-codes-registry/internal/models"
	"github.com/zdziszkee/swift-codes-registry/internal/repositories"
)

// MockSwiftRepository implements the SwiftRepository interface for testing
type MockSwiftRepository struct {
	GetByCodeFunc    func(ctx context.Context, code string) (*models.SwiftCode, error)
	GetAnyByCodeFunc func(ctx context.Context, code string) (*models.SwiftCode, error)
	GetBranchesFunc  func(ctx context.Context, headquarterID uuid.UUID) ([]models.SwiftCode, error)
	GetByCountryFunc func(ctx context.Context, countryISO2 string) ([]models.SwiftCode, error)
	CreateFunc       func(ctx context.Context, record *models.SwiftCode) error
	CreateBatchFunc  func(ctx context.Context, records []*models.SwiftCode) error
	SoftDeleteFunc   func(ctx context.Context, id uuid.UUID) error
	CountFunc        func(ctx context.Context) (int, error)
	WithinTxFunc     func(ctx context.Context, fn func(repo repositories.SwiftRepository) error) error
}

func (m *MockSwiftRepository) GetByCode(ctx context.Context, code string) (*models.SwiftCode, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	return nil, repositories.ErrNotFound
}

func (m *MockSwiftRepository) GetAnyByCode(ctx context.Context, code string) (*models.SwiftCode, error) {
	if m.GetAnyByCodeFunc != nil {
		return m.GetAnyByCodeFunc(ctx, code)
	}
	return nil, repositories.ErrNotFound
}

func (m *MockSwiftRepository) GetBranches(ctx context.Context, headquarterID uuid.UUID) ([]models.SwiftCode, error) {
	if m.GetBranchesFunc != nil {
		return m.GetBranchesFunc(ctx, headquarterID)
	}
	return []models.SwiftCode{}, nil
}

func (m *MockSwiftRepository) GetByCountry(ctx context.Context, countryISO2 string) ([]models.SwiftCode, error) {
	if m.GetByCountryFunc != nil {
		return m.GetByCountryFunc(ctx, countryISO2)
	}
	return []models.SwiftCode{}, nil
}

func (m *MockSwiftRepository) Create(ctx context.Context, record *models.SwiftCode) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	return errors.New("Create not implemented")
}

func (m *MockSwiftRepository) CreateBatch(ctx context.Context, records []*models.SwiftCode) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, records)
	}
	return errors.New("CreateBatch not implemented")
}

func (m *MockSwiftRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id)
	}
	return errors.New("SoftDelete not implemented")
}

func (m *MockSwiftRepository) Count(ctx context.Context) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// WithinTx runs fn against the mock itself unless WithinTxFunc is set.
func (m *MockSwiftRepository) WithinTx(ctx context.Context, fn func(repo repositories.SwiftRepository) error) error {
	if m.WithinTxFunc != nil {
		return m.WithinTxFunc(ctx, fn)
	}
	return fn(m)
}
