package mocks

import (
	"context"

	"github.com/zdziszkee/swift-codes-registry/internal/services"
)

// MockSwiftService implements services.SwiftService.
type MockSwiftService struct {
	GetSwiftCodeFunc           func(ctx context.Context, code string) (*services.SwiftCodeDetails, error)
	GetSwiftCodesByCountryFunc func(ctx context.Context, countryISO2 string) (*services.CountrySwiftCodes, error)
	CreateSwiftCodeFunc        func(ctx context.Context, input services.CreateSwiftCodeInput) (string, error)
	DeleteSwiftCodeFunc        func(ctx context.Context, code string) (string, error)
}

func (m *MockSwiftService) GetSwiftCode(ctx context.Context, code string) (*services.SwiftCodeDetails, error) {
	return m.GetSwiftCodeFunc(ctx, code)
}

func (m *MockSwiftService) GetSwiftCodesByCountry(ctx context.Context, countryISO2 string) (*services.CountrySwiftCodes, error) {
	return m.GetSwiftCodesByCountryFunc(ctx, countryISO2)
}

func (m *MockSwiftService) CreateSwiftCode(ctx context.Context, input services.CreateSwiftCodeInput) (string, error) {
	return m.CreateSwiftCodeFunc(ctx, input)
}

func (m *MockSwiftService) DeleteSwiftCode(ctx context.Context, code string) (string, error) {
	return m.DeleteSwiftCodeFunc(ctx, code)
}
