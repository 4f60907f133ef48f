package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/zdziszkee/swift-codes-registry/internal/associations"
	"github.com/zdziszkee/swift-codes-registry/internal/countries"
	"github.com/zdziszkee/swift-codes-registry/internal/models"
	"github.com/zdziszkee/swift-codes-registry/internal/repositories"
)

// SwiftCodeDetails is a record together with its active branches. Branches
// is empty for records that are not headquarters.
type SwiftCodeDetails struct {
	Record   models.SwiftCode
	Branches []models.SwiftCode
}

// CountrySwiftCodes holds all active SWIFT codes of a country.
type CountrySwiftCodes struct {
	CountryISO2 string
	CountryName string
	SwiftCodes  []models.SwiftCode
}

// CreateSwiftCodeInput carries the fields of a create request as submitted.
type CreateSwiftCodeInput struct {
	SwiftCode     string
	BankName      string
	Address       string
	CountryISO2   string
	CountryName   string
	IsHeadquarter bool
}

// SwiftService handles business logic for SWIFT codes
type SwiftService interface {
	GetSwiftCode(ctx context.Context, code string) (*SwiftCodeDetails, error)
	GetSwiftCodesByCountry(ctx context.Context, countryISO2 string) (*CountrySwiftCodes, error)
	CreateSwiftCode(ctx context.Context, input CreateSwiftCodeInput) (string, error)
	DeleteSwiftCode(ctx context.Context, code string) (string, error)
}

type swiftService struct {
	repo   repositories.SwiftRepository
	logger *slog.Logger
}

// NewSwiftService creates a new instance of the Swift service
func NewSwiftService(repo repositories.SwiftRepository, logger *slog.Logger) SwiftService {
	if logger == nil {
		logger = slog.Default()
	}
	return &swiftService{repo: repo, logger: logger}
}

// GetSwiftCode looks up an active record by exact code. Headquarters come back
// with their active branches.
func (s *swiftService) GetSwiftCode(ctx context.Context, code string) (*SwiftCodeDetails, error) {
	s.logger.Info("Fetching swift code", "swift_code", code)

	record, err := s.repo.GetByCode(ctx, code)
	if errors.Is(err, repositories.ErrNotFound) {
		s.logger.Warn("Swift code not found", "swift_code", code)
		return nil, notFound(code)
	}
	if err != nil {
		s.logger.Error("Failed to fetch swift code", "swift_code", code, "error", err)
		return nil, err
	}

	details := &SwiftCodeDetails{Record: *record, Branches: []models.SwiftCode{}}
	if record.IsHeadquarter {
		branches, err := s.repo.GetBranches(ctx, record.ID)
		if err != nil {
			s.logger.Error("Failed to fetch branches", "swift_code", code, "error", err)
			return nil, fmt.Errorf("fetch branches of %s: %w", code, err)
		}
		details.Branches = branches
	}

	return details, nil
}

// GetSwiftCodesByCountry returns every active record of the country. An empty
// result is not an error; its country name then comes from the bundled table.
func (s *swiftService) GetSwiftCodesByCountry(ctx context.Context, countryISO2 string) (*CountrySwiftCodes, error) {
	s.logger.Info("Fetching swift codes by country", "country_iso2", countryISO2)

	records, err := s.repo.GetByCountry(ctx, countryISO2)
	if err != nil {
		s.logger.Error("Failed to fetch swift codes by country", "country_iso2", countryISO2, "error", err)
		return nil, err
	}

	result := &CountrySwiftCodes{
		CountryISO2: countryISO2,
		SwiftCodes:  records,
	}
	if len(records) > 0 {
		result.CountryName = records[0].CountryName
	} else if name, ok := countries.Name(countryISO2); ok {
		result.CountryName = strings.ToUpper(name)
	}
	if result.SwiftCodes == nil {
		result.SwiftCodes = []models.SwiftCode{}
	}

	return result, nil
}

// CreateSwiftCode validates and stores a new record, linking branches to an
// existing headquarters. Checks run in order and the first failure wins.
func (s *swiftService) CreateSwiftCode(ctx context.Context, input CreateSwiftCodeInput) (string, error) {
	code := models.NormalizeCode(input.SwiftCode)
	s.logger.Info("Creating swift code", "swift_code", code, "is_headquarter", input.IsHeadquarter)

	if err := checkLengths(code, input); err != nil {
		return "", s.rejected(err)
	}

	err := s.repo.WithinTx(ctx, func(repo repositories.SwiftRepository) error {
		_, err := repo.GetByCode(ctx, code)
		switch {
		case err == nil:
			return alreadyExists(code)
		case !errors.Is(err, repositories.ErrNotFound):
			return err
		}

		if input.IsHeadquarter && !models.IsHeadquarterCode(code) {
			return validation("Invalid format for headquarter provided, should end with %s, actual: %s", models.HeadquarterSuffix, code)
		}
		if !countries.IsValidPair(input.CountryISO2, input.CountryName) {
			return validation("Invalid country combination: ISO2 = '%s', name = '%s'", input.CountryISO2, input.CountryName)
		}

		record := &models.SwiftCode{
			ID:          uuid.New(),
			SwiftCode:   code,
			BankName:    strings.ToUpper(strings.TrimSpace(input.BankName)),
			Address:     strings.ToUpper(strings.TrimSpace(input.Address)),
			CountryISO2: models.NormalizeCode(input.CountryISO2),
			CountryName: models.NormalizeCode(input.CountryName),
		}
		if err := associations.Associate(ctx, repo, record); err != nil {
			return err
		}

		if err := repo.Create(ctx, record); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return alreadyExists(code)
			}
			return err
		}
		if record.HeadquarterID != nil {
			s.logger.Info("Linked branch to headquarter", "swift_code", code, "headquarter_id", record.HeadquarterID.String())
		}
		return nil
	})
	if err != nil {
		return "", s.rejected(err)
	}

	return fmt.Sprintf("Swift code %s created!", code), nil
}

// checkLengths rejects values that cannot be stored: codes outside 8 to 11
// characters and text fields longer than their columns.
func checkLengths(code string, input CreateSwiftCodeInput) error {
	switch n := len(code); {
	case n < models.InstitutionPrefixLength:
		return validation("Invalid swift code provided, should have at least %d characters, actual: %s",
			models.InstitutionPrefixLength, code)
	case n > models.MaxSwiftCodeLength:
		return validation("Invalid swift code provided, should have at most %d characters, actual: %s",
			models.MaxSwiftCodeLength, code)
	}
	if utf8.RuneCountInString(strings.TrimSpace(input.BankName)) > models.MaxBankNameLength {
		return validation("Invalid bank name provided, should have at most %d characters", models.MaxBankNameLength)
	}
	if utf8.RuneCountInString(strings.TrimSpace(input.Address)) > models.MaxAddressLength {
		return validation("Invalid address provided, should have at most %d characters", models.MaxAddressLength)
	}
	return nil
}

// DeleteSwiftCode soft-deletes an active record. Deleting twice reports
// NotFound the second time.
func (s *swiftService) DeleteSwiftCode(ctx context.Context, code string) (string, error) {
	s.logger.Info("Deleting swift code", "swift_code", code)

	err := s.repo.WithinTx(ctx, func(repo repositories.SwiftRepository) error {
		record, err := repo.GetByCode(ctx, code)
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(code)
		}
		if err != nil {
			return err
		}

		if err := repo.SoftDelete(ctx, record.ID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return notFound(code)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return "", s.rejected(err)
	}

	return fmt.Sprintf("Swift code %s deleted!", code), nil
}

// rejected logs err at a level matching its kind and returns it unchanged.
func (s *swiftService) rejected(err error) error {
	var registryErr *RegistryError
	if errors.As(err, &registryErr) {
		s.logger.Warn("Request rejected", "reason", registryErr.Message)
	} else {
		s.logger.Error("Storage failure", "error", err)
	}
	return err
}
