package parsers

import (
	"log/slog"
	"regexp"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/zdziszkee/swift-codes-registry/internal/countries"
	"github.com/zdziszkee/swift-codes-registry/internal/models"
	"github.com/zdziszkee/swift-codes-registry/internal/readers"
)

var bicRegex = regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2}([A-Z0-9]{3})?$`)

type SwiftCodesParser interface {
	ParseSwiftCodes(records []readers.SwiftCodeRecord) []*models.SwiftCode
}

// DefaultSwiftCodesParser normalizes raw rows into records. Rows that fail
// validation are logged and skipped; the first occurrence of a code wins.
type DefaultSwiftCodesParser struct {
	logger *slog.Logger
}

func NewSwiftCodesParser(logger *slog.Logger) *DefaultSwiftCodesParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultSwiftCodesParser{logger: logger}
}

func (p *DefaultSwiftCodesParser) ParseSwiftCodes(records []readers.SwiftCodeRecord) []*models.SwiftCode {
	parsed := make([]*models.SwiftCode, 0, len(records))
	seen := make(map[string]int, len(records))

	for _, record := range records {
		code := models.NormalizeCode(record.SwiftCode)
		iso2 := models.NormalizeCode(record.CountryISO2)
		bankName := models.NormalizeCode(record.BankName)
		address := models.NormalizeCode(record.Address)
		countryName := models.NormalizeCode(record.CountryName)

		switch {
		case code == "":
			p.skip(record, "swift code is empty")
			continue
		case !bicRegex.MatchString(code):
			p.skip(record, "swift code does not match BIC format")
			continue
		case bankName == "":
			p.skip(record, "bank name is empty")
			continue
		case utf8.RuneCountInString(bankName) > models.MaxBankNameLength:
			p.skip(record, "bank name exceeds maximum length")
			continue
		case utf8.RuneCountInString(address) > models.MaxAddressLength:
			p.skip(record, "address exceeds maximum length")
			continue
		case !countries.Known(iso2):
			p.skip(record, "country ISO2 code is not a known ISO 3166 code")
			continue
		case utf8.RuneCountInString(countryName) > models.MaxCountryNameLength:
			p.skip(record, "country name exceeds maximum length")
			continue
		}

		if first, ok := seen[code]; ok {
			p.logger.Warn("Skipping duplicate swift code",
				slog.Int("row", record.Index),
				slog.Int("first_row", first),
				slog.String("swift_code", code))
			continue
		}
		seen[code] = record.Index

		parsed = append(parsed, &models.SwiftCode{
			ID:            uuid.New(),
			SwiftCode:     code,
			BankName:      bankName,
			Address:       address,
			CountryISO2:   iso2,
			CountryName:   countryName,
			IsHeadquarter: models.IsHeadquarterCode(code),
		})
	}

	return parsed
}

func (p *DefaultSwiftCodesParser) skip(record readers.SwiftCodeRecord, reason string) {
	p.logger.Warn("Skipping invalid row",
		slog.Int("row", record.Index),
		slog.String("swift_code", record.SwiftCode),
		slog.String("reason", reason))
}
