package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// HeadquarterSuffix marks the main office of an institution in positions 9-11.
	HeadquarterSuffix = "XXX"
	// InstitutionPrefixLength is the number of leading characters shared by a
	// headquarters and all of its branches.
	InstitutionPrefixLength = 8
	// MaxSwiftCodeLength is the length of a full BIC with branch code.
	MaxSwiftCodeLength = 11

	MaxBankNameLength    = 255
	MaxAddressLength     = 255
	MaxCountryNameLength = 100
)

// SwiftCode is one bank institution or branch entry in the swift_codes table.
type SwiftCode struct {
	ID            uuid.UUID  `db:"id"`
	SwiftCode     string     `db:"swift_code"`
	BankName      string     `db:"bank_name"`
	Address       string     `db:"address"`
	CountryISO2   string     `db:"country_iso2"`
	CountryName   string     `db:"country_name"`
	IsHeadquarter bool       `db:"is_headquarter"`
	IsDeleted     bool       `db:"is_deleted"`
	HeadquarterID *uuid.UUID `db:"headquarter_id"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// InstitutionPrefix returns the first 8 characters of the code, or the whole
// code when it is shorter.
func (s SwiftCode) InstitutionPrefix() string {
	return InstitutionPrefix(s.SwiftCode)
}

// InstitutionPrefix returns the grouping key of a SWIFT code.
func InstitutionPrefix(code string) string {
	if len(code) < InstitutionPrefixLength {
		return code
	}
	return code[:InstitutionPrefixLength]
}

// IsHeadquarterCode reports whether the code ends in XXX. The check is case
// sensitive; callers normalize to uppercase first.
func IsHeadquarterCode(code string) bool {
	return strings.HasSuffix(code, HeadquarterSuffix)
}

// HeadquarterCodeFor returns the code the headquarters of this code's
// institution would carry.
func HeadquarterCodeFor(code string) string {
	return InstitutionPrefix(code) + HeadquarterSuffix
}

// NormalizeCode trims and uppercases a code or ISO value.
func NormalizeCode(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
