package readers

import (
	"fmt"
	"io"
	"strings"
)

// ExpectedHeader lists the columns of the SWIFT code export, in order.
var ExpectedHeader = []string{
	"COUNTRY ISO2 CODE",
	"SWIFT CODE",
	"CODE TYPE",
	"NAME",
	"ADDRESS",
	"TOWN NAME",
	"COUNTRY NAME",
	"TIME ZONE",
}

const (
	columnCountryISO2 = 0
	columnSwiftCode   = 1
	columnBankName    = 3
	columnAddress     = 4
	columnCountryName = 6
)

// SwiftCodeRecord is one raw data row with the whitespace trimmed. Index is
// the 1-based data row number, header excluded, counting blank rows.
type SwiftCodeRecord struct {
	Index       int
	CountryISO2 string // COUNTRY ISO2 CODE
	SwiftCode   string // SWIFT CODE
	BankName    string // NAME
	Address     string // ADDRESS
	CountryName string // COUNTRY NAME
}

// SwiftCodesReader reads the rows of a SWIFT code export.
type SwiftCodesReader interface {
	ReadSwiftCodes(reader io.Reader) ([]SwiftCodeRecord, error)
}

// ValidateHeader compares header with ExpectedHeader ignoring case and
// surrounding whitespace.
func ValidateHeader(header []string) error {
	if len(header) != len(ExpectedHeader) {
		return fmt.Errorf("invalid header length: expected %d, got %d", len(ExpectedHeader), len(header))
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), ExpectedHeader[i]) {
			return fmt.Errorf("invalid header: expected '%s' at index %d, got '%s'", ExpectedHeader[i], i, col)
		}
	}
	return nil
}

// RecordFromRow maps the fixed column positions of row. Missing trailing
// cells read as empty.
func RecordFromRow(index int, row []string) SwiftCodeRecord {
	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	return SwiftCodeRecord{
		Index:       index,
		CountryISO2: cell(columnCountryISO2),
		SwiftCode:   cell(columnSwiftCode),
		BankName:    cell(columnBankName),
		Address:     cell(columnAddress),
		CountryName: cell(columnCountryName),
	}
}

// IsBlank reports whether every cell of row is empty.
func IsBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
