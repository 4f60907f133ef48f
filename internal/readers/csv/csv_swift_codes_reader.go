package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/zdziszkee/swift-codes-registry/internal/readers"
)

type CSVSwiftCodesReader struct{}

func (c *CSVSwiftCodesReader) ReadSwiftCodes(reader io.Reader) ([]readers.SwiftCodeRecord, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.ReuseRecord = true

	header, err := csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []readers.SwiftCodeRecord{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := readers.ValidateHeader(header); err != nil {
		return nil, err
	}

	records := []readers.SwiftCodeRecord{}
	rowNum := 0
	for {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		if len(row) != len(readers.ExpectedHeader) {
			return nil, fmt.Errorf("row %d: invalid length %d", rowNum, len(row))
		}
		if readers.IsBlank(row) {
			continue
		}

		records = append(records, readers.RecordFromRow(rowNum, row))
	}

	return records, nil
}
