package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/zdziszkee/swift-codes-registry/internal/readers"
)

// XLSXSwiftCodesReader reads the first sheet of a workbook.
type XLSXSwiftCodesReader struct{}

func (x *XLSXSwiftCodesReader) ReadSwiftCodes(reader io.Reader) ([]readers.SwiftCodeRecord, error) {
	workbook, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return []readers.SwiftCodeRecord{}, nil
	}
	if err := readers.ValidateHeader(rows[0]); err != nil {
		return nil, err
	}

	// GetRows drops trailing empty cells, so short rows are padded by RecordFromRow.
	records := make([]readers.SwiftCodeRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 1
		if len(row) > len(readers.ExpectedHeader) {
			return nil, fmt.Errorf("row %d: invalid length %d", rowNum, len(row))
		}
		if readers.IsBlank(row) {
			continue
		}
		records = append(records, readers.RecordFromRow(rowNum, row))
	}

	return records, nil
}
