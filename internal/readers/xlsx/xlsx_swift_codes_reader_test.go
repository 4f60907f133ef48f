package xlsx_test

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/zdziszkee/swift-codes-registry/internal/readers"
	"github.com/zdziszkee/swift-codes-registry/internal/readers/xlsx"
)

func TestXLSX(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "XLSX Reader Suite")
}

func workbook(rows ...[]string) *bytes.Buffer {
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.SetSheetRow("Sheet1", cell, &cells)).To(Succeed())
	}
	buf, err := f.WriteToBuffer()
	Expect(err).NotTo(HaveOccurred())
	return buf
}

var _ = Describe("XLSXSwiftCodesReader", func() {
	var reader *xlsx.XLSXSwiftCodesReader

	BeforeEach(func() {
		reader = &xlsx.XLSXSwiftCodesReader{}
	})

	It("should read data rows from the first sheet", func() {
		buf := workbook(
			readers.ExpectedHeader,
			[]string{"CL", "BCHICLRMXXX", "BIC11", "BANCO DE CHILE", "AHUMADA 251", "SANTIAGO", "CHILE", "Pacific/Easter"},
			[]string{"CL", "BCHICLRM001", "BIC11", "BANCO DE CHILE", " PASEO 1 ", "SANTIAGO", "CHILE", "Pacific/Easter"},
		)

		records, err := reader.ReadSwiftCodes(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(2))
		Expect(records[0]).To(Equal(readers.SwiftCodeRecord{
			Index:       1,
			CountryISO2: "CL",
			SwiftCode:   "BCHICLRMXXX",
			BankName:    "BANCO DE CHILE",
			Address:     "AHUMADA 251",
			CountryName: "CHILE",
		}))
		Expect(records[1].Index).To(Equal(2))
		Expect(records[1].Address).To(Equal("PASEO 1"))
	})

	It("should pad rows whose trailing cells are empty", func() {
		buf := workbook(
			readers.ExpectedHeader,
			[]string{"PL", "BREXPLPWXXX", "BIC11", "MBANK", "", "WARSZAWA", "POLAND"},
		)

		records, err := reader.ReadSwiftCodes(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(1))
		Expect(records[0].Address).To(BeEmpty())
		Expect(records[0].CountryName).To(Equal("POLAND"))
	})

	It("should number rows as they appear in the sheet, blank rows included", func() {
		buf := workbook(
			readers.ExpectedHeader,
			[]string{"CL", "BCHICLRMXXX", "BIC11", "BANCO DE CHILE", "AHUMADA 251", "SANTIAGO", "CHILE", "Pacific/Easter"},
			[]string{"", "", "", "", "", "", "", ""},
			[]string{"CL", "BCHICLRM001", "BIC11", "BANCO DE CHILE", "PASEO 1", "SANTIAGO", "CHILE", "Pacific/Easter"},
		)

		records, err := reader.ReadSwiftCodes(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(2))
		Expect(records[0].Index).To(Equal(1))
		Expect(records[1].Index).To(Equal(3))
	})

	It("should return nothing for an empty sheet", func() {
		records, err := reader.ReadSwiftCodes(workbook())
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(BeEmpty())
	})

	It("should reject an unexpected header", func() {
		buf := workbook([]string{"CODE", "NAME"})

		_, err := reader.ReadSwiftCodes(buf)
		Expect(err).To(MatchError(ContainSubstring("invalid header length")))
	})

	It("should reject input that is not a workbook", func() {
		_, err := reader.ReadSwiftCodes(strings.NewReader("not a zip"))
		Expect(err).To(MatchError(ContainSubstring("open workbook")))
	})
})
