package csv_test

import (
	"io"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zdziszkee/swift-codes-registry/internal/readers/csv"
)

func TestCSV(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "CSV Reader Suite")
}

type errorReader struct{}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, io.ErrUnexpectedEOF
}

const header = "COUNTRY ISO2 CODE,SWIFT CODE,CODE TYPE,NAME,ADDRESS,TOWN NAME,COUNTRY NAME,TIME ZONE"

var _ = Describe("CSVSwiftCodesReader", func() {
	var csvReader *csv.CSVSwiftCodesReader

	BeforeEach(func() {
		csvReader = &csv.CSVSwiftCodesReader{}
	})

	Context("ReadSwiftCodes", func() {
		It("should handle empty input", func() {
			records, err := csvReader.ReadSwiftCodes(strings.NewReader(""))
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(0))
		})

		It("should handle only header, no data", func() {
			records, err := csvReader.ReadSwiftCodes(strings.NewReader(header))
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(0))
		})

		It("should handle header with whitespace and case differences", func() {
			input := " country iso2 code , Swift Code ,CODE TYPE, Name ,Address,TOWN NAME,Country Name, TIME ZONE\n" +
				"US,CHASUS33,N,Chase Bank,123 Main St,New York,United States,EST"

			records, err := csvReader.ReadSwiftCodes(strings.NewReader(input))
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))

			record := records[0]
			Expect(record.SwiftCode).To(Equal("CHASUS33"))
			Expect(record.CountryISO2).To(Equal("US"))
			Expect(record.BankName).To(Equal("Chase Bank"))
			Expect(record.Address).To(Equal("123 Main St"))
			Expect(record.CountryName).To(Equal("United States"))
		})

		It("should reject invalid header with missing column", func() {
			input := "COUNTRY ISO2 CODE,SWIFT CODE,CODE TYPE,NAME,ADDRESS,TOWN NAME,COUNTRY NAME"
			_, err := csvReader.ReadSwiftCodes(strings.NewReader(input))
			Expect(err).To(MatchError(ContainSubstring("invalid header length")))
		})

		It("should reject invalid header with wrong column name", func() {
			input := "COUNTRY ISO2 CODE,SWIFT CODE,CODE TYPE,BANK NAME,ADDRESS,TOWN NAME,COUNTRY NAME,TIME ZONE"
			_, err := csvReader.ReadSwiftCodes(strings.NewReader(input))
			Expect(err).To(MatchError(ContainSubstring("invalid header: expected 'NAME' at index 3")))
		})

		It("should reject row with invalid length", func() {
			input := header + "\n" + "US,CHASUS33,N,Chase Bank,123 Main St,New York"
			_, err := csvReader.ReadSwiftCodes(strings.NewReader(input))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(Or(
				ContainSubstring("invalid length"),
				ContainSubstring("wrong number of fields"),
			))
		})

		It("should handle multiple valid rows with their index", func() {
			input := header + "\n" +
				"US,CHASUS33,N,Chase Bank,123 Main St,New York,United States,EST\n" +
				"GB,BARCGB22,N,Barclays,10 Downing St,London,United Kingdom,GMT"

			records, err := csvReader.ReadSwiftCodes(strings.NewReader(input))
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))

			Expect(records[0].Index).To(Equal(1))
			Expect(records[0].CountryISO2).To(Equal("US"))
			Expect(records[1].Index).To(Equal(2))
			Expect(records[1].SwiftCode).To(Equal("BARCGB22"))
		})

		It("should trim whitespace around fields", func() {
			input := header + "\n" +
				" US , CHASUS33 , N , Chase Bank  ,  123 Main St  , New York ,  United States  , EST "

			records, err := csvReader.ReadSwiftCodes(strings.NewReader(input))
			Expect(err).NotTo(HaveOccurred())
			Expect(records[0].SwiftCode).To(Equal("CHASUS33"))
			Expect(records[0].BankName).To(Equal("Chase Bank"))
			Expect(records[0].CountryName).To(Equal("United States"))
		})

		It("should handle quoted fields", func() {
			input := header + "\n" +
				`US,CHASUS33,N,"Chase Bank, Inc.","123 Main St, Suite 100",New York,United States,EST`

			records, err := csvReader.ReadSwiftCodes(strings.NewReader(input))
			Expect(err).NotTo(HaveOccurred())
			Expect(records[0].BankName).To(Equal("Chase Bank, Inc."))
			Expect(records[0].Address).To(Equal("123 Main St, Suite 100"))
		})

		It("should keep empty fields and skip blank rows", func() {
			input := header + "\n" +
				"US,CHASUS33,N,,123 Main St,New York,United States,EST\n" +
				",,,,,,,\n"

			records, err := csvReader.ReadSwiftCodes(strings.NewReader(input))
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].BankName).To(BeEmpty())
		})

		It("should number rows as they appear in the file, blank rows included", func() {
			input := header + "\n" +
				"US,CHASUS33,N,Chase Bank,123 Main St,New York,United States,EST\n" +
				",,,,,,,\n" +
				"GB,BARCGB22,N,Barclays,10 Downing St,London,United Kingdom,GMT\n"

			records, err := csvReader.ReadSwiftCodes(strings.NewReader(input))
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[0].Index).To(Equal(1))
			Expect(records[1].Index).To(Equal(3))
		})

		It("should report the file row of a malformed line after a blank one", func() {
			input := header + "\n" +
				"US,CHASUS33,N,Chase Bank,123 Main St,New York,United States,EST\n" +
				",,,,,,,\n" +
				"GB,BARCGB22,N,Barclays,London\n"

			_, err := csvReader.ReadSwiftCodes(strings.NewReader(input))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(HavePrefix("row 3:"))
		})

		It("should handle reader errors", func() {
			_, err := csvReader.ReadSwiftCodes(&errorReader{})
			Expect(err).To(MatchError(ContainSubstring("read header")))
		})
	})
})
