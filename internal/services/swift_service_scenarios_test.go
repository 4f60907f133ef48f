package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zdziszkee/swift-codes-registry/internal/logger"
	"github.com/zdziszkee/swift-codes-registry/internal/services"
	"github.com/zdziszkee/swift-codes-registry/tests/mocks"
)

var _ = Describe("SwiftService against the in-memory store", func() {
	var (
		ctx   context.Context
		store *mocks.MemorySwiftRepository
		s     services.SwiftService
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = mocks.NewMemorySwiftRepository()
		s = services.NewSwiftService(store, logger.Discard())
	})

	create := func(code string, hq bool) (string, error) {
		input := validInput()
		input.SwiftCode = code
		input.IsHeadquarter = hq
		return s.CreateSwiftCode(ctx, input)
	}

	It("creates a headquarter that has no branches", func() {
		message, err := create("BCHICLRMXXX", true)
		Expect(err).NotTo(HaveOccurred())
		Expect(message).To(Equal("Swift code BCHICLRMXXX created!"))

		got, err := s.GetSwiftCode(ctx, "BCHICLRMXXX")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Record.IsHeadquarter).To(BeTrue())
		Expect(got.Branches).To(BeEmpty())
	})

	It("lists a branch created after its headquarter", func() {
		_, err := create("BCHICLRMXXX", true)
		Expect(err).NotTo(HaveOccurred())
		_, err = create("BCHICLRM001", false)
		Expect(err).NotTo(HaveOccurred())

		got, err := s.GetSwiftCode(ctx, "BCHICLRMXXX")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Branches).To(HaveLen(1))
		Expect(got.Branches[0].SwiftCode).To(Equal("BCHICLRM001"))
	})

	It("does not adopt a branch created before its headquarter", func() {
		_, err := create("AAAABBBB123", false)
		Expect(err).NotTo(HaveOccurred())
		_, err = create("AAAABBBBXXX", true)
		Expect(err).NotTo(HaveOccurred())

		got, err := s.GetSwiftCode(ctx, "AAAABBBBXXX")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Branches).To(BeEmpty())

		branch, err := s.GetSwiftCode(ctx, "AAAABBBB123")
		Expect(err).NotTo(HaveOccurred())
		Expect(branch.Record.HeadquarterID).To(BeNil())
	})

	It("reports an unknown code as not found", func() {
		_, err := s.GetSwiftCode(ctx, "ABCDEFGHIJK")
		Expect(err).To(MatchError(services.ErrNotFound))
		Expect(err.Error()).To(Equal("Swift code ABCDEFGHIJK, not found"))
	})

	It("rejects a headquarter without the XXX suffix", func() {
		_, err := create("---------XX", true)
		Expect(err).To(MatchError(ContainSubstring("Invalid format for headquarter provided")))
		Expect(store.Records()).To(BeEmpty())
	})

	It("rejects duplicates among active records", func() {
		_, err := create("BCHICLRMXXX", true)
		Expect(err).NotTo(HaveOccurred())

		_, err = create("BCHICLRMXXX", true)
		Expect(err).To(MatchError(services.ErrAlreadyExists))
	})

	It("soft deletes once and reports not found afterwards", func() {
		_, err := create("BCHICLRMXXX", true)
		Expect(err).NotTo(HaveOccurred())

		message, err := s.DeleteSwiftCode(ctx, "BCHICLRMXXX")
		Expect(err).NotTo(HaveOccurred())
		Expect(message).To(Equal("Swift code BCHICLRMXXX deleted!"))

		_, err = s.DeleteSwiftCode(ctx, "BCHICLRMXXX")
		Expect(err).To(MatchError(services.ErrNotFound))

		_, err = s.GetSwiftCode(ctx, "BCHICLRMXXX")
		Expect(err).To(MatchError(services.ErrNotFound))

		records := store.Records()
		Expect(records).To(HaveLen(1))
		Expect(records[0].IsDeleted).To(BeTrue())
	})

	It("allows reusing a deleted code", func() {
		_, err := create("BCHICLRMXXX", true)
		Expect(err).NotTo(HaveOccurred())
		_, err = s.DeleteSwiftCode(ctx, "BCHICLRMXXX")
		Expect(err).NotTo(HaveOccurred())

		_, err = create("BCHICLRMXXX", true)
		Expect(err).NotTo(HaveOccurred())
		Expect(store.Records()).To(HaveLen(2))
	})

	It("links a branch to a soft-deleted headquarter", func() {
		_, err := create("BCHICLRMXXX", true)
		Expect(err).NotTo(HaveOccurred())
		_, err = s.DeleteSwiftCode(ctx, "BCHICLRMXXX")
		Expect(err).NotTo(HaveOccurred())

		_, err = create("BCHICLRM001", false)
		Expect(err).NotTo(HaveOccurred())

		branch, err := s.GetSwiftCode(ctx, "BCHICLRM001")
		Expect(err).NotTo(HaveOccurred())
		Expect(branch.Record.HeadquarterID).NotTo(BeNil())
	})

	It("hides deleted branches from their headquarter and country listing", func() {
		_, err := create("BCHICLRMXXX", true)
		Expect(err).NotTo(HaveOccurred())
		_, err = create("BCHICLRM001", false)
		Expect(err).NotTo(HaveOccurred())
		_, err = s.DeleteSwiftCode(ctx, "BCHICLRM001")
		Expect(err).NotTo(HaveOccurred())

		got, err := s.GetSwiftCode(ctx, "BCHICLRMXXX")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Branches).To(BeEmpty())

		country, err := s.GetSwiftCodesByCountry(ctx, "PL")
		Expect(err).NotTo(HaveOccurred())
		Expect(country.CountryName).To(Equal("POLAND"))
		Expect(country.SwiftCodes).To(HaveLen(1))
	})
})
