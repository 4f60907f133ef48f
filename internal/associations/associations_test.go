package associations_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zdziszkee/swift-codes-registry/internal/associations"
	"github.com/zdziszkee/swift-codes-registry/internal/models"
	"github.com/zdziszkee/swift-codes-registry/internal/repositories"
)

func TestAssociations(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Associations Suite")
}

type lookupFunc func(ctx context.Context, code string) (*models.SwiftCode, error)

func (f lookupFunc) GetAnyByCode(ctx context.Context, code string) (*models.SwiftCode, error) {
	return f(ctx, code)
}

var _ = Describe("Associate", func() {
	var (
		ctx       context.Context
		hq        *models.SwiftCode
		requested []string
		lookup    lookupFunc
	)

	BeforeEach(func() {
		ctx = context.Background()
		requested = nil
		hq = &models.SwiftCode{ID: uuid.New(), SwiftCode: "BCHICLRMXXX", IsHeadquarter: true}
		lookup = func(_ context.Context, code string) (*models.SwiftCode, error) {
			requested = append(requested, code)
			if code == hq.SwiftCode {
				return hq, nil
			}
			return nil, repositories.ErrNotFound
		}
	})

	It("links a branch to its existing headquarter", func() {
		branch := &models.SwiftCode{ID: uuid.New(), SwiftCode: "BCHICLRM001"}

		Expect(associations.Associate(ctx, lookup, branch)).To(Succeed())
		Expect(requested).To(Equal([]string{"BCHICLRMXXX"}))
		Expect(branch.IsHeadquarter).To(BeFalse())
		Expect(branch.HeadquarterID).NotTo(BeNil())
		Expect(*branch.HeadquarterID).To(Equal(hq.ID))
	})

	It("links against a soft-deleted headquarter", func() {
		hq.IsDeleted = true
		branch := &models.SwiftCode{SwiftCode: "BCHICLRM002"}

		Expect(associations.Associate(ctx, lookup, branch)).To(Succeed())
		Expect(*branch.HeadquarterID).To(Equal(hq.ID))
	})

	It("leaves a branch without headquarter unlinked", func() {
		branch := &models.SwiftCode{SwiftCode: "AAAABBBB123"}

		Expect(associations.Associate(ctx, lookup, branch)).To(Succeed())
		Expect(requested).To(Equal([]string{"AAAABBBBXXX"}))
		Expect(branch.HeadquarterID).To(BeNil())
	})

	It("does not search for anything when creating a headquarter", func() {
		record := &models.SwiftCode{SwiftCode: "AAAABBBBXXX"}

		Expect(associations.Associate(ctx, lookup, record)).To(Succeed())
		Expect(requested).To(BeEmpty())
		Expect(record.IsHeadquarter).To(BeTrue())
		Expect(record.HeadquarterID).To(BeNil())
	})

	It("ignores a found record that is not flagged as headquarter", func() {
		hq.IsHeadquarter = false
		branch := &models.SwiftCode{SwiftCode: "BCHICLRM001"}

		Expect(associations.Associate(ctx, lookup, branch)).To(Succeed())
		Expect(branch.HeadquarterID).To(BeNil())
	})

	It("wraps storage failures", func() {
		boom := errors.New("connection reset")
		failing := lookupFunc(func(context.Context, string) (*models.SwiftCode, error) {
			return nil, boom
		})
		branch := &models.SwiftCode{SwiftCode: "BCHICLRM001"}

		err := associations.Associate(ctx, failing, branch)
		Expect(err).To(MatchError(boom))
		Expect(err.Error()).To(ContainSubstring("BCHICLRM001"))
	})
})

var _ = Describe("LinkBatch", func() {
	It("resolves branches against headquarters in the same batch regardless of order", func() {
		branch := &models.SwiftCode{ID: uuid.New(), SwiftCode: "AAAABBBB001"}
		hq := &models.SwiftCode{ID: uuid.New(), SwiftCode: "AAAABBBBXXX"}
		orphan := &models.SwiftCode{ID: uuid.New(), SwiftCode: "CCCCDDDD001"}
		other := &models.SwiftCode{ID: uuid.New(), SwiftCode: "AAAABBBB002"}

		linked := associations.LinkBatch([]*models.SwiftCode{branch, hq, orphan, other})

		Expect(linked).To(Equal(2))
		Expect(hq.IsHeadquarter).To(BeTrue())
		Expect(hq.HeadquarterID).To(BeNil())
		Expect(*branch.HeadquarterID).To(Equal(hq.ID))
		Expect(*other.HeadquarterID).To(Equal(hq.ID))
		Expect(orphan.HeadquarterID).To(BeNil())
	})

	It("handles an empty batch", func() {
		Expect(associations.LinkBatch(nil)).To(BeZero())
	})
})
