package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/zdziszkee/swift-codes-registry/internal/metrics"
)

func TestMetrics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Metrics Suite")
}

var _ = Describe("Metrics", func() {
	var m *metrics.Metrics

	BeforeEach(func() {
		m = metrics.New()
	})

	It("counts requests by method, route and status", func() {
		m.ObserveRequest("GET", "/v1/swift-codes/:swiftCode", 200, 5*time.Millisecond)
		m.ObserveRequest("GET", "/v1/swift-codes/:swiftCode", 200, 7*time.Millisecond)
		m.ObserveRequest("GET", "/v1/swift-codes/:swiftCode", 404, time.Millisecond)

		Expect(testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/v1/swift-codes/:swiftCode", "200"))).To(Equal(2.0))
		Expect(testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/v1/swift-codes/:swiftCode", "404"))).To(Equal(1.0))
	})

	It("ignores non-positive import counts", func() {
		m.AddImported(0)
		m.AddImported(-3)
		m.AddImported(4)

		Expect(testutil.ToFloat64(m.SwiftCodesImported)).To(Equal(4.0))
	})

	It("keeps separate instances independent", func() {
		other := metrics.New()
		m.AddImported(2)

		Expect(testutil.ToFloat64(other.SwiftCodesImported)).To(BeZero())
	})

	It("serves the registry in text format", func() {
		m.AddImported(1)

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		Expect(rec.Code).To(Equal(http.StatusOK))
		body, err := io.ReadAll(rec.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring("swift_codes_imported_total 1"))
	})
})
