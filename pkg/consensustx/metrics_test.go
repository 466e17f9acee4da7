package consensustx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/certen-labs/objectchain/pkg/metrics"
)

func TestRecordSubmissionDoesNotPanicWithoutRegistry(t *testing.T) {
	cert, _, name := newCertificate(t)
	msg, err := NewCertificateMessage(name, cert)
	if err != nil {
		t.Fatalf("NewCertificateMessage failed: %v", err)
	}
	msg.RecordSubmission(nil)
}

func TestRecordSubmissionIncrementsCounter(t *testing.T) {
	cert, _, name := newCertificate(t)
	msg, err := NewCertificateMessage(name, cert)
	if err != nil {
		t.Fatalf("NewCertificateMessage failed: %v", err)
	}
	reg := metrics.NewRegistry()
	msg.RecordSubmission(reg)
	msg.RecordSubmission(reg)

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	want := `objectchain_consensus_messages_total{kind="user_transaction"} 2`
	if !strings.Contains(rec.Body.String(), want) {
		t.Errorf("metrics output missing %q", want)
	}
}
