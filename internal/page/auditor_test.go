package page

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/uiforge/designlint/internal/model"
)

const goodHomepage = `<!DOCTYPE html>
<html>
<body>
  <nav><a href="/pricing">Pricing</a></nav>
  <main>
    <h1>Ready to Transform Your PM Work?</h1>
  </main>
  <footer>© 2026</footer>
</body>
</html>`

const barePage = `<!DOCTYPE html>
<html>
<body>
  <main><p style="color: #ff0000">No shell here</p></main>
</body>
</html>`

// testServer serves a fixed body per route.
func testServer(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// findingsByRule groups report findings by rule ID.
func findingsByRule(report *model.ValidationReport) map[string]int {
	counts := make(map[string]int)
	for _, f := range report.Findings {
		counts[f.Rule]++
	}
	return counts
}

// TestAuditHealthyPage tests a page that satisfies the shell contract.
func TestAuditHealthyPage(t *testing.T) {
	t.Parallel()

	srv := testServer(t, map[string]string{"/": goodHomepage})
	a := NewAuditor(srv.URL, WithRequiredCopy([]string{"Ready to Transform Your PM Work?"}))

	report, results, err := a.Audit(context.Background(), []string{"/"})
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, expected 1", len(results))
	}

	r := results[0]
	if r.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, expected 200", r.StatusCode)
	}
	if !r.HasNav || !r.HasFooter {
		t.Errorf("HasNav = %v, HasFooter = %v, expected both true", r.HasNav, r.HasFooter)
	}
	if len(r.MissingCopy) != 0 {
		t.Errorf("MissingCopy = %v, expected none", r.MissingCopy)
	}
	if r.InlineStyleCount != 0 {
		t.Errorf("InlineStyleCount = %d, expected 0", r.InlineStyleCount)
	}
	if !report.Pass {
		t.Errorf("report should pass, got score %d with %d error(s)",
			report.Score, report.ErrorCount)
	}
}

// TestAuditMissingShell tests nav, footer, copy, and inline style findings.
func TestAuditMissingShell(t *testing.T) {
	t.Parallel()

	srv := testServer(t, map[string]string{"/": barePage})
	a := NewAuditor(srv.URL, WithRequiredCopy([]string{"Ready to Transform Your PM Work?"}))

	report, results, err := a.Audit(context.Background(), []string{"/"})
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}

	r := results[0]
	if r.HasNav || r.HasFooter {
		t.Errorf("HasNav = %v, HasFooter = %v, expected both false", r.HasNav, r.HasFooter)
	}
	if len(r.MissingCopy) != 1 {
		t.Errorf("MissingCopy = %v, expected the required headline", r.MissingCopy)
	}
	if r.InlineStyleCount != 1 {
		t.Errorf("InlineStyleCount = %d, expected 1", r.InlineStyleCount)
	}

	counts := findingsByRule(report)
	for _, rule := range []string{
		"structure/missing-nav",
		"structure/missing-footer",
		"page/missing-copy",
		"inline/style-attribute",
	} {
		if counts[rule] != 1 {
			t.Errorf("got %d %s findings, expected 1", counts[rule], rule)
		}
	}
	if report.Pass {
		t.Error("report with shell violations should not pass")
	}
}

// TestAuditCopyOnlyOnHomepage tests that required copy is not checked on
// secondary routes.
func TestAuditCopyOnlyOnHomepage(t *testing.T) {
	t.Parallel()

	page := `<html><body><nav>n</nav><p>Pricing</p><footer>f</footer></body></html>`
	srv := testServer(t, map[string]string{"/pricing": page})
	a := NewAuditor(srv.URL, WithRequiredCopy([]string{"Ready to Transform Your PM Work?"}))

	report, results, err := a.Audit(context.Background(), []string{"/pricing"})
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}
	if len(results[0].MissingCopy) != 0 {
		t.Errorf("MissingCopy = %v, expected none on a secondary route", results[0].MissingCopy)
	}
	if counts := findingsByRule(report); counts["page/missing-copy"] != 0 {
		t.Error("copy findings should only apply to the homepage")
	}
}

// TestAuditNotFoundRoute tests the non-200 finding.
func TestAuditNotFoundRoute(t *testing.T) {
	t.Parallel()

	srv := testServer(t, map[string]string{"/": goodHomepage})
	a := NewAuditor(srv.URL)

	report, results, err := a.Audit(context.Background(), []string{"/missing"})
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}
	if results[0].StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, expected 404", results[0].StatusCode)
	}
	if counts := findingsByRule(report); counts["page/unreachable"] != 1 {
		t.Errorf("got %d page/unreachable findings, expected 1", counts["page/unreachable"])
	}
}

// TestAuditUnreachableServer tests the fetch error finding.
func TestAuditUnreachableServer(t *testing.T) {
	t.Parallel()

	srv := testServer(t, nil)
	base := srv.URL
	srv.Close()

	a := NewAuditor(base)
	report, results, err := a.Audit(context.Background(), []string{"/"})
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}
	if results[0].FetchError == "" {
		t.Error("FetchError should be set for a closed server")
	}
	if counts := findingsByRule(report); counts["page/unreachable"] != 1 {
		t.Errorf("got %d page/unreachable findings, expected 1", counts["page/unreachable"])
	}
	if report.Pass {
		t.Error("an unreachable route should fail the report")
	}
}

// TestAuditCancellation tests that a cancelled context stops the audit.
func TestAuditCancellation(t *testing.T) {
	t.Parallel()

	srv := testServer(t, map[string]string{"/": goodHomepage})
	a := NewAuditor(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := a.Audit(ctx, []string{"/"}); err == nil {
		t.Error("Audit() should return the context error after cancellation")
	}
}
