package page

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/uiforge/designlint/internal/model"
)

// maxBodySize limits how much of a rendered page the auditor reads.
// 5MB is far beyond any sane marketing page; this guards against a
// misconfigured base URL pointing at a file download.
const maxBodySize = 5 * 1024 * 1024

// RouteResult is the audit outcome for one route.
type RouteResult struct {
	// Route is the audited server path, e.g. "/pricing".
	Route string `json:"route"`

	// StatusCode is the HTTP response status, 0 when the fetch failed.
	StatusCode int `json:"status_code"`

	// HasNav reports whether the page renders a <nav> element.
	HasNav bool `json:"has_nav"`

	// HasFooter reports whether the page renders a <footer> element.
	HasFooter bool `json:"has_footer"`

	// MissingCopy lists required strings absent from the page text.
	MissingCopy []string `json:"missing_copy,omitempty"`

	// InlineStyleCount is the number of style attributes in the output.
	InlineStyleCount int `json:"inline_style_count"`

	// FetchError is set when the route could not be fetched.
	FetchError string `json:"fetch_error,omitempty"`
}

// Auditor fetches and checks routes on the local dev server.
type Auditor struct {
	// baseURL is the server base, e.g. "http://127.0.0.1:3000".
	baseURL string

	// requiredCopy are strings that must appear on the homepage route.
	requiredCopy []string

	// client performs the HTTP fetches.
	client *http.Client

	// logger is used for per-route debug logging.
	logger *slog.Logger
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithRequiredCopy sets the strings that must appear on the homepage.
func WithRequiredCopy(copy []string) Option {
	return func(a *Auditor) {
		a.requiredCopy = copy
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(a *Auditor) {
		a.client.Timeout = d
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Auditor) {
		a.logger = logger
	}
}

// NewAuditor creates an Auditor for the given base URL.
func NewAuditor(baseURL string, opts ...Option) *Auditor {
	a := &Auditor{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Audit fetches all routes and returns a report plus per-route results.
// Shell violations become findings; fetch failures abort only the
// affected route.
func (a *Auditor) Audit(ctx context.Context, routes []string) (*model.ValidationReport, []RouteResult, error) {
	report := model.NewValidationReport(a.baseURL)
	results := make([]RouteResult, 0, len(routes))

	for _, route := range routes {
		select {
		case <-ctx.Done():
			return report, results, ctx.Err()
		default:
		}

		result := a.auditRoute(ctx, route)
		results = append(results, result)

		report.AddFileResult(&model.FileResult{Path: route})
		a.addFindings(report, result)
	}

	report.Finalize()
	return report, results, nil
}

// auditRoute fetches and checks a single route.
func (a *Auditor) auditRoute(ctx context.Context, route string) RouteResult {
	result := RouteResult{Route: route}

	target, err := url.JoinPath(a.baseURL, route)
	if err != nil {
		result.FetchError = err.Error()
		return result
	}

	a.logger.Debug("auditing route", "url", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		result.FetchError = err.Error()
		return result
	}
	resp, err := a.client.Do(req)
	if err != nil {
		result.FetchError = err.Error()
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		return result
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		result.FetchError = fmt.Sprintf("failed to parse HTML: %v", err)
		return result
	}

	var pageText strings.Builder
	walk(doc, func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "nav":
				result.HasNav = true
			case "footer":
				result.HasFooter = true
			}
			for _, attr := range n.Attr {
				if strings.EqualFold(attr.Key, "style") && strings.TrimSpace(attr.Val) != "" {
					result.InlineStyleCount++
				}
			}
		case html.TextNode:
			pageText.WriteString(n.Data)
		}
	})

	if a.isHomepage(route) {
		text := pageText.String()
		for _, want := range a.requiredCopy {
			if !strings.Contains(text, want) {
				result.MissingCopy = append(result.MissingCopy, want)
			}
		}
	}
	return result
}

// addFindings converts a route result into report findings.
func (a *Auditor) addFindings(report *model.ValidationReport, result RouteResult) {
	if result.FetchError != "" {
		report.AddFinding(model.NewFinding(
			"page/unreachable",
			"Route unreachable",
			fmt.Sprintf("could not audit %s: %s", result.Route, result.FetchError),
			"", result.Route, 0,
		))
		return
	}
	if result.StatusCode != http.StatusOK {
		report.AddFinding(model.NewFinding(
			"page/unreachable",
			"Route returned non-200 status",
			fmt.Sprintf("%s responded with HTTP %d", result.Route, result.StatusCode),
			fmt.Sprintf("%d", result.StatusCode), result.Route, 0,
		))
		return
	}

	if !result.HasNav {
		report.AddFinding(model.NewFinding(
			"structure/missing-nav",
			"Page without navigation",
			"rendered page contains no <nav> element",
			"", result.Route, 0,
		))
	}
	if !result.HasFooter {
		report.AddFinding(model.NewFinding(
			"structure/missing-footer",
			"Page without footer",
			"rendered page contains no <footer> element",
			"", result.Route, 0,
		))
	}
	for _, missing := range result.MissingCopy {
		report.AddFinding(model.NewFinding(
			"page/missing-copy",
			"Required copy missing",
			fmt.Sprintf("homepage does not contain %q", missing),
			missing, result.Route, 0,
		))
	}
	if result.InlineStyleCount > 0 {
		report.AddFinding(model.NewFinding(
			"inline/style-attribute",
			"Inline styles in rendered output",
			fmt.Sprintf("%d style attribute(s) leaked into the rendered page", result.InlineStyleCount),
			"", result.Route, 0,
		))
	}
}

// isHomepage reports whether a route is the homepage.
func (a *Auditor) isHomepage(route string) bool {
	return route == "/" || route == ""
}

// walk visits every node of an HTML document tree.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}
