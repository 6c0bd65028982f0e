package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/cocoluventas/sales_backend/internal/apperrors"
	portssvc "github.com/cocoluventas/sales_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// Extraction is pattern-based on purpose: the BCV page's markup is not ours
// and drifts. Each strategy is tried in order over the whole body, then a
// generic per-line scan runs as the last resort; every candidate passes the
// same plausibility band before it is accepted.
var (
	// label-prefixed: "USD ... 166,58", "Dólar: 166,58"
	labelPrefixedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)usd[^\d]{0,40}(\d{1,4}[.,]\d{1,8})`),
		regexp.MustCompile(`(?i)d[oó]lar[^\d]{0,40}(\d{1,4}[.,]\d{1,8})`),
	}
	// currency-suffixed: "166,58 Bs", "166,58 VES"
	suffixedPattern = regexp.MustCompile(`(?i)(\d{1,4}[.,]\d{1,8})\s*(?:bs\.?|ves)`)
	// generic decimal, used only on lines that mention the currency
	genericDecimal  = regexp.MustCompile(`\d{1,4}[.,]\d{1,8}`)
	currencyMention = regexp.MustCompile(`(?i)usd|d[oó]lar|bs\.?|ves|\$`)
)

// Sanity band for VES per USD. Candidates outside it are scrape noise
// (percentages, years, other currencies), not a rate.
var (
	minPlausibleRate = decimal.NewFromInt(50)
	maxPlausibleRate = decimal.NewFromInt(1000)
)

const ratePrecision = 4

// scraperService fetches the daily VES/USD reference rate from the BCV site.
type scraperService struct {
	client    *http.Client
	sourceURL string
	userAgent string
}

// ScraperOption is a functional option for configuring the scraper service.
type ScraperOption func(*scraperService)

// WithHTTPClient replaces the default HTTP client (used by tests).
func WithHTTPClient(client *http.Client) ScraperOption {
	return func(s *scraperService) {
		s.client = client
	}
}

// WithUserAgent overrides the User-Agent header sent to the source.
func WithUserAgent(ua string) ScraperOption {
	return func(s *scraperService) {
		s.userAgent = ua
	}
}

// NewScraperService creates a scraper against the given source URL.
//
// The default client skips TLS verification: the BCV certificate chain has
// been broken for years and this client talks to that one known host only.
// It is a deliberate trust exception, not a general policy.
func NewScraperService(sourceURL string, timeout time.Duration, options ...ScraperOption) portssvc.RateScraperSvc {
	svc := &scraperService{
		sourceURL: sourceURL,
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.RateScraperSvc = (*scraperService)(nil)

// FetchRate retrieves the source page and extracts today's VES/USD rate.
func (s *scraperService) FetchRate(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.sourceURL, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: building request: %v", apperrors.ErrFetch, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: requesting %s: %v", apperrors.ErrFetch, s.sourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: source returned status %d", apperrors.ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: reading response body: %v", apperrors.ErrFetch, err)
	}

	rate, ok := ExtractRate(string(body))
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no plausible rate found in source page", apperrors.ErrFetch)
	}

	return rate, nil
}

// ExtractRate runs the ordered extraction strategies over markup and returns
// the first plausible rate, rounded to 4 decimal places.
func ExtractRate(markup string) (decimal.Decimal, bool) {
	for _, pattern := range labelPrefixedPatterns {
		if rate, ok := firstPlausible(pattern.FindAllStringSubmatch(markup, -1), 1); ok {
			return rate, true
		}
	}

	if rate, ok := firstPlausible(suffixedPattern.FindAllStringSubmatch(markup, -1), 1); ok {
		return rate, true
	}

	// Last resort: any decimal on a line that mentions the currency.
	for _, line := range strings.Split(markup, "\n") {
		if !currencyMention.MatchString(line) {
			continue
		}
		for _, candidate := range genericDecimal.FindAllString(line, -1) {
			if rate, ok := parsePlausible(candidate); ok {
				return rate, true
			}
		}
	}

	return decimal.Zero, false
}

func firstPlausible(matches [][]string, group int) (decimal.Decimal, bool) {
	for _, match := range matches {
		if len(match) <= group {
			continue
		}
		if rate, ok := parsePlausible(match[group]); ok {
			return rate, true
		}
	}
	return decimal.Zero, false
}

// parsePlausible normalizes the decimal separator, parses the candidate and
// applies the plausibility band.
func parsePlausible(raw string) (decimal.Decimal, bool) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")

	rate, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, false
	}

	if rate.LessThan(minPlausibleRate) || rate.GreaterThan(maxPlausibleRate) {
		return decimal.Zero, false
	}

	return rate.Round(ratePrecision), true
}
