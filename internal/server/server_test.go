package server

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iwvelando/crunch-the-numbers/internal/preferences"
	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"go.uber.org/zap"
)

const mortgageBody = `{"homePrice": 300000, "downPayment": 60000, "interestRate": 6.5, "termYears": 30}`

func newTestHandler(t *testing.T, store preferences.Store) http.Handler {
	t.Helper()
	return NewHandler(zap.NewNop(), store, constants.DefaultMaxUploadSizeBytes, "test")
}

func doRequest(handler http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandleCalculateMortgage(t *testing.T) {
	handler := newTestHandler(t, nil)
	rr := doRequest(handler, http.MethodPost, "/api/calculators/mortgage", mortgageBody, nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get(RequestIDHeader) == "" {
		t.Fatal("expected a request id header")
	}

	var resp struct {
		calculateResponse
		Result struct {
			MonthlyPayment float64           `json:"monthlyPayment"`
			Schedule       []json.RawMessage `json:"amortizationSchedule"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Calculator != "mortgage" {
		t.Fatalf("expected calculator mortgage, got %q", resp.Calculator)
	}
	if resp.Currency != "USD" {
		t.Fatalf("expected default currency USD, got %q", resp.Currency)
	}
	if resp.Result.MonthlyPayment != 1516.96 {
		t.Fatalf("expected monthly payment 1516.96, got %v", resp.Result.MonthlyPayment)
	}
	if len(resp.Result.Schedule) != 360 {
		t.Fatalf("expected 360 payments, got %d", len(resp.Result.Schedule))
	}
	if len(resp.Summary) == 0 {
		t.Fatal("expected summary sections in response")
	}
	if !strings.Contains(resp.InputsYAML, "homePrice: 300000") {
		t.Fatalf("expected inputs YAML to echo the request, got %q", resp.InputsYAML)
	}
	if resp.Duration == "" {
		t.Fatal("expected duration in response")
	}
}

func TestHandleCalculateUsesCurrencyPreference(t *testing.T) {
	store := preferences.NewMemoryStore()
	if err := store.SetCurrency(context.Background(), "alice", "GBP"); err != nil {
		t.Fatalf("SetCurrency() error = %v", err)
	}
	handler := newTestHandler(t, store)

	tests := []struct {
		name string
		body string
		user string
		want string
	}{
		{"preference applies", `{"initialInvestment": 1000, "years": 1}`, "alice", "GBP"},
		{"explicit currency wins", `{"initialInvestment": 1000, "years": 1, "currency": "EUR"}`, "alice", "EUR"},
		{"unknown user gets default", `{"initialInvestment": 1000, "years": 1}`, "bob", "USD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(handler, http.MethodPost, "/api/calculators/investment", tt.body, map[string]string{UserHeader: tt.user})
			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
			}
			var resp calculateResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Currency != tt.want {
				t.Fatalf("expected currency %s, got %s", tt.want, resp.Currency)
			}
		})
	}
}

func TestHandleCalculateErrors(t *testing.T) {
	handler := newTestHandler(t, nil)

	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"unknown calculator", "/api/calculators/abacus", `{}`, http.StatusNotFound},
		{"malformed body", "/api/calculators/loan", `{"principal": `, http.StatusBadRequest},
		{"invalid inputs", "/api/calculators/loan", `{"principal": -5, "termYears": 5}`, http.StatusUnprocessableEntity},
		{"bad strategy", "/api/calculators/debt", `{"strategy": "lottery"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(handler, http.MethodPost, tt.target, tt.body, nil)
			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
			var resp map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp["error"] == "" {
				t.Fatal("expected error message")
			}
		})
	}
}

func TestHandleCalculateBodyTooLarge(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, 16, "test")
	rr := doRequest(handler, http.MethodPost, "/api/calculators/mortgage", mortgageBody, nil)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleExportCSV(t *testing.T) {
	handler := newTestHandler(t, nil)
	rr := doRequest(handler, http.MethodPost, "/api/calculators/mortgage/export?format=csv", mortgageBody, nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("expected text/csv, got %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "purchase_schedule.csv") {
		t.Fatalf("unexpected content disposition %q", cd)
	}

	records, err := csv.NewReader(rr.Body).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}
	if len(records) != 361 {
		t.Fatalf("expected header plus 360 rows, got %d", len(records))
	}
	if records[0][0] != "Payment #" {
		t.Fatalf("unexpected header %v", records[0])
	}
}

func TestHandleExportPDF(t *testing.T) {
	handler := newTestHandler(t, nil)
	rr := doRequest(handler, http.MethodPost, "/api/calculators/salary/export?format=PDF",
		`{"grossSalary": 60000, "country": "UK"}`, nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")) {
		t.Fatal("expected a PDF document")
	}
}

func TestHandleExportUnsupportedFormat(t *testing.T) {
	handler := newTestHandler(t, nil)
	rr := doRequest(handler, http.MethodPost, "/api/calculators/mortgage/export?format=xlsx", mortgageBody, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleCurrencyPreference(t *testing.T) {
	handler := newTestHandler(t, preferences.NewMemoryStore())

	rr := doRequest(handler, http.MethodGet, "/api/preferences/carol/currency", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var pref currencyPreference
	if err := json.Unmarshal(rr.Body.Bytes(), &pref); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if pref.Currency != "USD" {
		t.Fatalf("expected default USD, got %s", pref.Currency)
	}

	rr = doRequest(handler, http.MethodPut, "/api/preferences/carol/currency", `{"currency": "jpy"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(handler, http.MethodGet, "/api/preferences/carol/currency", "", nil)
	if err := json.Unmarshal(rr.Body.Bytes(), &pref); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if pref.Currency != "JPY" {
		t.Fatalf("expected JPY, got %s", pref.Currency)
	}

	rr = doRequest(handler, http.MethodPut, "/api/preferences/carol/currency", `{"currency": "DOGE"}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unsupported currency, got %d", rr.Code)
	}
}

func TestHandleCatalog(t *testing.T) {
	handler := newTestHandler(t, nil)
	rr := doRequest(handler, http.MethodGet, "/api/calculators", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp catalogResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Calculators) != 10 {
		t.Fatalf("expected 10 calculators, got %d", len(resp.Calculators))
	}
	if strings.Join(resp.Formats, ",") != "csv,json,pdf,pretty" {
		t.Fatalf("unexpected formats %v", resp.Formats)
	}
}

func TestHandleVersion(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, 0, "  ")
	rr := doRequest(handler, http.MethodGet, "/api/version", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "dev" {
		t.Fatalf("expected version dev, got %q", resp["version"])
	}

	rr = doRequest(handler, http.MethodPost, "/api/version", "", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}
