package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap/zaptest"
)

const threeDebtsJSON = `[
	{"id": "A", "balance": 1000, "apr": 20, "minimum_payment": 30},
	{"id": "B", "balance": 2000, "apr": 10, "minimum_payment": 50},
	{"id": "C", "balance": 500, "apr": 15, "minimum_payment": 20}
]`

func newTestService(t *testing.T, cache Cache) *httptest.Server {
	t.Helper()
	svc, err := New(Config{}, zaptest.NewLogger(t), cache)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts := httptest.NewServer(svc.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp, data
}

func TestHealthz(t *testing.T) {
	ts := newTestService(t, nil)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestSimulate(t *testing.T) {
	ts := newTestService(t, nil)
	resp, data := post(t, ts, "/v1/simulate",
		`{"debts": `+threeDebtsJSON+`, "monthly_budget": 200, "strategy": "snowball", "include_schedules": true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Join(res.Order, ",") != "C,A,B" {
		t.Fatalf("order = %v", res.Order)
	}
	if len(res.Payoffs) != 3 || res.Payoffs[0].DebtID != "C" {
		t.Fatalf("payoffs = %+v", res.Payoffs)
	}
	if res.Incomplete {
		t.Fatal("incomplete")
	}
	if res.YearsToPayoff != (res.MonthsToPayoff+11)/12 {
		t.Fatalf("years = %d for %d months", res.YearsToPayoff, res.MonthsToPayoff)
	}
	if len(res.Schedules["C"]) == 0 {
		t.Fatal("schedules missing")
	}
	if resp.Header.Get("X-Cache") != "MISS" {
		t.Fatalf("X-Cache = %q, want MISS without a cache hit", resp.Header.Get("X-Cache"))
	}
}

func TestSimulate_Errors(t *testing.T) {
	ts := newTestService(t, nil)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"schema missing budget", `{"debts": ` + threeDebtsJSON + `}`, http.StatusBadRequest},
		{"schema negative balance", `{"debts": [{"id": "x", "balance": -5, "apr": 1, "minimum_payment": 1}], "monthly_budget": 10}`, http.StatusBadRequest},
		{"not json", `{"debts": `, http.StatusBadRequest},
		{"unknown strategy", `{"debts": ` + threeDebtsJSON + `, "monthly_budget": 200, "strategy": "zigzag"}`, http.StatusBadRequest},
		{"duplicate id", `{"debts": [{"id": "x", "balance": 5, "apr": 1, "minimum_payment": 1}, {"id": "x", "balance": 5, "apr": 1, "minimum_payment": 1}], "monthly_budget": 10}`, http.StatusBadRequest},
		{"budget below minimums", `{"debts": ` + threeDebtsJSON + `, "monthly_budget": 50}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, data := post(t, ts, "/v1/simulate", tc.body)
			if resp.StatusCode != tc.want {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tc.want, data)
			}
			var body map[string]string
			if err := json.Unmarshal(data, &body); err != nil || body["error"] == "" {
				t.Fatalf("error body = %s", data)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestService(t, nil)
	resp, err := http.Get(ts.URL + "/v1/simulate")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
}

func TestCompare(t *testing.T) {
	ts := newTestService(t, nil)
	resp, data := post(t, ts, "/v1/compare", `{"debts": `+threeDebtsJSON+`, "monthly_budget": 200}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}
	var cmp CompareResponse
	if err := json.Unmarshal(data, &cmp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cmp.Snowball.Strategy != "snowball" || cmp.Avalanche.Strategy != "avalanche" {
		t.Fatalf("strategies = %s / %s", cmp.Snowball.Strategy, cmp.Avalanche.Strategy)
	}
	if cmp.Recommended != "snowball" && cmp.Recommended != "avalanche" {
		t.Fatalf("recommended = %q", cmp.Recommended)
	}
}

func TestAmortize(t *testing.T) {
	ts := newTestService(t, nil)
	resp, data := post(t, ts, "/v1/amortize", `{"principal": 1200, "apr": 0, "payment": 100}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}
	var am AmortizeResponse
	if err := json.Unmarshal(data, &am); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if am.Months != 12 || !am.PaidOff {
		t.Fatalf("months = %d paid_off = %v", am.Months, am.PaidOff)
	}
	if am.TotalPaid.String() != "1200" {
		t.Fatalf("total paid = %s", am.TotalPaid)
	}
}

func TestScenarios(t *testing.T) {
	ts := newTestService(t, nil)

	resp, data := post(t, ts, "/v1/scenarios", `{"debts": `+threeDebtsJSON+`}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}
	var sc ScenariosResponse
	if err := json.Unmarshal(data, &sc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sc.Scenarios) != 3 || sc.Scenarios[0].Label != "minimum" || sc.Scenarios[2].Label != "aggressive" {
		t.Fatalf("scenarios = %+v", sc.Scenarios)
	}

	resp, data = post(t, ts, "/v1/scenarios", `{"debts": `+threeDebtsJSON+`, "scenarios": [
		{"label": "x", "budget": "minimum"},
		{"label": "x", "budget": "minimum"}
	]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate labels status = %d: %s", resp.StatusCode, data)
	}

	resp, data = post(t, ts, "/v1/scenarios", `{"debts": `+threeDebtsJSON+`, "scenarios": [
		{"label": "plus", "budget": "minimum_plus"}
	]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing amount status = %d: %s", resp.StatusCode, data)
	}
}

func TestRedisCache(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	cache := NewRedisCache(mr.Addr(), time.Minute)
	ts := newTestService(t, cache)

	first, firstBody := post(t, ts, "/v1/simulate", `{"debts": `+threeDebtsJSON+`, "monthly_budget": 200}`)
	if first.Header.Get("X-Cache") != "MISS" {
		t.Fatalf("first X-Cache = %q, want MISS", first.Header.Get("X-Cache"))
	}
	if n := len(mr.Keys()); n != 1 {
		t.Fatalf("redis keys = %d, want 1", n)
	}

	// Same request with different key order and spacing.
	second, secondBody := post(t, ts, "/v1/simulate", `{"monthly_budget":200,"debts":`+threeDebtsJSON+`}`)
	if second.Header.Get("X-Cache") != "HIT" {
		t.Fatalf("second X-Cache = %q, want HIT", second.Header.Get("X-Cache"))
	}
	if string(firstBody) != string(secondBody) {
		t.Fatal("cached body differs")
	}

	ttl := mr.TTL(mr.Keys()[0])
	if ttl <= 0 || ttl > time.Minute {
		t.Fatalf("ttl = %s, want up to 1m", ttl)
	}

	// Errors are not cached.
	post(t, ts, "/v1/simulate", `{"debts": `+threeDebtsJSON+`, "monthly_budget": 10}`)
	if n := len(mr.Keys()); n != 1 {
		t.Fatalf("redis keys after error = %d, want 1", n)
	}
}

func TestRedisCache_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	ts := newTestService(t, NewRedisCache(addr, time.Minute))
	resp, data := post(t, ts, "/v1/simulate", `{"debts": `+threeDebtsJSON+`, "monthly_budget": 200}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d with cache down: %s", resp.StatusCode, data)
	}
}

func TestCacheKeyCanonical(t *testing.T) {
	a, err := cacheKey("simulate", []byte(`{"a": 1, "b": [1, 2]}`))
	if err != nil {
		t.Fatal(err)
	}
	b, err := cacheKey("simulate", []byte(`{"b":[1,2],"a":1}`))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("keys differ: %s vs %s", a, b)
	}
	c, _ := cacheKey("compare", []byte(`{"a": 1, "b": [1, 2]}`))
	if a == c {
		t.Fatal("endpoints share a key")
	}
}

func TestCacheKeyKeepsDecimalPrecision(t *testing.T) {
	a, err := cacheKey("simulate", []byte(`{"monthly_budget": 100}`))
	if err != nil {
		t.Fatal(err)
	}
	b, err := cacheKey("simulate", []byte(`{"monthly_budget": 99.99999999999999999}`))
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("amounts beyond float64 precision share a key")
	}
}

func TestRedisCache_NearlyEqualBudgetsNotShared(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	ts := newTestService(t, NewRedisCache(mr.Addr(), time.Minute))
	const oneDebt = `[{"id": "A", "balance": 1000, "apr": 12, "minimum_payment": 100}]`

	first, data := post(t, ts, "/v1/simulate", `{"debts": `+oneDebt+`, "monthly_budget": 100}`)
	if first.StatusCode != http.StatusOK {
		t.Fatalf("first status = %d: %s", first.StatusCode, data)
	}

	second, data := post(t, ts, "/v1/simulate", `{"debts": `+oneDebt+`, "monthly_budget": 99.99999999999999999}`)
	if second.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("second status = %d (X-Cache %s): %s, want 422",
			second.StatusCode, second.Header.Get("X-Cache"), data)
	}
}

func TestMetrics(t *testing.T) {
	ts := newTestService(t, nil)
	post(t, ts, "/v1/amortize", `{"principal": 100, "apr": 5, "payment": 50}`)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	data, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"debtpath_requests_total", "debtpath_simulation_seconds"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("metrics missing %s", want)
		}
	}
}
