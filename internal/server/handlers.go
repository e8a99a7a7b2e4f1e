package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/theirongolddev/debtpath/internal/config"
	"github.com/theirongolddev/debtpath/internal/model"
	"github.com/theirongolddev/debtpath/internal/payoff"
	"github.com/theirongolddev/debtpath/internal/scenario"

	"go.uber.org/zap"
)

var errBadRequest = errors.New("bad request")

type computeFunc func(ctx context.Context, body []byte) (any, error)

// endpoint wraps a compute function with method checks, schema validation,
// the result cache, metrics, and logging.
func (s *Service) endpoint(name string, fn computeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		code := s.serve(name, fn, w, r)
		RequestsTotal.WithLabelValues(name, strconv.Itoa(code)).Inc()
		s.log.Debug("request",
			zap.String("endpoint", name),
			zap.Int("code", code),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func (s *Service) serve(name string, fn computeFunc, w http.ResponseWriter, r *http.Request) int {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		return writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBody))
	if err != nil {
		return writeError(w, http.StatusRequestEntityTooLarge, err)
	}
	if err := s.schemas.validate(name, body); err != nil {
		return writeError(w, http.StatusBadRequest, err)
	}

	ctx := r.Context()
	key, err := cacheKey(name, body)
	if err != nil {
		return writeError(w, http.StatusBadRequest, err)
	}
	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn("cache get failed", zap.String("endpoint", name), zap.Error(err))
	} else if ok {
		CacheHitsTotal.WithLabelValues(name).Inc()
		w.Header().Set("X-Cache", "HIT")
		return writeRaw(w, http.StatusOK, cached)
	}

	timer := time.Now()
	resp, err := fn(ctx, body)
	SimulationSeconds.WithLabelValues(name).Observe(time.Since(timer).Seconds())
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			s.log.Error("request failed", zap.String("endpoint", name), zap.Error(err))
		}
		return writeError(w, code, err)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error("encoding response", zap.String("endpoint", name), zap.Error(err))
		return writeError(w, http.StatusInternalServerError, err)
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		s.log.Warn("cache set failed", zap.String("endpoint", name), zap.Error(err))
	}
	w.Header().Set("X-Cache", "MISS")
	return writeRaw(w, http.StatusOK, data)
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, payoff.ErrInvalidDebt),
		errors.Is(err, payoff.ErrInvalidStrategy),
		errors.Is(err, scenario.ErrInvalidScenario):
		return http.StatusBadRequest
	case errors.Is(err, payoff.ErrInsufficientBudget),
		errors.Is(err, payoff.ErrTargetUnreachable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeRaw(w http.ResponseWriter, code int, data []byte) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
	return code
}

func writeError(w http.ResponseWriter, code int, err error) int {
	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	return writeRaw(w, code, data)
}

func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (s *Service) horizon(months int) int {
	if months <= 0 {
		return s.cfg.MaxMonths
	}
	return months
}

func parseStrategy(raw string) (model.Strategy, error) {
	if raw == "" {
		return model.Strategy{Kind: model.Avalanche}, nil
	}
	st, err := model.ParseStrategy(raw)
	if err != nil {
		return st, fmt.Errorf("%w: %v", payoff.ErrInvalidStrategy, err)
	}
	return st, nil
}

func (s *Service) simulate(_ context.Context, body []byte) (any, error) {
	var req SimulateRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}
	st, err := parseStrategy(req.Strategy)
	if err != nil {
		return nil, err
	}

	res, err := payoff.Simulate(toModelDebts(req.Debts), st, req.MonthlyBudget, s.horizon(req.MaxMonths))
	if err != nil {
		return nil, err
	}
	return toResult(res, req.IncludeSchedules), nil
}

func (s *Service) compare(_ context.Context, body []byte) (any, error) {
	var req CompareRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}

	cmp, err := payoff.Compare(toModelDebts(req.Debts), req.MonthlyBudget, s.horizon(req.MaxMonths))
	if err != nil {
		return nil, err
	}
	return CompareResponse{
		Snowball:      toResult(cmp.Snowball, false),
		Avalanche:     toResult(cmp.Avalanche, false),
		InterestSaved: cmp.InterestSaved,
		MonthsSaved:   cmp.MonthsSaved,
		Recommended:   string(cmp.Recommended),
	}, nil
}

func (s *Service) amortize(_ context.Context, body []byte) (any, error) {
	var req AmortizeRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}

	schedule := payoff.Amortize(req.Principal, req.APR, req.Payment, s.horizon(req.MaxMonths))
	resp := AmortizeResponse{
		Schedule: toRows(schedule),
		Months:   len(schedule),
		PaidOff:  payoff.Amortizes(schedule),
	}
	for _, row := range schedule {
		resp.TotalInterest = resp.TotalInterest.Add(row.InterestAccrued)
		resp.TotalPaid = resp.TotalPaid.Add(row.Payment)
	}
	return resp, nil
}

func (s *Service) scenarios(ctx context.Context, body []byte) (any, error) {
	var req ScenariosRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}
	st, err := parseStrategy(req.Strategy)
	if err != nil {
		return nil, err
	}

	defs, err := config.ScenarioDefinitions(config.Config{Scenarios: req.Scenarios})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", scenario.ErrInvalidScenario, err)
	}

	p, err := scenario.Present(ctx, toModelDebts(req.Debts), defs, st)
	if err != nil {
		return nil, err
	}

	views := p.Ordered(defs)
	resp := ScenariosResponse{Scenarios: make([]ScenarioView, len(views))}
	for i, v := range views {
		resp.Scenarios[i] = ScenarioView{
			Label:          v.Label,
			MonthlyPayment: v.MonthlyPayment,
			YearsToPayoff:  v.YearsToPayoff,
			Result:         toResult(v.Result, false),
		}
	}
	return resp, nil
}
