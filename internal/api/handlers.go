package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/verdant-io/verdant/internal/disclosure"
	"github.com/verdant-io/verdant/internal/emissions"
	"github.com/verdant-io/verdant/internal/factors"
	"github.com/verdant-io/verdant/internal/forecast"
	"github.com/verdant-io/verdant/internal/scoring"
	"github.com/verdant-io/verdant/internal/store"
)

// defaultForecastPeriods is used when the forecast query omits periods.
const defaultForecastPeriods = 6

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeCalcError maps calculator contract violations to 422 and anything
// else to 500.
func writeCalcError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, emissions.ErrNegativeQuantity) ||
		errors.Is(err, emissions.ErrUnknownScope2Method) ||
		errors.Is(err, emissions.ErrInvalidRenewablePercent) {
		status = http.StatusUnprocessableEntity
	}
	writeError(w, status, err)
}

func companyID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "companyID"))
}

// activityRequest is the ingestion payload.
type activityRequest struct {
	Records []struct {
		ActivityType string    `json:"activity_type"`
		Quantity     float64   `json:"quantity"`
		Unit         string    `json:"unit"`
		Scope        int       `json:"scope"`
		RecordedAt   time.Time `json:"recorded_at"`
	} `json:"records"`
}

func (s *Server) handleInsertActivities(w http.ResponseWriter, r *http.Request) {
	id, err := companyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid company id: %w", err))
		return
	}

	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	rows := make([]store.ActivityRecordRow, 0, len(req.Records))
	for _, rec := range req.Records {
		// Boundary validation: calculators assume non-negative input.
		if rec.Quantity < 0 {
			writeError(w, http.StatusUnprocessableEntity,
				fmt.Errorf("%w: %s", emissions.ErrNegativeQuantity, rec.ActivityType))
			return
		}
		recordedAt := rec.RecordedAt
		if recordedAt.IsZero() {
			recordedAt = time.Now().UTC()
		}
		rows = append(rows, store.ActivityRecordRow{
			CompanyID:    id,
			ActivityType: rec.ActivityType,
			Quantity:     rec.Quantity,
			Unit:         rec.Unit,
			Scope:        rec.Scope,
			RecordedAt:   recordedAt,
		})
	}

	if err := s.store.InsertActivityRecords(r.Context(), rows); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"inserted": len(rows)})
}

// computeResponse carries the per-scope results of a period computation.
type computeResponse struct {
	Year    int                         `json:"year"`
	Month   int                         `json:"month"`
	Results map[string]emissions.Result `json:"results"`
}

// handleComputeEmissions recomputes a company's emissions for one month
// from its raw activity records and persists the period totals consumed
// by trend forecasting. Emission results stay derived data: they are
// returned, not stored.
func (s *Server) handleComputeEmissions(w http.ResponseWriter, r *http.Request) {
	id, err := companyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid company id: %w", err))
		return
	}

	year, month, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	records, err := s.store.LoadActivityRecords(r.Context(), id, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	byScope := map[int]map[string]float64{1: {}, 2: {}, 3: {}}
	for _, rec := range records {
		if m, ok := byScope[rec.Scope]; ok {
			m[rec.ActivityType] += rec.Quantity
		}
	}

	opts := emissions.Scope2Options{Method: emissions.Scope2LocationBased}
	if method := r.URL.Query().Get("scope2_method"); method != "" {
		opts.Method = emissions.Scope2Method(method)
	}
	if pct := r.URL.Query().Get("renewable_percent"); pct != "" {
		opts.RenewablePercent, err = strconv.ParseFloat(pct, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid renewable_percent: %w", err))
			return
		}
	}

	ctx := r.Context()
	results := make(map[string]emissions.Result, 3)

	scope1, err := s.calc.Scope1(ctx, byScope[1])
	if err != nil {
		writeCalcError(w, err)
		return
	}
	scope2, err := s.calc.Scope2(ctx, byScope[2], opts)
	if err != nil {
		writeCalcError(w, err)
		return
	}
	scope3, err := s.calc.Scope3(ctx, byScope[3])
	if err != nil {
		writeCalcError(w, err)
		return
	}
	results["scope1"], results["scope2"], results["scope3"] = scope1, scope2, scope3

	for scope, res := range map[int]emissions.Result{1: results["scope1"], 2: results["scope2"], 3: results["scope3"]} {
		err := s.store.UpsertEmissionTotal(ctx, store.EmissionTotalRow{
			CompanyID:   id,
			Year:        year,
			Month:       int(month),
			Scope:       scope,
			TotalKgCO2e: res.TotalKgCO2e,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, computeResponse{Year: year, Month: int(month), Results: results})
}

func parsePeriod(r *http.Request) (int, time.Month, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year: %w", err)
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month")
	}
	return year, time.Month(month), nil
}

func (s *Server) handleFinanced(w http.ResponseWriter, r *http.Request) {
	var input emissions.FinancedInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	result, err := s.financed.Calculate(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	id, err := companyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid company id: %w", err))
		return
	}

	periods := defaultForecastPeriods
	if p := r.URL.Query().Get("periods"); p != "" {
		periods, err = strconv.Atoi(p)
		if err != nil || periods < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid periods"))
			return
		}
	}

	history, err := s.store.MonthlyEmissionTotals(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	points := forecast.Project(history, periods)
	writeJSON(w, http.StatusOK, map[string]any{
		"points":     points,
		"forecasted": len(history) >= forecast.MinHistoryPoints,
	})
}

func (s *Server) handleGetScores(w http.ResponseWriter, r *http.Request) {
	id, err := companyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid company id: %w", err))
		return
	}

	snapshot, err := s.store.LoadScoreSnapshot(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if snapshot == nil {
		// No data is a legitimate state, not an error.
		writeJSON(w, http.StatusOK, scoring.Scores{
			PerFramework: map[disclosure.FrameworkID]scoring.FrameworkScore{},
		})
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleGetFramework(w http.ResponseWriter, r *http.Request) {
	id, err := companyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid company id: %w", err))
		return
	}
	fw, err := disclosure.ParseFrameworkID(chi.URLParam(r, "frameworkID"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	inst, err := s.store.LoadFrameworkInstance(r.Context(), id, fw)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if inst == nil {
		inst = disclosure.NewInstance(fw, id)
	}
	writeJSON(w, http.StatusOK, inst)
}

type setFieldRequest struct {
	Value any `json:"value"`
}

func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	id, err := companyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid company id: %w", err))
		return
	}
	fw, err := disclosure.ParseFrameworkID(chi.URLParam(r, "frameworkID"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	var req setFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	scores, err := s.scoring.SetField(r.Context(), id, fw, chi.URLParam(r, "fieldID"), req.Value)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

func (s *Server) handleListFactors(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	var out []factors.Factor
	if category != "" {
		out = s.table.Category(category)
	} else {
		for _, c := range []string{
			factors.CategoryScope1, factors.CategoryScope2, factors.CategoryScope3,
			factors.CategoryFinancedBuilding, factors.CategoryFinancedSector,
		} {
			out = append(out, s.table.Category(c)...)
		}
	}
	writeJSON(w, http.StatusOK, out)
}
