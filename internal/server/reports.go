package server

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ostolop/rent-vs-buy/internal/projection"
	"go.uber.org/zap"
)

// storedReport is a saved analysis. Reports live in memory for the lifetime
// of the process; restarting the server discards them.
type storedReport struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Scenario  analyzeRequest  `json:"scenario"`
	Result    analyzeResponse `json:"result"`
}

type reportStore struct {
	mu      sync.RWMutex
	nextID  int
	reports map[int]storedReport
}

func newReportStore() *reportStore {
	return &reportStore{nextID: 1, reports: make(map[int]storedReport)}
}

func (s *reportStore) create(name string, scenario analyzeRequest, result analyzeResponse) storedReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	report := storedReport{
		ID:        s.nextID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Scenario:  scenario,
		Result:    result,
	}
	s.reports[report.ID] = report
	s.nextID++
	return report
}

func (s *reportStore) list() []storedReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]storedReport, 0, len(s.reports))
	for _, report := range s.reports {
		reports = append(reports, report)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].ID < reports[j].ID })
	return reports
}

func (s *reportStore) get(id int) (storedReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.reports[id]
	return report, ok
}

func (s *reportStore) update(id int, name string, scenario analyzeRequest, result analyzeResponse) (storedReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[id]
	if !ok {
		return storedReport{}, false
	}
	report.Name = name
	report.Scenario = scenario
	report.Result = result
	report.UpdatedAt = time.Now().UTC()
	s.reports[id] = report
	return report, true
}

func (s *reportStore) delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[id]; !ok {
		return false
	}
	delete(s.reports, id)
	return true
}

// reportRequest is the payload for creating or updating a saved report.
type reportRequest struct {
	Name     string         `json:"name"`
	Scenario analyzeRequest `json:"scenario"`
}

func (h *handler) handleReports(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.writeJSON(w, http.StatusOK, map[string]interface{}{
			"reports": h.reports.list(),
		})
	case http.MethodPost:
		h.createReport(w, r)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) createReport(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req reportRequest
	if !h.decodeJSONBody(w, r, &req, "server.createReport") {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		h.respondErrorWithOp(w, http.StatusBadRequest, "report name is required", "server.createReport")
		return
	}

	result, ok := h.computeReport(w, &req.Scenario, "server.createReport")
	if !ok {
		return
	}

	report := h.reports.create(name, req.Scenario, result)

	if h.logger != nil {
		h.logger.Info("report saved",
			zap.String("op", "server.createReport"),
			zap.Int("id", report.ID),
			zap.String("name", report.Name),
		)
	}

	h.writeJSON(w, http.StatusCreated, report)
}

// computeReport runs the projection for a report payload so saved reports
// always carry a result consistent with their scenario.
func (h *handler) computeReport(w http.ResponseWriter, req *analyzeRequest, op string) (analyzeResponse, bool) {
	start := time.Now()

	buy, rent, common, policy, err := req.toProjectionInputs()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return analyzeResponse{}, false
	}

	result, err := projection.Run(h.logger, buy, rent, common, policy)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return analyzeResponse{}, false
	}

	return buildAnalyzeResponse(result, req.warnings(), time.Since(start)), true
}

func (h *handler) handleReportByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/reports/"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusNotFound, "report not found", "server.handleReportByID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		report, ok := h.reports.get(id)
		if !ok {
			h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("report %d not found", id), "server.handleReportByID")
			return
		}
		h.writeJSON(w, http.StatusOK, report)
	case http.MethodPut:
		h.updateReport(w, r, id)
	case http.MethodDelete:
		if !h.reports.delete(id) {
			h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("report %d not found", id), "server.handleReportByID")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) updateReport(w http.ResponseWriter, r *http.Request, id int) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req reportRequest
	if !h.decodeJSONBody(w, r, &req, "server.updateReport") {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		h.respondErrorWithOp(w, http.StatusBadRequest, "report name is required", "server.updateReport")
		return
	}

	result, ok := h.computeReport(w, &req.Scenario, "server.updateReport")
	if !ok {
		return
	}

	report, found := h.reports.update(id, name, req.Scenario, result)
	if !found {
		h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("report %d not found", id), "server.updateReport")
		return
	}

	h.writeJSON(w, http.StatusOK, report)
}
