package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/alexanderramin/rectplan/internal/importer"
	"github.com/alexanderramin/rectplan/internal/planner"
	"github.com/alexanderramin/rectplan/internal/repository"
	"github.com/alexanderramin/rectplan/internal/service"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

type profileView struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Notes     string                `json:"notes,omitempty"`
	IsActive  bool                  `json:"is_active"`
	AppliedAt *time.Time            `json:"applied_at,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
	Config    *domain.ProcessConfig `json:"config,omitempty"`
}

func newProfileView(p *domain.Profile, withConfig bool) profileView {
	v := profileView{
		ID:        p.ID,
		Name:      p.Name,
		Notes:     p.Notes,
		IsActive:  p.IsActive,
		AppliedAt: p.AppliedAt,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if withConfig {
		cfg := p.Config
		v.Config = &cfg
	}
	return v
}

type createRequest struct {
	Name   string          `json:"name"`
	Notes  string          `json:"notes"`
	Config json.RawMessage `json:"config"`
}

type metaRequest struct {
	Name string `json:"name"`
}

type setActiveRequest struct {
	ID string `json:"id"`
}

type calculateRequest struct {
	Config json.RawMessage `json:"config"`
}

type applyResponse struct {
	Profile profileView         `json:"profile"`
	RunID   string              `json:"run_id"`
	Plan    planner.ProcessPlan `json:"plan"`
}

type runView struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	TotalDurationSec float64   `json:"total_duration_sec"`
	HeartsMl         float64   `json:"hearts_ml"`
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) calculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	cfg, err := mergeConfig(domain.DefaultConfig(), req.Config)
	if err != nil {
		writeError(w, err)
		return
	}
	plan, err := s.plans.Calculate(r.Context(), cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) listProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.profiles.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]profileView, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, newProfileView(p, false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createProfile(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	cfg, err := mergeConfig(domain.DefaultConfig(), req.Config)
	if err != nil {
		writeError(w, err)
		return
	}
	p := &domain.Profile{Name: req.Name, Notes: req.Notes, Config: cfg}
	if err := s.profiles.Create(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newProfileView(p, true))
}

func (s *Server) activeProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Active(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newProfileView(p, true))
}

func (s *Server) setActive(w http.ResponseWriter, r *http.Request) {
	var req setActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.profiles.Activate(r.Context(), req.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) importProfile(w http.ResponseWriter, r *http.Request) {
	format := importer.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := importer.ParseFormat(q)
		if err != nil {
			writeError(w, badRequest(err))
			return
		}
		format = f
	}
	f, err := importer.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes), format)
	if err != nil {
		writeError(w, badRequest(err))
		return
	}
	p, err := s.profiles.Import(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newProfileView(p, true))
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newProfileView(p, true))
}

func (s *Server) deleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.profiles.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateContent(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := decodeJSON(r, &raw); err != nil {
		writeError(w, err)
		return
	}
	id := mux.Vars(r)["id"]
	current, err := s.profiles.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	cfg, err := mergeConfig(current.Config, raw)
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := s.profiles.UpdateConfig(r.Context(), id, cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newProfileView(p, true))
}

func (s *Server) updateMeta(w http.ResponseWriter, r *http.Request) {
	var req metaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := s.profiles.Rename(r.Context(), mux.Vars(r)["id"], req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newProfileView(p, false))
}

func (s *Server) copyProfile(w http.ResponseWriter, r *http.Request) {
	var req metaRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}
	p, err := s.profiles.Copy(r.Context(), mux.Vars(r)["id"], req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newProfileView(p, false))
}

func (s *Server) exportProfile(w http.ResponseWriter, r *http.Request) {
	format := importer.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := importer.ParseFormat(q)
		if err != nil {
			writeError(w, badRequest(err))
			return
		}
		format = f
	}
	f, err := s.profiles.Export(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := importer.Encode(&buf, f, format); err != nil {
		writeError(w, err)
		return
	}
	contentType := "application/json"
	if format == importer.FormatTOML {
		contentType = "application/toml"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name+"."+string(format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) planProfile(w http.ResponseWriter, r *http.Request) {
	_, plan, err := s.plans.PlanProfile(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) applyProfile(w http.ResponseWriter, r *http.Request) {
	res, err := s.plans.Apply(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, applyResponse{
		Profile: newProfileView(res.Profile, true),
		RunID:   res.Run.ID,
		Plan:    res.Plan,
	})
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			writeError(w, badRequest(fmt.Errorf("limit: %w", err)))
			return
		}
		limit = n
	}
	runs, err := s.plans.History(r.Context(), mux.Vars(r)["id"], limit)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]runView, 0, len(runs))
	for _, run := range runs {
		out = append(out, runView{
			ID:               run.ID,
			CreatedAt:        run.CreatedAt,
			TotalDurationSec: run.TotalDurationSec,
			HeartsMl:         run.HeartsMl,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// mergeConfig decodes a partial config over base; fields missing from raw
// keep base's values.
func mergeConfig(base domain.ProcessConfig, raw json.RawMessage) (domain.ProcessConfig, error) {
	cfg := base
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return cfg, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, badRequest(fmt.Errorf("config: %w", err))
	}
	return cfg, nil
}

// errBadRequest marks malformed request bodies and parameters.
var errBadRequest = errors.New("bad request")

func badRequest(err error) error {
	return fmt.Errorf("%w: %w", errBadRequest, err)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest(err)
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, service.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrConflict), errors.Is(err, service.ErrAmbiguousRef):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
