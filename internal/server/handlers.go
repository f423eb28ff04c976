package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kochwerk/kochwerk/pkg/archive"
	"github.com/kochwerk/kochwerk/pkg/buildinfo"
	"github.com/kochwerk/kochwerk/pkg/cache"
	"github.com/kochwerk/kochwerk/pkg/errors"
	"github.com/kochwerk/kochwerk/pkg/figure"
	"github.com/kochwerk/kochwerk/pkg/measure"
	"github.com/kochwerk/kochwerk/pkg/pipeline"
)

// contentTypes maps output formats to their MIME types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleFigure returns the generated figure as JSON.
func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	opts, err := s.parseOptions(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	f, hit, err := s.runner.GenerateWithCacheInfo(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := figure.Marshal(f)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Figure-Hash", cache.Hash(data))
	setCacheHeader(w, hit)
	_, _ = w.Write(data)
}

// handleRender runs the full pipeline and returns a single artifact.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.parseOptions(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Run-Id", result.RunID)
	setCacheHeader(w, result.CacheInfo.RenderHit)
	_, _ = w.Write(result.Artifacts[format])
}

// measureResponse is the payload of /api/measure.
type measureResponse struct {
	MaxLevel             int               `json:"max_level"`
	TheoreticalDimension float64           `json:"theoretical_dimension"`
	Series               []measure.Summary `json:"series"`
}

// handleMeasure returns the perimeter and dimension series.
func (s *Server) handleMeasure(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	maxLevel := pipeline.DefaultMeasureLevel
	if raw := q.Get("max_level"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid max_level: %q", raw))
			return
		}
		maxLevel = v
	}
	if err := errors.ValidateLevel(maxLevel, pipeline.LevelCap(s.maxLevel)); err != nil {
		writeError(w, err)
		return
	}
	refresh := q.Get("refresh") == "true"

	series, hit, err := s.runner.MeasureSeriesWithCacheInfo(r.Context(), maxLevel, refresh)
	if err != nil {
		writeError(w, err)
		return
	}

	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, measureResponse{
		MaxLevel:             maxLevel,
		TheoreticalDimension: measure.TheoreticalDimension(),
		Series:               series,
	})
}

// archiveCreateRequest is the body of POST /api/archive.
type archiveCreateRequest struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Map   string `json:"map"`
}

func (s *Server) handleArchiveCreate(w http.ResponseWriter, r *http.Request) {
	var req archiveCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err))
		return
	}

	f, err := s.runner.Generate(r.Context(), pipeline.Options{
		Level:    req.Level,
		Map:      req.Map,
		MaxLevel: s.maxLevel,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	entry := archive.NewEntry(req.Name, f)
	if err := s.store.Put(r.Context(), entry); err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info("archived figure", "id", entry.ID, "level", f.Level, "map", f.Map)
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleArchiveList(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %q", raw))
			return
		}
		limit = v
	}

	entries, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []archive.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleArchiveGet(w http.ResponseWriter, r *http.Request) {
	entry, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleArchiveDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Parameter Parsing
// =============================================================================

// parseOptions builds pipeline options from query parameters. Parameter
// names match the JSON tags on [pipeline.Options]. The configured level
// cap is stamped on here; clients cannot raise it.
func (s *Server) parseOptions(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{MaxLevel: s.maxLevel}
	var err error

	if opts.Level, err = intParam(q, "level", pipeline.DefaultLevel); err != nil {
		return opts, err
	}
	opts.Map = q.Get("map")
	opts.VizType = q.Get("viz_type")
	opts.Style = q.Get("style")
	opts.Title = q.Get("title")

	if opts.Width, err = floatParam(q, "width", 0); err != nil {
		return opts, err
	}
	if opts.Height, err = floatParam(q, "height", 0); err != nil {
		return opts, err
	}
	if opts.Margin, err = floatParam(q, "margin", 0); err != nil {
		return opts, err
	}
	if opts.Scale, err = floatParam(q, "scale", 0); err != nil {
		return opts, err
	}

	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid seed: %q", raw)
		}
		opts.Seed = seed
	}

	opts.Vertices = q.Get("vertices") == "true"
	opts.Labels = q.Get("labels") == "true"
	opts.Caption = q.Get("caption") == "true"
	opts.Refresh = q.Get("refresh") == "true"

	return opts, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, raw)
	}
	return v, nil
}

func floatParam(q url.Values, name string, def float64) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, raw)
	}
	return v, nil
}

// =============================================================================
// Responses
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the body of every error reply.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusForCode(code), errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(code),
	})
}

// statusForCode maps error codes to HTTP statuses.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidLevel, errors.ErrCodeInvalidParam,
		errors.ErrCodeInvalidMap, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidVizType, errors.ErrCodeInvalidFigure, errors.ErrCodeInvalidPath,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeEntryNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeStore:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
}
