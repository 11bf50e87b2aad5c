package server

import (
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/stitchrow/pkg/buildinfo"
	errs "github.com/matzehuels/stitchrow/pkg/errors"
	"github.com/matzehuels/stitchrow/pkg/httputil"
	"github.com/matzehuels/stitchrow/pkg/observability"
	"github.com/matzehuels/stitchrow/pkg/pattern"
	"github.com/matzehuels/stitchrow/pkg/pipeline"
	"github.com/matzehuels/stitchrow/pkg/render"
)

// contentTypes maps render formats to response content types.
var contentTypes = map[string]string{
	render.FormatText:     "text/plain; charset=utf-8",
	render.FormatJSON:     "application/json",
	render.FormatMarkdown: "text/markdown; charset=utf-8",
	render.FormatTable:    "text/plain; charset=utf-8",
}

// RowResponse is the body of POST /v1/encode/{row}.
type RowResponse struct {
	render.Row
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CheckResponse is the body of POST /v1/check/{row}. Instruction is the
// chart's own instruction for the row.
type CheckResponse struct {
	Row         int    `json:"row"`
	Match       bool   `json:"match"`
	Instruction string `json:"instruction"`
	Stitch      int    `json:"stitch,omitempty"`
	Message     string `json:"message,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	format := opts.Format
	if format == "" {
		format = pipeline.DefaultFormat
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Chart-Hash", result.ChartHash)
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.LoadHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifact)
}

func (s *Server) handleEncodeRow(w http.ResponseWriter, r *http.Request) {
	row, err := rowParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	enc, hit, err := s.loadEncoder(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	doc, err := render.NewDocument(enc, []int{row})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("X-Cache", cacheStatus(hit))
	_ = httputil.WriteJSON(w, http.StatusOK, RowResponse{
		Row:    doc.Rows[0],
		Width:  doc.Width,
		Height: doc.Height,
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	row, err := rowParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	instruction := r.URL.Query().Get("instruction")
	if instruction == "" {
		s.fail(w, r, errs.New(errs.ErrCodeInvalidInput, "instruction query parameter is required"))
		return
	}
	enc, hit, err := s.loadEncoder(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	mismatch, err := enc.Check(row, instruction)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	want, err := enc.EncodeRow(row)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := CheckResponse{Row: row, Match: mismatch == nil, Instruction: want}
	if mismatch != nil {
		resp.Stitch = mismatch.Stitch
		resp.Message = mismatch.String()
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	_ = httputil.WriteJSON(w, http.StatusOK, resp)
}

func rowParam(r *http.Request) (int, error) {
	v := chi.URLParam(r, "row")
	row, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid row number %q", v)
	}
	return row, nil
}

// loadEncoder loads the request's chart through the runner's cache.
func (s *Server) loadEncoder(r *http.Request) (*pattern.Encoder, bool, error) {
	opts, err := s.requestOptions(r)
	if err != nil {
		return nil, false, err
	}
	chart, hit, err := s.runner.LoadWithCacheInfo(r.Context(), opts)
	if err != nil {
		return nil, false, err
	}
	enc, err := pattern.NewEncoderFromChart(chart)
	return enc, hit, err
}

// requestOptions reads the body and query into pipeline options layered on
// the server defaults.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.opts.Defaults
	q := r.URL.Query()

	opts.Loader = q.Get("loader")
	opts.Filename = q.Get("filename")
	if opts.Filename != "" {
		if err := errs.ValidatePath(opts.Filename); err != nil {
			return opts, err
		}
	}
	if opts.Loader == "" && opts.Filename == "" {
		return opts, errs.New(errs.ErrCodeInvalidInput, "loader or filename query parameter is required")
	}
	if v := q.Get("format"); v != "" {
		opts.Format = v
	}
	opts.Rows = q.Get("rows")
	if v := q.Get("purl"); v != "" {
		opts.Palette.Purl = v
	}
	var err error
	if opts.Palette.Tolerance, err = intParam(q, "tolerance", opts.Palette.Tolerance); err != nil {
		return opts, err
	}
	if opts.CellSize, err = intParam(q, "cell_size", opts.CellSize); err != nil {
		return opts, err
	}
	if v := q.Get("refresh"); v != "" {
		if opts.Refresh, err = strconv.ParseBool(v); err != nil {
			return opts, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid refresh %q", v)
		}
	}
	opts.Logger = s.logger

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return opts, err
	}
	if len(body) == 0 {
		return opts, errs.New(errs.ErrCodeInvalidInput, "request body is empty")
	}
	opts.Source = body
	return opts, nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := httputil.WriteError(w, r, err)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", httputil.RequestIDFromContext(r.Context()))
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "err", err)
	}
}

func intParam(q url.Values, name string, def int) (int, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid %s %q", name, v)
	}
	return n, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
