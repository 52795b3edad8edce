package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/dominochain/pkg/buildinfo"
	"github.com/matzehuels/dominochain/pkg/domino"
	errs "github.com/matzehuels/dominochain/pkg/errors"
	pkgio "github.com/matzehuels/dominochain/pkg/io"
	"github.com/matzehuels/dominochain/pkg/observability"
	"github.com/matzehuels/dominochain/pkg/pipeline"
)

// requestSource names API input in logs and result documents.
const requestSource = "request"

type errorResponse struct {
	Code      errs.Code `json:"code"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
}

type versionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, versionResponse{
		Version: buildinfo.Version,
		Commit:  buildinfo.Commit,
		Date:    buildinfo.Date,
	})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)

	tiles, skipped, err := readTiles(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	skipFilter := s.opts.SkipFilter
	if v := r.URL.Query().Get("skip_filter"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "skip_filter: %q is not a boolean", v))
			return
		}
		skipFilter = b
	}

	result, err := s.runner.Solve(ctx, pipeline.Options{
		Source:     requestSource,
		Tiles:      tiles,
		Skipped:    skipped,
		SkipFilter: skipFilter,
		MaxTiles:   s.opts.MaxTiles,
		Timeout:    s.opts.SolveTimeout,
		Logger:     s.logger.With("request_id", middleware.GetReqID(ctx)),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	doc := result.Document()
	doc.ID = uuid.NewString()
	writeJSON(w, http.StatusOK, doc)
}

// readTiles decodes the request body as JSON, or as text records when the
// content type is text/plain.
func readTiles(r *http.Request) ([]domino.Domino, int, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "text/plain" {
		tiles, skipped, err := domino.ReadTiles(r.Body)
		if err != nil {
			return nil, 0, bodyError(err)
		}
		return tiles, skipped, nil
	}

	tiles, err := pkgio.ReadTilesJSON(r.Body)
	if err != nil {
		return nil, 0, bodyError(err)
	}
	return tiles, 0, nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooLarge.Limit)
	}
	return errs.Wrap(errs.ErrCodeInvalidInput, err, "malformed request body")
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.HTTPStatus(err)
	code := errs.GetCode(err)
	msg := errs.UserMessage(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		if code == errs.ErrCodeInternal {
			msg = "internal error"
		}
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	writeJSON(w, status, errorResponse{
		Code:      code,
		Message:   msg,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// observe reports every request to the HTTP hooks and logs it at debug level.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
