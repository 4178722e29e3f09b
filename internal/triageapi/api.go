// Package triageapi exposes the ticket classifier over HTTP.
package triageapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"
	"github.com/linnemanlabs/triagedesk/internal/triage"
)

var errTrailingData = errors.New("unexpected data after JSON body")

// TriageIDHeader carries the ID assigned to each successful triage call.
const TriageIDHeader = "X-Triage-Id"

// TriageService defines the business operations triageapi needs.
type TriageService interface {
	Triage(ctx context.Context, text string) (*triage.Outcome, error)
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger log.Logger
	svc    TriageService
}

// New creates a new API handler.
func New(logger log.Logger, svc TriageService) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("triage service is required"))
	}
	return &API{
		logger: logger,
		svc:    svc,
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/triage", a.handleTriage)
	})
}

func (a *API) handleTriage(w http.ResponseWriter, r *http.Request) {
	var req triage.Request
	if err := decodeJSON(r, &req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, `{"error":"payload too large"}`)
			return
		}
		writeError(w, http.StatusBadRequest, `{"error":"invalid payload"}`)
		return
	}

	span := trace.SpanFromContext(r.Context())

	out, err := a.svc.Triage(r.Context(), req.Text)
	if err != nil {
		var ve *triage.ValidationError
		if errors.As(err, &ve) {
			body, _ := json.Marshal(map[string]string{
				"error":  "validation_error",
				"detail": ve.Err.Error(),
			})
			writeError(w, http.StatusUnprocessableEntity, string(body))
			return
		}
		a.logger.Error(r.Context(), err, "triage failed")
		writeError(w, http.StatusInternalServerError, `{"error":"internal error"}`)
		return
	}

	span.SetAttributes(
		attribute.String("triagedesk.triage.id", out.ID),
		attribute.String("triagedesk.triage.category", string(out.Result.Category)),
	)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(TriageIDHeader, out.ID)
	_ = json.NewEncoder(w).Encode(out.Result)
}

// decodeJSON decodes exactly one JSON value from the request body.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errTrailingData
		}
		return err
	}
	return nil
}

// writeError sends a JSON error body. http.Error would label it text/plain.
func writeError(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body + "\n"))
}
