package triage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/linnemanlabs/triagedesk/internal/triage")

// Notifier delivers triage outcomes to an external channel.
type Notifier interface {
	Send(ctx context.Context, o *Outcome) error
}

// Hooks receives instrumentation events from the Service. Nil fields are skipped.
type Hooks struct {
	OnClassified func(r *Result, textBytes int, duration float64)
	OnRejected   func(reason string)
	OnNotify     func(err error)
}

// Service is the business boundary for triage operations.
type Service struct {
	logger   log.Logger
	hooks    Hooks
	notifier Notifier
	notifyAt Urgency
	wg       sync.WaitGroup
}

// NewService creates a new triage service. Outcomes at or above notifyAt are
// sent to notifier in the background; a nil notifier disables notification.
func NewService(logger log.Logger, hooks Hooks, notifier Notifier, notifyAt Urgency) *Service {
	if logger == nil {
		logger = log.Nop()
	}
	if !notifyAt.Valid() {
		notifyAt = UrgencyHigh
	}
	return &Service{
		logger:   logger,
		hooks:    hooks,
		notifier: notifier,
		notifyAt: notifyAt,
	}
}

// Triage classifies ticket text and assigns the call an ID.
func (s *Service) Triage(ctx context.Context, text string) (*Outcome, error) {
	id := ulid.Make().String()

	ctx, span := tracer.Start(ctx, "triage.classify", trace.WithAttributes(
		attribute.String("triagedesk.triage.id", id),
		attribute.Int("triagedesk.ticket.length", len(text)),
	))
	defer span.End()

	start := time.Now()
	res, err := Classify(text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if s.hooks.OnRejected != nil {
			s.hooks.OnRejected(rejectReason(err))
		}
		return nil, err
	}
	dur := time.Since(start).Seconds()

	span.SetAttributes(
		attribute.String("triagedesk.triage.category", string(res.Category)),
		attribute.String("triagedesk.triage.urgency", string(res.Urgency)),
	)
	if s.hooks.OnClassified != nil {
		s.hooks.OnClassified(res, len(text), dur)
	}

	s.logger.Info(ctx, "ticket triaged",
		"triage_id", id,
		"category", res.Category,
		"urgency", res.Urgency,
		"text_bytes", len(text),
	)

	out := &Outcome{ID: id, Result: *res}

	if s.notifier != nil && res.Urgency.AtLeast(s.notifyAt) {
		s.wg.Add(1)
		// pass a copy so the caller owns the returned Outcome
		go s.notify(context.WithoutCancel(ctx), *out)
	}

	return out, nil
}

// Wait blocks until in-flight notifications have finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) notify(ctx context.Context, o Outcome) {
	defer s.wg.Done()

	err := s.notifier.Send(ctx, &o)
	if s.hooks.OnNotify != nil {
		s.hooks.OnNotify(err)
	}
	if err != nil {
		s.logger.Error(ctx, err, "failed to send triage notification", "triage_id", o.ID)
	}
}

func rejectReason(err error) string {
	if errors.Is(err, ErrEmptyText) {
		return "empty_text"
	}
	return "invalid"
}
