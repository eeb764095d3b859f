package chat

import (
	"context"
	"errors"
	"log"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrEmptyMessage rejects a message that is empty after trimming. The
	// session is left untouched.
	ErrEmptyMessage = errors.New("empty message")

	// ErrMissingSessionID rejects a reset request without a session id.
	ErrMissingSessionID = errors.New("session_id required")
)

// Result is the normalized outcome of handling one user message. Provider
// failures are not Go errors at this level: Response carries the friendly
// message and Err the raw provider error text, and the session id remains
// usable either way.
type Result struct {
	Response  string
	SessionID string
	Err       string
}

// Orchestrator composes the session store, prompt assembly, the generator,
// and failure classification into the two operations the HTTP layer calls.
type Orchestrator struct {
	store     *SessionStore
	generator Generator
	tracer    trace.Tracer

	// maxContextTokens is an advisory guard: prompts whose estimated token
	// count exceed it are logged, not rejected. Message-count bounding in
	// the store is the only enforced limit.
	maxContextTokens int
}

func NewOrchestrator(store *SessionStore, generator Generator, maxContextTokens int) *Orchestrator {
	return &Orchestrator{
		store:            store,
		generator:        generator,
		tracer:           otel.Tracer("chatrelay/chat"),
		maxContextTokens: maxContextTokens,
	}
}

// HandleMessage runs one message through the pipeline: validate, resolve the
// session, record the user turn, assemble the prompt from the post-append
// snapshot, and make a single generate call. On success the assistant turn
// is appended; on provider failure nothing is appended and the classified
// friendly message is returned alongside the raw error text. Only input
// validation surfaces as a Go error.
func (o *Orchestrator) HandleMessage(ctx context.Context, sessionID, message string) (Result, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Result{}, ErrEmptyMessage
	}

	if sessionID == "" {
		sessionID = o.store.Create()
	}

	o.store.Append(sessionID, RoleUser, message)

	// The user turn is already stored; the prompt is re-derived from the
	// post-append snapshot rather than a separately held pending value, so
	// assembly and storage never diverge.
	prompt := AssemblePrompt(o.store.Read(sessionID), message)

	if est := estimateTokens(prompt); o.maxContextTokens > 0 && est > o.maxContextTokens {
		log.Printf("session %s: estimated prompt size %d tokens exceeds advisory guard %d", sessionID, est, o.maxContextTokens)
	}

	ctx, span := o.tracer.Start(ctx, "chat.generate", trace.WithAttributes(
		attribute.String("chat.session_id", sessionID),
	))
	reply, elapsed, err := o.generator.Generate(ctx, prompt)
	span.SetAttributes(attribute.Int64("chat.generate_ms", elapsed.Milliseconds()))
	if err != nil {
		category, friendly := Classify(err)
		span.SetAttributes(attribute.String("chat.failure_category", string(category)))
		span.RecordError(err)
		span.End()
		log.Printf("session %s: generate failed after %s (%s): %v", sessionID, elapsed, category, err)
		return Result{Response: friendly, SessionID: sessionID, Err: err.Error()}, nil
	}
	span.End()

	log.Printf("session %s: generated %d chars in %s", sessionID, len(reply), elapsed)
	o.store.Append(sessionID, RoleAssistant, reply)
	return Result{Response: reply, SessionID: sessionID}, nil
}

// ResetSession reinitializes the session to the single system turn. The id
// need not already exist.
func (o *Orchestrator) ResetSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrMissingSessionID
	}
	o.store.Reset(sessionID)
	return nil
}

// estimateTokens approximates tokens as one per four characters. Good enough
// for an advisory log line; nothing is enforced from it.
func estimateTokens(prompt string) int {
	return len(prompt) / 4
}
