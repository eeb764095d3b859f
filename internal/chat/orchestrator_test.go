package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator returns a fixed reply or error and records the prompts it
// was asked to complete
type stubGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, time.Duration, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", time.Millisecond, g.err
	}
	return g.reply, time.Millisecond, nil
}

func newTestOrchestrator(gen Generator) (*Orchestrator, *SessionStore) {
	store := NewSessionStore(testSystemPrompt, 20)
	return NewOrchestrator(store, gen, 2000), store
}

func TestHandleMessageRoundTrip(t *testing.T) {
	gen := &stubGenerator{reply: "Hi there"}
	orch, store := newTestOrchestrator(gen)

	result, err := orch.HandleMessage(context.Background(), "", "Hello")

	require.NoError(t, err)
	require.NotEmpty(t, result.SessionID)
	assert.Equal(t, "Hi there", result.Response)
	assert.Empty(t, result.Err)

	turns := store.Read(result.SessionID)
	require.Len(t, turns, 3)
	assert.Equal(t, Turn{Role: RoleSystem, Content: testSystemPrompt}, turns[0])
	assert.Equal(t, Turn{Role: RoleUser, Content: "Hello"}, turns[1])
	assert.Equal(t, Turn{Role: RoleAssistant, Content: "Hi there"}, turns[2])
}

// The prompt is re-derived from the post-append snapshot, so the pending
// user message appears both as the stored turn and as the assembler's
// pending line, exactly as the serialization defines
func TestHandleMessagePromptFromPostAppendSnapshot(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	orch, _ := newTestOrchestrator(gen)

	_, err := orch.HandleMessage(context.Background(), "", "Hello")
	require.NoError(t, err)

	require.Len(t, gen.prompts, 1)
	expected := "System: " + testSystemPrompt + "\n" +
		"User: Hello\n" +
		"User: Hello\n" +
		"Assistant:"
	assert.Equal(t, expected, gen.prompts[0])
}

func TestHandleMessageTrimsInput(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	orch, store := newTestOrchestrator(gen)

	result, err := orch.HandleMessage(context.Background(), "", "  Hello  \n")

	require.NoError(t, err)
	assert.Equal(t, Turn{Role: RoleUser, Content: "Hello"}, store.Read(result.SessionID)[1])
}

func TestHandleMessageEmptyAfterTrim(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	orch, store := newTestOrchestrator(gen)
	sid := store.Create()

	_, err := orch.HandleMessage(context.Background(), sid, "   ")

	require.ErrorIs(t, err, ErrEmptyMessage)
	assert.Len(t, store.Read(sid), 1, "rejected message must not mutate the session")
	assert.Empty(t, gen.prompts, "rejected message must not reach the generator")
}

func TestHandleMessageReusesSuppliedSession(t *testing.T) {
	gen := &stubGenerator{reply: "second"}
	orch, store := newTestOrchestrator(gen)
	sid := store.Create()
	store.Append(sid, RoleUser, "first question")
	store.Append(sid, RoleAssistant, "first answer")

	result, err := orch.HandleMessage(context.Background(), sid, "second question")

	require.NoError(t, err)
	assert.Equal(t, sid, result.SessionID)
	turns := store.Read(sid)
	require.Len(t, turns, 5)
	assert.Equal(t, Turn{Role: RoleAssistant, Content: "second"}, turns[4])
}

func TestHandleMessageUnknownSessionLazilyInitialized(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	orch, store := newTestOrchestrator(gen)

	result, err := orch.HandleMessage(context.Background(), "client-id", "hello")

	require.NoError(t, err)
	assert.Equal(t, "client-id", result.SessionID)
	turns := store.Read("client-id")
	require.Len(t, turns, 3)
	assert.Equal(t, RoleSystem, turns[0].Role)
}

func TestHandleMessageProviderFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("401 Unauthorized: invalid x-api-key")}
	orch, store := newTestOrchestrator(gen)

	result, err := orch.HandleMessage(context.Background(), "", "Hello")

	require.NoError(t, err, "provider failures are not errors to the caller")
	assert.Equal(t, "Authentication error with AI service. Check API key.", result.Response)
	assert.Equal(t, "401 Unauthorized: invalid x-api-key", result.Err)
	require.NotEmpty(t, result.SessionID)

	// A failed turn leaves no trace in context
	turns := store.Read(result.SessionID)
	require.Len(t, turns, 2)
	assert.Equal(t, RoleUser, turns[1].Role)
}

func TestHandleMessageFailureKeepsSessionUsable(t *testing.T) {
	gen := &stubGenerator{err: errors.New("temporary glitch")}
	orch, _ := newTestOrchestrator(gen)

	first, err := orch.HandleMessage(context.Background(), "", "Hello")
	require.NoError(t, err)

	gen.err = nil
	gen.reply = "recovered"
	second, err := orch.HandleMessage(context.Background(), first.SessionID, "Still there?")

	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, "recovered", second.Response)
}

func TestResetSession(t *testing.T) {
	orch, store := newTestOrchestrator(&stubGenerator{reply: "ok"})
	sid := store.Create()
	store.Append(sid, RoleUser, "hello")

	require.NoError(t, orch.ResetSession(sid))
	assert.Len(t, store.Read(sid), 1)
}

func TestResetSessionMissingID(t *testing.T) {
	orch, _ := newTestOrchestrator(&stubGenerator{reply: "ok"})

	assert.ErrorIs(t, orch.ResetSession(""), ErrMissingSessionID)
	assert.ErrorIs(t, orch.ResetSession("   "), ErrMissingSessionID)
}

func TestResetSessionUnknownIDCreates(t *testing.T) {
	orch, store := newTestOrchestrator(&stubGenerator{reply: "ok"})

	require.NoError(t, orch.ResetSession("new-id"))
	assert.Len(t, store.Read("new-id"), 1)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, estimateTokens("abc"))
	assert.Equal(t, 25, estimateTokens(string(make([]byte, 100))))
}
