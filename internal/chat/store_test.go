package chat

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/songyh0828/groqify-chatbot/internal/catalog"
	"github.com/songyh0828/groqify-chatbot/internal/groq"
)

type fakeCompleter struct {
	reply   string
	err     error
	calls   int
	lastReq groq.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req groq.Request) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestStore(t *testing.T, completer groq.Completer) *Store {
	t.Helper()
	return New(Config{
		Completer: completer,
		Now:       func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) },
		Rand:      rand.New(rand.NewSource(1)),
	})
}

func TestNewStoreInitialState(t *testing.T) {
	s := newTestStore(t, &fakeCompleter{})

	if s.ActiveName() != "Chat 1" {
		t.Fatalf("expected active session Chat 1, got %q", s.ActiveName())
	}
	sess := s.ActiveSession()
	if len(sess.Messages) != 0 {
		t.Fatalf("expected empty transcript, got %d messages", len(sess.Messages))
	}
	if !sess.PromptsVisible {
		t.Fatalf("expected prompt panel visible for a new session")
	}
	if len(sess.Categories) != 3 {
		t.Fatalf("expected 3 sampled categories, got %d", len(sess.Categories))
	}
	seen := map[string]bool{}
	for _, key := range sess.Categories {
		if seen[key] {
			t.Fatalf("duplicate category %q in sample", key)
		}
		seen[key] = true
		if _, ok := catalog.CategoryByKey(key); !ok {
			t.Fatalf("sampled category %q not in catalog", key)
		}
	}
	if s.SelectedModel().ID != catalog.DefaultModelID {
		t.Fatalf("expected default model, got %q", s.SelectedModel().ID)
	}
}

func TestCategorySampleDeterministicWithSeed(t *testing.T) {
	a := New(Config{Completer: &fakeCompleter{}, Rand: rand.New(rand.NewSource(7))})
	b := New(Config{Completer: &fakeCompleter{}, Rand: rand.New(rand.NewSource(7))})

	ca, cb := a.ActiveSession().Categories, b.ActiveSession().Categories
	for i := range ca {
		if ca[i] != cb[i] {
			t.Fatalf("same seed produced different samples: %v vs %v", ca, cb)
		}
	}
}

func TestSendMessageAppendsUserAndReply(t *testing.T) {
	fake := &fakeCompleter{reply: "Hello"}
	s := newTestStore(t, fake)

	user, reply, err := s.SendMessage(context.Background(), "Hi")
	if err != nil {
		t.Fatalf("send message: %v", err)
	}
	if user.Role != groq.RoleUser || user.Content != "Hi" {
		t.Fatalf("unexpected user message %+v", user)
	}
	if reply.Role != groq.RoleAssistant || reply.Content != "Hello" {
		t.Fatalf("unexpected reply %+v", reply)
	}

	msgs := s.ActiveSession().Messages
	if len(msgs) != 2 {
		t.Fatalf("expected transcript length 2, got %d", len(msgs))
	}
	if fake.lastReq.Model != catalog.DefaultModelID {
		t.Fatalf("expected request model %q, got %q", catalog.DefaultModelID, fake.lastReq.Model)
	}
	if fake.lastReq.MaxTokens != 3000 {
		t.Fatalf("expected max tokens 3000 for default model, got %d", fake.lastReq.MaxTokens)
	}
	if fake.lastReq.Temperature != 0.5 || fake.lastReq.TopP != 0.8 {
		t.Fatalf("unexpected generation params: %+v", fake.lastReq)
	}
	if len(fake.lastReq.Messages) != 1 || fake.lastReq.Messages[0].Content != "Hi" {
		t.Fatalf("expected full transcript in request, got %+v", fake.lastReq.Messages)
	}
}

func TestSendMessageFailureKeepsUserMessageOnly(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("rate limited")}
	s := newTestStore(t, fake)

	if _, _, err := s.SendMessage(context.Background(), "Hi"); err == nil {
		t.Fatalf("expected send failure")
	}
	msgs := s.ActiveSession().Messages
	if len(msgs) != 1 {
		t.Fatalf("expected transcript length 1 after failure, got %d", len(msgs))
	}
	if msgs[0].Role != groq.RoleUser {
		t.Fatalf("expected the surviving message to be the user's, got %q", msgs[0].Role)
	}
}

func TestPromptVisibilityMonotone(t *testing.T) {
	fake := &fakeCompleter{reply: "ok"}
	s := newTestStore(t, fake)

	if _, _, err := s.SendMessage(context.Background(), "Hi"); err != nil {
		t.Fatalf("send message: %v", err)
	}
	if s.ActiveSession().PromptsVisible {
		t.Fatalf("expected prompt panel hidden after send")
	}

	s.NewSession()
	if err := s.SwitchActive("Chat 1"); err != nil {
		t.Fatalf("switch back: %v", err)
	}
	if err := s.AppendMessage("Chat 1", groq.RoleUser, "note"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if s.ActiveSession().PromptsVisible {
		t.Fatalf("prompt panel reappeared after further operations")
	}
}

func TestSwitchActiveNotFound(t *testing.T) {
	s := newTestStore(t, &fakeCompleter{})

	err := s.SwitchActive("Chat 99")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if s.ActiveName() != "Chat 1" {
		t.Fatalf("active session changed on failed switch")
	}
}

func TestSetModel(t *testing.T) {
	fake := &fakeCompleter{reply: "ok"}
	s := newTestStore(t, fake)

	if err := s.SetModel("llama3-70b-8192"); err != nil {
		t.Fatalf("set model: %v", err)
	}
	if _, _, err := s.SendMessage(context.Background(), "Hi"); err != nil {
		t.Fatalf("send message: %v", err)
	}
	if fake.lastReq.MaxTokens != 8192 {
		t.Fatalf("expected max tokens 8192 after model switch, got %d", fake.lastReq.MaxTokens)
	}
}

func TestSetModelInvalidLeavesSelectionUnchanged(t *testing.T) {
	s := newTestStore(t, &fakeCompleter{})

	err := s.SetModel("gpt-17")
	if !errors.Is(err, ErrInvalidModel) {
		t.Fatalf("expected ErrInvalidModel, got %v", err)
	}
	if s.SelectedModel().ID != catalog.DefaultModelID {
		t.Fatalf("selected model changed on failed set: %q", s.SelectedModel().ID)
	}
}

func TestSendPromptStripsOrdinalMarker(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2) What is recursion?", "What is recursion?"},
		{"What is recursion?", "What is recursion?"},
		{"  10. How do loops work?", "How do loops work?"},
		{"1)No space after marker", "No space after marker"},
	}
	for _, tc := range cases {
		fake := &fakeCompleter{reply: "ok"}
		s := newTestStore(t, fake)
		user, _, err := s.SendPrompt(context.Background(), tc.in)
		if err != nil {
			t.Fatalf("send prompt %q: %v", tc.in, err)
		}
		if user.Content != tc.want {
			t.Fatalf("prompt %q: expected stored content %q, got %q", tc.in, tc.want, user.Content)
		}
		if fake.lastReq.Temperature != 0.4 {
			t.Fatalf("expected prompt-click temperature 0.4, got %v", fake.lastReq.Temperature)
		}
	}
}

func TestNewSessionNaming(t *testing.T) {
	s := newTestStore(t, &fakeCompleter{})

	if name := s.NewSession(); name != "Chat 2" {
		t.Fatalf("expected Chat 2, got %q", name)
	}
	if s.ActiveName() != "Chat 2" {
		t.Fatalf("new session should become active")
	}

	if err := s.CreateSession("Chat 4"); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := s.CreateSession("Chat 4"); !errors.Is(err, ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists, got %v", err)
	}

	// count+1 would be "Chat 4", which the manual session took.
	if name := s.NewSession(); name != "Chat 5" {
		t.Fatalf("expected Chat 5 after collision bump, got %q", name)
	}

	summaries := s.Sessions()
	if len(summaries) != 4 {
		t.Fatalf("expected 4 sessions, got %d", len(summaries))
	}
	if !summaries[3].Active {
		t.Fatalf("expected newest session marked active in summaries")
	}
}

func TestAppendMessage(t *testing.T) {
	s := newTestStore(t, &fakeCompleter{})

	if err := s.AppendMessage("Chat 1", groq.RoleUser, "x"); err != nil {
		t.Fatalf("append: %v", err)
	}
	msgs, err := s.Messages("Chat 1")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "x" || msgs[0].Timestamp.IsZero() {
		t.Fatalf("unexpected transcript %+v", msgs)
	}

	if err := s.AppendMessage("nope", groq.RoleUser, "x"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := s.Messages("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
