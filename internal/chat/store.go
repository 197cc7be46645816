package chat

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/songyh0828/groqify-chatbot/internal/catalog"
	"github.com/songyh0828/groqify-chatbot/internal/groq"
	"github.com/songyh0828/groqify-chatbot/internal/metrics"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
	ErrInvalidModel    = errors.New("model not in catalog")
)

const (
	sendTemperature   = 0.5
	promptTemperature = 0.4
	topP              = 0.8

	categoriesPerSession = 3
	firstSessionName     = "Chat 1"
)

// ordinalMarker matches the numbered-list prefix generated prompts tend to
// carry, e.g. "2) " or " 10. ".
var ordinalMarker = regexp.MustCompile(`^\s*\d+[.)]\s*`)

type Config struct {
	Completer      groq.Completer
	DefaultModelID string
	Logger         zerolog.Logger
	Metrics        *metrics.Metrics
	Now            func() time.Time
	Rand           *rand.Rand
}

// Store owns all in-process chat state: the session map, the active session
// pointer and the selected model. Every operation runs under one mutex, so
// sends are serialized as well.
type Store struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	order     []string
	active    string
	modelID   string
	completer groq.Completer
	logger    zerolog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
	rand      *rand.Rand
}

func New(cfg Config) *Store {
	m := cfg.Metrics
	if m == nil {
		m = metrics.Global()
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	modelID := cfg.DefaultModelID
	if _, ok := catalog.ModelByID(modelID); !ok {
		modelID = catalog.DefaultModelID
	}

	s := &Store{
		sessions:  make(map[string]*Session),
		modelID:   modelID,
		completer: cfg.Completer,
		logger:    cfg.Logger,
		metrics:   m,
		now:       cfg.Now,
		rand:      cfg.Rand,
	}
	s.createLocked(firstSessionName)
	return s
}

// NewSession creates a "Chat N" session following the original naming
// convention, bumping N past any manually created collision, and makes it
// active.
func (s *Store) NewSession() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.sessions) + 1
	name := fmt.Sprintf("Chat %d", n)
	for {
		if _, exists := s.sessions[name]; !exists {
			break
		}
		n++
		name = fmt.Sprintf("Chat %d", n)
	}
	s.createLocked(name)
	return name
}

func (s *Store) CreateSession(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[name]; exists {
		return fmt.Errorf("create session %q: %w", name, ErrSessionExists)
	}
	s.createLocked(name)
	return nil
}

func (s *Store) createLocked(name string) {
	s.sessions[name] = &Session{
		Name:           name,
		Messages:       []Message{},
		Categories:     s.sampleCategories(),
		PromptsVisible: true,
	}
	s.order = append(s.order, name)
	s.active = name
}

func (s *Store) sampleCategories() []string {
	keys := make([]string, 0, categoriesPerSession)
	for _, i := range s.rand.Perm(len(catalog.Categories))[:categoriesPerSession] {
		keys = append(keys, catalog.Categories[i].Key)
	}
	return keys
}

func (s *Store) SwitchActive(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[name]; !exists {
		return fmt.Errorf("switch to session %q: %w", name, ErrSessionNotFound)
	}
	s.active = name
	return nil
}

func (s *Store) AppendMessage(sessionName, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[sessionName]
	if !exists {
		return fmt.Errorf("append to session %q: %w", sessionName, ErrSessionNotFound)
	}
	sess.Messages = append(sess.Messages, Message{Role: role, Content: content, Timestamp: s.now()})
	return nil
}

// SetModel switches the model used for future completion requests. Past
// messages are untouched.
func (s *Store) SetModel(modelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := catalog.ModelByID(modelID); !ok {
		return fmt.Errorf("set model %q: %w", modelID, ErrInvalidModel)
	}
	s.modelID = modelID
	return nil
}

// SendMessage appends the user message to the active session, hides its
// prompt panel and asks the completion API for a reply. On failure the user
// message stays and nothing else is appended.
func (s *Store) SendMessage(ctx context.Context, text string) (user, reply Message, err error) {
	return s.send(ctx, text, sendTemperature)
}

// SendPrompt handles a click on a generated starter prompt: the leading
// ordinal marker is stripped before the text is sent as user input.
func (s *Store) SendPrompt(ctx context.Context, prompt string) (user, reply Message, err error) {
	return s.send(ctx, ordinalMarker.ReplaceAllString(prompt, ""), promptTemperature)
}

func (s *Store) send(ctx context.Context, text string, temperature float64) (Message, Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[s.active]
	userMsg := Message{Role: groq.RoleUser, Content: text, Timestamp: s.now()}
	sess.Messages = append(sess.Messages, userMsg)
	sess.PromptsVisible = false

	model, _ := catalog.ModelByID(s.modelID)
	req := groq.Request{
		Model:       s.modelID,
		Messages:    toWire(sess.Messages),
		MaxTokens:   model.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	s.metrics.CompletionRequests.Inc()
	replyText, err := s.completer.Complete(ctx, req)
	if err != nil {
		s.metrics.CompletionFailures.Inc()
		s.logger.Error().Err(err).Str("session", sess.Name).Str("model", s.modelID).Msg("completion failed")
		return userMsg, Message{}, fmt.Errorf("chat completion: %w", err)
	}

	replyMsg := Message{Role: groq.RoleAssistant, Content: replyText, Timestamp: s.now()}
	sess.Messages = append(sess.Messages, replyMsg)
	return userMsg, replyMsg, nil
}

func toWire(messages []Message) []groq.Message {
	out := make([]groq.Message, 0, len(messages))
	for _, m := range messages {
		out = append(out, groq.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

func (s *Store) Sessions() []SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SessionSummary, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, SessionSummary{
			Name:         name,
			MessageCount: len(s.sessions[name].Messages),
			Active:       name == s.active,
		})
	}
	return out
}

func (s *Store) ActiveName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// ActiveSession returns a copy of the active session.
func (s *Store) ActiveSession() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySession(s.sessions[s.active])
}

func (s *Store) Messages(sessionName string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[sessionName]
	if !exists {
		return nil, fmt.Errorf("messages of session %q: %w", sessionName, ErrSessionNotFound)
	}
	return append([]Message(nil), sess.Messages...), nil
}

func (s *Store) SelectedModel() catalog.Model {
	s.mu.Lock()
	defer s.mu.Unlock()

	model, _ := catalog.ModelByID(s.modelID)
	return model
}

func copySession(sess *Session) Session {
	return Session{
		Name:           sess.Name,
		Messages:       append([]Message(nil), sess.Messages...),
		Categories:     append([]string(nil), sess.Categories...),
		PromptsVisible: sess.PromptsVisible,
	}
}
