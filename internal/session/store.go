package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownSession is returned when an operation references a session id
// that was never created (or was already reset).
var ErrUnknownSession = errors.New("unknown session id")

// FactSource produces the contextual-facts blurb injected into a session's
// system block at creation time. It receives the creation wall-clock time.
type FactSource func(now time.Time) string

// DefaultFacts renders the current date/time plus static hiring-trend notes.
func DefaultFacts(now time.Time) string {
	return fmt.Sprintf(
		"Today's date and time: %s. "+
			"Top companies are conducting interviews in major cities. "+
			"Recent trends: hybrid work and hiring for 2025 graduates.",
		now.Format("Monday, 02 January 2006, 03:04 PM"),
	)
}

type conversation struct {
	mu       sync.Mutex
	messages []Message
	evicted  bool
}

func (c *conversation) snapshot() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// append adds msg unless the conversation was evicted by Reset after the
// caller resolved it from the map. The re-check under the conversation lock
// means a concurrent Append/Reset pair linearizes cleanly: the append either
// lands before the reset or reports the session as unknown, never vanishing
// onto a detached history.
func (c *conversation) append(msg Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.evicted {
		return false
	}
	c.messages = append(c.messages, msg)
	return true
}

// Store holds every live conversation, keyed by opaque session id.
// Sessions are created lazily on first reference and live until Reset.
// The map is guarded by the store mutex; mutations within one session are
// serialized by a per-session mutex, so distinct ids never block each other.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*conversation

	systemPrompt string
	facts        FactSource
	now          func() time.Time
}

// NewStore creates an empty store. Every new session is seeded with
// systemPrompt and a contextual-facts message produced by facts at
// creation time. A nil facts falls back to DefaultFacts.
func NewStore(systemPrompt string, facts FactSource) *Store {
	if facts == nil {
		facts = DefaultFacts
	}
	return &Store{
		sessions:     make(map[string]*conversation),
		systemPrompt: systemPrompt,
		facts:        facts,
		now:          time.Now,
	}
}

// GetOrCreate resolves id to a session, creating it if needed. An empty id
// gets a freshly generated UUID. The returned history is a snapshot copy;
// callers never observe later mutations through it.
func (s *Store) GetOrCreate(id string) (string, []Message) {
	if id == "" {
		id = uuid.NewString()
	}

	s.mu.Lock()
	conv, ok := s.sessions[id]
	if !ok {
		conv = &conversation{
			messages: []Message{
				{Role: RoleSystem, Content: s.systemPrompt},
				{Role: RoleSystem, Content: "Current Context: " + s.facts(s.now())},
			},
		}
		s.sessions[id] = conv
	}
	s.mu.Unlock()

	return id, conv.snapshot()
}

// Append adds a message to an existing session. The session must have been
// created by GetOrCreate first.
func (s *Store) Append(id string, role Role, content string) error {
	s.mu.Lock()
	conv, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return ErrUnknownSession
	}
	if !conv.append(Message{Role: role, Content: content}) {
		return ErrUnknownSession
	}
	return nil
}

// History returns a snapshot copy of the session's messages.
func (s *Store) History(id string) ([]Message, error) {
	s.mu.Lock()
	conv, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, ErrUnknownSession
	}
	return conv.snapshot(), nil
}

// Reset removes the session entirely. The id's next GetOrCreate behaves as
// brand-new, with a fresh contextual-facts message.
func (s *Store) Reset(id string) error {
	s.mu.Lock()
	conv, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return ErrUnknownSession
	}
	delete(s.sessions, id)
	s.mu.Unlock()

	conv.mu.Lock()
	conv.evicted = true
	conv.mu.Unlock()
	return nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
