// Package events publishes conversation lifecycle announcements on NATS.
// Eventing is optional: careerbot runs fine without a broker, a nil
// Announcer is a no-op everywhere.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects for conversation lifecycle events.
const (
	SubjectRegistered     = "careerbot.service.registered"
	SubjectSessionCreated = "careerbot.session.created"
	SubjectChatTurn       = "careerbot.chat.turn"
	SubjectResumeAnalyzed = "careerbot.resume.analyzed"
	SubjectSessionReset   = "careerbot.session.reset"
)

// TurnEvent describes one completed chat exchange.
type TurnEvent struct {
	SessionID string `json:"session_id"`
	PromptLen int    `json:"prompt_len"`
	ReplyLen  int    `json:"reply_len"`
	Timestamp string `json:"timestamp"`
}

// ResumeEvent describes one completed resume analysis.
type ResumeEvent struct {
	SessionID string `json:"session_id"`
	Filename  string `json:"filename"`
	TextLen   int    `json:"text_len"`
	Timestamp string `json:"timestamp"`
}

type Announcer struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewAnnouncer(url, token string, logger *slog.Logger) (*Announcer, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Announcer{conn: nc, logger: logger}, nil
}

// Publish marshals data as JSON and publishes it on subject. A nil
// Announcer silently drops the event.
func (a *Announcer) Publish(subject string, data any) error {
	if a == nil {
		return nil
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return a.conn.Publish(subject, payload)
}

func (a *Announcer) Close() {
	if a == nil {
		return
	}
	a.conn.Close()
}

// Timestamp renders event times the way every careerbot subject expects.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
