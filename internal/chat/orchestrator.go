// Package chat orchestrates conversation turns: it resolves sessions,
// assembles prompts, and relays them to the completion gateway.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/careerbot/internal/events"
	"github.com/MikeSquared-Agency/careerbot/internal/extract"
	"github.com/MikeSquared-Agency/careerbot/internal/prompt"
	"github.com/MikeSquared-Agency/careerbot/internal/session"
)

// SystemPrompt is the fixed instruction installed at the head of every
// session.
const SystemPrompt = "You are CareerHRBot, an empathetic and professional career assistant. " +
	"You help users with resume improvement, interview prep, job fairs, and hiring trends. " +
	"If asked about current events or job opportunities, use the contextual information provided. " +
	"Be factual, friendly, and encouraging."

// Canned replies returned without touching the gateway.
const (
	ReplyEmptyMessage     = "Please type a message."
	ReplyUnreadableResume = "Couldn't read your resume. Try a text-based file."
)

// Generator is the completion gateway: a linear prompt in, generated text
// out. Failures are transport, quota, or model errors from the remote
// service.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Orchestrator composes the session store, prompt assembler, document
// extractor, and completion gateway into the two user-facing turn flows.
type Orchestrator struct {
	store     *session.Store
	llm       Generator
	announcer *events.Announcer
	logger    *slog.Logger
}

func New(store *session.Store, llm Generator, announcer *events.Announcer, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		store:     store,
		llm:       llm,
		announcer: announcer,
		logger:    logger,
	}
}

// HandleChatTurn runs one conversation exchange. Blank input gets a canned
// reply without creating session state or calling the gateway. On gateway
// failure the user turn stays recorded (so a retry reuses context) and no
// assistant turn is appended.
func (o *Orchestrator) HandleChatTurn(ctx context.Context, sessionID, userText string) (string, string, error) {
	userText = strings.TrimSpace(userText)
	if userText == "" {
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		return ReplyEmptyMessage, sessionID, nil
	}

	sessionID, seeded := o.store.GetOrCreate(sessionID)
	// A pre-existing session always carries at least one user turn, so a
	// bare system block means this call created it.
	if len(seeded) == 2 {
		o.announce(events.SubjectSessionCreated, map[string]any{
			"session_id": sessionID,
			"timestamp":  events.Timestamp(time.Now()),
		})
	}

	if err := o.store.Append(sessionID, session.RoleUser, userText); err != nil {
		return "", sessionID, fmt.Errorf("append user turn: %w", err)
	}

	history, err := o.store.History(sessionID)
	if err != nil {
		return "", sessionID, fmt.Errorf("load history: %w", err)
	}
	promptText := prompt.Render(history)

	o.logger.Info("chat turn",
		"session_id", sessionID,
		"history_len", len(history),
		"prompt_len", len(promptText),
	)

	reply, err := o.llm.Generate(ctx, promptText)
	if err != nil {
		o.logger.Error("generation failed", "session_id", sessionID, "error", err)
		return "", sessionID, fmt.Errorf("generate reply: %w", err)
	}

	reply = strings.TrimSpace(reply)
	if err := o.store.Append(sessionID, session.RoleAssistant, reply); err != nil {
		return "", sessionID, fmt.Errorf("append assistant turn: %w", err)
	}

	o.announce(events.SubjectChatTurn, events.TurnEvent{
		SessionID: sessionID,
		PromptLen: len(promptText),
		ReplyLen:  len(reply),
		Timestamp: events.Timestamp(time.Now()),
	})

	return reply, sessionID, nil
}

// HandleResumeTurn analyzes an uploaded resume in a single stateless shot.
// The session id is correlation-only: the analysis never reads or writes
// conversation history.
func (o *Orchestrator) HandleResumeTurn(ctx context.Context, sessionID, path string) (string, string, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	text := extract.Text(path)
	if text == "" {
		o.logger.Warn("resume extraction yielded nothing", "path", path)
		return ReplyUnreadableResume, sessionID, nil
	}

	filename := filepath.Base(path)
	o.logger.Info("analyzing resume",
		"session_id", sessionID,
		"filename", filename,
		"text_len", len(text),
	)

	feedback, err := o.llm.Generate(ctx, prompt.ResumeAnalysis(text))
	if err != nil {
		o.logger.Error("resume analysis failed", "session_id", sessionID, "error", err)
		return "", sessionID, fmt.Errorf("analyze resume: %w", err)
	}

	o.announce(events.SubjectResumeAnalyzed, events.ResumeEvent{
		SessionID: sessionID,
		Filename:  filename,
		TextLen:   len(text),
		Timestamp: events.Timestamp(time.Now()),
	})

	reply := fmt.Sprintf("Your resume '%s' was uploaded successfully. Here's my review:\n\n%s",
		filename, strings.TrimSpace(feedback))
	return reply, sessionID, nil
}

// Reset discards a session's history. Unknown ids return
// session.ErrUnknownSession.
func (o *Orchestrator) Reset(sessionID string) error {
	if err := o.store.Reset(sessionID); err != nil {
		return err
	}
	o.announce(events.SubjectSessionReset, map[string]any{
		"session_id": sessionID,
		"timestamp":  events.Timestamp(time.Now()),
	})
	return nil
}

func (o *Orchestrator) announce(subject string, data any) {
	if err := o.announcer.Publish(subject, data); err != nil {
		o.logger.Warn("event publish failed", "subject", subject, "error", err)
	}
}
