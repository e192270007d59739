// Package ask coordinates one send action: validate, call the model once,
// record the exchange.
package ask

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/metrics"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/model/conversation"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/history"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/session"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/vision"
)

var (
	ErrNoImage       = errors.New("no image uploaded yet")
	ErrEmptyQuestion = errors.New("question must not be empty")
)

// EmptyAnswerPlaceholder stands in when the model returns no text at all.
const EmptyAnswerPlaceholder = "(no text returned)"

// Result is the outcome of a send attempt that passed validation. PersistErr
// carries a non-fatal history write failure for display.
type Result struct {
	Entry      conversation.Entry
	PersistErr string
}

// Service is the answer request orchestrator.
type Service struct {
	sessions  *session.Service
	generator vision.Generator
	store     *history.Store
	logger    *zerolog.Logger
}

// NewService wires the orchestrator to its collaborators.
func NewService(sessions *session.Service, generator vision.Generator, store *history.Store, logger *zerolog.Logger) *Service {
	return &Service{
		sessions:  sessions,
		generator: generator,
		store:     store,
		logger:    logger,
	}
}

// Send runs one question through the model and appends the exchange.
//
// Preconditions are checked in order and short-circuit without touching
// state: credential present, image uploaded, question non-empty after
// trimming. Past validation the model is invoked exactly once; a model
// failure is captured as the entry's answer text, never returned as an
// error, so every validated send produces exactly one entry and one counter
// increment.
func (s *Service) Send(ctx context.Context, sessionID, question string) (Result, error) {
	if !s.generator.Configured() {
		return Result{}, vision.ErrNotConfigured
	}

	img, err := s.sessions.Image(ctx, sessionID)
	if err != nil {
		return Result{}, err
	}
	if img == nil {
		return Result{}, ErrNoImage
	}

	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return Result{}, ErrEmptyQuestion
	}

	answer, err := s.generator.Generate(ctx, trimmed, img)
	if err != nil {
		answer = fmt.Sprintf("Error: %v", err)
		metrics.IncInferenceFailure()
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("inference failed, captured into answer")
	} else if answer == "" {
		answer = EmptyAnswerPlaceholder
	}

	entry, err := s.sessions.AppendEntry(ctx, sessionID, trimmed, answer)
	if err != nil {
		return Result{}, err
	}
	if err := s.sessions.IncrementQuestionCounter(ctx, sessionID); err != nil {
		return Result{}, err
	}
	metrics.IncQuestions()

	result := Result{Entry: entry}
	if err := s.Persist(ctx, sessionID); err != nil {
		result.PersistErr = fmt.Sprintf("could not save history to disk: %v", err)
	}
	return result, nil
}

// Persist mirrors the current history to disk when the session opted in.
// Failures are non-fatal; the in-memory history stays authoritative.
func (s *Service) Persist(ctx context.Context, sessionID string) error {
	optIn, err := s.sessions.PersistOptIn(ctx, sessionID)
	if err != nil {
		return err
	}
	items, err := s.sessions.History(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.store.Save(items, optIn)
}
