// Package speech plays answer text aloud through a local engine. The engine
// is resolved once at startup; when none is found the service stays usable
// and simply reports unavailable.
package speech

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/config"
)

// Service wraps a best-effort offline text-to-speech engine.
type Service struct {
	command string
	args    []string
	logger  *zerolog.Logger
}

// NewService probes for a usable engine. The returned service is never nil;
// check Available before speaking.
func NewService(cfg config.SpeechConfig, logger *zerolog.Logger) *Service {
	s := &Service{logger: logger}
	if cfg.Disabled {
		return s
	}

	if cfg.Command != "" {
		if path, err := exec.LookPath(cfg.Command); err == nil {
			s.command = path
		} else {
			logger.Warn().Str("command", cfg.Command).Msg("configured speech engine not found on PATH")
		}
		return s
	}

	for _, candidate := range engineCandidates() {
		if path, err := exec.LookPath(candidate); err == nil {
			s.command = path
			break
		}
	}
	return s
}

// Available reports whether an engine was resolved at startup.
func (s *Service) Available() bool {
	return s != nil && s.command != ""
}

// Speak plays the text synchronously and blocks until playback ends.
func (s *Service) Speak(ctx context.Context, text string) error {
	if !s.Available() {
		return fmt.Errorf("speech engine not available")
	}
	if text == "" {
		return fmt.Errorf("nothing to speak")
	}

	cmd := exec.CommandContext(ctx, s.command, append(s.args, text)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		s.logger.Warn().Err(err).Str("engine", s.command).Bytes("output", out).Msg("speech playback failed")
		return fmt.Errorf("speech playback failed: %w", err)
	}
	return nil
}

func engineCandidates() []string {
	if runtime.GOOS == "darwin" {
		return []string{"say", "espeak", "flite"}
	}
	return []string{"espeak", "espeak-ng", "flite", "say"}
}
