// Package vision talks to the hosted multimodal model that answers
// image-grounded questions.
package vision

import (
	"context"
	"errors"

	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/imaging"
)

// ErrNotConfigured marks a generator with no usable credential.
var ErrNotConfigured = errors.New("vision model not configured (missing/invalid GOOGLE_API_KEY)")

// Generator is the inference collaborator: one synchronous call per
// question, answering from the supplied image.
type Generator interface {
	// Configured reports whether a credential is present, so callers can
	// refuse a send attempt without issuing a doomed network call.
	Configured() bool
	// Generate asks the model the question about the image and returns the
	// answer text. It may fail on network, credential, or quota errors.
	Generate(ctx context.Context, question string, img *imaging.Image) (string, error)
}

// Unconfigured is the Generator wired when no credential was provided.
type Unconfigured struct{}

func (Unconfigured) Configured() bool { return false }

func (Unconfigured) Generate(context.Context, string, *imaging.Image) (string, error) {
	return "", ErrNotConfigured
}
