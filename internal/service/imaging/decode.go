// Package imaging decodes uploaded images into the in-memory handle the
// session holds. JPEG and PNG are the only accepted encodings, and decoded
// images are never written to durable storage.
package imaging

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
)

// ErrUnrecognizedImage marks input that is not a decodable JPEG or PNG.
var ErrUnrecognizedImage = errors.New("unrecognized image format, upload a valid JPG/PNG")

// Image is the decoded in-memory handle a session owns.
type Image struct {
	Data     []byte
	MIMEType string
	Width    int
	Height   int
}

// Decode parses raw upload bytes and returns the session image handle.
// Anything other than a well-formed JPEG or PNG yields ErrUnrecognizedImage.
func Decode(raw []byte) (*Image, error) {
	if len(raw) == 0 {
		return nil, ErrUnrecognizedImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrUnrecognizedImage
	}

	var mime string
	switch format {
	case "jpeg":
		mime = "image/jpeg"
	case "png":
		mime = "image/png"
	default:
		return nil, ErrUnrecognizedImage
	}

	// A plausible header is not enough; make sure the full payload decodes
	// before the session takes ownership of it.
	if _, _, err := image.Decode(bytes.NewReader(raw)); err != nil {
		return nil, ErrUnrecognizedImage
	}

	data := make([]byte, len(raw))
	copy(data, raw)

	return &Image{
		Data:     data,
		MIMEType: mime,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}
