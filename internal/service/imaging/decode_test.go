package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	img, err := Decode(encodePNG(t, 4, 3))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.MIMEType != "image/png" {
		t.Errorf("mime: got %s", img.MIMEType)
	}
	if img.Width != 4 || img.Height != 3 {
		t.Errorf("bounds: got %dx%d", img.Width, img.Height)
	}
	if len(img.Data) == 0 {
		t.Error("expected raw bytes retained")
	}
}

func TestDecodeJPEG(t *testing.T) {
	img, err := Decode(encodeJPEG(t, 2, 2))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.MIMEType != "image/jpeg" {
		t.Errorf("mime: got %s", img.MIMEType)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("definitely not an image")); !errors.Is(err, ErrUnrecognizedImage) {
		t.Fatalf("expected ErrUnrecognizedImage, got %v", err)
	}
}

func TestDecodeEmpty(t *testing.T) {
	if _, err := Decode(nil); !errors.Is(err, ErrUnrecognizedImage) {
		t.Fatalf("expected ErrUnrecognizedImage, got %v", err)
	}
}

func TestDecodeTruncatedPNG(t *testing.T) {
	data := encodePNG(t, 16, 16)
	if _, err := Decode(data[:len(data)/2]); !errors.Is(err, ErrUnrecognizedImage) {
		t.Fatalf("expected ErrUnrecognizedImage for truncated payload, got %v", err)
	}
}
