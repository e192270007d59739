package conversation

import "time"

// ImageInfo describes the currently loaded image without exposing its bytes.
// Image data never leaves process memory, so snapshots carry metadata only.
type ImageInfo struct {
	MIMEType string `json:"mimeType"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Snapshot is an immutable copy of one session's state, used by HTTP
// responses and websocket watchers alike.
type Snapshot struct {
	SessionID    string       `json:"sessionId"`
	CreatedAt    time.Time    `json:"createdAt"`
	Version      uint64       `json:"version"`
	History      []Entry      `json:"history"`
	Image        *ImageInfo   `json:"image,omitempty"`
	PersistOptIn bool         `json:"persistOptIn"`
	Achievements Achievements `json:"achievements"`
}
