// Package api defines the JSON request and response types of the HTTP API.
package api

import (
	"time"

	"github.com/kiesman99/spritesheet/pkg/sprite"
)

// HealthStatus values
const (
	Healthy = "healthy"
)

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    *int      `json:"uptime,omitempty"`
	Version   *string   `json:"version,omitempty"`
}

// StitchRequest asks for a set of sprites to be stitched into one sheet.
// Images are base64-encoded PNG or JPEG files in placement order.
type StitchRequest struct {
	Images        []string        `json:"images"`
	GridSize      sprite.GridSpec `json:"grid_size"`
	SpritePadding *sprite.Padding `json:"sprite_padding,omitempty"`
	Labels        []string        `json:"labels,omitempty"`
}

// StitchResponse carries the stitched sheet (base64 PNG) and its metadata.
type StitchResponse struct {
	Sheet    string             `json:"sheet"`
	Metadata *sprite.Descriptor `json:"metadata"`
}

// SplitRequest asks for a sheet (base64 PNG or JPEG) to be sliced back into
// sprites. Explicit fields take precedence over the embedded metadata.
type SplitRequest struct {
	Sheet         string             `json:"sheet"`
	SpriteSize    *sprite.CellSize   `json:"sprite_size,omitempty"`
	SpritePadding *sprite.Padding    `json:"sprite_padding,omitempty"`
	Metadata      *sprite.Descriptor `json:"metadata,omitempty"`
	Labels        []string           `json:"labels,omitempty"`
	ExcludeBlank  bool               `json:"exclude_blank,omitempty"`
}

// SplitSprite is one extracted sprite. Index is the 0-based extraction index
// in row-major order and is stable under blank filtering.
type SplitSprite struct {
	Index int    `json:"index"`
	Label string `json:"label,omitempty"`
	Image string `json:"image"`
}

// SplitResponse carries the extracted sprites.
type SplitResponse struct {
	Sprites []SplitSprite `json:"sprites"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error     string  `json:"error"`
	Message   string  `json:"message"`
	RequestId *string `json:"request_id,omitempty"`
}
