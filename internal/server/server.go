package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"

	"github.com/kiesman99/spritesheet/internal/api"
	"github.com/kiesman99/spritesheet/pkg/sprite"
)

// Server implements the sprite sheet HTTP API
type Server struct {
	startTime time.Time
	version   string
	processor *sprite.Processor
}

// NewServer creates a new server instance
func NewServer(version string) *Server {
	return &Server{
		startTime: time.Now(),
		version:   version,
		processor: sprite.NewProcessor(afero.NewMemMapFs()),
	}
}

// Routes registers the API endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.GetHealth)
	r.Post("/stitch", s.CreateSheet)
	r.Post("/split", s.SplitSheet)
}

// GetHealth implements the health check endpoint
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	uptime := int(time.Since(s.startTime).Seconds())

	response := api.HealthResponse{
		Status:    api.Healthy,
		Timestamp: time.Now(),
		Uptime:    &uptime,
		Version:   &s.version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding health response: %v", err)
	}
}

// CreateSheet implements the stitch endpoint
func (s *Server) CreateSheet(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()

	var req api.StitchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON",
			"Invalid JSON in request body", &requestID)
		return
	}

	if err := s.validateStitchRequest(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR",
			err.Error(), &requestID)
		return
	}

	images := make([]*sprite.ImageData, 0, len(req.Images))
	for i, encoded := range req.Images {
		img, err := s.decodeBase64Image(encoded)
		if err != nil {
			s.writeErrorResponse(w, http.StatusBadRequest, "IMAGE_DECODE_FAILURE",
				fmt.Sprintf("image %d could not be decoded: %v", i, err), &requestID)
			return
		}
		images = append(images, img)
	}

	padding := sprite.Padding{}
	if req.SpritePadding != nil {
		padding = *req.SpritePadding
	}

	labels := req.Labels
	if labels == nil {
		labels = make([]string, len(images))
	}

	sheet, desc, err := sprite.Stitch(images, req.GridSize, padding, labels)
	if err != nil {
		s.handleCoreError(w, err, &requestID)
		return
	}

	encoded, err := s.processor.EncodePNG(sheet)
	if err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"failed to encode sheet", &requestID)
		return
	}

	response := api.StitchResponse{
		Sheet:    base64.StdEncoding.EncodeToString(encoded),
		Metadata: desc,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// SplitSheet implements the split endpoint
func (s *Server) SplitSheet(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()

	var req api.SplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON",
			"Invalid JSON in request body", &requestID)
		return
	}

	if err := s.validateSplitRequest(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR",
			err.Error(), &requestID)
		return
	}

	sheet, err := s.decodeBase64Image(req.Sheet)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "IMAGE_DECODE_FAILURE",
			fmt.Sprintf("sheet could not be decoded: %v", err), &requestID)
		return
	}

	size, padding, labels, err := resolveSplitParams(&req)
	if err != nil {
		s.handleCoreError(w, err, &requestID)
		return
	}

	sprites, err := sprite.Split(sheet, size, padding)
	if err != nil {
		s.handleCoreError(w, err, &requestID)
		return
	}

	response := api.SplitResponse{Sprites: []api.SplitSprite{}}
	for i, sp := range sprites {
		if req.ExcludeBlank && sprite.IsBlank(sp) {
			continue
		}

		encoded, err := s.processor.EncodePNG(sp)
		if err != nil {
			s.writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"failed to encode sprite", &requestID)
			return
		}

		out := api.SplitSprite{
			Index: i,
			Image: base64.StdEncoding.EncodeToString(encoded),
		}
		if i < len(labels) {
			out.Label = labels[i]
		}
		response.Sprites = append(response.Sprites, out)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// validateStitchRequest validates the incoming stitch request
func (s *Server) validateStitchRequest(req *api.StitchRequest) error {
	if len(req.Images) == 0 {
		return fmt.Errorf("at least one image is required")
	}
	if req.GridSize.Rows <= 0 || req.GridSize.Cols <= 0 {
		return fmt.Errorf("grid_size rows and cols must be positive")
	}
	if req.SpritePadding != nil &&
		(req.SpritePadding.Horizontal < 0 || req.SpritePadding.Vertical < 0) {
		return fmt.Errorf("sprite_padding must not be negative")
	}
	if req.Labels != nil && len(req.Labels) != len(req.Images) {
		return fmt.Errorf("labels must match images in length")
	}
	return nil
}

// validateSplitRequest validates the incoming split request
func (s *Server) validateSplitRequest(req *api.SplitRequest) error {
	if req.Sheet == "" {
		return fmt.Errorf("sheet is required")
	}
	if req.SpriteSize != nil &&
		(req.SpriteSize.Width <= 0 || req.SpriteSize.Height <= 0) {
		return fmt.Errorf("sprite_size width and height must be positive")
	}
	if req.SpritePadding != nil &&
		(req.SpritePadding.Horizontal < 0 || req.SpritePadding.Vertical < 0) {
		return fmt.Errorf("sprite_padding must not be negative")
	}
	return nil
}

// resolveSplitParams merges explicit request fields with the embedded
// metadata: explicit values win, metadata fills the gaps.
func resolveSplitParams(req *api.SplitRequest) (sprite.CellSize, sprite.Padding, []string, error) {
	size := req.SpriteSize
	padding := req.SpritePadding
	labels := req.Labels

	if req.Metadata != nil {
		if err := req.Metadata.Validate(); err != nil {
			return sprite.CellSize{}, sprite.Padding{}, nil, err
		}
		if size == nil {
			size = &req.Metadata.SpriteSize
		}
		if padding == nil {
			padding = &req.Metadata.SpritePadding
		}
		if labels == nil {
			labels = req.Metadata.Labels
		}
	}

	if size == nil {
		return sprite.CellSize{}, sprite.Padding{}, nil, sprite.ErrMissingSpriteSize
	}
	if padding == nil {
		padding = &sprite.Padding{}
	}

	return *size, *padding, labels, nil
}

// handleCoreError maps errors from the sprite engine to API responses
func (s *Server) handleCoreError(w http.ResponseWriter, err error, requestID *string) {
	switch e := err.(type) {
	case *sprite.CapacityError:
		s.writeErrorResponse(w, http.StatusBadRequest, "CAPACITY_EXCEEDED", e.Error(), requestID)
	case *sprite.SheetTooSmallError:
		s.writeErrorResponse(w, http.StatusBadRequest, "SHEET_TOO_SMALL", e.Error(), requestID)
	default:
		switch err {
		case sprite.ErrMissingSpriteSize:
			s.writeErrorResponse(w, http.StatusBadRequest, "MISSING_SPRITE_SIZE", err.Error(), requestID)
		case sprite.ErrNoImages, sprite.ErrInvalidSpriteSize, sprite.ErrInvalidPadding, sprite.ErrInvalidGrid:
			s.writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), requestID)
		default:
			s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), requestID)
		}
	}
}

// decodeBase64Image decodes a base64 payload into a 4-channel image.
func (s *Server) decodeBase64Image(encoded string) (*sprite.ImageData, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %v", err)
	}
	return s.processor.DecodeImage(data)
}

// writeErrorResponse writes a standard error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string, requestID *string) {
	response := api.ErrorResponse{
		Error:     errorCode,
		Message:   message,
		RequestId: requestID,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// generateRequestID generates a unique request ID
func generateRequestID() string {
	return fmt.Sprintf("req_%d", time.Now().UnixNano())
}
