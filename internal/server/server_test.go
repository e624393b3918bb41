package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/afero"

	"github.com/kiesman99/spritesheet/internal/api"
	"github.com/kiesman99/spritesheet/pkg/sprite"
)

// Test server setup
func setupTestServer() *httptest.Server {
	r := chi.NewRouter()

	// Add middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	// Create server implementation
	apiServer := NewServer("1.0.0-test")

	// Mount API routes at /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		apiServer.Routes(r)
	})

	return httptest.NewServer(r)
}

func encodedSprite(t *testing.T, w, h int, pixel [4]byte) string {
	t.Helper()

	buf := make([]byte, w*h*4)
	for i := 0; i < len(buf); i += 4 {
		copy(buf[i:i+4], pixel[:])
	}
	img := &sprite.ImageData{Buf: buf, Width: w, Height: h, Depth: 4}

	data, err := sprite.NewProcessor(afero.NewMemMapFs()).EncodePNG(img)
	if err != nil {
		t.Fatalf("Failed to encode test sprite: %v", err)
	}
	return base64.StdEncoding.EncodeToString(data)
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	return resp
}

func decodeError(t *testing.T, resp *http.Response) api.ErrorResponse {
	t.Helper()

	var errResp api.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return errResp
}

func TestHealthEndpoint(t *testing.T) {
	server := setupTestServer()
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	defer resp.Body.Close()

	// Check status code
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	// Check content type
	contentType := resp.Header.Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", contentType)
	}

	var health api.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}
	if health.Status != api.Healthy {
		t.Errorf("Expected status %q, got %q", api.Healthy, health.Status)
	}
	if health.Version == nil || *health.Version != "1.0.0-test" {
		t.Errorf("Expected version 1.0.0-test, got %v", health.Version)
	}
}

func TestStitchEndpoint(t *testing.T) {
	server := setupTestServer()
	defer server.Close()

	req := api.StitchRequest{
		Images: []string{
			encodedSprite(t, 2, 2, [4]byte{255, 0, 0, 255}),
			encodedSprite(t, 2, 2, [4]byte{0, 255, 0, 255}),
		},
		GridSize: sprite.GridSpec{Rows: 1, Cols: 2},
		Labels:   []string{"red", "green"},
	}

	resp := postJSON(t, server.URL+"/api/v1/stitch", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var stitchResp api.StitchResponse
	if err := json.NewDecoder(resp.Body).Decode(&stitchResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if stitchResp.Metadata == nil {
		t.Fatal("Expected metadata in response")
	}
	if stitchResp.Metadata.SheetSize != (sprite.SheetSize{Width: 4, Height: 2}) {
		t.Errorf("Expected sheet size 4x2, got %+v", stitchResp.Metadata.SheetSize)
	}
	if len(stitchResp.Metadata.Labels) != 2 || stitchResp.Metadata.Labels[0] != "red" {
		t.Errorf("Expected labels [red green], got %v", stitchResp.Metadata.Labels)
	}

	// The sheet decodes back to the announced dimensions.
	data, err := base64.StdEncoding.DecodeString(stitchResp.Sheet)
	if err != nil {
		t.Fatalf("Failed to decode sheet base64: %v", err)
	}
	sheet, err := sprite.NewProcessor(afero.NewMemMapFs()).DecodeImage(data)
	if err != nil {
		t.Fatalf("Failed to decode sheet PNG: %v", err)
	}
	if sheet.Width != 4 || sheet.Height != 2 {
		t.Errorf("Expected 4x2 sheet, got %dx%d", sheet.Width, sheet.Height)
	}
}

func TestStitchCapacityExceeded(t *testing.T) {
	server := setupTestServer()
	defer server.Close()

	req := api.StitchRequest{
		Images: []string{
			encodedSprite(t, 2, 2, [4]byte{255, 0, 0, 255}),
			encodedSprite(t, 2, 2, [4]byte{0, 255, 0, 255}),
			encodedSprite(t, 2, 2, [4]byte{0, 0, 255, 255}),
		},
		GridSize: sprite.GridSpec{Rows: 1, Cols: 2},
	}

	resp := postJSON(t, server.URL+"/api/v1/stitch", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}
	if errResp := decodeError(t, resp); errResp.Error != "CAPACITY_EXCEEDED" {
		t.Errorf("Expected error CAPACITY_EXCEEDED, got %s", errResp.Error)
	}
}

func TestStitchInvalidJSON(t *testing.T) {
	server := setupTestServer()
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/v1/stitch", "application/json",
		bytes.NewReader([]byte("{nope")))
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}
	if errResp := decodeError(t, resp); errResp.Error != "INVALID_JSON" {
		t.Errorf("Expected error INVALID_JSON, got %s", errResp.Error)
	}
}

func TestSplitEndpointRoundTrip(t *testing.T) {
	server := setupTestServer()
	defer server.Close()

	stitchReq := api.StitchRequest{
		Images: []string{
			encodedSprite(t, 2, 2, [4]byte{255, 0, 0, 255}),
			encodedSprite(t, 2, 2, [4]byte{0, 255, 0, 255}),
		},
		GridSize: sprite.GridSpec{Rows: 1, Cols: 2},
		Labels:   []string{"red", "green"},
	}

	resp := postJSON(t, server.URL+"/api/v1/stitch", stitchReq)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Stitch: expected status 200, got %d", resp.StatusCode)
	}

	var stitchResp api.StitchResponse
	if err := json.NewDecoder(resp.Body).Decode(&stitchResp); err != nil {
		t.Fatalf("Failed to decode stitch response: %v", err)
	}

	// Feed the sheet and its metadata straight back.
	splitReq := api.SplitRequest{
		Sheet:    stitchResp.Sheet,
		Metadata: stitchResp.Metadata,
	}

	resp2 := postJSON(t, server.URL+"/api/v1/split", splitReq)
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("Split: expected status 200, got %d", resp2.StatusCode)
	}

	var splitResp api.SplitResponse
	if err := json.NewDecoder(resp2.Body).Decode(&splitResp); err != nil {
		t.Fatalf("Failed to decode split response: %v", err)
	}

	if len(splitResp.Sprites) != 2 {
		t.Fatalf("Expected 2 sprites, got %d", len(splitResp.Sprites))
	}
	wantLabels := []string{"red", "green"}
	for i, sp := range splitResp.Sprites {
		if sp.Index != i {
			t.Errorf("Sprite %d: expected index %d, got %d", i, i, sp.Index)
		}
		if sp.Label != wantLabels[i] {
			t.Errorf("Sprite %d: expected label %q, got %q", i, wantLabels[i], sp.Label)
		}
		if _, err := base64.StdEncoding.DecodeString(sp.Image); err != nil {
			t.Errorf("Sprite %d: invalid base64 image: %v", i, err)
		}
	}
}

func TestSplitMissingSpriteSize(t *testing.T) {
	server := setupTestServer()
	defer server.Close()

	req := api.SplitRequest{
		Sheet: encodedSprite(t, 4, 2, [4]byte{255, 0, 0, 255}),
	}

	resp := postJSON(t, server.URL+"/api/v1/split", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}
	if errResp := decodeError(t, resp); errResp.Error != "MISSING_SPRITE_SIZE" {
		t.Errorf("Expected error MISSING_SPRITE_SIZE, got %s", errResp.Error)
	}
}

func TestSplitSheetTooSmall(t *testing.T) {
	server := setupTestServer()
	defer server.Close()

	req := api.SplitRequest{
		Sheet:      encodedSprite(t, 2, 2, [4]byte{255, 0, 0, 255}),
		SpriteSize: &sprite.CellSize{Width: 8, Height: 8},
	}

	resp := postJSON(t, server.URL+"/api/v1/split", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}
	if errResp := decodeError(t, resp); errResp.Error != "SHEET_TOO_SMALL" {
		t.Errorf("Expected error SHEET_TOO_SMALL, got %s", errResp.Error)
	}
}

func TestSplitRejectsZeroSpriteSize(t *testing.T) {
	server := setupTestServer()
	defer server.Close()

	// A zero sprite size must come back as a validation error, not crash
	// the grid math behind the handler.
	req := api.SplitRequest{
		Sheet:      encodedSprite(t, 4, 2, [4]byte{255, 0, 0, 255}),
		SpriteSize: &sprite.CellSize{Width: 0, Height: 0},
	}

	resp := postJSON(t, server.URL+"/api/v1/split", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}
	if errResp := decodeError(t, resp); errResp.Error != "VALIDATION_ERROR" {
		t.Errorf("Expected error VALIDATION_ERROR, got %s", errResp.Error)
	}
}

func TestSplitRejectsNegativePadding(t *testing.T) {
	server := setupTestServer()
	defer server.Close()

	req := api.SplitRequest{
		Sheet:         encodedSprite(t, 4, 2, [4]byte{255, 0, 0, 255}),
		SpriteSize:    &sprite.CellSize{Width: 2, Height: 2},
		SpritePadding: &sprite.Padding{Horizontal: -1},
	}

	resp := postJSON(t, server.URL+"/api/v1/split", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}
	if errResp := decodeError(t, resp); errResp.Error != "VALIDATION_ERROR" {
		t.Errorf("Expected error VALIDATION_ERROR, got %s", errResp.Error)
	}
}

func TestSplitExcludeBlank(t *testing.T) {
	server := setupTestServer()
	defer server.Close()

	stitchReq := api.StitchRequest{
		Images: []string{
			encodedSprite(t, 2, 2, [4]byte{255, 0, 0, 255}),
			encodedSprite(t, 2, 2, [4]byte{0, 0, 0, 0}),
		},
		GridSize: sprite.GridSpec{Rows: 1, Cols: 2},
	}

	resp := postJSON(t, server.URL+"/api/v1/stitch", stitchReq)
	defer resp.Body.Close()
	var stitchResp api.StitchResponse
	if err := json.NewDecoder(resp.Body).Decode(&stitchResp); err != nil {
		t.Fatalf("Failed to decode stitch response: %v", err)
	}

	splitReq := api.SplitRequest{
		Sheet:        stitchResp.Sheet,
		Metadata:     stitchResp.Metadata,
		ExcludeBlank: true,
	}

	resp2 := postJSON(t, server.URL+"/api/v1/split", splitReq)
	defer resp2.Body.Close()

	var splitResp api.SplitResponse
	if err := json.NewDecoder(resp2.Body).Decode(&splitResp); err != nil {
		t.Fatalf("Failed to decode split response: %v", err)
	}

	if len(splitResp.Sprites) != 1 {
		t.Fatalf("Expected 1 sprite after blank filtering, got %d", len(splitResp.Sprites))
	}
	// The survivor keeps its original extraction index.
	if splitResp.Sprites[0].Index != 0 {
		t.Errorf("Expected index 0, got %d", splitResp.Sprites[0].Index)
	}
}
