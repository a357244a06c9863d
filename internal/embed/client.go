package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"gocv.io/x/gocv"
	"golang.org/x/image/draw"
)

// maxUploadSize caps the longer image edge before upload; the embedding
// server resizes internally anyway and smaller payloads keep the frame loop
// responsive.
const maxUploadSize = 640

// Client computes embeddings through a remote embedding server, as an
// alternative to shipping a local model file.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an embedding server client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// embeddingResponse represents the response from the embedding server.
type embeddingResponse struct {
	Dim       int       `json:"dim"`
	Embedding []float32 `json:"embedding"`
	Model     string    `json:"model"`
}

// EmbedImage uploads the image and returns the embedding vector.
func (c *Client) EmbedImage(img image.Image) ([]float32, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resizeForUpload(img, maxUploadSize), &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return c.post(buf.Bytes())
}

// EmbedRegion encodes the face crop as JPEG and uploads it. The box must be
// clamped to the frame bounds.
func (c *Client) EmbedRegion(frame gocv.Mat, box image.Rectangle) ([]float32, error) {
	if box.Empty() {
		return nil, fmt.Errorf("empty face region %v", box)
	}

	region := frame.Region(box)
	defer region.Close()

	encoded, err := gocv.IMEncode(gocv.JPEGFileExt, region)
	if err != nil {
		return nil, fmt.Errorf("failed to encode face region: %w", err)
	}
	defer encoded.Close()

	// GetBytes returns a view into native memory; post consumes it before
	// the buffer is released.
	return c.post(encoded.GetBytes())
}

// post constructs a multipart form with the image data and sends it to the
// embedding endpoint.
func (c *Client) post(imageData []byte) ([]float32, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "face.jpg")
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(imageData); err != nil {
		return nil, fmt.Errorf("failed to write image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embed/face", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding server error (status %d): %s", resp.StatusCode, string(body))
	}

	var embResp embeddingResponse
	if err := json.Unmarshal(body, &embResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(embResp.Embedding) == 0 {
		return nil, errors.New("empty embedding returned")
	}

	return embResp.Embedding, nil
}

// Close implements Embedder; the HTTP client holds no resources to release.
func (c *Client) Close() error {
	return nil
}

// resizeForUpload scales an image down so its longer edge fits maxSize,
// keeping the aspect ratio. Images already small enough pass through.
func resizeForUpload(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxSize && height <= maxSize {
		return img
	}

	var newWidth, newHeight int
	if width > height {
		newWidth = maxSize
		newHeight = height * maxSize / width
	} else {
		newHeight = maxSize
		newWidth = width * maxSize / height
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.BiLinear.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
	return resized
}
