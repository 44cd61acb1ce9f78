package uploader

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"wildwatch/internal/logger"
)

// Uploader POSTs detection snapshots to the remote endpoint as multipart
// form data. There is no retry and no authentication, any HTTP status is
// treated as a completed upload and merely logged.
type Uploader struct {
	endpoint string
	client   *http.Client
	logger   *logger.Logger
}

func New(endpoint string, logger *logger.Logger) *Uploader {
	return &Uploader{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
}

// Upload sends the JPEG bytes as form field "image" with the snapshot ID
// in an "id" field. It returns the HTTP status code of the response.
func (u *Uploader) Upload(image []byte, filename, snapshotID string) (int, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return 0, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return 0, fmt.Errorf("failed to write image data: %w", err)
	}

	if err := writer.WriteField("id", snapshotID); err != nil {
		return 0, fmt.Errorf("failed to write id field: %w", err)
	}

	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("failed to finalize form: %w", err)
	}

	resp, err := u.client.Post(u.endpoint, writer.FormDataContentType(), &body)
	if err != nil {
		return 0, fmt.Errorf("failed to send snapshot: %w", err)
	}
	defer resp.Body.Close()

	u.logger.Info("📤 Sent %s → API response: %d", filename, resp.StatusCode)
	return resp.StatusCode, nil
}
