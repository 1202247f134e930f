// pkg/lmnt/client.go
package lmnt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Client ses klonlama sağlayıcısının (LMNT) HTTP istemcisi.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient yeni bir LMNT istemcisi oluşturur.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second, // ses dosyası yüklemesi uzun sürebilir
		},
	}
}

type voiceMetadata struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Enhance     bool   `json:"enhance"`
	Gender      string `json:"gender"`
	Description string `json:"description"`
}

type voiceResponse struct {
	ID string `json:"id"`
}

// CreateCustomVoice ses örneğini multipart olarak yükleyip yeni bir
// klonlanmış ses oluşturur ve sağlayıcının ses ID'sini döndürür.
func (c *Client) CreateCustomVoice(ctx context.Context, filePath, hostName string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("lmnt: ses dosyası açılamadı: %w", err)
	}
	defer f.Close()

	meta := voiceMetadata{
		Name:        hostName + "_voice",
		Type:        "instant",
		Enhance:     false,
		Gender:      "unknown",
		Description: fmt.Sprintf("Custom voice for %s's event", hostName),
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("lmnt: metadata oluşturulamadı: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	metaPart, err := writer.CreateFormField("metadata")
	if err != nil {
		return "", fmt.Errorf("lmnt: metadata alanı oluşturulamadı: %w", err)
	}
	if _, err := metaPart.Write(metaJSON); err != nil {
		return "", fmt.Errorf("lmnt: metadata yazılamadı: %w", err)
	}

	filePart, err := writer.CreateFormFile("files", filepath.Base(filePath))
	if err != nil {
		return "", fmt.Errorf("lmnt: dosya alanı oluşturulamadı: %w", err)
	}
	if _, err := io.Copy(filePart, f); err != nil {
		return "", fmt.Errorf("lmnt: ses dosyası kopyalanamadı: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("lmnt: multipart gövde kapatılamadı: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/ai/voice", &body)
	if err != nil {
		return "", fmt.Errorf("lmnt: istek oluşturulamadı: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("lmnt: istek gönderilemedi: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("lmnt: yanıt okunamadı: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lmnt: ses oluşturulamadı (durum %d): %s", resp.StatusCode, respBody)
	}

	var voice voiceResponse
	if err := json.Unmarshal(respBody, &voice); err != nil {
		return "", fmt.Errorf("lmnt: yanıt çözümlenemedi: %w", err)
	}
	if voice.ID == "" {
		return "", fmt.Errorf("lmnt: yanıt ses ID'si içermiyor")
	}
	return voice.ID, nil
}
