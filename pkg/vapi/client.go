// pkg/vapi/client.go
package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client dış arama sağlayıcısının (Vapi) HTTP istemcisi.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient yeni bir Vapi istemcisi oluşturur.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Customer aranacak kişi.
type Customer struct {
	Number                 string `json:"number"`
	Name                   string `json:"name"`
	NumberE164CheckEnabled bool   `json:"numberE164CheckEnabled"`

	// Toplu istekte davetli başına override ve korelasyon verisi
	// müşteri kaydının üzerinde taşınır.
	AssistantOverrides *AssistantOverrides `json:"assistantOverrides,omitempty"`
	Metadata           *CallMetadata       `json:"metadata,omitempty"`
}

// ModelMessage asistanın sistem mesajı.
type ModelMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Model asistanın LLM yapılandırması.
type Model struct {
	Provider string         `json:"provider"`
	Model    string         `json:"model"`
	Messages []ModelMessage `json:"messages"`
}

// Voice asistanın ses yapılandırması.
type Voice struct {
	Provider string `json:"provider"`
	VoiceID  string `json:"voiceId"`
	Model    string `json:"model,omitempty"`
}

// AssistantOverrides arama bazında asistan ayarlarını ezen blok.
type AssistantOverrides struct {
	FirstMessage    string `json:"firstMessage,omitempty"`
	EndCallMessage  string `json:"endCallMessage,omitempty"`
	Model           *Model `json:"model,omitempty"`
	Voice           *Voice `json:"voice,omitempty"`
	BackgroundSound string `json:"backgroundSound,omitempty"`
}

// CallMetadata webhook korelasyonu için sağlayıcının aynen geri gönderdiği blok.
// ID'ler opak string olarak taşınır; sağlayıcı bunları sayı olarak yorumlamaz.
type CallMetadata struct {
	GuestID       string `json:"guestId"`
	EventID       string `json:"eventId"`
	VoiceSampleID string `json:"voiceSampleId,omitempty"`
}

// CallRequest POST /call gövdesi.
type CallRequest struct {
	Name               string              `json:"name,omitempty"`
	AssistantID        string              `json:"assistantId"`
	PhoneNumberID      string              `json:"phoneNumberId"`
	Customers          []Customer          `json:"customers"`
	AssistantOverrides *AssistantOverrides `json:"assistantOverrides,omitempty"`
	Metadata           *CallMetadata       `json:"metadata,omitempty"`
}

// CallResult sağlayıcının başlattığı tek bir aramanın kaydı.
type CallResult struct {
	ID string `json:"id"`
}

// CallResponse POST /call yanıtı.
type CallResponse struct {
	Results []CallResult `json:"results"`
}

// CreateCall dış arama isteğini sağlayıcıya gönderir.
// Taşıma hatası, 2xx dışı durum kodu veya çözümlenemeyen gövde hata döndürür;
// çağıran bunları basit bir başarısızlık olarak ele alır (yeniden deneme yok).
func (c *Client) CreateCall(ctx context.Context, req *CallRequest) (*CallResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("vapi: istek gövdesi oluşturulamadı: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/call", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("vapi: istek oluşturulamadı: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("vapi: istek gönderilemedi: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("vapi: yanıt okunamadı: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("vapi: beklenmeyen durum kodu %d: %s", resp.StatusCode, truncate(respBody, 256))
	}

	var callResp CallResponse
	if err := json.Unmarshal(respBody, &callResp); err != nil {
		return nil, fmt.Errorf("vapi: yanıt çözümlenemedi: %w", err)
	}
	return &callResp, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
