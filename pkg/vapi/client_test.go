package vapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() *CallRequest {
	return &CallRequest{
		Name:          "Liam Invitation call",
		AssistantID:   "asst-1",
		PhoneNumberID: "phone-1",
		Customers: []Customer{{
			Number:                 "+15550001111",
			Name:                   "Liam",
			NumberE164CheckEnabled: true,
		}},
		Metadata: &CallMetadata{GuestID: "3", EventID: "7"},
	}
}

func TestCreateCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/call", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CallRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "asst-1", req.AssistantID)
		require.Len(t, req.Customers, 1)
		assert.Equal(t, "+15550001111", req.Customers[0].Number)
		require.NotNil(t, req.Metadata)
		assert.Equal(t, "3", req.Metadata.GuestID)

		_ = json.NewEncoder(w).Encode(CallResponse{Results: []CallResult{{ID: "call-123"}}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	resp, err := client.CreateCall(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "call-123", resp.Results[0].ID)
}

func TestCreateCall_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "kotu-anahtar")
	_, err := client.CreateCall(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestCreateCall_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("bu json degil"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.CreateCall(context.Background(), testRequest())
	require.Error(t, err)
}

func TestCreateCall_TransportError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "test-key")
	_, err := client.CreateCall(context.Background(), testRequest())
	require.Error(t, err)
}

func TestCreateCall_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, "test-key")
	_, err := client.CreateCall(ctx, testRequest())
	require.Error(t, err)
}
