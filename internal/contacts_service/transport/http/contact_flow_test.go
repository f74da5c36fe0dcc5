package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter_http "github.com/aradsms/contacts_service/internal/contacts_service/transport/http"
)

func makeRequest(t *testing.T, ctx context.Context, client *http.Client, method, url string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func TestContactCRUDFlow(t *testing.T) {
	server := httptest.NewServer(setupRouter(t, false))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	client := &http.Client{Timeout: 10 * time.Second}

	var contactURL string

	t.Run("CreateContact", func(t *testing.T) {
		payload, err := json.Marshal(adapter_http.CreateContactRequestDTO{
			Name: "maria DAS dores",
			Phones: []adapter_http.PhoneDTO{
				{Number: "(21) 98888-7777", Type: "celular"},
				{Number: "2133334444", Type: "fixo"},
			},
			Category: "familiar",
		})
		require.NoError(t, err)

		resp := makeRequest(t, ctx, client, http.MethodPost, server.URL+"/contacts", bytes.NewBuffer(payload))
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var created adapter_http.ContactResponseDTO
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
		assert.Equal(t, "Maria das Dores", created.Name)
		assert.Equal(t, []adapter_http.PhoneDTO{
			{Number: "(21) 98888-7777", Type: "celular"},
			{Number: "(21) 3333-4444", Type: "fixo"},
		}, created.Phones)
		contactURL = fmt.Sprintf("%s/contacts/%d", server.URL, created.ID)
	})
	require.NotEmpty(t, contactURL, "contact URL must be available for subsequent steps")

	t.Run("GetContact", func(t *testing.T) {
		resp := makeRequest(t, ctx, client, http.MethodGet, contactURL, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got adapter_http.ContactResponseDTO
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "Maria das Dores", got.Name)
	})

	t.Run("UpdateContact", func(t *testing.T) {
		category := "pessoal"
		payload, err := json.Marshal(adapter_http.UpdateContactRequestDTO{Category: &category})
		require.NoError(t, err)

		resp := makeRequest(t, ctx, client, http.MethodPut, contactURL, bytes.NewBuffer(payload))
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated adapter_http.ContactResponseDTO
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
		assert.Equal(t, "pessoal", updated.Category)
		assert.Len(t, updated.Phones, 2)
	})

	t.Run("FilterAndSearch", func(t *testing.T) {
		resp := makeRequest(t, ctx, client, http.MethodGet, server.URL+"/contacts?category=pessoal", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp2 := makeRequest(t, ctx, client, http.MethodGet, server.URL+"/contacts/search?name=dores", nil)
		defer resp2.Body.Close()
		require.Equal(t, http.StatusOK, resp2.StatusCode)
		var found []adapter_http.ContactResponseDTO
		require.NoError(t, json.NewDecoder(resp2.Body).Decode(&found))
		assert.Len(t, found, 1)
	})

	t.Run("DeleteContact", func(t *testing.T) {
		resp := makeRequest(t, ctx, client, http.MethodDelete, contactURL, nil)
		resp.Body.Close()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = makeRequest(t, ctx, client, http.MethodGet, contactURL, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestConcurrentCreatesOverHTTP(t *testing.T) {
	server := httptest.NewServer(setupRouter(t, false))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	client := &http.Client{Timeout: 10 * time.Second}

	const workers = 20
	ids := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, server.URL+"/contacts", bytes.NewBufferString(anaBody))
			if !assert.NoError(t, err) {
				return
			}
			resp, err := client.Do(req)
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()
			var created adapter_http.ContactResponseDTO
			if assert.Equal(t, http.StatusCreated, resp.StatusCode) && assert.NoError(t, json.NewDecoder(resp.Body).Decode(&created)) {
				ids <- created.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, workers)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
	for id := int64(1); id <= workers; id++ {
		assert.True(t, seen[id], "missing id %d", id)
	}
}
