package airtable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Settings{
		BaseURL: srv.URL,
		BaseID:  "appTest",
		APIKey:  "key-test",
		Client:  srv.Client(),
	})
	require.NoError(t, err)
	return client
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Settings{APIKey: "key"})
	assert.Error(t, err)

	_, err = NewClient(Settings{BaseID: "app"})
	assert.Error(t, err)
}

func TestClientListFollowsPagination(t *testing.T) {
	var gotAuth string
	var gotFormula string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/appTest/Visitors", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotFormula = r.URL.Query().Get("filterByFormula")

		if r.URL.Query().Get("offset") == "" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"records": []map[string]any{
					{"id": "rec1", "fields": map[string]any{"Duration": 12}},
				},
				"offset": "page2",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{
				{"id": "rec2", "fields": map[string]any{"Duration": 7}},
			},
		})
	}))

	records, err := client.List(context.Background(), "Visitors", "{StoreID} = 'rec123'")
	require.NoError(t, err)

	assert.Equal(t, "Bearer key-test", gotAuth)
	assert.Equal(t, "{StoreID} = 'rec123'", gotFormula)
	require.Len(t, records, 2)
	assert.Equal(t, "rec1", records[0].ID)
	assert.Equal(t, "rec2", records[1].ID)
}

func TestClientGetNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.Get(context.Background(), "Stores", "recMissing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientInsert(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/appTest/Purchases", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 42.5, body["fields"]["Amount"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "recNew",
			"fields": body["fields"],
		})
	}))

	record, err := client.Insert(context.Background(), "Purchases", map[string]any{"Amount": 42.5})
	require.NoError(t, err)
	assert.Equal(t, "recNew", record.ID)
	assert.Equal(t, 42.5, record.Fields["Amount"])
}

func TestClientUpdateAndDelete(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/appTest/Stores/rec1", r.URL.Path)
		switch r.Method {
		case http.MethodPatch:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":     "rec1",
				"fields": map[string]any{"Name": "Renamed"},
			})
		case http.MethodDelete:
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "rec1"})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	updated, err := client.Update(context.Background(), "Stores", "rec1", map[string]any{"Name": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Fields["Name"])

	deleted, err := client.Delete(context.Background(), "Stores", "rec1")
	require.NoError(t, err)
	assert.Equal(t, "rec1", deleted.ID)
}

func TestClientSurfacesServerErrors(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))

	_, err := client.List(context.Background(), "Visitors", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
