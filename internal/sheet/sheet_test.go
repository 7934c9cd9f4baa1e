package sheet

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbd888/warchest/internal/record"
)

func testEntry() Entry {
	return NewEntry(record.Record{
		Kind:              record.KindGold,
		Subject:           "Alice",
		Amount:            "500",
		SubmittedAtMillis: 1700000000000,
	}, "Reviewer")
}

func TestAppend_SendsStablePayload(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.Append(context.Background(), testEntry())
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, "gold", payload["type"])
	assert.Equal(t, "Alice", payload["player"])
	assert.Equal(t, "500", payload["value"])
	assert.Equal(t, "Reviewer", payload["verifier"])
	assert.Equal(t, float64(1700000000000), payload["originalTimestampMs"])
}

func TestAppend_NonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("sheet quota exceeded"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.Append(context.Background(), testEntry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "sheet quota exceeded")
}

func TestAppend_NetworkFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := NewClient(srv.URL)
	err := client.Append(context.Background(), testEntry())
	require.Error(t, err)
}

func TestAppend_AnyTwoHundredIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	require.NoError(t, client.Append(context.Background(), testEntry()))
}
