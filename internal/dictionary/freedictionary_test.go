package dictionary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hausResponse = `[{
  "word": "haus",
  "phonetics": [{"text": ""}, {"text": "/haʊ̯s/", "audio": "https://audio.example/haus.mp3"}],
  "meanings": [
    {"partOfSpeech": "noun", "definitions": [
      {"definition": "house", "example": "Das Haus ist groß."},
      {"definition": "home"}
    ]},
    {"partOfSpeech": "noun", "definitions": [{"definition": "house"}]}
  ]
}]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *FreeDictionaryClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewFreeDictionaryClient(server.URL+"/entries/", "de")
	client.rateLimiter = newRateLimiter(0)
	return client
}

func TestFreeDictionaryClient_Lookup(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(hausResponse))
	})

	result, err := client.Lookup(context.Background(), "  Haus ")

	require.NoError(t, err)
	assert.Equal(t, "/entries/de/haus", gotPath)
	assert.Equal(t, "haus", result.Term)
	assert.Equal(t, "freedictionary", result.Source)
	assert.Equal(t, "/haʊ̯s/", result.Pronunciation)
	assert.Equal(t, "https://audio.example/haus.mp3", result.AudioURL)
	require.Len(t, result.Definitions, 3)
	assert.Equal(t, Definition{PartOfSpeech: "noun", Definition: "house", Example: "Das Haus ist groß."}, result.Definitions[0])
	assert.Equal(t, []string{"house", "home"}, result.Suggestions())
}

func TestFreeDictionaryClient_LookupEscapesTerm(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"word":"tür","meanings":[]}]`))
	})

	_, err := client.Lookup(context.Background(), "Tür")

	require.NoError(t, err)
	assert.Equal(t, "/entries/de/tür", gotPath)
}

func TestFreeDictionaryClient_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		_, err := client.Lookup(ctx, "xyz")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty list", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		})
		_, err := client.Lookup(ctx, "xyz")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := client.Lookup(ctx, "xyz")
		assert.EqualError(t, err, "unexpected status: 502")
	})

	t.Run("blank term", func(t *testing.T) {
		client := NewFreeDictionaryClient("http://unused", "")
		_, err := client.Lookup(ctx, " ")
		assert.Error(t, err)
	})
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	limiter := newRateLimiter(time.Hour)
	require.NoError(t, limiter.wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, limiter.wait(ctx), context.DeadlineExceeded)
}
