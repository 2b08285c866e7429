package httpd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodekoan/phrasebot/internal/brain"
	"github.com/kodekoan/phrasebot/internal/engine"
	"github.com/kodekoan/phrasebot/internal/phrase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	b, err := brain.NewSQLiteBrain(filepath.Join(t.TempDir(), "brain.db"))
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })

	st := phrase.NewStore(b)
	large := make([]phrase.Tidbit, 0, 11)
	for i := 0; i <= 10; i++ {
		large = append(large, phrase.Tidbit{Tidbit: fmt.Sprintf("response %d.", i), Verb: "<action>"})
	}
	seed := map[string]phrase.Record{
		"single": {Fact: "single", Tidbits: []phrase.Tidbit{
			{Tidbit: "takes a quarter from $who and places it in the swear jar.", Verb: "<action>"},
		}},
		"readonly": {Fact: "readonly", ReadOnly: true, Tidbits: []phrase.Tidbit{
			{Tidbit: "readonly.", Verb: "<action>"},
		}},
		"large":    {Fact: "large", Tidbits: large},
		"lolalias": {Alias: "rofl", Fact: "lolalias"},
		"rofl": {Fact: "rofl", Tidbits: []phrase.Tidbit{
			{Tidbit: "I am also amused", Verb: "<reply>"},
		}},
	}
	require.NoError(t, st.Save(context.Background(), seed))

	eng := engine.New(st, engine.Options{BotName: "hubot"})
	mux := http.NewServeMux()
	NewHandler(eng, "hubot", nil).RegisterRoutes(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	res, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(body)
}

func TestDumpExistingPhrase(t *testing.T) {
	srv := newTestServer(t)

	code, body := get(t, srv, "/hubot/phrase/single")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Factoid: [single]\nProtected: false\n\nTidbits:\n"+
		"<action>|takes a quarter from $who and places it in the swear jar.", body)
}

func TestDumpLargePhrase(t *testing.T) {
	srv := newTestServer(t)

	code, body := get(t, srv, "/hubot/phrase/large")

	assert.Equal(t, http.StatusOK, code)
	want := "Factoid: [large]\nProtected: false\n\nTidbits:"
	for i := 0; i <= 10; i++ {
		want += fmt.Sprintf("\n<action>|response %d.", i)
	}
	assert.Equal(t, want, body)
}

func TestDumpProtectedFlag(t *testing.T) {
	srv := newTestServer(t)

	code, body := get(t, srv, "/hubot/phrase/readonly")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Factoid: [readonly]\nProtected: true\n\nTidbits:\n<action>|readonly.", body)
}

func TestDumpFollowsAlias(t *testing.T) {
	srv := newTestServer(t)

	code, body := get(t, srv, "/hubot/phrase/lolalias")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Factoid: [lolalias]\nProtected: false\n\nTidbits:\n<reply>|I am also amused", body)
}

func TestDumpMissingPhrase(t *testing.T) {
	srv := newTestServer(t)

	code, body := get(t, srv, "/hubot/phrase/missing")

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Not Found", body)
}
