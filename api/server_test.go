package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"hangman/models"
	"hangman/view"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firstSource struct{}

func (firstSource) Intn(int) int { return 0 }

func newTestServer(t *testing.T) (*Server, *httptest.Server, *http.Client) {
	t.Helper()
	s := NewServer(NewServerOptions{
		Words:  []models.WordEntry{{Word: "cat", Definition: "a small pet"}},
		Source: firstSource{},
	})
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return s, ts, &http.Client{Jar: jar}
}

func getState(t *testing.T, client *http.Client, base string) view.View {
	t.Helper()
	resp, err := client.Get(base + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var v view.View
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) {
	t.Helper()
	resp, err := client.PostForm(target, form)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "redirect should land on the game page")
}

// dialWS opens a socket for the session held in client's cookie jar and
// returns a reader that fails the test after five quiet seconds.
func dialWS(t *testing.T, ts *httptest.Server, client *http.Client) (*websocket.Conn, func() WSMessage) {
	t.Helper()
	u, _ := url.Parse(ts.URL)
	cookies := client.Jar.Cookies(u)
	require.Len(t, cookies, 1)
	header := http.Header{}
	header.Add("Cookie", cookies[0].String())

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn, func() WSMessage {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var msg WSMessage
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}
}

func TestHomeStartsGame(t *testing.T) {
	s, ts, client := newTestServer(t)

	resp, err := client.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "_ _ _")
	assert.Contains(t, string(body), `aria-label="Guess letter a"`)
	assert.Equal(t, 1, s.Sessions().Len())

	u, _ := url.Parse(ts.URL)
	cookies := client.Jar.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
}

func TestFormGuessFlow(t *testing.T) {
	_, ts, client := newTestServer(t)

	postForm(t, client, ts.URL+"/guess", url.Values{"letter": {"c"}})
	v := getState(t, client, ts.URL)
	assert.Equal(t, "c _ _", v.Masked)
	assert.Empty(t, v.Word)

	// invalid input is ignored, not an error
	postForm(t, client, ts.URL+"/guess", url.Values{"letter": {"7"}})
	postForm(t, client, ts.URL+"/guess", url.Values{"letter": {"ab"}})
	assert.Equal(t, v.Masked, getState(t, client, ts.URL).Masked)

	postForm(t, client, ts.URL+"/guess", url.Values{"letter": {"z"}})
	postForm(t, client, ts.URL+"/guess", url.Values{"letter": {"A"}})
	postForm(t, client, ts.URL+"/guess", url.Values{"letter": {"t"}})

	v = getState(t, client, ts.URL)
	assert.Equal(t, models.StatusWon, v.Status)
	assert.Equal(t, "c a t", v.Masked)
	assert.Equal(t, "cat", v.Word)
	assert.Equal(t, []string{"z"}, v.Wrong)
	assert.False(t, v.ShowDefinition)

	postForm(t, client, ts.URL+"/definition", nil)
	v = getState(t, client, ts.URL)
	assert.True(t, v.ShowDefinition)
	assert.Equal(t, "a small pet", v.Definition)

	postForm(t, client, ts.URL+"/reset", nil)
	v = getState(t, client, ts.URL)
	assert.Equal(t, models.StatusPlaying, v.Status)
	assert.Equal(t, "_ _ _", v.Masked)
	assert.Empty(t, v.Wrong)
	assert.False(t, v.ShowDefinition)
}

func TestDefinitionHiddenWhilePlaying(t *testing.T) {
	_, ts, client := newTestServer(t)
	postForm(t, client, ts.URL+"/definition", nil)
	v := getState(t, client, ts.URL)
	assert.False(t, v.ShowDefinition)
	assert.Empty(t, v.Definition)
}

func TestMethodNotAllowed(t *testing.T) {
	_, ts, client := newTestServer(t)
	resp, err := client.Get(ts.URL + "/guess")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestStatic(t *testing.T) {
	_, ts, client := newTestServer(t)
	resp, err := client.Get(ts.URL + "/static/game.js")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebSocketGuess(t *testing.T) {
	s, ts, client := newTestServer(t)
	// the page visit issues the session cookie
	resp, err := client.Get(ts.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()

	u, _ := url.Parse(ts.URL)
	cookies := client.Jar.Cookies(u)
	require.Len(t, cookies, 1)
	header := http.Header{}
	header.Add("Cookie", cookies[0].String())
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()

	read := func() WSMessage {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var msg WSMessage
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}

	first := read()
	require.Equal(t, "state", first.Action)
	require.NotNil(t, first.State)
	assert.Equal(t, "_ _ _", first.State.Masked)

	require.NoError(t, conn.WriteJSON(WSMessage{Action: "guess", Payload: "a"}))
	msg := read()
	require.NotNil(t, msg.State)
	assert.Equal(t, "_ a _", msg.State.Masked)

	require.NoError(t, conn.WriteJSON(WSMessage{Action: "guess", Payload: "q"}))
	msg = read()
	assert.Equal(t, 1, msg.State.Stage)
	assert.Len(t, msg.State.Drawing, len(view.Drawing(1)))

	// a form post from another tab reaches the socket too
	postForm(t, client, ts.URL+"/guess", url.Values{"letter": {"c"}})
	msg = read()
	assert.Equal(t, "c a _", msg.State.Masked)

	assert.Equal(t, 1, s.hub.Count(cookies[0].Value))
}

func TestWebSocketRequiresSession(t *testing.T) {
	_, ts, _ := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionsPrune(t *testing.T) {
	s := NewSessions([]models.WordEntry{{Word: "cat"}}, firstSource{})
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	_, err := s.View("old")
	require.NoError(t, err)
	clock = clock.Add(time.Hour)
	_, err = s.View("new")
	require.NoError(t, err)

	assert.Equal(t, 1, s.Prune(clock.Add(-time.Minute)))
	assert.Equal(t, 1, s.Len())
}

func TestSessionsEmptyWordList(t *testing.T) {
	s := NewSessions(nil, firstSource{})
	_, err := s.View("x")
	assert.Error(t, err)
}

func TestFinishedGameSocketMatchesPage(t *testing.T) {
	_, ts, client := newTestServer(t)
	for _, letter := range []string{"c", "a", "t"} {
		postForm(t, client, ts.URL+"/guess", url.Values{"letter": {letter}})
	}

	resp, err := client.Get(ts.URL + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), `data-game-over="true"`)

	// Every (re)connect greets with the same finished state the page shows,
	// so the page has nothing to reload for.
	for i := 0; i < 2; i++ {
		conn, read := dialWS(t, ts, client)
		msg := read()
		require.NotNil(t, msg.State)
		assert.True(t, msg.State.GameOver)
		assert.Equal(t, models.StatusWon, msg.State.Status)
		conn.Close()
	}

	resp, err = client.Get(ts.URL + "/static/game.js")
	require.NoError(t, err)
	script, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(script), "board.dataset.gameOver")
}

func TestFinishedGameSocketSeesReset(t *testing.T) {
	_, ts, client := newTestServer(t)
	for _, letter := range []string{"c", "a", "t"} {
		postForm(t, client, ts.URL+"/guess", url.Values{"letter": {letter}})
	}
	conn, read := dialWS(t, ts, client)
	require.True(t, read().State.GameOver)

	require.NoError(t, conn.WriteJSON(WSMessage{Action: "reset"}))
	msg := read()
	require.NotNil(t, msg.State)
	assert.False(t, msg.State.GameOver)
	assert.Equal(t, "_ _ _", msg.State.Masked)
}

func TestPruneInterval(t *testing.T) {
	tests := []struct {
		ttl  time.Duration
		want time.Duration
	}{
		{ttl: 0, want: time.Second},
		{ttl: time.Nanosecond, want: time.Second},
		{ttl: time.Second, want: time.Second},
		{ttl: time.Minute, want: 30 * time.Second},
		{ttl: 24 * time.Hour, want: 12 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.ttl.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, pruneInterval(tt.ttl))
		})
	}
}

func TestPruneSessionsTinyTTL(t *testing.T) {
	s := NewServer(NewServerOptions{
		Words:      []models.WordEntry{{Word: "cat"}},
		Source:     firstSource{},
		SessionTTL: time.Nanosecond,
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NotPanics(t, func() { s.pruneSessions(ctx) })
}
