package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pskpp/festival/brackets"
)

type wsMessage struct {
	Type    string                 `json:"type"`
	RoomID  string                 `json:"room_id"`
	Payload brackets.BracketUpdate `json:"payload"`
}

func readWS(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg wsMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestWebSocketReceivesBracketUpdates(t *testing.T) {
	s := newTestServer(t)
	s.login()
	id := s.createEvent("Sepak Takraw")

	srv := httptest.NewServer(s.router)
	t.Cleanup(srv.Close)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events/" + id

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.Eventually(t, func() bool {
		return s.hub.ClientCount(brackets.RoomForEvent(id)) == 1
	}, 2*time.Second, 10*time.Millisecond)

	initial := readWS(t, conn)
	assert.Equal(t, brackets.MessageBracketUpdated, initial.Type)
	assert.Equal(t, id, initial.Payload.EventID)
	assert.Nil(t, initial.Payload.Layout)

	rec := s.json(http.MethodPost, "/api/events/"+id+"/bracket/rounds", `{"title":"Akhir"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	update := readWS(t, conn)
	assert.Equal(t, "event_"+id, update.RoomID)
	require.NotNil(t, update.Payload.Layout)
	require.Len(t, update.Payload.Layout.Columns, 1)
	assert.Equal(t, "Akhir", update.Payload.Layout.Columns[0].Title)
}

func TestWebSocketUnknownEvent(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.router)
	t.Cleanup(srv.Close)

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/events/tiada", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
