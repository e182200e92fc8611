package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

func dialNotifications(t *testing.T, server *httptest.Server, userId string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/notifications/ws?userId=" + userId
	ws, err := websocket.Dial(url, "", "http://localhost")
	require.NoError(t, err)
	return ws
}

func TestNotificationSocket_ReceivesHire(t *testing.T) {
	a := newTestApi(t)
	server := httptest.NewServer(a.echo)
	defer server.Close()

	ws := dialNotifications(t, server, a.freelancer.Id.String())
	defer ws.Close()
	require.Eventually(t, func() bool { return a.hub.Connected(a.freelancer.Id) }, time.Second, 5*time.Millisecond)

	gig := a.postGig("500")
	_, bid := a.postBid(gig.Id, &a.freelancer, "400")
	code, _ := a.do(http.MethodPatch, "/api/bids/"+bid.Bid.Id+"/hire", &a.owner, "")
	require.Equal(t, http.StatusOK, code)

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event socketEvent
	require.NoError(t, websocket.JSON.Receive(ws, &event))
	assert.Equal(t, "notification", event.Event)
	assert.Equal(t, entity.NotificationHired, event.Data.Type)
	assert.Equal(t, gig.Id, event.Data.GigId)
	assert.Equal(t, `You have been hired for "Landing page"!`, event.Data.Message)
}

func TestNotificationSocket_DisconnectUnregisters(t *testing.T) {
	a := newTestApi(t)
	server := httptest.NewServer(a.echo)
	defer server.Close()

	ws := dialNotifications(t, server, a.freelancer.Id.String())
	require.Eventually(t, func() bool { return a.hub.Connected(a.freelancer.Id) }, time.Second, 5*time.Millisecond)

	require.NoError(t, ws.Close())
	assert.Eventually(t, func() bool { return !a.hub.Connected(a.freelancer.Id) }, time.Second, 5*time.Millisecond)
}

func TestNotificationSocket_RequiresUser(t *testing.T) {
	a := newTestApi(t)

	code, resp := a.do(http.MethodGet, "/api/notifications/ws?userId=nobody", nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, resp.Success)
}
