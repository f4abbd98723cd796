package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/withdraw"
	"github.com/thrasher-corp/bulkwithdraw/log"
)

const (
	websocketRequestTimeout = time.Minute
	websocketWriteTimeout   = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	WriteBufferSize: 1024,
	ReadBufferSize:  1024,
}

// WebsocketWithdrawHandler upgrades the connection, reads a single withdrawal
// batch request and streams one event per processed withdrawal followed by a
// completion event. Closing the connection cancels the items not yet
// submitted.
func (e *Engine) WebsocketWithdrawHandler(w http.ResponseWriter, r *http.Request) {
	exchName := mux.Vars(r)["exchange"]
	if _, err := e.GetExchangeByName(exchName); err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorln(log.RESTSys, err)
		return
	}
	defer conn.Close()
	log.Debugf(log.RESTSys, "New websocket client connected from %s", conn.RemoteAddr())

	if err := conn.SetReadDeadline(time.Now().Add(websocketRequestTimeout)); err != nil {
		log.Errorln(log.RESTSys, err)
		return
	}
	msgType, msg, err := conn.ReadMessage()
	if err != nil {
		log.Errorf(log.RESTSys, "Websocket client failed to send withdrawal request: %v", err)
		return
	}
	var req APIRequest
	if msgType != websocket.TextMessage || json.Unmarshal(msg, &req) != nil {
		sendWebsocketEvent(conn, &WebsocketEventResponse{Event: WebsocketEventError, Error: ErrStrInvalidBody})
		return
	}
	if req.Key == "" || req.Secret == "" || req.Withdrawals == nil {
		sendWebsocketEvent(conn, &WebsocketEventResponse{Event: WebsocketEventError, Error: ErrStrCredentialsWithdrawalsRequired})
		return
	}
	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		log.Errorln(log.RESTSys, err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		// any read error means the client went away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	results, err := e.BulkWithdraw(ctx, exchName, &req.Credentials, req.Withdrawals, func(i int, res withdraw.Result) {
		sendWebsocketEvent(conn, &WebsocketEventResponse{Event: WebsocketEventResult, Index: i, Result: &res})
	})
	if err != nil {
		sendWebsocketEvent(conn, &WebsocketEventResponse{Event: WebsocketEventError, Error: err.Error()})
		return
	}
	succeeded, failed := withdraw.Summarise(results)
	sendWebsocketEvent(conn, &WebsocketEventResponse{Event: WebsocketEventComplete, Index: len(results), Succeeded: succeeded, Failed: failed})
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(websocketWriteTimeout))
}

func sendWebsocketEvent(conn *websocket.Conn, evt *WebsocketEventResponse) {
	if err := conn.SetWriteDeadline(time.Now().Add(websocketWriteTimeout)); err != nil {
		log.Errorln(log.RESTSys, err)
		return
	}
	if err := conn.WriteJSON(evt); err != nil {
		log.Errorf(log.RESTSys, "Websocket client send failure: %v", err)
	}
}
