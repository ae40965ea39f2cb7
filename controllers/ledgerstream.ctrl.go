package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/familyfin/ledgerhub/db/models"
	"github.com/familyfin/ledgerhub/lib/responses"
	"github.com/familyfin/ledgerhub/lib/service"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// LedgerStreamController pushes committed ledger changes to websocket clients.
type LedgerStreamController struct {
	svc *service.LedgerService
}

type LedgerEventWrapper struct {
	Type  string              `json:"type"`
	Event *models.LedgerEvent `json:"event,omitempty"`
}

func NewLedgerStreamController(svc *service.LedgerService) *LedgerStreamController {
	return &LedgerStreamController{svc: svc}
}

// StreamEvents streams ledger events of one account, or of all accounts when
// no account_id is given.
func (controller *LedgerStreamController) StreamEvents(c echo.Context) error {
	topic := service.AllAccountsTopic
	if raw := c.QueryParam("account_id"); raw != "" {
		accountID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || accountID <= 0 {
			return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
		}
		topic = accountID
	}
	eventChan := make(chan models.LedgerEvent, 16)
	subId := controller.svc.LedgerPubSub.Subscribe(topic, eventChan)
	defer controller.svc.LedgerPubSub.Unsubscribe(subId, topic)

	upgrader := websocket.Upgrader{}
	upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	//start listening for close messages
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, _, err := ws.ReadMessage()
			if err != nil {
				return
			}
		}
	}()

	//start with keepalive message
	if err := ws.WriteJSON(&LedgerEventWrapper{Type: "keepalive"}); err != nil {
		controller.svc.Logger.Error(err)
		return nil
	}
SocketLoop:
	for {
		select {
		case <-done:
			break SocketLoop
		case <-ticker.C:
			if err := ws.WriteJSON(&LedgerEventWrapper{Type: "keepalive"}); err != nil {
				controller.svc.Logger.Error(err)
				break SocketLoop
			}
		case event := <-eventChan:
			if err := ws.WriteJSON(&LedgerEventWrapper{Type: "event", Event: &event}); err != nil {
				controller.svc.Logger.Error(err)
				break SocketLoop
			}
		}
	}
	return nil
}
