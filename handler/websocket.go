package handler

import (
	"context"
	"parking_manager/database"
	"parking_manager/helper"
	"strconv"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

var (
	lotClients = make(map[uint]map[*websocket.Conn]bool)
	lotMu      sync.Mutex
)

// LotAvailabilityWebsocket streams a lot's availability snapshot: once on
// connect, then on every redis publish for that lot (book/release/resize).
func LotAvailabilityWebsocket(c *websocket.Conn) {
	lotIdStr := c.Params("lotId")
	id64, _ := strconv.ParseUint(lotIdStr, 10, 64)
	lotId := uint(id64)

	defer func() {
		lotMu.Lock()
		if lotClients[lotId] != nil {
			delete(lotClients[lotId], c)
		}
		lotMu.Unlock()
		c.Close()
	}()

	lotMu.Lock()
	if lotClients[lotId] == nil {
		lotClients[lotId] = make(map[*websocket.Conn]bool)
	}
	lotClients[lotId][c] = true
	lotMu.Unlock()

	if snapshot, err := helper.LotAvailability(database.DB, lotId); err == nil {
		c.WriteJSON(snapshot)
	}

	if database.Redis == nil {
		return
	}

	pubsub := database.Redis.Subscribe(
		context.Background(),
		helper.LotChannel(lotId),
	)
	defer pubsub.Close()

	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		lotMu.Lock()
		for conn := range lotClients[lotId] {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(lotClients[lotId], conn)
			}
		}
		lotMu.Unlock()
	}
}
