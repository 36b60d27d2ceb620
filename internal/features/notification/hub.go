package notification

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Hub tracks live websocket connections per user so notifications can be
// pushed as they are created. A user may hold several connections (tabs).
type Hub struct {
	mu     sync.RWMutex
	conns  map[primitive.ObjectID]map[*websocket.Conn]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[primitive.ObjectID]map[*websocket.Conn]struct{}),
		logger: logger,
	}
}

func (h *Hub) Register(userID primitive.ObjectID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]struct{})
	}
	h.conns[userID][conn] = struct{}{}
}

func (h *Hub) Unregister(userID primitive.ObjectID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.conns[userID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
}

// Push sends a notification to every live connection of the user. Send
// failures are logged and the connection is left for the read loop to reap.
func (h *Hub) Push(userID primitive.ObjectID, n *Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		h.logger.Error("failed to marshal notification", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.conns[userID] {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Warn("failed to push notification",
				zap.String("userId", userID.Hex()),
				zap.Error(err))
		}
	}
}
