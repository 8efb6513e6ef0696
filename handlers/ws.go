package handlers

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/LovationAdmin/pcease-api/models"
	"github.com/LovationAdmin/pcease-api/utils"
)

const threadKey = "thread_id"

// ForumHub pushes forum events to WebSocket subscribers. A session opened on
// /ws/threads sees every event; one opened on /ws/threads/:id only sees
// events for that thread.
type ForumHub struct {
	M *melody.Melody
}

func NewForumHub() *ForumHub {
	m := melody.New()

	// Subscribers only listen; inbound frames are small pings at most.
	m.Config.MaxMessageSize = 4 * 1024

	// Keep-alive for proxies that drop idle connections
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		utils.LogWebSocket("connected", sessionThread(s), m.Len())
	})

	m.HandleDisconnect(func(s *melody.Session) {
		utils.LogWebSocket("disconnected", sessionThread(s), m.Len())
	})

	m.HandleError(func(s *melody.Session, err error) {
		utils.SafeWarn("[WS] session error: %v", err)
	})

	return &ForumHub{M: m}
}

func sessionThread(s *melody.Session) string {
	v, _ := s.Get(threadKey)
	id, _ := v.(string)
	return id
}

// HandleWS upgrades the request. The thread id, if any, comes from the path.
func (h *ForumHub) HandleWS(c *gin.Context) {
	keys := map[string]any{threadKey: c.Param("id")}
	if err := h.M.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		utils.SafeError("[WS] failed to upgrade websocket: %v", err)
	}
}

// Publish implements services.EventPublisher.
func (h *ForumHub) Publish(event models.ForumEvent) {
	msg, err := json.Marshal(event)
	if err != nil {
		utils.SafeError("[WS] encode event: %v", err)
		return
	}
	err = h.M.BroadcastFilter(msg, func(s *melody.Session) bool {
		sub := sessionThread(s)
		return sub == "" || sub == event.ThreadID
	})
	if err != nil {
		utils.SafeWarn("[WS] broadcast %s for thread %s: %v", event.Type, event.ThreadID, err)
	}
}

func (h *ForumHub) Close() error {
	return h.M.Close()
}
