package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/stemsi/lessonlab-backend/internal/events"
	ws "github.com/stemsi/lessonlab-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allow-list permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live verification verdicts over WebSocket.
type WSHandler struct {
	bus      *events.Bus
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(bus *events.Bus, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		bus:      bus,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// VerificationStream godoc
// WS /ws/v1/users/:user_id/verifications/stream
// Upgrades to WebSocket and pushes each case verdict as it lands, followed
// by a run_completed event carrying the updated grade.
func (h *WSHandler) VerificationStream(c *gin.Context) {
	id := c.Param("user_id")
	if id == "" || len(id) > 128 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("user_id", id).Logger()
	wsLog.Info().Msg("Verification stream connected")

	ch, cancel := h.bus.Subscribe(id)
	defer cancel()

	// Reader goroutine: answers pings and detects the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}

			switch msg.Action {
			case ws.ActionPing:
				ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			default:
				wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
				ws.WriteError(conn, "unknown action: "+string(msg.Action))
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := h.writeEvent(conn, ev); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed, dropping stream")
				return
			}
		}
	}
}

func (h *WSHandler) writeEvent(conn *websocket.Conn, ev events.VerificationEvent) error {
	switch ev.Type {
	case events.TypeCaseResult:
		return ws.WriteTyped(conn, ws.CaseResultResponse{
			Event:     ws.EventCaseResult,
			CaseIndex: ev.CaseIndex,
			CaseCount: ev.CaseCount,
			Case:      ev.Case,
		})
	case events.TypeRunCompleted:
		return ws.WriteTyped(conn, ws.RunCompletedResponse{
			Event: ws.EventRunCompleted,
			Grade: ev.Grade,
		})
	default:
		return nil
	}
}
