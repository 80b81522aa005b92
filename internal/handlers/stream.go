package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
	"github.com/sbilibin2017/gw-token-ledger/internal/realtime"
)

//go:generate mockgen -source=stream.go -destination=stream_mock.go -package=handlers

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
	streamReadLimit  = 512
)

// Stream message types
const (
	StreamSnapshot = "snapshot"
	StreamUpdate   = "update"
	StreamResync   = "resync"
)

// WalletSubscriber registers observers on the realtime projection.
type WalletSubscriber interface {
	Subscribe(ctx context.Context, userID uuid.UUID) (*realtime.Subscription, realtime.View, error)
}

// StreamMessage is one websocket frame. A resync frame is sent before the server
// drops a subscriber that fell behind; the client reconnects to get a fresh snapshot.
// swagger:model StreamMessage
type StreamMessage struct {
	// snapshot, update or resync
	// default: snapshot
	Type string `json:"type"`

	// Wallet view, absent on resync
	View *realtime.View `json:"view,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewWalletStreamHandler returns a websocket handler streaming wallet changes.
// Browsers pass the token in the access_token query parameter.
// @Summary Stream wallet changes
// @Description Upgrades to a websocket, sends a snapshot and then every balance or history change
// @Tags wallet
// @Param access_token query string false "JWT when headers cannot be set"
// @Success 101 {object} handlers.StreamMessage
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 503 {object} handlers.ErrorResponse "Store unavailable or server shutting down"
// @Router /wallet/stream [get]
// @Security BearerAuth
func NewWalletStreamHandler(subscriber WalletSubscriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userID(w, r)
		if !ok {
			return
		}

		sub, view, err := subscriber.Subscribe(r.Context(), uid)
		if errors.Is(err, realtime.ErrProjectionClosed) {
			writeError(w, http.StatusServiceUnavailable, "Server shutting down")
			return
		}
		if err != nil {
			logger.Log.Errorw("failed to subscribe to wallet", "userID", uid, "error", err)
			writeServiceError(w, err)
			return
		}
		defer sub.Close()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Log.Warnw("websocket upgrade failed", "userID", uid, "error", err)
			return
		}
		defer conn.Close()

		done := make(chan struct{})
		go readUntilClosed(conn, done)

		if err := writeStream(conn, StreamMessage{Type: StreamSnapshot, View: &view}); err != nil {
			return
		}

		ticker := time.NewTicker(streamPingPeriod)
		defer ticker.Stop()

		for {
			select {
			case v, ok := <-sub.Updates():
				if !ok {
					if sub.Overflowed() {
						_ = writeStream(conn, StreamMessage{Type: StreamResync})
						closeStream(conn, websocket.CloseNormalClosure, "")
						return
					}
					// projection closed on server shutdown
					closeStream(conn, websocket.CloseGoingAway, "server shutting down")
					return
				}
				if err := writeStream(conn, StreamMessage{Type: StreamUpdate, View: &v}); err != nil {
					logger.Log.Debugw("wallet stream write failed", "userID", uid, "error", err)
					return
				}
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
					return
				}
			case <-done:
				return
			case <-r.Context().Done():
				closeStream(conn, websocket.CloseGoingAway, "server shutting down")
				return
			}
		}
	}
}

// readUntilClosed drains client frames so pongs and close frames are processed.
func readUntilClosed(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(streamReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeStream(conn *websocket.Conn, msg StreamMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	return conn.WriteJSON(msg)
}

func closeStream(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(streamWriteWait))
}

// RegisterWalletStreamHandler registers the websocket route
func RegisterWalletStreamHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/wallet/stream", h)
}
