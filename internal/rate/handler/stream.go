package handler

import (
	"net/http"
	"strings"
	"time"

	"cryptoquote/internal/domain"
	"cryptoquote/internal/rate"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const streamWriteWait = 10 * time.Second

func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
}

// originChecker applies the same origin list as the CORS layer. "*" admits every origin and
// requests without an Origin header come from non-browser clients and are admitted.
// An empty list leaves gorilla's same-host check in place.
func originChecker(allowedOrigins []string) func(*http.Request) bool {
	if len(allowedOrigins) == 0 {
		return nil
	}
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(o)
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[strings.ToLower(strings.TrimSuffix(o, "/"))] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[strings.ToLower(origin)]
		return ok
	}
}

// StreamRates godoc
// @Summary Live rate table
// @Description Upgrades to a WebSocket that receives the current table immediately and again after every refresh attempt
// @Tags Rates
// @Success 101 {object} rate.SnapshotView
// @Router /api/v1/rates/stream [get]
func (h *Handler) StreamRates(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).WithField("handler", "StreamRates").Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	updates, unsubscribe := h.rates.Subscribe()
	defer unsubscribe()

	// the client never sends anything; reading only notices when it goes away
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	fiat := h.rates.LocalFiat()
	send := func(snap domain.Snapshot) error {
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		return conn.WriteJSON(rate.NewSnapshotView(snap, h.catalog, fiat))
	}

	if err := send(h.rates.Snapshot()); err != nil {
		return
	}
	for {
		select {
		case <-gone:
			return
		case <-r.Context().Done():
			return
		case snap, ok := <-updates:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := send(snap); err != nil {
				logrus.WithError(err).WithField("handler", "StreamRates").Debug("stream client dropped")
				return
			}
		}
	}
}
