// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vechain/mnreg/api/utils"
	"github.com/vechain/mnreg/log"
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/runtime"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 7) / 10
)

type Subscriptions struct {
	rt       *runtime.Runtime
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       sync.WaitGroup
}

func New(rt *runtime.Runtime, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		rt: rt,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				origin = strings.ToLower(origin)
				for _, allowed := range allowedOrigins {
					if allowed == origin || allowed == "*" {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

func (s *Subscriptions) handleSubscribeEvents(w http.ResponseWriter, req *http.Request) error {
	var filter *mn.Address
	if v := req.URL.Query().Get("node"); v != "" {
		node, err := utils.ParseAddress(v, "node")
		if err != nil {
			return err
		}
		filter = &node
	}

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader has replied already
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	s.wg.Add(1)
	defer s.wg.Done()
	defer conn.Close()

	if err := s.pipe(conn, filter); err != nil {
		logger.Debug("subscription closed", "remote", req.RemoteAddr, "err", err)
	}
	return nil
}

// pipe streams events to conn until the peer goes away or the service closes.
func (s *Subscriptions) pipe(conn *websocket.Conn, filter *mn.Address) error {
	ch := make(chan *runtime.Event, 128)
	sub := s.rt.SubscribeEvent(ch)
	defer sub.Unsubscribe()

	closed := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case ev := <-ch:
			msg := utils.ConvertEvent(ev)
			if filter != nil && msg.Node != *filter {
				continue
			}
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := conn.WriteJSON(msg); err != nil {
				return err
			}
		case err := <-sub.Err():
			return err
		case <-pingTicker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		case <-closed:
			return nil
		case <-s.done:
			return conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(writeWait))
		}
	}
}

// Close ends all open subscriptions and waits for their handlers to return.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/event").
		Methods(http.MethodGet).
		Name("WS /subscriptions/event").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeEvents))
}
