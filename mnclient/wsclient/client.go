// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package wsclient

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vechain/mnreg/api/utils"
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/mnclient/common"
)

type Client struct {
	host   string
	scheme string
}

func NewClient(url string) (*Client, error) {
	var host string
	var scheme string

	if strings.Contains(url, "https://") || strings.Contains(url, "wss://") {
		host = strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "wss://")
		scheme = "wss"
	} else if strings.Contains(url, "http://") || strings.Contains(url, "ws://") {
		host = strings.TrimPrefix(strings.TrimPrefix(url, "http://"), "ws://")
		scheme = "ws"
	} else {
		return nil, fmt.Errorf("invalid url")
	}

	return &Client{
		host:   strings.TrimSuffix(host, "/"),
		scheme: scheme,
	}, nil
}

// Subscription is a live stream of messages. Close ends it and releases the connection.
type Subscription[T any] struct {
	C <-chan common.EventWrapper[*T]

	conn      *websocket.Conn
	done      chan struct{}
	closeOnce sync.Once
}

func (s *Subscription[T]) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

// SubscribeEvents streams registry events, restricted to node when it is not nil.
func (c *Client) SubscribeEvents(node *mn.Address) (*Subscription[utils.Event], error) {
	query := ""
	if node != nil {
		query = "node=" + node.String()
	}
	conn, err := c.connect("/subscriptions/event", query)
	if err != nil {
		return nil, fmt.Errorf("unable to connect - %w", err)
	}
	return subscribe[utils.Event](conn), nil
}

// subscribe reads JSON messages of type T from conn until it fails or the subscription is closed.
func subscribe[T any](conn *websocket.Conn) *Subscription[T] {
	eventChan := make(chan common.EventWrapper[*T])
	sub := &Subscription[T]{
		C:    eventChan,
		conn: conn,
		done: make(chan struct{}),
	}

	go func() {
		defer close(eventChan)
		defer conn.Close()

		for {
			var data T
			var msg common.EventWrapper[*T]
			if err := conn.ReadJSON(&data); err != nil {
				msg.Error = fmt.Errorf("%w: %w", common.ErrUnexpectedMsg, err)
			} else {
				msg.Data = &data
			}

			select {
			case eventChan <- msg:
			case <-sub.done:
				return
			}
			if msg.Error != nil {
				return
			}
		}
	}()
	return sub
}

func (c *Client) connect(endpoint, rawQuery string) (*websocket.Conn, error) {
	u := url.URL{
		Scheme:   c.scheme,
		Host:     c.host,
		Path:     endpoint,
		RawQuery: rawQuery,
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
