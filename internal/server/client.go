package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"isoworld/pkg/api"
	"isoworld/pkg/logger"
	"isoworld/pkg/utils"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между WebSocket консоли и движком.
// Получает снимки кадров из хаба и отправляет команды в очередь движка.
type Client struct {
	ID     string
	Server *Server
	Conn   *websocket.Conn
	// Send принимает api.FrameSnapshot и api.CommandResult
	Send chan any
}

func NewClient(s *Server, conn *websocket.Conn) *Client {
	return &Client{
		ID:     utils.GenerateID(),
		Server: s,
		Conn:   conn,
		Send:   make(chan any, 256),
	}
}

func (c *Client) log() *logrus.Entry {
	return logger.Log.WithField("client_id", c.ID)
}

// readPump подписывает клиента на снимки и читает его команды
func (c *Client) readPump() {
	updates := c.Server.Hub.Register(c.ID)
	c.log().Info("Console connected")

	// Пересылка снимков из хаба в writePump. Send закрывается,
	// когда хаб закрывает канал подписчика в Unregister.
	go func() {
		for snap := range updates {
			select {
			case c.Send <- snap:
			default:
			}
		}
		close(c.Send)
	}()

	defer func() {
		c.Server.Hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			c.log().WithError(err).Debug("failed to close websocket connection")
		}
		c.log().Info("Console disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log().WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg api.ClientCommand
		if err := c.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log().WithError(err).Warn("WS read error")
			}
			return
		}
		c.reply(c.handle(msg))
	}
}

func (c *Client) handle(msg api.ClientCommand) api.CommandResult {
	cmd, err := toCommand(msg)
	if err == nil {
		err = c.Server.dispatch(context.Background(), cmd)
	}
	if err != nil {
		c.log().WithFields(logrus.Fields{
			"action": msg.Action,
		}).WithError(err).Info("Console command rejected")
	}
	return resultOf(msg.Action, err)
}

func (c *Client) reply(res api.CommandResult) {
	select {
	case c.Send <- res:
	default:
		c.log().Warn("send buffer full, dropping command result")
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log().WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log().WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log().WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log().WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log().WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
