// network/connection.go
package network

import (
	"encoding/json"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Connection interface {
	Send(event interface{}) error
	ReadCommand() (*Command, error)
	Close() error
	RemoteAddr() net.Addr
}

// WSConnection 在 websocket 上收发 JSON 文本消息
type WSConnection struct {
	conn      *websocket.Conn
	sendMutex sync.Mutex
}

func NewWSConnection(conn *websocket.Conn) *WSConnection {
	return &WSConnection{conn: conn}
}

func (c *WSConnection) Send(event interface{}) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// ReadCommand reads the next frame and decodes it as a Command. A frame
// that is not valid JSON yields an error the caller may treat as a
// malformed command rather than a dead connection.
func (c *WSConnection) ReadCommand() (*Command, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}

	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, ErrMalformedCommand
	}
	return &cmd, nil
}

func (c *WSConnection) SetHeartbeat(interval time.Duration) {
	c.conn.SetReadDeadline(time.Now().Add(interval * 2))
}

func (c *WSConnection) Close() error {
	return c.conn.Close()
}

func (c *WSConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
