package ws

import (
	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/chess/internal/domain"
	"github.com/kiryu-dev/chess/pkg/utils"
	"github.com/pkg/errors"
)

type client struct {
	conn *websocket.Conn
	uuid string
}

func newClient(conn *websocket.Conn, uuid string) client {
	return client{conn: conn, uuid: uuid}
}

func (c client) WriteMessage(msg domain.Message) error {
	data, err := utils.MarshalJson(msg)
	if err != nil {
		return errors.WithMessage(err, "encode message")
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.WithMessage(err, "websocket conn write message")
	}
	return nil
}

func (c client) ReadMessage() (domain.Message, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		// gorilla read errors are permanent, the connection is unusable afterwards
		return domain.Message{}, errors.WithMessage(domain.ErrConnectionClosed, err.Error())
	}
	if len(data) == 0 {
		return domain.Message{}, domain.ErrEmptyMessage
	}
	msg, err := utils.DecodeJson[domain.Message](data)
	if err != nil {
		return domain.Message{}, errors.WithMessage(domain.ErrMalformedMessage, err.Error())
	}
	return msg, nil
}

func (c client) Uuid() string {
	return c.uuid
}

func (c client) Close() {
	_ = c.conn.Close()
}
