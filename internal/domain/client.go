package domain

import (
	"github.com/pkg/errors"
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrEmptyMessage     = errors.New("empty message")
	ErrMalformedMessage = errors.New("malformed message")
)

const (
	ClientUuidHeader = "X-Client-Key"
)

type messageType byte

const (
	StartGame = messageType(iota)
	SelectCell
	GameUpdate
)

type Message struct {
	Type    messageType `json:"type"`
	Payload any         `json:"payload"`
}

type StartGamePayload struct {
	ClientUuid string   `json:"client_uuid"`
	Snapshot   Snapshot `json:"snapshot"`
}

type SelectCellPayload struct {
	Position Position `json:"position"`
}

type GameUpdatePayload struct {
	Snapshot Snapshot `json:"snapshot"`
}

type Client interface {
	WriteMessage(msg Message) error
	ReadMessage() (Message, error)
	Uuid() string
}
