package domain

import (
	"context"
)

type HubUseCase interface {
	Handle(ctx context.Context, client Client) error
	Session(gameUuid string) (*Session, bool)
	Snapshot(session *Session) Snapshot
	ActiveConnections() int64
}
