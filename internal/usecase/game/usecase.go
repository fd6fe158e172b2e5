package game

import (
	"context"

	"github.com/kiryu-dev/chess/internal/domain"
	"github.com/kiryu-dev/chess/pkg/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type useCase struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) useCase {
	return useCase{
		logger: logger,
	}
}

// Play drives one session: every SelectCell message from the client is run through
// Apply and answered with a fresh snapshot. It returns once the game is over, the
// client goes away or ctx is done.
func (u useCase) Play(ctx context.Context, client domain.Client, session *domain.Session) error {
	if err := u.startGame(client, session); err != nil {
		return errors.WithMessage(err, "start game")
	}
	if session.IsFinished() {
		return nil
	}
	for {
		if err := ctx.Err(); err != nil {
			return errors.WithMessage(err, "play game")
		}
		pos, err := receiveSelectedCell(client)
		switch {
		case errors.Is(err, domain.ErrConnectionClosed):
			u.logger.Info("client disconnected", zap.String("game uuid", session.Uuid()))
			return nil
		case errors.Is(err, errInvalidSelectedPosition), errors.Is(err, errUnexpectedMessageType),
			errors.Is(err, domain.ErrEmptyMessage), errors.Is(err, domain.ErrMalformedMessage):
			u.logger.Debug("ignoring client input", zap.String("game uuid", session.Uuid()), zap.Error(err))
			continue
		case err != nil:
			return errors.WithMessage(err, "receive selected cell")
		}
		prev, next := session.Update(func(state domain.GameState) domain.GameState {
			return Apply(state, pos)
		})
		if next.Turn != prev.Turn {
			u.logger.Info("move played",
				zap.String("game uuid", session.Uuid()),
				zap.Stringer("move", domain.Move{Src: *prev.Selected, Dst: pos}),
				zap.Stringer("status", next.Status),
			)
		}
		err = client.WriteMessage(domain.Message{
			Type:    domain.GameUpdate,
			Payload: domain.GameUpdatePayload{Snapshot: u.Snapshot(session)},
		})
		if err != nil {
			return errors.WithMessage(err, "send game update")
		}
		if next.Status.IsTerminal() {
			u.logger.Info("game finished",
				zap.String("game uuid", session.Uuid()),
				zap.String("result", StatusLine(next)),
			)
			return nil
		}
	}
}

func (u useCase) Snapshot(session *domain.Session) domain.Snapshot {
	state := session.State()
	highlighted := make([]domain.Position, len(state.Highlighted))
	copy(highlighted, state.Highlighted)
	return domain.Snapshot{
		GameUuid:    session.Uuid(),
		Board:       state.Board.Rows(),
		Turn:        state.Turn,
		Status:      state.Status,
		Selected:    state.Selected,
		Highlighted: highlighted,
		StatusLine:  StatusLine(state),
	}
}

func (u useCase) startGame(client domain.Client, session *domain.Session) error {
	err := client.WriteMessage(domain.Message{
		Type: domain.StartGame,
		Payload: domain.StartGamePayload{
			ClientUuid: session.ClientUuid(),
			Snapshot:   u.Snapshot(session),
		},
	})
	if err != nil {
		return errors.WithMessage(err, "send message to client")
	}
	return nil
}

func receiveSelectedCell(client domain.Client) (domain.Position, error) {
	msg, err := client.ReadMessage()
	if err != nil {
		return domain.Position{}, errors.WithMessage(err, "read message from client")
	}
	if msg.Type != domain.SelectCell {
		return domain.Position{}, errors.WithMessagef(errUnexpectedMessageType, "type %d", msg.Type)
	}
	v, err := utils.UnmarshalJson[domain.SelectCellPayload](msg.Payload)
	if err != nil {
		return domain.Position{}, errors.WithMessagef(errInvalidSelectedPosition, "decode payload: %v", err)
	}
	if !domain.IsBounded(v.Position) {
		return domain.Position{}, errors.WithMessagef(errInvalidSelectedPosition,
			"cell %v is off the board", v.Position)
	}
	return v.Position, nil
}
