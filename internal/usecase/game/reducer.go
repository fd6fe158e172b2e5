package game

import (
	"fmt"

	"github.com/kiryu-dev/chess/internal/domain"
	"github.com/kiryu-dev/chess/internal/engine"
)

func NewState() domain.GameState {
	return domain.GameState{
		Board:  domain.NewStartBoard(),
		Turn:   domain.White,
		Status: domain.InProgress,
	}
}

// Apply handles one "cell selected" event and returns the next state. The input state
// is never modified; ignored input returns it as is.
func Apply(state domain.GameState, pos domain.Position) domain.GameState {
	if state.Status.IsTerminal() || !domain.IsBounded(pos) {
		return state
	}
	if p := state.Board.At(pos); p != nil && p.Color == state.Turn {
		state.Selected = &pos
		state.Highlighted = engine.Moves(state.Board, pos)
		return state
	}
	if state.Selected == nil || !contains(state.Highlighted, pos) {
		return state
	}
	move := domain.Move{Src: *state.Selected, Dst: pos}
	if state.Status == domain.Check && !engine.Escapes(state.Board, move, state.Turn) {
		state.Highlighted = []domain.Position{engine.KingPosition(state.Board, state.Turn)}
		return state
	}
	next, ok := state.Board.Move(move.Src, move.Dst)
	if !ok {
		return state
	}
	return advance(state, next)
}

// advance installs board after a confirmed move and hands the turn over.
func advance(state domain.GameState, board domain.Board) domain.GameState {
	state.Board = board
	state.Turn = state.Turn.Opponent()
	state.Selected = nil
	state.Highlighted = nil
	switch {
	case engine.IsCheckmate(board, state.Turn):
		state.Status = domain.Checkmate
	case engine.IsInCheck(board, state.Turn):
		state.Status = domain.Check
		state.Highlighted = []domain.Position{engine.KingPosition(board, state.Turn)}
	case engine.IsStalemate(board, state.Turn):
		state.Status = domain.Stalemate
	default:
		state.Status = domain.InProgress
	}
	return state
}

func StatusLine(state domain.GameState) string {
	switch state.Status {
	case domain.Checkmate:
		return fmt.Sprintf("CHECKMATE! %s WON!", state.Turn.Opponent())
	case domain.Stalemate:
		return "STALEMATE! DRAW."
	case domain.Check:
		return fmt.Sprintf("%s's Turn., %s's KING is in CHECK!", state.Turn, state.Turn)
	default:
		return fmt.Sprintf("%s's Turn.", state.Turn)
	}
}

func contains(positions []domain.Position, pos domain.Position) bool {
	for _, p := range positions {
		if p == pos {
			return true
		}
	}
	return false
}
