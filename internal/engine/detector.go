package engine

import (
	"github.com/kiryu-dev/chess/internal/domain"
	"github.com/pkg/errors"
)

// KingPosition returns the first king of color found in scan order.
func KingPosition(board domain.Board, color domain.Color) domain.Position {
	kings := board.Where(domain.King, color)
	if len(kings) == 0 {
		panic(errors.WithMessagef(ErrKingNotFound, "color %s", color))
	}
	return kings[0]
}

// IsInCheck reports whether any opposing piece has color's king among its destinations.
func IsInCheck(board domain.Board, color domain.Color) bool {
	king := KingPosition(board, color)
	for _, pos := range board.ColorPositions(color.Opponent()) {
		for _, dst := range Moves(board, pos) {
			if dst == king {
				return true
			}
		}
	}
	return false
}

// CandidateMoves enumerates every (source, destination) pair available to color,
// in ColorPositions order and then per-piece destination order.
func CandidateMoves(board domain.Board, color domain.Color) []domain.Move {
	var moves []domain.Move
	for _, src := range board.ColorPositions(color) {
		for _, dst := range Moves(board, src) {
			moves = append(moves, domain.Move{Src: src, Dst: dst})
		}
	}
	return moves
}

// IsCheckmate reports whether color is in check and every candidate move leaves it so.
// Candidates the board refuses to play (capturing a king) cannot escape.
func IsCheckmate(board domain.Board, color domain.Color) bool {
	if !IsInCheck(board, color) {
		return false
	}
	for _, m := range CandidateMoves(board, color) {
		next, ok := board.Move(m.Src, m.Dst)
		if !ok {
			continue
		}
		if !IsInCheck(next, color) {
			return false
		}
	}
	return true
}

// IsStalemate reports whether color is not in check and has no candidate moves at all.
// Candidates are not tested for self-check.
func IsStalemate(board domain.Board, color domain.Color) bool {
	if IsInCheck(board, color) {
		return false
	}
	return len(CandidateMoves(board, color)) == 0
}

// Escapes reports whether playing m on board leaves color's king unattacked.
func Escapes(board domain.Board, m domain.Move, color domain.Color) bool {
	next, ok := board.Move(m.Src, m.Dst)
	if !ok {
		return false
	}
	return !IsInCheck(next, color)
}
