package engine

import (
	"github.com/kiryu-dev/chess/internal/domain"
	"github.com/pkg/errors"
)

var (
	ErrInvalidPieceKind = errors.New("invalid piece kind")
	ErrKingNotFound     = errors.New("king not found")
)

var (
	knightOffsets = [8][2]int{
		{-1, -2}, {1, -2}, {-1, 2}, {1, 2},
		{-2, -1}, {-2, 1}, {2, 1}, {2, -1},
	}
	kingOffsets = [8][2]int{
		{0, -1}, {0, 1}, {-1, 0}, {1, 0},
		{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
	}
	rookDirections   = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDirections = [4][2]int{{-1, -1}, {1, 1}, {-1, 1}, {1, -1}}
)

// Moves returns the destinations the piece at pos may reach under its movement rule.
// It does not prune moves that leave the mover's own king attacked. An empty cell
// yields nil.
func Moves(board domain.Board, pos domain.Position) []domain.Position {
	p := board.At(pos)
	if p == nil {
		return nil
	}
	switch p.Kind {
	case domain.Pawn:
		return pawn(board, pos)
	case domain.Knight:
		return jumps(board, pos, knightOffsets)
	case domain.Bishop:
		return slides(board, pos, bishopDirections)
	case domain.Rook:
		return slides(board, pos, rookDirections)
	case domain.Queen:
		return append(slides(board, pos, rookDirections), slides(board, pos, bishopDirections)...)
	case domain.King:
		return jumps(board, pos, kingOffsets)
	default:
		panic(errors.WithMessagef(ErrInvalidPieceKind, "piece %s at %s", p.Kind, pos))
	}
}

// forward is the y direction pawns of color advance in.
func forward(color domain.Color) int {
	if color == domain.Black {
		return -1
	}
	return 1
}

func pawn(board domain.Board, pos domain.Position) []domain.Position {
	p := board.At(pos)
	f := forward(p.Color)

	var moves []domain.Position
	for _, dx := range [2]int{-1, 1} {
		capture := pos.Add(dx, f)
		if !domain.IsBounded(capture) {
			continue
		}
		if other := board.At(capture); other != nil && other.Color != p.Color {
			moves = append(moves, capture)
		}
	}

	one := pos.Add(0, f)
	if !domain.IsBounded(one) || !board.IsEmptyAt(one) {
		return moves
	}
	moves = append(moves, one)
	two := pos.Add(0, 2*f)
	if !p.HasMoved && domain.IsBounded(two) && board.IsEmptyAt(two) {
		moves = append(moves, two)
	}
	return moves
}

func jumps(board domain.Board, pos domain.Position, offsets [8][2]int) []domain.Position {
	p := board.At(pos)
	moves := make([]domain.Position, 0, len(offsets))
	for _, o := range offsets {
		dst := pos.Add(o[0], o[1])
		if !domain.IsBounded(dst) {
			continue
		}
		if other := board.At(dst); other == nil || other.Color != p.Color {
			moves = append(moves, dst)
		}
	}
	return moves
}

func slides(board domain.Board, pos domain.Position, directions [4][2]int) []domain.Position {
	var moves []domain.Position
	for _, d := range directions {
		moves = append(moves, board.ReachableMovesInDirection(pos, d[0], d[1])...)
	}
	return moves
}
