package domain

import (
	"strings"
)

const BoardSize = 8

// Board is an 8x8 grid indexed as cells[y][x]. A nil cell is empty.
type Board struct {
	cells [BoardSize][BoardSize]*Piece
}

var backRank = [BoardSize]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStartBoard returns the standard opening arrangement: white on ranks 0-1,
// black on ranks 6-7.
func NewStartBoard() Board {
	var b Board
	for x, kind := range backRank {
		b.cells[0][x] = NewPiece(White, kind)
		b.cells[1][x] = NewPiece(White, Pawn)
		b.cells[6][x] = NewPiece(Black, Pawn)
		b.cells[7][x] = NewPiece(Black, kind)
	}
	return b
}

// NewBoard builds a board from a placement map. Pieces are copied.
func NewBoard(pieces map[Position]Piece) Board {
	var b Board
	for pos, p := range pieces {
		if !IsBounded(pos) {
			continue
		}
		p := p
		b.cells[pos.Y][pos.X] = &p
	}
	return b
}

// At does no bounds checking, callers use IsBounded first.
func (b Board) At(pos Position) *Piece {
	return b.cells[pos.Y][pos.X]
}

func (b *Board) SetAt(pos Position, p *Piece) {
	b.cells[pos.Y][pos.X] = p
}

func (b Board) IsBounded(pos Position) bool {
	return IsBounded(pos)
}

func (b Board) IsEmptyAt(pos Position) bool {
	return b.At(pos) == nil
}

// ReachableMovesInDirection walks from pos along (dx, dy) and stops at the first
// occupied cell, which is included only when it holds an opposing piece.
func (b Board) ReachableMovesInDirection(pos Position, dx, dy int) []Position {
	p := b.At(pos)
	if p == nil {
		return nil
	}
	var moves []Position
	for i := 1; i < BoardSize; i++ {
		next := pos.Add(i*dx, i*dy)
		if !IsBounded(next) {
			break
		}
		if other := b.At(next); other != nil {
			if other.Color != p.Color {
				moves = append(moves, next)
			}
			break
		}
		moves = append(moves, next)
	}
	return moves
}

// ColorPositions lists the cells holding pieces of color in row-major order, row 0 first.
func (b Board) ColorPositions(color Color) []Position {
	var positions []Position
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if p := b.cells[y][x]; p != nil && p.Color == color {
				positions = append(positions, Position{X: x, Y: y})
			}
		}
	}
	return positions
}

func (b Board) Where(kind PieceKind, color Color) []Position {
	var positions []Position
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if p := b.cells[y][x]; p != nil && p.Color == color && p.Kind == kind {
				positions = append(positions, Position{X: x, Y: y})
			}
		}
	}
	return positions
}

// Clone deep-copies every piece so the result shares nothing with b.
func (b Board) Clone() Board {
	var c Board
	for y := range b.cells {
		for x, p := range b.cells[y] {
			if p != nil {
				cp := *p
				c.cells[y][x] = &cp
			}
		}
	}
	return c
}

// Move returns a new board with the piece at src moved to dst. The receiver is left
// untouched. It reports false, and returns no board, when dst holds a king or src is empty.
func (b Board) Move(src, dst Position) (Board, bool) {
	if target := b.At(dst); target != nil && target.Kind == King {
		return Board{}, false
	}
	if b.IsEmptyAt(src) {
		return Board{}, false
	}
	next := b.Clone()
	p := next.At(src)
	next.SetAt(src, nil)
	next.SetAt(dst, p)

	p.HasMoved = true
	if dst.Y == 0 || dst.Y == BoardSize-1 {
		p.AtEnd = true
		if p.Kind == Pawn {
			p.Kind = Queen
		}
	}
	return next, true
}

// Rows returns a deep copy of the grid, indexed [y][x].
func (b Board) Rows() [BoardSize][BoardSize]*Piece {
	return b.Clone().cells
}

// String draws the board with rank 7 on top.
func (b Board) String() string {
	var sb strings.Builder
	for y := BoardSize - 1; y >= 0; y-- {
		sb.WriteByte(byte('1' + y))
		sb.WriteByte(' ')
		for x := 0; x < BoardSize; x++ {
			if p := b.cells[y][x]; p != nil {
				sb.WriteByte(p.Symbol())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	return sb.String()
}
