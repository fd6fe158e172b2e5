package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnknownColor     = errors.New("unknown color")
	ErrUnknownPieceKind = errors.New("unknown piece kind")
	ErrInvalidPosition  = errors.New("invalid position")
)

type Color byte

const (
	White = Color(iota)
	Black
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	switch c {
	case White:
		return "WHITE"
	case Black:
		return "BLACK"
	default:
		return fmt.Sprintf("Color(%d)", c)
	}
}

func (c Color) MarshalText() ([]byte, error) {
	switch c {
	case White:
		return []byte("white"), nil
	case Black:
		return []byte("black"), nil
	default:
		return nil, errors.WithMessagef(ErrUnknownColor, "marshal color %d", c)
	}
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return errors.WithMessagef(ErrUnknownColor, "unmarshal color %q", text)
	}
	return nil
}

type PieceKind byte

const (
	Pawn = PieceKind(iota + 1)
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceKindNames = map[PieceKind]string{
	Pawn:   "pawn",
	Knight: "knight",
	Bishop: "bishop",
	Rook:   "rook",
	Queen:  "queen",
	King:   "king",
}

func (k PieceKind) String() string {
	if name, ok := pieceKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PieceKind(%d)", k)
}

func (k PieceKind) MarshalText() ([]byte, error) {
	name, ok := pieceKindNames[k]
	if !ok {
		return nil, errors.WithMessagef(ErrUnknownPieceKind, "marshal piece kind %d", k)
	}
	return []byte(name), nil
}

func (k *PieceKind) UnmarshalText(text []byte) error {
	for kind, name := range pieceKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return errors.WithMessagef(ErrUnknownPieceKind, "unmarshal piece kind %q", text)
}

// Piece is owned by exactly one board cell. Only Board.Move changes its flags,
// and it does so on the copy it places on the new board.
type Piece struct {
	Color    Color     `json:"color"`
	Kind     PieceKind `json:"kind"`
	HasMoved bool      `json:"has_moved"`
	AtEnd    bool      `json:"at_end"`
}

func NewPiece(color Color, kind PieceKind) *Piece {
	return &Piece{Color: color, Kind: kind}
}

// Symbol is the single-letter notation: uppercase for white, lowercase for black.
func (p Piece) Symbol() byte {
	var s byte
	switch p.Kind {
	case Pawn:
		s = 'P'
	case Knight:
		s = 'N'
	case Bishop:
		s = 'B'
	case Rook:
		s = 'R'
	case Queen:
		s = 'Q'
	case King:
		s = 'K'
	default:
		return '?'
	}
	if p.Color == Black {
		s += 'a' - 'A'
	}
	return s
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// String renders the position in algebraic notation, x as the file and y as the rank.
func (p Position) String() string {
	if !IsBounded(p) {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return fmt.Sprintf("%c%d", 'a'+p.X, p.Y+1)
}

// ParsePosition accepts algebraic notation such as "e4".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, errors.WithMessagef(ErrInvalidPosition, "parse %q", s)
	}
	pos := Position{X: int(s[0] - 'a'), Y: int(s[1] - '1')}
	if !IsBounded(pos) {
		return Position{}, errors.WithMessagef(ErrInvalidPosition, "parse %q", s)
	}
	return pos, nil
}

func IsBounded(p Position) bool {
	return 0 <= p.X && p.X < BoardSize && 0 <= p.Y && p.Y < BoardSize
}

// Move is a (source, destination) pair.
type Move struct {
	Src Position `json:"src"`
	Dst Position `json:"dst"`
}

func (m Move) String() string {
	return m.Src.String() + m.Dst.String()
}
