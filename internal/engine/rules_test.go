package engine

import (
	"math/rand"
	"testing"

	"github.com/kiryu-dev/chess/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(x, y int) domain.Position {
	return domain.Position{X: x, Y: y}
}

func TestPawnMoves(t *testing.T) {
	tests := []struct {
		name   string
		pieces map[domain.Position]domain.Piece
		from   domain.Position
		want   []domain.Position
	}{
		{
			name:   "white double step from start",
			pieces: map[domain.Position]domain.Piece{pos(4, 1): {Color: domain.White, Kind: domain.Pawn}},
			from:   pos(4, 1),
			want:   []domain.Position{pos(4, 2), pos(4, 3)},
		},
		{
			name:   "black moves toward decreasing y",
			pieces: map[domain.Position]domain.Piece{pos(2, 6): {Color: domain.Black, Kind: domain.Pawn}},
			from:   pos(2, 6),
			want:   []domain.Position{pos(2, 5), pos(2, 4)},
		},
		{
			name:   "moved pawn steps once",
			pieces: map[domain.Position]domain.Piece{pos(4, 3): {Color: domain.White, Kind: domain.Pawn, HasMoved: true}},
			from:   pos(4, 3),
			want:   []domain.Position{pos(4, 4)},
		},
		{
			name: "blocked directly ahead",
			pieces: map[domain.Position]domain.Piece{
				pos(4, 1): {Color: domain.White, Kind: domain.Pawn},
				pos(4, 2): {Color: domain.Black, Kind: domain.Knight},
			},
			from: pos(4, 1),
			want: nil,
		},
		{
			name: "second cell blocked",
			pieces: map[domain.Position]domain.Piece{
				pos(4, 1): {Color: domain.White, Kind: domain.Pawn},
				pos(4, 3): {Color: domain.White, Kind: domain.Knight},
			},
			from: pos(4, 1),
			want: []domain.Position{pos(4, 2)},
		},
		{
			name: "captures diagonally forward only opponents",
			pieces: map[domain.Position]domain.Piece{
				pos(4, 4): {Color: domain.White, Kind: domain.Pawn, HasMoved: true},
				pos(3, 5): {Color: domain.Black, Kind: domain.Rook},
				pos(5, 5): {Color: domain.White, Kind: domain.Rook},
				pos(3, 3): {Color: domain.Black, Kind: domain.Rook},
			},
			from: pos(4, 4),
			want: []domain.Position{pos(3, 5), pos(4, 5)},
		},
		{
			name:   "edge file capture stays on board",
			pieces: map[domain.Position]domain.Piece{pos(0, 6): {Color: domain.Black, Kind: domain.Pawn, HasMoved: true}},
			from:   pos(0, 6),
			want:   []domain.Position{pos(0, 5)},
		},
		{
			name:   "last rank has nowhere to go",
			pieces: map[domain.Position]domain.Piece{pos(3, 7): {Color: domain.White, Kind: domain.Pawn, HasMoved: true}},
			from:   pos(3, 7),
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := domain.NewBoard(tt.pieces)
			assert.Equal(t, tt.want, Moves(board, tt.from))
		})
	}
}

func TestPawnDoubleStepOnlyBeforeFirstMove(t *testing.T) {
	board := domain.NewStartBoard()
	assert.Contains(t, Moves(board, pos(3, 1)), pos(3, 3))

	board, ok := board.Move(pos(3, 1), pos(3, 2))
	require.True(t, ok)
	got := Moves(board, pos(3, 2))
	assert.Equal(t, []domain.Position{pos(3, 3)}, got)
	assert.NotContains(t, got, pos(3, 4))
}

func TestKnightMoves(t *testing.T) {
	board := domain.NewStartBoard()
	assert.ElementsMatch(t, []domain.Position{pos(0, 2), pos(2, 2)}, Moves(board, pos(1, 0)))

	board = domain.NewBoard(map[domain.Position]domain.Piece{
		pos(3, 3): {Color: domain.Black, Kind: domain.Knight},
		pos(4, 5): {Color: domain.Black, Kind: domain.Pawn},
		pos(5, 4): {Color: domain.White, Kind: domain.Pawn},
	})
	assert.ElementsMatch(t, []domain.Position{
		pos(2, 1), pos(4, 1), pos(2, 5),
		pos(1, 2), pos(1, 4), pos(5, 4), pos(5, 2),
	}, Moves(board, pos(3, 3)))
}

func TestSlidingMoves(t *testing.T) {
	board := domain.NewBoard(map[domain.Position]domain.Piece{
		pos(0, 0): {Color: domain.White, Kind: domain.Rook},
		pos(0, 2): {Color: domain.White, Kind: domain.Pawn},
		pos(3, 0): {Color: domain.Black, Kind: domain.Bishop},
	})
	assert.ElementsMatch(t, []domain.Position{pos(1, 0), pos(2, 0), pos(3, 0), pos(0, 1)}, Moves(board, pos(0, 0)))
	assert.ElementsMatch(t, []domain.Position{
		pos(2, 1), pos(1, 2), pos(0, 3),
		pos(4, 1), pos(5, 2), pos(6, 3), pos(7, 4),
	}, Moves(board, pos(3, 0)))
}

func TestQueenIsRookPlusBishop(t *testing.T) {
	board := domain.NewBoard(map[domain.Position]domain.Piece{
		pos(3, 3): {Color: domain.White, Kind: domain.Queen},
		pos(5, 5): {Color: domain.Black, Kind: domain.Pawn},
	})
	rook := domain.NewBoard(map[domain.Position]domain.Piece{
		pos(3, 3): {Color: domain.White, Kind: domain.Rook},
		pos(5, 5): {Color: domain.Black, Kind: domain.Pawn},
	})
	bishop := domain.NewBoard(map[domain.Position]domain.Piece{
		pos(3, 3): {Color: domain.White, Kind: domain.Bishop},
		pos(5, 5): {Color: domain.Black, Kind: domain.Pawn},
	})
	want := append(Moves(rook, pos(3, 3)), Moves(bishop, pos(3, 3))...)
	assert.Equal(t, want, Moves(board, pos(3, 3)))
	assert.Len(t, want, 14+11)
}

func TestKingMovesIgnoreAttacks(t *testing.T) {
	board := domain.NewBoard(map[domain.Position]domain.Piece{
		pos(4, 0): {Color: domain.White, Kind: domain.King},
		pos(3, 0): {Color: domain.White, Kind: domain.Queen},
		pos(5, 7): {Color: domain.Black, Kind: domain.Rook},
	})
	// (5,0) and (5,1) are covered by the rook but still listed.
	assert.ElementsMatch(t, []domain.Position{pos(5, 0), pos(3, 1), pos(4, 1), pos(5, 1)}, Moves(board, pos(4, 0)))
}

func TestMovesOnEmptyCell(t *testing.T) {
	assert.Nil(t, Moves(domain.NewStartBoard(), pos(4, 4)))
}

func TestMovesPanicsOnUnknownKind(t *testing.T) {
	board := domain.NewBoard(map[domain.Position]domain.Piece{
		pos(1, 1): {Color: domain.White, Kind: domain.PieceKind(42)},
	})
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrInvalidPieceKind)
	}()
	Moves(board, pos(1, 1))
}

// randomBoards plays seeded random candidate moves from the opening position.
func randomBoards(t *testing.T, games, plies int) []domain.Board {
	t.Helper()
	rnd := rand.New(rand.NewSource(7))
	var boards []domain.Board
	for g := 0; g < games; g++ {
		board := domain.NewStartBoard()
		color := domain.White
		for i := 0; i < plies; i++ {
			moves := CandidateMoves(board, color)
			if len(moves) == 0 {
				break
			}
			m := moves[rnd.Intn(len(moves))]
			next, ok := board.Move(m.Src, m.Dst)
			if !ok {
				continue
			}
			board = next
			color = color.Opponent()
			boards = append(boards, board)
		}
	}
	return boards
}

func TestDestinationsStayOnBoardAndSkipOwnPieces(t *testing.T) {
	for _, board := range randomBoards(t, 20, 60) {
		for _, color := range []domain.Color{domain.White, domain.Black} {
			for _, src := range board.ColorPositions(color) {
				for _, dst := range Moves(board, src) {
					require.True(t, domain.IsBounded(dst), "%s -> %s off board\n%s", src, dst, board)
					if p := board.At(dst); p != nil {
						require.NotEqual(t, color, p.Color, "%s -> %s hits own piece\n%s", src, dst, board)
					}
				}
			}
		}
	}
}
