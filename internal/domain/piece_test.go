package domain

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPieceJson(t *testing.T) {
	data, err := jsoniter.Marshal(Piece{Color: Black, Kind: Knight, HasMoved: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"color":"black","kind":"knight","has_moved":true,"at_end":false}`, string(data))

	var p Piece
	require.NoError(t, jsoniter.Unmarshal([]byte(`{"color":"white","kind":"queen"}`), &p))
	assert.Equal(t, Piece{Color: White, Kind: Queen}, p)

	err = jsoniter.Unmarshal([]byte(`{"color":"green","kind":"queen"}`), &p)
	assert.Error(t, err)
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, byte('N'), Piece{Color: White, Kind: Knight}.Symbol())
	assert.Equal(t, byte('k'), Piece{Color: Black, Kind: King}.Symbol())
	assert.Equal(t, byte('?'), Piece{Color: Black}.Symbol())
}

func TestOpponent(t *testing.T) {
	assert.Equal(t, Black, White.Opponent())
	assert.Equal(t, White, Black.Opponent())
	assert.Equal(t, "WHITE", White.String())
}
