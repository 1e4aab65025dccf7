package common

import (
	"fmt"
	"time"
)

// Cell is the boundary encoding of a single square.
type Cell int

const (
	Empty Cell = iota
	BlackDisc
	WhiteDisc
)

// Color uses the same codes as the discs it owns.
type Color int

const (
	NoColor Color = 0
	Black   Color = 1
	White   Color = 2
)

func (c Color) Opponent() Color {
	return Black + White - c
}

func (c Color) IsValid() bool {
	return c == Black || c == White
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "none"
}

func ParseColor(code int) (Color, error) {
	var c = Color(code)
	if !c.IsValid() {
		return NoColor, fmt.Errorf("%w: %v", ErrInvalidColor, code)
	}
	return c, nil
}

// Upper bound on legal placements in one position.
const MaxMoves = 64

// Move is a placement square shifted by one, a pass, or nothing.
type Move int32

const (
	MoveEmpty Move = 0
	MovePass  Move = SquareCount + 1
)

func MakePlacement(sq int) Move {
	return Move(sq + 1)
}

func (m Move) IsPlacement() bool {
	return m > MoveEmpty && m < MovePass
}

func (m Move) IsPass() bool {
	return m == MovePass
}

// Square is SquareNone unless m is a placement.
func (m Move) Square() int {
	if !m.IsPlacement() {
		return SquareNone
	}
	return int(m) - 1
}

func (m Move) String() string {
	switch {
	case m == MoveEmpty:
		return "none"
	case m == MovePass:
		return "pass"
	case m.IsPlacement():
		return SquareName(m.Square())
	}
	return fmt.Sprintf("move(%d)", int32(m))
}

func ParseMove(s string) (Move, error) {
	switch s {
	case "pass", "PASS", "ps":
		return MovePass, nil
	case "none", "0000":
		return MoveEmpty, nil
	}
	var sq = ParseSquare(s)
	if sq == SquareNone {
		return MoveEmpty, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	return MakePlacement(sq), nil
}

// Rules carries the rule parameters that depend on TurnDepth.
// MoveLimit > 0 ends the game once TurnDepth reaches it.
type Rules struct {
	MoveLimit int
}

func (r Rules) Expired(turnDepth int) bool {
	return r.MoveLimit > 0 && turnDepth >= r.MoveLimit
}

type SearchParams struct {
	Position Position
	Side     Color
	Depth    int
}

// SearchResult is the outcome of one root search. Move is MoveEmpty when the
// root was a leaf (depth 0 or no legal moves).
type SearchResult struct {
	Move     Move
	Score    int
	Depth    int
	Nodes    int64
	Time     time.Duration
	MainLine []Move
}

type MoveScore struct {
	Move  Move
	Score int
}
