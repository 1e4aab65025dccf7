package common

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a Reversi board plus the number of plies played so far.
// Black and White never overlap.
type Position struct {
	Black, White uint64
	TurnDepth    int
}

const (
	blackChar = 'X'
	whiteChar = 'O'
	emptyChar = '-'
)

const InitialPositionText = "---------------------------OX------XO--------------------------- 0"

func InitialPosition() Position {
	return Position{
		Black: SquareMask[SquareE4] | SquareMask[SquareD5],
		White: SquareMask[SquareD4] | SquareMask[SquareE5],
	}
}

// NewPosition builds a position from 64 cell codes in square order.
func NewPosition(cells []int, turnDepth int) (Position, error) {
	if len(cells) != SquareCount {
		return Position{}, fmt.Errorf("%w: %v cells", ErrInvalidBoard, len(cells))
	}
	if turnDepth < 0 {
		return Position{}, fmt.Errorf("%w: turn depth %v", ErrInvalidBoard, turnDepth)
	}
	var p = Position{TurnDepth: turnDepth}
	for sq, cell := range cells {
		switch Cell(cell) {
		case Empty:
		case BlackDisc:
			p.Black |= SquareMask[sq]
		case WhiteDisc:
			p.White |= SquareMask[sq]
		default:
			return Position{}, fmt.Errorf("%w: cell %v has code %v", ErrInvalidBoard, SquareName(sq), cell)
		}
	}
	return p, nil
}

func NewPositionFromText(text string) (Position, error) {
	var fields = strings.Fields(text)
	if len(fields) == 0 || len(fields) > 2 {
		return Position{}, fmt.Errorf("%w: parse text failed %q", ErrInvalidBoard, text)
	}
	var board = strings.ReplaceAll(fields[0], "/", "")
	if len(board) != SquareCount {
		return Position{}, fmt.Errorf("%w: parse text failed %q", ErrInvalidBoard, text)
	}
	var cells = make([]int, SquareCount)
	for i := 0; i < len(board); i++ {
		switch board[i] {
		case blackChar, 'x', '*', 'B', 'b':
			cells[i] = int(BlackDisc)
		case whiteChar, 'o', 'W', 'w':
			cells[i] = int(WhiteDisc)
		case emptyChar, '.':
			cells[i] = int(Empty)
		default:
			return Position{}, fmt.Errorf("%w: bad char %q in %q", ErrInvalidBoard, board[i], text)
		}
	}
	var turnDepth = 0
	if len(fields) == 2 {
		var n, err = strconv.Atoi(fields[1])
		if err != nil {
			return Position{}, fmt.Errorf("%w: bad turn depth %q", ErrInvalidBoard, fields[1])
		}
		turnDepth = n
	}
	return NewPosition(cells, turnDepth)
}

// SideToMove follows the move counter: black moves on even turn depths.
// A pass is a move, so the parity stays right after passes.
func (p *Position) SideToMove() Color {
	if p.TurnDepth%2 == 0 {
		return Black
	}
	return White
}

// Validate reports positions that NewPosition would never produce.
func (p *Position) Validate() error {
	if p.Black&p.White != 0 {
		return fmt.Errorf("%w: overlapping discs %v", ErrInvalidBoard, BitboardString(p.Black&p.White))
	}
	if p.TurnDepth < 0 {
		return fmt.Errorf("%w: turn depth %v", ErrInvalidBoard, p.TurnDepth)
	}
	return nil
}

func (p *Position) At(sq int) (Cell, error) {
	if !IsValidSquare(sq) {
		return Empty, fmt.Errorf("%w: %v", ErrOutOfRange, sq)
	}
	return p.cellAt(sq), nil
}

func (p *Position) cellAt(sq int) Cell {
	var mask = SquareMask[sq]
	if p.Black&mask != 0 {
		return BlackDisc
	}
	if p.White&mask != 0 {
		return WhiteDisc
	}
	return Empty
}

func (p *Position) Cells() []int {
	var cells = make([]int, SquareCount)
	for sq := range cells {
		cells[sq] = int(p.cellAt(sq))
	}
	return cells
}

func (p *Position) Discs(side Color) uint64 {
	if side == Black {
		return p.Black
	}
	return p.White
}

func (p *Position) Count(side Color) int {
	return PopCount(p.Discs(side))
}

func (p *Position) Occupied() uint64 {
	return p.Black | p.White
}

func (p *Position) Empties() int {
	return SquareCount - PopCount(p.Occupied())
}

// Text is the inverse of NewPositionFromText.
func (p *Position) Text() string {
	var sb strings.Builder
	sb.Grow(SquareCount + 4)
	for sq := 0; sq < SquareCount; sq++ {
		switch p.cellAt(sq) {
		case BlackDisc:
			sb.WriteByte(blackChar)
		case WhiteDisc:
			sb.WriteByte(whiteChar)
		default:
			sb.WriteByte(emptyChar)
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.TurnDepth))
	return sb.String()
}

func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for rank := Rank1; rank <= Rank8; rank++ {
		sb.WriteByte(rankNames[rank])
		for file := FileA; file <= FileH; file++ {
			sb.WriteByte(' ')
			switch p.cellAt(MakeSquare(file, rank)) {
			case BlackDisc:
				sb.WriteByte(blackChar)
			case WhiteDisc:
				sb.WriteByte(whiteChar)
			default:
				sb.WriteByte(emptyChar)
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "black %v white %v turn %v", p.Count(Black), p.Count(White), p.TurnDepth)
	return sb.String()
}

// MakeMove writes the position after side plays move into child.
// The receiver is never modified.
func (src *Position) MakeMove(side Color, move Move, child *Position) error {
	if !side.IsValid() {
		return fmt.Errorf("%w: %v", ErrInvalidColor, int(side))
	}
	var own, opp = src.Discs(side), src.Discs(side.Opponent())
	switch {
	case move == MovePass:
		if Placements(own, opp) != 0 {
			return fmt.Errorf("%w: %v passes with placements available", ErrInvalidMove, side)
		}
		*child = *src
		child.TurnDepth++
		return nil
	case move.IsPlacement():
		var sq = move.Square()
		if (own|opp)&SquareMask[sq] != 0 {
			return fmt.Errorf("%w: %v is occupied", ErrInvalidMove, move)
		}
		var flipped = Flips(own, opp, sq)
		if flipped == 0 {
			return fmt.Errorf("%w: %v flips nothing for %v", ErrInvalidMove, move, side)
		}
		own |= flipped | SquareMask[sq]
		opp &^= flipped
		if side == Black {
			child.Black, child.White = own, opp
		} else {
			child.Black, child.White = opp, own
		}
		child.TurnDepth = src.TurnDepth + 1
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidMove, move)
}

// MirrorPosition flips the board vertically and swaps the colors.
func MirrorPosition(p *Position) Position {
	return Position{
		Black:     FlipVertical(p.White),
		White:     FlipVertical(p.Black),
		TurnDepth: p.TurnDepth,
	}
}
