// Package wire is the flat integer boundary of the search.
//
// A request is 64 cell codes (0 empty, 1 black, 2 white; index row*8+col)
// plus turn depth, color and search depth. A result is ResultSize values:
//
//	[color, row, col, pass, score, depth]
//
// row and col are -1 when there is no placement. pass is 1 for a pass.
// No move at all is row -1, col -1, pass 0.
package wire

import (
	"errors"
	"fmt"

	"github.com/ChizhovVadim/CounterReversi/pkg/common"
	"github.com/ChizhovVadim/CounterReversi/pkg/engine"
)

const ResultSize = 6

const (
	indexColor = iota
	indexRow
	indexCol
	indexPass
	indexScore
	indexDepth
)

const noSquare = -1

var ErrMalformedResult = errors.New("malformed result")

// Result is the decoded form of the flat result.
type Result struct {
	Color common.Color
	Move  common.Move
	Score int
	Depth int
}

// DecodeRequest checks depth, then color, then board, the order Engine.Search uses.
func DecodeRequest(squares []int32, turnDepth, color, searchDepth int32) (common.SearchParams, error) {
	if searchDepth < 0 {
		return common.SearchParams{}, fmt.Errorf("%w: %v", common.ErrInvalidDepth, searchDepth)
	}
	var side, err = common.ParseColor(int(color))
	if err != nil {
		return common.SearchParams{}, err
	}
	if len(squares) != common.SquareCount {
		return common.SearchParams{}, fmt.Errorf("%w: %v squares", common.ErrInvalidBoard, len(squares))
	}
	var cells = make([]int, len(squares))
	for i, cell := range squares {
		cells[i] = int(cell)
	}
	position, err := common.NewPosition(cells, int(turnDepth))
	if err != nil {
		return common.SearchParams{}, err
	}
	return common.SearchParams{
		Position: position,
		Side:     side,
		Depth:    int(searchDepth),
	}, nil
}

// EncodeRequest is the caller side of DecodeRequest.
func EncodeRequest(params common.SearchParams) (squares []int32, turnDepth, color, searchDepth int32) {
	squares = make([]int32, common.SquareCount)
	for i, cell := range params.Position.Cells() {
		squares[i] = int32(cell)
	}
	return squares, int32(params.Position.TurnDepth), int32(params.Side), int32(params.Depth)
}

func EncodeResult(r Result) []int32 {
	var result = make([]int32, ResultSize)
	result[indexColor] = int32(r.Color)
	result[indexRow] = noSquare
	result[indexCol] = noSquare
	if r.Move.IsPlacement() {
		var sq = r.Move.Square()
		result[indexRow] = int32(common.Rank(sq))
		result[indexCol] = int32(common.File(sq))
	}
	if r.Move.IsPass() {
		result[indexPass] = 1
	}
	result[indexScore] = int32(r.Score)
	result[indexDepth] = int32(r.Depth)
	return result
}

func DecodeResult(data []int32) (Result, error) {
	if len(data) != ResultSize {
		return Result{}, fmt.Errorf("%w: length %v", ErrMalformedResult, len(data))
	}
	var side, err = common.ParseColor(int(data[indexColor]))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrMalformedResult, err)
	}
	var row, col, pass = data[indexRow], data[indexCol], data[indexPass]
	var move common.Move
	switch {
	case pass == 1 && row == noSquare && col == noSquare:
		move = common.MovePass
	case pass == 0 && row == noSquare && col == noSquare:
		move = common.MoveEmpty
	case pass == 0 && row >= 0 && row < common.BoardSize && col >= 0 && col < common.BoardSize:
		move = common.MakePlacement(common.MakeSquare(int(col), int(row)))
	default:
		return Result{}, fmt.Errorf("%w: row %v col %v pass %v", ErrMalformedResult, row, col, pass)
	}
	if data[indexDepth] < 0 {
		return Result{}, fmt.Errorf("%w: depth %v", ErrMalformedResult, data[indexDepth])
	}
	return Result{
		Color: side,
		Move:  move,
		Score: int(data[indexScore]),
		Depth: int(data[indexDepth]),
	}, nil
}

func NewResult(side common.Color, r common.SearchResult) Result {
	return Result{
		Color: side,
		Move:  r.Move,
		Score: r.Score,
		Depth: r.Depth,
	}
}

// SearchGameTree validates the flat request, searches and encodes the result.
// Nothing is returned on error.
func SearchGameTree(eng *engine.Engine, squares []int32, turnDepth, color, searchDepth int32) ([]int32, error) {
	var params, err = DecodeRequest(squares, turnDepth, color, searchDepth)
	if err != nil {
		return nil, err
	}
	result, err := eng.Search(params)
	if err != nil {
		return nil, err
	}
	return EncodeResult(NewResult(params.Side, result)), nil
}
