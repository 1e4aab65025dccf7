package wire

import (
	"errors"
	"testing"

	"github.com/ChizhovVadim/CounterReversi/pkg/common"
	"github.com/ChizhovVadim/CounterReversi/pkg/engine"
	weighted "github.com/ChizhovVadim/CounterReversi/pkg/eval/weighted"
)

func newTestEngine() *engine.Engine {
	return engine.NewEngine(func() engine.Evaluator {
		return weighted.NewEvaluationService()
	}, engine.NewOptions())
}

func initialSquares() []int32 {
	var squares, _, _, _ = EncodeRequest(common.SearchParams{Position: common.InitialPosition()})
	return squares
}

func TestSearchGameTree(t *testing.T) {
	var eng = newTestEngine()
	var result, err = SearchGameTree(eng, initialSquares(), 0, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != ResultSize {
		t.Fatalf("result %v", result)
	}
	var want, _ = eng.Search(common.SearchParams{Position: common.InitialPosition(), Side: common.Black, Depth: 3})
	var decoded, derr = DecodeResult(result)
	if derr != nil {
		t.Fatal(derr)
	}
	if decoded.Color != common.Black || decoded.Move != want.Move || decoded.Score != want.Score || decoded.Depth != 3 {
		t.Errorf("decoded %+v, search %v %v", decoded, want.Move, want.Score)
	}
}

func TestSearchGameTreeErrors(t *testing.T) {
	var eng = newTestEngine()
	var badCell = initialSquares()
	badCell[0] = 7
	var tests = []struct {
		name    string
		squares []int32
		turn    int32
		color   int32
		depth   int32
		err     error
	}{
		{"length 63", initialSquares()[:63], 0, 1, 3, common.ErrInvalidBoard},
		{"length 65", append(initialSquares(), 0), 0, 1, 3, common.ErrInvalidBoard},
		{"cell code", badCell, 0, 1, 3, common.ErrInvalidBoard},
		{"negative turn", initialSquares(), -1, 1, 3, common.ErrInvalidBoard},
		{"depth -1", initialSquares(), 0, 1, -1, common.ErrInvalidDepth},
		{"color 0", initialSquares(), 0, 0, 3, common.ErrInvalidColor},
		{"color 3", initialSquares(), 0, 3, 3, common.ErrInvalidColor},
		{"depth before board", initialSquares()[:63], 0, 1, -1, common.ErrInvalidDepth},
		{"color before board", initialSquares()[:63], 0, 3, 1, common.ErrInvalidColor},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var result, err = SearchGameTree(eng, test.squares, test.turn, test.color, test.depth)
			if !errors.Is(err, test.err) {
				t.Errorf("err = %v, want %v", err, test.err)
			}
			if result != nil {
				t.Errorf("partial result %v", result)
			}
		})
	}
}

func TestEncodeResult(t *testing.T) {
	var tests = []struct {
		result Result
		want   []int32
	}{
		{Result{common.Black, common.MakePlacement(common.SquareD3), 12, 4}, []int32{1, 2, 3, 0, 12, 4}},
		{Result{common.White, common.MakePlacement(common.SquareH8), -7, 1}, []int32{2, 7, 7, 0, -7, 1}},
		{Result{common.White, common.MovePass, 5, 2}, []int32{2, -1, -1, 1, 5, 2}},
		{Result{common.Black, common.MoveEmpty, -3, 0}, []int32{1, -1, -1, 0, -3, 0}},
	}
	for _, test := range tests {
		var got = EncodeResult(test.result)
		for i := range test.want {
			if got[i] != test.want[i] {
				t.Errorf("EncodeResult(%+v) = %v, want %v", test.result, got, test.want)
				break
			}
		}
		var back, err = DecodeResult(got)
		if err != nil || back != test.result {
			t.Errorf("DecodeResult(%v) = %+v, %v", got, back, err)
		}
	}
}

func TestDecodeResultErrors(t *testing.T) {
	var tests = [][]int32{
		nil,
		{1, 2, 3, 0, 12},
		{1, 2, 3, 0, 12, 4, 0},
		{0, 2, 3, 0, 12, 4},
		{1, 8, 3, 0, 12, 4},
		{1, 2, -1, 0, 12, 4},
		{1, 2, 3, 1, 12, 4},
		{1, -1, -1, 2, 12, 4},
		{1, 2, 3, 0, 12, -1},
	}
	for _, data := range tests {
		if _, err := DecodeResult(data); !errors.Is(err, ErrMalformedResult) {
			t.Errorf("DecodeResult(%v) err = %v", data, err)
		}
	}
}

func TestDecodeRequest(t *testing.T) {
	var p = common.InitialPosition()
	var child common.Position
	if err := p.MakeMove(common.Black, common.MakePlacement(common.SquareF5), &child); err != nil {
		t.Fatal(err)
	}
	var want = common.SearchParams{Position: child, Side: common.White, Depth: 5}
	var params, err = DecodeRequest(EncodeRequest(want))
	if err != nil {
		t.Fatal(err)
	}
	if params.Position != want.Position || params.Side != want.Side || params.Depth != want.Depth {
		t.Errorf("got %+v", params)
	}
	if params.Position.TurnDepth != 1 {
		t.Errorf("turn depth %v", params.Position.TurnDepth)
	}
}
