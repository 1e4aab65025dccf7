package engine

import (
	"context"
	"errors"
	"testing"

	. "github.com/ChizhovVadim/CounterReversi/pkg/common"
	material "github.com/ChizhovVadim/CounterReversi/pkg/eval/material"
	weighted "github.com/ChizhovVadim/CounterReversi/pkg/eval/weighted"
)

var testPositions = []string{
	InitialPositionText,
	"X------O-XOOOO---XXOX----OXXX-----OXXO---OOXXX----O-X------X---- 21",
	"--OOOO----OOOO--XXXXOOX--XXOXXX--XXXOXX-OOXOXX--O-XXX----OOOO--- 34",
	"XXXXXXXO" + "XOOOOOXO" + "XOXXXOXO" + "XOXOXOXO" + "XOXXOOXO" + "XOOOOOXO" + "XXXXXXXO" + "-------- 56",
}

func weightedBuilder() Evaluator {
	return weighted.NewEvaluationService()
}

func materialBuilder() Evaluator {
	return material.NewEvaluationService()
}

func newTestEngine(algorithm Algorithm) *Engine {
	var options = NewOptions()
	options.Algorithm = algorithm
	return NewEngine(weightedBuilder, options)
}

func parsePosition(t testing.TB, text string) Position {
	t.Helper()
	var p, err = NewPositionFromText(text)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSearchDepthZero(t *testing.T) {
	var e = newTestEngine(AlgorithmAlphaBeta)
	var eval = weighted.NewEvaluationService()
	for _, text := range testPositions {
		var p = parsePosition(t, text)
		for _, side := range []Color{Black, White} {
			var result, err = e.Search(SearchParams{Position: p, Side: side, Depth: 0})
			if err != nil {
				t.Fatal(err)
			}
			if result.Move != MoveEmpty || result.Score != eval.Evaluate(&p, side) {
				t.Errorf("%v %v: %v %v", text, side, result.Move, result.Score)
			}
			if len(result.MainLine) != 0 || result.Nodes != 0 {
				t.Errorf("leaf search expanded nodes: %+v", result)
			}
		}
	}
}

func TestSearchTerminal(t *testing.T) {
	var e = newTestEngine(AlgorithmAlphaBeta)
	var eval = weighted.NewEvaluationService()
	var p = parsePosition(t, "XXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXOOOOOOOOOOOOOOOOOOOOOOOOOOOOOOOO 60")
	for depth := 0; depth <= 4; depth++ {
		for _, side := range []Color{Black, White} {
			var result, err = e.Search(SearchParams{Position: p, Side: side, Depth: depth})
			if err != nil {
				t.Fatal(err)
			}
			if result.Move != MoveEmpty || result.Score != eval.Evaluate(&p, side) {
				t.Errorf("depth %v %v: %v %v", depth, side, result.Move, result.Score)
			}
		}
	}
}

func TestSearchMoveLimit(t *testing.T) {
	var options = NewOptions()
	options.Rules = Rules{MoveLimit: 10}
	var e = NewEngine(weightedBuilder, options)
	var p = InitialPosition()
	p.TurnDepth = 10
	var result, err = e.Search(SearchParams{Position: p, Side: Black, Depth: 3})
	if err != nil {
		t.Fatal(err)
	}
	if result.Move != MoveEmpty {
		t.Errorf("move after limit: %v", result.Move)
	}
	p.TurnDepth = 9
	result, err = e.Search(SearchParams{Position: p, Side: Black, Depth: 3})
	if err != nil {
		t.Fatal(err)
	}
	if result.Move == MoveEmpty || len(result.MainLine) != 1 {
		t.Errorf("limit not applied inside the tree: %v", result.MainLine)
	}
}

func TestAlphaBetaEqualsMinimax(t *testing.T) {
	for _, builder := range []func() Evaluator{weightedBuilder, materialBuilder} {
		var options = NewOptions()
		var alphaBeta = NewEngine(builder, options)
		options.Algorithm = AlgorithmMinimax
		var minimax = NewEngine(builder, options)
		for _, text := range testPositions {
			var p = parsePosition(t, text)
			for _, side := range []Color{Black, White} {
				for depth := 1; depth <= 4; depth++ {
					var params = SearchParams{Position: p, Side: side, Depth: depth}
					var r1, err1 = alphaBeta.Search(params)
					var r2, err2 = minimax.Search(params)
					if err1 != nil || err2 != nil {
						t.Fatal(err1, err2)
					}
					if r1.Score != r2.Score || r1.Move != r2.Move {
						t.Errorf("%v %v depth %v: alphabeta %v %v, minimax %v %v",
							text, side, depth, r1.Move, r1.Score, r2.Move, r2.Score)
					}
					if r1.Nodes > r2.Nodes {
						t.Errorf("alphabeta visited more nodes: %v > %v", r1.Nodes, r2.Nodes)
					}
				}
			}
		}
	}
}

func TestSearchColorSymmetry(t *testing.T) {
	var e = newTestEngine(AlgorithmAlphaBeta)
	for _, text := range testPositions {
		var p = parsePosition(t, text)
		var mirror = MirrorPosition(&p)
		for depth := 0; depth <= 3; depth++ {
			var r1, _ = e.Search(SearchParams{Position: p, Side: Black, Depth: depth})
			var r2, _ = e.Search(SearchParams{Position: mirror, Side: White, Depth: depth})
			if r1.Score != r2.Score {
				t.Errorf("%v depth %v: %v vs mirrored %v", text, depth, r1.Score, r2.Score)
			}
		}
		var black, _ = e.Search(SearchParams{Position: p, Side: Black, Depth: 0})
		var white, _ = e.Search(SearchParams{Position: p, Side: White, Depth: 0})
		if black.Score != -white.Score {
			t.Errorf("%v: leaf scores %v and %v", text, black.Score, white.Score)
		}
	}
}

func TestSearchDeterministic(t *testing.T) {
	var e = newTestEngine(AlgorithmAlphaBeta)
	var p = parsePosition(t, testPositions[1])
	var params = SearchParams{Position: p, Side: White, Depth: 4}
	var first, err = e.Search(params)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		var next, _ = e.Search(params)
		if next.Move != first.Move || next.Score != first.Score || next.Nodes != first.Nodes {
			t.Fatalf("run %v: %+v, want %+v", i, next, first)
		}
	}
}

func TestSearchTieBreak(t *testing.T) {
	// All four opening moves are equivalent, the first one generated wins.
	var e = NewEngine(materialBuilder, NewOptions())
	var result, err = e.Search(SearchParams{Position: InitialPosition(), Side: Black, Depth: 1})
	if err != nil {
		t.Fatal(err)
	}
	if result.Move != MakePlacement(SquareD3) || result.Score != 3 {
		t.Errorf("got %v %v", result.Move, result.Score)
	}
}

func TestSearchSingleMove(t *testing.T) {
	var e = newTestEngine(AlgorithmAlphaBeta)
	var p = parsePosition(t, "XO------"+"--------"+"--------"+"--------"+"--------"+"--------"+"--------"+"-------- 0")
	var result, err = e.Search(SearchParams{Position: p, Side: Black, Depth: 1})
	if err != nil {
		t.Fatal(err)
	}
	var child Position
	if err := p.MakeMove(Black, MakePlacement(SquareC1), &child); err != nil {
		t.Fatal(err)
	}
	var want = -weighted.NewEvaluationService().Evaluate(&child, White)
	if result.Move != MakePlacement(SquareC1) || result.Score != want || want != 18 {
		t.Errorf("got %v %v, want c1 %v", result.Move, result.Score, want)
	}
}

func TestSearchPass(t *testing.T) {
	var e = newTestEngine(AlgorithmAlphaBeta)
	var p = parsePosition(t, "OXX-----"+"XX------"+"--------"+"--------"+"--------"+"--------"+"--------"+"-------- 10")
	var result, err = e.Search(SearchParams{Position: p, Side: Black, Depth: 3})
	if err != nil {
		t.Fatal(err)
	}
	if result.Move != MovePass {
		t.Fatalf("move = %v", result.Move)
	}
	if len(result.MainLine) < 2 || !result.MainLine[1].IsPlacement() {
		t.Errorf("main line %v", result.MainLine)
	}
}

func TestSearchErrors(t *testing.T) {
	var e = newTestEngine(AlgorithmAlphaBeta)
	var overlap = InitialPosition()
	overlap.White |= overlap.Black
	var tests = []struct {
		name   string
		params SearchParams
		err    error
	}{
		{"negative depth", SearchParams{Position: InitialPosition(), Side: Black, Depth: -1}, ErrInvalidDepth},
		{"no color", SearchParams{Position: InitialPosition(), Side: NoColor, Depth: 1}, ErrInvalidColor},
		{"bad color", SearchParams{Position: InitialPosition(), Side: 3, Depth: 1}, ErrInvalidColor},
		{"overlap", SearchParams{Position: overlap, Side: Black, Depth: 1}, ErrInvalidBoard},
		{"depth above limit", SearchParams{Position: InitialPosition(), Side: Black, Depth: maxHeight + 1}, ErrInvalidDepth},
		{"depth before board", SearchParams{Position: overlap, Side: Black, Depth: -1}, ErrInvalidDepth},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := e.Search(test.params); !errors.Is(err, test.err) {
				t.Errorf("Search err = %v, want %v", err, test.err)
			}
			if _, err := e.Analyze(test.params); !errors.Is(err, test.err) {
				t.Errorf("Analyze err = %v, want %v", err, test.err)
			}
		})
	}
}

func TestMakeMoveAbortsSearch(t *testing.T) {
	var e = newTestEngine(AlgorithmAlphaBeta)
	var p = InitialPosition()
	var th = e.newThread(&p)
	var err = th.run(func() {
		th.makeMove(Black, MakePlacement(SquareA1), 0)
	})
	if !errors.Is(err, ErrInvalidMove) {
		t.Errorf("err = %v", err)
	}
}

func TestAnalyze(t *testing.T) {
	var e = newTestEngine(AlgorithmAlphaBeta)
	var options = NewOptions()
	options.Algorithm = AlgorithmMinimax
	var minimax = NewEngine(weightedBuilder, options)
	for _, text := range testPositions[:3] {
		var p = parsePosition(t, text)
		var params = SearchParams{Position: p, Side: White, Depth: 3}
		var scores, err = e.Analyze(params)
		if err != nil {
			t.Fatal(err)
		}
		var result, _ = e.Search(params)
		if len(scores) == 0 || scores[0].Move != result.Move || scores[0].Score != result.Score {
			t.Errorf("%v: analyze %v, search %v %v", text, scores, result.Move, result.Score)
		}
		for i := 1; i < len(scores); i++ {
			if scores[i-1].Score < scores[i].Score {
				t.Errorf("not sorted: %v", scores)
			}
			if scores[i-1].Score == scores[i].Score && scores[i-1].Move > scores[i].Move {
				t.Errorf("unstable order: %v", scores)
			}
		}
		var exact, _ = minimax.Analyze(params)
		if len(exact) != len(scores) {
			t.Fatalf("%v vs %v", exact, scores)
		}
		for i := range exact {
			if exact[i] != scores[i] {
				t.Errorf("move %v: minimax %v, alphabeta %v", i, exact[i], scores[i])
			}
		}
	}
	var leaf, err = e.Analyze(SearchParams{Position: InitialPosition(), Side: Black, Depth: 0})
	if err != nil || len(leaf) != 0 {
		t.Errorf("depth 0: %v %v", leaf, err)
	}
}

func TestSearchBatch(t *testing.T) {
	var options = NewOptions()
	options.Threads = 4
	var e = NewEngine(weightedBuilder, options)
	var params []SearchParams
	for _, text := range testPositions {
		var p = parsePosition(t, text)
		params = append(params,
			SearchParams{Position: p, Side: Black, Depth: 3},
			SearchParams{Position: p, Side: White, Depth: 2})
	}
	var results, err = e.SearchBatch(context.Background(), params)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(params) {
		t.Fatalf("%v results", len(results))
	}
	for i := range params {
		var want, _ = e.Search(params[i])
		if results[i].Move != want.Move || results[i].Score != want.Score {
			t.Errorf("%v: %v %v, want %v %v", i, results[i].Move, results[i].Score, want.Move, want.Score)
		}
	}

	params[3].Depth = -1
	if _, err := e.SearchBatch(context.Background(), params); !errors.Is(err, ErrInvalidDepth) {
		t.Errorf("err = %v", err)
	}

	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	if _, err := e.SearchBatch(ctx, params[:1]); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled batch err = %v", err)
	}
}

func TestSortMoves(t *testing.T) {
	var ml = []OrderedMove{{1, 5}, {2, 7}, {3, 5}, {4, -1}, {5, 7}}
	sortMoves(ml)
	if !isSorted(ml) {
		t.Fatal(ml)
	}
	var want = []Move{2, 5, 1, 3, 4}
	for i := range want {
		if ml[i].Move != want[i] {
			t.Errorf("%v", ml)
			break
		}
	}
}

func BenchmarkSearch(b *testing.B) {
	var e = newTestEngine(AlgorithmAlphaBeta)
	var p = parsePosition(b, testPositions[1])
	for i := 0; i < b.N; i++ {
		e.Search(SearchParams{Position: p, Side: Black, Depth: 6})
	}
}
