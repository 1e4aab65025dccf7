package eval

import (
	"testing"

	"github.com/ChizhovVadim/CounterReversi/pkg/common"
)

var testPositions = []string{
	common.InitialPositionText,
	"X------O-XOOOO---XXOX----OXXX-----OXXO---OOXXX----O-X------X---- 21",
	"XXXXXXXO" + "XOOOOOXO" + "XOXXXOXO" + "XOXOXOXO" + "XOXXOOXO" + "XOOOOOXO" + "XXXXXXXO" + "-------- 56",
}

func TestEvaluateSymmetry(t *testing.T) {
	var e = NewEvaluationService()
	for _, text := range testPositions {
		var p, err = common.NewPositionFromText(text)
		if err != nil {
			t.Fatal(err)
		}
		var black = e.Evaluate(&p, common.Black)
		var white = e.Evaluate(&p, common.White)
		if black != -white {
			t.Errorf("%v: black %v white %v", text, black, white)
		}
		var mirror = common.MirrorPosition(&p)
		if mirrorScore := e.Evaluate(&mirror, common.White); mirrorScore != black {
			t.Errorf("%v: mirror %v, want %v", text, mirrorScore, black)
		}
	}
}

func TestEvaluateWeights(t *testing.T) {
	var e = NewEvaluationService()
	var p = common.InitialPosition()
	if score := e.Evaluate(&p, common.Black); score != 0 {
		t.Errorf("initial = %v", score)
	}
	p.Black |= common.SquareMask[common.SquareA1]
	p.White |= common.SquareMask[common.SquareB2]
	if score := e.Evaluate(&p, common.Black); score != 30+15 {
		t.Errorf("corner vs x-square = %v", score)
	}
}

func TestWeightsSymmetry(t *testing.T) {
	for sq := 0; sq < common.SquareCount; sq++ {
		var file, rank = common.File(sq), common.Rank(sq)
		if Weights[sq] != Weights[common.MakeSquare(7-file, rank)] ||
			Weights[sq] != Weights[common.FlipSquare(sq)] ||
			Weights[sq] != Weights[common.MakeSquare(rank, file)] {
			t.Errorf("asymmetric weight at %v", common.SquareName(sq))
		}
	}
}
