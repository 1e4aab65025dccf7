package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/ChizhovVadim/CounterReversi/pkg/common"
)

var ErrIllegalAction = errors.New("illegal action")

// GameState is what a player sees before choosing a move.
type GameState struct {
	Position common.Position
	Side     common.Color
	Moves    []common.Move
	History  []common.Move
}

type Player interface {
	Name() string
	TakeAction(state GameState) (common.Move, error)
}

type Result struct {
	Start   common.Position
	Final   common.Position
	History []common.Move
	Black   int
	White   int
	Winner  common.Color
	Comment string
}

// Play runs a game until neither side can move. Every action is checked
// against the generated moves before it is applied.
func Play(ctx context.Context, start common.Position, rules common.Rules, black, white Player) (Result, error) {
	if err := start.Validate(); err != nil {
		return Result{}, err
	}
	var pos = start
	var history []common.Move
	var buffer [common.MaxMoves]common.Move
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if pos.IsGameOver(rules) {
			return newResult(start, pos, history, rules), nil
		}
		var side = pos.SideToMove()
		var ml = pos.GenerateMoves(side, rules, buffer[:])
		var player = black
		if side == common.White {
			player = white
		}
		var move, err = player.TakeAction(GameState{
			Position: pos,
			Side:     side,
			Moves:    append([]common.Move(nil), ml...),
			History:  append([]common.Move(nil), history...),
		})
		if err != nil {
			return Result{}, fmt.Errorf("%v: %w", player.Name(), err)
		}
		if !containsMove(ml, move) {
			return Result{}, fmt.Errorf("%w: %v played %v at %v", ErrIllegalAction, player.Name(), move, pos.Text())
		}
		var child common.Position
		if err := pos.MakeMove(side, move, &child); err != nil {
			return Result{}, err
		}
		pos = child
		history = append(history, move)
	}
}

func newResult(start, final common.Position, history []common.Move, rules common.Rules) Result {
	var r = Result{
		Start:   start,
		Final:   final,
		History: history,
		Black:   final.Count(common.Black),
		White:   final.Count(common.White),
		Comment: "no moves",
	}
	if rules.Expired(final.TurnDepth) {
		r.Comment = "move limit"
	}
	switch {
	case r.Black > r.White:
		r.Winner = common.Black
	case r.White > r.Black:
		r.Winner = common.White
	}
	return r
}

func (r *Result) String() string {
	var winner = "draw"
	if r.Winner != common.NoColor {
		winner = r.Winner.String() + " wins"
	}
	return fmt.Sprintf("%v-%v %v {%v}", r.Black, r.White, winner, r.Comment)
}

func containsMove(ml []common.Move, move common.Move) bool {
	for _, m := range ml {
		if m == move {
			return true
		}
	}
	return false
}
