package arena

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/ChizhovVadim/CounterReversi/pkg/common"
	material "github.com/ChizhovVadim/CounterReversi/pkg/eval/material"
)

// MaxOpeningImbalance is the largest disc difference accepted in a random opening.
const MaxOpeningImbalance = 4

// GenerateOpenings plays count distinct random openings of plies plies from the
// initial position. The same seed gives the same openings.
func GenerateOpenings(seed int64, count, plies int) ([]common.Position, error) {
	if plies < 0 || plies > 20 {
		return nil, fmt.Errorf("bad opening plies %v", plies)
	}
	var rnd = rand.New(rand.NewSource(seed))
	var evaluator = material.NewEvaluationService()
	var seen = make(map[common.Position]bool)
	var result []common.Position
	var buffer [common.MaxMoves]common.Move
	for attempts := 0; len(result) < count; attempts++ {
		if attempts >= 100*count+100 {
			return nil, fmt.Errorf("only %v distinct openings of %v plies", len(result), plies)
		}
		var pos = common.InitialPosition()
		var ok = true
		for ply := 0; ply < plies; ply++ {
			var side = pos.SideToMove()
			var ml = pos.GenerateMoves(side, common.Rules{}, buffer[:])
			if len(ml) == 0 {
				ok = false
				break
			}
			var child common.Position
			if err := pos.MakeMove(side, ml[rnd.Intn(len(ml))], &child); err != nil {
				return nil, err
			}
			pos = child
		}
		if !ok || seen[pos] {
			continue
		}
		if common.Abs(evaluator.Evaluate(&pos, common.Black)) > MaxOpeningImbalance {
			continue
		}
		seen[pos] = true
		result = append(result, pos)
	}
	return result, nil
}

// LoadOpenings reads one position in text notation per line. Empty lines and
// lines starting with "//" are skipped.
func LoadOpenings(r io.Reader) ([]common.Position, error) {
	var result []common.Position
	var scanner = bufio.NewScanner(r)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		var line = strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		var pos, err = common.NewPositionFromText(line)
		if err != nil {
			return nil, fmt.Errorf("line %v: %w", lineNumber, err)
		}
		result = append(result, pos)
	}
	return result, scanner.Err()
}

func SaveOpenings(w io.Writer, openings []common.Position) error {
	var bw = bufio.NewWriter(w)
	for i := range openings {
		if _, err := fmt.Fprintln(bw, openings[i].Text()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
