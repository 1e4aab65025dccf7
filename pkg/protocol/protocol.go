package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterReversi/pkg/common"
)

type Engine interface {
	Search(params common.SearchParams) (common.SearchResult, error)
	Analyze(params common.SearchParams) ([]common.MoveScore, error)
}

// Protocol is a line based engine protocol modelled on UCI.
// newEngine is called for every search so option changes apply at once.
type Protocol struct {
	name         string
	author       string
	version      string
	options      []Option
	newEngine    func() Engine
	position     common.Position
	defaultDepth int
	in           io.Reader
	out          io.Writer
	thinking     bool
	engineOutput chan string
}

const (
	DefaultDepth = 6
	MaxDepth     = 60
)

func New(name, author, version string, newEngine func() Engine, options []Option,
	in io.Reader, out io.Writer) *Protocol {
	var p = &Protocol{
		name:         name,
		author:       author,
		version:      version,
		newEngine:    newEngine,
		position:     common.InitialPosition(),
		defaultDepth: DefaultDepth,
		in:           in,
		out:          out,
	}
	p.options = append([]Option{
		&IntOption{Name: "Depth", Min: 0, Max: MaxDepth, Value: &p.defaultDepth},
	}, options...)
	return p
}

// Run returns after quit or end of input, once a running search has reported.
func (p *Protocol) Run(logger zerolog.Logger) {
	var commands = make(chan string)

	go func() {
		defer close(commands)
		readCommands(p.in, commands)
	}()

	var input = commands
	for input != nil || p.thinking {
		select {
		case line, ok := <-p.engineOutput:
			if ok {
				fmt.Fprintln(p.out, line)
			} else {
				p.thinking = false
				p.engineOutput = nil
			}
		case commandLine, ok := <-input:
			if !ok {
				input = nil
				continue
			}
			var err = p.handle(commandLine)
			if err != nil {
				logger.Error().Err(err).Str("command", commandLine).Msg("command-failed")
			}
		}
	}
}

func readCommands(in io.Reader, commands chan<- string) {
	var scanner = bufio.NewScanner(in)
	for scanner.Scan() {
		var commandLine = strings.TrimSpace(scanner.Text())
		if commandLine == "quit" {
			return
		}
		if commandLine != "" {
			commands <- commandLine
		}
	}
}

func (p *Protocol) handle(commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	if p.thinking {
		return errors.New("search still run")
	}

	var h func(fields []string) error

	switch commandName {
	case "uci":
		h = p.uciCommand
	case "setoption":
		h = p.setOptionCommand
	case "isready":
		h = p.isReadyCommand
	case "position":
		h = p.positionCommand
	case "go":
		h = p.goCommand
	case "analyze":
		h = p.analyzeCommand
	case "newgame", "ucinewgame":
		h = p.newGameCommand
	case "d":
		h = p.displayCommand
	}

	if h == nil {
		return fmt.Errorf("command not found: %v", commandName)
	}

	return h(fields)
}

func (p *Protocol) uciCommand(fields []string) error {
	fmt.Fprintf(p.out, "id name %s %s\n", p.name, p.version)
	fmt.Fprintf(p.out, "id author %s\n", p.author)
	for _, option := range p.options {
		fmt.Fprintln(p.out, option.OptionString())
	}
	fmt.Fprintln(p.out, "uciok")
	return nil
}

func (p *Protocol) setOptionCommand(fields []string) error {
	if len(fields) < 4 || fields[0] != "name" || fields[2] != "value" {
		return errors.New("invalid setoption arguments")
	}
	var name, value = fields[1], strings.Join(fields[3:], " ")
	for _, option := range p.options {
		if strings.EqualFold(option.OptionName(), name) {
			return option.Set(value)
		}
	}
	return fmt.Errorf("unhandled option %v", name)
}

func (p *Protocol) isReadyCommand(fields []string) error {
	fmt.Fprintln(p.out, "readyok")
	return nil
}

func (p *Protocol) newGameCommand(fields []string) error {
	p.position = common.InitialPosition()
	return nil
}

// position startpos [moves m1 m2 ...]
// position text <64 cells> <turn depth> [moves m1 m2 ...]
func (p *Protocol) positionCommand(fields []string) error {
	if len(fields) == 0 {
		return errors.New("unknown position command")
	}
	var movesIndex = findIndexString(fields, "moves")
	var args = fields
	if movesIndex >= 0 {
		args = fields[:movesIndex]
	}
	var pos common.Position
	switch args[0] {
	case "startpos":
		pos = common.InitialPosition()
	case "text":
		var err error
		pos, err = common.NewPositionFromText(strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
	default:
		return errors.New("unknown position command")
	}
	if movesIndex >= 0 {
		for _, smove := range fields[movesIndex+1:] {
			var move, err = common.ParseMove(smove)
			if err != nil {
				return err
			}
			var child common.Position
			if err := pos.MakeMove(pos.SideToMove(), move, &child); err != nil {
				return err
			}
			pos = child
		}
	}
	p.position = pos
	return nil
}

func (p *Protocol) goCommand(fields []string) error {
	var params, err = p.searchParams(fields)
	if err != nil {
		return err
	}
	var eng = p.newEngine()
	p.startThinking(func(output chan<- string) {
		var result, err = eng.Search(params)
		if err != nil {
			output <- "info string " + err.Error()
			output <- "bestmove none"
			return
		}
		output <- searchResultToString(result)
		output <- "bestmove " + result.Move.String()
	})
	return nil
}

func (p *Protocol) analyzeCommand(fields []string) error {
	var params, err = p.searchParams(fields)
	if err != nil {
		return err
	}
	var eng = p.newEngine()
	p.startThinking(func(output chan<- string) {
		var scores, err = eng.Analyze(params)
		if err != nil {
			output <- "info string " + err.Error()
			output <- "bestmove none"
			return
		}
		for i, ms := range scores {
			output <- fmt.Sprintf("info depth %v multipv %v score %v pv %v", params.Depth, i+1, ms.Score, ms.Move)
		}
		var best = common.MoveEmpty
		if len(scores) != 0 {
			best = scores[0].Move
		}
		output <- "bestmove " + best.String()
	})
	return nil
}

func (p *Protocol) startThinking(search func(output chan<- string)) {
	p.thinking = true
	var output = make(chan string, 3)
	p.engineOutput = output
	go func() {
		defer close(output)
		search(output)
	}()
}

func (p *Protocol) displayCommand(fields []string) error {
	var side = p.position.SideToMove()
	fmt.Fprintln(p.out, p.position.String())
	fmt.Fprintln(p.out, "text", p.position.Text())
	fmt.Fprintln(p.out, "side", side)
	fmt.Fprintln(p.out, "empties", p.position.Empties())
	var buffer [common.MaxMoves]common.Move
	var sb strings.Builder
	for _, move := range p.position.GenerateMoves(side, common.Rules{}, buffer[:]) {
		sb.WriteString(" ")
		sb.WriteString(move.String())
	}
	fmt.Fprintln(p.out, "moves"+sb.String())
	return nil
}

func (p *Protocol) searchParams(fields []string) (common.SearchParams, error) {
	var depth, err = parseDepth(fields, p.defaultDepth)
	if err != nil {
		return common.SearchParams{}, err
	}
	return common.SearchParams{
		Position: p.position,
		Side:     p.position.SideToMove(),
		Depth:    depth,
	}, nil
}

func searchResultToString(si common.SearchResult) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v score %v", si.Depth, si.Score)
	var timeMs = si.Time.Milliseconds()
	var nps = si.Nodes * 1000 / (timeMs + 1)
	fmt.Fprintf(sb, " nodes %v time %v nps %v", si.Nodes, timeMs, nps)
	if len(si.MainLine) != 0 {
		fmt.Fprintf(sb, " pv")
		for _, move := range si.MainLine {
			sb.WriteString(" ")
			sb.WriteString(move.String())
		}
	}
	return sb.String()
}

func parseDepth(args []string, defaultDepth int) (int, error) {
	for i := 0; i < len(args); i++ {
		if args[i] == "depth" && i+1 < len(args) {
			var depth, err = strconv.Atoi(args[i+1])
			if err != nil {
				return 0, err
			}
			if depth < 0 {
				return 0, fmt.Errorf("%w: %v", common.ErrInvalidDepth, depth)
			}
			return depth, nil
		}
	}
	return defaultDepth, nil
}

func findIndexString(slice []string, value string) int {
	for p, v := range slice {
		if v == value {
			return p
		}
	}
	return -1
}
