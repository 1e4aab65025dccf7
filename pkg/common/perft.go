package common

// Perft counts the leaf nodes of the move tree to depth. Passes are plies.
func Perft(p *Position, side Color, depth int) int {
	var result = 0
	var buffer [MaxMoves]Move
	var child Position
	for _, move := range p.GenerateMoves(side, Rules{}, buffer[:]) {
		if err := p.MakeMove(side, move, &child); err != nil {
			panic(err)
		}
		if depth > 1 {
			result += Perft(&child, side.Opponent(), depth-1)
		} else {
			result++
		}
	}
	return result
}
