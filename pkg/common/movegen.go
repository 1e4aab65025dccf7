package common

// Placements returns the empty squares where the owner of own can place a disc.
func Placements(own, opp uint64) uint64 {
	var empty = ^(own | opp)
	var moves uint64
	for _, shift := range directions {
		var x = shift(own) & opp
		x |= shift(x) & opp
		x |= shift(x) & opp
		x |= shift(x) & opp
		x |= shift(x) & opp
		x |= shift(x) & opp
		moves |= shift(x) & empty
	}
	return moves
}

// Flips returns the opponent discs turned by a placement on sq.
func Flips(own, opp uint64, sq int) uint64 {
	var placed = SquareMask[sq]
	if (own|opp)&placed != 0 {
		return 0
	}
	var result uint64
	for _, shift := range directions {
		var line uint64
		var x = shift(placed)
		for x&opp != 0 {
			line |= x
			x = shift(x)
		}
		if x&own != 0 {
			result |= line
		}
	}
	return result
}

func (p *Position) LegalPlacements(side Color) uint64 {
	return Placements(p.Discs(side), p.Discs(side.Opponent()))
}

func (p *Position) CanMove(side Color) bool {
	return p.LegalPlacements(side) != 0
}

// IsGameOver is true when neither side can place a disc or the move limit is reached.
func (p *Position) IsGameOver(rules Rules) bool {
	if rules.Expired(p.TurnDepth) {
		return true
	}
	return !p.CanMove(Black) && !p.CanMove(White)
}

// GenerateMoves appends the legal moves of side to buffer[:0].
// Placements come in ascending square order. A side without placements
// gets a single MovePass while the opponent can still place.
// An empty result means the game is over.
func (p *Position) GenerateMoves(side Color, rules Rules, buffer []Move) []Move {
	var result = buffer[:0]
	if rules.Expired(p.TurnDepth) {
		return result
	}
	var own, opp = p.Discs(side), p.Discs(side.Opponent())
	var placements = Placements(own, opp)
	if placements == 0 {
		if p.CanMove(side.Opponent()) {
			result = append(result, MovePass)
		}
		return result
	}
	for x := placements; x != 0; x &= x - 1 {
		result = append(result, MakePlacement(FirstOne(x)))
	}
	return result
}

// IsLegalMove reports whether GenerateMoves would produce move.
func (p *Position) IsLegalMove(side Color, rules Rules, move Move) bool {
	var buffer [MaxMoves]Move
	for _, m := range p.GenerateMoves(side, rules, buffer[:]) {
		if m == move {
			return true
		}
	}
	return false
}
