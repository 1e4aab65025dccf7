package arena

import "math"

// Stats is the match score from engine A's point of view.
type Stats struct {
	Games           int
	Wins            int
	Losses          int
	Draws           int
	WinningFraction float64
	EloDifference   float64
	LOS             float64
}

//https://chessprogramming.wikispaces.com/Match%20Statistics
func (s *Stats) compute() {
	var games = s.Wins + s.Losses + s.Draws
	if games == 0 {
		return
	}
	var winningFraction = (float64(s.Wins) + 0.5*float64(s.Draws)) / float64(games)
	s.WinningFraction = winningFraction
	s.EloDifference = -math.Log(1/winningFraction-1) * 400 / math.Ln10
	if s.Wins+s.Losses == 0 {
		s.LOS = 0.5
	} else {
		s.LOS = 0.5 + 0.5*math.Erf(float64(s.Wins-s.Losses)/math.Sqrt(2*float64(s.Wins+s.Losses)))
	}
}
