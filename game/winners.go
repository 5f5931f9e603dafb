package game

import "sort"

// Winners returns every player holding the top score, ordered by ID. Ties
// produce several winners; when nobody scored, everyone shares the win.
func Winners(players []Player) []Player {
	if len(players) == 0 {
		return nil
	}
	best := players[0].Score
	for _, p := range players[1:] {
		if p.Score > best {
			best = p.Score
		}
	}
	var out []Player
	for _, p := range players {
		if p.Score == best {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
