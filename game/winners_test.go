package game

import "testing"

func TestWinnersTieAtMax(t *testing.T) {
	got := Winners([]Player{
		{ID: "C", Score: 5},
		{ID: "A", Score: 3},
		{ID: "B", Score: 5},
	})
	if len(got) != 2 || got[0].ID != "B" || got[1].ID != "C" {
		t.Fatalf("winners = %+v, want B and C", got)
	}
}

func TestWinnersSingle(t *testing.T) {
	got := Winners([]Player{{ID: "A", Score: 1}, {ID: "B", Score: 4}})
	if len(got) != 1 || got[0].ID != "B" {
		t.Fatalf("winners = %+v, want B", got)
	}
}

func TestWinnersAllZero(t *testing.T) {
	got := Winners([]Player{{ID: "A"}, {ID: "B"}})
	if len(got) != 2 {
		t.Fatalf("winners = %+v, want both players", got)
	}
}

func TestWinnersEmpty(t *testing.T) {
	if got := Winners(nil); got != nil {
		t.Fatalf("winners of nobody = %+v", got)
	}
}
