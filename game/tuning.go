package game

const (
	WorldWidth     = 800.0
	WorldHeight    = 600.0
	TreatMinX      = 50.0
	TreatMaxX      = 750.0
	TreatMinY      = 50.0
	TreatMaxY      = 550.0
	SpawnX         = 100.0
	SpawnY         = 100.0
	TreatsPerRound = 10 // fresh set on start/reset
	TreatsPerJoin  = 3  // density top-up when a player joins a room
)
