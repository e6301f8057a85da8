package sinkhole

// Snapshot is the complete observable game state for network transmission.
// The web host serializes it to JSON every broadcast tick.
type Snapshot struct {
	Tick       int    `json:"tick"`
	Mode       string `json:"mode"`
	LevelIndex int    `json:"levelIndex"`
	LevelCount int    `json:"levelCount"`
	LevelID    string `json:"levelId"`
	LevelName  string `json:"levelName"`
	State      string `json:"state"`

	HoleX      float64 `json:"holeX"`
	HoleZ      float64 `json:"holeZ"`
	HoleRadius float64 `json:"holeRadius"`

	VictoryKind  string  `json:"victoryKind"`
	TargetRadius float64 `json:"targetRadius,omitempty"`
	Remaining    int     `json:"remaining"`
	RequiredLeft int     `json:"requiredLeft"`
	Swallowed    int     `json:"swallowed"`
	InFlight     int     `json:"inFlight"`
	HalfExtent   float64 `json:"halfExtent"`
	Complete     bool    `json:"complete"`
	Paused       bool    `json:"paused"`

	Objects []SnapshotObject `json:"objects"`
	Cuts    []SnapshotCut    `json:"cuts"`
}

// SnapshotObject is one live object in the snapshot.
type SnapshotObject struct {
	ID       string  `json:"id"`
	Shape    string  `json:"shape"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Radius   float64 `json:"radius"`
	Required bool    `json:"required"`
	Falling  bool    `json:"falling"`
}

// SnapshotCut is one terrain cut in the snapshot.
type SnapshotCut struct {
	X      float64 `json:"x"`
	Z      float64 `json:"z"`
	Radius float64 `json:"radius"`
}

// Snapshot returns the current game state for clients.
func (g *Game) Snapshot() Snapshot {
	lvl := g.manager.CurrentLevel()
	pos := g.machine.Position()

	live := g.world.Live()
	objects := make([]SnapshotObject, 0, len(live))
	for _, o := range live {
		objects = append(objects, SnapshotObject{
			ID:       o.ID,
			Shape:    o.Shape,
			X:        o.Pos.X,
			Y:        o.Pos.Y,
			Z:        o.Pos.Z,
			Radius:   o.Radius,
			Required: o.Required,
			Falling:  o.Falling,
		})
	}

	sceneCuts := g.world.Cuts()
	cuts := make([]SnapshotCut, 0, len(sceneCuts))
	for _, c := range sceneCuts {
		cuts = append(cuts, SnapshotCut{X: c.X, Z: c.Z, Radius: c.Radius})
	}

	mode := "campaign"
	if g.mode == ModeEndless {
		mode = "endless"
	}

	return Snapshot{
		Tick:         g.tickCount,
		Mode:         mode,
		LevelIndex:   g.manager.LevelIndex(),
		LevelCount:   len(g.catalog),
		LevelID:      lvl.ID,
		LevelName:    lvl.Name,
		State:        g.manager.State().String(),
		HoleX:        pos.X,
		HoleZ:        pos.Z,
		HoleRadius:   g.machine.Radius(),
		VictoryKind:  string(lvl.Victory.Kind),
		TargetRadius: lvl.Victory.TargetRadius,
		Remaining:    g.manager.Remaining(),
		RequiredLeft: g.manager.RequiredRemaining(),
		Swallowed:    g.swallowedTotal,
		InFlight:     g.machine.InFlight(),
		HalfExtent:   g.world.HalfExtent(),
		Complete:     g.complete,
		Paused:       g.paused,
		Objects:      objects,
		Cuts:         cuts,
	}
}
