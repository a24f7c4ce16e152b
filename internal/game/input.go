package game

// Input is the control snapshot for one simulation tick. Held controls are
// read as-is; Interact and Reload are edge flags the step clears once it
// has acted on them, as is the accumulated mouse TurnDelta.
type Input struct {
	Forward     bool
	Back        bool
	StrafeLeft  bool
	StrafeRight bool
	TurnLeft    bool
	TurnRight   bool
	Sprint      bool
	Fire        bool

	TurnDelta float64 // radians, positive turns right

	Interact bool
	Reload   bool
}

// ConsumeInteract returns and clears the interact edge.
func (in *Input) ConsumeInteract() bool {
	v := in.Interact
	in.Interact = false
	return v
}

// ConsumeReload returns and clears the reload edge.
func (in *Input) ConsumeReload() bool {
	v := in.Reload
	in.Reload = false
	return v
}

// ConsumeTurn returns and clears the accumulated mouse turn.
func (in *Input) ConsumeTurn() float64 {
	v := in.TurnDelta
	in.TurnDelta = 0
	return v
}
