package model

// Action is a human-friendly decision for a timestep.
// Keep these values stable; they are intended for CSV and API output.
type Action string

const (
	ActionClean Action = "CLEAN"
	ActionWait  Action = "WAIT"
)
