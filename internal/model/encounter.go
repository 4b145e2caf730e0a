package model

import "fmt"

// Outcome is the terminal state of an encounter.
type Outcome uint8

const (
	OutcomeWipe Outcome = iota
	OutcomeKill
)

// String returns "kill" or "wipe".
func (o Outcome) String() string {
	if o == OutcomeKill {
		return "kill"
	}
	return "wipe"
}

// Encounter is one bounded attempt at a named boss unit.
type Encounter struct {
	BossName  string
	StartTime float64
	EndTime   float64

	// StartIndex/EndIndex are inclusive positions into the decoded
	// event sequence.
	StartIndex int
	EndIndex   int

	Outcome Outcome

	// Participants holds the actor ids active inside the window.
	Participants map[string]struct{}
}

// Key distinguishes repeated pulls on the same boss.
func (e *Encounter) Key() string {
	return fmt.Sprintf("%s@%.3f", e.BossName, e.StartTime)
}

// Duration returns the window length in seconds.
func (e *Encounter) Duration() float64 { return e.EndTime - e.StartTime }

// EncounterTable maps Encounter.Key() to the finalized encounter.
type EncounterTable map[string]*Encounter
