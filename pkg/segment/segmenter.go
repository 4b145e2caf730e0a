// Package segment partitions a combat-event stream into bounded encounters.
//
// The segmenter keeps one state machine per boss name, so windows for the
// same boss can never overlap while different bosses may run concurrently.
// A pull opens on the first damage event involving a registered boss,
// closes as a kill on that boss's death event, and closes as a wipe when
// qualifying activity stops for longer than the configured timeout or the
// stream ends. Repeated pulls on one boss yield distinct encounters keyed
// by (bossName, startTime).
package segment

import "github.com/raidflow/raidflow/internal/model"

// DefaultWipeTimeout is the inactivity window, in seconds, after which an
// active pull is considered abandoned.
const DefaultWipeTimeout = 120.0

// Config holds segmentation policy knobs.
type Config struct {
	// WipeTimeout is the inactivity timeout in seconds; 0 selects
	// DefaultWipeTimeout.
	WipeTimeout float64

	// Bosses extends the built-in boss registry.
	Bosses []string
}

// pull is one in-flight encounter.
type pull struct {
	enc          *model.Encounter
	lastActivity float64
	lastIndex    int
}

// Segmenter consumes events in stream order and produces the encounter
// table on Finish.
type Segmenter struct {
	timeout float64
	bosses  map[string]struct{}

	active map[string]*pull
	closed model.EncounterTable
	index  int

	// Stream clock, used to close end-of-stream wipes at the point the
	// log actually stops rather than at the boss's last activity.
	lastTime  float64
	lastIndex int
}

// New creates a segmenter.
func New(cfg Config) *Segmenter {
	timeout := cfg.WipeTimeout
	if timeout <= 0 {
		timeout = DefaultWipeTimeout
	}

	bosses := make(map[string]struct{}, len(defaultBosses)+len(cfg.Bosses))
	for _, name := range defaultBosses {
		bosses[name] = struct{}{}
	}
	for _, name := range cfg.Bosses {
		bosses[name] = struct{}{}
	}

	return &Segmenter{
		timeout: timeout,
		bosses:  bosses,
		active:  make(map[string]*pull),
		closed:  make(model.EncounterTable),
	}
}

// Process folds one event into the per-boss state machines. Must be called
// once per event in stream order.
func (s *Segmenter) Process(ev *model.Event) {
	idx := s.index
	s.index++
	s.lastTime = ev.Timestamp
	s.lastIndex = idx

	// Inactivity is evaluated lazily against the incoming event's clock:
	// any pull quiet for longer than the timeout wiped back at its last
	// observed activity.
	for name, p := range s.active {
		if ev.Timestamp-p.lastActivity > s.timeout {
			s.wipe(name, p)
		}
	}

	// A boss death closes its pull as a kill.
	if ev.Action == model.ActionDeath {
		if p, ok := s.active[ev.Actor]; ok {
			p.enc.Outcome = model.OutcomeKill
			p.enc.EndTime = ev.Timestamp
			p.enc.EndIndex = idx
			s.closed[p.enc.Key()] = p.enc
			delete(s.active, ev.Actor)
		}
		return
	}

	boss, involved := s.bossInvolved(ev)
	if !involved {
		return
	}

	p, ok := s.active[boss]
	if !ok {
		// Idle -> Active on damage involving the boss; anything softer
		// (an aura, a stray heal) does not open a pull.
		if !ev.Action.IsDamage() {
			return
		}
		p = &pull{enc: &model.Encounter{
			BossName:     boss,
			StartTime:    ev.Timestamp,
			StartIndex:   idx,
			Outcome:      model.OutcomeWipe,
			Participants: make(map[string]struct{}),
		}}
		s.active[boss] = p
	}

	p.lastActivity = ev.Timestamp
	p.lastIndex = idx
	if ev.Actor != "" {
		p.enc.Participants[ev.Actor] = struct{}{}
	}
	if ev.Target != "" {
		p.enc.Participants[ev.Target] = struct{}{}
	}
}

// Finish closes any still-active pulls as wipes at the end of the stream
// and returns the table.
func (s *Segmenter) Finish() model.EncounterTable {
	for name, p := range s.active {
		p.lastActivity = s.lastTime
		p.lastIndex = s.lastIndex
		s.wipe(name, p)
	}
	return s.closed
}

// bossInvolved reports which registered boss an event involves, if any.
func (s *Segmenter) bossInvolved(ev *model.Event) (string, bool) {
	if _, ok := s.bosses[ev.Target]; ok {
		return ev.Target, true
	}
	if _, ok := s.bosses[ev.Actor]; ok {
		return ev.Actor, true
	}
	return "", false
}

func (s *Segmenter) wipe(name string, p *pull) {
	p.enc.Outcome = model.OutcomeWipe
	p.enc.EndTime = p.lastActivity
	p.enc.EndIndex = p.lastIndex
	s.closed[p.enc.Key()] = p.enc
	delete(s.active, name)
}
