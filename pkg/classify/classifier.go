// Package classify infers participant roles from the observed event stream.
//
// The classifier is a push consumer: Process is called once per event in
// stream order, Finish freezes and returns the actor table. Evidence is
// ranked: a hints override beats everything, pet linkage beats ability
// evidence, the first matching ability rule beats any power-draw pattern,
// and ids with no evidence at all finalize as unknown.
package classify

import "github.com/raidflow/raidflow/internal/model"

// record accumulates per-id evidence before finalization.
type record struct {
	class  model.ClassTag // first strong ability match, never overwritten
	pet    bool
	owner  string
	powers map[model.PowerType]int
}

// Classifier builds the actor table from one pass over the stream.
type Classifier struct {
	records map[string]*record
	hints   map[string]model.ClassTag
	done    bool
}

// New creates a classifier. hints force specific ids to specific classes
// and take precedence over all inferred evidence; nil disables overrides.
func New(hints map[string]model.ClassTag) *Classifier {
	return &Classifier{
		records: make(map[string]*record),
		hints:   hints,
	}
}

// Process folds one event's evidence into the table. Calls after Finish
// are ignored.
func (c *Classifier) Process(ev *model.Event) {
	if c.done {
		return
	}

	actor := c.observe(ev.Actor, ev.ActorFlags)
	target := c.observe(ev.Target, ev.TargetFlags)

	// A summon binds the summoned id to its owner. The most recent summon
	// naming an id wins, so resummoned pets follow their current owner.
	if ev.Action == model.ActionSummon && target != nil {
		target.pet = true
		target.owner = ev.Actor
	}

	// Ability evidence applies to the acting unit. Pets bypass it.
	if actor != nil && !actor.pet && actor.class == model.ClassUnknown {
		if class, ok := spellClass(ev.SpellID, ev.SpellName); ok {
			actor.class = class
		}
	}

	// Power draw: the recipient of an energize refills its own pool.
	if ev.Action == model.ActionEnergize && target != nil {
		if target.powers == nil {
			target.powers = make(map[model.PowerType]int)
		}
		target.powers[ev.Power]++
	}
}

// observe creates or refines the record for an id. Flags marking the unit
// as a pet are remembered; an empty id yields no record.
func (c *Classifier) observe(id string, flags model.UnitFlag) *record {
	if id == "" {
		return nil
	}
	r, ok := c.records[id]
	if !ok {
		r = &record{class: model.ClassUnknown}
		c.records[id] = r
	}
	if flags.Has(model.FlagPet) {
		r.pet = true
	}
	return r
}

// Finish freezes the table. Hints override inference; pets resolve to their
// most recent summoner; leftover unknowns fall back to power-draw patterns
// and finally to unknown.
func (c *Classifier) Finish() model.ActorTable {
	c.done = true

	table := make(model.ActorTable, len(c.records))
	for id, r := range c.records {
		actor := &model.Actor{ID: id, Class: c.resolve(id, r)}
		if actor.Class == model.ClassPet {
			actor.OwnerID = r.owner
		}
		table[id] = actor
	}
	return table
}

func (c *Classifier) resolve(id string, r *record) model.ClassTag {
	if hint, ok := c.hints[id]; ok {
		return hint
	}
	if r.pet {
		return model.ClassPet
	}
	if r.class != model.ClassUnknown {
		return r.class
	}
	// Fixed probe order keeps resolution deterministic when an id was
	// somehow fed from more than one pool.
	for _, power := range []model.PowerType{
		model.PowerRage, model.PowerEnergy, model.PowerFocus, model.PowerHappiness,
	} {
		if r.powers[power] > 0 {
			return powerClasses[power]
		}
	}
	return model.ClassUnknown
}
