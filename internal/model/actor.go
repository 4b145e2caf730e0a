package model

// ClassTag is the inferred role/class of a participant.
type ClassTag string

const (
	ClassUnknown ClassTag = "unknown"
	ClassPet     ClassTag = "pet"
	ClassWarrior ClassTag = "warrior"
	ClassPaladin ClassTag = "paladin"
	ClassHunter  ClassTag = "hunter"
	ClassRogue   ClassTag = "rogue"
	ClassPriest  ClassTag = "priest"
	ClassShaman  ClassTag = "shaman"
	ClassMage    ClassTag = "mage"
	ClassWarlock ClassTag = "warlock"
	ClassDruid   ClassTag = "druid"
)

// ValidClassTag reports whether s names a known class (including pet).
func ValidClassTag(s string) bool {
	switch ClassTag(s) {
	case ClassPet, ClassWarrior, ClassPaladin, ClassHunter, ClassRogue,
		ClassPriest, ClassShaman, ClassMage, ClassWarlock, ClassDruid:
		return true
	}
	return false
}

// Actor is one participant observed in the event stream.
type Actor struct {
	ID    string
	Class ClassTag

	// OwnerID is set only for pets and references the owning Actor. Pets
	// never own other actors, so the reference cannot form a cycle.
	OwnerID string
}

// IsPet reports whether the actor was classified as a pet.
func (a *Actor) IsPet() bool { return a.Class == ClassPet }

// ActorTable maps actor id to the finalized Actor.
type ActorTable map[string]*Actor

// Restrict returns the subset of the table whose ids appear in keep.
func (t ActorTable) Restrict(keep map[string]struct{}) ActorTable {
	out := make(ActorTable, len(keep))
	for id := range keep {
		if a, ok := t[id]; ok {
			out[id] = a
		}
	}
	return out
}
