// Package model defines core data structures for RaidFlow.
package model

// ActionKind identifies the kind of action a decoded log line describes.
type ActionKind uint8

const (
	ActionUnknown ActionKind = iota
	ActionSwingDamage
	ActionSpellDamage
	ActionPeriodicDamage
	ActionHeal
	ActionPeriodicHeal
	ActionEnergize
	ActionDrain
	ActionCastStart
	ActionCastSuccess
	ActionInterrupt
	ActionAuraApplied
	ActionAuraRemoved
	ActionExtraAttacks
	ActionSummon
	ActionDispel
	ActionDeath
)

// String returns the canonical action name used in the log text.
func (k ActionKind) String() string {
	switch k {
	case ActionSwingDamage:
		return "SWING_DAMAGE"
	case ActionSpellDamage:
		return "SPELL_DAMAGE"
	case ActionPeriodicDamage:
		return "SPELL_PERIODIC_DAMAGE"
	case ActionHeal:
		return "SPELL_HEAL"
	case ActionPeriodicHeal:
		return "SPELL_PERIODIC_HEAL"
	case ActionEnergize:
		return "SPELL_ENERGIZE"
	case ActionDrain:
		return "SPELL_DRAIN"
	case ActionCastStart:
		return "SPELL_CAST_START"
	case ActionCastSuccess:
		return "SPELL_CAST_SUCCESS"
	case ActionInterrupt:
		return "SPELL_INTERRUPT"
	case ActionAuraApplied:
		return "SPELL_AURA_APPLIED"
	case ActionAuraRemoved:
		return "SPELL_AURA_REMOVED"
	case ActionExtraAttacks:
		return "SPELL_EXTRA_ATTACKS"
	case ActionSummon:
		return "SPELL_SUMMON"
	case ActionDispel:
		return "SPELL_DISPEL"
	case ActionDeath:
		return "UNIT_DIED"
	default:
		return "UNKNOWN"
	}
}

// ParseActionKind parses a canonical action name.
func ParseActionKind(s string) ActionKind {
	switch s {
	case "SWING_DAMAGE":
		return ActionSwingDamage
	case "SPELL_DAMAGE":
		return ActionSpellDamage
	case "SPELL_PERIODIC_DAMAGE":
		return ActionPeriodicDamage
	case "SPELL_HEAL":
		return ActionHeal
	case "SPELL_PERIODIC_HEAL":
		return ActionPeriodicHeal
	case "SPELL_ENERGIZE":
		return ActionEnergize
	case "SPELL_DRAIN":
		return ActionDrain
	case "SPELL_CAST_START":
		return ActionCastStart
	case "SPELL_CAST_SUCCESS":
		return ActionCastSuccess
	case "SPELL_INTERRUPT":
		return ActionInterrupt
	case "SPELL_AURA_APPLIED":
		return ActionAuraApplied
	case "SPELL_AURA_REMOVED":
		return ActionAuraRemoved
	case "SPELL_EXTRA_ATTACKS":
		return ActionExtraAttacks
	case "SPELL_SUMMON":
		return ActionSummon
	case "SPELL_DISPEL":
		return ActionDispel
	case "UNIT_DIED":
		return ActionDeath
	default:
		return ActionUnknown
	}
}

// IsDamage reports whether the kind carries a damage payload.
func (k ActionKind) IsDamage() bool {
	return k == ActionSwingDamage || k == ActionSpellDamage || k == ActionPeriodicDamage
}

// IsHeal reports whether the kind carries a healing payload.
func (k ActionKind) IsHeal() bool {
	return k == ActionHeal || k == ActionPeriodicHeal
}

// UnitFlag is a bitset describing a participant as seen on one event.
type UnitFlag uint32

const (
	FlagFriendly UnitFlag = 1 << iota
	FlagHostile
	FlagNeutral
	FlagPlayer
	FlagNPC
	FlagPet
)

// Has reports whether all bits in mask are set.
func (f UnitFlag) Has(mask UnitFlag) bool { return f&mask == mask }

// PowerType identifies the resource pool an energize or drain event touches.
type PowerType uint8

const (
	PowerNone PowerType = iota
	PowerMana
	PowerRage
	PowerEnergy
	PowerFocus
	PowerHappiness
)

// String returns the power name used in the log text.
func (p PowerType) String() string {
	switch p {
	case PowerMana:
		return "mana"
	case PowerRage:
		return "rage"
	case PowerEnergy:
		return "energy"
	case PowerFocus:
		return "focus"
	case PowerHappiness:
		return "happiness"
	default:
		return "none"
	}
}

// ParsePowerType parses a power name.
func ParsePowerType(s string) PowerType {
	switch s {
	case "mana":
		return PowerMana
	case "rage":
		return PowerRage
	case "energy":
		return PowerEnergy
	case "focus":
		return PowerFocus
	case "happiness":
		return PowerHappiness
	default:
		return PowerNone
	}
}

// Event is one decoded combat action. Events are immutable once decoded:
// the decoder returns a fresh value per line and nothing downstream writes
// to it. A line that cannot be decoded produces no Event at all.
type Event struct {
	// Timestamp is seconds since the log's reference epoch, with
	// sub-second precision. Monotonic within one log.
	Timestamp float64

	Action ActionKind

	// Actor is the acting unit's stable identifier. Target may be empty
	// for self-only actions.
	Actor       string
	ActorFlags  UnitFlag
	Target      string
	TargetFlags UnitFlag

	SpellID   int64
	SpellName string

	// School is the damage-type tag ("physical", "fire", ...). Empty when
	// the action carries none.
	School string

	// Numeric payload; which fields are meaningful depends on Action.
	Amount   int64 // damage, healing, power gained, extra attacks granted
	Overkill int64 // overkill for damage, overheal for heals
	Absorbed int64
	Resisted int64
	Blocked  int64
	Critical bool

	// Power is set for energize/drain events.
	Power PowerType

	// ExtraSpellName names the interrupted or dispelled spell.
	ExtraSpellName string
}
