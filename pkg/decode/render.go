package decode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/raidflow/raidflow/internal/model"
)

// Render reproduces the canonical (V2) textual form of an event. Events
// carrying fields the canonical form cannot express (an unknown action, a
// spell name on a swing, a target on a death, or a power type on a kind
// without one) return ErrUnprintable. The decoder run back over the output
// yields an event equal to the input in all populated fields.
func Render(ev *model.Event) (string, error) {
	if err := printable(ev); err != nil {
		return "", err
	}

	var b strings.Builder
	ms := time.Duration(math.Round(ev.Timestamp*1000)) * time.Millisecond
	b.WriteString(epoch.Add(ms).Format(timeLayout))
	b.WriteString("  ")
	b.WriteString(ev.Action.String())

	if ev.Action == model.ActionDeath {
		fmt.Fprintf(&b, ",%s,0x%x", quoteField(ev.Actor), uint32(ev.ActorFlags))
		return b.String(), nil
	}

	fmt.Fprintf(&b, ",%s,0x%x,%s,0x%x",
		quoteField(ev.Actor), uint32(ev.ActorFlags),
		quoteField(ev.Target), uint32(ev.TargetFlags))

	if ev.Action != model.ActionSwingDamage {
		fmt.Fprintf(&b, ",%d,%s", ev.SpellID, quoteField(ev.SpellName))
	}

	switch {
	case ev.Action.IsDamage():
		fmt.Fprintf(&b, ",%s,%d,%d,%d,%d,%d,%s", ev.School,
			ev.Amount, ev.Overkill, ev.Absorbed, ev.Resisted, ev.Blocked,
			renderBool(ev.Critical))
	case ev.Action.IsHeal():
		fmt.Fprintf(&b, ",%d,%d,%s", ev.Amount, ev.Overkill, renderBool(ev.Critical))
	case ev.Action == model.ActionEnergize || ev.Action == model.ActionDrain:
		fmt.Fprintf(&b, ",%s,%d", ev.Power, ev.Amount)
	case ev.Action == model.ActionInterrupt || ev.Action == model.ActionDispel:
		b.WriteByte(',')
		b.WriteString(quoteField(ev.ExtraSpellName))
	case ev.Action == model.ActionExtraAttacks:
		b.WriteString(",")
		b.WriteString(strconv.FormatInt(ev.Amount, 10))
	}
	return b.String(), nil
}

// printable reports whether the canonical form can carry every populated
// field of the event.
func printable(ev *model.Event) error {
	switch {
	case ev.Action == model.ActionUnknown:
		return fmt.Errorf("%w: unknown action", ErrUnprintable)
	case ev.Action == model.ActionSwingDamage && (ev.SpellID != 0 || ev.SpellName != ""):
		return fmt.Errorf("%w: spell fields on a swing", ErrUnprintable)
	case ev.Action == model.ActionDeath && ev.Target != "":
		return fmt.Errorf("%w: target on a death", ErrUnprintable)
	case ev.Power != model.PowerNone &&
		ev.Action != model.ActionEnergize && ev.Action != model.ActionDrain:
		return fmt.Errorf("%w: power on %s", ErrUnprintable, ev.Action)
	}
	return nil
}

func renderBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
