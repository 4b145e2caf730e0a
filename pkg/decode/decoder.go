// Package decode turns raw combat-log lines into typed events.
//
// A Decoder is configured once with a textual layout and the local player's
// name; per-line work is limited to field splitting and numeric parsing.
// Lines that cannot be decoded yield no event: blank lines, comments and
// unsupported action kinds are skipped, and malformed numeric fields drop
// the single line rather than the whole pass.
package decode

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/raidflow/raidflow/internal/model"
)

// Layout selects between the historical log formats.
type Layout uint8

const (
	// LayoutV1 is the older format: no unit flags, no spell ids, and the
	// local player written as a first-person pronoun.
	LayoutV1 Layout = 1

	// LayoutV2 is the flagged format and the canonical render target.
	LayoutV2 Layout = 2
)

// ParseLayout parses a layout selector ("1" or "2").
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "1", "v1":
		return LayoutV1, nil
	case "2", "v2":
		return LayoutV2, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLayout, s)
	}
}

// timeLayout is the timestamp prefix shared by both formats. Logs carry no
// year, so timestamps are seconds relative to Jan 1 of a fixed epoch year.
const timeLayout = "1/2 15:04:05.000"

var epoch = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)

// Decoder decodes raw lines of one layout.
type Decoder struct {
	layout Layout

	// loggerName replaces the first-person pronoun in V1 lines. Empty
	// means leave the pronoun as the actor id.
	loggerName string
}

// New creates a decoder for the given layout.
func New(layout Layout, loggerName string) *Decoder {
	return &Decoder{layout: layout, loggerName: loggerName}
}

// Layout returns the configured layout.
func (d *Decoder) Layout() Layout { return d.layout }

// Decode parses one raw line. On failure it returns a nil event and one of
// the package sentinel errors; every decode error is non-fatal and callers
// are expected to count and skip.
func (d *Decoder) Decode(line string) (*model.Event, error) {
	line = strings.TrimRight(line, "\r\n")
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, ErrEmptyLine
	}
	if strings.HasPrefix(trimmed, "#") {
		return nil, ErrComment
	}

	// Timestamp and field list are separated by a double space.
	sep := strings.Index(line, "  ")
	if sep < 0 {
		return nil, fmt.Errorf("%w: missing timestamp separator", ErrMalformed)
	}

	ts, err := time.Parse(timeLayout, line[:sep])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadTimestamp, line[:sep])
	}

	fields := splitFields(line[sep+2:])
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no action field", ErrMalformed)
	}

	kind := model.ParseActionKind(fields[0])
	if kind == model.ActionUnknown {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, fields[0])
	}

	ev := &model.Event{
		Timestamp: ts.Sub(epoch).Seconds(),
		Action:    kind,
	}

	switch d.layout {
	case LayoutV1:
		err = d.decodeV1(ev, fields[1:])
	case LayoutV2:
		err = d.decodeV2(ev, fields[1:])
	default:
		err = ErrUnknownLayout
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// decodeV2 parses the flagged layout:
//
//	ACTION,actor,0xflags,target,0xflags,<body per kind>
//
// UNIT_DIED carries only the dying unit and its flags.
func (d *Decoder) decodeV2(ev *model.Event, f []string) error {
	if ev.Action == model.ActionDeath {
		if len(f) != 2 {
			return fmt.Errorf("%w: UNIT_DIED wants 2 fields, got %d", ErrMalformed, len(f))
		}
		flags, err := parseFlags(f[1])
		if err != nil {
			return err
		}
		ev.Actor, ev.ActorFlags = f[0], flags
		return nil
	}

	if len(f) < 4 {
		return fmt.Errorf("%w: truncated unit fields", ErrMalformed)
	}
	aFlags, err := parseFlags(f[1])
	if err != nil {
		return err
	}
	tFlags, err := parseFlags(f[3])
	if err != nil {
		return err
	}
	ev.Actor, ev.ActorFlags = f[0], aFlags
	ev.Target, ev.TargetFlags = f[2], tFlags
	body := f[4:]

	if ev.Action != model.ActionSwingDamage {
		// Every non-swing kind opens its body with spell id and name.
		if len(body) < 2 {
			return fmt.Errorf("%w: missing spell fields", ErrMalformed)
		}
		id, err := parseNum(body[0])
		if err != nil {
			return err
		}
		ev.SpellID, ev.SpellName = id, body[1]
		body = body[2:]
	}
	return decodeBody(ev, body)
}

// decodeV1 parses the older layout:
//
//	ACTION,actor,target,<body per kind, without spell ids>
//
// First-person pronouns are substituted with the configured logger name.
func (d *Decoder) decodeV1(ev *model.Event, f []string) error {
	if ev.Action == model.ActionDeath {
		if len(f) != 1 {
			return fmt.Errorf("%w: UNIT_DIED wants 1 field, got %d", ErrMalformed, len(f))
		}
		ev.Actor = d.subject(f[0])
		return nil
	}

	if len(f) < 2 {
		return fmt.Errorf("%w: truncated unit fields", ErrMalformed)
	}
	ev.Actor = d.subject(f[0])
	ev.Target = d.subject(f[1])
	body := f[2:]

	if ev.Action != model.ActionSwingDamage {
		if len(body) < 1 {
			return fmt.Errorf("%w: missing spell name", ErrMalformed)
		}
		ev.SpellName = body[0]
		body = body[1:]
	}
	return decodeBody(ev, body)
}

// decodeBody parses the per-kind suffix fields shared by both layouts.
func decodeBody(ev *model.Event, body []string) error {
	switch ev.Action {
	case model.ActionSwingDamage, model.ActionSpellDamage, model.ActionPeriodicDamage:
		if len(body) != 7 {
			return fmt.Errorf("%w: damage wants 7 suffix fields, got %d", ErrMalformed, len(body))
		}
		ev.School = body[0]
		nums, err := parseNums(body[1:6])
		if err != nil {
			return err
		}
		ev.Amount, ev.Overkill, ev.Absorbed, ev.Resisted, ev.Blocked =
			nums[0], nums[1], nums[2], nums[3], nums[4]
		crit, err := parseBool(body[6])
		if err != nil {
			return err
		}
		ev.Critical = crit

	case model.ActionHeal, model.ActionPeriodicHeal:
		if len(body) != 3 {
			return fmt.Errorf("%w: heal wants 3 suffix fields, got %d", ErrMalformed, len(body))
		}
		nums, err := parseNums(body[:2])
		if err != nil {
			return err
		}
		ev.Amount, ev.Overkill = nums[0], nums[1]
		crit, err := parseBool(body[2])
		if err != nil {
			return err
		}
		ev.Critical = crit

	case model.ActionEnergize, model.ActionDrain:
		if len(body) != 2 {
			return fmt.Errorf("%w: energize wants 2 suffix fields, got %d", ErrMalformed, len(body))
		}
		power := model.ParsePowerType(body[0])
		if power == model.PowerNone {
			return fmt.Errorf("%w: power type %q", ErrMalformed, body[0])
		}
		amount, err := parseNum(body[1])
		if err != nil {
			return err
		}
		ev.Power, ev.Amount = power, amount

	case model.ActionCastStart, model.ActionCastSuccess,
		model.ActionAuraApplied, model.ActionAuraRemoved, model.ActionSummon:
		if len(body) != 0 {
			return fmt.Errorf("%w: unexpected suffix fields", ErrMalformed)
		}

	case model.ActionInterrupt, model.ActionDispel:
		if len(body) != 1 {
			return fmt.Errorf("%w: interrupt wants 1 suffix field, got %d", ErrMalformed, len(body))
		}
		ev.ExtraSpellName = body[0]

	case model.ActionExtraAttacks:
		if len(body) != 1 {
			return fmt.Errorf("%w: extra attacks wants 1 suffix field, got %d", ErrMalformed, len(body))
		}
		amount, err := parseNum(body[0])
		if err != nil {
			return err
		}
		ev.Amount = amount
	}
	return nil
}

// subject resolves V1 first-person pronouns to the logger's identity.
func (d *Decoder) subject(s string) string {
	if d.loggerName == "" {
		return s
	}
	switch s {
	case "you", "You", "yourself":
		return d.loggerName
	}
	return s
}

func parseFlags(s string) (model.UnitFlag, error) {
	if !strings.HasPrefix(s, "0x") {
		return 0, fmt.Errorf("%w: flags %q", ErrBadNumber, s)
	}
	v, err := strconv.ParseUint(s[2:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: flags %q", ErrBadNumber, s)
	}
	return model.UnitFlag(v), nil
}

func parseNum(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadNumber, s)
	}
	return v, nil
}

func parseNums(fields []string) ([]int64, error) {
	out := make([]int64, len(fields))
	for i, s := range fields {
		v, err := parseNum(s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: crit flag %q", ErrBadNumber, s)
	}
}
