package decode

import (
	"errors"
	"testing"

	"github.com/raidflow/raidflow/internal/model"
)

func TestDecodeSpellDamageV2(t *testing.T) {
	d := New(LayoutV2, "")

	line := `4/21 21:01:02.123  SPELL_DAMAGE,Kaelen,0x9,"Gorefiend, the Render",0x12,10151,Fireball,fire,421,0,0,35,0,1`
	ev, err := d.Decode(line)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if ev.Action != model.ActionSpellDamage {
		t.Errorf("Action = %v, want SPELL_DAMAGE", ev.Action)
	}
	if ev.Actor != "Kaelen" || ev.Target != "Gorefiend, the Render" {
		t.Errorf("units = %q -> %q", ev.Actor, ev.Target)
	}
	if !ev.ActorFlags.Has(model.FlagFriendly | model.FlagPlayer) {
		t.Errorf("ActorFlags = %#x", ev.ActorFlags)
	}
	if ev.SpellID != 10151 || ev.SpellName != "Fireball" || ev.School != "fire" {
		t.Errorf("spell = %d %q %q", ev.SpellID, ev.SpellName, ev.School)
	}
	if ev.Amount != 421 || ev.Resisted != 35 || !ev.Critical {
		t.Errorf("payload = amount %d resisted %d crit %v", ev.Amount, ev.Resisted, ev.Critical)
	}
}

func TestDecodeFirstPersonV1(t *testing.T) {
	d := New(LayoutV1, "Thalor")

	ev, err := d.Decode(`4/21 21:01:02.000  SPELL_HEAL,you,yourself,Healing Touch,880,120,0`)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if ev.Actor != "Thalor" || ev.Target != "Thalor" {
		t.Errorf("pronoun substitution: %q -> %q, want Thalor -> Thalor", ev.Actor, ev.Target)
	}
	if ev.SpellID != 0 {
		t.Errorf("V1 lines carry no spell ids, got %d", ev.SpellID)
	}
	if ev.Amount != 880 || ev.Overkill != 120 {
		t.Errorf("heal payload = %d/%d", ev.Amount, ev.Overkill)
	}
}

func TestDecodeV1WithoutLoggerName(t *testing.T) {
	d := New(LayoutV1, "")

	ev, err := d.Decode(`4/21 21:01:02.000  SPELL_CAST_SUCCESS,you,Ragnaros,Frostbolt`)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if ev.Actor != "you" {
		t.Errorf("unconfigured logger name must leave the pronoun, got %q", ev.Actor)
	}
}

func TestDecodeSkips(t *testing.T) {
	d := New(LayoutV2, "")

	tests := []struct {
		name string
		line string
		want error
	}{
		{"blank", "   ", ErrEmptyLine},
		{"comment", "# combat log started", ErrComment},
		{"no separator", "4/21 21:01:02.123 SPELL_DAMAGE,a,0x0,b,0x0", ErrMalformed},
		{"bad timestamp", "zz/21 21:01:02.123  UNIT_DIED,Boss,0x12", ErrBadTimestamp},
		{"unknown action", "4/21 21:01:02.123  SPELL_REFLECT,a,0x0,b,0x0", ErrUnknownAction},
		{"bad amount", "4/21 21:01:02.123  SPELL_HEAL,a,0x0,b,0x0,1,Renew,abc,0,0", ErrBadNumber},
		{"bad flags", "4/21 21:01:02.123  UNIT_DIED,Boss,22", ErrBadNumber},
		{"wrong shape", "4/21 21:01:02.123  SPELL_ENERGIZE,a,0x0,b,0x0,1,Judgement,mana", ErrMalformed},
		{"bad power", "4/21 21:01:02.123  SPELL_ENERGIZE,a,0x0,b,0x0,1,Judgement,chi,50", ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := d.Decode(tt.line)
			if ev != nil {
				t.Fatalf("skip must not produce an event, got %+v", ev)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeRobustness(t *testing.T) {
	// N lines with K deliberately malformed must yield exactly N-K events.
	lines := []string{
		`4/21 21:00:00.000  SPELL_CAST_START,Kaelen,0x9,Kaelen,0x9,10151,Fireball`,
		`this is not a combat log line`,
		`4/21 21:00:01.500  SWING_DAMAGE,Kaelen,0x9,Gorefiend,0x12,physical,120,0,0,0,15,0`,
		`4/21 21:00:02.000  SPELL_DAMAGE,Kaelen,0x9,Gorefiend,0x12,10151,Fireball,fire,not-a-number,0,0,0,0,0`,
		`4/21 21:00:03.000  UNIT_DIED,Gorefiend,0x12`,
	}

	d := New(LayoutV2, "")
	decoded := 0
	for _, line := range lines {
		if ev, err := d.Decode(line); err == nil && ev != nil {
			decoded++
		}
	}
	if decoded != 3 {
		t.Errorf("decoded %d events from 5 lines with 2 malformed, want 3", decoded)
	}
}

func TestDecodeTimestampPrecision(t *testing.T) {
	d := New(LayoutV2, "")

	early, err := d.Decode(`1/1 00:00:10.250  UNIT_DIED,Boss,0x12`)
	if err != nil {
		t.Fatal(err)
	}
	late, err := d.Decode(`1/1 00:01:10.750  UNIT_DIED,Boss,0x12`)
	if err != nil {
		t.Fatal(err)
	}

	if early.Timestamp != 10.25 {
		t.Errorf("Timestamp = %v, want 10.25", early.Timestamp)
	}
	if got := late.Timestamp - early.Timestamp; got != 60.5 {
		t.Errorf("delta = %v, want 60.5", got)
	}
}

func TestDecodeDeterminism(t *testing.T) {
	// Replayable sources re-decode lines; both decodes must agree exactly.
	line := `4/21 21:01:02.123  SPELL_ENERGIZE,"Thalor",0x9,"Kaelen",0x9,20250,"Blessing of Wisdom",mana,33`

	d := New(LayoutV2, "")
	first, err := d.Decode(line)
	if err != nil {
		t.Fatal(err)
	}
	second, err := d.Decode(line)
	if err != nil {
		t.Fatal(err)
	}
	if *first != *second {
		t.Errorf("re-decode differs:\n first %+v\nsecond %+v", first, second)
	}
}

func TestParseLayout(t *testing.T) {
	if l, err := ParseLayout("1"); err != nil || l != LayoutV1 {
		t.Errorf("ParseLayout(1) = %v, %v", l, err)
	}
	if l, err := ParseLayout("v2"); err != nil || l != LayoutV2 {
		t.Errorf("ParseLayout(v2) = %v, %v", l, err)
	}
	if _, err := ParseLayout("3"); !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("ParseLayout(3) err = %v", err)
	}
}
