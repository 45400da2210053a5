// Package command turns free-text phrases into device mutations. The
// interpreter is a pure function over the phrase and a device snapshot; the
// dispatcher feeds its output into the store verbs.
//
// No speech recognition happens here. Phrases arrive already transcribed,
// and intent detection is deterministic pattern matching, not an LLM.
package command

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/device"
)

// Kind identifies the grammar class a phrase matched.
type Kind string

const (
	// KindUnknown means no recognisable grammar class was found.
	KindUnknown Kind = "unknown"
	// KindLight is "turn (on|off) <room> light(s)".
	KindLight Kind = "light"
	// KindThermostat is "set <room> to <n> degrees".
	KindThermostat Kind = "thermostat"
	// KindLock is "(lock|unlock) <door> door".
	KindLock Kind = "lock"
)

// Verb is one of the three store mutations an intent maps to.
type Verb string

const (
	VerbToggleLight   Verb = "toggleLight"
	VerbSetThermostat Verb = "setThermostat"
	VerbToggleLock    Verb = "toggleLock"
)

// Grammar patterns, attempted in order. First match wins, which also settles
// any accidental overlap between classes.
var (
	lightRe      = regexp.MustCompile(`(?i)turn (on|off) (.+) lights?`)
	thermostatRe = regexp.MustCompile(`(?i)set (.+) to (\d+) degrees`)
	lockRe       = regexp.MustCompile(`(?i)(lock|unlock) (.+) door`)
)

// Parsed is the tagged result of grammar matching, before device resolution.
type Parsed struct {
	Kind        Kind
	On          bool   // light: true for "turn on"
	Lock        bool   // lock: true for "lock"
	Room        string // light/thermostat: captured room fragment
	Door        string // lock: captured door name fragment
	Temperature int    // thermostat: parsed target
	Raw         string // original phrase
}

// Parse classifies a phrase into one of the grammar classes.
func Parse(text string) Parsed {
	p := Parsed{Kind: KindUnknown, Raw: text}
	phrase := strings.TrimSpace(text)

	if m := lightRe.FindStringSubmatch(phrase); m != nil {
		p.Kind = KindLight
		p.On = strings.EqualFold(m[1], "on")
		p.Room = strings.TrimSpace(m[2])
		return p
	}

	if m := thermostatRe.FindStringSubmatch(phrase); m != nil {
		temp, err := strconv.Atoi(m[2])
		if err == nil {
			p.Kind = KindThermostat
			p.Room = strings.TrimSpace(m[1])
			p.Temperature = temp
			return p
		}
	}

	if m := lockRe.FindStringSubmatch(phrase); m != nil {
		p.Kind = KindLock
		p.Lock = strings.EqualFold(m[1], "lock")
		p.Door = strings.TrimSpace(m[2])
		return p
	}

	return p
}

// Intent is a resolved, concrete action against one device.
type Intent struct {
	DeviceID     string `json:"device_id"`
	Verb         Verb   `json:"verb"`
	TargetStatus string `json:"target_status,omitempty"` // light/lock: desired end status
	Temperature  int    `json:"temperature,omitempty"`   // thermostat only
}

// InterpretOutcome classifies an interpretation result.
type InterpretOutcome string

const (
	// OutcomeResolved means the phrase matched a grammar class and at least
	// one device.
	OutcomeResolved InterpretOutcome = "resolved"
	// OutcomeNoDeviceFound means the phrase was understood but no device's
	// room/name contains the captured fragment.
	OutcomeNoDeviceFound InterpretOutcome = "no_device_found"
	// OutcomeNotUnderstood means no grammar class matched.
	OutcomeNotUnderstood InterpretOutcome = "not_understood"
)

// Interpretation is the full result of interpreting one phrase.
type Interpretation struct {
	Parsed
	Outcome  InterpretOutcome
	Fragment string // the room/door fragment, for user-facing feedback
	Intents  []Intent
}

// Interpret classifies a phrase and resolves its target devices against the
// given snapshot. Resolution is a case-insensitive substring match: room for
// lights and thermostats, name for locks. Every matching device is included,
// so a broad fragment like "room" fans out to all rooms containing it.
func Interpret(text string, devices []device.Device) Interpretation {
	in := Interpretation{Parsed: Parse(text)}

	switch in.Kind {
	case KindLight:
		in.Fragment = in.Room
		target := device.StatusOff
		if in.On {
			target = device.StatusOn
		}
		for _, d := range matchRoom(devices, device.TypeLight, in.Room) {
			in.Intents = append(in.Intents, Intent{
				DeviceID:     d.ID,
				Verb:         VerbToggleLight,
				TargetStatus: target,
			})
		}

	case KindThermostat:
		in.Fragment = in.Room
		for _, d := range matchRoom(devices, device.TypeThermostat, in.Room) {
			in.Intents = append(in.Intents, Intent{
				DeviceID:    d.ID,
				Verb:        VerbSetThermostat,
				Temperature: in.Temperature,
			})
		}

	case KindLock:
		in.Fragment = in.Door
		target := device.StatusUnlocked
		if in.Lock {
			target = device.StatusLocked
		}
		for _, d := range matchName(devices, device.TypeLock, in.Door) {
			in.Intents = append(in.Intents, Intent{
				DeviceID:     d.ID,
				Verb:         VerbToggleLock,
				TargetStatus: target,
			})
		}

	default:
		in.Outcome = OutcomeNotUnderstood
		return in
	}

	if len(in.Intents) == 0 {
		in.Outcome = OutcomeNoDeviceFound
		return in
	}
	in.Outcome = OutcomeResolved
	return in
}

func matchRoom(devices []device.Device, deviceType, fragment string) []device.Device {
	needle := strings.ToLower(fragment)
	var out []device.Device
	for _, d := range devices {
		if d.Type == deviceType && strings.Contains(strings.ToLower(d.Room), needle) {
			out = append(out, d)
		}
	}
	return out
}

func matchName(devices []device.Device, deviceType, fragment string) []device.Device {
	needle := strings.ToLower(fragment)
	var out []device.Device
	for _, d := range devices {
		if d.Type == deviceType && strings.Contains(strings.ToLower(d.Name), needle) {
			out = append(out, d)
		}
	}
	return out
}
