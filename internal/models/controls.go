package models

import (
	"errors"
	"fmt"
	"math"
)

// ProgressionMode controls how new content unlocks
type ProgressionMode string

const (
	ProgressionAuto             ProgressionMode = "auto"
	ProgressionParentControlled ProgressionMode = "parent-controlled"
)

// ControlKey names a single field of ParentControls
type ControlKey string

const (
	ControlGamesEnabled      ControlKey = "gamesEnabled"
	ControlAudioEnabled      ControlKey = "audioEnabled"
	ControlDailyMinutesLimit ControlKey = "dailyMinutesLimit"
	ControlContentLockByAge  ControlKey = "contentLockByAge"
	ControlProgressionMode   ControlKey = "progressionMode"
)

// Valid reports whether k names a field of ParentControls
func (k ControlKey) Valid() bool {
	switch k {
	case ControlGamesEnabled, ControlAudioEnabled, ControlDailyMinutesLimit,
		ControlContentLockByAge, ControlProgressionMode:
		return true
	}
	return false
}

var (
	ErrUnknownControl = errors.New("unknown control")
	ErrControlType    = errors.New("control value has the wrong type")
)

// ParentControls is the flat settings record managed from the parent dashboard.
// DailyMinutesLimit, ContentLockByAge and ProgressionMode are stored but not enforced.
type ParentControls struct {
	GamesEnabled      bool            `json:"gamesEnabled"`
	AudioEnabled      bool            `json:"audioEnabled"`
	DailyMinutesLimit int             `json:"dailyMinutesLimit"`
	ContentLockByAge  bool            `json:"contentLockByAge"`
	ProgressionMode   ProgressionMode `json:"progressionMode" validate:"oneof=auto parent-controlled"`
}

// Set replaces the value of one control. The value must match the declared
// type of the field; JSON numbers arrive as float64 and must be integral.
func (c *ParentControls) Set(key ControlKey, value interface{}) error {
	switch key {
	case ControlGamesEnabled:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%s: %w", key, ErrControlType)
		}
		c.GamesEnabled = b
	case ControlAudioEnabled:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%s: %w", key, ErrControlType)
		}
		c.AudioEnabled = b
	case ControlContentLockByAge:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%s: %w", key, ErrControlType)
		}
		c.ContentLockByAge = b
	case ControlDailyMinutesLimit:
		n, ok := toInt(value)
		if !ok {
			return fmt.Errorf("%s: %w", key, ErrControlType)
		}
		c.DailyMinutesLimit = n
	case ControlProgressionMode:
		var mode ProgressionMode
		switch v := value.(type) {
		case string:
			mode = ProgressionMode(v)
		case ProgressionMode:
			mode = v
		default:
			return fmt.Errorf("%s: %w", key, ErrControlType)
		}
		if mode != ProgressionAuto && mode != ProgressionParentControlled {
			return fmt.Errorf("%s: %w", key, ErrControlType)
		}
		c.ProgressionMode = mode
	default:
		return fmt.Errorf("%q: %w", key, ErrUnknownControl)
	}
	return nil
}

func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}
