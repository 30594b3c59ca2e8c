package service

import (
	"fmt"
	"log/slog"

	"mythworld/internal/models"
)

// IncorrectPinMessage is shown to the user after a failed unlock
const IncorrectPinMessage = "Incorrect PIN"

// ControlsStore persists the parent controls record
type ControlsStore interface {
	LoadControls() (*models.ParentControls, error)
	SaveControls(controls models.ParentControls) error
}

// PinResult is the outcome of a PIN check
type PinResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// ParentGate guards the parent controls behind a fixed PIN.
// The PIN is a plain configuration value compared literally.
type ParentGate struct {
	pin      string
	controls models.ParentControls
	store    ControlsStore
}

// NewParentGate creates a gate with the configured PIN and starting controls
func NewParentGate(pin string, controls models.ParentControls, store ControlsStore) *ParentGate {
	return &ParentGate{
		pin:      pin,
		controls: controls,
		store:    store,
	}
}

// VerifyPin compares candidate with the configured PIN exactly
func (g *ParentGate) VerifyPin(candidate string) PinResult {
	if candidate == g.pin {
		return PinResult{OK: true}
	}
	return PinResult{OK: false, Message: IncorrectPinMessage}
}

// Controls returns the current controls record
func (g *ParentGate) Controls() models.ParentControls {
	return g.controls
}

// SetControl replaces a single control value
func (g *ParentGate) SetControl(key models.ControlKey, value interface{}) (models.ParentControls, error) {
	next := g.controls
	if err := next.Set(key, value); err != nil {
		return g.controls, fmt.Errorf("failed to set control: %w", err)
	}
	g.controls = next

	if g.store != nil {
		if err := g.store.SaveControls(next); err != nil {
			slog.Warn("failed to persist parent controls", "key", key, "error", err)
		}
	}
	return next, nil
}
