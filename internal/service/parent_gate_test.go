package service

import (
	"errors"
	"testing"

	"mythworld/internal/content"
	"mythworld/internal/models"
)

func TestVerifyPin(t *testing.T) {
	gate := NewParentGate("1080", content.DefaultControls(), nil)

	tests := []struct {
		name      string
		candidate string
		wantOK    bool
	}{
		{name: "correct pin", candidate: "1080", wantOK: true},
		{name: "empty", candidate: "", wantOK: false},
		{name: "one digit off", candidate: "1081", wantOK: false},
		{name: "shorter", candidate: "108", wantOK: false},
		{name: "longer", candidate: "10800", wantOK: false},
		{name: "surrounding space", candidate: " 1080", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := gate.VerifyPin(tt.candidate)
			if result.OK != tt.wantOK {
				t.Fatalf("VerifyPin(%q).OK = %v, want %v", tt.candidate, result.OK, tt.wantOK)
			}
			if !tt.wantOK && result.Message != "Incorrect PIN" {
				t.Errorf("VerifyPin(%q).Message = %q, want %q", tt.candidate, result.Message, "Incorrect PIN")
			}
			if tt.wantOK && result.Message != "" {
				t.Errorf("VerifyPin(%q).Message = %q, want empty", tt.candidate, result.Message)
			}
		})
	}
}

func TestVerifyPinIsCaseSensitive(t *testing.T) {
	gate := NewParentGate("Om", content.DefaultControls(), nil)

	if gate.VerifyPin("om").OK {
		t.Error("VerifyPin should compare case-sensitively")
	}
	if !gate.VerifyPin("Om").OK {
		t.Error("VerifyPin should accept the exact pin")
	}
}

func TestRepeatedFailuresDoNotLockOut(t *testing.T) {
	gate := NewParentGate("1080", content.DefaultControls(), nil)
	for i := 0; i < 50; i++ {
		gate.VerifyPin("0000")
	}
	if !gate.VerifyPin("1080").OK {
		t.Error("correct pin rejected after failed attempts")
	}
}

func TestSetControlRoundTrip(t *testing.T) {
	gate := NewParentGate("1080", content.DefaultControls(), nil)
	original := gate.Controls()

	if _, err := gate.SetControl(models.ControlGamesEnabled, false); err != nil {
		t.Fatalf("SetControl(false) error = %v", err)
	}
	if gate.Controls().GamesEnabled {
		t.Fatal("gamesEnabled should be false")
	}
	if _, err := gate.SetControl(models.ControlGamesEnabled, true); err != nil {
		t.Fatalf("SetControl(true) error = %v", err)
	}
	if gate.Controls() != original {
		t.Errorf("controls = %+v, want %+v", gate.Controls(), original)
	}
}

func TestSetControlLeavesOthersUntouched(t *testing.T) {
	gate := NewParentGate("1080", content.DefaultControls(), nil)

	got, err := gate.SetControl(models.ControlDailyMinutesLimit, 20)
	if err != nil {
		t.Fatalf("SetControl() error = %v", err)
	}

	want := content.DefaultControls()
	want.DailyMinutesLimit = 20
	if got != want {
		t.Errorf("controls = %+v, want %+v", got, want)
	}
}

func TestSetControlRejectsWrongType(t *testing.T) {
	store := &memoryControlsStore{}
	gate := NewParentGate("1080", content.DefaultControls(), store)

	_, err := gate.SetControl(models.ControlAudioEnabled, 1)
	if !errors.Is(err, models.ErrControlType) {
		t.Fatalf("SetControl() error = %v, want ErrControlType", err)
	}
	if gate.Controls() != content.DefaultControls() {
		t.Error("controls changed after rejected update")
	}
	if store.saves != 0 {
		t.Errorf("store saved %d times after rejected update", store.saves)
	}
}

func TestSetControlPersists(t *testing.T) {
	store := &memoryControlsStore{}
	gate := NewParentGate("1080", content.DefaultControls(), store)

	if _, err := gate.SetControl(models.ControlAudioEnabled, false); err != nil {
		t.Fatalf("SetControl() error = %v", err)
	}
	if store.controls == nil || store.controls.AudioEnabled {
		t.Errorf("stored controls = %+v, want audio disabled", store.controls)
	}
}
