package service

import (
	"errors"
	"fmt"
	"sync"

	"mythworld/internal/content"
	"mythworld/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrParentLocked is returned when a parent-only operation runs outside the dashboard
	ErrParentLocked = errors.New("parent dashboard is locked")
	// ErrNoActiveProfile is returned when progress is credited with no child selected
	ErrNoActiveProfile = errors.New("no active profile")
)

// AppOptions configures a new App
type AppOptions struct {
	Pin           string
	Profiles      []models.ChildProfile
	Controls      models.ParentControls
	ProgressStore ProgressStore
	ControlsStore ControlsStore
}

// App owns the whole session state. Every exported method takes the lock, so
// user actions are applied one at a time and each completes before the next.
type App struct {
	mu            sync.Mutex
	progress      *ProgressService
	gate          *ParentGate
	nav           *Navigator
	pinError      string
	parentSession string
}

// Snapshot is everything the child-facing view renders
type Snapshot struct {
	Mode          models.Mode           `json:"mode"`
	ActiveProfile *models.ChildProfile  `json:"activeProfile"`
	Profiles      []models.ChildProfile `json:"profiles"`
	Stories       []models.Story        `json:"stories"`
	Controls      models.ParentControls `json:"controls"`
	PinError      string                `json:"pinError,omitempty"`
}

// DashboardView is the parent dashboard content
type DashboardView struct {
	Rows     []models.DashboardRow `json:"rows"`
	Controls models.ParentControls `json:"controls"`
}

// UnlockResult is the outcome of a PIN attempt. SessionID identifies the
// dashboard visit opened by a successful attempt.
type UnlockResult struct {
	PinResult
	SessionID string `json:"-"`
}

// NewApp creates the session state. An empty Pin falls back to the built-in one.
func NewApp(opts AppOptions) *App {
	pin := opts.Pin
	if pin == "" {
		pin = content.DefaultParentPin
	}
	return &App{
		progress: NewProgressService(opts.Profiles, opts.ProgressStore),
		gate:     NewParentGate(pin, opts.Controls, opts.ControlsStore),
		nav:      NewNavigator(),
	}
}

// NewDefaultApp creates a session from the built-in catalog with no persistence
func NewDefaultApp() *App {
	return NewApp(AppOptions{
		Profiles: content.StarterProfiles(),
		Controls: content.DefaultControls(),
	})
}

// Snapshot returns the current view state
func (a *App) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := Snapshot{
		Mode:     a.nav.Mode(),
		Profiles: a.progress.Profiles(),
		Stories:  []models.Story{},
		Controls: a.gate.Controls(),
		PinError: a.pinError,
	}
	if p, ok := a.progress.ActiveProfile(); ok {
		snap.ActiveProfile = &p
		snap.Stories = content.StoriesForAgeGroup(p.AgeGroup)
	}
	return snap
}

// Mode returns the current screen
func (a *App) Mode() models.Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nav.Mode()
}

// Profiles returns all profiles in insertion order
func (a *App) Profiles() []models.ChildProfile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.progress.Profiles()
}

// ActiveProfile returns the active profile or the first one as fallback
func (a *App) ActiveProfile() (models.ChildProfile, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.progress.ActiveProfile()
}

// SelectProfile switches the active child and returns to the home screen.
// Unknown ids change nothing.
func (a *App) SelectProfile(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.progress.SelectActiveProfile(id) {
		return false
	}
	a.apply(models.ActionSelectProfile)
	return true
}

// CompleteStory credits the active profile for a story. Only child screens may
// credit progress.
func (a *App) CompleteStory() (models.ChildProfile, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.credit("complete story", a.progress.CompleteStory)
}

// RegisterGamePlay credits the active profile for a game
func (a *App) RegisterGamePlay() (models.ChildProfile, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.credit("register game play", a.progress.RegisterGamePlay)
}

func (a *App) credit(op string, fn func() (models.ChildProfile, bool)) (models.ChildProfile, error) {
	if mode := a.nav.Mode(); !mode.ChildFacing() {
		return models.ChildProfile{}, fmt.Errorf("%s from %s: %w", op, mode, ErrInvalidTransition)
	}
	p, ok := fn()
	if !ok {
		return models.ChildProfile{}, ErrNoActiveProfile
	}
	return p, nil
}

// StoriesForActiveProfile filters the catalog by the active profile's age group
func (a *App) StoriesForActiveProfile() []models.Story {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.progress.ActiveProfile()
	if !ok {
		return []models.Story{}
	}
	return content.StoriesForAgeGroup(p.AgeGroup)
}

// Games returns the mini-game catalog
func (a *App) Games() []models.Game {
	return content.Games()
}

// Quests returns the temple quest map regions
func (a *App) Quests() []models.QuestRegion {
	return content.QuestRegions()
}

// Navigate applies a user navigation action. PIN acceptance and profile
// selection have their own entry points and are rejected here.
func (a *App) Navigate(action models.Action) (models.Mode, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if action == models.ActionPinAccepted || action == models.ActionSelectProfile {
		return a.nav.Mode(), fmt.Errorf("%s: %w", action, ErrInvalidTransition)
	}
	return a.apply(action)
}

// UnlockParent checks a PIN attempt from the PIN entry screen. A match opens
// the dashboard; a mismatch leaves the mode alone and records the message.
func (a *App) UnlockParent(candidate string) (UnlockResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.nav.Next(models.ActionPinAccepted); !ok {
		return UnlockResult{}, fmt.Errorf("unlock from %s: %w", a.nav.Mode(), ErrInvalidTransition)
	}

	result := a.gate.VerifyPin(candidate)
	if !result.OK {
		a.pinError = result.Message
		return UnlockResult{PinResult: result}, nil
	}

	a.pinError = ""
	if _, err := a.apply(models.ActionPinAccepted); err != nil {
		return UnlockResult{}, err
	}
	a.parentSession = uuid.New().String()
	return UnlockResult{PinResult: result, SessionID: a.parentSession}, nil
}

// ExitParent leaves the dashboard for the child home screen
func (a *App) ExitParent() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, err := a.apply(models.ActionExit)
	return err
}

// ParentSessionActive reports whether id belongs to the open dashboard visit
func (a *App) ParentSessionActive(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return id != "" && a.nav.Mode() == models.ModeDashboard && id == a.parentSession
}

// Controls returns the current parent controls
func (a *App) Controls() models.ParentControls {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gate.Controls()
}

// SetControl changes one parent control; only allowed on the dashboard
func (a *App) SetControl(key models.ControlKey, value interface{}) (models.ParentControls, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.nav.Mode() != models.ModeDashboard {
		return a.gate.Controls(), ErrParentLocked
	}
	return a.gate.SetControl(key, value)
}

// Dashboard returns the parent dashboard; only allowed on the dashboard
func (a *App) Dashboard() (DashboardView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.nav.Mode() != models.ModeDashboard {
		return DashboardView{}, ErrParentLocked
	}

	profiles := a.progress.Profiles()
	rows := make([]models.DashboardRow, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, models.DashboardRow{
			ProfileID:        p.ID,
			Name:             p.Name,
			StoriesCompleted: p.StoriesCompleted,
			GamesPlayed:      p.GamesPlayed,
			MinutesLearned:   p.MinutesLearned,
			Strength:         content.DefaultStrength,
			FocusArea:        content.DefaultFocusArea,
		})
	}
	return DashboardView{Rows: rows, Controls: a.gate.Controls()}, nil
}

// apply moves the navigator and closes the parent session when the dashboard is left
func (a *App) apply(action models.Action) (models.Mode, error) {
	mode, err := a.nav.Apply(action)
	if err != nil {
		return mode, err
	}
	if mode != models.ModeDashboard {
		a.parentSession = ""
	}
	return mode, nil
}
