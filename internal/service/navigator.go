package service

import (
	"errors"
	"fmt"

	"mythworld/internal/models"
)

// ErrInvalidTransition is returned when an action is not allowed from the current mode
var ErrInvalidTransition = errors.New("action not allowed in current mode")

type transitionKey struct {
	from   models.Mode
	action models.Action
}

var transitions = map[transitionKey]models.Mode{
	{models.ModeHome, models.ActionOpenStories}:        models.ModeStories,
	{models.ModeHome, models.ActionOpenGames}:          models.ModeGames,
	{models.ModeHome, models.ActionOpenQuests}:         models.ModeQuests,
	{models.ModeHome, models.ActionOpenParent}:         models.ModePinEntry,
	{models.ModeStories, models.ActionBack}:            models.ModeHome,
	{models.ModeGames, models.ActionBack}:              models.ModeHome,
	{models.ModeQuests, models.ActionBack}:             models.ModeHome,
	{models.ModePinEntry, models.ActionCancel}:         models.ModeHome,
	{models.ModePinEntry, models.ActionPinAccepted}:    models.ModeDashboard,
	{models.ModeDashboard, models.ActionExit}:          models.ModeHome,
	{models.ModeHome, models.ActionSelectProfile}:      models.ModeHome,
	{models.ModeStories, models.ActionSelectProfile}:   models.ModeHome,
	{models.ModeGames, models.ActionSelectProfile}:     models.ModeHome,
	{models.ModeQuests, models.ActionSelectProfile}:    models.ModeHome,
	{models.ModePinEntry, models.ActionSelectProfile}:  models.ModeHome,
	{models.ModeDashboard, models.ActionSelectProfile}: models.ModeHome,
}

// Navigator is the screen state machine
type Navigator struct {
	mode models.Mode
}

// NewNavigator starts on the child home screen
func NewNavigator() *Navigator {
	return &Navigator{mode: models.ModeHome}
}

// Mode returns the current screen
func (n *Navigator) Mode() models.Mode {
	return n.mode
}

// Next looks up the target of action from the current mode without moving
func (n *Navigator) Next(action models.Action) (models.Mode, bool) {
	to, ok := transitions[transitionKey{from: n.mode, action: action}]
	return to, ok
}

// Apply performs the transition for action
func (n *Navigator) Apply(action models.Action) (models.Mode, error) {
	to, ok := n.Next(action)
	if !ok {
		return n.mode, fmt.Errorf("%s from %s: %w", action, n.mode, ErrInvalidTransition)
	}
	n.mode = to
	return to, nil
}
