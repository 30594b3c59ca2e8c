package models

// Mode is the screen currently shown to the user
type Mode string

const (
	ModeHome      Mode = "home"
	ModeStories   Mode = "stories"
	ModeGames     Mode = "games"
	ModeQuests    Mode = "quests"
	ModePinEntry  Mode = "pin-entry"
	ModeDashboard Mode = "dashboard"
)

// Action is a user intent that may move the app between modes
type Action string

const (
	ActionOpenStories   Action = "open-stories"
	ActionOpenGames     Action = "open-games"
	ActionOpenQuests    Action = "open-quests"
	ActionOpenParent    Action = "open-parent"
	ActionBack          Action = "back"
	ActionCancel        Action = "cancel"
	ActionPinAccepted   Action = "pin-accepted"
	ActionExit          Action = "exit"
	ActionSelectProfile Action = "select-profile"
)

// ChildFacing reports whether the mode belongs to the child experience
func (m Mode) ChildFacing() bool {
	return m != ModePinEntry && m != ModeDashboard
}

// Valid reports whether a is one of the known actions
func (a Action) Valid() bool {
	switch a {
	case ActionOpenStories, ActionOpenGames, ActionOpenQuests, ActionOpenParent,
		ActionBack, ActionCancel, ActionPinAccepted, ActionExit, ActionSelectProfile:
		return true
	}
	return false
}
