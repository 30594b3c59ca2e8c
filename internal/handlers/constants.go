package handlers

const (
	ErrInvalidRequestBody   = "Invalid request body"
	ErrUnauthorized         = "Parent session required"
	ErrInternalServerError  = "Internal server error"
	ErrTooManyRequests      = "Too many requests"
	ErrNoActiveProfile      = "No active profile"
	ErrStoryNotFound        = "Story not found"
	ErrTermNotFound         = "Vocabulary term not found"
	ErrAudioDisabled        = "Audio is turned off"
	ErrAudioUnavailable     = "Audio is unavailable"
	ErrEmailUnavailable     = "Email is not configured"
	ErrTransitionNotAllowed = "Action not allowed from the current screen"
	ErrParentLocked         = "Parent dashboard is locked"
	ErrUnknownControl       = "Unknown control"
	ErrInvalidControlValue  = "Invalid value for control"
)
