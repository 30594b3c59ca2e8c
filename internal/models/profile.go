package models

// AgeGroup is one of the fixed bands used to tag profiles and stories
type AgeGroup string

const (
	AgeGroupYoung  AgeGroup = "4-6"
	AgeGroupMiddle AgeGroup = "7-9"
	AgeGroupOlder  AgeGroup = "10-12"
)

// AgeGroups lists every band in display order
var AgeGroups = []AgeGroup{AgeGroupYoung, AgeGroupMiddle, AgeGroupOlder}

// Valid reports whether g is one of the known bands
func (g AgeGroup) Valid() bool {
	for _, known := range AgeGroups {
		if g == known {
			return true
		}
	}
	return false
}

// ChildProfile represents a child using the app and their accumulated progress
type ChildProfile struct {
	ID               string   `json:"id" validate:"required"`
	Name             string   `json:"name"`
	Age              int      `json:"age"`
	AgeGroup         AgeGroup `json:"ageGroup" validate:"agegroup"`
	Points           int      `json:"points"`
	Stars            int      `json:"stars"`
	Badges           []string `json:"badges"`
	StreakDays       int      `json:"streakDays"`
	StoriesCompleted int      `json:"storiesCompleted"`
	GamesPlayed      int      `json:"gamesPlayed"`
	MinutesLearned   int      `json:"minutesLearned"`
}

// Clone returns a deep copy so callers cannot alias the badge slice
func (p ChildProfile) Clone() ChildProfile {
	c := p
	if p.Badges != nil {
		c.Badges = append([]string(nil), p.Badges...)
	}
	return c
}

// DashboardRow is the per-child summary shown on the parent dashboard
type DashboardRow struct {
	ProfileID        string `json:"profileId"`
	Name             string `json:"name"`
	StoriesCompleted int    `json:"storiesCompleted"`
	GamesPlayed      int    `json:"gamesPlayed"`
	MinutesLearned   int    `json:"minutesLearned"`
	Strength         string `json:"strength"`
	FocusArea        string `json:"focusArea"`
}
