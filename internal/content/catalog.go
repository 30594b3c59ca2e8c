// Package content holds the fixed catalog shipped with the app: starter
// profiles, stories, mini-games, quest regions and default parent controls.
package content

import "mythworld/internal/models"

// DefaultParentPin unlocks the parent dashboard unless overridden by config
const DefaultParentPin = "1080"

// Dashboard hints shown for every child until real analytics exist
const (
	DefaultStrength  = "Listening"
	DefaultFocusArea = "Timeline order"
)

var starterProfiles = []models.ChildProfile{
	{
		ID:               "child-1",
		Name:             "Aarav",
		Age:              6,
		AgeGroup:         models.AgeGroupYoung,
		Points:           120,
		Stars:            8,
		Badges:           []string{"Listener"},
		StreakDays:       3,
		StoriesCompleted: 5,
		GamesPlayed:      7,
		MinutesLearned:   58,
	},
	{
		ID:               "child-2",
		Name:             "Diya",
		Age:              10,
		AgeGroup:         models.AgeGroupOlder,
		Points:           240,
		Stars:            15,
		Badges:           []string{"Puzzle Pro", "Temple Explorer"},
		StreakDays:       5,
		StoriesCompleted: 9,
		GamesPlayed:      12,
		MinutesLearned:   101,
	},
}

var defaultControls = models.ParentControls{
	GamesEnabled:      true,
	AudioEnabled:      true,
	DailyMinutesLimit: 45,
	ContentLockByAge:  true,
	ProgressionMode:   models.ProgressionAuto,
}

var stories = []models.Story{
	{
		ID:       "krishna-butter",
		Title:    "Krishna and the Butter Pot",
		AgeGroup: models.AgeGroupYoung,
		Summary:  "Little Krishna loves butter and teaches that sharing joy brings smiles to everyone.",
		Moral:    "Joy grows when we share.",
		Vocabulary: []models.VocabularyTerm{
			{Term: "Krishna", Pronunciation: "Krish-na", Meaning: "A loving and playful form of Vishnu."},
		},
	},
	{
		ID:       "rama-bridge",
		Title:    "Rama Builds the Bridge",
		AgeGroup: models.AgeGroupMiddle,
		Summary:  "Rama and friends build a bridge to Lanka through teamwork and trust.",
		Moral:    "Big goals need teamwork.",
		Vocabulary: []models.VocabularyTerm{
			{Term: "Hanuman", Pronunciation: "Ha-nu-maan", Meaning: "A brave and devoted helper of Rama."},
		},
	},
	{
		ID:       "gita-choice",
		Title:    "Arjuna Learns Courage",
		AgeGroup: models.AgeGroupOlder,
		Summary:  "Krishna guides Arjuna to make wise choices with calm focus and duty.",
		Moral:    "Think clearly before action.",
		Vocabulary: []models.VocabularyTerm{
			{Term: "Arjuna", Pronunciation: "Ar-jun-a", Meaning: "A skilled archer in the Mahabharata."},
		},
	},
}

var games = []models.Game{
	{Kind: models.GameMatchCards, Label: "Match Cards: Gods, symbols, and stories"},
	{Kind: models.GameTimelinePuzzle, Label: "Timeline Puzzle: Put epic events in order"},
	{Kind: models.GameTempleQuest, Label: "Temple Quest Map: Explore sacred places"},
}

var questRegions = []models.QuestRegion{
	{Number: 1, Name: "Ayodhya", Status: "short story unlocked"},
	{Number: 2, Name: "Mathura", Status: "complete challenge to unlock"},
	{Number: 3, Name: "Rameswaram", Status: "fun fact awaits"},
}

// StarterProfiles returns a fresh copy of the seed profiles
func StarterProfiles() []models.ChildProfile {
	out := make([]models.ChildProfile, len(starterProfiles))
	for i, p := range starterProfiles {
		out[i] = p.Clone()
	}
	return out
}

// DefaultControls returns the controls a new session starts with
func DefaultControls() models.ParentControls {
	return defaultControls
}

// Stories returns the full story catalog in catalog order
func Stories() []models.Story {
	out := make([]models.Story, len(stories))
	for i, s := range stories {
		out[i] = cloneStory(s)
	}
	return out
}

// Games returns the mini-game catalog
func Games() []models.Game {
	return append([]models.Game(nil), games...)
}

// QuestRegions returns the temple quest map regions in order
func QuestRegions() []models.QuestRegion {
	return append([]models.QuestRegion(nil), questRegions...)
}

// StoryByID looks up a story in the catalog
func StoryByID(id string) (models.Story, bool) {
	for _, s := range stories {
		if s.ID == id {
			return cloneStory(s), true
		}
	}
	return models.Story{}, false
}

func cloneStory(s models.Story) models.Story {
	s.Vocabulary = append([]models.VocabularyTerm(nil), s.Vocabulary...)
	return s
}
