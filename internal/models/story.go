package models

// VocabularyTerm is a word introduced by a story with a spoken hint
type VocabularyTerm struct {
	Term          string `json:"term"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `json:"meaning"`
}

// Story represents a mythology story in the content catalog
type Story struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	AgeGroup   AgeGroup         `json:"ageGroup"`
	Summary    string           `json:"summary"`
	Moral      string           `json:"moral"`
	Vocabulary []VocabularyTerm `json:"vocabulary"`
}

// FindTerm returns the vocabulary entry matching term
func (s Story) FindTerm(term string) (VocabularyTerm, bool) {
	for _, v := range s.Vocabulary {
		if v.Term == term {
			return v, true
		}
	}
	return VocabularyTerm{}, false
}

// GameKind identifies a mini-game
type GameKind string

const (
	GameMatchCards     GameKind = "match-cards"
	GameTimelinePuzzle GameKind = "timeline-puzzle"
	GameTempleQuest    GameKind = "temple-quest"
)

// Game is a mini-game entry with its display label
type Game struct {
	Kind  GameKind `json:"kind"`
	Label string   `json:"label"`
}

// QuestRegion is a stop on the temple quest map
type QuestRegion struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Status string `json:"status"`
}
