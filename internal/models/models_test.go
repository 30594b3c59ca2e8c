package models

import (
	"errors"
	"testing"
)

func TestAgeGroupValid(t *testing.T) {
	tests := []struct {
		name  string
		group AgeGroup
		want  bool
	}{
		{name: "young", group: "4-6", want: true},
		{name: "middle", group: "7-9", want: true},
		{name: "older", group: "10-12", want: true},
		{name: "empty", group: "", want: false},
		{name: "unknown band", group: "13-15", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.group.Valid(); got != tt.want {
				t.Errorf("AgeGroup(%q).Valid() = %v, want %v", tt.group, got, tt.want)
			}
		})
	}
}

func TestChildProfileCloneDoesNotShareBadges(t *testing.T) {
	p := ChildProfile{ID: "child-1", Badges: []string{"Listener"}}
	c := p.Clone()
	c.Badges[0] = "Changed"

	if p.Badges[0] != "Listener" {
		t.Errorf("original badges mutated through clone: %v", p.Badges)
	}
}

func TestParentControlsSet(t *testing.T) {
	base := ParentControls{
		GamesEnabled:      true,
		AudioEnabled:      true,
		DailyMinutesLimit: 45,
		ContentLockByAge:  true,
		ProgressionMode:   ProgressionAuto,
	}

	tests := []struct {
		name    string
		key     ControlKey
		value   interface{}
		want    ParentControls
		wantErr error
	}{
		{
			name:  "disable games",
			key:   ControlGamesEnabled,
			value: false,
			want: ParentControls{GamesEnabled: false, AudioEnabled: true, DailyMinutesLimit: 45,
				ContentLockByAge: true, ProgressionMode: ProgressionAuto},
		},
		{
			name:  "minutes from json number",
			key:   ControlDailyMinutesLimit,
			value: float64(30),
			want: ParentControls{GamesEnabled: true, AudioEnabled: true, DailyMinutesLimit: 30,
				ContentLockByAge: true, ProgressionMode: ProgressionAuto},
		},
		{
			name:  "parent controlled progression",
			key:   ControlProgressionMode,
			value: "parent-controlled",
			want: ParentControls{GamesEnabled: true, AudioEnabled: true, DailyMinutesLimit: 45,
				ContentLockByAge: true, ProgressionMode: ProgressionParentControlled},
		},
		{name: "bool control given string", key: ControlAudioEnabled, value: "yes", want: base, wantErr: ErrControlType},
		{name: "fractional minutes", key: ControlDailyMinutesLimit, value: 12.5, want: base, wantErr: ErrControlType},
		{name: "unknown progression mode", key: ControlProgressionMode, value: "manual", want: base, wantErr: ErrControlType},
		{name: "unknown key", key: "bedtime", value: true, want: base, wantErr: ErrUnknownControl},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			err := c.Set(tt.key, tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Set() error = %v, want %v", err, tt.wantErr)
			}
			if c != tt.want {
				t.Errorf("Set() controls = %+v, want %+v", c, tt.want)
			}
		})
	}
}

func TestStoryFindTerm(t *testing.T) {
	s := Story{Vocabulary: []VocabularyTerm{{Term: "Hanuman", Pronunciation: "Ha-nu-maan"}}}

	if v, ok := s.FindTerm("Hanuman"); !ok || v.Pronunciation != "Ha-nu-maan" {
		t.Errorf("FindTerm(Hanuman) = %+v, %v", v, ok)
	}
	if _, ok := s.FindTerm("hanuman"); ok {
		t.Error("FindTerm should be case-sensitive")
	}
}

func TestModeChildFacing(t *testing.T) {
	for _, m := range []Mode{ModeHome, ModeStories, ModeGames, ModeQuests} {
		if !m.ChildFacing() {
			t.Errorf("%s should be child facing", m)
		}
	}
	for _, m := range []Mode{ModePinEntry, ModeDashboard} {
		if m.ChildFacing() {
			t.Errorf("%s should not be child facing", m)
		}
	}
}

func TestKeyAndActionValid(t *testing.T) {
	if !ControlAudioEnabled.Valid() || ControlKey("volume").Valid() {
		t.Fatal("ControlKey.Valid misclassified a key")
	}
	if !ActionSelectProfile.Valid() || Action("jump").Valid() || Action("").Valid() {
		t.Fatal("Action.Valid misclassified an action")
	}
}
