package validation

import (
	"errors"
	"testing"
)

type sampleRequest struct {
	Action   string `json:"action" validate:"required,action"`
	Key      string `json:"key" validate:"omitempty,controlkey"`
	AgeGroup string `json:"ageGroup" validate:"omitempty,agegroup"`
	Pin      string `json:"pin" validate:"max=16"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name       string
		req        sampleRequest
		wantFields []string
	}{
		{
			name: "valid",
			req:  sampleRequest{Action: "open-stories", Key: "gamesEnabled", AgeGroup: "7-9", Pin: "1080"},
		},
		{
			name:       "missing action",
			req:        sampleRequest{},
			wantFields: []string{"action"},
		},
		{
			name:       "unknown action",
			req:        sampleRequest{Action: "fly"},
			wantFields: []string{"action"},
		},
		{
			name:       "unknown key and age group",
			req:        sampleRequest{Action: "back", Key: "volume", AgeGroup: "13-15"},
			wantFields: []string{"key", "ageGroup"},
		},
		{
			name:       "pin too long",
			req:        sampleRequest{Action: "back", Pin: "12345678901234567"},
			wantFields: []string{"pin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.req)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var errs Errors
			if !errors.As(err, &errs) {
				t.Fatalf("expected Errors, got %v", err)
			}
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("expected %d field errors, got %v", len(tt.wantFields), errs)
			}
			for i, field := range tt.wantFields {
				if errs[i].Field != field {
					t.Errorf("error %d: expected field %q, got %q", i, field, errs[i].Field)
				}
				if errs[i].Message == "" {
					t.Errorf("error %d: empty message", i)
				}
			}
		})
	}
}

func TestStructRejectsNonStruct(t *testing.T) {
	if err := Struct("text"); err == nil {
		t.Fatal("expected error for non-struct value")
	}
	var errs Errors
	if errors.As(Struct(42), &errs) {
		t.Fatal("non-struct input must not produce field errors")
	}
}
