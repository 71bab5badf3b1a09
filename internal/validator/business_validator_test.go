package validator

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/campus-connect/campus-service/internal/models"
)

func TestValidateTags(t *testing.T) {
	bv := NewBusinessValidator()

	tests := []struct {
		name    string
		tags    []string
		wantErr bool
	}{
		{"valid", []string{"Go", "Distributed Systems"}, false},
		{"empty list", nil, false},
		{"blank after trim", []string{"Go", "   "}, true},
		{"case-insensitive duplicate", []string{"Go", "go"}, true},
		{"duplicate after trim", []string{"Go", " Go "}, true},
		{"over length", []string{strings.Repeat("x", 51)}, true},
		{"at the limit", manyTags(models.MaxExperienceTags), false},
		{"over the limit", manyTags(models.MaxExperienceTags + 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := bv.ValidateTags(tt.tags)
			if errs.HasErrors() != tt.wantErr {
				t.Errorf("ValidateTags(%v) errors = %v, wantErr %v", tt.tags, errs, tt.wantErr)
			}
		})
	}
}

func manyTags(n int) []string {
	tags := make([]string, n)
	for i := range tags {
		tags[i] = "skill-" + string(rune('a'+i))
	}
	return tags
}

func TestNormalizeTags(t *testing.T) {
	bv := NewBusinessValidator()
	got := bv.NormalizeTags([]string{" Go ", "Rust"})
	if want := []string{"Go", "Rust"}; !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTags() = %v, want %v", got, want)
	}
}

func TestValidateExperienceDates(t *testing.T) {
	bv := NewBusinessValidator()
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0)
	early := start.AddDate(0, 0, -1)

	tests := []struct {
		name      string
		endDate   *time.Time
		isCurrent bool
		wantErr   bool
	}{
		{"current with no end", nil, true, false},
		{"current with end", &end, true, true},
		{"past with end", &end, false, false},
		{"past without end", nil, false, true},
		{"end before start", &early, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := bv.validateExperienceDates(start, tt.endDate, tt.isCurrent)
			if errs.HasErrors() != tt.wantErr {
				t.Errorf("validateExperienceDates() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateExperienceUpdateMergesState(t *testing.T) {
	bv := NewBusinessValidator()
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	existing := &models.Experience{
		Type:         models.ExperienceWork,
		Title:        "Research Intern",
		Organization: "Lab",
		StartDate:    start,
		IsCurrent:    true,
	}

	// Flipping is_current off without supplying an end date leaves the
	// merged record incomplete.
	notCurrent := false
	if errs := bv.ValidateExperienceUpdate(&ExperienceUpdateRequest{IsCurrent: &notCurrent}, existing); !errs.HasErrors() {
		t.Error("expected errors when clearing is_current with no end date")
	}

	end := start.AddDate(0, 6, 0)
	if errs := bv.ValidateExperienceUpdate(&ExperienceUpdateRequest{IsCurrent: &notCurrent, EndDate: &end}, existing); errs.HasErrors() {
		t.Errorf("unexpected errors: %v", errs)
	}

	// Leaving is_current true tolerates a stale end date in the request;
	// the merged state zeroes it.
	if errs := bv.ValidateExperienceUpdate(&ExperienceUpdateRequest{EndDate: &end}, existing); errs.HasErrors() {
		t.Errorf("unexpected errors for current experience: %v", errs)
	}
}

func TestValidateOpportunityCreateDeadline(t *testing.T) {
	bv := NewBusinessValidator()

	past := time.Now().Add(-time.Hour)
	req := &OpportunityCreateRequest{
		Title:       "Compiler research",
		Description: "Work on the mid-end.",
		Type:        models.OpportunityResearch,
		Deadline:    &past,
	}
	if errs := bv.ValidateOpportunityCreate(req); !errs.HasErrors() {
		t.Error("expected errors for a deadline in the past")
	}

	future := time.Now().Add(24 * time.Hour)
	req.Deadline = &future
	if errs := bv.ValidateOpportunityCreate(req); errs.HasErrors() {
		t.Errorf("unexpected errors: %v", errs)
	}

	req.Deadline = nil
	if errs := bv.ValidateOpportunityCreate(req); errs.HasErrors() {
		t.Errorf("unexpected errors for no deadline: %v", errs)
	}
}

func TestValidateOpportunityUpdateConflict(t *testing.T) {
	bv := NewBusinessValidator()

	future := time.Now().Add(24 * time.Hour)
	req := &OpportunityUpdateRequest{
		Deadline:      &future,
		ClearDeadline: true,
	}
	if errs := bv.ValidateOpportunityUpdate(req); !errs.HasErrors() {
		t.Error("expected errors when setting and clearing the deadline together")
	}
}
