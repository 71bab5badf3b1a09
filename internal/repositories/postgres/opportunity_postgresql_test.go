package postgres

import (
	"testing"

	"github.com/campus-connect/campus-service/internal/models"
)

func TestApplyInterestCounts(t *testing.T) {
	opportunities := []*models.Opportunity{
		{ID: 1},
		{ID: 2},
		{ID: 3},
	}
	counts := map[uint]int64{
		1: 4,
		3: 1,
	}

	applyInterestCounts(opportunities, counts)

	if opportunities[0].InterestCount != 4 {
		t.Errorf("opportunity 1 count = %d, want 4", opportunities[0].InterestCount)
	}
	if opportunities[1].InterestCount != 0 {
		t.Errorf("opportunity 2 count = %d, want 0 when no rows grouped", opportunities[1].InterestCount)
	}
	if opportunities[2].InterestCount != 1 {
		t.Errorf("opportunity 3 count = %d, want 1", opportunities[2].InterestCount)
	}
}

// The single-get path assigns the shared COUNT(*) helper's result directly;
// pin the model field to the count's type so the two cannot drift apart.
func TestInterestCountHoldsSQLCount(t *testing.T) {
	var opportunity models.Opportunity
	var count int64 = 7

	opportunity.InterestCount = count
	if opportunity.InterestCount != 7 {
		t.Errorf("InterestCount = %d, want 7", opportunity.InterestCount)
	}
}
