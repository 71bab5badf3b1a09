package services

import (
	"context"
	"testing"
	"time"

	"github.com/campus-connect/campus-service/internal/events"
	"github.com/campus-connect/campus-service/internal/models"
)

func newOpportunityFixture(t *testing.T) (*mockRepository, OpportunityService, InterestService, *events.MockEventPublisher) {
	t.Helper()
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	interests := NewInterestService(repo, nil, testLogger(), nil, publisher)
	service := NewOpportunityService(repo, nil, testLogger(), newTestValidator(t), interests, nil, publisher)
	return repo, service, interests, publisher
}

func TestCreateOpportunity(t *testing.T) {
	repo, service, _, publisher := newOpportunityFixture(t)
	seedProfessor(repo, "prof-1", "Ada Lovelace")

	deadline := time.Now().Add(14 * 24 * time.Hour)
	opportunity, err := service.CreateOpportunity(context.Background(), "prof-1", &OpportunityCreateRequest{
		Title:         "Research assistant",
		Description:   "Help with the analytical engine",
		Type:          models.OpportunityResearch,
		AllowInterest: true,
		Deadline:      &deadline,
	})
	if err != nil {
		t.Fatalf("CreateOpportunity() error = %v", err)
	}
	if opportunity.ID == 0 {
		t.Errorf("opportunity was not assigned an ID")
	}
	if opportunity.ProfessorID != "prof-1" {
		t.Errorf("ProfessorID = %q, want prof-1", opportunity.ProfessorID)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventOpportunityCreated {
		t.Errorf("published events = %v, want one %s", published, events.EventOpportunityCreated)
	}
}

func TestCreateOpportunityRequiresProfessor(t *testing.T) {
	repo, service, _, _ := newOpportunityFixture(t)
	seedStudent(repo, "stud-1", "Grace Hopper")

	_, err := service.CreateOpportunity(context.Background(), "stud-1", &OpportunityCreateRequest{
		Title:       "Not allowed",
		Description: "Students cannot post",
		Type:        models.OpportunityResearch,
	})
	if !IsPermissionError(err) {
		t.Fatalf("CreateOpportunity() error = %v, want permission error", err)
	}
}

func TestCreateOpportunityValidation(t *testing.T) {
	repo, service, _, _ := newOpportunityFixture(t)
	seedProfessor(repo, "prof-1", "Ada Lovelace")

	past := time.Now().Add(-time.Hour)
	_, err := service.CreateOpportunity(context.Background(), "prof-1", &OpportunityCreateRequest{
		Title:       "Expired before it started",
		Description: "deadline in the past",
		Type:        models.OpportunityResearch,
		Deadline:    &past,
	})
	if !IsValidationErrors(err) {
		t.Fatalf("CreateOpportunity() error = %v, want validation errors", err)
	}
}

func TestUpdateOpportunityOwnerOnly(t *testing.T) {
	repo, service, _, _ := newOpportunityFixture(t)
	seedProfessor(repo, "prof-1", "Ada Lovelace")
	seedProfessor(repo, "prof-2", "Alan Turing")
	opportunity := seedOpportunity(repo, "prof-1", "Compiler research", true)

	_, err := service.UpdateOpportunity(context.Background(), "prof-2", opportunity.ID, &OpportunityUpdateRequest{
		Title: strPtr("Hijacked"),
	})
	if !IsPermissionError(err) {
		t.Fatalf("UpdateOpportunity() error = %v, want permission error", err)
	}
}

func TestUpdateOpportunityClearDeadline(t *testing.T) {
	repo, service, _, _ := newOpportunityFixture(t)
	seedProfessor(repo, "prof-1", "Ada Lovelace")
	opportunity := seedOpportunity(repo, "prof-1", "Compiler research", true)
	deadline := time.Now().Add(24 * time.Hour)
	opportunity.Deadline = &deadline

	updated, err := service.UpdateOpportunity(context.Background(), "prof-1", opportunity.ID, &OpportunityUpdateRequest{
		ClearDeadline: true,
	})
	if err != nil {
		t.Fatalf("UpdateOpportunity() error = %v", err)
	}
	if updated.Deadline != nil {
		t.Errorf("Deadline = %v, want nil after clearing", updated.Deadline)
	}
}

func TestDeleteOpportunityCascadesInterests(t *testing.T) {
	repo, service, interests, publisher := newOpportunityFixture(t)
	seedProfessor(repo, "prof-1", "Ada Lovelace")
	seedStudent(repo, "stud-1", "Grace Hopper")
	opportunity := seedOpportunity(repo, "prof-1", "Compiler research", true)

	if _, err := interests.MarkInterest(context.Background(), "stud-1", opportunity.ID); err != nil {
		t.Fatalf("MarkInterest() error = %v", err)
	}
	publisher.ClearEvents()

	if err := service.DeleteOpportunity(context.Background(), "prof-1", opportunity.ID); err != nil {
		t.Fatalf("DeleteOpportunity() error = %v", err)
	}

	if len(repo.interests) != 0 {
		t.Errorf("interest rows = %d, want 0 after cascade", len(repo.interests))
	}
	if len(repo.opportunities) != 0 {
		t.Errorf("opportunity rows = %d, want 0", len(repo.opportunities))
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventOpportunityDeleted {
		t.Errorf("published events = %v, want one %s", published, events.EventOpportunityDeleted)
	}
}

func TestListOpportunitiesMarksInterested(t *testing.T) {
	repo, service, interests, _ := newOpportunityFixture(t)
	seedProfessor(repo, "prof-1", "Ada Lovelace")
	seedStudent(repo, "stud-1", "Grace Hopper")
	marked := seedOpportunity(repo, "prof-1", "Marked", true)
	unmarked := seedOpportunity(repo, "prof-1", "Unmarked", true)
	closed := seedOpportunity(repo, "prof-1", "Closed", false)

	if _, err := interests.MarkInterest(context.Background(), "stud-1", marked.ID); err != nil {
		t.Fatalf("MarkInterest() error = %v", err)
	}

	result, err := service.ListOpportunities(context.Background(), "stud-1", &OpportunityListRequest{})
	if err != nil {
		t.Fatalf("ListOpportunities() error = %v", err)
	}
	if result.Total != 3 {
		t.Fatalf("total = %d, want 3", result.Total)
	}

	byID := map[uint]*OpportunityResponse{}
	for _, item := range result.Opportunities {
		byID[item.Opportunity.ID] = item
	}

	if !byID[marked.ID].Interested {
		t.Errorf("marked opportunity should report interested=true")
	}
	if byID[unmarked.ID].Interested {
		t.Errorf("unmarked opportunity should report interested=false")
	}
	if byID[closed.ID].CanInterest {
		t.Errorf("closed opportunity should report can_interest=false")
	}
	if !byID[unmarked.ID].CanInterest {
		t.Errorf("open opportunity should report can_interest=true")
	}
}

func TestListMyOpportunities(t *testing.T) {
	repo, service, _, _ := newOpportunityFixture(t)
	seedProfessor(repo, "prof-1", "Ada Lovelace")
	seedProfessor(repo, "prof-2", "Alan Turing")
	seedOpportunity(repo, "prof-1", "Mine", true)
	seedOpportunity(repo, "prof-2", "Theirs", true)

	result, err := service.ListMyOpportunities(context.Background(), "prof-1", &OpportunityListRequest{})
	if err != nil {
		t.Fatalf("ListMyOpportunities() error = %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("total = %d, want 1", result.Total)
	}
	if result.Opportunities[0].Opportunity.Title != "Mine" {
		t.Errorf("title = %q, want Mine", result.Opportunities[0].Opportunity.Title)
	}
}
