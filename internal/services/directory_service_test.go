package services

import (
	"context"
	"reflect"
	"testing"

	"github.com/campus-connect/campus-service/internal/models"
)

func newDirectoryFixture(t *testing.T) (*mockRepository, DirectoryService) {
	t.Helper()
	repo := newMockRepository()
	service := NewDirectoryService(repo, nil, testLogger())
	return repo, service
}

func seedDirectory(repo *mockRepository) {
	caller := seedStudent(repo, "me", "Calling Student")
	caller.Major = strPtr("Physics")

	ada := seedProfessor(repo, "prof-ada", "Ada Lovelace")
	ada.Department = strPtr("Computer Science")
	alan := seedProfessor(repo, "prof-alan", "Alan Turing")
	alan.Department = strPtr("Mathematics")

	grace := seedStudent(repo, "stud-grace", "Grace Hopper")
	grace.Major = strPtr("Computer Science")
	grace.Year = strPtr("Senior")
	kat := seedStudent(repo, "stud-kat", "Katherine Johnson")
	kat.Major = strPtr("Mathematics")
	kat.Year = strPtr("Junior")
}

func TestDirectorySearchExcludesCaller(t *testing.T) {
	repo, service := newDirectoryFixture(t)
	seedDirectory(repo)

	result, err := service.Search(context.Background(), "me", &DirectoryRequest{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 4 {
		t.Errorf("total = %d, want 4 (everyone but the caller)", result.Total)
	}
	for _, user := range result.Users {
		if user.ID == "me" {
			t.Errorf("caller appeared in their own directory results")
		}
	}
}

// Filters compose with AND; empty filters apply no constraint.
func TestDirectorySearchFilterComposition(t *testing.T) {
	repo, service := newDirectoryFixture(t)
	seedDirectory(repo)

	profRole := models.RoleProfessor
	studentRole := models.RoleStudent

	tests := []struct {
		name    string
		request DirectoryRequest
		wantIDs []string
	}{
		{
			name:    "role only",
			request: DirectoryRequest{Role: &profRole},
			wantIDs: []string{"prof-ada", "prof-alan"},
		},
		{
			name:    "role and department",
			request: DirectoryRequest{Role: &profRole, Department: strPtr("Mathematics")},
			wantIDs: []string{"prof-alan"},
		},
		{
			name:    "major and year",
			request: DirectoryRequest{Major: strPtr("Computer Science"), Year: strPtr("Senior")},
			wantIDs: []string{"stud-grace"},
		},
		{
			name:    "query narrows role",
			request: DirectoryRequest{Role: &studentRole, Query: "mathematics"},
			wantIDs: []string{"stud-kat"},
		},
		{
			name:    "conflicting filters yield nothing",
			request: DirectoryRequest{Role: &profRole, Major: strPtr("Physics")},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.Search(context.Background(), "me", &tt.request)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			gotIDs := make([]string, 0, len(result.Users))
			for _, user := range result.Users {
				gotIDs = append(gotIDs, user.ID)
			}
			if !reflect.DeepEqual(gotIDs, tt.wantIDs) {
				t.Errorf("result IDs = %v, want %v", gotIDs, tt.wantIDs)
			}
		})
	}
}

// Facets feed the filter dropdowns, so narrowing the results must not
// narrow them: a professor-only search still lists student majors/years.
func TestDirectorySearchFacetsIgnoreFilters(t *testing.T) {
	repo, service := newDirectoryFixture(t)
	seedDirectory(repo)

	profRole := models.RoleProfessor
	result, err := service.Search(context.Background(), "me", &DirectoryRequest{Role: &profRole})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("total = %d, want the two professors", result.Total)
	}

	facets := result.Facets
	if want := []string{"Computer Science", "Mathematics"}; !reflect.DeepEqual(facets.Departments, want) {
		t.Errorf("departments = %v, want %v", facets.Departments, want)
	}
	if want := []string{"Computer Science", "Mathematics"}; !reflect.DeepEqual(facets.Majors, want) {
		t.Errorf("majors = %v, want %v", facets.Majors, want)
	}
	if want := []string{"Junior", "Senior"}; !reflect.DeepEqual(facets.Years, want) {
		t.Errorf("years = %v, want %v", facets.Years, want)
	}
}

func TestDirectorySearchMissingCaller(t *testing.T) {
	repo, service := newDirectoryFixture(t)
	seedDirectory(repo)

	_, err := service.Search(context.Background(), "ghost", &DirectoryRequest{})
	if err != ErrUserNotFound {
		t.Fatalf("Search() error = %v, want ErrUserNotFound", err)
	}
}

func TestComputeDirectoryFacets(t *testing.T) {
	users := []*models.User{
		{Role: models.RoleProfessor, Department: strPtr("Computer Science")},
		{Role: models.RoleProfessor, Department: strPtr("computer science")}, // case-insensitive duplicate
		{Role: models.RoleProfessor, Department: strPtr("Mathematics")},
		{Role: models.RoleProfessor},
		{Role: models.RoleStudent, Major: strPtr("Physics"), Year: strPtr("Senior")},
		{Role: models.RoleStudent, Major: strPtr("  ")}, // blank after trim
		{Role: models.RoleStudent, Major: strPtr("Biology"), Year: strPtr("Junior")},
	}

	facets := computeDirectoryFacets(users)

	if want := []string{"Computer Science", "Mathematics"}; !reflect.DeepEqual(facets.Departments, want) {
		t.Errorf("departments = %v, want %v", facets.Departments, want)
	}
	if want := []string{"Biology", "Physics"}; !reflect.DeepEqual(facets.Majors, want) {
		t.Errorf("majors = %v, want %v", facets.Majors, want)
	}
	if want := []string{"Junior", "Senior"}; !reflect.DeepEqual(facets.Years, want) {
		t.Errorf("years = %v, want %v", facets.Years, want)
	}
}
