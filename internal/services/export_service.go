package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/repositories"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type exportService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// ExportInterestRoster renders the applicant roster for one opportunity
// as a spreadsheet, newest interest first. Only the posting professor may
// export it. Rows come from the application snapshots, so the roster
// shows each student as they were when they applied.
func (s *exportService) ExportInterestRoster(ctx context.Context, professorID string, opportunityID uint) (*ExportResult, error) {
	opportunity, err := s.repo.Opportunity().GetByID(ctx, s.db, opportunityID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("failed to load opportunity: %w", err)
	}
	if opportunity.ProfessorID != professorID {
		return nil, NewPermissionError(professorID, opportunityID, "interest", "export",
			"only the posting professor may export the roster")
	}

	interests, err := s.repo.Interest().ListByOpportunity(ctx, s.db, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Interested Students"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"#", "Student Name", "Email", "Resume", "Marked At"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		f.SetCellStyle(sheet, "A1", "E1", headerStyle)
	}

	for row, interest := range interests {
		resume := ""
		if interest.StudentResumeLink != nil {
			resume = *interest.StudentResumeLink
		}
		values := []interface{}{
			row + 1,
			interest.StudentName,
			interest.StudentEmail,
			resume,
			interest.CreatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	f.SetColWidth(sheet, "B", "C", 30)
	f.SetColWidth(sheet, "D", "E", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render spreadsheet: %w", err)
	}

	s.logger.InfoContext(ctx, "interest roster exported",
		"opportunity_id", opportunityID,
		"professor_id", professorID,
		"rows", len(interests),
	)

	return &ExportResult{
		Filename:    fmt.Sprintf("interested-students-%d-%s.xlsx", opportunityID, time.Now().Format("2006-01-02")),
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
	}, nil
}
