package services

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/assessment-engine/internal/auth"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/xuri/excelize/v2"
)

const attemptsSheet = "Attempts"

// ExportAttempts renders the quiz's attempts as an xlsx workbook.
func (s *attemptService) ExportAttempts(ctx context.Context, quizID uint, principal auth.Principal) ([]byte, error) {
	attempts, err := s.ListAttempts(ctx, quizID, principal)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Exporting attempts", "quiz_id", quizID, "user_id", principal.ID, "count", len(attempts))

	data, err := writeAttemptsWorkbook(attempts)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func writeAttemptsWorkbook(attempts []*models.QuizAttempt) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(attemptsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []string{"Attempt ID", "Student ID", "Started At", "Completed At", "Score (%)", "Result", "Answers"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(attemptsSheet, cell, header)
	}

	for rowIndex, attempt := range attempts {
		row := []interface{}{
			attempt.ID,
			attempt.StudentID,
			attempt.StartedAt.Format("2006-01-02 15:04:05"),
		}

		if attempt.CompletedAt != nil {
			row = append(row, attempt.CompletedAt.Format("2006-01-02 15:04:05"))
		} else {
			row = append(row, "")
		}

		if attempt.Score != nil {
			row = append(row, *attempt.Score)
		} else {
			row = append(row, "")
		}

		switch {
		case attempt.Passed == nil:
			row = append(row, "")
		case *attempt.Passed:
			row = append(row, "Pass")
		default:
			row = append(row, "Fail")
		}

		row = append(row, len(attempt.Answers))

		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(attemptsSheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
