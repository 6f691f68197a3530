package services

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/learning-assistant/internal/utils"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Results"

// ReportService exports graded quizzes as spreadsheets.
type ReportService interface {
	ExportQuizResult(ctx context.Context, quiz *QuizInstance) ([]byte, error)
}

type reportService struct {
	logger utils.Logger
}

func NewReportService(logger utils.Logger) ReportService {
	return &reportService{logger: logger}
}

// ExportQuizResult writes one row per question followed by a summary block.
// Ungraded quizzes return ErrQuizNotGraded.
func (s *reportService) ExportQuizResult(ctx context.Context, quiz *QuizInstance) ([]byte, error) {
	result, ok := quiz.Result()
	if !ok {
		return nil, ErrQuizNotGraded
	}
	questions := quiz.Questions()
	answers := quiz.Answers()

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []string{"#", "Question", "Your Answer", "Correct Answer", "Result"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(reportSheet, cell, header)
	}

	for rowIndex, q := range questions {
		selected := answers[rowIndex]
		outcome := "Incorrect"
		if result.PerQuestionCorrect[rowIndex] {
			outcome = "Correct"
		}

		row := []interface{}{
			rowIndex + 1,
			q.Question,
			q.Options[selected],
			q.Options[q.CorrectAnswer],
			outcome,
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(reportSheet, cell, value)
		}
	}

	summaryRow := len(questions) + 3
	summary := [][]interface{}{
		{"Learning Style", string(quiz.LearningStyle())},
		{"Score", fmt.Sprintf("%d/%d", result.CorrectCount, result.Total)},
		{"Percentage", result.RoundedPercentage()},
		{"Band", result.Band.Label()},
		{"Graded At", result.GradedAt.Format("2006-01-02 15:04:05")},
	}
	for i, line := range summary {
		f.SetCellValue(reportSheet, fmt.Sprintf("A%d", summaryRow+i), line[0])
		f.SetCellValue(reportSheet, fmt.Sprintf("B%d", summaryRow+i), line[1])
	}

	f.SetColWidth(reportSheet, "B", "D", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.DebugContext(ctx, "Exported quiz report",
		"quiz_id", quiz.ID(),
		"questions", len(questions),
		"bytes", buf.Len())

	return buf.Bytes(), nil
}
