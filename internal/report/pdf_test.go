package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/accredhub/backend/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats(t *testing.T) {
	criteriaA := uuid.New()
	criteriaB := uuid.New()
	stats := ComputeStats([]model.Evaluation{
		{CriteriaID: criteriaA, Marks: 10},
		{CriteriaID: criteriaA, Marks: 4},
		{CriteriaID: criteriaB, Marks: 7},
	})

	assert.Equal(t, 3, stats.TotalEvaluations)
	assert.Equal(t, 2, stats.TotalCriteria)
	assert.Equal(t, float64(7), stats.AverageMarks)
	assert.Equal(t, float64(10), stats.MaxMarks)
	assert.Equal(t, float64(4), stats.MinMarks)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	assert.Equal(t, 0, stats.TotalEvaluations)
	assert.Equal(t, 0, stats.TotalCriteria)
	assert.Equal(t, float64(0), stats.AverageMarks)
}

func TestGenerateWritesPDF(t *testing.T) {
	dir := t.TempDir()
	generator := NewGenerator(dir)

	criteriaA := &model.Criteria{ID: uuid.New(), Code: "A", Name: "Teaching", Description: "Quality of instruction"}
	criteriaB := &model.Criteria{ID: uuid.New(), Code: "B", Name: "Research"}
	submission := &model.StudentSubmission{ID: uuid.New(), Title: "Evidence bundle"}
	now := time.Now()

	path, filename, err := generator.Generate([]model.Evaluation{
		{ID: uuid.New(), CriteriaID: criteriaA.ID, Criteria: criteriaA, SubmissionID: &submission.ID, Submission: submission, Marks: 8, Comments: "solid", EvaluationDate: now, AcademicYear: "2025-2026"},
		{ID: uuid.New(), CriteriaID: criteriaA.ID, Criteria: criteriaA, Marks: 6, EvaluationDate: now},
		{ID: uuid.New(), CriteriaID: criteriaB.ID, Criteria: criteriaB, Marks: 5, EvaluationDate: now},
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, filename), path)
	assert.Contains(t, filename, "evaluation-summary-")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateSingleCriterionWithSeveralMarks(t *testing.T) {
	dir := t.TempDir()
	generator := NewGenerator(dir)

	criteria := &model.Criteria{ID: uuid.New(), Code: "A", Name: "Teaching"}
	now := time.Now()
	path, _, err := generator.Generate([]model.Evaluation{
		{ID: uuid.New(), CriteriaID: criteria.ID, Criteria: criteria, Marks: 5, EvaluationDate: now},
		{ID: uuid.New(), CriteriaID: criteria.ID, Criteria: criteria, Marks: 7, EvaluationDate: now.Add(time.Hour)},
		{ID: uuid.New(), CriteriaID: criteria.ID, Criteria: criteria, Marks: 9, EvaluationDate: now.Add(2 * time.Hour)},
	})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateSingleEvaluationSkipsChart(t *testing.T) {
	dir := t.TempDir()
	generator := NewGenerator(dir)

	criteria := &model.Criteria{ID: uuid.New(), Code: "A", Name: "Teaching"}
	path, _, err := generator.Generate([]model.Evaluation{
		{ID: uuid.New(), CriteriaID: criteria.ID, Criteria: criteria, Marks: 8, EvaluationDate: time.Now()},
	})
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestRenderMarksChartOrdersByDate(t *testing.T) {
	criteria := &model.Criteria{ID: uuid.New(), Code: "A", Name: "Teaching"}
	now := time.Now()
	buf, err := renderMarksChart(criteriaGroup{
		criteria: criteria,
		evaluations: []model.Evaluation{
			{CriteriaID: criteria.ID, Criteria: criteria, Marks: 9, EvaluationDate: now.Add(time.Hour)},
			{CriteriaID: criteria.ID, Criteria: criteria, Marks: 5, EvaluationDate: now},
		},
	})
	require.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)
}

func TestEvaluationDetails(t *testing.T) {
	criteria := &model.Criteria{ID: uuid.New(), Code: "A", Name: "Teaching"}
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	general := evaluationDetails(criteria, model.Evaluation{Marks: 7, EvaluationDate: now})
	assert.Equal(t, []string{
		"Criteria: A - Teaching",
		"Type: General Criteria Evaluation",
		"Marks: 7.00",
		"Date: 2026-03-01",
	}, general)

	submission := &model.StudentSubmission{
		ID:      uuid.New(),
		Title:   "Evidence bundle",
		Student: &model.User{Name: "Ada", Email: "ada@example.com"},
	}
	withSubmission := evaluationDetails(criteria, model.Evaluation{
		SubmissionID:   &submission.ID,
		Submission:     submission,
		Marks:          8,
		Comments:       "solid",
		EvaluationDate: now,
	})
	assert.Equal(t, []string{
		"Criteria: A - Teaching",
		"Submission: Evidence bundle",
		"Student: Ada (ada@example.com)",
		"Marks: 8.00",
		"Comments: solid",
		"Date: 2026-03-01",
	}, withSubmission)
}

func TestGroupByCriteriaOrdersByCode(t *testing.T) {
	criteriaB := &model.Criteria{ID: uuid.New(), Code: "B", Name: "Research"}
	criteriaA := &model.Criteria{ID: uuid.New(), Code: "A", Name: "Teaching"}

	groups := groupByCriteria([]model.Evaluation{
		{ID: uuid.New(), CriteriaID: criteriaB.ID, Criteria: criteriaB, Marks: 5},
		{ID: uuid.New(), CriteriaID: criteriaA.ID, Criteria: criteriaA, Marks: 8},
		{ID: uuid.New(), CriteriaID: uuid.New(), Marks: 3}, // unresolved, skipped
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "A", groups[0].criteria.Code)
	assert.Equal(t, "B", groups[1].criteria.Code)
}
