package report

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/accredhub/backend/internal/model"
	"github.com/jung-kurt/gofpdf"
	"github.com/wcharczuk/go-chart/v2"
)

// Stats are the headline numbers on the report cover page.
type Stats struct {
	TotalEvaluations int
	TotalCriteria    int
	AverageMarks     float64
	MaxMarks         float64
	MinMarks         float64
}

type criteriaGroup struct {
	criteria    *model.Criteria
	evaluations []model.Evaluation
}

// Generator renders evaluation summary PDFs into reportDir.
type Generator struct {
	reportDir string
}

func NewGenerator(reportDir string) *Generator {
	return &Generator{reportDir: reportDir}
}

// ComputeStats aggregates headline numbers over a batch of evaluations.
func ComputeStats(evaluations []model.Evaluation) Stats {
	stats := Stats{TotalEvaluations: len(evaluations)}
	if len(evaluations) == 0 {
		return stats
	}

	seen := map[string]bool{}
	stats.MaxMarks = evaluations[0].Marks
	stats.MinMarks = evaluations[0].Marks
	var total float64
	for _, evaluation := range evaluations {
		seen[evaluation.CriteriaID.String()] = true
		total += evaluation.Marks
		if evaluation.Marks > stats.MaxMarks {
			stats.MaxMarks = evaluation.Marks
		}
		if evaluation.Marks < stats.MinMarks {
			stats.MinMarks = evaluation.Marks
		}
	}
	stats.TotalCriteria = len(seen)
	stats.AverageMarks = total / float64(len(evaluations))
	return stats
}

// Generate writes the summary PDF and returns its path and download filename.
// The document runs cover, table of contents, executive summary, criteria-wise
// analysis, detailed evaluations, closing summary. The half-written file is
// removed if rendering fails partway.
func (g *Generator) Generate(evaluations []model.Evaluation) (string, string, error) {
	if err := os.MkdirAll(g.reportDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create report dir: %w", err)
	}

	groups := groupByCriteria(evaluations)
	stats := ComputeStats(evaluations)

	filename := fmt.Sprintf("evaluation-summary-%s.pdf", time.Now().Format("2006-01-02"))
	path := filepath.Join(g.reportDir, filename)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 5, "Confidential - For internal use only", "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	g.coverPage(pdf, stats)
	g.contentsPage(pdf, groups)
	g.summaryPage(pdf, stats)
	g.analysisPages(pdf, groups)
	g.detailPages(pdf, groups)
	g.closingPage(pdf, stats)

	if err := pdf.OutputFileAndClose(path); err != nil {
		if removeErr := os.Remove(path); removeErr != nil && !os.IsNotExist(removeErr) {
			log.Printf("report: cleanup of %s failed: %v", path, removeErr)
		}
		return "", "", fmt.Errorf("render pdf: %w", err)
	}
	return path, filename, nil
}

func (g *Generator) coverPage(pdf *gofpdf.Fpdf, stats Stats) {
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 24)
	pdf.CellFormat(0, 40, "EVALUATION SUMMARY REPORT", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 16)
	pdf.CellFormat(0, 10, "Comprehensive Evaluation Report", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated on: %s", time.Now().Format("02 Jan 2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Total Evaluations: %d", stats.TotalEvaluations), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Total Criteria: %d", stats.TotalCriteria), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Overall Average: %.2f", stats.AverageMarks), "", 1, "C", false, 0, "")
}

// contentsPage lists the two fixed sections, then every criterion as its own
// numbered entry.
func (g *Generator) contentsPage(pdf *gofpdf.Fpdf, groups []criteriaGroup) {
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "TABLE OF CONTENTS", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, "1. Executive Summary", "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "2. Criteria-wise Analysis", "", 1, "L", false, 0, "")
	for i, group := range groups {
		entry := fmt.Sprintf("%d. %s - %s", i+3, group.criteria.Code, group.criteria.Name)
		pdf.CellFormat(10, 8, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, entry, "", 1, "L", false, 0, "")
	}
}

func (g *Generator) summaryPage(pdf *gofpdf.Fpdf, stats Stats) {
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "1. EXECUTIVE SUMMARY", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Overall Statistics", "", 1, "L", false, 0, "")

	rows := [][2]string{
		{"Total Evaluations", fmt.Sprintf("%d", stats.TotalEvaluations)},
		{"Total Criteria Evaluated", fmt.Sprintf("%d", stats.TotalCriteria)},
		{"Average Marks", fmt.Sprintf("%.2f", stats.AverageMarks)},
		{"Highest Score", fmt.Sprintf("%.2f", stats.MaxMarks)},
		{"Lowest Score", fmt.Sprintf("%.2f", stats.MinMarks)},
	}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(100, 8, "Metric", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Value", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.CellFormat(100, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, row[1], "1", 1, "R", false, 0, "")
	}
}

// analysisPages writes one subsection per criterion: heading, description,
// a stats block, and a marks chart when the criterion has at least two
// evaluations to plot. Chart failures degrade to a text note.
func (g *Generator) analysisPages(pdf *gofpdf.Fpdf, groups []criteriaGroup) {
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "2. CRITERIA-WISE ANALYSIS", "", 1, "L", false, 0, "")

	for i, group := range groups {
		if pdf.GetY() > 230 {
			pdf.AddPage()
		}
		pdf.Ln(4)

		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 9, fmt.Sprintf("%s - %s", group.criteria.Code, group.criteria.Name), "", 1, "L", false, 0, "")
		if group.criteria.Description != "" {
			pdf.SetFont("Arial", "I", 10)
			pdf.MultiCell(0, 5, group.criteria.Description, "", "L", false)
		}

		stats := ComputeStats(group.evaluations)
		pdf.SetFont("Arial", "", 10)
		for _, line := range []string{
			fmt.Sprintf("Total Evaluations: %d", stats.TotalEvaluations),
			fmt.Sprintf("Average Marks: %.2f", stats.AverageMarks),
			fmt.Sprintf("Highest Marks: %.2f", stats.MaxMarks),
			fmt.Sprintf("Lowest Marks: %.2f", stats.MinMarks),
		} {
			pdf.CellFormat(10, 6, "", "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 6, "- "+line, "", 1, "L", false, 0, "")
		}

		if len(group.evaluations) >= 2 {
			g.groupChart(pdf, i, group)
		}

		pdf.Ln(3)
		pdf.SetDrawColor(224, 224, 224)
		pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
		pdf.SetDrawColor(0, 0, 0)
		pdf.Ln(2)
	}
}

func (g *Generator) groupChart(pdf *gofpdf.Fpdf, index int, group criteriaGroup) {
	buf, err := renderMarksChart(group)
	if err != nil {
		log.Printf("report: chart render failed for %s, falling back to text: %v", group.criteria.Code, err)
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(10, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, "Chart generation skipped for this criteria", "", 1, "L", false, 0, "")
		return
	}

	if pdf.GetY() > 180 {
		pdf.AddPage()
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	name := fmt.Sprintf("marks-chart-%d", index)
	pdf.RegisterImageOptionsReader(name, opts, buf)
	pdf.ImageOptions(name, 25, pdf.GetY()+3, 160, 0, false, opts, 0, "")
	// 600x300 source scaled to 160mm is 80mm tall; advance past it.
	pdf.SetY(pdf.GetY() + 88)
}

// detailPages lists every evaluation with its full context, one bullet block
// each, ordered by criteria code.
func (g *Generator) detailPages(pdf *gofpdf.Fpdf, groups []criteriaGroup) {
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "3. DETAILED EVALUATIONS", "", 1, "L", false, 0, "")

	index := 0
	for _, group := range groups {
		for _, evaluation := range group.evaluations {
			index++
			if pdf.GetY() > 250 {
				pdf.AddPage()
			}
			pdf.Ln(2)

			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(0, 6, fmt.Sprintf("Evaluation %d:", index), "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			for _, line := range evaluationDetails(group.criteria, evaluation) {
				if pdf.GetY() > 265 {
					pdf.AddPage()
				}
				pdf.MultiCell(0, 5, "- "+line, "", "L", false)
			}
		}
	}
}

func (g *Generator) closingPage(pdf *gofpdf.Fpdf, stats Stats) {
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "REPORT SUMMARY", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 6, "This report contains a comprehensive analysis of all evaluations conducted.", "", "C", false)
	pdf.Ln(4)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total Evaluations: %d", stats.TotalEvaluations), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Average Score: %.2f", stats.AverageMarks), "", 1, "C", false, 0, "")
	pdf.Ln(10)
	pdf.CellFormat(0, 8, "--- End of Report ---", "", 1, "C", false, 0, "")
}

func evaluationDetails(criteria *model.Criteria, evaluation model.Evaluation) []string {
	lines := []string{fmt.Sprintf("Criteria: %s - %s", criteria.Code, criteria.Name)}
	if evaluation.Submission != nil {
		lines = append(lines, fmt.Sprintf("Submission: %s", evaluation.Submission.Title))
		if evaluation.Submission.Student != nil {
			student := evaluation.Submission.Student
			lines = append(lines, fmt.Sprintf("Student: %s (%s)", student.Name, student.Email))
		}
	} else {
		lines = append(lines, "Type: General Criteria Evaluation")
	}
	lines = append(lines, fmt.Sprintf("Marks: %.2f", evaluation.Marks))
	if evaluation.Comments != "" {
		lines = append(lines, fmt.Sprintf("Comments: %s", evaluation.Comments))
	}
	lines = append(lines, fmt.Sprintf("Date: %s", evaluation.EvaluationDate.Format("2006-01-02")))
	return lines
}

// renderMarksChart plots one bar per evaluation in date order.
func renderMarksChart(group criteriaGroup) (*bytes.Buffer, error) {
	evaluations := make([]model.Evaluation, len(group.evaluations))
	copy(evaluations, group.evaluations)
	sort.Slice(evaluations, func(i, j int) bool {
		return evaluations[i].EvaluationDate.Before(evaluations[j].EvaluationDate)
	})

	bars := make([]chart.Value, 0, len(evaluations))
	for i, evaluation := range evaluations {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("Eval %d", i+1),
			Value: evaluation.Marks,
		})
	}

	barChart := chart.BarChart{
		Title:    fmt.Sprintf("Marks Distribution - %s", group.criteria.Code),
		Width:    600,
		Height:   300,
		BarWidth: 40,
		Bars:     bars,
	}

	buf := &bytes.Buffer{}
	if err := barChart.Render(chart.PNG, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// groupByCriteria buckets evaluations by criteria, ordered by code. An
// evaluation with an unresolved criteria reference is skipped.
func groupByCriteria(evaluations []model.Evaluation) []criteriaGroup {
	byID := map[string]*criteriaGroup{}
	for _, evaluation := range evaluations {
		if evaluation.Criteria == nil {
			log.Printf("report: skipping evaluation %s with unresolved criteria", evaluation.ID)
			continue
		}
		key := evaluation.CriteriaID.String()
		group, ok := byID[key]
		if !ok {
			group = &criteriaGroup{criteria: evaluation.Criteria}
			byID[key] = group
		}
		group.evaluations = append(group.evaluations, evaluation)
	}

	groups := make([]criteriaGroup, 0, len(byID))
	for _, group := range byID {
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].criteria.Code < groups[j].criteria.Code
	})
	return groups
}
