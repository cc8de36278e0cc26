package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator renders lead reports to disk.
type Generator interface {
	GenerateLeadSummary(data SummaryData) (string, error)
}

type ReportGenerator struct {
	RootDir string // storage root, e.g. "./files"
}

type SummaryData struct {
	Total       int
	ByStatus    map[string]int
	GeneratedAt time.Time
	Filename    string // file name without path; generated when empty
}

func NewReportGenerator(rootDir string) *ReportGenerator {
	return &ReportGenerator{RootDir: filepath.Clean(rootDir)}
}

// GenerateLeadSummary writes a one-page summary PDF under RootDir and
// returns its absolute path.
func (g *ReportGenerator) GenerateLeadSummary(data SummaryData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("leads_summary_%s.pdf", data.GeneratedAt.Format("20060102_150405"))
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, "Lead summary report")
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 8, fmt.Sprintf("Generated at: %s", data.GeneratedAt.Format(time.RFC1123)))
	doc.Ln(8)
	doc.Cell(0, 8, fmt.Sprintf("Total leads: %d", data.Total))
	doc.Ln(12)

	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, "Leads by status")
	doc.Ln(9)

	statuses := make([]string, 0, len(data.ByStatus))
	for s := range data.ByStatus {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)

	doc.SetFont("Helvetica", "", 11)
	for _, status := range statuses {
		doc.Cell(60, 7, status)
		doc.Cell(0, 7, fmt.Sprintf("%d", data.ByStatus[status]))
		doc.Ln(7)
	}

	if err := doc.OutputFileAndClose(absPath); err != nil {
		return "", fmt.Errorf("failed to write pdf: %w", err)
	}
	return absPath, nil
}

func (g *ReportGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report dir: %w", err)
	}
	abs, err := filepath.Abs(filepath.Join(g.RootDir, filepath.Base(filename)))
	if err != nil {
		return "", err
	}
	return abs, nil
}
