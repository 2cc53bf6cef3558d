// Package pdf renders the staff roster and training progress report.
// The first page is the roster; each following page shows one employee's
// courses with a progress bar per course.
package pdf

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/csg33k/staffdesk/internal/domain"
)

// Generator implements ports.ReportGenerator.
type Generator struct {
	// Org is printed in the footer of every page.
	Org string
	Now func() time.Time
}

func New(org string) *Generator {
	return &Generator{Org: org, Now: time.Now}
}

// Generate writes the report to w.
func (g *Generator) Generate(ctx context.Context, employees []domain.Employee, progress []domain.EmployeeProgress, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	stamp := now().Format("2006-01-02 15:04")

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("{nb}")
	pdf.SetTitle("Training Progress Report", false)

	pdf.AddPage()
	drawRoster(pdf, employees)
	g.drawFooter(pdf, stamp)

	for i := range progress {
		if err := ctx.Err(); err != nil {
			return err
		}
		pdf.AddPage()
		drawProgress(pdf, &progress[i])
		g.drawFooter(pdf, stamp)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return pdf.Output(w)
}

func drawHeader(pdf *fpdf.Fpdf, title string) float64 {
	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW-4, 7, title, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 7, "Page "+fmt.Sprint(pdf.PageNo())+" of {nb}", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return marginT + 13
}

func drawRoster(pdf *fpdf.Fpdf, employees []domain.Employee) {
	pageW, _ := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR
	y := drawHeader(pdf, "STAFF ROSTER")

	cols := []struct {
		title string
		width float64
		align string
	}{
		{"Name", 0.22, "L"},
		{"Position", 0.22, "L"},
		{"Department", 0.16, "L"},
		{"Mentor", 0.18, "L"},
		{"Start Date", 0.12, "C"},
		{"Progress", 0.10, "R"},
	}

	pdf.SetFillColor(30, 30, 30)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.SetXY(marginL, y)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(contentW*c.width, 7, c.title, "1", ln, c.align, true, 0, "")
	}
	y += 7
	pdf.SetTextColor(0, 0, 0)

	if len(employees) == 0 {
		pdf.SetFont("Helvetica", "I", 8.5)
		pdf.SetXY(marginL, y)
		pdf.CellFormat(contentW, 6.5, "No employees", "1", 1, "C", false, 0, "")
		return
	}

	rowH := 6.5
	pdf.SetFont("Helvetica", "", 8.5)
	for i, e := range employees {
		if i%2 == 0 {
			pdf.SetFillColor(250, 250, 250)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		vals := []string{e.Name, e.Position, e.Department, dash(e.Mentor), dash(e.StartDate), fmt.Sprintf("%d%%", e.Progress)}
		pdf.SetXY(marginL, y)
		for j, c := range cols {
			ln := 0
			if j == len(cols)-1 {
				ln = 1
			}
			pdf.CellFormat(contentW*c.width, rowH, vals[j], "1", ln, c.align, true, 0, "")
		}
		y += rowH
	}
}

func drawProgress(pdf *fpdf.Fpdf, p *domain.EmployeeProgress) {
	pageW, _ := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR
	y := drawHeader(pdf, "TRAINING PROGRESS")

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(contentW, 5.5, "EMPLOYEE", "LRT", 1, "L", true, 0, "")
	y += 5.5

	colHalf := contentW / 2
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(colHalf, 6.5, p.Name, "LB", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(colHalf, 6.5, p.Role, "RB", 1, "R", false, 0, "")
	y += 11.5

	nameW := contentW * 0.40
	barW := contentW * 0.45
	pctW := contentW - nameW - barW

	pdf.SetFillColor(30, 30, 30)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(nameW, 7, "Course", "1", 0, "L", true, 0, "")
	pdf.CellFormat(barW, 7, "Progress", "1", 0, "C", true, 0, "")
	pdf.CellFormat(pctW, 7, "Complete", "1", 1, "C", true, 0, "")
	y += 7
	pdf.SetTextColor(0, 0, 0)

	rowH := 6.5
	pdf.SetFont("Helvetica", "", 8.5)
	for _, c := range p.Courses {
		pdf.SetXY(marginL, y)
		pdf.CellFormat(nameW, rowH, c.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(barW, rowH, "", "1", 0, "L", false, 0, "")
		pdf.CellFormat(pctW, rowH, fmt.Sprintf("%d%%", c.Progress), "1", 1, "R", false, 0, "")

		// bar inset inside its cell
		inner := barW - 4
		pdf.SetFillColor(225, 225, 225)
		pdf.Rect(marginL+nameW+2, y+2, inner, rowH-4, "F")
		if c.Progress > 0 {
			pdf.SetFillColor(60, 130, 90)
			pdf.Rect(marginL+nameW+2, y+2, inner*float64(clampPct(c.Progress))/100, rowH-4, "F")
		}
		y += rowH
	}

	y += 4
	pdf.SetFont("Helvetica", "I", 8.5)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(contentW, 5.5,
		fmt.Sprintf("%d of %d courses completed", p.CompletedCourses(), len(p.Courses)),
		"", 1, "L", false, 0, "")
}

func (g *Generator) drawFooter(pdf *fpdf.Fpdf, stamp string) {
	pageW, pageH := pdf.GetPageSize()
	marginL, _, marginR, marginB := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	pdf.SetAutoPageBreak(false, 0)
	pdf.SetXY(marginL, pageH-marginB-6)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(contentW/2, 5, "Generated "+stamp, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, g.Org, "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetAutoPageBreak(true, marginB)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func clampPct(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 100:
		return 100
	}
	return n
}
