package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/crist-12/malla-curricular/internal/engine"
	"github.com/crist-12/malla-curricular/internal/model"
	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
)

// ExportService renders a guide snapshot into a printable A4 document:
// theme-colored header with the aggregate metrics, one section per period with
// the subject boxes, and a footer with the generation date.
type ExportService struct {
	log zerolog.Logger
}

// NewExportService creates a new ExportService.
func NewExportService(log zerolog.Logger) *ExportService {
	return &ExportService{log: log.With().Str("component", "export_service").Logger()}
}

const (
	exportMargin       = 15.0
	exportHeaderHeight = 40.0
	exportFooterHeight = 20.0
	subjectBoxWidth    = 45.0
	subjectBoxHeight   = 30.0
	subjectBoxMargin   = 5.0
)

// Render produces the PDF bytes for a guide. studentLabel is the display name
// (or email) of the user shown on the document.
func (s *ExportService) Render(g *model.Guide, studentLabel string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	header := g.Theme.HeaderColor()

	// Header band: university, guide name, student, metrics right-aligned.
	pdf.SetFillColor(header.R, header.G, header.B)
	pdf.Rect(0, 0, pageW, exportHeaderHeight, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(exportMargin, 15, tr(g.University))
	pdf.Text(exportMargin, 25, tr(g.Name))
	pdf.Text(exportMargin, 35, tr("Estudiante: "+studentLabel))

	pdf.SetFontSize(12)
	average := fmt.Sprintf("Promedio Global: %.2f", engine.WeightedAverage(g))
	progress := fmt.Sprintf("Progreso: %.1f%%", engine.Progress(g))
	pdf.Text(pageW-exportMargin-pdf.GetStringWidth(average), 15, tr(average))
	pdf.Text(pageW-exportMargin-pdf.GetStringWidth(progress), 25, tr(progress))

	// Period sections with subject boxes wrapping across rows. An empty guide
	// still gets its first period section so the document is never blank.
	lastPeriod := g.MaxPeriod()
	if lastPeriod == 0 {
		lastPeriod = 1
	}
	yPos := exportHeaderHeight + exportMargin
	for period := 1; period <= lastPeriod; period++ {
		if yPos+subjectBoxHeight+exportFooterHeight > pageH {
			pdf.AddPage()
			yPos = exportMargin
		}

		pdf.SetFillColor(240, 240, 240)
		pdf.Rect(exportMargin, yPos, pageW-2*exportMargin, 10, "F")
		pdf.SetTextColor(60, 60, 60)
		pdf.SetFont("Helvetica", "", 12)
		pdf.Text(exportMargin+2, yPos+7, tr(fmt.Sprintf("%dº %s", period, g.PeriodType.Label())))

		xPos := exportMargin
		yPos += 15

		for _, subject := range g.Subjects {
			if subject.Period != period {
				continue
			}
			if xPos+subjectBoxWidth > pageW-exportMargin {
				xPos = exportMargin
				yPos += subjectBoxHeight + subjectBoxMargin
			}

			pdf.SetFillColor(header.R, header.G, header.B)
			pdf.RoundedRect(xPos, yPos, subjectBoxWidth, subjectBoxHeight, 2, "1234", "F")
			pdf.SetTextColor(255, 255, 255)
			pdf.SetFontSize(8)

			lineY := yPos + 5
			for _, line := range pdf.SplitText(tr(subject.Name), subjectBoxWidth-4) {
				pdf.Text(xPos+2, lineY, line)
				lineY += 4
			}

			pdf.Text(xPos+2, yPos+subjectBoxHeight-8, fmt.Sprintf("%d cr.", subject.Credits))
			if subject.Score != nil {
				pdf.Text(xPos+2, yPos+subjectBoxHeight-3, tr(fmt.Sprintf("Nota: %.0f", *subject.Score)))
			}

			xPos += subjectBoxWidth + subjectBoxMargin
		}

		yPos += subjectBoxHeight + exportMargin
	}

	// Footer band with the generation date.
	pdf.SetFillColor(header.R, header.G, header.B)
	pdf.Rect(0, pageH-exportFooterHeight, pageW, exportFooterHeight, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFontSize(8)
	generated := fmt.Sprintf("Generado el %s por el Sistema de Malla Curricular", time.Now().Format("02/01/2006"))
	pdf.Text(exportMargin, pageH-8, tr(generated))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
