package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Empresa", 45},
	{"Documento", 28},
	{"Órgão", 30},
	{"Vencimento", 22},
	{"Status", 18},
	{"Contato", 47},
}

// WritePDF gera a listagem em A4 retrato. As fontes padrão do PDF são
// cp1252, então os textos passam pelo tradutor de UTF-8.
func WritePDF(w io.Writer, rows []Row, meta Meta) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(40, 40, 40)
	pdf.Text(14, 22, tr(meta.Firm))

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(14, 32, tr(meta.Title))

	pdf.SetFont("Helvetica", "", 10)
	at := meta.GeneratedAt
	pdf.Text(14, 38, tr(fmt.Sprintf("Gerado em: %s às %s", at.Format("02/01/2006"), at.Format("15:04:05"))))

	pdf.SetY(45)
	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(66, 66, 66)
		pdf.SetTextColor(255, 255, 255)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, tr(col.title), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
	header()

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(40, 40, 40)
	for i, r := range rows {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			header()
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(40, 40, 40)
		}
		if i%2 == 1 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		cells := []string{
			r.CompanyName,
			r.LicenseNumber,
			r.Authority,
			r.ExpirationDate,
			r.StatusLabel,
			fmt.Sprintf("%s (%s)", r.Contact, r.Email),
		}
		for j, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, fit(pdf, tr(cells[j]), col.width-2), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

// fit corta o texto para caber na coluna.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	b := []byte(s)
	for len(b) > 0 && pdf.GetStringWidth(string(b)+"...") > width {
		b = b[:len(b)-1]
	}
	return string(b) + "..."
}
