package report

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Licenças"

var xlsxColumns = []struct {
	title string
	width float64
}{
	{"Empresa", 30},
	{"CNPJ", 20},
	{"Número Licença", 20},
	{"Órgão Emissor", 20},
	{"Data Emissão", 15},
	{"Data Vencimento", 15},
	{"Status", 15},
	{"Contato", 20},
	{"E-mail", 25},
	{"Observações", 30},
}

// WriteXLSX grava uma planilha com uma linha por Row, cabeçalho em negrito.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	header := make([]any, len(xlsxColumns))
	for i, col := range xlsxColumns {
		header[i] = col.title
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, name, name, col.width); err != nil {
			return err
		}
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(xlsxColumns), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			r.CompanyName, r.CNPJ, r.LicenseNumber, r.Authority,
			r.IssueDate, r.ExpirationDate, r.StatusLabel,
			r.Contact, r.Email, r.Notes,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
	}

	return f.Write(w)
}
