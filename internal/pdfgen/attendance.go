package pdfgen

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

type AttendanceRow struct {
	FullName string
	Email    string
	Status   string
}

type AttendanceSheet struct {
	RoomName    string
	Date        string // já formatada DD/MM/YYYY
	StartTime   string
	EndTime     string
	Responsavel string
	Sector      string
	Purpose     string
	Rows        []AttendanceRow
}

// Render gera a lista de presença em PDF.
func Render(sheet AttendanceSheet) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Lista de Presença - SEGET"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, tr("Evento: "+sheet.Purpose), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr("Data: "+sheet.Date+" | Horário: "+sheet.StartTime+" - "+sheet.EndTime), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr("Sala: "+sheet.RoomName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr("Responsável: "+sheet.Responsavel+" ("+sheet.Sector+")"), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Cabeçalho da tabela
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(80, 8, tr("Nome Completo"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(75, 8, "E-mail", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Status", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range sheet.Rows {
		pdf.CellFormat(80, 8, tr(row.FullName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(75, 8, tr(row.Email), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, tr(row.Status), "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
