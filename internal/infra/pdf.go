package infra

// pdf.go: reporte de catastro de un cuartel usando go-pdf/fpdf.
// A4 vertical con:
//   - Encabezado con nombre del cuartel, sucursal y fecha de emisión
//   - Ficha del cuartel (superficie, variedad, año de plantación, estado de catastro)
//   - Tabla de hileras con plantas activas
//   - Total de plantas

import (
	"bytes"
	"fmt"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerarReporteCuartelPDF renders the cadastre report of a field and its rows.
func GenerarReporteCuartelPDF(c model.CuartelDetalle, hileras []model.HileraConteo, emitido time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Encabezado ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr("Reporte de catastro"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr(c.Nombre), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Emitido "+emitido.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Ficha ─────────────────────────────────────────────────────────────────
	ficha := [][2]string{
		{"ID cuartel", fmt.Sprintf("%d", c.ID)},
		{"Sucursal", valorOGuion(c.NombreSucursal)},
		{"Variedad", valorOGuion(c.NombreVariedad)},
		{"Superficie (ha)", c.Superficie.StringFixed(2)},
		{"Año plantación", enteroOGuion(c.AnoPlantacion)},
		{"Estado catastro", valorOGuion(c.EstadoCatastro)},
		{"N° hileras", fmt.Sprintf("%d", c.NHileras)},
	}
	for _, f := range ficha {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(45, 6, tr(f[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW-45, 6, tr(f[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Tabla de hileras ──────────────────────────────────────────────────────
	col1 := contentW * 0.2
	col2 := contentW * 0.5
	col3 := contentW * 0.3

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(54, 96, 146)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(col1, 7, "ID", "1", 0, "C", true, 0, "")
	pdf.CellFormat(col2, 7, "Hilera", "1", 0, "C", true, 0, "")
	pdf.CellFormat(col3, 7, "Plantas activas", "1", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 9)
	var total int64
	for _, h := range hileras {
		pdf.CellFormat(col1, 6, fmt.Sprintf("%d", h.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(col2, 6, tr(h.Hilera.Hilera), "1", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("%d", h.PlantasActivas), "1", 1, "R", false, 0, "")
		total += h.PlantasActivas
	}
	if len(hileras) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW, 6, "Sin hileras activas", "1", 1, "C", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2, 7, "TOTAL PLANTAS", "1", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 7, fmt.Sprintf("%d", total), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return buf.Bytes(), nil
}

func valorOGuion(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func enteroOGuion(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n)
}
