package infra

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the MIME type of the generated workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HojaExcel describes one worksheet of a template: a styled header row
// followed by example or data rows.
type HojaExcel struct {
	Nombre          string
	Encabezados     []string
	Filas           [][]any
	Anchos          []float64
	ColorEncabezado string // hex without '#', default 366092
}

// GenerarExcel builds an .xlsx workbook with the given sheets, in order.
func GenerarExcel(hojas ...HojaExcel) ([]byte, error) {
	if len(hojas) == 0 {
		return nil, fmt.Errorf("excel: se requiere al menos una hoja")
	}
	f := excelize.NewFile()
	defer f.Close()

	for i, h := range hojas {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", h.Nombre); err != nil {
				return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
			}
		} else if _, err := f.NewSheet(h.Nombre); err != nil {
			return nil, fmt.Errorf("excel: crear hoja %q: %w", h.Nombre, err)
		}
		if err := escribirHoja(f, h); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func escribirHoja(f *excelize.File, h HojaExcel) error {
	color := h.ColorEncabezado
	if color == "" {
		color = "366092"
	}
	if len(h.Encabezados) > 0 {
		estilo, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		})
		if err != nil {
			return fmt.Errorf("excel: estilo: %w", err)
		}
		for col, titulo := range h.Encabezados {
			celda, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(h.Nombre, celda, titulo); err != nil {
				return err
			}
		}
		ultima, _ := excelize.CoordinatesToCellName(len(h.Encabezados), 1)
		if err := f.SetCellStyle(h.Nombre, "A1", ultima, estilo); err != nil {
			return err
		}
	}

	inicio := 1
	if len(h.Encabezados) > 0 {
		inicio = 2
	}
	for r, fila := range h.Filas {
		for c, valor := range fila {
			celda, _ := excelize.CoordinatesToCellName(c+1, inicio+r)
			if err := f.SetCellValue(h.Nombre, celda, valor); err != nil {
				return err
			}
		}
	}

	for i, ancho := range h.Anchos {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(h.Nombre, col, col, ancho); err != nil {
			return err
		}
	}
	return nil
}

// LeerHojaExcel returns every row of the named sheet as strings. An empty name
// reads the first sheet.
func LeerHojaExcel(r io.Reader, hoja string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excel: archivo invalido: %w", err)
	}
	defer f.Close()

	if hoja == "" {
		hojas := f.GetSheetList()
		if len(hojas) == 0 {
			return nil, fmt.Errorf("excel: el archivo no tiene hojas")
		}
		hoja = hojas[0]
	}
	filas, err := f.GetRows(hoja)
	if err != nil {
		return nil, fmt.Errorf("excel: leer hoja %q: %w", hoja, err)
	}
	return filas, nil
}
