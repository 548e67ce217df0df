package service

import (
	"strconv"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/model"
)

// NombreHilera is the identifier given to auto-numbered rows.
func NombreHilera(n int) string { return "Hilera " + strconv.Itoa(n) }

// hilerasNumeradas builds n rows numbered from desde, skipping identifiers in
// ocupados so appended rows never collide with existing active ones.
func hilerasNumeradas(cuartelID int64, desde, n int, ocupados map[string]bool, ahora time.Time) []model.Hilera {
	hileras := make([]model.Hilera, 0, n)
	for k := desde; len(hileras) < n; k++ {
		nombre := NombreHilera(k)
		if ocupados[nombre] {
			continue
		}
		hileras = append(hileras, model.Hilera{
			Hilera:        nombre,
			IDCuartel:     cuartelID,
			IDEstado:      model.EstadoActivo,
			FechaCreacion: &ahora,
		})
	}
	return hileras
}

// plantasNumeradas builds plants "1".."n" for a row.
func plantasNumeradas(hileraID int64, n int, ahora time.Time) []model.Planta {
	plantas := make([]model.Planta, n)
	for i := range plantas {
		plantas[i] = model.Planta{
			Planta:        strconv.Itoa(i + 1),
			IDHilera:      hileraID,
			IDEstado:      model.EstadoActivo,
			FechaCreacion: &ahora,
		}
	}
	return plantas
}

func conjunto(valores []string) map[string]bool {
	set := make(map[string]bool, len(valores))
	for _, v := range valores {
		set[v] = true
	}
	return set
}
