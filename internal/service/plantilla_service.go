package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/infra"
	"github.com/soporte-code/API-PORTALWEB/internal/repository"

	"github.com/shopspring/decimal"
)

// Tipos de plantilla e importación.
const (
	PlantillaCuarteles = "cuarteles"
	PlantillaRegistros = "registros"
	PlantillaCompleto  = "completo"
	PlantillaPlantas   = "plantas"
)

const (
	hojaCuarteles     = "Carga Masiva Cuarteles"
	hojaRegistros     = "Carga Masiva Registros"
	hojaPlantas       = "Plantilla Plantas"
	hojaInstrucciones = "Instrucciones"
)

// Archivo is a generated document ready to be sent as an attachment.
type Archivo struct {
	Nombre      string
	ContentType string
	Datos       []byte
}

// PlantillaService generates the Excel templates and imports them back
// through the bulk engine.
type PlantillaService interface {
	PlantillaPlantas(ctx context.Context, usuarioID string, cuartelID int64) (*Archivo, error)
	PlantillaPlantasMasiva(ctx context.Context, usuarioID string, cuartelIDs []int64) (*Archivo, error)
	Plantilla(tipo string) (*Archivo, error)
	Importar(ctx context.Context, usuarioID, tipo string, r io.Reader) (*dto.ReporteCarga, error)
}

type plantillaService struct {
	cuarteles repository.CuartelRepository
	hileras   repository.HileraRepository
	alcance   AlcanceService
	carga     CargaMasivaService
}

func NewPlantillaService(
	cuarteles repository.CuartelRepository,
	hileras repository.HileraRepository,
	alcance AlcanceService,
	carga CargaMasivaService,
) PlantillaService {
	return &plantillaService{cuarteles: cuarteles, hileras: hileras, alcance: alcance, carga: carga}
}

var encabezadosPlantas = []string{"ID_Cuartel", "Nombre_Cuartel", "ID_Hilera", "Nombre_Hilera", "Plantas_Existentes", "N_Plantas_Nuevas"}

func (s *plantillaService) PlantillaPlantas(ctx context.Context, usuarioID string, cuartelID int64) (*Archivo, error) {
	return s.plantillaPlantas(ctx, usuarioID, []int64{cuartelID}, fmt.Sprintf("plantilla_plantas_cuartel_%d.xlsx", cuartelID))
}

func (s *plantillaService) PlantillaPlantasMasiva(ctx context.Context, usuarioID string, cuartelIDs []int64) (*Archivo, error) {
	ids := unicos(cuartelIDs)
	if len(ids) == 0 {
		return nil, apierror.Validacion("Se requiere al menos un cuartel")
	}
	return s.plantillaPlantas(ctx, usuarioID, ids, fmt.Sprintf("plantilla_plantas_masiva_%d_cuarteles.xlsx", len(ids)))
}

// plantillaPlantas lists every active row of the requested fields in scope.
// Fields outside the scope are skipped; none found is a 404.
func (s *plantillaService) plantillaPlantas(ctx context.Context, usuarioID string, ids []int64, nombre string) (*Archivo, error) {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	cuarteles := make(map[int64]string, len(ids))
	encontrados := make([]int64, 0, len(ids))
	for _, id := range ids {
		c, err := s.cuarteles.FindEnAlcance(ctx, id, sucursales)
		if err != nil {
			if errorDeBusqueda(err) {
				return nil, err
			}
			continue
		}
		cuarteles[c.ID] = c.Nombre
		encontrados = append(encontrados, c.ID)
	}
	if len(encontrados) == 0 {
		return nil, apierror.NoEncontrado(msgCuartelNoEncontrado)
	}

	hileras, err := s.hileras.ListPorCuarteles(ctx, encontrados...)
	if err != nil {
		return nil, err
	}
	filas := make([][]any, len(hileras))
	for i, h := range hileras {
		filas[i] = []any{h.IDCuartel, cuarteles[h.IDCuartel], h.ID, h.Hilera, h.PlantasActivas, ""}
	}

	datos, err := infra.GenerarExcel(infra.HojaExcel{
		Nombre:      hojaPlantas,
		Encabezados: encabezadosPlantas,
		Filas:       filas,
		Anchos:      []float64{12, 25, 12, 18, 20, 20},
	})
	if err != nil {
		return nil, err
	}
	return &Archivo{Nombre: nombre, ContentType: infra.ContentTypeXLSX, Datos: datos}, nil
}

func hojaPlantillaCuarteles() infra.HojaExcel {
	return infra.HojaExcel{
		Nombre: hojaCuarteles,
		Encabezados: []string{"Cuartel", "Nombre", "ID Sucursal", "Superficie", "Número de Hileras",
			"ID Variedad", "Año Plantación", "DSH", "DEH", "Hilera", "Planta", "Ubicación GPS"},
		Filas: [][]any{
			{"Cuartel A", "Cuartel Principal", 1, 15.5, 10, 1, 2020, 3.5, 1.2, "Hilera 1", "1", "-33.123, -70.456"},
			{"", "", "", "", "", "", "", "", "", "Hilera 1", "2", "-33.124, -70.457"},
			{"", "", "", "", "", "", "", "", "", "Hilera 2", "1", "-33.125, -70.458"},
			{"Cuartel B", "Cuartel Secundario", 1, 12.0, 8, 2, 2019, 3.0, 1.0, "Hilera 1", "1", "-33.126, -70.459"},
		},
		Anchos: []float64{15, 20, 12, 12, 18, 12, 15, 8, 8, 12, 12, 20},
	}
}

func hojaPlantillaRegistros() infra.HojaExcel {
	return infra.HojaExcel{
		Nombre:      hojaRegistros,
		Encabezados: []string{"ID Planta", "ID Tipo Planta", "ID Evaluador", "Hora Registro", "Imagen (Base64)"},
		Filas: [][]any{
			{123, 1, "", "2024-01-15 10:30:00", ""},
			{124, 2, "", "2024-01-15 10:35:00", ""},
		},
		Anchos: []float64{12, 15, 15, 20, 50},
	}
}

func hojaInstruccionesCarga() infra.HojaExcel {
	lineas := []string{
		"INSTRUCCIONES PARA CARGA MASIVA",
		"",
		"CUARTELES: Nombre, ID Sucursal, Superficie y Número de Hileras son requeridos.",
		"Las hileras se generan como 'Hilera 1' a 'Hilera N'. Filas sin Cuartel agregan plantas al cuartel anterior.",
		"Ubicación GPS en formato 'lat, lng'. Una ubicación inválida se guarda vacía con una advertencia.",
		"No se permiten plantas duplicadas en la misma hilera.",
		"",
		"REGISTROS: ID Planta e ID Tipo Planta son requeridos.",
		"Hora Registro en formato 'YYYY-MM-DD HH:MM:SS'; si falta se usa la hora actual.",
		"El evaluador es siempre el usuario que importa el archivo.",
	}
	filas := make([][]any, len(lineas))
	for i, l := range lineas {
		filas[i] = []any{l}
	}
	return infra.HojaExcel{Nombre: hojaInstrucciones, Filas: filas, Anchos: []float64{100}}
}

func (s *plantillaService) Plantilla(tipo string) (*Archivo, error) {
	var hojas []infra.HojaExcel
	switch tipo {
	case PlantillaCuarteles:
		hojas = []infra.HojaExcel{hojaPlantillaCuarteles(), hojaInstruccionesCarga()}
	case PlantillaRegistros:
		hojas = []infra.HojaExcel{hojaPlantillaRegistros(), hojaInstruccionesCarga()}
	case PlantillaCompleto:
		hojas = []infra.HojaExcel{hojaPlantillaCuarteles(), hojaPlantillaRegistros(), hojaInstruccionesCarga()}
	default:
		return nil, apierror.Validacion("Tipo de plantilla invalido. Tipos validos: cuarteles, registros, completo")
	}
	datos, err := infra.GenerarExcel(hojas...)
	if err != nil {
		return nil, err
	}
	return &Archivo{
		Nombre:      "plantilla_carga_masiva_" + tipo + ".xlsx",
		ContentType: infra.ContentTypeXLSX,
		Datos:       datos,
	}, nil
}

// Importar parses a filled template and runs the matching bulk operation.
// Cells that cannot be parsed are treated as missing and show up in the
// report as required-field errors.
func (s *plantillaService) Importar(ctx context.Context, usuarioID, tipo string, r io.Reader) (*dto.ReporteCarga, error) {
	datos, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch tipo {
	case PlantillaCuarteles:
		filas, err := leerHoja(datos, hojaCuarteles)
		if err != nil {
			return nil, err
		}
		return s.carga.CuartelesCascada(ctx, usuarioID, dto.CuartelesBulkRequest{Cuarteles: cuartelesDeFilas(filas)})
	case PlantillaRegistros:
		filas, err := leerHoja(datos, hojaRegistros)
		if err != nil {
			return nil, err
		}
		return s.carga.RegistrosBulk(ctx, usuarioID, dto.RegistrosBulkRequest{Registros: registrosDeFilas(filas)})
	case PlantillaPlantas:
		filas, err := leerHoja(datos, hojaPlantas)
		if err != nil {
			return nil, err
		}
		return s.carga.PlantasMasivo(ctx, usuarioID, dto.PlantasMasivoRequest{Plantas: plantasMasivoDeFilas(filas)})
	default:
		return nil, apierror.Validacion("Tipo de importacion invalido. Valores validos: cuarteles, registros, plantas")
	}
}

// leerHoja reads the named sheet, or the first one when the workbook does not
// have it. The header row is dropped.
func leerHoja(datos []byte, hoja string) ([][]string, error) {
	filas, err := infra.LeerHojaExcel(bytes.NewReader(datos), hoja)
	if err != nil {
		filas, err = infra.LeerHojaExcel(bytes.NewReader(datos), "")
		if err != nil {
			return nil, apierror.Validacion("El archivo no es un Excel valido")
		}
	}
	if len(filas) <= 1 {
		return nil, apierror.Validacion("El archivo no contiene filas")
	}
	return filas[1:], nil
}

func celda(fila []string, i int) string {
	if i >= len(fila) {
		return ""
	}
	return strings.TrimSpace(fila[i])
}

func celdaTexto(fila []string, i int) *string {
	if v := celda(fila, i); v != "" {
		return &v
	}
	return nil
}

// celdaInt64 accepts integral values only. Spreadsheets may write them as
// "3.0"; fractions and values beyond int64 read as missing.
func celdaInt64(fila []string, i int) *int64 {
	v := celda(fila, i)
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return &n
	}
	d, err := decimal.NewFromString(v)
	if err != nil || !d.IsInteger() || !d.BigInt().IsInt64() {
		return nil
	}
	n := d.IntPart()
	return &n
}

func celdaInt(fila []string, i int) *int {
	v := celdaInt64(fila, i)
	if v == nil || *v > math.MaxInt || *v < math.MinInt {
		return nil
	}
	n := int(*v)
	return &n
}

func celdaFloat(fila []string, i int) *float64 {
	v, err := strconv.ParseFloat(celda(fila, i), 64)
	if err != nil {
		return nil
	}
	return &v
}

func celdaDecimal(fila []string, i int) *decimal.Decimal {
	v, err := decimal.NewFromString(celda(fila, i))
	if err != nil {
		return nil
	}
	return &v
}

func filaVacia(fila []string) bool {
	for _, v := range fila {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// cuartelesDeFilas groups the template rows: a row with a value in the
// Cuartel or Nombre column starts a new field, the following rows without it
// add plants to that field.
func cuartelesDeFilas(filas [][]string) []dto.CuartelCarga {
	var cargas []dto.CuartelCarga
	for _, fila := range filas {
		if filaVacia(fila) {
			continue
		}
		if celda(fila, 0) != "" || celda(fila, 1) != "" || len(cargas) == 0 {
			nombre := celda(fila, 1)
			if nombre == "" {
				nombre = celda(fila, 0)
			}
			cargas = append(cargas, dto.CuartelCarga{
				Nombre:        nombre,
				IDSucursal:    celdaInt64(fila, 2),
				Superficie:    celdaDecimal(fila, 3),
				NHileras:      celdaInt(fila, 4),
				IDVariedad:    celdaInt64(fila, 5),
				AnoPlantacion: celdaInt(fila, 6),
				DSH:           celdaFloat(fila, 7),
				DEH:           celdaFloat(fila, 8),
			})
		}
		hilera, planta := celda(fila, 9), celda(fila, 10)
		if hilera == "" && planta == "" {
			continue
		}
		actual := &cargas[len(cargas)-1]
		p := dto.PlantaCarga{Planta: dto.Identificador(planta), Ubicacion: celdaTexto(fila, 11)}
		if n := len(actual.Hileras); n > 0 && actual.Hileras[n-1].Hilera.String() == hilera {
			actual.Hileras[n-1].Plantas = append(actual.Hileras[n-1].Plantas, p)
			continue
		}
		actual.Hileras = append(actual.Hileras, dto.HileraCarga{
			Hilera:  dto.Identificador(hilera),
			Plantas: []dto.PlantaCarga{p},
		})
	}
	return cargas
}

func registrosDeFilas(filas [][]string) []dto.RegistroCarga {
	var registros []dto.RegistroCarga
	for _, fila := range filas {
		if filaVacia(fila) {
			continue
		}
		registros = append(registros, dto.RegistroCarga{
			IDPlanta:     celdaInt64(fila, 0),
			IDTipoPlanta: celdaInt64(fila, 1),
			HoraRegistro: celdaTexto(fila, 3),
			Imagen:       celdaTexto(fila, 4),
		})
	}
	return registros
}

// plantasMasivoDeFilas reads the per-row template; rows without a number of
// new plants are skipped.
func plantasMasivoDeFilas(filas [][]string) []dto.PlantasMasivoItem {
	var items []dto.PlantasMasivoItem
	for _, fila := range filas {
		if celda(fila, 5) == "" {
			continue
		}
		items = append(items, dto.PlantasMasivoItem{
			IDCuartel: celdaInt64(fila, 0),
			IDHilera:  celdaInt64(fila, 2),
			NPlantas:  celdaInt(fila, 5),
		})
	}
	return items
}
