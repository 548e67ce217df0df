package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Campañas de mapeo ──────────────────────────────────────────────────────

type CrearRegistroMapeoRequest struct {
	IDCuartel    int64  `json:"id_cuartel"    validate:"required,gt=0"`
	IDTemporada  *int64 `json:"id_temporada"  validate:"omitempty,gt=0"`
	FechaInicio  string `json:"fecha_inicio"  validate:"required,datetime=2006-01-02"`
	FechaTermino string `json:"fecha_termino" validate:"required,datetime=2006-01-02"`
}

type ActualizarRegistroMapeoRequest struct {
	IDTemporada  *int64  `json:"id_temporada"  validate:"omitempty,gt=0"`
	FechaInicio  *string `json:"fecha_inicio"  validate:"omitempty,datetime=2006-01-02"`
	FechaTermino *string `json:"fecha_termino" validate:"omitempty,datetime=2006-01-02"`
	IDEstado     *int    `json:"id_estado"     validate:"omitempty,oneof=0 1"`
}

type RegistroMapeoResponse struct {
	ID            string     `json:"id"`
	IDTemporada   *int64     `json:"id_temporada"`
	IDCuartel     int64      `json:"id_cuartel"`
	NombreCuartel string     `json:"cuartel,omitempty"`
	FechaInicio   string     `json:"fecha_inicio"`
	FechaTermino  string     `json:"fecha_termino"`
	IDEstado      int        `json:"id_estado"`
	FechaCreacion *time.Time `json:"fecha_creacion"`
}

type EstadoHileraRequest struct {
	IDHilera      int64   `json:"id_hilera"     validate:"required,gt=0"`
	Estado        string  `json:"estado"        validate:"required,oneof=pendiente en_progreso pausado completado"`
	Observaciones *string `json:"observaciones" validate:"omitempty,max=500"`
}

type EstadoHileraResponse struct {
	ID                 string     `json:"id"`
	IDRegistroMapeo    string     `json:"id_registro_mapeo"`
	IDHilera           int64      `json:"id_hilera"`
	Estado             string     `json:"estado"`
	IDUsuario          string     `json:"id_usuario"`
	Observaciones      *string    `json:"observaciones"`
	FechaCreacion      *time.Time `json:"fecha_creacion"`
	FechaActualizacion *time.Time `json:"fecha_actualizacion"`
}

// ─── Registros de inspección ────────────────────────────────────────────────

type RegistroRequest struct {
	IDPlanta     int64   `json:"id_planta"     validate:"required,gt=0"`
	IDTipoPlanta int64   `json:"id_tipoplanta" validate:"required,gt=0"`
	Imagen       *string `json:"imagen"`
}

type RegistroFilter struct {
	RegistroMapeoID string `form:"registro_mapeo_id"`
	PlantaID        *int64 `form:"planta_id"`
	EvaluadorID     string `form:"evaluador_id"`
}

type RegistroResponse struct {
	ID           string    `json:"id"`
	IDEvaluador  string    `json:"id_evaluador"`
	HoraRegistro time.Time `json:"hora_registro"`
	IDPlanta     int64     `json:"id_planta"`
	IDTipoPlanta int64     `json:"id_tipoplanta"`
	Imagen       *string   `json:"imagen"`
}

type TipoPlantaResponse struct {
	ID               int64    `json:"id"`
	Nombre           string   `json:"nombre"`
	FactorProductivo *float64 `json:"factor_productivo"`
	IDEmpresa        int64    `json:"id_empresa"`
	Descripcion      *string  `json:"descripcion"`
}

// ─── Carga masiva ───────────────────────────────────────────────────────────

type CatastroItem struct {
	ID       *int64 `json:"id"`
	NHileras *int   `json:"n_hileras"`
}

type CatastroMasivoRequest struct {
	Cuarteles []CatastroItem `json:"cuarteles"`
}

type PlantasMasivoItem struct {
	IDCuartel *int64 `json:"id_cuartel"`
	IDHilera  *int64 `json:"id_hilera"`
	NPlantas  *int   `json:"n_plantas"`
}

type PlantasMasivoRequest struct {
	Plantas []PlantasMasivoItem `json:"plantas"`
}

type BulkHilerasRequest struct {
	IDCuartel *int64          `json:"id_cuartel"`
	Hileras   []Identificador `json:"hileras"`
}

type BulkPlantasRequest struct {
	IDHilera *int64        `json:"id_hilera"`
	Plantas  []PlantaCarga `json:"plantas"`
}

type HileraCarga struct {
	Hilera  Identificador `json:"hilera"`
	Plantas []PlantaCarga `json:"plantas"`
}

type CuartelCarga struct {
	Nombre        string           `json:"nombre"`
	IDSucursal    *int64           `json:"id_sucursal"`
	Superficie    *decimal.Decimal `json:"superficie"`
	NHileras      *int             `json:"n_hileras"`
	IDVariedad    *int64           `json:"id_variedad"`
	AnoPlantacion *int             `json:"ano_plantacion"`
	DSH           *float64         `json:"dsh"`
	DEH           *float64         `json:"deh"`
	Hileras       []HileraCarga    `json:"hileras"`
}

type CuartelesBulkRequest struct {
	Cuarteles []CuartelCarga `json:"cuarteles"`
}

type RegistroCarga struct {
	IDPlanta     *int64  `json:"id_planta"`
	IDTipoPlanta *int64  `json:"id_tipoplanta"`
	HoraRegistro *string `json:"hora_registro"`
	Imagen       *string `json:"imagen"`
}

type RegistrosBulkRequest struct {
	Registros []RegistroCarga `json:"registros"`
}

type AgregarHilerasRequest struct {
	Cantidad int `json:"cantidad" validate:"required,gt=0,max=1000"`
}

// ErrorCarga is a per-element failure; Fila is the 1-based element index.
type ErrorCarga struct {
	Fila  int    `json:"fila"`
	Campo string `json:"campo"`
	Error string `json:"error"`
}

type WarningCarga struct {
	Fila    int    `json:"fila"`
	Campo   string `json:"campo"`
	Warning string `json:"warning"`
}

// ReporteCarga is the result of a bulk call. Creados counts committed
// elements; the entity counters count every inserted row.
type ReporteCarga struct {
	Procesados       int            `json:"procesados"`
	Creados          int            `json:"creados"`
	CuartelesCreados int            `json:"cuarteles_creados,omitempty"`
	HilerasCreadas   int            `json:"hileras_creadas,omitempty"`
	PlantasCreadas   int            `json:"plantas_creadas,omitempty"`
	RegistrosCreados int            `json:"registros_creados,omitempty"`
	Errores          []ErrorCarga   `json:"errores"`
	Warnings         []WarningCarga `json:"warnings"`
}

func NuevoReporte(procesados int) *ReporteCarga {
	return &ReporteCarga{
		Procesados: procesados,
		Errores:    []ErrorCarga{},
		Warnings:   []WarningCarga{},
	}
}

func (r *ReporteCarga) AgregarError(fila int, campo, msg string) {
	r.Errores = append(r.Errores, ErrorCarga{Fila: fila, Campo: campo, Error: msg})
}

func (r *ReporteCarga) AgregarWarning(fila int, campo, msg string) {
	r.Warnings = append(r.Warnings, WarningCarga{Fila: fila, Campo: campo, Warning: msg})
}

type HilerasAgregadasResponse struct {
	CuartelID        int64            `json:"cuartel_id"`
	HilerasAgregadas int              `json:"hileras_agregadas"`
	TotalHileras     int              `json:"total_hileras"`
	HilerasCreadas   []HileraResponse `json:"hileras_creadas"`
}

type HileraEliminadaResponse struct {
	HileraID          int64  `json:"hilera_id"`
	HileraNombre      string `json:"hilera_nombre"`
	CuartelID         int64  `json:"cuartel_id"`
	CuartelNombre     string `json:"cuartel_nombre"`
	PlantasEliminadas int64  `json:"plantas_eliminadas"`
	NuevoTotalHileras int    `json:"nuevo_total_hileras"`
}
