package model

import "time"

// RegistroMapeo is a time-boxed mapping campaign over one field.
// At most one active campaign per field.
type RegistroMapeo struct {
	ID            string     `gorm:"column:id;type:varchar(36);primaryKey"`
	IDTemporada   *int64     `gorm:"column:id_temporada"`
	IDCuartel     int64      `gorm:"column:id_cuartel;index;not null"`
	FechaInicio   time.Time  `gorm:"column:fecha_inicio;type:date"`
	FechaTermino  time.Time  `gorm:"column:fecha_termino;type:date"`
	IDEstado      int        `gorm:"column:id_estado;not null;default:1"`
	FechaCreacion *time.Time `gorm:"column:fecha_creacion"`
}

func (RegistroMapeo) TableName() string { return "mapeo_fact_registromapeo" }

// RegistroMapeoDetalle adds the field name.
type RegistroMapeoDetalle struct {
	RegistroMapeo
	NombreCuartel string `gorm:"column:cuartel_nombre"`
}

// Estados de avance de una hilera dentro de una campaña.
const (
	EstadoHileraPendiente  = "pendiente"
	EstadoHileraEnProgreso = "en_progreso"
	EstadoHileraPausado    = "pausado"
	EstadoHileraCompletado = "completado"
)

// EstadoHilera is the latest reported progress of a row in a campaign; one
// per (campaign, row).
type EstadoHilera struct {
	ID                 string     `gorm:"column:id;type:varchar(36);primaryKey"`
	IDRegistroMapeo    string     `gorm:"column:id_registro_mapeo;type:varchar(36);uniqueIndex:idx_estado_hilera_par;not null"`
	IDHilera           int64      `gorm:"column:id_hilera;uniqueIndex:idx_estado_hilera_par;not null"`
	Estado             string     `gorm:"column:estado;type:varchar(20);not null"`
	IDUsuario          string     `gorm:"column:id_usuario;type:varchar(36)"`
	Observaciones      *string    `gorm:"column:observaciones"`
	FechaCreacion      *time.Time `gorm:"column:fecha_creacion"`
	FechaActualizacion *time.Time `gorm:"column:fecha_actualizacion"`
}

func (EstadoHilera) TableName() string { return "mapeo_fact_estado_hilera" }

// Registro is one inspection event on a plant.
type Registro struct {
	ID           string    `gorm:"column:id;type:varchar(36);primaryKey"`
	IDEvaluador  string    `gorm:"column:id_evaluador;type:varchar(36);index"`
	HoraRegistro time.Time `gorm:"column:hora_registro"`
	IDPlanta     int64     `gorm:"column:id_planta;index;not null"`
	IDTipoPlanta int64     `gorm:"column:id_tipoplanta;not null"`
	Imagen       *string   `gorm:"column:imagen;type:text"`
}

func (Registro) TableName() string { return "mapeo_fact_registro" }

// TipoPlanta classifies what the evaluator saw (productive, dead, missing...).
type TipoPlanta struct {
	ID               int64    `gorm:"column:id;primaryKey;autoIncrement"`
	Nombre           string   `gorm:"column:nombre"`
	FactorProductivo *float64 `gorm:"column:factor_productivo"`
	IDEmpresa        int64    `gorm:"column:id_empresa;index"`
	Descripcion      *string  `gorm:"column:descripcion"`
	IDEstado         int      `gorm:"column:id_estado;not null;default:1"`
}

func (TipoPlanta) TableName() string { return "mapeo_dim_tipoplanta" }
