package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cuartel is an orchard field. Its branch is the cost center's branch when
// id_ceco is set, otherwise id_sucursal.
type Cuartel struct {
	ID                 int64           `gorm:"column:id;primaryKey;autoIncrement"`
	IDCeco             *int64          `gorm:"column:id_ceco;index"`
	IDSucursal         *int64          `gorm:"column:id_sucursal;index"`
	Nombre             string          `gorm:"column:nombre;not null"`
	IDVariedad         *int64          `gorm:"column:id_variedad;index"`
	Superficie         decimal.Decimal `gorm:"column:superficie;type:decimal(10,2)"`
	AnoPlantacion      *int            `gorm:"column:ano_plantacion"`
	DSH                *float64        `gorm:"column:dsh"`
	DEH                *float64        `gorm:"column:deh"`
	IDPropiedad        *int64          `gorm:"column:id_propiedad"`
	IDPortainjerto     *int64          `gorm:"column:id_portainjerto"`
	BrazosEjes         *int            `gorm:"column:brazos_ejes"`
	IDEstadoProductivo *int            `gorm:"column:id_estadoproductivo"`
	NHileras           int             `gorm:"column:n_hileras;not null;default:0"`
	IDEstadoCatastro   *int            `gorm:"column:id_estadocatastro"`
	EstadoCatastro     *string         `gorm:"column:estado_catastro;type:varchar(20)"`
	IDEstado           int             `gorm:"column:id_estado;not null;default:1"`
	FechaCreacion      *time.Time      `gorm:"column:fecha_creacion"`
	FechaBaja          *time.Time      `gorm:"column:fecha_baja"`
	FechaActualizacion *time.Time      `gorm:"column:fecha_actualizacion"`
}

func (Cuartel) TableName() string { return "general_dim_cuartel" }

// CuartelDetalle is a field joined with its branch and variety names.
type CuartelDetalle struct {
	Cuartel
	IDSucursalEfectiva int64   `gorm:"column:id_sucursal_efectiva"`
	NombreSucursal     *string `gorm:"column:nombre_sucursal"`
	NombreVariedad     *string `gorm:"column:nombre_variedad"`
}
