package model

import "time"

// Planta is a plant inside a row. Ubicacion is an optional "lat, lng" string.
type Planta struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Planta        string     `gorm:"column:planta;type:varchar(45);not null"`
	IDHilera      int64      `gorm:"column:id_hilera;index;not null"`
	Ubicacion     *string    `gorm:"column:ubicacion;type:varchar(100)"`
	IDEstado      int        `gorm:"column:id_estado;not null;default:1"`
	FechaCreacion *time.Time `gorm:"column:fecha_creacion"`
}

func (Planta) TableName() string { return "general_dim_planta" }

// PlantaDetalle adds the parent row and field of a plant.
type PlantaDetalle struct {
	Planta
	NombreHilera       string `gorm:"column:nombre_hilera"`
	IDCuartel          int64  `gorm:"column:id_cuartel"`
	NombreCuartel      string `gorm:"column:nombre_cuartel"`
	IDSucursalEfectiva int64  `gorm:"column:id_sucursal_efectiva"`
}
