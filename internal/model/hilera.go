package model

import "time"

// Hilera is a row inside a field. Hilera holds the row identifier ("Hilera 3"
// or "3"), unique among active rows of the same field.
type Hilera struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Hilera        string     `gorm:"column:hilera;type:varchar(45);not null"`
	IDCuartel     int64      `gorm:"column:id_cuartel;index;not null"`
	IDEstado      int        `gorm:"column:id_estado;not null;default:1"`
	FechaCreacion *time.Time `gorm:"column:fecha_creacion"`
}

func (Hilera) TableName() string { return "general_dim_hilera" }

// HileraConteo is a row with its number of active plants.
type HileraConteo struct {
	Hilera
	PlantasActivas int64 `gorm:"column:plantas_activas"`
}
