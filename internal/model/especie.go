package model

import "github.com/shopspring/decimal"

// Especie is a crop species (cherry, apple...).
type Especie struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Nombre          string          `gorm:"column:nombre;not null"`
	CajaEquivalente decimal.Decimal `gorm:"column:caja_equivalente;type:decimal(10,3)"`
	IDEstado        int             `gorm:"column:id_estado;not null;default:1"`
}

func (Especie) TableName() string { return "general_dim_especie" }

// Variedad belongs to an Especie; fields reference it.
type Variedad struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Nombre    string `gorm:"column:nombre;not null"`
	IDEspecie int64  `gorm:"column:id_especie;index;not null"`
	IDEstado  int    `gorm:"column:id_estado;not null;default:1"`
}

func (Variedad) TableName() string { return "general_dim_variedad" }

// VariedadDetalle adds the species name.
type VariedadDetalle struct {
	Variedad
	NombreEspecie *string `gorm:"column:nombre_especie"`
}
