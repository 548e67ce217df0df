package model

import "github.com/shopspring/decimal"

// Atributo is a countable attribute (buds, fruits...).
type Atributo struct {
	ID     int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Nombre string `gorm:"column:nombre"`
}

func (Atributo) TableName() string { return "conteo_dim_atributo" }

// AtributoOptimo is the per-hectare target range of an attribute for an age band.
type AtributoOptimo struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	IDAtributo int64           `gorm:"column:id_atributo;index;not null"`
	EdadMin    int             `gorm:"column:edad_min"`
	EdadMax    int             `gorm:"column:edad_max"`
	OptimoHa   decimal.Decimal `gorm:"column:optimo_ha;type:decimal(12,2)"`
	MinHa      decimal.Decimal `gorm:"column:min_ha;type:decimal(12,2)"`
	MaxHa      decimal.Decimal `gorm:"column:max_ha;type:decimal(12,2)"`
	IDEstado   int             `gorm:"column:id_estado;not null;default:1"`
}

func (AtributoOptimo) TableName() string { return "conteo_dim_atributooptimo" }

// AtributoEspecie links an attribute to the species it applies to.
type AtributoEspecie struct {
	ID         int64 `gorm:"column:id;primaryKey;autoIncrement"`
	IDAtributo int64 `gorm:"column:id_atributo;index;not null"`
	IDEspecie  int64 `gorm:"column:id_especie;index;not null"`
	IDEstado   int   `gorm:"column:id_estado;not null;default:1"`
}

func (AtributoEspecie) TableName() string { return "conteo_pivot_atributo_especie" }
