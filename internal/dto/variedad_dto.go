package dto

import "github.com/shopspring/decimal"

type EspecieRequest struct {
	Nombre          string          `json:"nombre"           validate:"required,min=1,max=45"`
	CajaEquivalente decimal.Decimal `json:"caja_equivalente" validate:"min=0"`
}

type ActualizarEspecieRequest struct {
	Nombre          *string          `json:"nombre"           validate:"omitempty,min=1,max=45"`
	CajaEquivalente *decimal.Decimal `json:"caja_equivalente" validate:"omitempty,min=0"`
}

type VariedadRequest struct {
	Nombre    string `json:"nombre"     validate:"required,min=1,max=45"`
	IDEspecie int64  `json:"id_especie" validate:"required,gt=0"`
}

type ActualizarVariedadRequest struct {
	Nombre    *string `json:"nombre"     validate:"omitempty,min=1,max=45"`
	IDEspecie *int64  `json:"id_especie" validate:"omitempty,gt=0"`
}

type EspecieResponse struct {
	ID              int64           `json:"id"`
	Nombre          string          `json:"nombre"`
	CajaEquivalente decimal.Decimal `json:"caja_equivalente"`
	IDEstado        int             `json:"id_estado"`
}

type VariedadResponse struct {
	ID            int64   `json:"id"`
	Nombre        string  `json:"nombre"`
	IDEspecie     int64   `json:"id_especie"`
	NombreEspecie *string `json:"especie,omitempty"`
	IDEstado      int     `json:"id_estado"`
}
