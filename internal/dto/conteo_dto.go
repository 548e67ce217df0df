package dto

import "github.com/shopspring/decimal"

type AtributoOptimoRequest struct {
	IDAtributo int64           `json:"id_atributo" validate:"required,gt=0"`
	EdadMin    int             `json:"edad_min"    validate:"min=0"`
	EdadMax    int             `json:"edad_max"    validate:"min=0"`
	OptimoHa   decimal.Decimal `json:"optimo_ha"   validate:"min=0"`
	MinHa      decimal.Decimal `json:"min_ha"      validate:"min=0"`
	MaxHa      decimal.Decimal `json:"max_ha"      validate:"min=0"`
}

type ActualizarAtributoOptimoRequest struct {
	IDAtributo *int64           `json:"id_atributo" validate:"omitempty,gt=0"`
	EdadMin    *int             `json:"edad_min"    validate:"omitempty,min=0"`
	EdadMax    *int             `json:"edad_max"    validate:"omitempty,min=0"`
	OptimoHa   *decimal.Decimal `json:"optimo_ha"   validate:"omitempty,min=0"`
	MinHa      *decimal.Decimal `json:"min_ha"      validate:"omitempty,min=0"`
	MaxHa      *decimal.Decimal `json:"max_ha"      validate:"omitempty,min=0"`
	IDEstado   *int             `json:"id_estado"   validate:"omitempty,oneof=0 1"`
}

type AtributoEspecieRequest struct {
	IDAtributo int64 `json:"id_atributo" validate:"required,gt=0"`
	IDEspecie  int64 `json:"id_especie"  validate:"required,gt=0"`
}

type ActualizarAtributoEspecieRequest struct {
	IDAtributo *int64 `json:"id_atributo" validate:"omitempty,gt=0"`
	IDEspecie  *int64 `json:"id_especie"  validate:"omitempty,gt=0"`
	IDEstado   *int   `json:"id_estado"   validate:"omitempty,oneof=0 1"`
}

type AtributoResponse struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

type AtributoOptimoResponse struct {
	ID         int64           `json:"id"`
	IDAtributo int64           `json:"id_atributo"`
	EdadMin    int             `json:"edad_min"`
	EdadMax    int             `json:"edad_max"`
	OptimoHa   decimal.Decimal `json:"optimo_ha"`
	MinHa      decimal.Decimal `json:"min_ha"`
	MaxHa      decimal.Decimal `json:"max_ha"`
	IDEstado   int             `json:"id_estado"`
}

type AtributoEspecieResponse struct {
	ID         int64 `json:"id"`
	IDAtributo int64 `json:"id_atributo"`
	IDEspecie  int64 `json:"id_especie"`
	IDEstado   int   `json:"id_estado"`
}
