package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CrearCuartelRequest struct {
	Nombre             string          `json:"nombre"              validate:"required,min=1,max=100"`
	IDCeco             *int64          `json:"id_ceco"             validate:"omitempty,gt=0"`
	IDSucursal         *int64          `json:"id_sucursal"         validate:"omitempty,gt=0"`
	IDVariedad         *int64          `json:"id_variedad"         validate:"omitempty,gt=0"`
	Superficie         decimal.Decimal `json:"superficie"          validate:"min=0"`
	AnoPlantacion      *int            `json:"ano_plantacion"      validate:"omitempty,min=1900,max=2100"`
	DSH                *float64        `json:"dsh"                 validate:"omitempty,gt=0"`
	DEH                *float64        `json:"deh"                 validate:"omitempty,gt=0"`
	IDPropiedad        *int64          `json:"id_propiedad"`
	IDPortainjerto     *int64          `json:"id_portainjerto"`
	BrazosEjes         *int            `json:"brazos_ejes"         validate:"omitempty,min=0"`
	IDEstadoProductivo *int            `json:"id_estadoproductivo"`
	NHileras           int             `json:"n_hileras"           validate:"min=0,max=1000"`
}

// ActualizarCuartelRequest lists every column a client may patch.
type ActualizarCuartelRequest struct {
	Nombre             *string          `json:"nombre"              validate:"omitempty,max=100"`
	IDVariedad         *int64           `json:"id_variedad"         validate:"omitempty,gt=0"`
	Superficie         *decimal.Decimal `json:"superficie"          validate:"omitempty,min=0"`
	AnoPlantacion      *int             `json:"ano_plantacion"      validate:"omitempty,min=1900,max=2100"`
	DSH                *float64         `json:"dsh"                 validate:"omitempty,gt=0"`
	DEH                *float64         `json:"deh"                 validate:"omitempty,gt=0"`
	IDPropiedad        *int64           `json:"id_propiedad"`
	IDPortainjerto     *int64           `json:"id_portainjerto"`
	BrazosEjes         *int             `json:"brazos_ejes"         validate:"omitempty,min=0"`
	IDEstadoProductivo *int             `json:"id_estadoproductivo"`
	NHileras           *int             `json:"n_hileras"           validate:"omitempty,min=0"`
	IDEstadoCatastro   *int             `json:"id_estadocatastro"`
}

type EstadoCatastroRequest struct {
	EstadoCatastro string `json:"estado_catastro" validate:"required,oneof=pendiente en_progreso completado verificado"`
}

type CuartelResponse struct {
	ID                 int64           `json:"id"`
	IDCeco             *int64          `json:"id_ceco"`
	IDSucursal         int64           `json:"id_sucursal"`
	NombreSucursal     *string         `json:"nombre_sucursal,omitempty"`
	Nombre             string          `json:"nombre"`
	IDVariedad         *int64          `json:"id_variedad"`
	NombreVariedad     *string         `json:"nombre_variedad,omitempty"`
	Superficie         decimal.Decimal `json:"superficie"`
	AnoPlantacion      *int            `json:"ano_plantacion"`
	DSH                *float64        `json:"dsh"`
	DEH                *float64        `json:"deh"`
	IDPropiedad        *int64          `json:"id_propiedad"`
	IDPortainjerto     *int64          `json:"id_portainjerto"`
	BrazosEjes         *int            `json:"brazos_ejes"`
	IDEstadoProductivo *int            `json:"id_estadoproductivo"`
	NHileras           int             `json:"n_hileras"`
	IDEstadoCatastro   *int            `json:"id_estadocatastro"`
	EstadoCatastro     *string         `json:"estado_catastro"`
	IDEstado           int             `json:"id_estado"`
	FechaCreacion      *time.Time      `json:"fecha_creacion"`
	FechaActualizacion *time.Time      `json:"fecha_actualizacion"`
}

// CuartelPlantasInfo feeds the mass plant provisioning screen.
type CuartelPlantasInfo struct {
	ID      int64            `json:"id"`
	Nombre  string           `json:"nombre"`
	Hileras []HileraResponse `json:"hileras"`
}

// PlantillaPlantasMasivaRequest selects the fields of a mass plant template.
// GET requests send the same list as ?cuartel_ids=1,2,3.
type PlantillaPlantasMasivaRequest struct {
	CuartelIDs []int64 `json:"cuartel_ids" validate:"required,min=1,max=200,dive,gt=0"`
}
