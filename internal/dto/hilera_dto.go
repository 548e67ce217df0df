package dto

import "time"

type CrearHileraRequest struct {
	Hilera    Identificador `json:"hilera"     validate:"required,max=45"`
	IDCuartel int64         `json:"id_cuartel" validate:"required,gt=0"`
}

type ActualizarHileraRequest struct {
	Hilera Identificador `json:"hilera" validate:"required,max=45"`
}

type HileraResponse struct {
	ID             int64      `json:"id"`
	Hilera         string     `json:"hilera"`
	IDCuartel      int64      `json:"id_cuartel"`
	IDEstado       int        `json:"id_estado"`
	FechaCreacion  *time.Time `json:"fecha_creacion"`
	PlantasActivas *int64     `json:"plantas_activas,omitempty"`
}
