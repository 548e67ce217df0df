package dto

import (
	"encoding/json"
	"time"
)

type CrearPlantaRequest struct {
	Planta    Identificador `json:"planta"    validate:"required,max=45"`
	IDHilera  int64         `json:"id_hilera" validate:"required,gt=0"`
	Ubicacion *string       `json:"ubicacion" validate:"omitempty,max=100"`
}

type ActualizarPlantaRequest struct {
	Planta    *Identificador `json:"planta"    validate:"omitempty,min=1,max=45"`
	Ubicacion *string        `json:"ubicacion" validate:"omitempty,max=100"`
}

type BuscarPlantaFilter struct {
	CuartelID *int64 `form:"cuartel_id"`
	HileraID  *int64 `form:"hilera_id"`
	Planta    string `form:"planta"`
}

type PlantaResponse struct {
	ID            int64      `json:"id"`
	Planta        string     `json:"planta"`
	IDHilera      int64      `json:"id_hilera"`
	Ubicacion     *string    `json:"ubicacion"`
	IDEstado      int        `json:"id_estado"`
	FechaCreacion *time.Time `json:"fecha_creacion"`
	NombreHilera  string     `json:"hilera,omitempty"`
	IDCuartel     int64      `json:"id_cuartel,omitempty"`
	NombreCuartel string     `json:"cuartel,omitempty"`
}

// PlantaCarga is one plant of a bulk request. It accepts either a bare number
// (3) or an object ({"planta": 3, "ubicacion": "-33.1, -70.2"}).
type PlantaCarga struct {
	Planta    Identificador `json:"planta"`
	Ubicacion *string       `json:"ubicacion"`
}

func (p *PlantaCarga) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '{' {
		type plano PlantaCarga
		var v plano
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*p = PlantaCarga(v)
		return nil
	}
	*p = PlantaCarga{}
	return p.Planta.UnmarshalJSON(b)
}
