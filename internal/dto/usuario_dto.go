package dto

import "time"

type CrearUsuarioRequest struct {
	Usuario          string  `json:"usuario"           validate:"required,min=1,max=45"`
	Nombre           string  `json:"nombre"            validate:"required,min=1,max=45"`
	ApellidoPaterno  string  `json:"apellido_paterno"  validate:"required,min=1,max=45"`
	ApellidoMaterno  *string `json:"apellido_materno"  validate:"omitempty,max=45"`
	Clave            string  `json:"clave"             validate:"required,min=4,max=72"`
	Correo           string  `json:"correo"            validate:"required,email"`
	IDSucursalActiva *int64  `json:"id_sucursalactiva" validate:"omitempty,gt=0"`
	IDEstado         *int    `json:"id_estado"         validate:"omitempty,oneof=0 1"`
	IDRol            *int    `json:"id_rol"            validate:"omitempty,gt=0"`
	IDPerfil         *int    `json:"id_perfil"         validate:"omitempty,gt=0"`
}

// ActualizarUsuarioRequest is a sparse patch: nil fields are left untouched.
type ActualizarUsuarioRequest struct {
	Nombre           *string `json:"nombre"            validate:"omitempty,min=1,max=45"`
	ApellidoPaterno  *string `json:"apellido_paterno"  validate:"omitempty,min=1,max=45"`
	ApellidoMaterno  *string `json:"apellido_materno"  validate:"omitempty,max=45"`
	Correo           *string `json:"correo"            validate:"omitempty,email"`
	IDEstado         *int    `json:"id_estado"         validate:"omitempty,oneof=0 1"`
	IDRol            *int    `json:"id_rol"            validate:"omitempty,gt=0"`
	IDPerfil         *int    `json:"id_perfil"         validate:"omitempty,gt=0"`
	IDSucursalActiva *int64  `json:"id_sucursalactiva" validate:"omitempty,gt=0"`
	Clave            *string `json:"clave"             validate:"omitempty,min=4,max=72"`
}

type AsignarSucursalesRequest struct {
	SucursalesIDs []int64 `json:"sucursales_ids" validate:"required,dive,gt=0"`
}

type UsuarioResponse struct {
	ID               string     `json:"id"`
	Usuario          string     `json:"usuario"`
	Nombre           string     `json:"nombre"`
	ApellidoPaterno  string     `json:"apellido_paterno"`
	ApellidoMaterno  *string    `json:"apellido_materno"`
	Correo           string     `json:"correo"`
	IDSucursalActiva *int64     `json:"id_sucursalactiva"`
	IDEstado         int        `json:"id_estado"`
	IDRol            int        `json:"id_rol"`
	IDPerfil         int        `json:"id_perfil"`
	FechaCreacion    *time.Time `json:"fecha_creacion,omitempty"`
}

type PerfilResponse struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type SucursalResponse struct {
	ID        int64   `json:"id"`
	Nombre    string  `json:"nombre"`
	Ubicacion *string `json:"ubicacion"`
}
