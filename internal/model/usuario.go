package model

import (
	"time"
)

// Estados compartidos por todas las tablas dimensionales (columna id_estado).
const (
	EstadoInactivo = 0
	EstadoActivo   = 1
)

// PerfilAdministrador is the id_perfil allowed to administer branch memberships.
const PerfilAdministrador = 3

// Usuario stores system users. IDs are UUID strings generated by the API.
type Usuario struct {
	ID               string     `gorm:"column:id;type:varchar(36);primaryKey"`
	Usuario          string     `gorm:"column:usuario;type:varchar(45);uniqueIndex;not null"`
	Nombre           string     `gorm:"column:nombre;type:varchar(45)"`
	ApellidoPaterno  string     `gorm:"column:apellido_paterno;type:varchar(45)"`
	ApellidoMaterno  *string    `gorm:"column:apellido_materno;type:varchar(45)"`
	Clave            string     `gorm:"column:clave;not null"`
	Correo           string     `gorm:"column:correo;type:varchar(100)"`
	IDSucursalActiva *int64     `gorm:"column:id_sucursalactiva"`
	IDEstado         int        `gorm:"column:id_estado;not null;default:1"`
	IDRol            int        `gorm:"column:id_rol"`
	IDPerfil         int        `gorm:"column:id_perfil"`
	FechaCreacion    *time.Time `gorm:"column:fecha_creacion"`
}

func (Usuario) TableName() string { return "general_dim_usuario" }

// Perfil is a user profile (basic, supervisor, administrator...).
type Perfil struct {
	ID     int    `gorm:"column:id;primaryKey"`
	Nombre string `gorm:"column:nombre"`
}

func (Perfil) TableName() string { return "usuario_dim_perfil" }

// UsuarioApp grants a user access to one of the company's applications.
type UsuarioApp struct {
	IDUsuario string `gorm:"column:id_usuario;type:varchar(36);primaryKey"`
	IDApp     int    `gorm:"column:id_app;primaryKey"`
}

func (UsuarioApp) TableName() string { return "usuario_pivot_app_usuario" }
