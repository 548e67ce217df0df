package model

// Empresa owns branches; plant types are defined per company.
type Empresa struct {
	ID     int64  `gorm:"column:id;primaryKey"`
	Nombre string `gorm:"column:nombre"`
}

func (Empresa) TableName() string { return "general_dim_empresa" }

// SucursalTipoCampo is the branch type of agricultural branches (the only ones
// users can be assigned to).
const SucursalTipoCampo = 1

// Sucursal is a branch. Static reference data.
type Sucursal struct {
	ID             int64   `gorm:"column:id;primaryKey"`
	Nombre         string  `gorm:"column:nombre"`
	Ubicacion      *string `gorm:"column:ubicacion"`
	IDSucursalTipo int     `gorm:"column:id_sucursaltipo;default:1"`
	IDEmpresa      *int64  `gorm:"column:id_empresa"`
	IDEstado       int     `gorm:"column:id_estado;not null;default:1"`
}

func (Sucursal) TableName() string { return "general_dim_sucursal" }

// SucursalUsuario is the membership pair that defines a user's access scope.
type SucursalUsuario struct {
	IDSucursal int64  `gorm:"column:id_sucursal;primaryKey"`
	IDUsuario  string `gorm:"column:id_usuario;type:varchar(36);primaryKey"`
}

func (SucursalUsuario) TableName() string { return "usuario_pivot_sucursal_usuario" }

// Ceco is a cost center; legacy fields reach their branch through it.
type Ceco struct {
	ID         int64  `gorm:"column:id;primaryKey"`
	Nombre     string `gorm:"column:nombre"`
	IDSucursal int64  `gorm:"column:id_sucursal;index"`
	IDEstado   int    `gorm:"column:id_estado;not null;default:1"`
}

func (Ceco) TableName() string { return "general_dim_ceco" }
