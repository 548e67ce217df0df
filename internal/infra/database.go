package infra

import (
	"fmt"

	"github.com/soporte-code/API-PORTALWEB/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a GORM connection for the configured driver. The production
// schema already exists (it is shared with other company systems); AutoMigrate
// only runs when autoMigrate is set, which is the normal mode for sqlite.
func NewDatabase(driver, dsn string, autoMigrate bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("driver de base de datos no soportado: %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Surfaces unique violations as gorm.ErrDuplicatedKey on every driver.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// An in-memory database lives in a single connection.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	}

	if autoMigrate {
		if err := RunMigrations(db); err != nil {
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		return db, nil
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}
	return db, nil
}

// RunMigrations creates/updates every table from the models and then applies
// the schema patches. Used by tests and by local sqlite setups.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Perfil{},
		&model.UsuarioApp{},
		&model.Empresa{},
		&model.Sucursal{},
		&model.SucursalUsuario{},
		&model.Ceco{},
		&model.Cuartel{},
		&model.Hilera{},
		&model.Planta{},
		&model.Especie{},
		&model.Variedad{},
		&model.RegistroMapeo{},
		&model.EstadoHilera{},
		&model.Registro{},
		&model.TipoPlanta{},
		&model.Atributo{},
		&model.AtributoOptimo{},
		&model.AtributoEspecie{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches creates the partial unique indexes that keep row and plant
// identifiers unique among active siblings. Two concurrent bulk imports can both
// pass the read-then-write duplicate checks; with these indexes the second one
// fails with gorm.ErrDuplicatedKey and rolls back. MySQL has no partial indexes,
// so there the race remains.
func applySchemaPatches(db *gorm.DB) error {
	if db.Dialector.Name() == "mysql" {
		return nil
	}
	patches := []struct {
		descr, table, sql string
	}{
		{"hilera unica activa por cuartel", "general_dim_hilera",
			`CREATE UNIQUE INDEX IF NOT EXISTS uq_hilera_activa
			    ON general_dim_hilera (id_cuartel, hilera) WHERE id_estado = 1`},
		{"planta unica activa por hilera", "general_dim_planta",
			`CREATE UNIQUE INDEX IF NOT EXISTS uq_planta_activa
			    ON general_dim_planta (id_hilera, planta) WHERE id_estado = 1`},
		{"indice de membresias por usuario", "usuario_pivot_sucursal_usuario",
			`CREATE INDEX IF NOT EXISTS idx_pivot_sucursal_usuario
			    ON usuario_pivot_sucursal_usuario (id_usuario)`},
	}
	for _, p := range patches {
		if !db.Migrator().HasTable(p.table) {
			continue
		}
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
