// Command seeduser creates or updates a portal user with its application and
// branch memberships.
//
//	go run ./cmd/seeduser --usuario 212121 --clave 212121 --sucursal 101 --sucursal 102
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/config"
	"github.com/soporte-code/API-PORTALWEB/internal/infra"
	"github.com/soporte-code/API-PORTALWEB/internal/model"
	"github.com/soporte-code/API-PORTALWEB/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type opciones struct {
	usuario    string
	clave      string
	nombre     string
	apellido   string
	correo     string
	perfil     int
	rol        int
	sucursales []int64
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var op opciones
	cmd := &cobra.Command{
		Use:   "seeduser",
		Short: "Crea o actualiza un usuario del portal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ejecutar(cmd.Context(), op)
		},
		SilenceUsage: true,
	}
	f := cmd.Flags()
	f.StringVar(&op.usuario, "usuario", "", "login del usuario (requerido)")
	f.StringVar(&op.clave, "clave", "", "clave en texto plano (requerido)")
	f.StringVar(&op.nombre, "nombre", "Usuario", "nombre")
	f.StringVar(&op.apellido, "apellido", "Demo", "apellido paterno")
	f.StringVar(&op.correo, "correo", "", "correo electronico")
	f.IntVar(&op.perfil, "perfil", model.PerfilAdministrador, "id_perfil")
	f.IntVar(&op.rol, "rol", 1, "id_rol")
	f.Int64SliceVar(&op.sucursales, "sucursal", nil, "sucursal permitida (repetible); la primera queda activa")
	_ = cmd.MarkFlagRequired("usuario")
	_ = cmd.MarkFlagRequired("clave")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func ejecutar(ctx context.Context, op opciones) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL, cfg.DBAutoMigrate)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(op.clave), 12)
	if err != nil {
		return err
	}
	var activa *int64
	if len(op.sucursales) > 0 {
		activa = &op.sucursales[0]
	}

	usuarios := repository.NewUsuarioRepository(db)
	u, err := usuarios.FindByLogin(ctx, op.usuario)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		ahora := time.Now()
		u = &model.Usuario{
			ID:               uuid.NewString(),
			Usuario:          op.usuario,
			Nombre:           op.nombre,
			ApellidoPaterno:  op.apellido,
			Clave:            string(hash),
			Correo:           op.correo,
			IDSucursalActiva: activa,
			IDEstado:         model.EstadoActivo,
			IDRol:            op.rol,
			IDPerfil:         op.perfil,
			FechaCreacion:    &ahora,
		}
		if err := usuarios.CreateConApp(ctx, u, cfg.AppID); err != nil {
			return fmt.Errorf("crear usuario: %w", err)
		}
		log.Info().Str("id", u.ID).Str("usuario", u.Usuario).Msg("usuario creado")
	case err != nil:
		return err
	default:
		cambios := map[string]interface{}{
			"clave":     string(hash),
			"id_estado": model.EstadoActivo,
			"id_perfil": op.perfil,
			"id_rol":    op.rol,
		}
		if activa != nil {
			cambios["id_sucursalactiva"] = *activa
		}
		if err := usuarios.Update(ctx, u.ID, cambios); err != nil {
			return fmt.Errorf("actualizar usuario: %w", err)
		}
		app := model.UsuarioApp{IDUsuario: u.ID, IDApp: cfg.AppID}
		if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&app).Error; err != nil {
			return fmt.Errorf("asignar app: %w", err)
		}
		log.Info().Str("id", u.ID).Str("usuario", u.Usuario).Msg("usuario actualizado")
	}

	if len(op.sucursales) > 0 {
		sucursales := repository.NewSucursalRepository(db)
		if err := sucursales.ReemplazarDeUsuario(ctx, u.ID, op.sucursales); err != nil {
			return fmt.Errorf("asignar sucursales: %w", err)
		}
		log.Info().Ints64("sucursales", op.sucursales).Msg("sucursales asignadas")
	}
	return nil
}
