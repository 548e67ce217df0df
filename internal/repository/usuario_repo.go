package repository

import (
	"context"

	"github.com/soporte-code/API-PORTALWEB/internal/model"

	"gorm.io/gorm"
)

type UsuarioRepository interface {
	// CreateConApp inserts the user and its membership to appID atomically.
	CreateConApp(ctx context.Context, u *model.Usuario, appID int) error
	FindByLogin(ctx context.Context, login string) (*model.Usuario, error)
	FindByID(ctx context.Context, id string) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	Update(ctx context.Context, id string, cambios map[string]interface{}) error
	SoftDelete(ctx context.Context, id string) error
	ExisteUsuario(ctx context.Context, usuario, excluirID string) (bool, error)
	ExisteCorreo(ctx context.Context, correo, excluirID string) (bool, error)
	TieneApp(ctx context.Context, id string, appID int) (bool, error)
	ListPerfiles(ctx context.Context) ([]model.Perfil, error)
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) CreateConApp(ctx context.Context, u *model.Usuario, appID int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		return tx.Create(&model.UsuarioApp{IDUsuario: u.ID, IDApp: appID}).Error
	})
}

// FindByLogin accepts the login name or the e-mail (case-insensitive).
func (r *usuarioRepo) FindByLogin(ctx context.Context, login string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Where("usuario = ? OR LOWER(correo) = LOWER(?)", login, login).
		First(&u).Error
	return &u, err
}

func (r *usuarioRepo) FindByID(ctx context.Context, id string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var users []model.Usuario
	err := r.db.WithContext(ctx).Order("nombre, apellido_paterno").Find(&users).Error
	return users, err
}

func (r *usuarioRepo) Update(ctx context.Context, id string, cambios map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).Where("id = ?", id).Updates(cambios).Error
}

func (r *usuarioRepo) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).Where("id = ?", id).Update("id_estado", model.EstadoInactivo).Error
}

func (r *usuarioRepo) ExisteUsuario(ctx context.Context, usuario, excluirID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).Where("usuario = ? AND id <> ?", usuario, excluirID).Count(&n).Error
	return n > 0, err
}

func (r *usuarioRepo) ExisteCorreo(ctx context.Context, correo, excluirID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("LOWER(correo) = LOWER(?) AND id <> ?", correo, excluirID).Count(&n).Error
	return n > 0, err
}

func (r *usuarioRepo) TieneApp(ctx context.Context, id string, appID int) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.UsuarioApp{}).Where("id_usuario = ? AND id_app = ?", id, appID).Count(&n).Error
	return n > 0, err
}

func (r *usuarioRepo) ListPerfiles(ctx context.Context) ([]model.Perfil, error) {
	var perfiles []model.Perfil
	err := r.db.WithContext(ctx).Order("id").Find(&perfiles).Error
	return perfiles, err
}
