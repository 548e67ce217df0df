package repository

import (
	"context"

	"github.com/soporte-code/API-PORTALWEB/internal/model"

	"gorm.io/gorm"
)

// SucursalRepository covers branches, cost centers and the membership pivot
// that defines each user's access scope.
type SucursalRepository interface {
	IDsDeUsuario(ctx context.Context, usuarioID string) ([]int64, error)
	ListDeUsuario(ctx context.Context, usuarioID string) ([]model.Sucursal, error)
	FindByID(ctx context.Context, id int64) (*model.Sucursal, error)
	FindCeco(ctx context.Context, id int64) (*model.Ceco, error)
	ListCampo(ctx context.Context) ([]model.Sucursal, error)
	ExistentesCampo(ctx context.Context, ids []int64) ([]int64, error)
	ReemplazarDeUsuario(ctx context.Context, usuarioID string, ids []int64) error
	EliminarDeUsuario(ctx context.Context, usuarioID string) (int64, error)
}

type sucursalRepo struct{ db *gorm.DB }

func NewSucursalRepository(db *gorm.DB) SucursalRepository { return &sucursalRepo{db: db} }

func (r *sucursalRepo) IDsDeUsuario(ctx context.Context, usuarioID string) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&model.SucursalUsuario{}).
		Where("id_usuario = ?", usuarioID).
		Order("id_sucursal").
		Pluck("id_sucursal", &ids).Error
	return ids, err
}

func (r *sucursalRepo) ListDeUsuario(ctx context.Context, usuarioID string) ([]model.Sucursal, error) {
	var sucursales []model.Sucursal
	err := r.db.WithContext(ctx).Table("general_dim_sucursal AS s").
		Select("s.*").
		Joins("JOIN usuario_pivot_sucursal_usuario su ON su.id_sucursal = s.id").
		Where("su.id_usuario = ? AND s.id_estado = ?", usuarioID, model.EstadoActivo).
		Order("s.nombre").
		Scan(&sucursales).Error
	return sucursales, err
}

func (r *sucursalRepo) FindByID(ctx context.Context, id int64) (*model.Sucursal, error) {
	var s model.Sucursal
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	return &s, err
}

func (r *sucursalRepo) FindCeco(ctx context.Context, id int64) (*model.Ceco, error) {
	var c model.Ceco
	err := r.db.WithContext(ctx).Where("id = ? AND id_estado = ?", id, model.EstadoActivo).First(&c).Error
	return &c, err
}

func (r *sucursalRepo) ListCampo(ctx context.Context) ([]model.Sucursal, error) {
	var sucursales []model.Sucursal
	err := r.db.WithContext(ctx).
		Where("id_sucursaltipo = ? AND id_estado = ?", model.SucursalTipoCampo, model.EstadoActivo).
		Order("nombre").
		Find(&sucursales).Error
	return sucursales, err
}

// ExistentesCampo returns the subset of ids that are active field branches.
func (r *sucursalRepo) ExistentesCampo(ctx context.Context, ids []int64) ([]int64, error) {
	var existentes []int64
	if len(ids) == 0 {
		return existentes, nil
	}
	err := r.db.WithContext(ctx).Model(&model.Sucursal{}).
		Where("id IN ? AND id_sucursaltipo = ? AND id_estado = ?", ids, model.SucursalTipoCampo, model.EstadoActivo).
		Pluck("id", &existentes).Error
	return existentes, err
}

func (r *sucursalRepo) ReemplazarDeUsuario(ctx context.Context, usuarioID string, ids []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_usuario = ?", usuarioID).Delete(&model.SucursalUsuario{}).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		pares := make([]model.SucursalUsuario, len(ids))
		for i, id := range ids {
			pares[i] = model.SucursalUsuario{IDSucursal: id, IDUsuario: usuarioID}
		}
		return tx.Create(&pares).Error
	})
}

func (r *sucursalRepo) EliminarDeUsuario(ctx context.Context, usuarioID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id_usuario = ?", usuarioID).Delete(&model.SucursalUsuario{})
	return res.RowsAffected, res.Error
}
