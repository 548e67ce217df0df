package repository

import (
	"context"

	"github.com/soporte-code/API-PORTALWEB/internal/model"

	"gorm.io/gorm"
)

type HileraRepository interface {
	ListPorCuarteles(ctx context.Context, cuartelIDs ...int64) ([]model.HileraConteo, error)
	FindEnAlcance(ctx context.Context, id int64, sucursales []int64) (*model.Hilera, error)
	ExisteNumero(ctx context.Context, cuartelID int64, hilera string, excluirID int64) (bool, error)
	UpdateNumero(ctx context.Context, id int64, hilera string) error

	FindTx(tx *gorm.DB, id int64) (*model.Hilera, error)
	NumerosActivosTx(tx *gorm.DB, cuartelID int64) ([]string, error)
	CountActivasTx(tx *gorm.DB, cuartelID int64) (int64, error)
	CreateTx(tx *gorm.DB, hileras []model.Hilera) error
	SoftDeleteTx(tx *gorm.DB, id int64) error
}

type hileraRepo struct{ db *gorm.DB }

func NewHileraRepository(db *gorm.DB) HileraRepository { return &hileraRepo{db: db} }

func activas(db *gorm.DB) *gorm.DB {
	return db.Where("id_estado = ?", model.EstadoActivo)
}

// ListPorCuarteles returns active rows with their active plant count.
func (r *hileraRepo) ListPorCuarteles(ctx context.Context, cuartelIDs ...int64) ([]model.HileraConteo, error) {
	var hileras []model.HileraConteo
	if len(cuartelIDs) == 0 {
		return hileras, nil
	}
	err := r.db.WithContext(ctx).Table("general_dim_hilera AS h").
		Select("h.*, COUNT(p.id) AS plantas_activas").
		Joins("LEFT JOIN general_dim_planta p ON p.id_hilera = h.id AND p.id_estado = ?", model.EstadoActivo).
		Where("h.id_cuartel IN ? AND h.id_estado = ?", cuartelIDs, model.EstadoActivo).
		Group("h.id, h.hilera, h.id_cuartel, h.id_estado, h.fecha_creacion").
		Order("h.id_cuartel, h.id").
		Scan(&hileras).Error
	return hileras, err
}

func (r *hileraRepo) FindEnAlcance(ctx context.Context, id int64, sucursales []int64) (*model.Hilera, error) {
	var h model.Hilera
	res := enAlcance(r.db.WithContext(ctx).Table("general_dim_hilera AS h").
		Select("h.*").
		Joins("JOIN general_dim_cuartel c ON c.id = h.id_cuartel AND c.id_estado = ?", model.EstadoActivo).
		Joins(joinCeco).
		Where("h.id = ? AND h.id_estado = ?", id, model.EstadoActivo), sucursales).
		Limit(1).Scan(&h)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &h, nil
}

func (r *hileraRepo) ExisteNumero(ctx context.Context, cuartelID int64, hilera string, excluirID int64) (bool, error) {
	var n int64
	err := activas(r.db.WithContext(ctx).Model(&model.Hilera{})).
		Where("id_cuartel = ? AND hilera = ? AND id <> ?", cuartelID, hilera, excluirID).
		Count(&n).Error
	return n > 0, err
}

func (r *hileraRepo) UpdateNumero(ctx context.Context, id int64, hilera string) error {
	return r.db.WithContext(ctx).Model(&model.Hilera{}).Where("id = ?", id).Update("hilera", hilera).Error
}

func (r *hileraRepo) FindTx(tx *gorm.DB, id int64) (*model.Hilera, error) {
	var h model.Hilera
	err := activas(conn(r.db, tx)).First(&h, id).Error
	return &h, err
}

func (r *hileraRepo) NumerosActivosTx(tx *gorm.DB, cuartelID int64) ([]string, error) {
	var numeros []string
	err := activas(conn(r.db, tx).Model(&model.Hilera{})).
		Where("id_cuartel = ?", cuartelID).
		Pluck("hilera", &numeros).Error
	return numeros, err
}

func (r *hileraRepo) CountActivasTx(tx *gorm.DB, cuartelID int64) (int64, error) {
	var n int64
	err := activas(conn(r.db, tx).Model(&model.Hilera{})).Where("id_cuartel = ?", cuartelID).Count(&n).Error
	return n, err
}

func (r *hileraRepo) CreateTx(tx *gorm.DB, hileras []model.Hilera) error {
	if len(hileras) == 0 {
		return nil
	}
	return conn(r.db, tx).Create(&hileras).Error
}

func (r *hileraRepo) SoftDeleteTx(tx *gorm.DB, id int64) error {
	return conn(r.db, tx).Model(&model.Hilera{}).Where("id = ?", id).Update("id_estado", model.EstadoInactivo).Error
}
