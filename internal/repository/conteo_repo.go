package repository

import (
	"context"

	"github.com/soporte-code/API-PORTALWEB/internal/model"

	"gorm.io/gorm"
)

type ConteoRepository interface {
	ListAtributos(ctx context.Context) ([]model.Atributo, error)
	FindAtributo(ctx context.Context, id int64) (*model.Atributo, error)

	ListOptimos(ctx context.Context, atributoID *int64) ([]model.AtributoOptimo, error)
	FindOptimo(ctx context.Context, id int64) (*model.AtributoOptimo, error)
	CreateOptimo(ctx context.Context, o *model.AtributoOptimo) error
	UpdateOptimo(ctx context.Context, id int64, cambios map[string]interface{}) error
	SoftDeleteOptimo(ctx context.Context, id int64) error

	ListAtributoEspecie(ctx context.Context, especieID *int64) ([]model.AtributoEspecie, error)
	FindAtributoEspecie(ctx context.Context, id int64) (*model.AtributoEspecie, error)
	CreateAtributoEspecie(ctx context.Context, ae *model.AtributoEspecie) error
	UpdateAtributoEspecie(ctx context.Context, id int64, cambios map[string]interface{}) error
	SoftDeleteAtributoEspecie(ctx context.Context, id int64) error
	ExisteAtributoEspecie(ctx context.Context, atributoID, especieID, excluirID int64) (bool, error)
}

type conteoRepo struct{ db *gorm.DB }

func NewConteoRepository(db *gorm.DB) ConteoRepository { return &conteoRepo{db: db} }

func (r *conteoRepo) ListAtributos(ctx context.Context) ([]model.Atributo, error) {
	var atributos []model.Atributo
	err := r.db.WithContext(ctx).Order("nombre").Find(&atributos).Error
	return atributos, err
}

func (r *conteoRepo) FindAtributo(ctx context.Context, id int64) (*model.Atributo, error) {
	var a model.Atributo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	return &a, err
}

func (r *conteoRepo) ListOptimos(ctx context.Context, atributoID *int64) ([]model.AtributoOptimo, error) {
	q := activas(r.db.WithContext(ctx))
	if atributoID != nil {
		q = q.Where("id_atributo = ?", *atributoID)
	}
	var optimos []model.AtributoOptimo
	err := q.Order("id_atributo, edad_min").Find(&optimos).Error
	return optimos, err
}

func (r *conteoRepo) FindOptimo(ctx context.Context, id int64) (*model.AtributoOptimo, error) {
	var o model.AtributoOptimo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error
	return &o, err
}

func (r *conteoRepo) CreateOptimo(ctx context.Context, o *model.AtributoOptimo) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *conteoRepo) UpdateOptimo(ctx context.Context, id int64, cambios map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.AtributoOptimo{}).Where("id = ?", id).Updates(cambios).Error
}

func (r *conteoRepo) SoftDeleteOptimo(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.AtributoOptimo{}).Where("id = ?", id).Update("id_estado", model.EstadoInactivo).Error
}

func (r *conteoRepo) ListAtributoEspecie(ctx context.Context, especieID *int64) ([]model.AtributoEspecie, error) {
	q := activas(r.db.WithContext(ctx))
	if especieID != nil {
		q = q.Where("id_especie = ?", *especieID)
	}
	var pares []model.AtributoEspecie
	err := q.Order("id_especie, id_atributo").Find(&pares).Error
	return pares, err
}

func (r *conteoRepo) FindAtributoEspecie(ctx context.Context, id int64) (*model.AtributoEspecie, error) {
	var ae model.AtributoEspecie
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ae).Error
	return &ae, err
}

func (r *conteoRepo) CreateAtributoEspecie(ctx context.Context, ae *model.AtributoEspecie) error {
	return r.db.WithContext(ctx).Create(ae).Error
}

func (r *conteoRepo) UpdateAtributoEspecie(ctx context.Context, id int64, cambios map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.AtributoEspecie{}).Where("id = ?", id).Updates(cambios).Error
}

func (r *conteoRepo) SoftDeleteAtributoEspecie(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.AtributoEspecie{}).Where("id = ?", id).Update("id_estado", model.EstadoInactivo).Error
}

func (r *conteoRepo) ExisteAtributoEspecie(ctx context.Context, atributoID, especieID, excluirID int64) (bool, error) {
	var n int64
	err := activas(r.db.WithContext(ctx).Model(&model.AtributoEspecie{})).
		Where("id_atributo = ? AND id_especie = ? AND id <> ?", atributoID, especieID, excluirID).Count(&n).Error
	return n > 0, err
}
