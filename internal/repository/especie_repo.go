package repository

import (
	"context"

	"github.com/soporte-code/API-PORTALWEB/internal/model"

	"gorm.io/gorm"
)

// EspecieRepository handles species and their varieties.
type EspecieRepository interface {
	ListEspecies(ctx context.Context) ([]model.Especie, error)
	FindEspecie(ctx context.Context, id int64) (*model.Especie, error)
	CreateEspecie(ctx context.Context, e *model.Especie) error
	UpdateEspecie(ctx context.Context, id int64, cambios map[string]interface{}) error
	SoftDeleteEspecie(ctx context.Context, id int64) error
	ExisteEspecie(ctx context.Context, nombre string, excluirID int64) (bool, error)
	CountVariedadesActivas(ctx context.Context, especieID int64) (int64, error)

	ListVariedades(ctx context.Context, especieID *int64) ([]model.VariedadDetalle, error)
	FindVariedad(ctx context.Context, id int64) (*model.Variedad, error)
	CreateVariedad(ctx context.Context, v *model.Variedad) error
	UpdateVariedad(ctx context.Context, id int64, cambios map[string]interface{}) error
	SoftDeleteVariedad(ctx context.Context, id int64) error
	ExisteVariedad(ctx context.Context, especieID int64, nombre string, excluirID int64) (bool, error)
	CountCuartelesActivos(ctx context.Context, variedadID int64) (int64, error)
}

type especieRepo struct{ db *gorm.DB }

func NewEspecieRepository(db *gorm.DB) EspecieRepository { return &especieRepo{db: db} }

func (r *especieRepo) ListEspecies(ctx context.Context) ([]model.Especie, error) {
	var especies []model.Especie
	err := activas(r.db.WithContext(ctx)).Order("nombre").Find(&especies).Error
	return especies, err
}

func (r *especieRepo) FindEspecie(ctx context.Context, id int64) (*model.Especie, error) {
	var e model.Especie
	err := activas(r.db.WithContext(ctx)).Where("id = ?", id).First(&e).Error
	return &e, err
}

func (r *especieRepo) CreateEspecie(ctx context.Context, e *model.Especie) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *especieRepo) UpdateEspecie(ctx context.Context, id int64, cambios map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Especie{}).Where("id = ?", id).Updates(cambios).Error
}

func (r *especieRepo) SoftDeleteEspecie(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Especie{}).Where("id = ?", id).Update("id_estado", model.EstadoInactivo).Error
}

func (r *especieRepo) ExisteEspecie(ctx context.Context, nombre string, excluirID int64) (bool, error) {
	var n int64
	err := activas(r.db.WithContext(ctx).Model(&model.Especie{})).
		Where("LOWER(nombre) = LOWER(?) AND id <> ?", nombre, excluirID).Count(&n).Error
	return n > 0, err
}

func (r *especieRepo) CountVariedadesActivas(ctx context.Context, especieID int64) (int64, error) {
	var n int64
	err := activas(r.db.WithContext(ctx).Model(&model.Variedad{})).Where("id_especie = ?", especieID).Count(&n).Error
	return n, err
}

func (r *especieRepo) ListVariedades(ctx context.Context, especieID *int64) ([]model.VariedadDetalle, error) {
	q := r.db.WithContext(ctx).Table("general_dim_variedad AS v").
		Select("v.*, e.nombre AS nombre_especie").
		Joins("LEFT JOIN general_dim_especie e ON e.id = v.id_especie").
		Where("v.id_estado = ?", model.EstadoActivo)
	if especieID != nil {
		q = q.Where("v.id_especie = ?", *especieID)
	}
	var variedades []model.VariedadDetalle
	err := q.Order("v.nombre").Scan(&variedades).Error
	return variedades, err
}

func (r *especieRepo) FindVariedad(ctx context.Context, id int64) (*model.Variedad, error) {
	var v model.Variedad
	err := activas(r.db.WithContext(ctx)).Where("id = ?", id).First(&v).Error
	return &v, err
}

func (r *especieRepo) CreateVariedad(ctx context.Context, v *model.Variedad) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *especieRepo) UpdateVariedad(ctx context.Context, id int64, cambios map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Variedad{}).Where("id = ?", id).Updates(cambios).Error
}

func (r *especieRepo) SoftDeleteVariedad(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Variedad{}).Where("id = ?", id).Update("id_estado", model.EstadoInactivo).Error
}

func (r *especieRepo) ExisteVariedad(ctx context.Context, especieID int64, nombre string, excluirID int64) (bool, error) {
	var n int64
	err := activas(r.db.WithContext(ctx).Model(&model.Variedad{})).
		Where("id_especie = ? AND LOWER(nombre) = LOWER(?) AND id <> ?", especieID, nombre, excluirID).Count(&n).Error
	return n > 0, err
}

func (r *especieRepo) CountCuartelesActivos(ctx context.Context, variedadID int64) (int64, error) {
	var n int64
	err := activas(r.db.WithContext(ctx).Model(&model.Cuartel{})).Where("id_variedad = ?", variedadID).Count(&n).Error
	return n, err
}
