package repository

import (
	"context"

	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MapeoRepository covers mapping campaigns, row states, inspection records
// and plant types.
type MapeoRepository interface {
	ListRegistrosMapeo(ctx context.Context, sucursales []int64) ([]model.RegistroMapeoDetalle, error)
	FindRegistroMapeo(ctx context.Context, id string, sucursales []int64) (*model.RegistroMapeoDetalle, error)
	ExisteActivoPorCuartel(ctx context.Context, cuartelID int64) (bool, error)
	CreateRegistroMapeo(ctx context.Context, rm *model.RegistroMapeo) error
	UpdateRegistroMapeo(ctx context.Context, id string, cambios map[string]interface{}) error

	ListEstadosHileras(ctx context.Context, registroMapeoID string) ([]model.EstadoHilera, error)
	FindEstadoHilera(ctx context.Context, registroMapeoID string, hileraID int64) (*model.EstadoHilera, error)
	UpsertEstadoHilera(ctx context.Context, e *model.EstadoHilera) error

	ListRegistros(ctx context.Context, f dto.RegistroFilter, sucursales []int64) ([]model.Registro, error)
	FindRegistro(ctx context.Context, id string, sucursales []int64) (*model.Registro, error)
	CreateRegistro(ctx context.Context, reg *model.Registro) error
	CreateRegistrosTx(tx *gorm.DB, regs []model.Registro) error

	ListTiposPlanta(ctx context.Context, empresaID *int64) ([]model.TipoPlanta, error)

	DB() *gorm.DB
}

type mapeoRepo struct{ db *gorm.DB }

func NewMapeoRepository(db *gorm.DB) MapeoRepository { return &mapeoRepo{db: db} }

func (r *mapeoRepo) DB() *gorm.DB { return r.db }

func campanias(db *gorm.DB, sucursales []int64) *gorm.DB {
	return enAlcance(db.Table("mapeo_fact_registromapeo AS rm").
		Select("rm.*, c.nombre AS cuartel_nombre").
		Joins("JOIN general_dim_cuartel c ON c.id = rm.id_cuartel").
		Joins(joinCeco), sucursales)
}

func (r *mapeoRepo) ListRegistrosMapeo(ctx context.Context, sucursales []int64) ([]model.RegistroMapeoDetalle, error) {
	var lista []model.RegistroMapeoDetalle
	err := campanias(r.db.WithContext(ctx), sucursales).
		Order("rm.fecha_inicio DESC").
		Scan(&lista).Error
	return lista, err
}

func (r *mapeoRepo) FindRegistroMapeo(ctx context.Context, id string, sucursales []int64) (*model.RegistroMapeoDetalle, error) {
	var rm model.RegistroMapeoDetalle
	res := campanias(r.db.WithContext(ctx), sucursales).Where("rm.id = ?", id).Limit(1).Scan(&rm)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rm, nil
}

func (r *mapeoRepo) ExisteActivoPorCuartel(ctx context.Context, cuartelID int64) (bool, error) {
	var n int64
	err := activas(r.db.WithContext(ctx).Model(&model.RegistroMapeo{})).Where("id_cuartel = ?", cuartelID).Count(&n).Error
	return n > 0, err
}

func (r *mapeoRepo) CreateRegistroMapeo(ctx context.Context, rm *model.RegistroMapeo) error {
	return r.db.WithContext(ctx).Create(rm).Error
}

func (r *mapeoRepo) UpdateRegistroMapeo(ctx context.Context, id string, cambios map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.RegistroMapeo{}).Where("id = ?", id).Updates(cambios).Error
}

func (r *mapeoRepo) ListEstadosHileras(ctx context.Context, registroMapeoID string) ([]model.EstadoHilera, error) {
	var estados []model.EstadoHilera
	err := r.db.WithContext(ctx).Where("id_registro_mapeo = ?", registroMapeoID).Order("id_hilera").Find(&estados).Error
	return estados, err
}

func (r *mapeoRepo) FindEstadoHilera(ctx context.Context, registroMapeoID string, hileraID int64) (*model.EstadoHilera, error) {
	var e model.EstadoHilera
	err := r.db.WithContext(ctx).
		Where("id_registro_mapeo = ? AND id_hilera = ?", registroMapeoID, hileraID).
		First(&e).Error
	return &e, err
}

// UpsertEstadoHilera keeps one row per (campaign, row): an existing pair gets
// the new state, user, observation and timestamp.
func (r *mapeoRepo) UpsertEstadoHilera(ctx context.Context, e *model.EstadoHilera) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id_registro_mapeo"}, {Name: "id_hilera"}},
		DoUpdates: clause.AssignmentColumns([]string{"estado", "id_usuario", "observaciones", "fecha_actualizacion"}),
	}).Create(e).Error
}

func registrosEnAlcance(db *gorm.DB, sucursales []int64) *gorm.DB {
	return enAlcance(db.Table("mapeo_fact_registro AS r").
		Select("r.*").
		Joins("JOIN general_dim_planta p ON p.id = r.id_planta").
		Joins("JOIN general_dim_hilera h ON h.id = p.id_hilera").
		Joins("JOIN general_dim_cuartel c ON c.id = h.id_cuartel").
		Joins(joinCeco), sucursales)
}

func (r *mapeoRepo) ListRegistros(ctx context.Context, f dto.RegistroFilter, sucursales []int64) ([]model.Registro, error) {
	q := registrosEnAlcance(r.db.WithContext(ctx), sucursales)
	if f.RegistroMapeoID != "" {
		q = q.Joins("JOIN mapeo_fact_registromapeo rm ON rm.id_cuartel = c.id").Where("rm.id = ?", f.RegistroMapeoID)
	}
	if f.PlantaID != nil {
		q = q.Where("r.id_planta = ?", *f.PlantaID)
	}
	if f.EvaluadorID != "" {
		q = q.Where("r.id_evaluador = ?", f.EvaluadorID)
	}
	var registros []model.Registro
	err := q.Order("r.hora_registro DESC").Limit(1000).Scan(&registros).Error
	return registros, err
}

func (r *mapeoRepo) FindRegistro(ctx context.Context, id string, sucursales []int64) (*model.Registro, error) {
	var reg model.Registro
	res := registrosEnAlcance(r.db.WithContext(ctx), sucursales).Where("r.id = ?", id).Limit(1).Scan(&reg)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &reg, nil
}

func (r *mapeoRepo) CreateRegistro(ctx context.Context, reg *model.Registro) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *mapeoRepo) CreateRegistrosTx(tx *gorm.DB, regs []model.Registro) error {
	if len(regs) == 0 {
		return nil
	}
	return conn(r.db, tx).CreateInBatches(&regs, 200).Error
}

func (r *mapeoRepo) ListTiposPlanta(ctx context.Context, empresaID *int64) ([]model.TipoPlanta, error) {
	q := activas(r.db.WithContext(ctx))
	if empresaID != nil {
		q = q.Where("id_empresa = ?", *empresaID)
	}
	var tipos []model.TipoPlanta
	err := q.Order("nombre").Find(&tipos).Error
	return tipos, err
}
