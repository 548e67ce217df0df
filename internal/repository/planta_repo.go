package repository

import (
	"context"

	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/model"

	"gorm.io/gorm"
)

type PlantaRepository interface {
	ListPorHilera(ctx context.Context, hileraID int64) ([]model.Planta, error)
	ListPorCuartel(ctx context.Context, cuartelID int64) ([]model.PlantaDetalle, error)
	FindEnAlcance(ctx context.Context, id int64, sucursales []int64) (*model.PlantaDetalle, error)
	Buscar(ctx context.Context, f dto.BuscarPlantaFilter, sucursales []int64) ([]model.PlantaDetalle, error)
	ExisteNumero(ctx context.Context, hileraID int64, planta string, excluirID int64) (bool, error)
	CountActivas(ctx context.Context, hileraID int64) (int64, error)
	TieneRegistros(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, p *model.Planta) error
	Update(ctx context.Context, id int64, cambios map[string]interface{}) error
	SoftDelete(ctx context.Context, id int64) error

	FindDetalleTx(tx *gorm.DB, id int64) (*model.PlantaDetalle, error)
	NumerosActivosTx(tx *gorm.DB, hileraID int64) ([]string, error)
	CreateTx(tx *gorm.DB, plantas []model.Planta) error
	SoftDeletePorHileraTx(tx *gorm.DB, hileraID int64) (int64, error)
}

type plantaRepo struct{ db *gorm.DB }

func NewPlantaRepository(db *gorm.DB) PlantaRepository { return &plantaRepo{db: db} }

// detallePlantas joins every active plant with its row, field and branch.
func detallePlantas(db *gorm.DB) *gorm.DB {
	return db.Table("general_dim_planta AS p").
		Select("p.*, h.hilera AS nombre_hilera, c.id AS id_cuartel, c.nombre AS nombre_cuartel, " +
			sucursalEfectiva + " AS id_sucursal_efectiva").
		Joins("JOIN general_dim_hilera h ON h.id = p.id_hilera AND h.id_estado = ?", model.EstadoActivo).
		Joins("JOIN general_dim_cuartel c ON c.id = h.id_cuartel AND c.id_estado = ?", model.EstadoActivo).
		Joins(joinCeco).
		Where("p.id_estado = ?", model.EstadoActivo)
}

func (r *plantaRepo) ListPorHilera(ctx context.Context, hileraID int64) ([]model.Planta, error) {
	var plantas []model.Planta
	err := activas(r.db.WithContext(ctx)).Where("id_hilera = ?", hileraID).Order("id").Find(&plantas).Error
	return plantas, err
}

func (r *plantaRepo) ListPorCuartel(ctx context.Context, cuartelID int64) ([]model.PlantaDetalle, error) {
	var plantas []model.PlantaDetalle
	err := detallePlantas(r.db.WithContext(ctx)).Where("c.id = ?", cuartelID).Order("h.id, p.id").Scan(&plantas).Error
	return plantas, err
}

func (r *plantaRepo) FindEnAlcance(ctx context.Context, id int64, sucursales []int64) (*model.PlantaDetalle, error) {
	return unaPlanta(enAlcance(detallePlantas(r.db.WithContext(ctx)), sucursales).Where("p.id = ?", id))
}

func (r *plantaRepo) FindDetalleTx(tx *gorm.DB, id int64) (*model.PlantaDetalle, error) {
	return unaPlanta(detallePlantas(conn(r.db, tx)).Where("p.id = ?", id))
}

func unaPlanta(q *gorm.DB) (*model.PlantaDetalle, error) {
	var p model.PlantaDetalle
	res := q.Limit(1).Scan(&p)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *plantaRepo) Buscar(ctx context.Context, f dto.BuscarPlantaFilter, sucursales []int64) ([]model.PlantaDetalle, error) {
	q := enAlcance(detallePlantas(r.db.WithContext(ctx)), sucursales)
	if f.CuartelID != nil {
		q = q.Where("c.id = ?", *f.CuartelID)
	}
	if f.HileraID != nil {
		q = q.Where("h.id = ?", *f.HileraID)
	}
	if f.Planta != "" {
		q = q.Where("p.planta LIKE ?", "%"+f.Planta+"%")
	}
	var plantas []model.PlantaDetalle
	err := q.Order("c.nombre, h.id, p.id").Limit(500).Scan(&plantas).Error
	return plantas, err
}

func (r *plantaRepo) ExisteNumero(ctx context.Context, hileraID int64, planta string, excluirID int64) (bool, error) {
	var n int64
	err := activas(r.db.WithContext(ctx).Model(&model.Planta{})).
		Where("id_hilera = ? AND planta = ? AND id <> ?", hileraID, planta, excluirID).
		Count(&n).Error
	return n > 0, err
}

func (r *plantaRepo) CountActivas(ctx context.Context, hileraID int64) (int64, error) {
	var n int64
	err := activas(r.db.WithContext(ctx).Model(&model.Planta{})).Where("id_hilera = ?", hileraID).Count(&n).Error
	return n, err
}

func (r *plantaRepo) TieneRegistros(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Registro{}).Where("id_planta = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *plantaRepo) Create(ctx context.Context, p *model.Planta) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *plantaRepo) Update(ctx context.Context, id int64, cambios map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Planta{}).Where("id = ?", id).Updates(cambios).Error
}

func (r *plantaRepo) SoftDelete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Planta{}).Where("id = ?", id).Update("id_estado", model.EstadoInactivo).Error
}

func (r *plantaRepo) NumerosActivosTx(tx *gorm.DB, hileraID int64) ([]string, error) {
	var numeros []string
	err := activas(conn(r.db, tx).Model(&model.Planta{})).Where("id_hilera = ?", hileraID).Pluck("planta", &numeros).Error
	return numeros, err
}

func (r *plantaRepo) CreateTx(tx *gorm.DB, plantas []model.Planta) error {
	if len(plantas) == 0 {
		return nil
	}
	return conn(r.db, tx).CreateInBatches(&plantas, 500).Error
}

func (r *plantaRepo) SoftDeletePorHileraTx(tx *gorm.DB, hileraID int64) (int64, error) {
	res := activas(conn(r.db, tx).Model(&model.Planta{})).Where("id_hilera = ?", hileraID).
		Update("id_estado", model.EstadoInactivo)
	return res.RowsAffected, res.Error
}
