package repository

import (
	"context"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/model"

	"gorm.io/gorm"
)

// CuartelRepository defines data access for fields. List and Find methods
// apply the access scope; Tx methods run inside the caller's transaction.
type CuartelRepository interface {
	List(ctx context.Context, sucursales []int64) ([]model.CuartelDetalle, error)
	FindEnAlcance(ctx context.Context, id int64, sucursales []int64) (*model.CuartelDetalle, error)
	Update(ctx context.Context, id int64, cambios map[string]interface{}) error
	SoftDelete(ctx context.Context, id int64) error

	FindTx(tx *gorm.DB, id int64) (*model.CuartelDetalle, error)
	CreateTx(tx *gorm.DB, c *model.Cuartel) error
	SetNHilerasTx(tx *gorm.DB, id int64, n int) error

	DB() *gorm.DB
}

type cuartelRepo struct{ db *gorm.DB }

func NewCuartelRepository(db *gorm.DB) CuartelRepository { return &cuartelRepo{db: db} }

func (r *cuartelRepo) DB() *gorm.DB { return r.db }

func detalleCuarteles(db *gorm.DB) *gorm.DB {
	return db.Table("general_dim_cuartel AS c").
		Select("c.*, " + sucursalEfectiva + " AS id_sucursal_efectiva, s.nombre AS nombre_sucursal, v.nombre AS nombre_variedad").
		Joins(joinCeco).
		Joins("LEFT JOIN general_dim_sucursal s ON s.id = " + sucursalEfectiva).
		Joins("LEFT JOIN general_dim_variedad v ON v.id = c.id_variedad").
		Where("c.id_estado = ?", model.EstadoActivo)
}

func (r *cuartelRepo) List(ctx context.Context, sucursales []int64) ([]model.CuartelDetalle, error) {
	var cuarteles []model.CuartelDetalle
	err := enAlcance(detalleCuarteles(r.db.WithContext(ctx)), sucursales).
		Order("c.nombre").
		Scan(&cuarteles).Error
	return cuarteles, err
}

func (r *cuartelRepo) FindEnAlcance(ctx context.Context, id int64, sucursales []int64) (*model.CuartelDetalle, error) {
	return primero(enAlcance(detalleCuarteles(r.db.WithContext(ctx)), sucursales).Where("c.id = ?", id))
}

func (r *cuartelRepo) FindTx(tx *gorm.DB, id int64) (*model.CuartelDetalle, error) {
	return primero(detalleCuarteles(conn(r.db, tx)).Where("c.id = ?", id))
}

// primero scans a single detail row; Scan does not report missing rows.
func primero(q *gorm.DB) (*model.CuartelDetalle, error) {
	var c model.CuartelDetalle
	res := q.Limit(1).Scan(&c)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *cuartelRepo) CreateTx(tx *gorm.DB, c *model.Cuartel) error {
	return conn(r.db, tx).Create(c).Error
}

func (r *cuartelRepo) Update(ctx context.Context, id int64, cambios map[string]interface{}) error {
	cambios["fecha_actualizacion"] = time.Now()
	return r.db.WithContext(ctx).Model(&model.Cuartel{}).Where("id = ?", id).Updates(cambios).Error
}

func (r *cuartelRepo) SoftDelete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Cuartel{}).Where("id = ?", id).
		Updates(map[string]interface{}{"id_estado": model.EstadoInactivo, "fecha_baja": time.Now()}).Error
}

func (r *cuartelRepo) SetNHilerasTx(tx *gorm.DB, id int64, n int) error {
	return conn(r.db, tx).Model(&model.Cuartel{}).Where("id = ?", id).
		Updates(map[string]interface{}{"n_hileras": n, "fecha_actualizacion": time.Now()}).Error
}
