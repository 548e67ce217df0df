package repository

import "gorm.io/gorm"

// Every scoped query aliases general_dim_cuartel as "c" and joins the cost
// center as "ce". A field belongs to the cost center's branch when it has one,
// otherwise to its own id_sucursal.
const (
	joinCeco         = "LEFT JOIN general_dim_ceco ce ON ce.id = c.id_ceco"
	sucursalEfectiva = "COALESCE(ce.id_sucursal, c.id_sucursal)"
)

// enAlcance restricts a query to fields whose branch is in sucursales.
// An empty scope matches nothing.
func enAlcance(db *gorm.DB, sucursales []int64) *gorm.DB {
	if len(sucursales) == 0 {
		return db.Where("1 = 0")
	}
	return db.Where(sucursalEfectiva+" IN ?", sucursales)
}

// conn returns tx when the caller is inside a transaction.
func conn(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
