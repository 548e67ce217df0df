package service

import (
	"context"
	"errors"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly in unit tests where db is nil.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// siNoExiste turns a missing row into a 404 with msg.
func siNoExiste(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NoEncontrado(msg)
	}
	return err
}

// siDuplicado turns a unique-index violation into a Conflicto with msg.
func siDuplicado(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apierror.Conflicto(msg)
	}
	return err
}

func contiene(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// errorDeBusqueda reports a lookup failure other than a missing row.
func errorDeBusqueda(err error) bool {
	return err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
}
