package db

import (
	"context"

	"gorm.io/gorm"
)

// UnitOfWork is a transaction boundary over gorm: fn returning an error rolls
// back, returning nil commits. Repositories inside fn must use tx only.
type UnitOfWork struct {
	conn *gorm.DB
}

func NewUnitOfWork(conn *gorm.DB) *UnitOfWork {
	return &UnitOfWork{conn: conn}
}

func (u *UnitOfWork) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return u.conn.WithContext(ctx).Transaction(fn)
}
