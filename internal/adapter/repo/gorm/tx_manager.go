package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

// TxManager wraps journal writes in one database transaction. The
// journals in this package pick the transaction up from the context it
// hands to fn.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return TxManager{db: db}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
