// Package db carries the active gorm transaction through a context so
// repositories can share one transaction without passing *gorm.DB around.
package db

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// RunInTransaction runs fn in a transaction opened on the context's
// connection. The context handed to fn carries the transaction, and when
// ctx already carries one gorm nests it with a savepoint.
func RunInTransaction(ctx context.Context, defaultDB *gorm.DB, fn func(ctx context.Context, tx *gorm.DB) error) error {
	return GetTxFromContext(ctx, defaultDB).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx), tx)
	})
}

// GetTxFromContext returns the transaction stored on ctx, or defaultDB
// bound to ctx.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
