package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/foodexplorer-backend/internal/platform/dbctx"
)

// TxRunner scopes a unit of work to one transaction.
type TxRunner interface {
	// InTx commits when fn returns nil and rolls back when it returns an
	// error or panics. The error from fn is returned unchanged.
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func NewTxRunner(c *Client) TxRunner {
	return &gormTxRunner{db: c.DB()}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return errors.New("transaction runner has nil db")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}
