package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-arrower/catalog/repository"
)

// NewTx runs useCase in a database transaction.
// The transaction is put into the context as repository.CtxTX, so SQL repositories use it.
// It is committed, if useCase succeeds, and rolled back otherwise.
func NewTx[In any, Out any](db *sql.DB, useCase UseCase[In, Out]) UseCase[In, Out] {
	return &txDecorator[In, Out]{
		db:   db,
		base: useCase,
	}
}

type txDecorator[In any, Out any] struct {
	db   *sql.DB
	base UseCase[In, Out]
}

func (d *txDecorator[In, Out]) H(ctx context.Context, in In) (Out, error) { //nolint:ireturn,lll // valid use of generics
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return *new(Out), fmt.Errorf("could not start transaction: %w", err)
	}

	out, err := d.base.H(context.WithValue(ctx, repository.CtxTX, tx), in)
	if err != nil {
		if rb := tx.Rollback(); rb != nil {
			return *new(Out), errors.Join(err, fmt.Errorf("could not rollback transaction: %w", rb))
		}

		return out, err //nolint:wrapcheck // decorate but not change anything
	}

	err = tx.Commit()
	if err != nil {
		return *new(Out), fmt.Errorf("could not commit transaction: %w", err)
	}

	return out, nil
}
