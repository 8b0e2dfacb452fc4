package database

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// WithTransaction runs fn inside a transaction bound to ctx.
// fn returning an error rolls back; nil commits.
//
// Usage:
//
//	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
//	    return repo.Create(ctx, tx, customer)
//	})
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(*gorm.DB) error) error {
	if fn == nil {
		return errors.New("database: transaction function is nil")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	return db.WithContext(ctx).Transaction(fn)
}

// IsDuplicateKey reports whether err is a UNIQUE / PRIMARY KEY violation.
// TranslateError covers most paths; the message check catches handles opened without it.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
