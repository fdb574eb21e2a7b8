package publishing

import (
	"context"

	"github.com/uptrace/bun"
)

// Models lists every persisted model in dependency order
func Models() []any {
	return []any{
		(*User)(nil),
		(*AccessToken)(nil),
		(*Article)(nil),
		(*Comment)(nil),
	}
}

// CreateSchema bootstraps the tables for the registered models. Safe to run
// on every start; existing tables are left alone.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range Models() {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}
