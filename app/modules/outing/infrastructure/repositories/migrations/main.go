// Package outingmigrations registers the outing module's bun migrations.
package outingmigrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()
