// Package db ships the goose migrations with the binaries that need them.
package db

import "embed"

// Migrations holds the SQL migration files applied by goose.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that goose reads from.
const MigrationsDir = "migrations"
