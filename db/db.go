package db

import "context"

type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
)

// DB is a storage client that dials lazily and lives as long as the process.
type DB interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
}
