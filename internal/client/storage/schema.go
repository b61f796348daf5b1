package storage

// Schema definitions for the SQLite key-value database

const (
	// Schema version for migrations
	CurrentSchemaVersion = 1

	createBlobsTableSQL = `
		CREATE TABLE IF NOT EXISTS blobs (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	createSchemaMigrationsTableSQL = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	insertMigrationSQL = `
		INSERT INTO schema_migrations (version) VALUES (?);
	`

	getCurrentVersionSQL = `
		SELECT COALESCE(MAX(version), 0) FROM schema_migrations;
	`
)
