package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Table names are quoted with backticks everywhere: SHOW is a reserved
// word in MySQL.  SQLite accepts the same quoting.

var mysqlSchema = []string{
	"CREATE TABLE IF NOT EXISTS `Venue` (" +
		"id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"name VARCHAR(255) NOT NULL," +
		"city VARCHAR(120) NOT NULL DEFAULT ''," +
		"state VARCHAR(120) NOT NULL DEFAULT ''," +
		"address VARCHAR(120) NOT NULL DEFAULT ''," +
		"phone VARCHAR(120) NOT NULL DEFAULT ''," +
		"genres VARCHAR(500) NOT NULL DEFAULT ''," +
		"website VARCHAR(500) NOT NULL DEFAULT ''," +
		"image_link VARCHAR(500) NOT NULL DEFAULT ''," +
		"facebook_link VARCHAR(500) NOT NULL DEFAULT ''," +
		"seeking_talent BOOLEAN NOT NULL DEFAULT FALSE," +
		"seeking_description VARCHAR(1000) NOT NULL DEFAULT ''," +
		"INDEX idx_venue_location (state, city)" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	"CREATE TABLE IF NOT EXISTS `Artist` (" +
		"id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"name VARCHAR(255) NOT NULL," +
		"city VARCHAR(120) NOT NULL DEFAULT ''," +
		"state VARCHAR(120) NOT NULL DEFAULT ''," +
		"phone VARCHAR(120) NOT NULL DEFAULT ''," +
		"genres VARCHAR(500) NOT NULL DEFAULT ''," +
		"image_link VARCHAR(500) NOT NULL DEFAULT ''," +
		"website VARCHAR(500) NOT NULL DEFAULT ''," +
		"facebook_link VARCHAR(500) NOT NULL DEFAULT ''," +
		"seeking_venue BOOLEAN NOT NULL DEFAULT FALSE," +
		"seeking_description VARCHAR(1000) NOT NULL DEFAULT ''" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	"CREATE TABLE IF NOT EXISTS `Show` (" +
		"id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"start_time DATETIME NOT NULL," +
		"artist_id BIGINT NOT NULL," +
		"venue_id BIGINT NOT NULL," +
		"INDEX idx_show_artist (artist_id)," +
		"INDEX idx_show_venue (venue_id)," +
		"CONSTRAINT fk_show_artist FOREIGN KEY (artist_id) REFERENCES `Artist` (id)," +
		"CONSTRAINT fk_show_venue FOREIGN KEY (venue_id) REFERENCES `Venue` (id)" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
}

var sqliteSchema = []string{
	"CREATE TABLE IF NOT EXISTS `Venue` (" +
		"id INTEGER PRIMARY KEY AUTOINCREMENT," +
		"name TEXT NOT NULL," +
		"city TEXT NOT NULL DEFAULT ''," +
		"state TEXT NOT NULL DEFAULT ''," +
		"address TEXT NOT NULL DEFAULT ''," +
		"phone TEXT NOT NULL DEFAULT ''," +
		"genres TEXT NOT NULL DEFAULT ''," +
		"website TEXT NOT NULL DEFAULT ''," +
		"image_link TEXT NOT NULL DEFAULT ''," +
		"facebook_link TEXT NOT NULL DEFAULT ''," +
		"seeking_talent BOOLEAN NOT NULL DEFAULT 0," +
		"seeking_description TEXT NOT NULL DEFAULT ''" +
		")",
	"CREATE INDEX IF NOT EXISTS idx_venue_location ON `Venue` (state, city)",
	"CREATE TABLE IF NOT EXISTS `Artist` (" +
		"id INTEGER PRIMARY KEY AUTOINCREMENT," +
		"name TEXT NOT NULL," +
		"city TEXT NOT NULL DEFAULT ''," +
		"state TEXT NOT NULL DEFAULT ''," +
		"phone TEXT NOT NULL DEFAULT ''," +
		"genres TEXT NOT NULL DEFAULT ''," +
		"image_link TEXT NOT NULL DEFAULT ''," +
		"website TEXT NOT NULL DEFAULT ''," +
		"facebook_link TEXT NOT NULL DEFAULT ''," +
		"seeking_venue BOOLEAN NOT NULL DEFAULT 0," +
		"seeking_description TEXT NOT NULL DEFAULT ''" +
		")",
	"CREATE TABLE IF NOT EXISTS `Show` (" +
		"id INTEGER PRIMARY KEY AUTOINCREMENT," +
		"start_time DATETIME NOT NULL," +
		"artist_id INTEGER NOT NULL REFERENCES `Artist` (id)," +
		"venue_id INTEGER NOT NULL REFERENCES `Venue` (id)" +
		")",
	"CREATE INDEX IF NOT EXISTS idx_show_artist ON `Show` (artist_id)",
	"CREATE INDEX IF NOT EXISTS idx_show_venue ON `Show` (venue_id)",
}

// Migrate creates the Venue, Artist and Show tables for the driver the
// handle was opened with.  It is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	var stmts []string
	switch db.DriverName() {
	case "mysql":
		stmts = mysqlSchema
	case "sqlite":
		stmts = sqliteSchema
	default:
		return fmt.Errorf("migrate: unsupported driver %q", db.DriverName())
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
