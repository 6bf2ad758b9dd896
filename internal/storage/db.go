// Package storage persists per-desktop layouts across restarts.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"tigerwm/internal/wm"
	"tigerwm/pkg/global"
)

type DB struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS desktop_layouts (
    desktop INTEGER PRIMARY KEY,
    master_size INTEGER NOT NULL,
    mode TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// Open opens or creates the layout database at path.
func Open(path string) (*DB, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Create schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// LoadLayouts returns the saved layout of every desktop below n. Rows that
// no longer validate are skipped.
func (d *DB) LoadLayouts(n int) (map[int]wm.Layout, error) {
	log := global.GetLogger()
	log.Debug("Retrieving layouts from database")

	rows, err := d.db.Query(`
        SELECT desktop, master_size, mode
        FROM desktop_layouts
        WHERE desktop >= 0 AND desktop < ?
        ORDER BY desktop
    `, n)
	if err != nil {
		log.Error("Failed to query layouts", err)
		return nil, fmt.Errorf("failed to query layouts: %w", err)
	}
	defer rows.Close()

	layouts := make(map[int]wm.Layout)
	for rows.Next() {
		var desktop, masterSize int
		var mode string
		if err := rows.Scan(&desktop, &masterSize, &mode); err != nil {
			log.Error("Failed to scan layout", err)
			return nil, fmt.Errorf("failed to scan layout: %w", err)
		}

		m, err := wm.ParseMode(mode)
		if err != nil {
			log.Warn("Skipping saved layout", "desktop", desktop, "error", err.Error())
			continue
		}
		layout := wm.Layout{MasterSize: masterSize, Mode: m}
		if err := layout.Validate(); err != nil {
			log.Warn("Skipping saved layout", "desktop", desktop, "error", err.Error())
			continue
		}
		layouts[desktop] = layout
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read layouts: %w", err)
	}

	log.Debug("Total layouts retrieved", "count", len(layouts))
	return layouts, nil
}

// SaveLayouts stores layouts indexed by desktop, replacing earlier rows.
func (d *DB) SaveLayouts(layouts []wm.Layout) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for desktop, layout := range layouts {
		_, err := tx.Exec(`
			INSERT INTO desktop_layouts (desktop, master_size, mode, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(desktop) DO UPDATE SET
				master_size = excluded.master_size,
				mode = excluded.mode,
				updated_at = excluded.updated_at`,
			desktop, layout.MasterSize, layout.Mode.String())
		if err != nil {
			return fmt.Errorf("failed to save layout of desktop %d: %w", desktop, err)
		}
	}

	return tx.Commit()
}

// reset deletes every saved layout.
func (d *DB) reset() error {
	if _, err := d.db.Exec("DELETE FROM desktop_layouts"); err != nil {
		return fmt.Errorf("failed to reset layouts: %w", err)
	}
	return nil
}
