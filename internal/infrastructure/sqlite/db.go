package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// migrations esquema de la caché local. Una tabla lógica por instalación
// (la BD entera pertenece a un solo tenant tras el login).
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS medicines (
		id              TEXT PRIMARY KEY,
		hospital_id     TEXT NOT NULL,
		name            TEXT NOT NULL,
		batch_number    TEXT NOT NULL,
		expiry_date     TEXT NOT NULL DEFAULT '',
		quantity        INTEGER NOT NULL DEFAULT 0,
		purchase_price  TEXT NOT NULL DEFAULT '0',
		selling_price   TEXT NOT NULL DEFAULT '0',
		wholesaler_name TEXT NOT NULL DEFAULT '',
		purchase_date   TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE INDEX IF NOT EXISTS idx_medicines_name ON medicines(name);`,
	`CREATE INDEX IF NOT EXISTS idx_medicines_batch ON medicines(batch_number);`,
	`CREATE INDEX IF NOT EXISTS idx_medicines_wholesaler ON medicines(wholesaler_name, purchase_date);`,
}

// Open abre (o crea) la base SQLite embebida en la ruta indicada y aplica el esquema.
// Una sola conexión: SQLite serializa escrituras y el proceso es el único cliente.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir base local: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrar esquema local: %w", err)
		}
	}
	return db, nil
}
