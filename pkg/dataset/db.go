package dataset

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	// SQL dataset source drivers.
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	// DriverSQLite reads from a local sqlite file.
	DriverSQLite = "sqlite"
	// DriverPostgres reads from a Postgres DSN.
	DriverPostgres = "postgres"
)

var (
	errDBNotInitialized = errors.New("database not initialized")
	errBadTableName     = errors.New("invalid table name")

	tableNameRx = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Open opens a read-only dataset connection for the given driver and DSN.
// The caller owns the returned handle.
func Open(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s database: %w", driver, err)
	}
	return db, nil
}

// FromDB reads an entire SQL table into a Table. Column types follow
// the same rules as CSV input: NULL is missing, numeric values become
// float64, everything else is kept as a string.
func FromDB(db *sql.DB, table string) (*Table, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}
	if !tableNameRx.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", errBadTableName, table)
	}

	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %s", table))
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %w", table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}

	cells := make([][]any, len(names))
	scan := make([]any, len(names))
	for rows.Next() {
		for i := range scan {
			scan[i] = new(any)
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("scanning row of %s: %w", table, err)
		}
		for i, v := range scan {
			cells[i] = append(cells[i], convertCell(*(v.(*any))))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating table %s: %w", table, err)
	}

	n := 0
	if len(cells) > 0 {
		n = len(cells[0])
	}
	t := NewTable(n)
	for i, name := range names {
		if err := t.SetColumn(name, cells[i]); err != nil {
			return nil, fmt.Errorf("building column %s: %w", name, err)
		}
	}

	slog.Debug("sql table loaded", "table", table, "rows", t.Len(), "columns", len(names))
	return t, t.validate()
}

// convertCell maps driver-specific scan values onto the table cell types.
func convertCell(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		return x
	case float32:
		return float64(x)
	case int64:
		return float64(x)
	case int:
		return float64(x)
	case bool:
		return x
	case string:
		return ParseValue(x)
	case []byte:
		return ParseValue(string(x))
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
