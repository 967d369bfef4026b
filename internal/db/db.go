package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mara/innkeep/internal/db/migrations"
	"github.com/mara/innkeep/pkg/models"
)

const defaultDBPath = "~/.local/share/innkeep/innkeep.db"

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
	path string
}

// Options configures database connection behavior
type Options struct {
	// SkipSchemaCheck opens the database without verifying schema exists.
	// Use this for init-db command which creates the schema.
	SkipSchemaCheck bool
}

// New creates a new database connection, verifying the schema is
// initialized and migrating it forward if an older version is found
func New(dbPath string) (*DB, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions creates a new database connection with configurable options
func NewWithOptions(dbPath string, opts Options) (*DB, error) {
	// Expand tilde in path or use default
	if dbPath == "" || dbPath == defaultDBPath {
		// Use XDG_DATA_HOME if set, otherwise fallback to ~/.local/share
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get user home directory: %w", err)
			}
			dataDir = filepath.Join(home, ".local/share")
		}
		dbPath = filepath.Join(dataDir, "innkeep/innkeep.db")
	} else if dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set busy timeout first, before any other operations that might need write locks
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if !opts.SkipSchemaCheck {
		var version int
		if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to check schema version: %w", err)
		}
		if version == 0 {
			conn.Close()
			return nil, fmt.Errorf("database not initialized, run: innkeep init-db")
		}
		if version < migrations.Latest {
			if err := migrations.Migrate(conn); err != nil {
				conn.Close()
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}
		}
	}

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// NewForTesting creates a new database with schema initialized.
// This is a convenience function for tests.
func NewForTesting(dbPath string) (*DB, error) {
	db, err := NewWithOptions(dbPath, Options{SkipSchemaCheck: true})
	if err != nil {
		return nil, err
	}

	if _, err := db.InitSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// InitSchema brings the database to the latest schema version.
// Returns true if the schema was created from scratch, false if a
// schema already existed (it is still migrated forward).
func (db *DB) InitSchema() (bool, error) {
	var version int
	if err := db.conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return false, fmt.Errorf("failed to check schema version: %w", err)
	}

	if err := migrations.Migrate(db.conn); err != nil {
		return false, err
	}

	return version == 0, nil
}

// SchemaVersion reports the database's current schema version
func (db *DB) SchemaVersion() (int, error) {
	var version int
	if err := db.conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

const ticketSelectColumns = `
	id, code, title, description, property, category, assignee, status,
	desired_date, scheduled_at, created_at`

// InsertTicket stores a new ticket and returns its row id
func (db *DB) InsertTicket(t *models.Ticket) (int64, error) {
	result, err := db.conn.Exec(`
		INSERT INTO tickets (code, title, description, property, category,
			assignee, status, desired_date, scheduled_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Code, t.Title, t.Description, t.Property, t.Category,
		t.Assignee, t.Status, t.DesiredDate, t.ScheduledAt, t.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert ticket: %w", err)
	}
	return result.LastInsertId()
}

// ListTickets returns all tickets ordered by desired date then creation.
// Filtering happens in the agenda pipeline, not in SQL, so every view
// works from the same collection.
func (db *DB) ListTickets() ([]*models.Ticket, error) {
	rows, err := db.conn.Query(`
		SELECT ` + ticketSelectColumns + `
		FROM tickets
		ORDER BY desired_date ASC, created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickets: %w", err)
	}
	return tickets, nil
}

// UpdateTicketStatus moves a ticket to a new status
func (db *DB) UpdateTicketStatus(id int64, status string) error {
	result, err := db.conn.Exec("UPDATE tickets SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to update ticket status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("ticket %d not found", id)
	}
	return nil
}

// CountTickets returns the total number of tickets
func (db *DB) CountTickets() (int, error) {
	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM tickets").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return count, nil
}

func scanTicket(scanner interface{ Scan(...any) error }) (*models.Ticket, error) {
	var t models.Ticket
	err := scanner.Scan(
		&t.ID, &t.Code, &t.Title, &t.Description, &t.Property, &t.Category,
		&t.Assignee, &t.Status, &t.DesiredDate, &t.ScheduledAt, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const reservationSelectColumns = `
	id, code, guest_name, property, status, channel, check_in, check_out,
	guests, created_at`

// InsertReservation stores a new reservation and returns its row id
func (db *DB) InsertReservation(r *models.Reservation) (int64, error) {
	result, err := db.conn.Exec(`
		INSERT INTO reservations (code, guest_name, property, status, channel,
			check_in, check_out, guests, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Code, r.GuestName, r.Property, r.Status, r.Channel,
		r.CheckIn, r.CheckOut, r.Guests, r.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert reservation: %w", err)
	}
	return result.LastInsertId()
}

// ListReservations returns all reservations ordered by checkout then creation
func (db *DB) ListReservations() ([]*models.Reservation, error) {
	rows, err := db.conn.Query(`
		SELECT ` + reservationSelectColumns + `
		FROM reservations
		ORDER BY check_out ASC, created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()
	return scanReservationRows(rows)
}

// ReservationsInRange returns reservations whose stay touches the
// half-open day range [from, to). This is the fetch collaborator behind
// the calendar's expanding window: a stay overlaps the range when it
// checks in before the range ends and checks out on or after its start.
func (db *DB) ReservationsInRange(from, to string) ([]*models.Reservation, error) {
	rows, err := db.conn.Query(`
		SELECT `+reservationSelectColumns+`
		FROM reservations
		WHERE check_in IS NOT NULL AND check_out IS NOT NULL
		AND check_in < ? AND check_out >= ?
		ORDER BY check_in ASC, created_at ASC, id ASC`,
		to, from,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations in range: %w", err)
	}
	defer rows.Close()
	return scanReservationRows(rows)
}

// CountReservations returns the total number of reservations
func (db *DB) CountReservations() (int, error) {
	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM reservations").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}
	return count, nil
}

func scanReservationRows(rows *sql.Rows) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	for rows.Next() {
		var r models.Reservation
		err := rows.Scan(
			&r.ID, &r.Code, &r.GuestName, &r.Property, &r.Status, &r.Channel,
			&r.CheckIn, &r.CheckOut, &r.Guests, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reservations: %w", err)
	}
	return reservations, nil
}
