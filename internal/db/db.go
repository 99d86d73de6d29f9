package db

import (
	"context"
	"fmt"
	"time"

	"github.com/ChaseHampton/goobituaries/internal/config"
	"github.com/ChaseHampton/goobituaries/internal/obituary"
	"github.com/ChaseHampton/goobituaries/internal/source"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLServer = "sqlserver"
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
)

// TimestampLayout is fixed width so stored timestamps sort as text.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Store is the relational remote store: obituaries in necrologi and
// condolences in condoglianze.
type Store struct {
	db     *sqlx.DB
	driver string
}

// Open prepares a connection pool without contacting the server; Init does
// that.
func Open(cfg *config.DbConfig) (*Store, error) {
	connStr, err := ConnString(cfg)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open(cfg.Driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	if cfg.Driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	return NewStore(db, cfg.Driver), nil
}

func NewStore(db *sqlx.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

func ConnString(cfg *config.DbConfig) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	switch cfg.Driver {
	case DriverSQLServer:
		return fmt.Sprintf("server=%s;port=%d;database=%s;user id=%s;password=%s;encrypt=true;trustservercertificate=true",
			cfg.Host, cfg.Port, cfg.DBName, cfg.User, cfg.Password), nil
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName), nil
	case DriverSQLite:
		return cfg.DBName, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Init checks the connection and creates missing tables.
func (s *Store) Init(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	for _, stmt := range schemaFor(s.driver) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

func (s *Store) FetchObituaries(ctx context.Context) ([]source.RemoteRecord, error) {
	var rows []ObituaryDto
	query := s.db.Rebind(`SELECT id, name, birth_date, death_date, age, city, description, funeral_date,
		funeral_location, marital_status, spouse_name, photo_url, photo_file_name, photo_file_size,
		photo_file_type, manifesto_url, manifesto_file_name, manifesto_file_size, manifesto_file_type
		FROM necrologi WHERE status = ? ORDER BY created_at DESC, id DESC`)
	if err := s.db.SelectContext(ctx, &rows, query, "active"); err != nil {
		return nil, fmt.Errorf("failed to select obituaries: %w", err)
	}
	recs := make([]source.RemoteRecord, len(rows))
	for i, row := range rows {
		recs[i] = row.Record()
	}
	return recs, nil
}

func (s *Store) AppendCondolence(ctx context.Context, obituaryID string, in obituary.CondolenceInput) (string, error) {
	dto := NewCondolenceDto(uuid.NewString(), obituaryID, in, time.Now())
	query := s.db.Rebind(`INSERT INTO condoglianze (id, necrologio_id, nome, email, messaggio, data_invio, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query, dto.Id, dto.NecrologioId, dto.Nome, dto.Email, dto.Messaggio, dto.DataInvio, "active")
	if err != nil {
		return "", fmt.Errorf("failed to insert condolence: %w", err)
	}
	return dto.Id, nil
}

func (s *Store) FetchCondolences(ctx context.Context, obituaryID string) ([]obituary.Condolence, error) {
	var rows []CondolenceDto
	query := s.db.Rebind(`SELECT id, necrologio_id, nome, email, messaggio, data_invio
		FROM condoglianze WHERE necrologio_id = ? AND status = ? ORDER BY data_invio DESC`)
	if err := s.db.SelectContext(ctx, &rows, query, obituaryID, "active"); err != nil {
		return nil, fmt.Errorf("failed to select condolences: %w", err)
	}
	out := make([]obituary.Condolence, len(rows))
	for i, row := range rows {
		out[i] = row.Condolence()
	}
	return out, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
