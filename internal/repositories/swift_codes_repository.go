package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zdziszkee/swift-codes-registry/internal/database"
	"github.com/zdziszkee/swift-codes-registry/internal/models"
)

var (
	ErrNotFound  = errors.New("swift code not found")
	ErrDuplicate = errors.New("swift code already exists")
)

// uniqueViolation is the SQLSTATE postgres reports for a unique index conflict.
const uniqueViolation = "23505"

const batchSize = 100

const columns = "id, swift_code, bank_name, address, country_iso2, country_name, is_headquarter, is_deleted, headquarter_id, created_at, updated_at"

// SwiftRepository defines the data operations on swift code records. Every
// read filters soft-deleted rows unless its name says otherwise.
type SwiftRepository interface {
	GetByCode(ctx context.Context, code string) (*models.SwiftCode, error)
	GetAnyByCode(ctx context.Context, code string) (*models.SwiftCode, error)
	GetBranches(ctx context.Context, headquarterID uuid.UUID) ([]models.SwiftCode, error)
	GetByCountry(ctx context.Context, countryISO2 string) ([]models.SwiftCode, error)
	Create(ctx context.Context, record *models.SwiftCode) error
	CreateBatch(ctx context.Context, records []*models.SwiftCode) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
	WithinTx(ctx context.Context, fn func(repo SwiftRepository) error) error
}

// executor is satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLSwiftRepository implements SwiftRepository over database/sql for both
// the postgres and trino dialects.
type SQLSwiftRepository struct {
	db     *database.Database
	exec   executor
	logger *slog.Logger
	now    func() time.Time
}

// NewSQLSwiftRepository creates a new repository instance
func NewSQLSwiftRepository(db *database.Database, logger *slog.Logger) *SQLSwiftRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLSwiftRepository{
		db:     db,
		exec:   db.DB,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithinTx runs fn with a repository bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise. Trino has
// no transactions, so fn runs directly against the pool there.
func (r *SQLSwiftRepository) WithinTx(ctx context.Context, fn func(repo SwiftRepository) error) error {
	if _, ok := r.exec.(*sql.Tx); ok {
		return fn(r)
	}
	if !r.db.SupportsTransactions() {
		r.logger.Debug("Driver has no transactions, running unit of work without one", "driver", r.db.Config.Driver)
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s begin transaction failed: %w", r.dialect(), err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	bound := &SQLSwiftRepository{db: r.db, exec: tx, logger: r.logger, now: r.now}
	if err := fn(bound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s commit failed: %w", r.dialect(), r.mapError(err))
	}
	return nil
}

// GetByCode retrieves a non-deleted record by exact code
func (r *SQLSwiftRepository) GetByCode(ctx context.Context, code string) (*models.SwiftCode, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE swift_code = ? AND is_deleted = false", columns, r.db.Table())
	return r.queryOne(ctx, query, code)
}

// GetAnyByCode retrieves a record by exact code, soft-deleted ones included.
// An active record wins over deleted ones, then the most recent.
func (r *SQLSwiftRepository) GetAnyByCode(ctx context.Context, code string) (*models.SwiftCode, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE swift_code = ? ORDER BY is_deleted ASC, created_at DESC LIMIT 1", columns, r.db.Table())
	return r.queryOne(ctx, query, code)
}

// GetBranches retrieves the non-deleted branches pointing at a headquarters
func (r *SQLSwiftRepository) GetBranches(ctx context.Context, headquarterID uuid.UUID) ([]models.SwiftCode, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE headquarter_id = ? AND is_deleted = false ORDER BY swift_code", columns, r.db.Table())
	return r.queryMany(ctx, query, headquarterID.String())
}

// GetByCountry retrieves all non-deleted records of a country
func (r *SQLSwiftRepository) GetByCountry(ctx context.Context, countryISO2 string) ([]models.SwiftCode, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE country_iso2 = ? AND is_deleted = false ORDER BY swift_code", columns, r.db.Table())
	return r.queryMany(ctx, query, countryISO2)
}

// Create inserts a single record. A unique index conflict is reported as
// ErrDuplicate.
func (r *SQLSwiftRepository) Create(ctx context.Context, record *models.SwiftCode) error {
	r.stamp(record)

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", r.db.Table(), columns)
	if _, err := r.exec.ExecContext(ctx, r.db.Rebind(query), insertArgs(record)...); err != nil {
		return fmt.Errorf("%s insert failed: %w", r.dialect(), r.mapError(err))
	}
	return nil
}

// CreateBatch inserts records with multi-row INSERT statements of at most
// batchSize rows each.
func (r *SQLSwiftRepository) CreateBatch(ctx context.Context, records []*models.SwiftCode) error {
	if len(records) == 0 {
		return nil
	}

	inserted := 0
	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))
		batch := records[i:end]

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("INSERT INTO %s (%s) VALUES ", r.db.Table(), columns))
		placeholders := make([]string, 0, len(batch))
		args := make([]any, 0, len(batch)*11)
		for _, record := range batch {
			r.stamp(record)
			placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args, insertArgs(record)...)
		}
		sb.WriteString(strings.Join(placeholders, ","))

		start := time.Now()
		result, err := r.exec.ExecContext(ctx, r.db.Rebind(sb.String()), args...)
		if err != nil {
			return fmt.Errorf("%s batch insert failed for batch %d-%d: %w", r.dialect(), i+1, end, r.mapError(err))
		}
		affected, _ := result.RowsAffected()
		inserted += int(affected)
		r.logger.Debug("Inserted swift code batch", "rows", len(batch), "elapsed", time.Since(start))
	}

	r.logger.Info("Batch insert finished", "inserted", inserted, "requested", len(records))
	return nil
}

// SoftDelete flags a non-deleted record as deleted.
func (r *SQLSwiftRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf("UPDATE %s SET is_deleted = true, updated_at = ? WHERE id = ? AND is_deleted = false", r.db.Table())
	result, err := r.exec.ExecContext(ctx, r.db.Rebind(query), r.now(), id.String())
	if err != nil {
		return fmt.Errorf("%s soft delete failed: %w", r.dialect(), err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s soft delete failed: %w", r.dialect(), err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of non-deleted records.
func (r *SQLSwiftRepository) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE is_deleted = false", r.db.Table())
	var count int
	if err := r.exec.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s count failed: %w", r.dialect(), err)
	}
	return count, nil
}

func (r *SQLSwiftRepository) queryOne(ctx context.Context, query string, args ...any) (*models.SwiftCode, error) {
	row := r.exec.QueryRowContext(ctx, r.db.Rebind(query), args...)
	record, err := scanSwiftCode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s query failed: %w", r.dialect(), err)
	}
	return record, nil
}

func (r *SQLSwiftRepository) queryMany(ctx context.Context, query string, args ...any) ([]models.SwiftCode, error) {
	rows, err := r.exec.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("%s query failed: %w", r.dialect(), err)
	}
	defer rows.Close()

	records := []models.SwiftCode{}
	for rows.Next() {
		record, err := scanSwiftCode(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan failed: %w", r.dialect(), err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s query failed: %w", r.dialect(), err)
	}
	return records, nil
}

func (r *SQLSwiftRepository) stamp(record *models.SwiftCode) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	now := r.now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
}

func (r *SQLSwiftRepository) dialect() string {
	return r.db.Config.Driver
}

func (r *SQLSwiftRepository) mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

func insertArgs(record *models.SwiftCode) []any {
	var headquarterID any
	if record.HeadquarterID != nil {
		headquarterID = record.HeadquarterID.String()
	}
	return []any{
		record.ID.String(),
		record.SwiftCode,
		record.BankName,
		record.Address,
		record.CountryISO2,
		record.CountryName,
		record.IsHeadquarter,
		record.IsDeleted,
		headquarterID,
		record.CreatedAt,
		record.UpdatedAt,
	}
}

func scanSwiftCode(scanner interface {
	Scan(dest ...any) error
}) (*models.SwiftCode, error) {
	var (
		record        models.SwiftCode
		headquarterID uuid.NullUUID
	)

	err := scanner.Scan(
		&record.ID,
		&record.SwiftCode,
		&record.BankName,
		&record.Address,
		&record.CountryISO2,
		&record.CountryName,
		&record.IsHeadquarter,
		&record.IsDeleted,
		&headquarterID,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if headquarterID.Valid {
		id := headquarterID.UUID
		record.HeadquarterID = &id
	}

	return &record, nil
}
