package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver
	"github.com/trinodb/trino-go-client/trino"
)

const (
	DriverPostgres = "postgres"
	DriverTrino    = "trino"
)

//go:embed schema/*.sql
var schemas embed.FS

// Config holds configuration for the SQL store.
type Config struct {
	Driver          string        `koanf:"driver"`
	DSN             string        `koanf:"dsn"`
	ServerURI       string        `koanf:"server_uri"`
	Catalog         string        `koanf:"catalog"`
	Schema          string        `koanf:"schema"`
	TableName       string        `koanf:"table_name"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	Migrate         bool          `koanf:"migrate"`
}

// Database wraps a database/sql pool together with the dialect it speaks.
type Database struct {
	*sql.DB
	Config Config
	logger *slog.Logger
}

// New opens a connection pool for the configured driver, verifies it and
// applies the embedded schema when migrations are enabled.
func New(ctx context.Context, config Config, logger *slog.Logger) (*Database, error) {
	driverName, dsn, err := dataSource(config)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", config.Driver, err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", config.Driver, err)
	}

	database := Wrap(db, config, logger)
	if config.Migrate {
		if err := database.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute schema: %w", err)
		}
	}

	return database, nil
}

// Wrap attaches an already opened pool to a Database.
func Wrap(db *sql.DB, config Config, logger *slog.Logger) *Database {
	if logger == nil {
		logger = slog.Default()
	}
	return &Database{DB: db, Config: config, logger: logger}
}

func dataSource(config Config) (string, string, error) {
	switch config.Driver {
	case DriverPostgres:
		return "pgx", config.DSN, nil
	case DriverTrino:
		trinoConfig := trino.Config{
			ServerURI: config.ServerURI,
			Source:    "swift-codes-registry",
			Catalog:   config.Catalog,
			Schema:    config.Schema,
		}
		dsn, err := trinoConfig.FormatDSN()
		if err != nil {
			return "", "", fmt.Errorf("invalid trino configuration: %w", err)
		}
		return "trino", dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver: %s", config.Driver)
	}
}

// Table returns the table name qualified the way the dialect expects.
func (db *Database) Table() string {
	if db.Config.Driver == DriverTrino {
		return fmt.Sprintf("%s.%s.%s", db.Config.Catalog, db.Config.Schema, db.Config.TableName)
	}
	return db.Config.TableName
}

// SupportsTransactions reports whether BeginTx can be used.
func (db *Database) SupportsTransactions() bool {
	return db.Config.Driver != DriverTrino
}

// Rebind rewrites ? placeholders into the dialect's bind syntax.
func (db *Database) Rebind(query string) string {
	if db.Config.Driver != DriverPostgres {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Migrate applies the embedded schema of the configured driver.
func (db *Database) Migrate(ctx context.Context) error {
	raw, err := schemas.ReadFile("schema/" + db.Config.Driver + ".sql")
	if err != nil {
		return fmt.Errorf("failed to read schema for %s: %w", db.Config.Driver, err)
	}
	replacer := strings.NewReplacer(
		"{{table}}", db.Table(),
		"{{table_name}}", db.Config.TableName,
		"{{catalog}}", db.Config.Catalog,
		"{{schema}}", db.Config.Schema,
	)
	return db.ExecuteSchema(ctx, replacer.Replace(string(raw)))
}

// ExecuteSchema executes each statement of schemaSQL separately. Trino does
// not accept multi-statement execution.
func (db *Database) ExecuteSchema(ctx context.Context, schemaSQL string) error {
	executed := 0
	for _, query := range strings.Split(schemaSQL, ";") {
		query = stripComments(query)
		if query == "" {
			continue
		}

		db.logger.Debug("Executing schema statement", "query", query)
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s, error: %w", query, err)
		}
		executed++
	}

	db.logger.Info("Schema successfully executed", "statements", executed)
	return nil
}

func stripComments(query string) string {
	lines := strings.Split(query, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
