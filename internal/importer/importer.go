package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zdziszkee/swift-codes-registry/internal/associations"
	"github.com/zdziszkee/swift-codes-registry/internal/metrics"
	"github.com/zdziszkee/swift-codes-registry/internal/models"
	"github.com/zdziszkee/swift-codes-registry/internal/parsers"
	"github.com/zdziszkee/swift-codes-registry/internal/readers"
	"github.com/zdziszkee/swift-codes-registry/internal/readers/csv"
	"github.com/zdziszkee/swift-codes-registry/internal/readers/xlsx"
	"github.com/zdziszkee/swift-codes-registry/internal/repositories"
)

// Result counts what happened to the rows of one import.
type Result struct {
	Read     int
	Parsed   int
	Linked   int
	Inserted int
}

// Importer loads a SWIFT code export into the store in one unit of work.
type Importer struct {
	repo    repositories.SwiftRepository
	parser  parsers.SwiftCodesParser
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates an Importer. m may be nil when metrics are disabled.
func New(repo repositories.SwiftRepository, parser parsers.SwiftCodesParser, m *metrics.Metrics, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		repo:    repo,
		parser:  parser,
		metrics: m,
		logger:  logger,
	}
}

// ReaderFor picks a reader by file extension.
func ReaderFor(path string) (readers.SwiftCodesReader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &csv.CSVSwiftCodesReader{}, nil
	case ".xlsx":
		return &xlsx.XLSXSwiftCodesReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}

// ImportFile reads path and imports its rows.
func (i *Importer) ImportFile(ctx context.Context, path string) (Result, error) {
	reader, err := ReaderFor(path)
	if err != nil {
		return Result{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	return i.Import(ctx, reader, file)
}

// AutoLoad imports path only when the store holds no active records. The
// boolean reports whether an import ran.
func (i *Importer) AutoLoad(ctx context.Context, path string) (Result, bool, error) {
	count, err := i.repo.Count(ctx)
	if err != nil {
		return Result{}, false, fmt.Errorf("count existing swift codes: %w", err)
	}
	if count > 0 {
		i.logger.Info("Skipping auto-load, store is not empty", slog.Int("existing", count))
		return Result{}, false, nil
	}

	result, err := i.ImportFile(ctx, path)
	return result, err == nil, err
}

// Import reads, parses and links the rows of source, then inserts them in a
// single transaction.
func (i *Importer) Import(ctx context.Context, reader readers.SwiftCodesReader, source io.Reader) (Result, error) {
	start := time.Now()

	rows, err := reader.ReadSwiftCodes(source)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read swift codes: %w", err)
	}
	result := Result{Read: len(rows)}

	records := i.parser.ParseSwiftCodes(rows)
	result.Parsed = len(records)
	result.Linked = associations.LinkBatch(records)

	if len(records) > 0 {
		err = i.repo.WithinTx(ctx, func(repo repositories.SwiftRepository) error {
			return repo.CreateBatch(ctx, headquartersFirst(records))
		})
		if err != nil {
			return result, fmt.Errorf("failed to store swift codes: %w", err)
		}
	}
	result.Inserted = len(records)

	if i.metrics != nil {
		i.metrics.AddImported(result.Inserted)
	}

	i.logger.Info("Imported swift codes",
		slog.Int("read", result.Read),
		slog.Int("parsed", result.Parsed),
		slog.Int("linked", result.Linked),
		slog.Int("inserted", result.Inserted),
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

// headquartersFirst orders records so that every headquarter_id target is
// inserted before the branches referencing it. Relative order is kept.
func headquartersFirst(records []*models.SwiftCode) []*models.SwiftCode {
	ordered := make([]*models.SwiftCode, 0, len(records))
	for _, record := range records {
		if record.IsHeadquarter {
			ordered = append(ordered, record)
		}
	}
	for _, record := range records {
		if !record.IsHeadquarter {
			ordered = append(ordered, record)
		}
	}
	return ordered
}
