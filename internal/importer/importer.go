package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/phrazzld/lexicon-srs/internal/platform/logger"
)

// DefaultBatchSize is the number of IDs registered per call.
const DefaultBatchSize = 500

// ErrUnsupportedFormat is returned for files that are neither .xlsx nor .csv.
var ErrUnsupportedFormat = errors.New("unsupported import file format")

// Registrar creates words for identifiers. study.Service satisfies it.
type Registrar interface {
	RegisterWords(ctx context.Context, ids []string) ([]*domain.Word, error)
}

// Config selects where identifiers are read from.
type Config struct {
	// Column is the spreadsheet column letter holding the identifier. For CSV
	// files the same letter selects the field (A is the first field).
	Column string
	// SheetName is the workbook sheet to read. Empty means the first sheet.
	SheetName string
	// StartRow is the 1-based row to start reading from.
	StartRow  int
	BatchSize int
}

// DefaultConfig reads column A of the first sheet, skipping one header row.
func DefaultConfig() Config {
	return Config{
		Column:    "A",
		StartRow:  2,
		BatchSize: DefaultBatchSize,
	}
}

// Result summarizes an import.
type Result struct {
	Rows       int // rows read at or after StartRow
	Blank      int // rows with an empty identifier cell
	Duplicates int // identifiers repeated within the file
	Created    int // words newly registered
	Existing   int // identifiers that were already registered
}

// Importer reads identifiers from files and registers them.
type Importer struct {
	registrar Registrar
	cfg       Config
	logger    *slog.Logger
}

// New creates an Importer. Zero config fields take their defaults.
func New(registrar Registrar, cfg Config, logger *slog.Logger) *Importer {
	if registrar == nil {
		panic("registrar cannot be nil")
	}
	def := DefaultConfig()
	if cfg.Column == "" {
		cfg.Column = def.Column
	}
	if cfg.StartRow <= 0 {
		cfg.StartRow = def.StartRow
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		registrar: registrar,
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "importer")),
	}
}

// ImportFile reads identifiers from path and registers them in batches.
// Registration is idempotent, so an interrupted import can be rerun.
func (im *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, im.logger)

	column, err := excelize.ColumnNameToNumber(im.cfg.Column)
	if err != nil {
		return nil, fmt.Errorf("invalid import column %q: %w", im.cfg.Column, err)
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(path, im.cfg.SheetName)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	result := &Result{}
	ids := collectIDs(rows, column-1, im.cfg.StartRow, result)

	for start := 0; start < len(ids); start += im.cfg.BatchSize {
		end := min(start+im.cfg.BatchSize, len(ids))
		batch := ids[start:end]

		created, err := im.registrar.RegisterWords(ctx, batch)
		if err != nil {
			return result, fmt.Errorf("failed to register rows %d-%d: %w", start+1, end, err)
		}
		result.Created += len(created)
		result.Existing += len(batch) - len(created)
	}

	log.Info("word import finished",
		slog.Int("rows", result.Rows),
		slog.Int("created", result.Created),
		slog.Int("existing", result.Existing),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("blank", result.Blank))

	return result, nil
}

// collectIDs extracts the trimmed, de-duplicated identifiers of one column.
func collectIDs(rows [][]string, colIdx, startRow int, result *Result) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0, len(rows))

	for i, row := range rows {
		if i < startRow-1 {
			continue
		}
		result.Rows++

		var id string
		if colIdx < len(row) {
			id = strings.TrimSpace(row[colIdx])
		}
		if id == "" {
			result.Blank++
			continue
		}
		if _, dup := seen[id]; dup {
			result.Duplicates++
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
