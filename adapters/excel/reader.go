package excel

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"presence-analyzer/domain/core"
	"presence-analyzer/domain/presence"
	apperrors "presence-analyzer/internal/errors"
	"presence-analyzer/ports"
)

// DataReader reads presence rows from CSV or Excel files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	config   ReaderConfig
	logger   ports.Logger
}

// NewDataReader creates a reader that picks the format from the file extension
func NewDataReader(filePath string, config ReaderConfig, logger ports.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" {
		fileType = "xlsx"
	}
	if config.Comma == 0 {
		config.Comma = ','
	}
	return &DataReader{filePath: filePath, fileType: fileType, config: config, logger: logger}
}

// ReadPresence reads the whole file and groups records by user and date.
// Rows without exactly four fields are skipped silently; rows whose fields
// do not parse are logged and skipped as a whole.
func (r *DataReader) ReadPresence(ctx context.Context) (presence.Table, error) {
	table, stats, err := r.ReadWithStats(ctx)
	if err != nil {
		return nil, err
	}
	r.logger.Info("[DataReader] %s loaded: %d users, %d records (%d rows, %d skipped, %d malformed)",
		r.filePath, len(table), stats.Loaded, stats.Rows, stats.Skipped, stats.Malformed)
	return table, nil
}

// ReadWithStats is ReadPresence plus a summary of how many rows were
// loaded, skipped and rejected
func (r *DataReader) ReadWithStats(ctx context.Context) (presence.Table, ReadStats, error) {
	if _, err := os.Stat(r.filePath); err != nil {
		return nil, ReadStats{}, apperrors.DataSourceError(r.filePath, err)
	}

	startTime := time.Now()
	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		rows, err = r.readCSVRows(ctx)
	}
	if err != nil {
		return nil, ReadStats{}, apperrors.DataSourceError(r.filePath, err)
	}
	r.logger.Debug("[DataReader] %s file read in %.2fms (%d rows)",
		strings.ToUpper(r.fileType), float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	table, stats := r.processRows(rows)
	return table, stats, nil
}

// readExcelRows reads every row of the configured sheet
func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("Excel file has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

// readCSVRows reads CSV records of any field count
func (r *DataReader) readCSVRows(ctx context.Context) ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = r.config.Comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			r.logger.Debug("[DataReader] unreadable CSV line %d: %v", parseErr.Line, err)
			rows = append(rows, nil)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV file: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// processRows commits every well-formed row to a fresh table
func (r *DataReader) processRows(rows [][]string) (presence.Table, ReadStats) {
	table := make(presence.Table)
	stats := ReadStats{Rows: len(rows)}

	for i, row := range rows {
		if len(row) != presenceFieldCount {
			// header, footer or blank line
			stats.Skipped++
			continue
		}

		parsed, err := ParseRow(i+1, row)
		if err != nil {
			stats.Malformed++
			r.logger.Debug("[DataReader] problem with line %d: %v", i+1, err)
			continue
		}

		table.Add(parsed.UserID, parsed.Date, parsed.Record)
		stats.Loaded++
	}

	return table, stats
}

// ParseRow parses the four fields of a presence row. Nothing is returned
// unless every field parses.
func ParseRow(line int, row []string) (PresenceRow, error) {
	if len(row) != presenceFieldCount {
		return PresenceRow{}, core.NewMalformedRowError(line, "row", fmt.Errorf("expected %d fields, got %d", presenceFieldCount, len(row)))
	}

	userID, err := core.ParseUserID(row[0])
	if err != nil {
		return PresenceRow{}, core.NewMalformedRowError(line, "user_id", err)
	}
	date, err := presence.ParseDate(strings.TrimSpace(row[1]))
	if err != nil {
		return PresenceRow{}, core.NewMalformedRowError(line, "date", err)
	}
	start, err := presence.ParseTimeOfDay(strings.TrimSpace(row[2]))
	if err != nil {
		return PresenceRow{}, core.NewMalformedRowError(line, "start", err)
	}
	end, err := presence.ParseTimeOfDay(strings.TrimSpace(row[3]))
	if err != nil {
		return PresenceRow{}, core.NewMalformedRowError(line, "end", err)
	}

	return PresenceRow{
		UserID: userID,
		Date:   date,
		Record: presence.Record{Start: start, End: end},
	}, nil
}
