package store

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"linkharvest/pkg/models"
	"linkharvest/pkg/utils"
)

// numericColumns are persisted as native numbers when a value is present.
var numericColumns = map[string]bool{
	"min_years_experience": true,
	"max_years_experience": true,
}

// MergeAndPersist merges the new records into the workbook at path and
// rewrites it from scratch. Existing rows keep priority under
// first-occurrence-wins dedup, so re-running with the same records is a
// no-op. The rewrite is atomic: on failure the prior file is untouched.
// The returned count is the number of new rows that made it into the
// table.
func MergeAndPersist(path string, records []models.PostRecord) (int, error) {
	logger := utils.GetLogger()
	existing := loadExistingRows(path, logger)

	var combined []map[string]string
	seen := make(map[string]struct{})
	added := 0

	appendRow := func(row map[string]string, isNew bool) {
		key := row["post_url"] + "|" + row["post_excerpt"]
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		combined = append(combined, row)
		if isNew {
			added++
		}
	}

	for _, row := range existing {
		appendRow(row, false)
	}
	for _, record := range records {
		appendRow(record.RowMap(), true)
	}

	if err := writeWorkbook(path, combined); err != nil {
		return 0, err
	}

	logger.WithFields(logrus.Fields{
		"path":       path,
		"rows":       len(combined),
		"rows_added": added,
	}).Info("Record table rewritten")

	return added, nil
}

// loadExistingRows reads the persisted table and normalizes every row to
// the expected column set. An absent file yields an empty baseline; so
// does a corrupt one, after a warning.
func loadExistingRows(path string, logger *logrus.Logger) []map[string]string {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		logger.WithError(err).Warn("Existing workbook is unreadable, starting from an empty table")
		return nil
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil || len(rows) == 0 {
		if err != nil {
			logger.WithError(err).Warn("Existing workbook has no readable rows, starting from an empty table")
		}
		return nil
	}

	header := rows[0]
	var out []map[string]string
	for _, cells := range rows[1:] {
		byName := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(cells) {
				byName[name] = cells[i]
			}
		}
		// Missing columns become empty cells.
		row := make(map[string]string, len(models.ExpectedColumns))
		for _, col := range models.ExpectedColumns {
			row[col] = byName[col]
		}
		out = append(out, row)
	}
	return out
}

// writeWorkbook writes the header and rows into a fresh workbook, saved to
// a temp file and renamed over the target so a failed save never leaves a
// partial table.
func writeWorkbook(path string, rows []map[string]string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(models.ExpectedColumns))
	for i, col := range models.ExpectedColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cells := make([]interface{}, len(models.ExpectedColumns))
		for j, col := range models.ExpectedColumns {
			cells[j] = cellValue(col, row[col])
		}
		anchor, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, anchor, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	tmp := path + ".tmp.xlsx"
	if err := f.SaveAs(tmp); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace workbook: %w", err)
	}
	return nil
}

func cellValue(column, value string) interface{} {
	if value != "" && numericColumns[column] {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return value
}
