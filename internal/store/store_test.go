package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"linkharvest/pkg/models"
)

func workbookRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	return rows
}

func sampleRecord(url, excerpt string) models.PostRecord {
	return models.PostRecord{
		TimestampText: "2d",
		PostURL:       url,
		PosterName:    "Jane Doe",
		RoleTitle:     "Data Analyst",
		MinYears:      models.Int(0),
		MaxYears:      models.Int(2),
		Skills:        models.SkillList{"SQL"},
		PostExcerpt:   excerpt,
	}
}

func TestMergeAndPersistCreatesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.xlsx")

	added, err := MergeAndPersist(path, []models.PostRecord{
		sampleRecord("https://www.linkedin.com/posts/1", "first"),
		sampleRecord("https://www.linkedin.com/posts/2", "second"),
	})
	require.NoError(t, err)
	require.Equal(t, 2, added)

	rows := workbookRows(t, path)
	require.Len(t, rows, 3)
	require.Equal(t, models.ExpectedColumns, rows[0])
}

func TestMergeAndPersistIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.xlsx")
	records := []models.PostRecord{sampleRecord("https://www.linkedin.com/posts/1", "first")}

	added, err := MergeAndPersist(path, records)
	require.NoError(t, err)
	require.Equal(t, 1, added)

	added, err = MergeAndPersist(path, records)
	require.NoError(t, err)
	require.Equal(t, 0, added)

	rows := workbookRows(t, path)
	require.Len(t, rows, 2)
}

func TestMergeAndPersistKeepsFirstOccurrence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.xlsx")
	original := sampleRecord("https://www.linkedin.com/posts/1", "first")

	_, err := MergeAndPersist(path, []models.PostRecord{original})
	require.NoError(t, err)

	// Same identity, different classification: existing row wins.
	changed := original
	changed.RoleTitle = "Business Analyst"
	added, err := MergeAndPersist(path, []models.PostRecord{changed})
	require.NoError(t, err)
	require.Equal(t, 0, added)

	rows := workbookRows(t, path)
	require.Len(t, rows, 2)
	require.Equal(t, "Data Analyst", rows[1][5])
}

func TestMergeAndPersistAppendsNovelRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.xlsx")

	_, err := MergeAndPersist(path, []models.PostRecord{
		sampleRecord("https://www.linkedin.com/posts/1", "first"),
	})
	require.NoError(t, err)

	added, err := MergeAndPersist(path, []models.PostRecord{
		sampleRecord("https://www.linkedin.com/posts/1", "first"),
		sampleRecord("https://www.linkedin.com/posts/2", "second"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, added)

	rows := workbookRows(t, path)
	require.Len(t, rows, 3)
}

func TestMergeAndPersistSurvivesCorruptWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0o644))

	added, err := MergeAndPersist(path, []models.PostRecord{
		sampleRecord("https://www.linkedin.com/posts/1", "first"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, added)

	rows := workbookRows(t, path)
	require.Len(t, rows, 2)
}

func TestMergeAndPersistNormalizesLegacyColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.xlsx")

	// A hand-edited table: partial header, one extra column.
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"post_url", "post_excerpt", "reviewer_notes"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []interface{}{"https://www.linkedin.com/posts/legacy", "old excerpt", "keep?"}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	added, err := MergeAndPersist(path, []models.PostRecord{
		sampleRecord("https://www.linkedin.com/posts/1", "first"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, added)

	rows := workbookRows(t, path)
	require.Len(t, rows, 3)
	require.Equal(t, models.ExpectedColumns, rows[0])

	// The legacy row survives with its known columns; the unknown column
	// is gone and the missing ones are empty.
	require.Equal(t, "https://www.linkedin.com/posts/legacy", rows[1][1])
	require.Equal(t, "old excerpt", rows[1][12])
}

func TestMergeAndPersistNumericCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.xlsx")

	_, err := MergeAndPersist(path, []models.PostRecord{
		sampleRecord("https://www.linkedin.com/posts/1", "first"),
	})
	require.NoError(t, err)

	rows := workbookRows(t, path)
	require.Equal(t, "0", rows[1][6])
	require.Equal(t, "2", rows[1][7])
}
