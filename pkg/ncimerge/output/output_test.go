package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/ncimerge-go/pkg/ncimerge"
	"github.com/ukaji3/ncimerge-go/pkg/ncimerge/models"
)

func testTables() (models.Table, models.Table) {
	compounds := models.Column{Name: models.CompoundColumn, Values: []string{"PBDE-28", "PBDE-47"}}
	responses := models.Table{}.
		WithColumn(compounds).
		WithColumn(models.Column{Name: "sampleA", Values: []string{"4587", "12004"}}).
		WithColumn(models.Column{Name: "sampleB", Values: []string{"4001", "N.D."}})
	concentrations := models.Table{}.
		WithColumn(compounds).
		WithColumn(models.Column{Name: "sampleA", Values: []string{"0.271", "1.044"}}).
		WithColumn(models.Column{Name: "sampleB", Values: []string{"0.250", ""}})
	return responses, concentrations
}

func TestWriteCSV(t *testing.T) {
	responses, _ := testTables()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, responses))

	want := "compound,sampleA,sampleB\nPBDE-28,4587,4001\nPBDE-47,12004,N.D.\n"
	assert.Equal(t, want, buf.String())
}

func TestSaveCSV(t *testing.T) {
	dir := t.TempDir()
	responses, concentrations := testTables()

	paths, err := SaveCSV(dir, responses, concentrations)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "peak_areas.csv"),
		filepath.Join(dir, "concentrations.csv"),
	}, paths)

	data, err := os.ReadFile(filepath.Join(dir, "concentrations.csv"))
	require.NoError(t, err)
	assert.Equal(t, "compound,sampleA,sampleB\nPBDE-28,0.271,0.250\nPBDE-47,1.044,\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temporary files must not remain")
}

func TestSaveCSVMissingDirectory(t *testing.T) {
	responses, concentrations := testTables()

	_, err := SaveCSV(filepath.Join(t.TempDir(), "missing"), responses, concentrations)

	var ioErr *ncimerge.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "create", ioErr.Op)
	assert.True(t, strings.HasSuffix(ioErr.Path, "peak_areas.csv"))
}

func TestSaveCSVDestinationIsDirectory(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, ConcentrationsFile)
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "nested"), 0o755))
	responses, concentrations := testTables()

	_, err := SaveCSV(dir, responses, concentrations)

	var ioErr *ncimerge.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, blocked, ioErr.Path)
	assert.ErrorIs(t, err, errIsDirectory)
	assert.NoFileExists(t, filepath.Join(dir, ResponsesFile))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "staged files must be removed")
	assert.Equal(t, ConcentrationsFile, entries[0].Name())
}

func TestSaveCSVRestoresPreviousOutputOnFailedCommit(t *testing.T) {
	dir := t.TempDir()
	previous := filepath.Join(dir, ResponsesFile)
	require.NoError(t, os.WriteFile(previous, []byte("old\n"), 0o644))
	responses, concentrations := testTables()

	calls := 0
	rename = func(oldpath, newpath string) error {
		calls++
		if filepath.Base(newpath) == ConcentrationsFile {
			return os.ErrPermission
		}
		return os.Rename(oldpath, newpath)
	}
	t.Cleanup(func() { rename = os.Rename })

	_, err := SaveCSV(dir, responses, concentrations)

	require.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, 2, calls)
	got, err := os.ReadFile(previous)
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(got))
	assert.NoFileExists(t, filepath.Join(dir, ConcentrationsFile))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "staged and backup files must be removed")
	assert.Equal(t, ResponsesFile, entries[0].Name())
}

func TestSaveCSVReplacesPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ResponsesFile), []byte("old\n"), 0o644))
	responses, concentrations := testTables()

	_, err := SaveCSV(dir, responses, concentrations)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, ResponsesFile))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got), "compound,sampleA,sampleB\n"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSaveWorkbook(t *testing.T) {
	dir := t.TempDir()
	responses, concentrations := testTables()

	path, err := SaveWorkbook(dir, responses, concentrations)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ncimerge.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"peak_areas", "concentrations"}, f.GetSheetList())

	rows, err := f.GetRows("peak_areas")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"compound", "sampleA", "sampleB"},
		{"PBDE-28", "4587", "4001"},
		{"PBDE-47", "12004", "N.D."},
	}, rows)

	value, err := f.GetCellValue("concentrations", "B2")
	require.NoError(t, err)
	assert.Equal(t, "0.271", value)
}

func TestCoerceNumeric(t *testing.T) {
	responses, _ := testTables()

	coerced := CoerceNumeric(responses)

	assert.Equal(t, [][]string{
		{"PBDE-28", "4587", "4001"},
		{"PBDE-47", "12004", ""},
	}, coerced.Records())
	assert.Equal(t, "N.D.", responses.Columns[2].Values[1], "input must not change")
}

func TestCoerceNumericBlanksNonFinite(t *testing.T) {
	compounds := models.Column{Name: models.CompoundColumn, Values: []string{"a", "b", "c"}}
	tbl := models.Table{}.
		WithColumn(compounds).
		WithColumn(models.Column{Name: "sampleA", Values: []string{"NaN", "Inf", "-Infinity"}})

	coerced := CoerceNumeric(tbl)

	assert.Equal(t, [][]string{{"a", ""}, {"b", ""}, {"c", ""}}, coerced.Records())
}

func TestRender(t *testing.T) {
	responses, _ := testTables()

	out := Render("Extracted peak areas", responses)

	for _, want := range []string{"Extracted peak areas", "compound", "sampleA", "sampleB", "PBDE-47", "12004", "N.D."} {
		assert.Contains(t, out, want)
	}
}
