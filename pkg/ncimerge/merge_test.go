package ncimerge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeScenario(t *testing.T) {
	root := t.TempDir()
	writeReport(t, root, "sampleA", "a-all.txt", buildReport(19, 30,
		compoundRow{"PBDE-28", "4587", "0.271"},
		compoundRow{"PBDE-47", "12004", "1.044"},
		compoundRow{"PBDE-66", "311", "0.020"},
		compoundRow{"PBDE-100", "2210", "0.118"},
		compoundRow{"PBDE-99", "803", "0.054"},
		compoundRow{"PBDE-154", "77", "0.004"},
	))
	writeReport(t, root, "sampleB", "a-all.txt", buildReport(19, 30,
		compoundRow{"PBDE-28", "4001", "0.250"},
		compoundRow{"PBDE-47", "10010", "0.998"},
		compoundRow{"PBDE-66", "290", "0.019"},
		compoundRow{"PBDE-100", "2011", "0.101"},
		compoundRow{"PBDE-99", "790", "0.050"},
		compoundRow{"PBDE-154", "70", "0.003"},
	))

	opts := DefaultOptions(root)
	opts.Layout.RowCount = 5

	result, err := Merge(opts)
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, []string{"compound", "sampleA", "sampleB"}, result.Responses.Header())
	assert.Equal(t, []string{"compound", "sampleA", "sampleB"}, result.Concentrations.Header())
	assert.Equal(t, 5, result.Responses.Height())
	assert.Equal(t, [][]string{
		{"PBDE-28", "4587", "4001"},
		{"PBDE-47", "12004", "10010"},
		{"PBDE-66", "311", "290"},
		{"PBDE-100", "2210", "2011"},
		{"PBDE-99", "803", "790"},
	}, result.Responses.Records())
	assert.Equal(t, []string{"0.271", "0.250"}, result.Concentrations.Records()[0][1:])
}

func TestMergeSuffixMatch(t *testing.T) {
	root := t.TempDir()
	writeReport(t, root, "sampleA", "a-all.txt", buildReport(19, 30, threeCompounds...))
	writeReport(t, root, "sampleB", "extra-a-all.txt", buildReport(19, 30, threeCompounds...))

	opts := DefaultOptions(root)
	opts.Layout.RowCount = 3

	result, err := Merge(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"compound", "sampleA", "sampleB"}, result.Responses.Header())
}

func TestMergeNoFiles(t *testing.T) {
	result, err := Merge(DefaultOptions(t.TempDir()))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestMergeFileWithoutSampleDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a-all.txt"), []byte(buildReport(19, 30, threeCompounds...)), 0644))
	t.Chdir(root)

	result, err := Merge(DefaultOptions("."))
	assert.Nil(t, result)

	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestMergeRejectsInvalidOptions(t *testing.T) {
	opts := DefaultOptions(t.TempDir())
	opts.Layout.Response.Width = 0

	_, err := Merge(opts)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Layout.Response.Width", cfgErr.Field)
}
