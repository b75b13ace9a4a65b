package ncimerge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type compoundRow struct {
	name, response, conc string
}

// buildReport renders a report with header header lines, rows laid out per
// DefaultLayout, then trailer lines padded to the total line count.
func buildReport(header, total int, rows ...compoundRow) string {
	var b strings.Builder
	lines := 0
	for i := 0; i < header; i++ {
		fmt.Fprintf(&b, "Quantitation Report   (QT Reviewed) line %d\n", i)
		lines++
	}
	for i, r := range rows {
		fmt.Fprintf(&b, "%-8s%-20s%-21s%6s %9s\n", fmt.Sprintf("%3d)", i+1), r.name, "  12.345  79", r.response, r.conc)
		lines++
	}
	for ; lines < total; lines++ {
		b.WriteString("\n")
	}
	return b.String()
}

func writeReport(t *testing.T, root, sample, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, sample)
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func intPtr(v int) *int {
	return &v
}
