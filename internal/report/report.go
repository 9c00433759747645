package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/galvictor/assetfetch/internal/category"
	"github.com/galvictor/assetfetch/pkg/models"
	"github.com/galvictor/assetfetch/pkg/utils"
)

// FormatSize renders a megabyte value for display, switching to gigabytes
// from 1024 MB upward, always with two decimals.
func FormatSize(sizeMB float64) string {
	if sizeMB >= 1024 {
		return fmt.Sprintf("%.2f GB", sizeMB/1024)
	}
	return fmt.Sprintf("%.2f MB", sizeMB)
}

// Reporter renders the end-of-run summary and file listing.
type Reporter struct {
	out     io.Writer
	baseDir string
}

func New(out io.Writer, baseDir string) *Reporter {
	return &Reporter{out: out, baseDir: baseDir}
}

// Summary prints per-category counts and sizes, the error count, the total
// processed and the combined size.
func (r *Reporter) Summary(totals *models.RunTotals) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "DOWNLOAD SUMMARY")
	fmt.Fprintln(r.out, "================")
	for _, c := range category.All() {
		ct := totals.PerCategory[c]
		fmt.Fprintf(r.out, "%-8s %d (%s)\n", c.String()+":", ct.Count, FormatSize(utils.BytesToMB(ct.Bytes)))
	}
	fmt.Fprintf(r.out, "errors:  %d\n", totals.Errors)
	fmt.Fprintf(r.out, "total:   %d\n", totals.TotalURLs)
	fmt.Fprintf(r.out, "\nTotal size on disk: %s\n", FormatSize(utils.BytesToMB(totals.TotalBytes())))
}

// ListFiles prints every downloaded file grouped by category, sorted by name,
// each with its own formatted size. Empty or missing directories are skipped.
func (r *Reporter) ListFiles() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "DOWNLOADED FILES")
	fmt.Fprintln(r.out, "================")
	for _, c := range category.All() {
		dir := filepath.Join(r.baseDir, c.Dir())
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) == 0 {
			continue
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if !e.IsDir() {
				names = append(names, e.Name())
			}
		}
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)

		fmt.Fprintf(r.out, "\n%s (%d):\n", c.Dir(), len(names))
		for _, name := range names {
			size := utils.FileSizeMB(filepath.Join(dir, name))
			fmt.Fprintf(r.out, "  - %s (%s)\n", name, FormatSize(size))
		}
	}
}
