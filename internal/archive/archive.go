package archive

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/galvictor/assetfetch/internal/category"
	"github.com/galvictor/assetfetch/internal/common/config"
	"github.com/galvictor/assetfetch/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Archiver bundles every downloaded file into one zip and clears the source
// directories afterwards, leaving the archive as the sole remaining copy.
type Archiver struct {
	cfg     *config.ArchiveConfig
	log     *logrus.Logger
	baseDir string
	now     func() time.Time
}

func New(cfg *config.ArchiveConfig, log *logrus.Logger, baseDir string) *Archiver {
	return &Archiver{
		cfg:     cfg,
		log:     log,
		baseDir: baseDir,
		now:     time.Now,
	}
}

var (
	affirmatives = []string{"y", "yes", "s", "sim"}
	negatives    = []string{"n", "no", "nao", "não"}
)

// PromptUser blocks on a yes/no question, repeating it until one of the
// recognized spellings is given. Matching is case-insensitive.
func PromptUser(in io.Reader, out io.Writer) bool {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Archive downloaded files into a zip? [y/n]: ")
		if !scanner.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		for _, token := range affirmatives {
			if answer == token {
				return true
			}
		}
		for _, token := range negatives {
			if answer == token {
				return false
			}
		}
		fmt.Fprintln(out, "Please answer yes or no.")
	}
}

// Create writes a timestamped zip with every file of every non-empty category
// directory under a <categoryDir>/<filename> entry, then fully cleans each
// source directory. When archiving fails no cleanup runs; the partially
// written zip is left behind undefined (known gap).
func (a *Archiver) Create() (string, error) {
	name := fmt.Sprintf("%s_%s.zip", a.cfg.Prefix, a.now().Format("2006-01-02_15-04-05"))
	archivePath := filepath.Join(a.baseDir, name)

	archiveFile, err := os.Create(archivePath)
	if err != nil {
		return "", fmt.Errorf("error creating archive %s: %w", archivePath, err)
	}

	zipWriter := zip.NewWriter(archiveFile)

	addFiles := func() error {
		for _, c := range category.All() {
			dir := filepath.Join(a.baseDir, c.Dir())
			entries, err := os.ReadDir(dir)
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return fmt.Errorf("error reading directory %s: %w", dir, err)
			}

			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				if err := a.addFile(zipWriter, dir, c.Dir(), entry.Name()); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := addFiles(); err != nil {
		zipWriter.Close()
		archiveFile.Close()
		return "", err
	}

	if err := zipWriter.Close(); err != nil {
		archiveFile.Close()
		return "", fmt.Errorf("error finalizing archive: %w", err)
	}
	if err := archiveFile.Close(); err != nil {
		return "", fmt.Errorf("error closing archive: %w", err)
	}

	// Only after a complete archive do the source directories get cleared.
	for _, c := range category.All() {
		dir := filepath.Join(a.baseDir, c.Dir())
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		if err := utils.CleanDir(a.log, dir); err != nil {
			return "", fmt.Errorf("error cleaning directory %s after archiving: %w", dir, err)
		}
	}

	a.log.WithField("archive", archivePath).Info("Archive created")
	return archivePath, nil
}

func (a *Archiver) addFile(zipWriter *zip.Writer, dir, prefix, name string) error {
	srcPath := filepath.Join(dir, name)
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", srcPath, err)
	}
	defer src.Close()

	// Archive-internal paths always use forward slashes.
	w, err := zipWriter.Create(prefix + "/" + name)
	if err != nil {
		return fmt.Errorf("error adding %s to archive: %w", name, err)
	}

	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("error writing %s to archive: %w", name, err)
	}

	a.log.WithFields(logrus.Fields{
		"entry": prefix + "/" + name,
	}).Debug("Added file to archive")

	return nil
}
