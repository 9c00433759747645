package utils

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// CleanDir empties folderPath, keeping the directory itself, or creates it
// (with parents) when it does not exist. Safe to call repeatedly.
func CleanDir(log *logrus.Logger, folderPath string) error {
	info, err := os.Stat(folderPath)
	if os.IsNotExist(err) {
		log.WithField("dir", folderPath).Debug("Creating directory")
		return os.MkdirAll(folderPath, 0755)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &os.PathError{Op: "cleandir", Path: folderPath, Err: os.ErrInvalid}
	}

	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		entryPath := filepath.Join(folderPath, entry.Name())

		// Remove file or directory (including its contents if it's a directory)
		if err := os.RemoveAll(entryPath); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"dir":   folderPath,
			"entry": entry.Name(),
		}).Debug("Removed entry")
	}

	return nil
}

// FileSizeMB returns the size of the file in megabytes, 0 on any error.
func FileSizeMB(filePath string) float64 {
	info, err := os.Stat(filePath)
	if err != nil {
		return 0
	}
	return BytesToMB(info.Size())
}

// DirSizeMB returns the combined size of every file under dirPath in
// megabytes, 0 on any error.
func DirSizeMB(dirPath string) float64 {
	var total int64
	err := filepath.Walk(dirPath, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0
	}
	return BytesToMB(total)
}

// BytesToMB converts a byte count to megabytes.
func BytesToMB(bytes int64) float64 {
	return float64(bytes) / (1024 * 1024)
}
