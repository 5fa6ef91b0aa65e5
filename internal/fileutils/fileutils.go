// Package fileutils provides the file operations used by the order writer.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string, perm os.FileMode) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, perm); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// WriteFile writes data to a file, truncating an existing file, and creates
// missing parent directories with dirPerm.
func WriteFile(filePath string, data []byte, perm, dirPerm os.FileMode) error {
	dir := filepath.Dir(filePath)
	if err := EnsureDirectoryExists(dir, dirPerm); err != nil {
		return err
	}

	// #nosec G306 -- order files are read by the downstream business system
	if err := os.WriteFile(filePath, data, perm); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// ListFilesWithPrefix returns the names (not paths) of the regular files in
// dirPath whose name starts with prefix, sorted. A missing directory yields
// an empty list.
func ListFilesWithPrefix(dirPath, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

// HasExtension reports whether filePath ends with ext, ignoring case.
func HasExtension(filePath, ext string) bool {
	return strings.EqualFold(filepath.Ext(filePath), ext)
}
