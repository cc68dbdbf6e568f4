package util

import (
	"os"
	"path/filepath"
	"strings"
)

// MediaExtensions is the set of container extensions trimux will consider.
var MediaExtensions = map[string]bool{
	".mkv": true,
	".mp4": true,
	".avi": true,
	".mov": true,
	".wmv": true,
	".m4v": true,
}

// OutputSuffix is inserted between the stem and the extension of the
// reencode artifact written next to the original file.
const OutputSuffix = ".reencoded"

// IsMediaFile checks if the given path is a supported media file.
func IsMediaFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	ext := strings.ToLower(filepath.Ext(path))
	return MediaExtensions[ext]
}

// GetFilename returns the filename from a path.
func GetFilename(path string) string {
	return filepath.Base(path)
}

// GetFileStem returns the filename without extension.
func GetFileStem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}

// EnsureDirectory creates a directory if it doesn't exist.
func EnsureDirectory(path string) error {
	return os.MkdirAll(path, 0755)
}

// DirectoryExists checks if a directory exists.
func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// OutputArtifactPath returns the sibling reencode artifact path for an
// input file: <dir>/<stem>.reencoded<ext>. The original container
// extension is preserved so the muxer writes the same container format.
func OutputArtifactPath(inputPath string) string {
	dir := filepath.Dir(inputPath)
	ext := filepath.Ext(inputPath)
	return filepath.Join(dir, GetFileStem(inputPath)+OutputSuffix+ext)
}

// IsOutputArtifact reports whether a path looks like a reencode artifact
// produced by a previous run.
func IsOutputArtifact(path string) bool {
	return strings.HasSuffix(GetFileStem(path), OutputSuffix)
}

// RemoveIfExists deletes a file if present. Missing files are not an error.
func RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// ReplaceFile atomically replaces dst with src. Both paths must live on
// the same filesystem, which holds here since the artifact is always a
// sibling of the original.
func ReplaceFile(src, dst string) error {
	return os.Rename(src, dst)
}
