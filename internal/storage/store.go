// Package storage keeps the pipeline's artifacts on local disk: one
// directory of per-conductor card images per session, zipped into a single
// archive when the batch finishes. The pipeline owns these files end to end;
// nothing else references them except by the path stored on the session.
package storage

import (
	"archive/zip"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

type Store struct {
	baseDir string
}

func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

func (s *Store) sessionDir(sessionID uuid.UUID) string {
	return filepath.Join(s.baseDir, sessionID.String())
}

// ArchivePath is where BuildArchive writes the session zip.
func (s *Store) ArchivePath(sessionID uuid.UUID) string {
	return filepath.Join(s.baseDir, sessionID.String()+".zip")
}

// SaveCarnet writes one rendered card as PNG under the session directory.
func (s *Store) SaveCarnet(sessionID uuid.UUID, filename string, img image.Image) (string, error) {
	dir := s.sessionDir(sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create session directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("failed to save carnet %s: %w", filename, err)
	}
	return path, nil
}

// BuildArchive zips every PNG in the session directory, in name order, and
// returns the archive path and the number of entries.
func (s *Store) BuildArchive(sessionID uuid.UUID) (string, int, error) {
	dir := s.sessionDir(sessionID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read session directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".png") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	archivePath := s.ArchivePath(sessionID)
	out, err := os.Create(archivePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, name := range names {
		src, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			zw.Close()
			return "", 0, fmt.Errorf("failed to open %s: %w", name, err)
		}

		w, err := zw.Create(name)
		if err == nil {
			_, err = io.Copy(w, src)
		}
		src.Close()
		if err != nil {
			zw.Close()
			return "", 0, fmt.Errorf("failed to archive %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return "", 0, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return archivePath, len(names), nil
}

// CleanupSession removes the per-card temp directory. The archive stays;
// its retention is an external concern.
func (s *Store) CleanupSession(sessionID uuid.UUID) error {
	return os.RemoveAll(s.sessionDir(sessionID))
}
