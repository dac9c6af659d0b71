// Package upload stores user-submitted files under
// <base>/<feature>/<ownerId>/<filename> and hands back the public CDN URL
// bound into procedure parameters.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileSize bounds a single uploaded file.
const MaxFileSize = 10 << 20

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".pdf": true,
}

var (
	ErrBadFilename = errors.New("upload: unsafe filename")
	ErrBadExt      = errors.New("upload: file type not allowed")
)

// Store writes files to a local base path and builds URLs against the
// CDN base the templates use.
type Store struct {
	basePath string
	cdnBase  string
}

func NewStore(basePath, cdnBase string) *Store {
	return &Store{basePath: basePath, cdnBase: strings.TrimRight(cdnBase, "/")}
}

// Save streams r into <feature>/<ownerId>/<filename> and returns the
// public URL of the stored file.
func (s *Store) Save(feature string, ownerID int64, filename string, r io.Reader) (string, error) {
	name, err := safeFilename(filename)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(s.basePath, feature, fmt.Sprint(ownerID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("upload: mkdir: %w", err)
	}
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("upload: create: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, io.LimitReader(r, MaxFileSize)); err != nil {
		return "", fmt.Errorf("upload: write: %w", err)
	}
	return s.url(feature, ownerID, name), nil
}

// Delete removes one stored file. A missing file is not an error.
func (s *Store) Delete(feature string, ownerID int64, filename string) error {
	name, err := safeFilename(filename)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.basePath, feature, fmt.Sprint(ownerID), name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("upload: delete: %w", err)
	}
	return nil
}

// List returns the filenames stored for one owner under a feature.
func (s *Store) List(feature string, ownerID int64) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.basePath, feature, fmt.Sprint(ownerID)))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("upload: list: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Move relocates every file of an owner from one feature to another, used
// when a forum draft is published and its images leave the draft area.
func (s *Store) Move(fromFeature, toFeature string, ownerID int64) ([]string, error) {
	names, err := s.List(fromFeature, ownerID)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}
	dstDir := filepath.Join(s.basePath, toFeature, fmt.Sprint(ownerID))
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: mkdir: %w", err)
	}
	urls := make([]string, 0, len(names))
	srcDir := filepath.Join(s.basePath, fromFeature, fmt.Sprint(ownerID))
	for _, name := range names {
		if err := os.Rename(filepath.Join(srcDir, name), filepath.Join(dstDir, name)); err != nil {
			return nil, fmt.Errorf("upload: move %s: %w", name, err)
		}
		urls = append(urls, s.url(toFeature, ownerID, name))
	}
	return urls, nil
}

func (s *Store) url(feature string, ownerID int64, name string) string {
	return fmt.Sprintf("%s/%s/%d/%s", s.cdnBase, feature, ownerID, name)
}

// safeFilename rejects traversal and unexpected extensions, keeping only
// the base name of whatever the client sent.
func safeFilename(filename string) (string, error) {
	name := filepath.Base(filepath.Clean(filename))
	if name == "." || name == ".." || name == "/" || name == "" {
		return "", ErrBadFilename
	}
	if strings.ContainsAny(name, "\x00") {
		return "", ErrBadFilename
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExt[ext] {
		return "", ErrBadExt
	}
	return name, nil
}
