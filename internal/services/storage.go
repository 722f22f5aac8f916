package services

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/patirananta462-byte/papersharehub/pkg/apperrors"
)

// StorageService is the upload directory. Every name it accepts is a bare
// file name; anything that could escape the root is refused.
type StorageService interface {
	EnsureUploadDir() error
	GenerateStoredName(originalName string) string
	SaveFile(storedName string, src io.Reader) (*SavedFile, error)
	Open(storedName string) (*os.File, error)
	ResolvePath(storedName string) (string, error)
	DeleteFile(storedName string) error
}

// SavedFile is a file placed by SaveFile. Name differs from the requested
// name when that one was already taken.
type SavedFile struct {
	Name string
	Path string
	Size int64
}

// maxNameAttempts bounds how many numbered variants of a taken name SaveFile
// tries before giving up.
const maxNameAttempts = 100

type storageService struct {
	uploadPath string
	now        func() time.Time
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
		now:        time.Now,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// GenerateStoredName sanitizes originalName and inserts a unix-seconds token
// before the extension: "Past Paper (2023).pdf" -> "Past_Paper_2023_1700000000.pdf".
func (s *storageService) GenerateStoredName(originalName string) string {
	base, ext := splitName(originalName)

	base = sanitizeName(base)
	if base == "" {
		base = "file"
	}
	ext = strings.ToLower(sanitizeName(ext))

	name := fmt.Sprintf("%s_%d", base, s.now().Unix())
	if ext != "" {
		name += "." + ext
	}
	return name
}

// SaveFile streams src into the upload directory under storedName. The bytes
// land in a staging file first and are then linked into place, so an
// existing file is never overwritten and readers never see a partial file.
// A taken name gets a counter before the extension: "a_1700000000_2.pdf".
func (s *storageService) SaveFile(storedName string, src io.Reader) (*SavedFile, error) {
	if _, err := s.ResolvePath(storedName); err != nil {
		return nil, err
	}

	staging := filepath.Join(s.uploadPath, ".upload-"+uuid.New().String()+".part")
	tmp, err := os.OpenFile(staging, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, apperrors.NewFileStoreError("create", storedName, err)
	}
	defer os.Remove(staging)

	written, err := io.Copy(tmp, src)
	if err != nil {
		tmp.Close()
		return nil, apperrors.NewFileStoreError("write", storedName, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, apperrors.NewFileStoreError("write", storedName, err)
	}

	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		name := numberedName(storedName, attempt)
		dst, err := s.ResolvePath(name)
		if err != nil {
			return nil, err
		}

		placed, err := placeFile(staging, dst)
		if err != nil {
			return nil, apperrors.NewFileStoreError("save", name, err)
		}
		if !placed {
			continue
		}

		abs, err := filepath.Abs(dst)
		if err != nil {
			abs = dst
		}
		return &SavedFile{Name: name, Path: abs, Size: written}, nil
	}

	return nil, apperrors.NewFileStoreError("save", storedName, apperrors.ErrFileExists)
}

// placeFile moves staging to dst unless dst exists, reporting whether it did.
func placeFile(staging, dst string) (bool, error) {
	err := os.Link(staging, dst)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}

	// no hard links on this filesystem
	if _, statErr := os.Lstat(dst); statErr == nil {
		return false, nil
	}
	if err := os.Rename(staging, dst); err != nil {
		return false, err
	}
	return true, nil
}

// numberedName returns name for the first attempt and "base_n.ext" after.
func numberedName(name string, n int) string {
	if n <= 1 {
		return name
	}
	if i := strings.LastIndex(name, "."); i > 0 {
		return fmt.Sprintf("%s_%d%s", name[:i], n, name[i:])
	}
	return fmt.Sprintf("%s_%d", name, n)
}

func (s *storageService) Open(storedName string) (*os.File, error) {
	path, err := s.ResolvePath(storedName)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file %q: %w", storedName, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewFileStoreError("open", storedName, err)
	}
	return f, nil
}

// ResolvePath maps a stored name onto the upload directory. Names with path
// separators, parent segments or an absolute form are rejected.
func (s *storageService) ResolvePath(storedName string) (string, error) {
	if !isSafeStoredName(storedName) {
		return "", fmt.Errorf("%q: %w", storedName, apperrors.ErrUnsafeName)
	}

	root, err := filepath.Abs(s.uploadPath)
	if err != nil {
		return "", apperrors.NewFileStoreError("resolve", storedName, err)
	}
	path := filepath.Join(root, storedName)
	if filepath.Dir(path) != root {
		return "", fmt.Errorf("%q: %w", storedName, apperrors.ErrUnsafeName)
	}
	return path, nil
}

func (s *storageService) DeleteFile(storedName string) error {
	filePath, err := s.ResolvePath(storedName)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil {
		return apperrors.NewFileStoreError("delete", storedName, err)
	}
	return nil
}

func isSafeStoredName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`+"\x00") || strings.Contains(name, "..") {
		return false
	}
	if filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return false
	}
	return true
}

// splitName drops any client-side directory part and splits at the last dot.
func splitName(name string) (string, string) {
	name = strings.ReplaceAll(name, `\`, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return name, ""
}

// sanitizeName keeps ASCII letters, digits, '-', '_' and '.', turns runs of
// whitespace into a single '_' and trims leading and trailing dots and
// underscores.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, field := range strings.Fields(name) {
		var part strings.Builder
		for _, r := range field {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
				part.WriteRune(r)
			}
		}
		if part.Len() == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('_')
		}
		b.WriteString(part.String())
	}

	out := strings.Trim(b.String(), "._")
	for strings.Contains(out, "..") {
		out = strings.ReplaceAll(out, "..", ".")
	}
	return out
}

// Extension returns the lower-cased text after the last dot of name, or ""
// when there is none.
func Extension(name string) string {
	_, ext := splitName(name)
	return strings.ToLower(ext)
}
