package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Attachments live under <data dir>/Files/<db-basename>/<id>_<project-name>/,
// one folder per project, and are referenced from marketing/contract
// rows by a path relative to the data dir (absolute paths are also
// accepted when resolving).

func sanitizeComponent(name, fallback string) string {
	s := strings.TrimSpace(name)
	for _, c := range `\/:*?"<>|` {
		s = strings.ReplaceAll(s, string(c), "_")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}

func (s *Store) dbBasename() string {
	base := filepath.Base(s.path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	var b strings.Builder
	for _, c := range base {
		if c == '.' || c == '_' || c == '-' || c == ' ' ||
			(c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			b.WriteRune(c)
		} else {
			b.WriteRune('_')
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "db"
	}
	return out
}

// ProjectFilesDir returns (and creates) the attachment folder for one
// project, as an absolute path.
func (s *Store) ProjectFilesDir(projectID int64) (string, error) {
	p, err := s.GetProject(projectID)
	if err != nil {
		return "", err
	}
	name := fmt.Sprint(projectID)
	if p != nil {
		name = p.Name
	}
	folder := fmt.Sprintf("%d_%s", projectID, sanitizeComponent(name, "project"))
	path := filepath.Join(s.DataDir(), "Files", s.dbBasename(), folder)
	if err := os.MkdirAll(path, 0o750); err != nil {
		return "", storageErr("creating project files dir", err)
	}
	return filepath.Abs(path)
}

// CopyAttachment copies sourcePath into the project's attachment folder
// and returns the stored path, relative to the data dir. A failed copy
// leaves nothing behind and must abort the record write that asked for
// it.
func (s *Store) CopyAttachment(sourcePath string, projectID int64) (string, error) {
	if strings.TrimSpace(sourcePath) == "" {
		return "", nil
	}
	if fi, err := os.Stat(sourcePath); err != nil || fi.IsDir() {
		return "", storageErr("reading attachment", fmt.Errorf("not a readable file: %s", sourcePath))
	}

	folder, err := s.ProjectFilesDir(projectID)
	if err != nil {
		return "", err
	}

	base := filepath.Base(sourcePath)
	var b strings.Builder
	for _, c := range base {
		if c == '.' || c == '_' || c == '-' || c == ' ' || c == '(' || c == ')' ||
			(c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			b.WriteRune(c)
		}
	}
	cleanBase := b.String()
	if cleanBase == "" {
		cleanBase = "file"
	}

	stamp := time.Now().Format("20060102_150405")
	dst := filepath.Join(folder, fmt.Sprintf("%d_%s_%s", projectID, stamp, cleanBase))
	if err := copyFile(sourcePath, dst); err != nil {
		return "", storageErr("copying attachment", err)
	}

	dataDir, err := filepath.Abs(s.DataDir())
	if err != nil {
		return "", storageErr("resolving data dir", err)
	}
	rel, err := filepath.Rel(dataDir, dst)
	if err != nil {
		// Different volume etc.; an absolute stored path still resolves.
		return dst, nil
	}
	return rel, nil
}

// ResolvePath maps a stored attachment path (relative to the data dir,
// or absolute) to an absolute path, or "" when the file is gone.
func (s *Store) ResolvePath(stored string) string {
	p := strings.TrimSpace(stored)
	if p == "" {
		return ""
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.DataDir(), p)
	}
	if fi, err := os.Stat(p); err != nil || fi.IsDir() {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return ""
	}
	return abs
}
