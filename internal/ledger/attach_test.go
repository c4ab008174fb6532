package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCopyAttachment_StoresRelativePath(t *testing.T) {
	s := newTestStore(t)
	id, err := s.CreateProject("Blasting permits", 1000, "", false, nil, nil)
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	src := filepath.Join(t.TempDir(), "quote.pdf")
	if err := os.WriteFile(src, []byte("pdf bytes"), 0o600); err != nil {
		t.Fatal(err)
	}

	stored, err := s.CopyAttachment(src, id)
	if err != nil {
		t.Fatalf("CopyAttachment: %v", err)
	}
	if stored == "" {
		t.Fatal("empty stored path")
	}
	if filepath.IsAbs(stored) {
		t.Errorf("stored path %q is absolute, want relative to data dir", stored)
	}
	if !strings.HasPrefix(stored, "Files"+string(filepath.Separator)) {
		t.Errorf("stored path %q not under Files/", stored)
	}

	abs := s.ResolvePath(stored)
	if abs == "" {
		t.Fatal("ResolvePath could not find the copied file")
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		t.Fatalf("reading copy: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Errorf("copy content = %q", data)
	}
}

func TestCopyAttachment_EmptySourceIsNoop(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.CreateProject("P", 0, "", false, nil, nil)

	stored, err := s.CopyAttachment("", id)
	if err != nil {
		t.Fatalf("CopyAttachment(\"\"): %v", err)
	}
	if stored != "" {
		t.Errorf("stored = %q, want empty", stored)
	}
}

func TestCopyAttachment_MissingSourceFails(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.CreateProject("P", 0, "", false, nil, nil)

	if _, err := s.CopyAttachment(filepath.Join(t.TempDir(), "nope.pdf"), id); err == nil {
		t.Error("CopyAttachment accepted missing source")
	}
}

func TestProjectFilesDir_SanitizesName(t *testing.T) {
	s := newTestStore(t)
	id, err := s.CreateProject(`Shaft "B" / level: 3`, 0, "", false, nil, nil)
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	dir, err := s.ProjectFilesDir(id)
	if err != nil {
		t.Fatalf("ProjectFilesDir: %v", err)
	}
	base := filepath.Base(dir)
	for _, c := range `\/:*?"<>|` {
		if strings.ContainsRune(base, c) {
			t.Errorf("folder %q contains forbidden %q", base, c)
		}
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("folder not created: %v", err)
	}
}

func TestResolvePath_MissingFile(t *testing.T) {
	s := newTestStore(t)
	if got := s.ResolvePath("Files/gone/1_x.pdf"); got != "" {
		t.Errorf("ResolvePath = %q, want empty for missing file", got)
	}
	if got := s.ResolvePath("  "); got != "" {
		t.Errorf("ResolvePath(blank) = %q, want empty", got)
	}
}
