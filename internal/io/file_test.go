package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestListFiles_FiltersExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.mp3")
	touch(t, dir, "a.mp3")
	touch(t, dir, "c.MP3")
	touch(t, dir, "notes.txt")
	touch(t, dir, "mp3")
	if err := os.Mkdir(filepath.Join(dir, "folder.mp3"), 0755); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	touch(t, sub, "nested.mp3")

	files, err := ListFiles(dir, ".mp3")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}

	want := []string{filepath.Join(dir, "a.mp3"), filepath.Join(dir, "b.mp3")}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestListFiles_MissingDir(t *testing.T) {
	files, err := ListFiles(filepath.Join(t.TempDir(), "missing"), ".mp3")
	if err == nil {
		t.Error("expected error for missing directory")
	}
	if len(files) != 0 {
		t.Errorf("got %d files, want 0", len(files))
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp3")
	dst := filepath.Join(dir, "dst.mp3")
	if err := os.WriteFile(src, []byte("ID3 payload"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(context.Background(), src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "ID3 payload" {
		t.Errorf("copied %q", got)
	}
}

func TestCopyFile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	if err := CopyFile(ctx, filepath.Join(dir, "a"), filepath.Join(dir, "b")); err == nil {
		t.Error("expected error for cancelled context")
	}
	if _, err := os.Stat(filepath.Join(dir, "b")); !os.IsNotExist(err) {
		t.Error("destination should not be created")
	}
}

func TestSamePath(t *testing.T) {
	if !SamePath("/music/a.mp3", "/music/x/../a.mp3") {
		t.Error("cleaned paths should match")
	}
	if SamePath("/music/a.mp3", "/music/b.mp3") {
		t.Error("different files should not match")
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Океан Ельзи - Я так хочу", "Океан Ельзи - Я так хочу"},
		{"AC/DC - T.N.T.", "AC_DC - T.N.T"},
		{"What?", "What_"},
		{"trailing   ", "trailing"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestImageService_Describe(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 30))); err != nil {
		t.Fatal(err)
	}

	info, err := NewImageService().Describe(context.Background(), buf.Bytes())
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if info.Format != "png" || info.Width != 40 || info.Height != 30 {
		t.Errorf("Describe = %+v", info)
	}
}

func TestImageService_DescribeGarbage(t *testing.T) {
	if _, err := NewImageService().Describe(context.Background(), []byte("not an image")); err == nil {
		t.Error("expected error for unknown format")
	}
}
