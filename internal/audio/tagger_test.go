package audio

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"golang.org/x/text/encoding/charmap"
)

var audioPayload = bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x64}, 64)

// writeMP3 writes an ID3v2 tag of the given version followed by a fake
// audio payload. frames maps frame IDs to text values.
func writeMP3(t *testing.T, path string, version byte, frames map[string]string, comment string) {
	t.Helper()

	tag := id3v2.NewEmptyTag()
	tag.SetVersion(version)
	enc := textEncoding(version)
	for id, text := range frames {
		tag.AddTextFrame(id, enc, text)
	}
	if comment != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding: enc,
			Language: "eng",
			Text:     comment,
		})
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := tag.WriteTo(f); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write(audioPayload); err != nil {
		t.Fatal(err)
	}
}

func TestTagger_Load(t *testing.T) {
	for _, version := range []byte{3, 4} {
		path := filepath.Join(t.TempDir(), "in.mp3")
		writeMP3(t, path, version, map[string]string{
			frameArtist: "Океан Ельзи",
			frameTitle:  "Веселі, Бідні Та Злі",
			frameAlbum:  "Земля",
			frameTrack:  "3",
		}, "old comment")

		rec, err := NewTagger(nil).Load(context.Background(), path)
		if err != nil {
			t.Fatalf("v2.%d: Load: %v", version, err)
		}
		if rec.Version != version {
			t.Errorf("Version = %d, want %d", rec.Version, version)
		}
		if rec.Artist != "Океан Ельзи" || rec.Title != "Веселі, Бідні Та Злі" || rec.Album != "Земля" {
			t.Errorf("v2.%d: record = %+v", version, rec)
		}
		if rec.Track != "3" {
			t.Errorf("Track = %q", rec.Track)
		}
		if rec.Comment != "old comment" {
			t.Errorf("Comment = %q", rec.Comment)
		}
		if rec.SourcePath != path {
			t.Errorf("SourcePath = %q", rec.SourcePath)
		}
	}
}

func TestTagger_LoadNoTag(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.mp3")
	if err := os.WriteFile(plain, audioPayload, 0644); err != nil {
		t.Fatal(err)
	}
	short := filepath.Join(dir, "short.mp3")
	if err := os.WriteFile(short, []byte("ID"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{plain, short} {
		_, err := NewTagger(nil).Load(context.Background(), path)
		if !errors.Is(err, ErrNoTag) {
			t.Errorf("%s: err = %v, want ErrNoTag", filepath.Base(path), err)
		}
	}
}

func TestTagger_LoadUnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v22.mp3")
	data := append([]byte("ID3\x02\x00\x00\x00\x00\x00\x00"), audioPayload...)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewTagger(nil).Load(context.Background(), path)
	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("err = %v, want UnsupportedFormatError", err)
	}
	if unsupported.Path != path {
		t.Errorf("Path = %q", unsupported.Path)
	}
}

func TestTagger_LoadMissingFile(t *testing.T) {
	_, err := NewTagger(nil).Load(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("err = %v, want LoadError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadError should wrap os.ErrNotExist, got %v", err)
	}
}

func TestTagger_LoadLegacyCharset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cp1251.mp3")

	// Windows-1251 bytes of "Океан" stored under the ISO-8859-1 label.
	tag := id3v2.NewEmptyTag()
	tag.SetVersion(3)
	tag.AddTextFrame(frameArtist, id3v2.EncodingISO, "Îêåàí")
	tag.AddTextFrame(frameTitle, id3v2.EncodingISO, "Intro")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tag.WriteTo(f); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cfg := DefaultTagConfig()
	cfg.LegacyCharset = charmap.Windows1251
	rec, err := NewTagger(cfg).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.Artist != "Океан" {
		t.Errorf("Artist = %q, want %q", rec.Artist, "Океан")
	}
	if rec.Title != "Intro" {
		t.Errorf("Title = %q, want ASCII untouched", rec.Title)
	}
}

func TestTagger_SaveNewPath(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.mp3")
	dst := filepath.Join(dir, "Океан Ельзи - Веселі, Бідні Та Злі.mp3")
	writeMP3(t, src, 3, map[string]string{
		frameArtist: "Океан Ельзи",
		frameTitle:  "Веселі, Бідні Та Злі",
		frameGenre:  "Rock",
	}, "ripped")

	before, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}

	tagger := NewTagger(nil)
	ctx := context.Background()
	rec, err := tagger.Load(ctx, src)
	if err != nil {
		t.Fatal(err)
	}
	rec.Artist = "Okean Elʹzy"
	rec.Title = "Veseli, Bidni Ta Zli"
	rec.Comment = "Empty"

	if err := tagger.Save(ctx, rec, dst); err != nil {
		t.Fatalf("Save: %v", err)
	}

	after, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("source file was modified")
	}

	out, err := tagger.Load(ctx, dst)
	if err != nil {
		t.Fatalf("Load output: %v", err)
	}
	if out.Artist != "Okean Elʹzy" || out.Title != "Veseli, Bidni Ta Zli" {
		t.Errorf("output record = %+v", out)
	}
	if out.Comment != "Empty" {
		t.Errorf("Comment = %q, want %q", out.Comment, "Empty")
	}
	if out.Genre != "Rock" {
		t.Errorf("Genre = %q, untouched frames should survive", out.Genre)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(data, audioPayload) {
		t.Error("audio payload was not preserved")
	}
}

func TestTagger_SaveSkipsEmptyFields(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.mp3")
	writeMP3(t, src, 4, map[string]string{frameTitle: "Kalyna"}, "")

	tagger := NewTagger(nil)
	ctx := context.Background()
	rec, err := tagger.Load(ctx, src)
	if err != nil {
		t.Fatal(err)
	}
	rec.Comment = "Empty"

	dst := filepath.Join(dir, "Kalyna.mp3")
	if err := tagger.Save(ctx, rec, dst); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := tagger.Load(ctx, dst)
	if err != nil {
		t.Fatal(err)
	}
	if out.Artist != "" || out.Album != "" {
		t.Errorf("empty fields should stay absent: %+v", out)
	}
	if out.Title != "Kalyna" || out.Comment != "Empty" {
		t.Errorf("output record = %+v", out)
	}
}

func TestTagger_SaveInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Kalyna.mp3")
	writeMP3(t, path, 4, map[string]string{frameTitle: "Калина"}, "x")

	tagger := NewTagger(nil)
	ctx := context.Background()
	rec, err := tagger.Load(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	rec.Title = "Kalyna"
	rec.Comment = "Empty"

	if err := tagger.Save(ctx, rec, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := tagger.Load(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if out.Title != "Kalyna" || out.Comment != "Empty" {
		t.Errorf("record = %+v", out)
	}
}

func TestTagger_SavePersistError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.mp3")
	writeMP3(t, src, 4, map[string]string{frameTitle: "Kalyna"}, "")

	tagger := NewTagger(nil)
	ctx := context.Background()
	rec, err := tagger.Load(ctx, src)
	if err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "missing", "Kalyna.mp3")
	err = tagger.Save(ctx, rec, dst)
	var persistErr *PersistError
	if !errors.As(err, &persistErr) {
		t.Fatalf("err = %v, want PersistError", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("no output file should exist after a failed save")
	}
}

func TestParseLegacyCharset(t *testing.T) {
	tests := []struct {
		name    string
		want    *charmap.Charmap
		wantErr bool
	}{
		{"", nil, false},
		{"none", nil, false},
		{"Windows-1251", charmap.Windows1251, false},
		{"cp1251", charmap.Windows1251, false},
		{"koi8-r", charmap.KOI8R, false},
		{"koi8-u", charmap.KOI8U, false},
		{"latin9", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLegacyCharset(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagger_LoadURL(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body []byte
		want string
	}{
		{"wxxx latin1", frameUserURL, []byte("\x00site\x00https://okeanelzy.com"), "https://okeanelzy.com"},
		{"wxxx utf16", frameUserURL, []byte("\x01\xff\xfes\x00\x00\x00https://example.org"), "https://example.org"},
		{"woar", frameArtistURL, []byte("https://kino.ru"), "https://kino.ru"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "url.mp3")
			tag := id3v2.NewEmptyTag()
			tag.SetVersion(4)
			tag.AddTextFrame(frameTitle, id3v2.EncodingUTF8, "Kalyna")
			tag.AddFrame(tt.id, id3v2.UnknownFrame{Body: tt.body})
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := tag.WriteTo(f); err != nil {
				t.Fatal(err)
			}
			f.Close()

			rec, err := NewTagger(nil).Load(context.Background(), path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if rec.URL != tt.want {
				t.Errorf("URL = %q, want %q", rec.URL, tt.want)
			}
		})
	}
}
