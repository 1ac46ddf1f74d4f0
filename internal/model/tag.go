package model

import (
	"fmt"
	"path/filepath"
)

// CommentSentinel is written to the comment field of every processed tag.
const CommentSentinel = "Empty"

// AudioFile is a handle to an input audio file on disk.
type AudioFile struct {
	// Path is the absolute path of the file.
	Path string

	// Name is the base filename, e.g. "01 Kalyna.mp3".
	Name string
}

// NewAudioFile creates an AudioFile for path.
//
// The path is made absolute when possible; if that fails the path is
// kept as given.
func NewAudioFile(path string) *AudioFile {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &AudioFile{
		Path: path,
		Name: filepath.Base(path),
	}
}

// TagRecord is the mutable in-memory representation of a file's ID3 tag.
//
// An empty string means the field is absent. Only Artist, Title, Album and
// Comment are written back when the record is saved; the remaining fields
// are informational and used for diagnostics.
type TagRecord struct {
	// SourcePath is the file the record was loaded from.
	SourcePath string

	// Version is the ID3v2 major version (3 or 4).
	Version byte

	Artist  string
	Title   string
	Album   string
	Comment string

	Track       string
	Year        string
	Genre       string
	AlbumArtist string
	Composer    string
	Publisher   string
	Copyright   string
	URL         string
	Encoder     string
	Lyrics      string

	// Artwork holds the first attached picture, if any.
	Artwork         []byte
	ArtworkMimeType string
}

// Transliterate rewrites the record in place using toLatin.
//
// Artist, Title and Album are replaced by their transliterated forms when
// non-empty and left untouched otherwise. Comment is always set to
// CommentSentinel. The original Artist and Title are returned; they are
// empty strings when the fields were empty.
func (r *TagRecord) Transliterate(toLatin func(string) string) (originalArtist, originalTitle string) {
	if r.Artist != "" {
		originalArtist = r.Artist
		r.Artist = toLatin(r.Artist)
	}

	if r.Title != "" {
		originalTitle = r.Title
		r.Title = toLatin(r.Title)
	}

	if r.Album != "" {
		r.Album = toLatin(r.Album)
	}

	r.Comment = CommentSentinel
	return originalArtist, originalTitle
}

// TagField is a labelled tag value, used for diagnostic dumps.
type TagField struct {
	Label string
	Value string
}

// Fields lists the record's fields in display order.
func (r *TagRecord) Fields() []TagField {
	fields := []TagField{
		{"Track", r.Track},
		{"Artist", r.Artist},
		{"Title", r.Title},
		{"Album", r.Album},
		{"Year", r.Year},
		{"Genre", r.Genre},
		{"Comment", r.Comment},
		{"Lyrics", r.Lyrics},
		{"Composer", r.Composer},
		{"Publisher", r.Publisher},
		{"Album artist", r.AlbumArtist},
		{"Copyright", r.Copyright},
		{"URL", r.URL},
		{"Encoder", r.Encoder},
	}
	if len(r.Artwork) > 0 {
		fields = append(fields,
			TagField{"Album image", fmt.Sprintf("%d bytes", len(r.Artwork))},
			TagField{"Album image mime type", r.ArtworkMimeType},
		)
	}
	return fields
}
