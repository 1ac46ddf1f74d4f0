package model

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Batch is the set of files written by one run into a single directory.
//
// The playlist path is computed when creating a batch via NewBatch, using
// the PathConfig file name format.
//
// Example:
//
//	cfg := &PathConfig{
//	    PlaylistFileNameFormat: "{dir}",
//	    PlaylistFormat:         PlaylistFormatM3U,
//	}
//	batch := NewBatch("/music/Rock UA", outputs, time.Now(), cfg)
//	// batch.PlaylistPath = "/music/Rock UA/Rock UA.m3u"
type Batch struct {
	// Dir is the directory the outputs were written to.
	Dir string

	// Title is the playlist title, the base name of Dir.
	Title string

	// Created is the time the batch was assembled.
	Created time.Time

	// Outputs lists the written files in input order.
	Outputs []*OutputFile

	// PlaylistPath is the computed playlist file path.
	PlaylistPath string
}

// NewBatch creates a Batch with a computed playlist path.
func NewBatch(dir string, outputs []*OutputFile, created time.Time, cfg *PathConfig) *Batch {
	b := &Batch{
		Dir:     dir,
		Title:   filepath.Base(dir),
		Created: created,
		Outputs: outputs,
	}
	b.PlaylistPath = b.parsePlaylistPath(cfg)
	return b
}

// PathConfig holds playlist path formatting settings.
//
// PlaylistFileNameFormat supports placeholders:
//   - {dir} - base name of the output directory
//   - {date} - batch creation date (YYYY-MM-DD)
type PathConfig struct {
	// PlaylistFileNameFormat is the filename template for playlists (without extension).
	PlaylistFileNameFormat string

	// PlaylistFormat determines the playlist file type and extension.
	PlaylistFormat PlaylistFormat
}

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS

	// PlaylistFormatWPL creates .wpl playlist files (Windows Media Player).
	PlaylistFormatWPL

	// PlaylistFormatZPL creates .zpl playlist files (Zune Media Player).
	PlaylistFormatZPL
)

// ParsePlaylistFormat maps a name such as "pls" to a PlaylistFormat.
// Unknown names map to PlaylistFormatM3U.
func ParsePlaylistFormat(name string) PlaylistFormat {
	switch strings.ToLower(name) {
	case "pls":
		return PlaylistFormatPLS
	case "wpl":
		return PlaylistFormatWPL
	case "zpl":
		return PlaylistFormatZPL
	default:
		return PlaylistFormatM3U
	}
}

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatPLS:
		return ".pls"
	case PlaylistFormatWPL:
		return ".wpl"
	case PlaylistFormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

func (b *Batch) parsePlaylistPath(cfg *PathConfig) string {
	fileName := cfg.PlaylistFileNameFormat
	fileName = strings.ReplaceAll(fileName, "{dir}", b.Title)
	fileName = strings.ReplaceAll(fileName, "{date}", b.Created.Format("2006-01-02"))
	fileName = sanitizeFileName(fileName)
	if fileName == "" {
		fileName = "playlist"
	}
	return filepath.Join(b.Dir, fileName+cfg.PlaylistFormat.Extension())
}

var (
	invalidNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	repeatedSpace    = regexp.MustCompile(`\s+`)
)

// sanitizeFileName removes or replaces characters that are invalid in file names.
func sanitizeFileName(name string) string {
	name = invalidNameChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
