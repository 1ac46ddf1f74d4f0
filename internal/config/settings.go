package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/mp3meta/internal/audio"
	"github.com/handiism/mp3meta/internal/model"
	"github.com/handiism/mp3meta/internal/translit"
)

// Settings holds all configuration options.
type Settings struct {
	// Directories
	RootDirectory   string `json:"root_directory"`
	OutputDirectory string `json:"output_directory"` // empty: same as root

	// Input selection
	FileExtension string `json:"file_extension"`

	// Transliteration
	SourceScript  string `json:"source_script"`  // ukrainian, russian or an ICU id
	LegacyCharset string `json:"legacy_charset"` // none, windows-1251, koi8-r, koi8-u

	// Output naming
	SanitizeFileNames bool `json:"sanitize_file_names"`

	// Processing
	Workers int  `json:"workers"`
	Verbose bool `json:"verbose"`
	DryRun  bool `json:"-"`

	// Playlist settings
	CreatePlaylist         bool   `json:"create_playlist"`
	PlaylistFormat         string `json:"playlist_format"` // m3u, pls, wpl, zpl
	PlaylistFileNameFormat string `json:"playlist_file_name_format"`
	M3UExtended            bool   `json:"m3u_extended"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		RootDirectory: filepath.Join(homeDir, "Music"),
		FileExtension: ".mp3",

		SourceScript:  string(translit.ScriptUkrainian),
		LegacyCharset: "none",

		Workers: 1,

		CreatePlaylist:         false,
		PlaylistFormat:         "m3u",
		PlaylistFileNameFormat: "{dir}",
		M3UExtended:            true,
	}
}

// Load reads settings from a JSON file.
//
// A missing file yields DefaultSettings(). Fields absent from the file
// keep their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the settings can drive a run. All problems are
// reported together.
func (s *Settings) Validate() error {
	var errs []error

	if s.RootDirectory == "" {
		errs = append(errs, errors.New("root directory is required"))
	}
	if !strings.HasPrefix(s.FileExtension, ".") || len(s.FileExtension) < 2 {
		errs = append(errs, fmt.Errorf("file extension %q must start with a dot", s.FileExtension))
	}
	if _, err := translit.ParseScript(s.SourceScript); err != nil {
		errs = append(errs, err)
	}
	if _, err := audio.ParseLegacyCharset(s.LegacyCharset); err != nil {
		errs = append(errs, err)
	}
	if s.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", s.Workers))
	}
	switch strings.ToLower(s.PlaylistFormat) {
	case "m3u", "pls", "wpl", "zpl":
	default:
		errs = append(errs, fmt.Errorf("unknown playlist format %q", s.PlaylistFormat))
	}

	return errors.Join(errs...)
}

// OutputDir returns the directory rewritten files are written to.
func (s *Settings) OutputDir() string {
	if s.OutputDirectory == "" {
		return s.RootDirectory
	}
	return s.OutputDirectory
}

// Script returns the parsed source script, falling back to Ukrainian.
func (s *Settings) Script() translit.Script {
	script, err := translit.ParseScript(s.SourceScript)
	if err != nil {
		return translit.ScriptUkrainian
	}
	return script
}

// ToTagConfig converts settings to audio.TagConfig.
func (s *Settings) ToTagConfig() *audio.TagConfig {
	cfg := audio.DefaultTagConfig()
	cfg.LegacyCharset, _ = audio.ParseLegacyCharset(s.LegacyCharset)
	return cfg
}

// ToPathConfig converts settings to model.PathConfig.
func (s *Settings) ToPathConfig() *model.PathConfig {
	return &model.PathConfig{
		PlaylistFileNameFormat: s.PlaylistFileNameFormat,
		PlaylistFormat:         model.ParsePlaylistFormat(s.PlaylistFormat),
	}
}
