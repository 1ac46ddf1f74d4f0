// Package config provides configuration management for mp3meta.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Validation of script, charset and worker settings
//   - Conversion to the option types of other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Reads and writes ~/Music
//	// Ukrainian source script
//	// One file at a time
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.RootDirectory = "/media/usb/Rock UA"
//	err := settings.Save("/path/to/config.json")
package config
