// Package ioutils provides file system and image utilities.
//
// This package contains functions for:
//   - Listing candidate audio files in a directory
//   - File copying and writing
//   - Filename sanitization for cross-platform compatibility
//   - Directory creation
//   - Inspecting embedded cover art
//
// # Listing Files
//
//	files, err := ioutils.ListFiles("/music/Rock UA", ".mp3")
//	// files == ["/music/Rock UA/01.mp3", "/music/Rock UA/02.mp3"]
//
// # File Operations
//
//	// Copy a file
//	err := ioutils.CopyFile(ctx, "/src/file.mp3", "/dst/file.mp3")
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Cover Art
//
//	svc := ioutils.NewImageService()
//	info, err := svc.Describe(ctx, artwork)
//	fmt.Printf("%s %dx%d\n", info.Format, info.Width, info.Height)
package ioutils
