// Package pipeline rewrites the ID3 tags of every audio file in a
// directory, transliterating Cyrillic fields to Latin script.
//
// # Pipeline
//
// The Pipeline drives the whole run:
//
//  1. List files in the root directory with the configured extension
//  2. Load each file's tag (files without an ID3v2 tag are skipped)
//  3. Transliterate artist, title and album; set the comment to "Empty"
//  4. Write the result to "<artist> - <title>.mp3" in the output directory
//  5. Generate a playlist of the written files (optional)
//
// # Basic Usage
//
//	p := pipeline.NewDefault(settings, func(event pipeline.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := p.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Failure Handling
//
// A missing or unreadable root directory is reported as a warning and the
// run completes without doing anything. Any other failure stops the run:
// files after the failing one are not processed, and files already
// written stay on disk. The returned *FileError names the offending file.
//
// # Concurrency
//
// With settings.Workers == 1 (the default) files are processed strictly one
// at a time in directory order. Higher values process files concurrently;
// the first failure still stops new files from starting, but progress
// messages of in-flight files may interleave.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package pipeline
