// Package model defines the core data structures used throughout
// the mp3meta application.
//
// # AudioFile
//
// AudioFile is a handle to one input file found in the root directory:
//
//	file := model.NewAudioFile("/music/Rock UA/01.mp3")
//	fmt.Println(file.Name) // "01.mp3"
//
// # TagRecord
//
// TagRecord is the in-memory copy of a file's ID3 tag. Transliterate
// rewrites artist, title and album in place and returns the original
// artist and title, which name the output file:
//
//	artist, title := rec.Transliterate(toLatin)
//	name := model.OutputFileName(artist, title, ".mp3")
//	// "Океан Ельзи - Веселі, Бідні Та Злі.mp3"
//
// # Batch
//
// Batch collects the output files of one run and computes the playlist path:
//
//	batch := model.NewBatch("/music/Rock UA", outputs, pathConfig)
//	fmt.Println(batch.PlaylistPath) // "/music/Rock UA/Rock UA.m3u"
//
// Available playlist placeholders: {dir}, {date}
package model
