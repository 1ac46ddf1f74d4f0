// Package audio provides audio file manipulation services including
// ID3 tag reading and writing and playlist generation.
//
// # ID3 Tagging
//
// Use the Tagger to load a file's tag into a model.TagRecord and write
// the (modified) record to a new file:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	rec, err := tagger.Load(ctx, "/music/in.mp3")
//	if errors.Is(err, audio.ErrNoTag) {
//	    // nothing to do for this file
//	}
//	rec.Artist = "Okean Elʹzy"
//	err = tagger.Save(ctx, rec, "/music/out.mp3")
//
// Saving to a different path copies the source and rewrites the tag in the
// copy; the source file is never modified. ID3v2.3 and ID3v2.4 tags are
// supported.
//
// # Playlist Generation
//
// Generate playlists in various formats:
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist(batch)
//	os.WriteFile(batch.PlaylistPath, []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
