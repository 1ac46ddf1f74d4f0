package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bogem/id3v2"
	ioutils "github.com/handiism/mp3meta/internal/io"
	"github.com/handiism/mp3meta/internal/model"
	"golang.org/x/text/encoding/charmap"
)

// ID3v2 frame IDs read or written by the Tagger.
const (
	frameArtist      = "TPE1"
	frameTitle       = "TIT2"
	frameAlbum       = "TALB"
	frameTrack       = "TRCK"
	frameYear        = "TYER"
	frameRecorded    = "TDRC"
	frameGenre       = "TCON"
	frameAlbumArtist = "TPE2"
	frameComposer    = "TCOM"
	framePublisher   = "TPUB"
	frameCopyright   = "TCOP"
	frameEncoder     = "TSSE"
	frameComment     = "COMM"
	frameLyrics      = "USLT"
	framePicture     = "APIC"
	frameUserURL     = "WXXX"
	frameArtistURL   = "WOAR"
)

// TagConfig holds tag reading options.
type TagConfig struct {
	// LegacyCharset re-decodes text frames labelled ISO-8859-1 with this
	// 8-bit charset. Many older Cyrillic files store Windows-1251 bytes
	// under the ISO-8859-1 label. Nil disables re-decoding.
	LegacyCharset *charmap.Charmap

	// CommentLanguage is the ISO-639-2 language code of written comments.
	CommentLanguage string
}

// DefaultTagConfig returns the default tag configuration.
//
// Text frames are taken as labelled and comments are written as "eng".
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		CommentLanguage: "eng",
	}
}

// ParseLegacyCharset maps a charset name to a charmap.
//
// Accepted names are "windows-1251" (or "cp1251"), "koi8-r" and "koi8-u".
// An empty name or "none" returns nil.
func ParseLegacyCharset(name string) (*charmap.Charmap, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return nil, nil
	case "windows-1251", "cp1251":
		return charmap.Windows1251, nil
	case "koi8-r":
		return charmap.KOI8R, nil
	case "koi8-u":
		return charmap.KOI8U, nil
	}
	return nil, fmt.Errorf("unknown legacy charset %q", name)
}

// Tagger reads and writes ID3v2 tags of MP3 files.
//
// Tagger uses the id3v2 library to parse and save tags. Loaded tags are
// copied into a model.TagRecord; no file handle is kept open between Load
// and Save.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	rec, err := tagger.Load(ctx, path)
//	if err != nil {
//	    return err
//	}
//	err = tagger.Save(ctx, rec, outPath)
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	if config.CommentLanguage == "" {
		config.CommentLanguage = "eng"
	}
	return &Tagger{config: config}
}

// Load reads the ID3v2 tag of the file at path.
//
// Returns:
//   - ErrNoTag if the file has no ID3v2 tag
//   - *UnsupportedFormatError for ID3v2 versions other than 2.3 and 2.4
//   - *LoadError if the file or tag cannot be read
func (t *Tagger) Load(ctx context.Context, path string) (*model.TagRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	version, err := sniffVersion(path)
	if err != nil {
		return nil, err
	}
	if version != 3 && version != 4 {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("ID3v2.%d tag", version),
		}
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer tag.Close()

	return t.record(tag, path), nil
}

// sniffVersion reads the 10-byte tag header and returns the major version.
func sniffVersion(path string) (byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	header := make([]byte, 10)
	if _, err := io.ReadFull(f, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, ErrNoTag
		}
		return 0, &LoadError{Path: path, Err: err}
	}
	if string(header[:3]) != "ID3" {
		return 0, ErrNoTag
	}
	return header[3], nil
}

// record copies the frames of tag into a TagRecord.
func (t *Tagger) record(tag *id3v2.Tag, path string) *model.TagRecord {
	rec := &model.TagRecord{
		SourcePath:  path,
		Version:     tag.Version(),
		Artist:      t.text(tag, frameArtist),
		Title:       t.text(tag, frameTitle),
		Album:       t.text(tag, frameAlbum),
		Track:       t.text(tag, frameTrack),
		Year:        t.text(tag, frameRecorded),
		Genre:       t.text(tag, frameGenre),
		AlbumArtist: t.text(tag, frameAlbumArtist),
		Composer:    t.text(tag, frameComposer),
		Publisher:   t.text(tag, framePublisher),
		Copyright:   t.text(tag, frameCopyright),
		Encoder:     t.text(tag, frameEncoder),
		URL:         url(tag),
	}
	if rec.Year == "" {
		rec.Year = t.text(tag, frameYear)
	}

	for _, f := range tag.GetFrames(frameComment) {
		if cf, ok := f.(id3v2.CommentFrame); ok && cf.Text != "" {
			rec.Comment = t.decode(cf.Encoding, cf.Text)
			break
		}
	}

	for _, f := range tag.GetFrames(frameLyrics) {
		if lf, ok := f.(id3v2.UnsynchronisedLyricsFrame); ok && lf.Lyrics != "" {
			rec.Lyrics = t.decode(lf.Encoding, lf.Lyrics)
			break
		}
	}

	for _, f := range tag.GetFrames(framePicture) {
		if pf, ok := f.(id3v2.PictureFrame); ok && len(pf.Picture) > 0 {
			rec.Artwork = pf.Picture
			rec.ArtworkMimeType = pf.MimeType
			break
		}
	}

	return rec
}

// text returns the value of the last text frame with the given id.
func (t *Tagger) text(tag *id3v2.Tag, id string) string {
	frames := tag.GetFrames(id)
	if len(frames) == 0 {
		return ""
	}
	tf, ok := frames[len(frames)-1].(id3v2.TextFrame)
	if !ok {
		return ""
	}
	return t.decode(tf.Encoding, tf.Text)
}

// url returns the first user-defined or artist URL of tag.
//
// The library does not parse URL frames, so the raw body is split here:
// WXXX is an encoding byte, a terminated description and a Latin-1 URL;
// WOAR is the URL alone.
func url(tag *id3v2.Tag) string {
	for _, f := range tag.GetFrames(frameUserURL) {
		uf, ok := f.(id3v2.UnknownFrame)
		if !ok || len(uf.Body) < 2 {
			continue
		}
		enc, rest := uf.Body[0], uf.Body[1:]
		if enc == 1 || enc == 2 {
			for i := 0; i+1 < len(rest); i += 2 {
				if rest[i] == 0 && rest[i+1] == 0 {
					return strings.TrimRight(string(rest[i+2:]), "\x00")
				}
			}
			continue
		}
		if i := bytes.IndexByte(rest, 0); i >= 0 {
			return strings.TrimRight(string(rest[i+1:]), "\x00")
		}
	}
	for _, f := range tag.GetFrames(frameArtistURL) {
		if uf, ok := f.(id3v2.UnknownFrame); ok && len(uf.Body) > 0 {
			return strings.TrimRight(string(uf.Body), "\x00")
		}
	}
	return ""
}

// decode re-decodes ISO-8859-1 text with the legacy charset, if configured.
func (t *Tagger) decode(enc id3v2.Encoding, text string) string {
	if t.config.LegacyCharset == nil || enc.Key != id3v2.EncodingISO.Key || isASCII(text) {
		return text
	}

	raw, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		return text
	}
	decoded, err := t.config.LegacyCharset.NewDecoder().String(raw)
	if err != nil {
		return text
	}
	return decoded
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// Save writes rec to a file at path.
//
// When path differs from rec.SourcePath the source is copied to path and
// the tag of the copy is rewritten; the source is not modified. When the
// paths coincide the tag is rewritten in place.
//
// Artist, Title and Album frames are written only when non-empty. All
// comment frames are replaced by a single frame holding rec.Comment.
//
// On failure a newly created file at path is removed and a *PersistError
// is returned.
func (t *Tagger) Save(ctx context.Context, rec *model.TagRecord, path string) error {
	if rec.SourcePath == "" {
		return &PersistError{Path: path, Err: errors.New("record has no source file")}
	}

	inPlace := ioutils.SamePath(rec.SourcePath, path)
	created := false
	if !inPlace {
		_, statErr := os.Stat(path)
		created = os.IsNotExist(statErr)
	}
	cleanup := func() {
		if created {
			os.Remove(path)
		}
	}

	if !inPlace {
		if err := ioutils.CopyFile(ctx, rec.SourcePath, path); err != nil {
			cleanup()
			return &PersistError{Path: path, Err: err}
		}
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		cleanup()
		return &PersistError{Path: path, Err: err}
	}

	t.apply(tag, rec)

	if err := tag.Save(); err != nil {
		tag.Close()
		cleanup()
		return &PersistError{Path: path, Err: err}
	}
	if err := tag.Close(); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	return nil
}

// apply writes the mutable fields of rec into tag.
func (t *Tagger) apply(tag *id3v2.Tag, rec *model.TagRecord) {
	enc := textEncoding(tag.Version())

	if rec.Artist != "" {
		tag.AddTextFrame(frameArtist, enc, rec.Artist)
	}
	if rec.Title != "" {
		tag.AddTextFrame(frameTitle, enc, rec.Title)
	}
	if rec.Album != "" {
		tag.AddTextFrame(frameAlbum, enc, rec.Album)
	}

	tag.DeleteFrames(frameComment)
	tag.AddCommentFrame(id3v2.CommentFrame{
		Encoding:    enc,
		Language:    t.config.CommentLanguage,
		Description: "",
		Text:        rec.Comment,
	})
}

// textEncoding picks a Unicode encoding valid for the tag version.
// ID3v2.3 has no UTF-8, so UTF-16 with BOM is used there.
func textEncoding(version byte) id3v2.Encoding {
	if version == 4 {
		return id3v2.EncodingUTF8
	}
	return id3v2.EncodingUTF16
}
