package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/mp3meta/internal/model"
)

// PlaylistCreator renders the outputs of a run as a playlist.
//
// Entries reference the rewritten files by base name, so the playlist is
// meant to live in the output directory. Durations are never read from the
// audio stream; every format gets its "unknown length" marker instead.
//
// Example:
//
//	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist(batch)
//
//	// #EXTM3U
//	// #EXTINF:-1,Okean Elʹzy - Vidpusty
//	// Океан Ельзи - Відпусти.mp3
type PlaylistCreator struct {
	format   model.PlaylistFormat
	extended bool // M3U only: emit #EXTM3U and #EXTINF lines
}

// NewPlaylistCreator creates a PlaylistCreator. extended is ignored for
// formats other than M3U.
func NewPlaylistCreator(format model.PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist returns the playlist content for batch.
func (p *PlaylistCreator) CreatePlaylist(batch *model.Batch) string {
	var sb strings.Builder

	switch p.format {
	case model.PlaylistFormatPLS:
		writePLS(&sb, batch)
	case model.PlaylistFormatWPL:
		writeSMIL(&sb, "wpl", "1.0", batch, nil, func(out *model.OutputFile) string {
			return attr("src", filepath.Base(out.Path))
		})
	case model.PlaylistFormatZPL:
		meta := []string{
			`<meta name="Generator" content="mp3meta"/>`,
			fmt.Sprintf(`<meta name="ItemCount" content="%d"/>`, len(batch.Outputs)),
		}
		writeSMIL(&sb, "zpl", "2.0", batch, meta, func(out *model.OutputFile) string {
			return attr("src", filepath.Base(out.Path)) +
				attr("albumTitle", out.Album) +
				attr("trackTitle", out.Title) +
				attr("trackArtist", out.Artist)
		})
	default:
		writeM3U(&sb, batch, p.extended)
	}

	return sb.String()
}

func writeM3U(sb *strings.Builder, batch *model.Batch, extended bool) {
	if extended {
		sb.WriteString("#EXTM3U\n")
	}
	for _, out := range batch.Outputs {
		if extended {
			fmt.Fprintf(sb, "#EXTINF:-1,%s\n", out.DisplayName())
		}
		sb.WriteString(filepath.Base(out.Path) + "\n")
	}
}

// writePLS writes the INI-style PLS version 2 format.
func writePLS(sb *strings.Builder, batch *model.Batch) {
	sb.WriteString("[playlist]\n")
	for i, out := range batch.Outputs {
		n := i + 1
		fmt.Fprintf(sb, "File%d=%s\n", n, filepath.Base(out.Path))
		fmt.Fprintf(sb, "Title%d=%s\n", n, out.DisplayName())
		fmt.Fprintf(sb, "Length%d=-1\n", n)
	}
	fmt.Fprintf(sb, "NumberOfEntries=%d\n", len(batch.Outputs))
	sb.WriteString("Version=2\n")
}

// writeSMIL writes the SMIL body shared by Windows Media (wpl) and Zune
// (zpl) playlists. media renders the attributes of one <media> element.
func writeSMIL(sb *strings.Builder, kind, version string, batch *model.Batch, meta []string, media func(*model.OutputFile) string) {
	fmt.Fprintf(sb, "<?%s version=\"%s\"?>\n", kind, version)
	sb.WriteString("<smil>\n  <head>\n")
	fmt.Fprintf(sb, "    <title>%s</title>\n", escapeXML(batch.Title))
	for _, m := range meta {
		sb.WriteString("    " + m + "\n")
	}
	sb.WriteString("  </head>\n  <body>\n    <seq>\n")
	for _, out := range batch.Outputs {
		fmt.Fprintf(sb, "      <media%s/>\n", media(out))
	}
	sb.WriteString("    </seq>\n  </body>\n</smil>\n")
}

func attr(name, value string) string {
	return fmt.Sprintf(` %s="%s"`, name, escapeXML(value))
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
