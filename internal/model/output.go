package model

// OutputFile describes a file written by a successful run step.
type OutputFile struct {
	// Source is the input file the output was derived from.
	Source string

	// Path is the full path of the written file.
	Path string

	// Artist, Title and Album are the transliterated tag values.
	Artist string
	Title  string
	Album  string

	// OriginalArtist and OriginalTitle are the values before transliteration.
	OriginalArtist string
	OriginalTitle  string
}

// OutputFileName builds the name of a rewritten file from the original
// artist and title.
//
// The artist and the " - " separator are omitted when originalArtist is empty:
//
//	OutputFileName("Океан Ельзи", "Відпусти", ".mp3") // "Океан Ельзи - Відпусти.mp3"
//	OutputFileName("", "Kalyna", ".mp3")             // "Kalyna.mp3"
func OutputFileName(originalArtist, originalTitle, ext string) string {
	name := originalTitle + ext
	if originalArtist != "" {
		name = originalArtist + " - " + name
	}
	return name
}

// DisplayName returns "Artist - Title" or just the title.
func (o *OutputFile) DisplayName() string {
	if o.Artist == "" {
		return o.Title
	}
	return o.Artist + " - " + o.Title
}
