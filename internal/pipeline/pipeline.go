package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/handiism/mp3meta/internal/audio"
	"github.com/handiism/mp3meta/internal/config"
	ioutils "github.com/handiism/mp3meta/internal/io"
	"github.com/handiism/mp3meta/internal/model"
	"github.com/handiism/mp3meta/internal/translit"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// TagCodec loads and saves tag records.
type TagCodec interface {
	Load(ctx context.Context, path string) (*model.TagRecord, error)
	Save(ctx context.Context, rec *model.TagRecord, path string) error
}

// Transliterator converts text in a source script to Latin script.
type Transliterator interface {
	Transliterate(script translit.Script, text string) string
}

// ErrDirectoryUnavailable marks a root directory that could not be listed.
// It is reported in a warning event and never returned by Run.
var ErrDirectoryUnavailable = errors.New("directory unavailable")

// FileError is returned by Run when processing a file fails.
type FileError struct {
	// Index is the 1-based position of the file in the run.
	Index int
	Total int
	Path  string
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file %d of %d (%s): %v", e.Index, e.Total, filepath.Base(e.Path), e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

type indexedOutput struct {
	index int
	file  *model.OutputFile
}

// Pipeline coordinates the transliteration of a directory.
type Pipeline struct {
	settings *config.Settings
	codec    TagCodec
	translit Transliterator
	script   translit.Script
	images   *ioutils.ImageService
	playlist *audio.PlaylistCreator

	totalFiles     int32
	processedFiles int32
	skippedFiles   int32
	outputs        []indexedOutput

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// New creates a Pipeline using the given codec and transliterator.
func New(settings *config.Settings, codec TagCodec, tr Transliterator, onProgress func(ProgressEvent)) *Pipeline {
	return &Pipeline{
		settings:   settings,
		codec:      codec,
		translit:   tr,
		script:     settings.Script(),
		images:     ioutils.NewImageService(),
		playlist:   audio.NewPlaylistCreator(model.ParsePlaylistFormat(settings.PlaylistFormat), settings.M3UExtended),
		onProgress: onProgress,
	}
}

// NewDefault creates a Pipeline backed by the ID3 tagger and the BGN/PCGN
// transliteration engine.
func NewDefault(settings *config.Settings, onProgress func(ProgressEvent)) *Pipeline {
	return New(settings, audio.NewTagger(settings.ToTagConfig()), translit.NewEngine(), onProgress)
}

// Run processes every matching file in the root directory.
//
// The first failing file stops the run and is returned as a *FileError.
// An unreadable root directory is not an error: a warning is reported and
// the run completes with nothing to do.
func (p *Pipeline) Run(ctx context.Context) error {
	p.reset()

	root := p.settings.RootDirectory
	paths, err := ioutils.ListFiles(root, p.settings.FileExtension)
	if err != nil {
		p.progress(ProgressEvent{Message: fmt.Sprintf("%s: %v (%v)", root, ErrDirectoryUnavailable, err), Level: LevelWarning})
		p.progress(ProgressEvent{Message: "Done.", Level: LevelSuccess})
		return nil
	}

	files := make([]*model.AudioFile, len(paths))
	names := make([]string, len(paths))
	for i, path := range paths {
		files[i] = model.NewAudioFile(path)
		names[i] = files[i].Name
	}
	atomic.StoreInt32(&p.totalFiles, int32(len(files)))

	if len(files) > 0 {
		p.progress(ProgressEvent{Message: "Found files in directory: " + strings.Join(names, "; "), Level: LevelVerbose})
	}

	if len(files) > 0 && !p.settings.DryRun {
		if err := ioutils.EnsureDir(p.settings.OutputDir()); err != nil {
			return &audio.PersistError{Path: p.settings.OutputDir(), Err: err}
		}
	}

	if p.settings.Workers > 1 {
		err = p.runConcurrent(ctx, files)
	} else {
		err = p.runSequential(ctx, files)
	}
	if err != nil {
		p.progress(ProgressEvent{Message: err.Error(), Level: LevelError})
		return err
	}

	if p.settings.CreatePlaylist && !p.settings.DryRun {
		p.writePlaylist(ctx)
	}

	p.progress(ProgressEvent{Message: "Done.", Level: LevelSuccess})
	return nil
}

func (p *Pipeline) runSequential(ctx context.Context, files []*model.AudioFile) error {
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.step(ctx, i, len(files), file); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) runConcurrent(ctx context.Context, files []*model.AudioFile) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.settings.Workers)

	for i, file := range files {
		if gctx.Err() != nil {
			break
		}
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return p.step(gctx, i, len(files), file)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// A parent cancellation can stop the loop without any file failing.
	return ctx.Err()
}

// step reports progress for the i-th file and processes it.
func (p *Pipeline) step(ctx context.Context, i, total int, file *model.AudioFile) error {
	p.progress(ProgressEvent{Message: fmt.Sprintf("Transliterating file %d of %d: %s", i+1, total, file.Name), Level: LevelInfo})

	out, err := p.ProcessFile(ctx, file)
	if err != nil {
		return &FileError{Index: i + 1, Total: total, Path: file.Path, Err: err}
	}
	if out != nil {
		p.mu.Lock()
		p.outputs = append(p.outputs, indexedOutput{index: i, file: out})
		p.mu.Unlock()
	}
	return nil
}

// ProcessFile transliterates the tag of one file and writes the result to
// the output directory under a name built from the original artist and title.
//
// It returns nil, nil when the file has no ID3v2 tag. Load and save
// failures are returned unchanged.
func (p *Pipeline) ProcessFile(ctx context.Context, file *model.AudioFile) (*model.OutputFile, error) {
	rec, err := p.codec.Load(ctx, file.Path)
	if errors.Is(err, audio.ErrNoTag) {
		atomic.AddInt32(&p.skippedFiles, 1)
		p.progress(ProgressEvent{Message: fmt.Sprintf("No ID3v2 tag, skipping: %s", file.Name), Level: LevelVerbose})
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.dumpTag(ctx, "Before", rec)
	originalArtist, originalTitle := rec.Transliterate(p.toLatin)
	p.dumpTag(ctx, "After", rec)

	name := model.OutputFileName(originalArtist, originalTitle, p.settings.FileExtension)
	if p.settings.SanitizeFileNames {
		name = ioutils.SanitizeFileName(name)
	}

	out := &model.OutputFile{
		Source:         file.Path,
		Path:           filepath.Join(p.settings.OutputDir(), name),
		Artist:         rec.Artist,
		Title:          rec.Title,
		Album:          rec.Album,
		OriginalArtist: originalArtist,
		OriginalTitle:  originalTitle,
	}

	if p.settings.DryRun {
		p.progress(ProgressEvent{Message: fmt.Sprintf("Would write: %s", name), Level: LevelInfo})
	} else {
		if err := p.codec.Save(ctx, rec, out.Path); err != nil {
			return nil, err
		}
		p.progress(ProgressEvent{Message: fmt.Sprintf("Wrote: %s", name), Level: LevelVerbose})
	}

	atomic.AddInt32(&p.processedFiles, 1)
	return out, nil
}

func (p *Pipeline) toLatin(text string) string {
	return p.translit.Transliterate(p.script, text)
}

// GetProgress returns the current run counters.
func (p *Pipeline) GetProgress() (processed, skipped, total int32) {
	return atomic.LoadInt32(&p.processedFiles), atomic.LoadInt32(&p.skippedFiles), atomic.LoadInt32(&p.totalFiles)
}

// Outputs returns the files written so far, in input order.
func (p *Pipeline) Outputs() []*model.OutputFile {
	p.mu.Lock()
	sorted := slices.Clone(p.outputs)
	p.mu.Unlock()

	slices.SortFunc(sorted, func(a, b indexedOutput) int {
		return a.index - b.index
	})

	files := make([]*model.OutputFile, len(sorted))
	for i, o := range sorted {
		files[i] = o.file
	}
	return files
}

func (p *Pipeline) reset() {
	atomic.StoreInt32(&p.totalFiles, 0)
	atomic.StoreInt32(&p.processedFiles, 0)
	atomic.StoreInt32(&p.skippedFiles, 0)
	p.mu.Lock()
	p.outputs = nil
	p.mu.Unlock()
}

func (p *Pipeline) writePlaylist(ctx context.Context) {
	outputs := p.Outputs()
	if len(outputs) == 0 {
		return
	}

	batch := model.NewBatch(p.settings.OutputDir(), outputs, time.Now(), p.settings.ToPathConfig())
	content := p.playlist.CreatePlaylist(batch)
	if err := ioutils.WriteFile(ctx, batch.PlaylistPath, []byte(content)); err != nil {
		p.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}
	p.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist: %s", filepath.Base(batch.PlaylistPath)), Level: LevelSuccess})
}

// dumpTag reports every field of rec at verbose level.
func (p *Pipeline) dumpTag(ctx context.Context, stage string, rec *model.TagRecord) {
	if !p.settings.Verbose {
		return
	}

	p.progress(ProgressEvent{Message: fmt.Sprintf("%s transliteration (ID3v2.%d):", stage, rec.Version), Level: LevelVerbose})
	for _, f := range rec.Fields() {
		p.progress(ProgressEvent{Message: fmt.Sprintf("  %s: %s", f.Label, f.Value), Level: LevelVerbose})
	}
	if len(rec.Artwork) > 0 {
		if info, err := p.images.Describe(ctx, rec.Artwork); err == nil {
			p.progress(ProgressEvent{Message: fmt.Sprintf("  Album image: %s %dx%d", info.Format, info.Width, info.Height), Level: LevelVerbose})
		}
	}
}

func (p *Pipeline) progress(event ProgressEvent) {
	if p.onProgress != nil {
		p.onProgress(event)
	}
}
