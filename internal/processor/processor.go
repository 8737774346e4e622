package processor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/handiism/langpack/internal/archive"
	"github.com/handiism/langpack/internal/config"
	"github.com/handiism/langpack/internal/conflict"
	ioutils "github.com/handiism/langpack/internal/io"
	"github.com/handiism/langpack/internal/model"
	"github.com/handiism/langpack/internal/output"
	"github.com/handiism/langpack/internal/rename"
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

// ProgressEvent represents a processing progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// scratchPrefix names the per-run extraction directory.
const scratchPrefix = "langpack-"

// Processor runs the pipeline for one archive at a time.
type Processor struct {
	settings   *config.Settings
	fs         afero.Fs
	provider   conflict.DecisionProvider
	log        *zap.Logger
	onProgress func(ProgressEvent)
	now        func() time.Time
}

// Option configures a Processor.
type Option func(*Processor)

// WithFs sets the file system. The default is the OS file system.
func WithFs(fs afero.Fs) Option {
	return func(p *Processor) { p.fs = fs }
}

// WithDecisionProvider sets who resolves output name conflicts. The
// default prompts on stdin and stdout.
func WithDecisionProvider(provider conflict.DecisionProvider) Option {
	return func(p *Processor) { p.provider = provider }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.Logger) Option {
	return func(p *Processor) { p.log = log }
}

// WithProgress sets the progress callback.
func WithProgress(onProgress func(ProgressEvent)) Option {
	return func(p *Processor) { p.onProgress = onProgress }
}

// WithClock sets the time source used for output names and timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// New creates a Processor.
func New(settings *config.Settings, opts ...Option) *Processor {
	p := &Processor{
		settings: settings,
		fs:       afero.NewOsFs(),
		log:      zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.provider == nil {
		p.provider = conflict.NewLineProvider(os.Stdin, os.Stdout)
	}
	return p
}

// Process runs the pipeline for the archive at input and returns its
// result. Process never panics; an unexpected failure becomes a failed
// result carrying the panic message.
func (p *Processor) Process(ctx context.Context, input string) (result *model.ProcessingResult) {
	runID := ulid.Make().String()
	log := p.log.With(zap.String("run_id", runID), zap.String("input", input))
	result = model.NewProcessingResult(runID, input, p.now())

	defer func() {
		if r := recover(); r != nil {
			log.Error("processing panicked", zap.Any("panic", r), zap.Stack("stack"))
			result.Fail(fmt.Sprintf("Unexpected error: %v", r))
			p.progress(ProgressEvent{Message: result.ErrorMessage, Level: LevelError})
		}
	}()

	return p.run(ctx, log, result)
}

func (p *Processor) run(ctx context.Context, log *zap.Logger, result *model.ProcessingResult) *model.ProcessingResult {
	input := result.InputFile

	if err := p.settings.Validate(); err != nil {
		return p.fail(result, fmt.Sprintf("%s: %v", model.MsgInvalidConfig, err))
	}

	p.progress(ProgressEvent{Message: fmt.Sprintf("Validating archive: %s", input), Level: LevelInfo})
	info := archive.Validate(p.fs, input, p.settings)
	if !info.IsValid {
		log.Debug("archive validation failed", zap.Error(info.Err))
		return p.fail(result, info.ErrorMessage)
	}
	p.progress(ProgressEvent{
		Message: fmt.Sprintf("%s contains %d entries, %d language file(s)", info.Name(), info.FileCount, len(info.LanguageFiles)),
		Level:   LevelInfo,
	})
	if !info.HasLanguageFiles() {
		p.progress(ProgressEvent{Message: fmt.Sprintf("No entry in %s matches a configured language code", info.Name()), Level: LevelWarning})
	}
	for _, name := range info.LanguageFiles {
		p.progress(ProgressEvent{Message: fmt.Sprintf("Language file: %s", name), Level: LevelVerbose})
	}

	namer := output.NewNamer(p.fs, p.settings.Options.OutputFormat, info.ParentDir(), p.now)
	resolution := conflict.Overwrite
	if exists, name := namer.CheckConflict(); exists {
		p.progress(ProgressEvent{Message: fmt.Sprintf("Output file already exists: %s", name), Level: LevelWarning})
		resolution = p.provider.Decide(ctx, name)
		log.Debug("conflict resolved", zap.String("existing", name), zap.Stringer("resolution", resolution))
	}

	var useCounter bool
	switch resolution {
	case conflict.Overwrite:
	case conflict.AddCounter:
		useCounter = true
	case conflict.Cancel:
		return p.fail(result, model.MsgCancelled)
	default:
		panic(fmt.Sprintf("unhandled conflict resolution %v", resolution))
	}

	filename := namer.GenerateFilename(useCounter)
	outputPath := namer.ResolvePath(filename)
	log.Debug("output resolved", zap.String("output", outputPath), zap.Bool("counter", useCounter))

	if ctx.Err() != nil {
		return p.fail(result, model.MsgInterrupted)
	}

	scratch, err := ioutils.NewScratch(p.fs, scratchPrefix)
	if err != nil {
		log.Debug("scratch directory", zap.Error(err))
		return p.fail(result, model.MsgExtractFailed)
	}
	defer func() {
		if err := scratch.Release(); err != nil {
			log.Warn("scratch directory not removed", zap.String("path", scratch.Path()), zap.Error(err))
		}
	}()

	archiver := archive.NewArchiver(p.fs, p.settings.Options.CompressionLevel, log)

	p.progress(ProgressEvent{Message: "Extracting archive", Level: LevelVerbose})
	if !archiver.Extract(input, scratch.Path()) {
		return p.fail(result, model.MsgExtractFailed)
	}

	for _, op := range rename.NewRenamer(p.fs, p.settings, log).FindAndRename(scratch.Path()) {
		result.AddFileOperation(op)
		p.progress(ProgressEvent{Message: fmt.Sprintf("Renamed: %s -> %s", op.OriginalName, op.NewName), Level: LevelVerbose})
	}
	if result.ProcessedFilesCount() == 0 {
		return p.fail(result, model.MsgNoLanguageFiles)
	}

	if ctx.Err() != nil {
		return p.fail(result, model.MsgInterrupted)
	}

	if p.settings.Options.BackupOriginal {
		p.backup(log, input)
	}

	p.progress(ProgressEvent{Message: fmt.Sprintf("Creating archive: %s", filename), Level: LevelVerbose})
	if !archiver.Create(scratch.Path(), outputPath) {
		return p.fail(result, model.MsgCreateFailed)
	}

	result.Success = true
	result.OutputFile = outputPath
	result.UsedCounter = useCounter
	if useCounter {
		ext := p.settings.Options.OutputFormat.Extension
		if n, ok := output.ParseCounter(strings.TrimSuffix(filename, ext)); ok {
			result.CounterValue = &n
		}
	}

	p.progress(ProgressEvent{
		Message: fmt.Sprintf("Processed %d file(s) into %s", result.ProcessedFilesCount(), filename),
		Level:   LevelSuccess,
	})
	return result
}

// backup copies the input archive to <input>.bak. A failed backup is
// reported but does not stop the run.
func (p *Processor) backup(log *zap.Logger, input string) {
	dst := input + ".bak"
	if err := ioutils.CopyFile(p.fs, input, dst); err != nil {
		log.Debug("backup failed", zap.String("backup", dst), zap.Error(err))
		p.progress(ProgressEvent{Message: fmt.Sprintf("Could not back up original archive: %v", err), Level: LevelWarning})
		return
	}
	p.progress(ProgressEvent{Message: fmt.Sprintf("Backed up original archive to %s", dst), Level: LevelVerbose})
}

func (p *Processor) fail(result *model.ProcessingResult, msg string) *model.ProcessingResult {
	p.progress(ProgressEvent{Message: msg, Level: LevelError})
	return result.Fail(msg)
}

func (p *Processor) progress(event ProgressEvent) {
	if p.onProgress != nil {
		p.onProgress(event)
	}
}
