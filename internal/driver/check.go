// Package driver checks HLSL files: it loads them, parses each one and
// binds it into its own compilation.
package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"hlsltools/internal/compilation"
	"hlsltools/internal/diag"
	"hlsltools/internal/frontend"
	"hlsltools/internal/observ"
	"hlsltools/internal/source"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
	"hlsltools/internal/trace"
)

// Options configure a check run. The zero value checks with one worker per
// CPU and keeps every diagnostic.
type Options struct {
	Jobs             int
	MaxDiagnostics   int
	IgnoreWarnings   bool
	WarningsAsErrors bool
	// SyntaxOnly stops after parsing.
	SyntaxOnly bool
	Hints      symbols.Hints
	// BaseDir is used to shorten paths in output.
	BaseDir string

	Events chan<- Event
	Timer  *observ.Timer
}

// FileResult is the outcome for one file. Model is nil when the run was
// syntax-only.
type FileResult struct {
	Path   string
	FileID source.FileID
	Tree   *syntax.Tree
	Model  *compilation.SemanticModel
	Bag    *diag.Bag
}

// Result holds every checked file in input order.
type Result struct {
	FileSet *source.FileSet
	Files   []*FileResult
}

// Diagnostics returns the diagnostics of all files, file by file.
func (r *Result) Diagnostics() []*diag.Diagnostic {
	if r == nil {
		return nil
	}
	var out []*diag.Diagnostic
	for _, f := range r.Files {
		out = append(out, f.Bag.Items()...)
	}
	return out
}

// HasErrors reports whether any file produced an error.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	for _, f := range r.Files {
		if f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// CheckFiles loads paths and checks them in parallel. Files are loaded
// sequentially because the file set is not safe for concurrent use; each
// file then gets an independent compilation.
func CheckFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "check")
	defer span.End()
	span.Set("files", len(paths))

	fs := source.NewFileSetWithBase(opts.BaseDir)
	result := &Result{FileSet: fs, Files: make([]*FileResult, len(paths))}
	if len(paths) == 0 {
		return result, nil
	}

	for _, p := range paths {
		emit(opts.Events, Event{File: p, Stage: StageLoad, Status: StatusQueued})
	}

	loadIdx := opts.Timer.Begin("load")
	for i, p := range paths {
		emit(opts.Events, Event{File: p, Stage: StageLoad, Status: StatusWorking})
		id, err := fs.Load(p)
		if err != nil {
			emit(opts.Events, Event{File: p, Stage: StageLoad, Status: StatusError, Errors: 1})
			opts.Timer.End(loadIdx, "")
			return nil, fmt.Errorf("load %s: %w", p, err)
		}
		result.Files[i] = &FileResult{Path: p, FileID: id}
	}
	opts.Timer.End(loadIdx, fmt.Sprintf("files=%d", len(paths)))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for _, fr := range result.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return checkOne(gctx, fs.Get(fr.FileID), fr, opts)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// CheckSource checks text as if it were the contents of path. Events are not
// emitted.
func CheckSource(ctx context.Context, path, text string, opts Options) (*Result, error) {
	fs := source.NewFileSetWithBase(opts.BaseDir)
	id := fs.AddVirtual(path, []byte(text))
	fr := &FileResult{Path: path, FileID: id}
	opts.Events = nil
	if err := checkOne(ctx, fs.Get(id), fr, opts); err != nil {
		return nil, err
	}
	return &Result{FileSet: fs, Files: []*FileResult{fr}}, nil
}

func checkOne(ctx context.Context, file *source.File, fr *FileResult, opts Options) error {
	ctx, span := trace.Start(ctx, trace.ScopeFile, fr.Path)
	defer span.End()

	bag := diag.NewBag(opts.MaxDiagnostics)
	fr.Bag = bag

	emit(opts.Events, Event{File: fr.Path, Stage: StageParse, Status: StatusWorking})
	var (
		tree *syntax.Tree
		err  error
	)
	opts.Timer.Measure("parse", func() string {
		pctx, pass := trace.Start(ctx, trace.ScopePass, "parse")
		tree, err = frontend.Parse(pctx, file, diag.BagReporter{Bag: bag})
		pass.Fail(err)
		pass.End()
		return ""
	})
	if err != nil {
		span.Fail(err)
		emit(opts.Events, Event{File: fr.Path, Stage: StageParse, Status: StatusError, Errors: 1})
		return fmt.Errorf("parse %s: %w", fr.Path, err)
	}
	fr.Tree = tree

	if !opts.SyntaxOnly {
		emit(opts.Events, Event{File: fr.Path, Stage: StageBind, Status: StatusWorking})
		opts.Timer.Measure("bind", func() string {
			comp := compilation.New(tree, compilation.Options{MaxDiagnostics: opts.MaxDiagnostics, Hints: opts.Hints})
			fr.Model = comp.SemanticModel(ctx)
			return ""
		})
		for _, d := range fr.Model.GetDiagnostics() {
			c := *d
			if !bag.Add(&c) {
				break
			}
		}
	}

	applyPolicy(bag, opts)
	bag.Sort()

	errs := 0
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			errs++
		}
	}
	stage, status := StageBind, StatusDone
	if opts.SyntaxOnly {
		stage = StageParse
	}
	if errs > 0 {
		status = StatusError
	}
	emit(opts.Events, Event{File: fr.Path, Stage: stage, Status: status, Errors: errs})
	span.Set("diagnostics", bag.Len()).Set("errors", errs)
	return nil
}

// applyPolicy drops or promotes warnings as requested.
func applyPolicy(bag *diag.Bag, opts Options) {
	if opts.IgnoreWarnings {
		bag.Filter(func(d *diag.Diagnostic) bool {
			return d.Severity >= diag.SevError
		})
	}
	if opts.WarningsAsErrors {
		for _, d := range bag.Items() {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
		}
	}
}
