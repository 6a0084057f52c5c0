package app

import (
	"fmt"
	"os"

	"photorg/internal/config"
	"photorg/internal/fs"
	"photorg/internal/metadata"
	"photorg/internal/photorg"
)

// PhotorgApp is the application layer between the CLI and the organizer.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw string paths, and closes the log file on Close.
type PhotorgApp struct {
	cfg     *config.Config
	fsmgr   *fs.OSFilesystemManager
	reader  *metadata.Reader
	decider photorg.DecisionProvider
	logger  photorg.Logger
	run     *Run
	logFile *os.File
}

// NewPhotorgApp creates a fully wired PhotorgApp from the given config.
// decider settles uncertain capture times and duplicates; verbose mirrors
// the log to stderr. The caller must call Close when done.
func NewPhotorgApp(cfg *config.Config, decider photorg.DecisionProvider, verbose bool) (*PhotorgApp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	fsmgr := fs.NewOSFilesystemManager(cfg.Filesystem.Ignore)
	run := NewRun()

	logger, logFile, err := newLogger(cfg.LogDir, run.ID, verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	return &PhotorgApp{
		cfg:     cfg,
		fsmgr:   fsmgr,
		reader:  metadata.NewReader(fsmgr),
		decider: decider,
		logger:  &slogAdapter{l: logger},
		run:     run,
		logFile: logFile,
	}, nil
}

// Run returns the record of this invocation.
func (a *PhotorgApp) Run() *Run {
	return a.run
}

// Organize resolves the given directory and organizes it. With simulateOnly
// set the plan is validated but not applied.
func (a *PhotorgApp) Organize(rawPath string, simulateOnly bool) (*photorg.Report, error) {
	target, err := a.fsmgr.Resolve(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if !target.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", target)
	}
	if err := a.fsmgr.UseIgnoreFile(target); err != nil {
		return nil, fmt.Errorf("loading ignore file: %w", err)
	}

	a.run.Start(target.String(), simulateOnly)
	a.logger.Info("run started", "target", a.run.Target, "mode", a.run.Mode,
		"hash", a.cfg.Organize.HashAlgorithm)

	svc := photorg.NewService(a.fsmgr, a.reader, a.decider, &logObserver{logger: a.logger}, a.logger, photorg.PlanOptions{
		Extensions:    a.cfg.Organize.Extensions,
		HashAlgorithm: a.cfg.Organize.HashAlgorithm,
	})
	report, err := svc.Organize(target, simulateOnly)

	a.run.Finish(err)
	if err != nil {
		a.logger.Error("run finished", "status", a.run.Status, "error", err)
		return report, err
	}
	a.logger.Info("run finished", "status", a.run.Status, "commands", len(report.Commands))
	return report, nil
}

// Close closes the log file.
func (a *PhotorgApp) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
