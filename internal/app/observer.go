package app

import "photorg/internal/photorg"

// logObserver reports run progress as log lines.
type logObserver struct {
	logger photorg.Logger
}

func (o *logObserver) PhaseStarted(phase photorg.Phase, target string) {
	switch phase {
	case photorg.PhasePlan:
		o.logger.Info("organizing photos", "target", target)
	case photorg.PhaseSimulate:
		o.logger.Info("running simulation of changes", "target", target)
	case photorg.PhaseExecute:
		o.logger.Info("applying changes", "target", target)
	}
}

func (o *logObserver) PhaseFinished(phase photorg.Phase) {
	switch phase {
	case photorg.PhasePlan:
		o.logger.Info("plan ready")
	case photorg.PhaseSimulate:
		o.logger.Info("simulation finished successfully")
	case photorg.PhaseExecute:
		o.logger.Info("all changes applied successfully")
	}
}

func (o *logObserver) DirectoryEntered(path string) {
	o.logger.Debug("entering directory", "path", path)
}

func (o *logObserver) DirectoryFound(path string) {
	o.logger.Info("found child directory", "path", path)
}

func (o *logObserver) PhotoFound(photo *photorg.Photo, organized bool) {
	msg := "found disorganized photo"
	if organized {
		msg = "found organized photo"
	}
	o.logger.Info(msg, "path", photo.Path.String(), "time", photo.Timestamp(), "source", string(photo.Source))
}

func (o *logObserver) CheckingDuplicates(photo *photorg.Photo) {
	o.logger.Debug("checking for duplicates", "path", photo.Path.String())
}

func (o *logObserver) DuplicateFound(original, duplicate *photorg.Photo) {
	o.logger.Warn("duplicate found", "path", duplicate.Path.String(), "original", original.Path.String())
}

func (o *logObserver) CommandStarted(phase photorg.Phase, cmd photorg.Command) {
	o.logger.Info(cmd.String(), "phase", string(phase))
}

func (o *logObserver) NothingToDo() {
	o.logger.Info("no actions needed")
}

var _ photorg.Observer = (*logObserver)(nil)
