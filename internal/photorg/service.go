package photorg

import "fmt"

// Report describes the outcome of a completed run.
type Report struct {
	Commands  []Command
	Simulated bool
	Applied   bool
}

// NothingToDo reports whether the plan was empty.
func (r *Report) NothingToDo() bool {
	return len(r.Commands) == 0
}

// Service is the run controller: it plans, validates the plan against a
// simulated filesystem and only then applies it for real.
type Service struct {
	fsmgr    FilesystemManager
	planner  *Planner
	observer Observer
	logger   Logger
}

// NewService creates a new Service with the provided dependencies.
func NewService(fsmgr FilesystemManager, reader MetadataReader, decider DecisionProvider, observer Observer, logger Logger, opts PlanOptions) *Service {
	return &Service{
		fsmgr:    fsmgr,
		planner:  NewPlanner(fsmgr, reader, decider, observer, logger, opts),
		observer: observer,
		logger:   logger,
	}
}

// Organize plans the organization of target and validates the plan against a
// snapshot of the filesystem. Unless simulateOnly is set, the plan is then
// applied. Nothing on disk changes unless the whole plan simulates cleanly.
//
// A failure while applying is fatal and leaves already-applied commands in
// place; the returned error names the failing command.
func (s *Service) Organize(target *Path, simulateOnly bool) (*Report, error) {
	s.observer.PhaseStarted(PhasePlan, target.String())
	commands, err := s.planner.Plan(target)
	if err != nil {
		return nil, err
	}
	s.observer.PhaseFinished(PhasePlan)

	report := &Report{Commands: commands}
	if len(commands) == 0 {
		s.observer.NothingToDo()
		s.logger.Info("nothing to do", "target", target.String())
		return report, nil
	}

	if err := s.Simulate(target, commands); err != nil {
		return report, err
	}
	report.Simulated = true

	if simulateOnly {
		return report, nil
	}

	if err := s.Execute(target, commands); err != nil {
		return report, err
	}
	report.Applied = true
	return report, nil
}

// Simulate replays commands against a Simulacrum seeded from every path
// below target. It returns the first failing command's error.
func (s *Service) Simulate(target *Path, commands []Command) error {
	s.observer.PhaseStarted(PhaseSimulate, target.String())

	paths, err := s.fsmgr.Walk(target)
	if err != nil {
		return fmt.Errorf("listing %s for simulation: %w", target, err)
	}
	sim := NewSimulacrum(paths)

	for _, cmd := range commands {
		s.observer.CommandStarted(PhaseSimulate, cmd)
		if err := cmd.Apply(sim); err != nil {
			s.logger.Error("simulation failed", "command", cmd.String(), "error", err)
			return fmt.Errorf("simulation failed: %w", err)
		}
	}

	s.observer.PhaseFinished(PhaseSimulate)
	s.logger.Info("simulation succeeded", "target", target.String(), "commands", len(commands))
	return nil
}

// Execute applies commands to the real filesystem in order, stopping at the
// first failure.
func (s *Service) Execute(target *Path, commands []Command) error {
	s.observer.PhaseStarted(PhaseExecute, target.String())

	for i, cmd := range commands {
		s.observer.CommandStarted(PhaseExecute, cmd)
		if err := cmd.Apply(s.fsmgr); err != nil {
			s.logger.Error("command failed", "command", cmd.String(), "applied", i, "error", err)
			return fmt.Errorf("applying changes (%d of %d applied): %w", i, len(commands), err)
		}
		s.logger.Debug("command applied", "command", cmd.String())
	}

	s.observer.PhaseFinished(PhaseExecute)
	s.logger.Info("changes applied", "target", target.String(), "commands", len(commands))
	return nil
}
