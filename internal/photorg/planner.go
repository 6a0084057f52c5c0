package photorg

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"photorg/internal/digest"
)

// DefaultExtensions are the photo extensions organized when none are configured.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

// PlanOptions configures a Planner.
type PlanOptions struct {
	// Extensions selects which files are photos. Matching is case-insensitive
	// and a missing leading dot is tolerated.
	Extensions []string

	// HashAlgorithm is used for duplicate detection.
	HashAlgorithm string
}

// Planner computes the commands that organize a target directory into
// per-month subdirectories.
type Planner struct {
	fsmgr      FilesystemManager
	reader     MetadataReader
	decider    DecisionProvider
	observer   Observer
	logger     Logger
	extensions map[string]bool
	algorithm  string
}

// NewPlanner creates a Planner with the provided dependencies.
func NewPlanner(fsmgr FilesystemManager, reader MetadataReader, decider DecisionProvider, observer Observer, logger Logger, opts PlanOptions) *Planner {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	extensions := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[ext] = true
	}

	algorithm := opts.HashAlgorithm
	if algorithm == "" {
		algorithm = digest.Default
	}

	return &Planner{
		fsmgr:      fsmgr,
		reader:     reader,
		decider:    decider,
		observer:   observer,
		logger:     logger,
		extensions: extensions,
		algorithm:  algorithm,
	}
}

// Plan returns the ordered commands that organize target. An empty plan
// means there is nothing to do. Plan only reads the filesystem.
//
// If the decision provider aborts, Plan returns an error wrapping ErrAborted.
func (p *Planner) Plan(target *Path) ([]Command, error) {
	if !target.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", target)
	}

	p.observer.DirectoryEntered(target.String())
	children, err := p.fsmgr.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}

	dirs := make(map[string]bool)
	disorganized := make(map[string][]*Photo)
	for _, child := range children {
		if child.IsDir() {
			p.observer.DirectoryFound(child.String())
			dirs[child.String()] = true
			continue
		}
		if !p.isPhoto(child) {
			continue
		}
		photo, err := p.discover(child, false)
		if err != nil {
			return nil, err
		}
		disorganized[photo.Month()] = append(disorganized[photo.Month()], photo)
	}

	months := make([]string, 0, len(disorganized))
	for month := range disorganized {
		months = append(months, month)
	}
	sort.Strings(months)

	var commands []Command

	organized := make(map[string][]*Photo, len(months))
	for _, month := range months {
		dir := filepath.Join(target.String(), month)
		if !dirs[dir] {
			commands = append(commands, CreateDirectory{Path: dir})
			continue
		}
		pool, err := p.listOrganized(dir)
		if err != nil {
			return nil, err
		}
		organized[month] = pool
	}

	unique := make(map[string][]*Photo, len(months))
	for _, month := range months {
		photos := disorganized[month]
		SortPhotos(photos)
		for i, photo := range photos {
			p.observer.CheckingDuplicates(photo)
			original, err := p.findOriginal(photo, organized[month], photos[:i])
			if err != nil {
				return nil, err
			}
			if original == nil {
				unique[month] = append(unique[month], photo)
				continue
			}

			p.observer.DuplicateFound(original, photo)
			action, err := p.decider.ResolveDuplicate(original, photo)
			if err != nil {
				return nil, fmt.Errorf("resolving duplicate %s: %w", photo.Path, err)
			}
			switch action {
			case KeepDuplicate:
				p.logger.Info("keeping duplicate", "path", photo.Path.String(), "original", original.Path.String())
			case DeleteDuplicate:
				commands = append(commands, DeleteFile{Target: photo.Path.String()})
			case AbortDuplicate:
				return nil, fmt.Errorf("duplicate found: %s: %w", photo.Path, ErrAborted)
			default:
				return nil, fmt.Errorf("unknown duplicate action %d", action)
			}
		}
	}

	// A month whose new photos were all duplicates keeps its organized
	// photos under their current names.
	for _, month := range months {
		if len(unique[month]) == 0 {
			continue
		}
		merged := make([]*Photo, 0, len(unique[month])+len(organized[month]))
		merged = append(merged, unique[month]...)
		merged = append(merged, organized[month]...)
		SortPhotos(merged)
		commands = append(commands, moves(filepath.Join(target.String(), month), merged)...)
	}

	p.logger.Debug("plan computed", "target", target.String(), "commands", len(commands))
	return commands, nil
}

// isPhoto reports whether path has one of the configured extensions.
func (p *Planner) isPhoto(path *Path) bool {
	return p.extensions[strings.ToLower(path.Ext())]
}

// discover builds the Photo for path and settles an uncertain capture time
// with the decision provider before the photo is used.
func (p *Planner) discover(path *Path, organized bool) (*Photo, error) {
	photo := NewPhoto(path, p.fsmgr, p.reader)
	p.observer.PhotoFound(photo, organized)
	if !photo.Uncertain() {
		return photo, nil
	}

	decision, err := p.decider.ResolveUncertainTime(photo)
	if err != nil {
		return nil, fmt.Errorf("resolving capture time of %s: %w", path, err)
	}
	switch decision.Action {
	case KeepTime:
	case OverrideTime:
		photo.SetUserTime(decision.Time)
		p.logger.Info("capture time set by user", "path", path.String(), "time", photo.Timestamp())
	case AbortTime:
		return nil, fmt.Errorf("capture time uncertain: %s: %w", path, ErrAborted)
	default:
		return nil, fmt.Errorf("unknown time action %d", decision.Action)
	}
	return photo, nil
}

// listOrganized returns the photos already inside the month directory dir.
func (p *Planner) listOrganized(dir string) ([]*Photo, error) {
	dirPath, err := p.fsmgr.Resolve(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	p.observer.DirectoryEntered(dir)
	children, err := p.fsmgr.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var pool []*Photo
	for _, child := range children {
		if child.IsDir() || !p.isPhoto(child) {
			continue
		}
		photo, err := p.discover(child, true)
		if err != nil {
			return nil, err
		}
		pool = append(pool, photo)
	}
	return pool, nil
}

// findOriginal returns the first photo photo duplicates, searching the
// organized pool before the earlier-sorting disorganized photos.
// It returns nil if photo is unique.
func (p *Planner) findOriginal(photo *Photo, organized, earlier []*Photo) (*Photo, error) {
	for _, pool := range [][]*Photo{organized, earlier} {
		for _, other := range pool {
			dup, err := IsDuplicate(photo, other, p.algorithm)
			if err != nil {
				return nil, fmt.Errorf("comparing %s with %s: %w", photo.Path, other.Path, err)
			}
			if dup {
				return other, nil
			}
		}
	}
	return nil, nil
}

// moves names each sorted photo "<timestamp> <NNN><ext>" inside dir and
// returns a MoveFile for every photo not already at its name.
func moves(dir string, photos []*Photo) []Command {
	var commands []Command
	for i, seq := range sequenceNumbers(photos) {
		photo := photos[i]
		dest := filepath.Join(dir, DestinationName(photo, seq))
		if dest == photo.Path.String() {
			continue
		}
		commands = append(commands, MoveFile{Source: photo.Path.String(), Destination: dest})
	}
	return commands
}

// sequenceNumbers numbers sorted photos within runs of identical timestamps,
// starting at 1 for each new timestamp.
func sequenceNumbers(photos []*Photo) []int {
	seqs := make([]int, len(photos))
	last := ""
	n := 0
	for i, photo := range photos {
		stamp := photo.Timestamp()
		if stamp == last {
			n++
		} else {
			last = stamp
			n = 1
		}
		seqs[i] = n
	}
	return seqs
}

// DestinationName returns the organized filename for photo with sequence
// number seq, keeping the photo's original extension.
func DestinationName(photo *Photo, seq int) string {
	return fmt.Sprintf("%s %03d%s", photo.Timestamp(), seq, photo.Path.Ext())
}
