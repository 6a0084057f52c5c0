package testutil

import "photorg/internal/photorg"

// StubDecider answers every prompt with a fixed decision and records the
// photos it was asked about.
type StubDecider struct {
	Time      photorg.TimeDecision
	Duplicate photorg.DuplicateAction

	// TimeFunc, when set, overrides Time per photo.
	TimeFunc func(photo *photorg.Photo) photorg.TimeDecision

	UncertainCalls []*photorg.Photo
	DuplicateCalls [][2]*photorg.Photo
}

// NewStubDecider returns a StubDecider that keeps everything.
func NewStubDecider() *StubDecider {
	return &StubDecider{
		Time:      photorg.TimeDecision{Action: photorg.KeepTime},
		Duplicate: photorg.KeepDuplicate,
	}
}

func (d *StubDecider) ResolveUncertainTime(photo *photorg.Photo) (photorg.TimeDecision, error) {
	d.UncertainCalls = append(d.UncertainCalls, photo)
	if d.TimeFunc != nil {
		return d.TimeFunc(photo), nil
	}
	return d.Time, nil
}

func (d *StubDecider) ResolveDuplicate(original, duplicate *photorg.Photo) (photorg.DuplicateAction, error) {
	d.DuplicateCalls = append(d.DuplicateCalls, [2]*photorg.Photo{original, duplicate})
	return d.Duplicate, nil
}

var _ photorg.DecisionProvider = (*StubDecider)(nil)
