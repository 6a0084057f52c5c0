package photorg_test

import (
	"errors"
	"slices"
	"testing"

	"photorg/internal/photorg"
	"photorg/internal/testutil"
)

type plannerFixture struct {
	fsmgr    *testutil.MockFilesystemManager
	reader   *testutil.StubMetadataReader
	decider  *testutil.StubDecider
	observer *testutil.RecordingObserver
}

func newPlannerFixture() *plannerFixture {
	fsmgr := testutil.NewMockFilesystemManager()
	fsmgr.AddDirectory("/photos")
	return &plannerFixture{
		fsmgr:    fsmgr,
		reader:   testutil.NewStubMetadataReader(),
		decider:  testutil.NewStubDecider(),
		observer: &testutil.RecordingObserver{},
	}
}

// addPhoto adds a file whose embedded capture time is capture.
func (f *plannerFixture) addPhoto(path, content, capture string) {
	f.fsmgr.AddFile(path, []byte(content))
	f.reader.SetCaptureTime(path, capture)
}

func (f *plannerFixture) plan(t *testing.T, opts photorg.PlanOptions) ([]photorg.Command, error) {
	t.Helper()
	target, err := f.fsmgr.Resolve("/photos")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	planner := photorg.NewPlanner(f.fsmgr, f.reader, f.decider, f.observer, photorg.NewNopLogger(), opts)
	return planner.Plan(target)
}

func commandStrings(commands []photorg.Command) []string {
	out := make([]string, len(commands))
	for i, cmd := range commands {
		out[i] = cmd.String()
	}
	return out
}

func assertCommands(t *testing.T, got []photorg.Command, want []string) {
	t.Helper()
	if gotStrings := commandStrings(got); !slices.Equal(gotStrings, want) {
		t.Errorf("commands =\n  %q\nwant\n  %q", gotStrings, want)
	}
}

func TestPlan_identicalPhotosInNewMonth(t *testing.T) {
	f := newPlannerFixture()
	f.addPhoto("/photos/photo1.jpg", "same bytes", "2023:05:01 10:00:00")
	f.addPhoto("/photos/photo2.jpg", "same bytes", "2023:05:01 10:00:00")
	f.decider.Duplicate = photorg.DeleteDuplicate

	commands, err := f.plan(t, photorg.PlanOptions{})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	assertCommands(t, commands, []string{
		`mkdir "/photos/2023-05"`,
		`rm "/photos/photo2.jpg"`,
		`mv "/photos/photo1.jpg" "/photos/2023-05/2023-05-01 10:00:00 001.jpg"`,
	})

	if len(f.decider.DuplicateCalls) != 1 {
		t.Fatalf("duplicate prompts = %d, want 1", len(f.decider.DuplicateCalls))
	}
	call := f.decider.DuplicateCalls[0]
	if call[0].Path.String() != "/photos/photo1.jpg" || call[1].Path.String() != "/photos/photo2.jpg" {
		t.Errorf("duplicate prompt = (%s, %s), want (photo1.jpg, photo2.jpg)", call[0].Path, call[1].Path)
	}
	if !f.observer.Has("duplicate-found /photos/photo2.jpg of /photos/photo1.jpg") {
		t.Errorf("missing duplicate-found event in %q", f.observer.Events)
	}
	if len(f.decider.UncertainCalls) != 0 {
		t.Errorf("uncertain prompts = %d, want 0", len(f.decider.UncertainCalls))
	}
}

func TestPlan_existingMonthContinuesSequence(t *testing.T) {
	f := newPlannerFixture()
	f.addPhoto("/photos/2023-05/2023-05-01 10:00:00 001.jpg", "first photo", "2023:05:01 10:00:00")
	f.addPhoto("/photos/img002.jpg", "second photo", "2023:05:01 10:00:00")

	commands, err := f.plan(t, photorg.PlanOptions{})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	assertCommands(t, commands, []string{
		`mv "/photos/img002.jpg" "/photos/2023-05/2023-05-01 10:00:00 002.jpg"`,
	})
	if len(f.decider.DuplicateCalls) != 0 {
		t.Errorf("duplicate prompts = %d, want 0", len(f.decider.DuplicateCalls))
	}
	if !f.observer.Has("photo-found /photos/2023-05/2023-05-01 10:00:00 001.jpg organized=true") {
		t.Errorf("organized photo not reported in %q", f.observer.Events)
	}
	if !f.observer.Has("directory-found /photos/2023-05") {
		t.Errorf("month directory not reported in %q", f.observer.Events)
	}
}

func TestPlan_sequenceNumbersPerTimestamp(t *testing.T) {
	f := newPlannerFixture()
	f.addPhoto("/photos/a.jpg", "a", "2023:05:01 10:00:00")
	f.addPhoto("/photos/b.jpg", "bb", "2023:05:01 10:00:00")
	f.addPhoto("/photos/c.jpg", "ccc", "2023:05:01 10:00:00")
	f.addPhoto("/photos/d.jpg", "dddd", "2023:05:01 10:00:01")

	commands, err := f.plan(t, photorg.PlanOptions{})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	assertCommands(t, commands, []string{
		`mkdir "/photos/2023-05"`,
		`mv "/photos/a.jpg" "/photos/2023-05/2023-05-01 10:00:00 001.jpg"`,
		`mv "/photos/b.jpg" "/photos/2023-05/2023-05-01 10:00:00 002.jpg"`,
		`mv "/photos/c.jpg" "/photos/2023-05/2023-05-01 10:00:00 003.jpg"`,
		`mv "/photos/d.jpg" "/photos/2023-05/2023-05-01 10:00:01 001.jpg"`,
	})
}

func TestPlan_monthsInOrder(t *testing.T) {
	f := newPlannerFixture()
	f.addPhoto("/photos/summer.jpg", "summer", "2023:07:14 12:00:00")
	f.addPhoto("/photos/winter.jpg", "winter", "2022:12:31 23:59:59")
	f.addPhoto("/photos/spring.jpg", "spring", "2023:04:01 08:30:00")
	f.fsmgr.AddDirectory("/photos/2023-04")

	commands, err := f.plan(t, photorg.PlanOptions{})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	assertCommands(t, commands, []string{
		`mkdir "/photos/2022-12"`,
		`mkdir "/photos/2023-07"`,
		`mv "/photos/winter.jpg" "/photos/2022-12/2022-12-31 23:59:59 001.jpg"`,
		`mv "/photos/spring.jpg" "/photos/2023-04/2023-04-01 08:30:00 001.jpg"`,
		`mv "/photos/summer.jpg" "/photos/2023-07/2023-07-14 12:00:00 001.jpg"`,
	})
}

func TestPlan_organizedPhotoIsAlwaysTheOriginal(t *testing.T) {
	f := newPlannerFixture()
	f.addPhoto("/photos/2023-05/2023-05-01 10:00:00 001.jpg", "same bytes", "2023:05:01 10:00:00")
	f.addPhoto("/photos/copy.jpg", "same bytes", "2023:05:01 10:00:00")
	f.decider.Duplicate = photorg.DeleteDuplicate

	commands, err := f.plan(t, photorg.PlanOptions{})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	assertCommands(t, commands, []string{`rm "/photos/copy.jpg"`})
	if len(f.decider.DuplicateCalls) != 1 {
		t.Fatalf("duplicate prompts = %d, want 1", len(f.decider.DuplicateCalls))
	}
	if got := f.decider.DuplicateCalls[0][0].Path.String(); got != "/photos/2023-05/2023-05-01 10:00:00 001.jpg" {
		t.Errorf("original = %s, want the organized photo", got)
	}
}

func TestPlan_duplicateIsTheLaterSortedPhoto(t *testing.T) {
	f := newPlannerFixture()
	// Listed first, but captured later.
	f.addPhoto("/photos/a.jpg", "same bytes", "2023:05:01 10:00:05")
	f.addPhoto("/photos/z.jpg", "same bytes", "2023:05:01 10:00:00")
	f.decider.Duplicate = photorg.DeleteDuplicate

	commands, err := f.plan(t, photorg.PlanOptions{})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	assertCommands(t, commands, []string{
		`mkdir "/photos/2023-05"`,
		`rm "/photos/a.jpg"`,
		`mv "/photos/z.jpg" "/photos/2023-05/2023-05-01 10:00:00 001.jpg"`,
	})
	if len(f.decider.DuplicateCalls) != 1 {
		t.Fatalf("duplicate prompts = %d, want 1", len(f.decider.DuplicateCalls))
	}
	call := f.decider.DuplicateCalls[0]
	if call[0].Path.String() != "/photos/z.jpg" || call[1].Path.String() != "/photos/a.jpg" {
		t.Errorf("duplicate prompt = (%s, %s), want (z.jpg, a.jpg)", call[0].Path, call[1].Path)
	}
}

func TestPlan_organizedPoolRenaming(t *testing.T) {
	t.Run("untouched when every new photo is a duplicate", func(t *testing.T) {
		f := newPlannerFixture()
		f.addPhoto("/photos/2023-05/old name.jpg", "same bytes", "2023:05:01 10:00:00")
		f.addPhoto("/photos/copy.jpg", "same bytes", "2023:05:01 10:00:00")
		f.decider.Duplicate = photorg.DeleteDuplicate

		commands, err := f.plan(t, photorg.PlanOptions{})
		if err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		assertCommands(t, commands, []string{`rm "/photos/copy.jpg"`})
	})

	t.Run("renumbered when a new photo joins", func(t *testing.T) {
		f := newPlannerFixture()
		f.addPhoto("/photos/2023-05/old name.jpg", "old bytes", "2023:05:01 10:00:00")
		f.addPhoto("/photos/new.jpg", "new bytes", "2023:05:02 09:00:00")

		commands, err := f.plan(t, photorg.PlanOptions{})
		if err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		assertCommands(t, commands, []string{
			`mv "/photos/2023-05/old name.jpg" "/photos/2023-05/2023-05-01 10:00:00 001.jpg"`,
			`mv "/photos/new.jpg" "/photos/2023-05/2023-05-02 09:00:00 001.jpg"`,
		})
	})
}

func TestPlan_keptDuplicateStaysInPlace(t *testing.T) {
	f := newPlannerFixture()
	f.addPhoto("/photos/photo1.jpg", "same bytes", "2023:05:01 10:00:00")
	f.addPhoto("/photos/photo2.jpg", "same bytes", "2023:05:01 10:00:00")

	commands, err := f.plan(t, photorg.PlanOptions{})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	assertCommands(t, commands, []string{
		`mkdir "/photos/2023-05"`,
		`mv "/photos/photo1.jpg" "/photos/2023-05/2023-05-01 10:00:00 001.jpg"`,
	})
}

func TestPlan_abort(t *testing.T) {
	t.Run("on duplicate", func(t *testing.T) {
		f := newPlannerFixture()
		f.addPhoto("/photos/photo1.jpg", "same bytes", "2023:05:01 10:00:00")
		f.addPhoto("/photos/photo2.jpg", "same bytes", "2023:05:01 10:00:00")
		f.decider.Duplicate = photorg.AbortDuplicate

		commands, err := f.plan(t, photorg.PlanOptions{})
		if !errors.Is(err, photorg.ErrAborted) {
			t.Fatalf("Plan() error = %v, want ErrAborted", err)
		}
		if commands != nil {
			t.Errorf("commands = %v, want none", commands)
		}
	})

	t.Run("on uncertain time", func(t *testing.T) {
		f := newPlannerFixture()
		f.fsmgr.AddFile("/photos/scan.jpg", []byte("no metadata"))
		f.decider.Time = photorg.TimeDecision{Action: photorg.AbortTime}

		_, err := f.plan(t, photorg.PlanOptions{})
		if !errors.Is(err, photorg.ErrAborted) {
			t.Fatalf("Plan() error = %v, want ErrAborted", err)
		}
		if len(f.decider.UncertainCalls) != 1 {
			t.Errorf("uncertain prompts = %d, want 1", len(f.decider.UncertainCalls))
		}
	})
}

func TestPlan_uncertainTime(t *testing.T) {
	t.Run("keep uses mtime", func(t *testing.T) {
		f := newPlannerFixture()
		f.fsmgr.AddFileWithModTime("/photos/scan.jpg", []byte("scan"), localTime(2019, 3, 2, 7, 45, 0))

		commands, err := f.plan(t, photorg.PlanOptions{})
		if err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		assertCommands(t, commands, []string{
			`mkdir "/photos/2019-03"`,
			`mv "/photos/scan.jpg" "/photos/2019-03/2019-03-02 07:45:00 001.jpg"`,
		})
	})

	t.Run("override uses the user's time", func(t *testing.T) {
		f := newPlannerFixture()
		f.fsmgr.AddFile("/photos/scan.jpg", []byte("scan"))
		override := localTime(1999, 12, 31, 23, 0, 0)
		f.decider.Time = photorg.TimeDecision{Action: photorg.OverrideTime, Time: override}

		commands, err := f.plan(t, photorg.PlanOptions{})
		if err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		assertCommands(t, commands, []string{
			`mkdir "/photos/1999-12"`,
			`mv "/photos/scan.jpg" "/photos/1999-12/1999-12-31 23:00:00 001.jpg"`,
		})
		if got := f.decider.UncertainCalls[0].Source; got != photorg.SourceUser {
			t.Errorf("Source = %q, want %q", got, photorg.SourceUser)
		}
	})

	t.Run("organized photo without metadata is confirmed too", func(t *testing.T) {
		f := newPlannerFixture()
		f.fsmgr.AddFile("/photos/2023-05/2023-05-01 10:00:00 001.jpg", []byte("old"))
		f.addPhoto("/photos/new.jpg", "new", "2023:05:02 09:00:00")

		commands, err := f.plan(t, photorg.PlanOptions{})
		if err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		assertCommands(t, commands, []string{
			`mv "/photos/new.jpg" "/photos/2023-05/2023-05-02 09:00:00 001.jpg"`,
		})
		if len(f.decider.UncertainCalls) != 1 {
			t.Errorf("uncertain prompts = %d, want 1", len(f.decider.UncertainCalls))
		}
	})
}

func TestPlan_extensions(t *testing.T) {
	tests := []struct {
		name string
		opts photorg.PlanOptions
		want []string
	}{
		{
			name: "default extensions match case-insensitively",
			want: []string{
				`mkdir "/photos/2023-05"`,
				`mv "/photos/IMG_0001.JPG" "/photos/2023-05/2023-05-01 10:00:00 001.JPG"`,
				`mv "/photos/shot.png" "/photos/2023-05/2023-05-01 10:00:00 002.png"`,
			},
		},
		{
			name: "configured extensions without dots",
			opts: photorg.PlanOptions{Extensions: []string{"png", "txt"}},
			want: []string{
				`mkdir "/photos/2023-05"`,
				`mv "/photos/shot.png" "/photos/2023-05/2023-05-01 10:00:00 001.png"`,
				`mv "/photos/notes.txt" "/photos/2023-05/2023-05-01 10:00:01 001.txt"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPlannerFixture()
			f.addPhoto("/photos/IMG_0001.JPG", "jpeg", "2023:05:01 10:00:00")
			f.addPhoto("/photos/shot.png", "png", "2023:05:01 10:00:00")
			f.addPhoto("/photos/notes.txt", "text", "2023:05:01 10:00:01")

			commands, err := f.plan(t, tt.opts)
			if err != nil {
				t.Fatalf("Plan() error = %v", err)
			}
			assertCommands(t, commands, tt.want)
		})
	}
}

func TestPlan_ignoresNestedDirectoriesOutsideMonths(t *testing.T) {
	f := newPlannerFixture()
	f.addPhoto("/photos/albums/beach.jpg", "beach", "2023:05:01 10:00:00")
	f.addPhoto("/photos/2023-04/2023-04-01 10:00:00 001.jpg", "april", "2023:04:01 10:00:00")

	commands, err := f.plan(t, photorg.PlanOptions{})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(commands) != 0 {
		t.Errorf("commands = %q, want none", commandStrings(commands))
	}
}

func TestPlan_rejectsFiles(t *testing.T) {
	f := newPlannerFixture()
	f.fsmgr.AddFile("/photos/a.jpg", []byte("a"))
	target, err := f.fsmgr.Resolve("/photos/a.jpg")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	planner := photorg.NewPlanner(f.fsmgr, f.reader, f.decider, f.observer, photorg.NewNopLogger(), photorg.PlanOptions{})
	if _, err := planner.Plan(target); err == nil {
		t.Error("Plan() on a file expected error")
	}
}

func TestPlan_unknownHashAlgorithm(t *testing.T) {
	f := newPlannerFixture()
	f.addPhoto("/photos/photo1.jpg", "same bytes", "2023:05:01 10:00:00")
	f.addPhoto("/photos/photo2.jpg", "same bytes", "2023:05:01 10:00:00")

	if _, err := f.plan(t, photorg.PlanOptions{HashAlgorithm: "crc32"}); err == nil {
		t.Error("Plan() with unknown algorithm expected error")
	}
}
