package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fakeT records failures instead of stopping the test.
type fakeT struct {
	fatals []string
	errors []string
}

func (f *fakeT) Helper()      {}
func (f *fakeT) Name() string { return "TestFake" }
func (f *fakeT) Fatalf(format string, args ...any) {
	f.fatals = append(f.fatals, fmt.Sprintf(format, args...))
}
func (f *fakeT) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func TestSnapshot_RoundTripThroughFile(t *testing.T) {
	tester := NewDrawerTesterWithT(t)
	path := filepath.Join(t.TempDir(), "closed.snapshot.json")

	snap := tester.CaptureSnapshot()
	if err := snap.UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	ft := &fakeT{}
	tester.CaptureSnapshot().MatchesFile(ft, path)
	if len(ft.fatals)+len(ft.errors) != 0 {
		t.Errorf("unexpected failures: %v %v", ft.fatals, ft.errors)
	}
}

func TestSnapshot_MismatchReportsDiff(t *testing.T) {
	tester := NewDrawerTesterWithT(t)
	path := filepath.Join(t.TempDir(), "closed.snapshot.json")
	if err := tester.CaptureSnapshot().UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	tester.Drawer().Open()
	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}

	ft := &fakeT{}
	tester.CaptureSnapshot().MatchesFile(ft, path)
	if len(ft.errors) != 1 {
		t.Fatalf("expected one mismatch, got %v", ft.errors)
	}
	msg := ft.errors[0]
	for _, want := range []string{`-  "state": "closed"`, `+  "state": "opened"`, updateSnapshotsEnv} {
		if !strings.Contains(msg, want) {
			t.Errorf("mismatch message missing %q:\n%s", want, msg)
		}
	}
}

func TestSnapshot_MissingFile(t *testing.T) {
	tester := NewDrawerTesterWithT(t)
	ft := &fakeT{}
	tester.CaptureSnapshot().MatchesFile(ft, filepath.Join(t.TempDir(), "absent.json"))
	if len(ft.fatals) != 1 || !strings.Contains(ft.fatals[0], "snapshot file missing") {
		t.Errorf("fatals = %v", ft.fatals)
	}
}

func TestSnapshot_UpdateEnv(t *testing.T) {
	t.Setenv(updateSnapshotsEnv, "1")
	tester := NewDrawerTesterWithT(t)
	path := filepath.Join(t.TempDir(), "nested", "snap.json")

	ft := &fakeT{}
	tester.CaptureSnapshot().MatchesFile(ft, path)
	if len(ft.fatals) != 0 {
		t.Fatalf("fatals = %v", ft.fatals)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("snapshot not written: %v", err)
	}
}

func TestSnapshot_Diff(t *testing.T) {
	a := &Snapshot{State: "closed", ShadowOpacity: "00"}
	b := &Snapshot{State: "closed", ShadowOpacity: "00"}
	if d := a.Diff(b); d != "" {
		t.Errorf("equal snapshots diff = %q", d)
	}
	b.ContentLeft = 12
	if d := a.Diff(b); !strings.Contains(d, `-  "contentLeft": 12,`) {
		t.Errorf("diff = %q", d)
	}
}
