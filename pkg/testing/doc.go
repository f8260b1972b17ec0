// Package testing provides a harness for testing drawers without a real
// display.
//
// # Quick Start
//
// Create a tester, drag the content pane, and make assertions:
//
//	func TestOpensOnDrag(t *testing.T) {
//	    tester := drawertest.NewDrawerTesterWithT(t)
//
//	    tester.DragFrom(graphics.Offset{X: 10, Y: 100}, graphics.Offset{X: 120})
//	    if err := tester.PumpAndSettle(time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    if !tester.Drawer().IsOpen() {
//	        t.Error("expected drawer to open")
//	    }
//	}
//
// # Display Ops
//
// Paint records every canvas call as a DisplayOp, so tests can assert on the
// compositing order and on the clip and shadow rectangles:
//
//	ops := tester.Paint()
//
// # Snapshot Testing
//
// Capture and compare frame snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/half_open.snapshot.json")
//
// Update snapshots with:
//
//	DRAWER_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Animation Testing
//
// The tester installs a FakeClock, so settles only advance when the test
// says so:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import drawertest "github.com/go-drift/drawer/pkg/testing"
package testing
