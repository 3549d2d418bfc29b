package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAggregates(t *testing.T) {
	Reset()
	for i := 0; i < 3; i++ {
		stop := Track("test.op")
		time.Sleep(time.Millisecond)
		stop()
	}
	Track("test.cheap")()

	snap := Snapshot()
	if len(snap) != 2 {
		t.Fatalf("got %d entries", len(snap))
	}
	if snap[0].Name != "test.op" || snap[0].Calls != 3 {
		t.Fatalf("first entry %+v", snap[0])
	}
	if snap[0].Mean() < time.Millisecond {
		t.Fatalf("mean %v", snap[0].Mean())
	}

	top := TopN(1)
	if !strings.HasPrefix(top, "test.op:") || !strings.HasSuffix(top, "/3") {
		t.Fatalf("TopN = %q", top)
	}
	if TopN(10) == top {
		t.Fatal("TopN(10) should list both entries")
	}

	Reset()
	if len(Snapshot()) != 0 {
		t.Fatal("Reset did not clear totals")
	}
}
