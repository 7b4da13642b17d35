package racetime

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantMs int64
		wantOK bool
	}{
		{name: "full marathon time", input: "2:04:00", wantMs: 2*3600000 + 4*60000, wantOK: true},
		{name: "two digit hours", input: "10:15:30", wantMs: 10*3600000 + 15*60000 + 30000, wantOK: true},
		{name: "minute seconds form", input: "4:59", wantMs: 4*60000 + 59000, wantOK: true},
		{name: "two digit minutes no hours", input: "59:59", wantMs: 59*60000 + 59000, wantOK: true},
		{name: "fractional seconds", input: "2:04:00.512", wantMs: 2*3600000 + 4*60000 + 512, wantOK: true},
		{name: "short fraction scales up", input: "1:30.5", wantMs: 90000 + 500, wantOK: true},
		{name: "surrounding whitespace", input: " 2:05:00 ", wantMs: 2*3600000 + 5*60000, wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "bare seconds", input: "42", wantOK: false},
		{name: "one digit seconds", input: "4:5", wantOK: false},
		{name: "one digit minutes with hours", input: "2:4:00", wantOK: false},
		{name: "minutes overflow", input: "2:61:00", wantOK: false},
		{name: "seconds overflow", input: "2:04:61", wantOK: false},
		{name: "three digit hours", input: "100:04:00", wantOK: false},
		{name: "negative segment", input: "-2:04:00", wantOK: false},
		{name: "garbage", input: "dnf", wantOK: false},
		{name: "long fraction", input: "2:04:00.1234", wantOK: false},
		{name: "trailing dot", input: "2:04:00.", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseClock(tc.input)
			if ok != tc.wantOK {
				t.Fatalf("ParseClock(%q) ok=%v want=%v", tc.input, ok, tc.wantOK)
			}
			if !tc.wantOK {
				return
			}
			if got.Millis() != tc.wantMs {
				t.Fatalf("ParseClock(%q) = %d ms, want %d", tc.input, got.Millis(), tc.wantMs)
			}
		})
	}
}

func TestClockRoundTrip(t *testing.T) {
	inputs := []string{"2:04:00", "0:00", "59:59", "1:00:00", "2:05:33.120", "9:59:59.001"}
	for _, raw := range inputs {
		parsed, ok := ParseClock(raw)
		if !ok {
			t.Fatalf("ParseClock(%q) unexpectedly failed", raw)
		}
		again, ok := ParseClock(parsed.Clock())
		if !ok {
			t.Fatalf("ParseClock(Clock(%q)) = ParseClock(%q) failed", raw, parsed.Clock())
		}
		if again != parsed {
			t.Fatalf("round trip mismatch for %q: %d != %d", raw, again.Millis(), parsed.Millis())
		}
	}
}

func TestFromMillis(t *testing.T) {
	if _, ok := FromMillis(-1); ok {
		t.Fatal("FromMillis(-1) should be rejected")
	}
	got, ok := FromMillis(7440000)
	if !ok {
		t.Fatal("FromMillis(7440000) should be accepted")
	}
	if got.Clock() != "2:04:00" {
		t.Fatalf("unexpected clock: got=%s want=2:04:00", got.Clock())
	}
}

func TestCheckpointDistances(t *testing.T) {
	if len(CheckpointOrder) != len(CheckpointKm) {
		t.Fatalf("checkpoint order and distance table disagree: %d vs %d", len(CheckpointOrder), len(CheckpointKm))
	}
	last := 0.0
	for _, cp := range CheckpointOrder {
		km, ok := CheckpointKm[cp]
		if !ok {
			t.Fatalf("checkpoint %q has no distance", cp)
		}
		if km <= last {
			t.Fatalf("checkpoint %q out of course order", cp)
		}
		if km >= MarathonKm {
			t.Fatalf("checkpoint %q is past the finish", cp)
		}
		last = km
	}
	if KnownCheckpoint("25k") {
		t.Fatal("25k should not be a known checkpoint")
	}
}
