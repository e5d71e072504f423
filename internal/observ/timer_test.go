package observ

import (
	"strings"
	"testing"
)

func TestTimerReportKeepsPhaseOrder(t *testing.T) {
	timer := NewTimer()
	load := timer.Begin("load")
	timer.End(load, "3 files")
	res := timer.Begin("resolve")
	timer.End(res, "")
	timer.End(42, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "load" || report.Phases[0].Note != "3 files" {
		t.Fatalf("first phase = %+v", report.Phases[0])
	}
	if report.Phases[1].Name != "resolve" {
		t.Fatalf("second phase = %+v", report.Phases[1])
	}
	if !strings.Contains(timer.Summary(), "// 3 files") {
		t.Fatalf("summary missing note:\n%s", timer.Summary())
	}
}

func TestEmptyTimerReport(t *testing.T) {
	report := NewTimer().Report()
	if report.TotalMS != 0 || report.Phases != nil {
		t.Fatalf("expected zero report, got %+v", report)
	}
}

func TestMergeSumsByName(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "load", DurationMS: 1}, {Name: "resolve", DurationMS: 2}}}
	b := Report{TotalMS: 4, Phases: []PhaseReport{{Name: "load", DurationMS: 1}, {Name: "verify", DurationMS: 1}, {Name: "resolve", DurationMS: 2, Note: "x"}}}

	got := Merge(a, b)
	if got.TotalMS != 7 {
		t.Fatalf("total = %v, want 7", got.TotalMS)
	}
	want := []PhaseReport{{Name: "load", DurationMS: 2}, {Name: "resolve", DurationMS: 4}, {Name: "verify", DurationMS: 1}}
	if len(got.Phases) != len(want) {
		t.Fatalf("phases = %+v", got.Phases)
	}
	for i := range want {
		if got.Phases[i] != want[i] {
			t.Fatalf("phase %d = %+v, want %+v", i, got.Phases[i], want[i])
		}
	}
}
