package doctor

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

type stubCheck struct {
	name   string
	result CheckResult
	runs   int
}

func (s *stubCheck) Name() string     { return s.name }
func (s *stubCheck) Category() string { return "stub" }
func (s *stubCheck) Run() *CheckResult {
	s.runs++
	r := s.result
	return &r
}

func TestRunner_OrderAndSummary(t *testing.T) {
	checks := []*stubCheck{
		{name: "a", result: CheckResult{Status: SeverityPass}},
		{name: "b", result: CheckResult{Status: SeverityWarning}},
		{name: "c", result: CheckResult{Status: SeverityError}},
		{name: "d", result: CheckResult{Status: SeverityInfo}},
		{name: "e", result: CheckResult{Status: SeverityPass}},
	}

	r := NewRunner()
	for _, c := range checks {
		r.AddCheck(c)
	}
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
	r.now = func() time.Time { return fixed }

	report := r.Run()

	if len(report.Results) != len(checks) {
		t.Fatalf("got %d results, want %d", len(report.Results), len(checks))
	}
	for i, c := range checks {
		if c.runs != 1 {
			t.Errorf("check %s ran %d times, want 1", c.name, c.runs)
		}
		if report.Results[i].Name != c.name {
			t.Errorf("results[%d].Name = %q, want %q", i, report.Results[i].Name, c.name)
		}
		if report.Results[i].Category != "stub" {
			t.Errorf("results[%d].Category = %q, want stub", i, report.Results[i].Category)
		}
	}

	want := Summary{Passed: 2, Info: 1, Warnings: 1, Errors: 1}
	if report.Summary != want {
		t.Errorf("Summary = %+v, want %+v", report.Summary, want)
	}
	if !report.HasErrors() || !report.HasWarnings() {
		t.Error("expected HasErrors and HasWarnings")
	}
	if !report.Timestamp.Equal(fixed) || report.Timestamp.Location() != time.UTC {
		t.Errorf("Timestamp = %v, want %v in UTC", report.Timestamp, fixed)
	}
}

func TestRunner_Empty(t *testing.T) {
	report := NewRunner().Run()
	if report.HasErrors() || report.HasWarnings() {
		t.Error("empty runner should report nothing")
	}
	if report.Results == nil {
		t.Error("Results should be an empty slice, not nil")
	}
}

func TestRunner_KeepsResultName(t *testing.T) {
	c := &stubCheck{name: "outer", result: CheckResult{Name: "inner", Category: "own"}}
	report := NewRunner(c).Run()
	if report.Results[0].Name != "inner" || report.Results[0].Category != "own" {
		t.Errorf("result identity overwritten: %+v", report.Results[0])
	}
}

func TestSeverity_JSON(t *testing.T) {
	data, err := json.Marshal(&CheckResult{Name: "x", Status: SeverityWarning})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"status":"warning"`) {
		t.Errorf("severity should marshal by name: %s", data)
	}
	if Severity(42).String() != "unknown" {
		t.Errorf("Severity(42).String() = %q", Severity(42).String())
	}
}
