package doctor

import (
	"testing"
	"time"
)

// stubCheck returns a canned result.
type stubCheck struct {
	name   string
	result *CheckResult
}

func (c *stubCheck) Name() string      { return c.name }
func (c *stubCheck) Category() string  { return "test" }
func (c *stubCheck) Run() *CheckResult { return c.result }

func TestNewRunner(t *testing.T) {
	r := NewRunner()
	if r == nil {
		t.Fatal("NewRunner returned nil")
	}
	if len(r.checks) != 0 {
		t.Errorf("NewRunner().checks = %d, want 0", len(r.checks))
	}
}

func TestRunner_AddCheck(t *testing.T) {
	r := NewRunner()
	names := []string{"first", "second", "third"}

	for _, name := range names {
		r.AddCheck(&stubCheck{name: name})
	}

	if len(r.checks) != 3 {
		t.Fatalf("AddCheck: checks count = %d, want 3", len(r.checks))
	}
	for i, want := range names {
		if r.checks[i].Name() != want {
			t.Errorf("AddCheck order: checks[%d].Name() = %q, want %q", i, r.checks[i].Name(), want)
		}
	}
}

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name            string
		results         []*CheckResult
		wantResultCount int
		wantPassed      int
		wantInfo        int
		wantWarnings    int
		wantErrors      int
	}{
		{
			name:            "empty runner",
			results:         nil,
			wantResultCount: 0,
		},
		{
			name: "single pass",
			results: []*CheckResult{
				{Status: SeverityPass},
			},
			wantResultCount: 1,
			wantPassed:      1,
		},
		{
			name: "single info",
			results: []*CheckResult{
				{Status: SeverityInfo},
			},
			wantResultCount: 1,
			wantInfo:        1,
		},
		{
			name: "single warning",
			results: []*CheckResult{
				{Status: SeverityWarning},
			},
			wantResultCount: 1,
			wantWarnings:    1,
		},
		{
			name: "single error",
			results: []*CheckResult{
				{Status: SeverityError},
			},
			wantResultCount: 1,
			wantErrors:      1,
		},
		{
			name: "mixed severities",
			results: []*CheckResult{
				{Status: SeverityPass},
				{Status: SeverityPass},
				{Status: SeverityInfo},
				{Status: SeverityWarning},
				{Status: SeverityWarning},
				{Status: SeverityError},
			},
			wantResultCount: 6,
			wantPassed:      2,
			wantInfo:        1,
			wantWarnings:    2,
			wantErrors:      1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner()
			for i, result := range tt.results {
				r.AddCheck(&stubCheck{name: string(rune('a' + i)), result: result})
			}

			before := time.Now().UTC()
			report := r.Run()
			after := time.Now().UTC()

			if report.Timestamp.Before(before) || report.Timestamp.After(after) {
				t.Errorf("Timestamp %v not in expected range [%v, %v]",
					report.Timestamp, before, after)
			}

			if len(report.Results) != tt.wantResultCount {
				t.Errorf("Results count = %d, want %d", len(report.Results), tt.wantResultCount)
			}
			if report.Summary.Passed != tt.wantPassed {
				t.Errorf("Summary.Passed = %d, want %d", report.Summary.Passed, tt.wantPassed)
			}
			if report.Summary.Info != tt.wantInfo {
				t.Errorf("Summary.Info = %d, want %d", report.Summary.Info, tt.wantInfo)
			}
			if report.Summary.Warnings != tt.wantWarnings {
				t.Errorf("Summary.Warnings = %d, want %d", report.Summary.Warnings, tt.wantWarnings)
			}
			if report.Summary.Errors != tt.wantErrors {
				t.Errorf("Summary.Errors = %d, want %d", report.Summary.Errors, tt.wantErrors)
			}
		})
	}
}

func TestRunner_Run_ResultsOrder(t *testing.T) {
	r := NewRunner()
	names := []string{"first", "second", "third"}
	statuses := []Severity{SeverityPass, SeverityWarning, SeverityError}

	for i, name := range names {
		r.AddCheck(&stubCheck{name: name, result: &CheckResult{Name: name, Status: statuses[i]}})
	}

	report := r.Run()

	for i, want := range names {
		if report.Results[i].Name != want {
			t.Errorf("Results[%d].Name = %q, want %q", i, report.Results[i].Name, want)
		}
	}
}

func TestReport_HasErrors(t *testing.T) {
	tests := []struct {
		name   string
		errors int
		want   bool
	}{
		{"no errors", 0, false},
		{"one error", 1, true},
		{"multiple errors", 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Report{Summary: Summary{Errors: tt.errors}}
			if got := r.HasErrors(); got != tt.want {
				t.Errorf("HasErrors() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReport_HasWarnings(t *testing.T) {
	tests := []struct {
		name     string
		warnings int
		want     bool
	}{
		{"no warnings", 0, false},
		{"one warning", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Report{Summary: Summary{Warnings: tt.warnings}}
			if got := r.HasWarnings(); got != tt.want {
				t.Errorf("HasWarnings() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReport_SeveritiesIndependent(t *testing.T) {
	r := &Report{Summary: Summary{Warnings: 10, Errors: 0}}
	if r.HasErrors() {
		t.Error("HasErrors() = true when only warnings present, want false")
	}

	r = &Report{Summary: Summary{Warnings: 0, Errors: 10}}
	if r.HasWarnings() {
		t.Error("HasWarnings() = true when only errors present, want false")
	}
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityPass, "pass"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.severity, got, tt.want)
		}
	}
}

func TestSeverity_MarshalJSON(t *testing.T) {
	data, err := SeverityWarning.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"warning"` {
		t.Errorf("MarshalJSON() = %s, want %q", data, `"warning"`)
	}
}
