package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func statusTestFlags(t *testing.T) {
	t.Helper()
	savePlatformsFlag(t)
	origJSON := statusJSON
	origQuiet := statusQuiet
	origVerbose := statusVerbose
	t.Cleanup(func() {
		statusJSON = origJSON
		statusQuiet = origQuiet
		statusVerbose = origVerbose
	})
}

func TestValidateStatusFlags(t *testing.T) {
	statusTestFlags(t)

	tests := []struct {
		name    string
		json    bool
		quiet   bool
		verbose bool
		wantErr bool
	}{
		{name: "no flags"},
		{name: "json only", json: true},
		{name: "quiet only", quiet: true},
		{name: "verbose only", verbose: true},
		{name: "json and quiet", json: true, quiet: true, wantErr: true},
		{name: "json and verbose", json: true, verbose: true, wantErr: true},
		{name: "quiet and verbose", quiet: true, verbose: true, wantErr: true},
		{name: "all three", json: true, quiet: true, verbose: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statusJSON = tt.json
			statusQuiet = tt.quiet
			statusVerbose = tt.verbose

			err := validateStatusFlags(nil, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateStatusFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// statusFixture seeds one installed platform (cursor) carrying the entry in
// its global config, leaving every other platform untouched.
func statusFixture(t *testing.T) (runEnv, *bytes.Buffer) {
	t.Helper()

	fsys := afero.NewMemMapFs()
	markInstalled(t, fsys, "/home/dev/.cursor")
	seedEntry(t, fsys, cursorGlobalConfig, "spectator-key-12345")
	return newTestEnv(t, fsys)
}

func TestRunStatus_Compact(t *testing.T) {
	statusTestFlags(t)
	platformsFlag = nil

	e, out := statusFixture(t)

	if err := runStatus(e); err != nil {
		t.Fatalf("runStatus() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"spectator version dev",
		"Platform: Cursor",
		"global: configured (remote)",
		"project: not configured",
		"Platform: Windsurf",
		"(not installed)",
		"global: not configured",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "spectator-key-12345") {
		t.Errorf("output leaks the raw API key:\n%s", got)
	}
}

func TestRunStatus_Quiet(t *testing.T) {
	statusTestFlags(t)
	platformsFlag = nil
	statusQuiet = true

	e, out := statusFixture(t)

	if err := runStatus(e); err != nil {
		t.Fatalf("runStatus() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"cursor: installed, global: configured, project: missing",
		"windsurf: not installed, global: missing",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Platform:") {
		t.Errorf("quiet output carries section headers:\n%s", got)
	}
}

func TestRunStatus_Verbose(t *testing.T) {
	statusTestFlags(t)
	platformsFlag = nil
	statusVerbose = true

	e, out := statusFixture(t)

	if err := runStatus(e); err != nil {
		t.Fatalf("runStatus() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Scope: global",
		"Path: " + cursorGlobalConfig,
		"Entry: present (remote form, key ****2345)",
		"Entry: absent (config file not found)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunStatus_JSON(t *testing.T) {
	statusTestFlags(t)
	platformsFlag = nil
	statusJSON = true

	e, out := statusFixture(t)

	if err := runStatus(e); err != nil {
		t.Fatalf("runStatus() error = %v", err)
	}

	var output statusJSONOutput
	if err := json.Unmarshal(out.Bytes(), &output); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out.String())
	}

	if output.Version != "dev" {
		t.Errorf("version = %q, want dev", output.Version)
	}
	if len(output.Platforms) != 6 {
		t.Errorf("got %d platforms, want 6", len(output.Platforms))
	}

	cursor, ok := output.Platforms["cursor"]
	if !ok {
		t.Fatal("no cursor entry in JSON output")
	}
	if !cursor.Installed {
		t.Error("cursor reported as not installed")
	}
	if len(cursor.Scopes) != 2 {
		t.Fatalf("cursor scopes = %d, want 2", len(cursor.Scopes))
	}
	global := cursor.Scopes[0]
	if global.Scope != "global" || !global.Configured || global.Form != "remote" || global.Key != "****2345" {
		t.Errorf("cursor global scope = %+v, want configured remote ****2345", global)
	}

	windsurf := output.Platforms["windsurf"]
	if windsurf.Installed {
		t.Error("windsurf reported as installed")
	}
	if len(windsurf.Scopes) != 1 {
		t.Errorf("windsurf scopes = %d, want global only", len(windsurf.Scopes))
	}
}
