package editor

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
)

func TestCommand_EnvEditor(t *testing.T) {
	t.Setenv("SPECTATOR_EDITOR", "")
	t.Setenv("EDITOR", "nvim")
	t.Setenv("VISUAL", "code")

	got := Command()
	if !slices.Equal(got, []string{"nvim"}) {
		t.Errorf("Command() = %v, want [nvim]", got)
	}
}

func TestCommand_SpectatorOverride(t *testing.T) {
	t.Setenv("SPECTATOR_EDITOR", "code --wait")
	t.Setenv("EDITOR", "nvim")

	got := Command()
	if !slices.Equal(got, []string{"code", "--wait"}) {
		t.Errorf("Command() = %v, want [code --wait]", got)
	}
}

func TestCommand_EnvVisual(t *testing.T) {
	t.Setenv("SPECTATOR_EDITOR", "")
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "code")

	got := Command()
	if !slices.Equal(got, []string{"code"}) {
		t.Errorf("Command() = %v, want [code]", got)
	}
}

func TestCommand_Fallback(t *testing.T) {
	t.Setenv("SPECTATOR_EDITOR", "")
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	got := Command()

	want := "vi"
	if _, err := exec.LookPath("nano"); err == nil {
		want = "nano"
	}
	if !slices.Equal(got, []string{want}) {
		t.Errorf("Command() = %v, want [%s]", got, want)
	}
}

func TestCommand_BlankEnvTreatedAsUnset(t *testing.T) {
	t.Setenv("SPECTATOR_EDITOR", "")
	t.Setenv("EDITOR", "   ")
	t.Setenv("VISUAL", "vscode")

	got := Command()
	if !slices.Equal(got, []string{"vscode"}) {
		t.Errorf("Command() = %v, want [vscode]", got)
	}
}

func TestOpen(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the editor")
	}

	tmpDir := t.TempDir()
	mockEditor := filepath.Join(tmpDir, "mock-editor.sh")
	outputFile := filepath.Join(tmpDir, "output.txt")

	// The mock editor records its arguments instead of editing
	script := "#!/bin/sh\necho \"$@\" > " + outputFile + "\n"
	if err := os.WriteFile(mockEditor, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SPECTATOR_EDITOR", "")
	t.Setenv("EDITOR", mockEditor+" --flag")

	targetFile := filepath.Join(tmpDir, "target.txt")
	if err := os.WriteFile(targetFile, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Open(targetFile); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	got, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "--flag "+targetFile) {
		t.Errorf("editor argv = %q, want flags then path", strings.TrimSpace(string(got)))
	}
}

func TestOpen_EditorFails(t *testing.T) {
	t.Setenv("SPECTATOR_EDITOR", "")
	t.Setenv("EDITOR", "spectator-no-such-editor-12345")
	t.Setenv("VISUAL", "")

	err := Open("test.txt")
	if err == nil {
		t.Fatal("expected error for a missing editor binary")
	}
	if !strings.Contains(err.Error(), "running editor") {
		t.Errorf("error = %q", err)
	}
}
