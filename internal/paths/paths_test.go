package paths

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spectatorcontext/spectator-cli/internal/errors"
)

func testResolver(goos string) Resolver {
	return Resolver{
		HomeDir:   "/home/dev",
		ConfigDir: "/home/dev/.config",
		AppData:   `C:\Users\dev\AppData\Roaming`,
		WorkDir:   "/work/project",
		GOOS:      goos,
	}
}

func TestConfigPath_GlobalScope(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		platform string
		want     string
	}{
		{
			name:     "claude-desktop darwin",
			goos:     "darwin",
			platform: PlatformClaudeDesktop,
			want:     filepath.Join("/home/dev", "Library", "Application Support", "Claude", "claude_desktop_config.json"),
		},
		{
			name:     "claude-desktop windows",
			goos:     "windows",
			platform: PlatformClaudeDesktop,
			want:     filepath.Join(`C:\Users\dev\AppData\Roaming`, "Claude", "claude_desktop_config.json"),
		},
		{
			name:     "claude-desktop linux",
			goos:     "linux",
			platform: PlatformClaudeDesktop,
			want:     filepath.Join("/home/dev/.config", "Claude", "claude_desktop_config.json"),
		},
		{
			name:     "claude-code",
			goos:     "linux",
			platform: PlatformClaudeCode,
			want:     filepath.Join("/home/dev", ".claudecode", "settings.json"),
		},
		{
			name:     "cursor",
			goos:     "darwin",
			platform: PlatformCursor,
			want:     filepath.Join("/home/dev", ".cursor", "mcp.json"),
		},
		{
			name:     "windsurf",
			goos:     "linux",
			platform: PlatformWindsurf,
			want:     filepath.Join("/home/dev", ".codeium", "windsurf", "mcp_config.json"),
		},
		{
			name:     "vscode",
			goos:     "darwin",
			platform: PlatformVSCode,
			want:     filepath.Join("/home/dev", ".mcp.json"),
		},
		{
			name:     "cline darwin",
			goos:     "darwin",
			platform: PlatformCline,
			want: filepath.Join("/home/dev", "Library", "Application Support",
				"Code", "User", "globalStorage", "saoudrizwan.claude-dev", "settings", "cline_mcp_settings.json"),
		},
		{
			name:     "cline windows",
			goos:     "windows",
			platform: PlatformCline,
			want: filepath.Join(`C:\Users\dev\AppData\Roaming`,
				"Code", "User", "globalStorage", "saoudrizwan.claude-dev", "settings", "cline_mcp_settings.json"),
		},
		{
			name:     "cline linux",
			goos:     "linux",
			platform: PlatformCline,
			want: filepath.Join("/home/dev/.config",
				"Code", "User", "globalStorage", "saoudrizwan.claude-dev", "settings", "cline_mcp_settings.json"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testResolver(tt.goos)
			got, err := r.ConfigPath(tt.platform, ScopeGlobal)
			if err != nil {
				t.Fatalf("ConfigPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ConfigPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigPath_ProjectScope(t *testing.T) {
	tests := []struct {
		platform string
		want     string
	}{
		{PlatformCursor, filepath.Join("/work/project", ".cursor", "mcp.json")},
		{PlatformVSCode, filepath.Join("/work/project", ".vscode", "mcp.json")},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			r := testResolver("linux")
			got, err := r.ConfigPath(tt.platform, ScopeProject)
			if err != nil {
				t.Fatalf("ConfigPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ConfigPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigPath_GlobalOnlyPlatformsIgnoreProjectScope(t *testing.T) {
	r := testResolver("linux")

	for _, platform := range []string{
		PlatformClaudeDesktop, PlatformClaudeCode, PlatformWindsurf, PlatformCline,
	} {
		t.Run(platform, func(t *testing.T) {
			global, err := r.ConfigPath(platform, ScopeGlobal)
			if err != nil {
				t.Fatalf("ConfigPath(global) error = %v", err)
			}
			project, err := r.ConfigPath(platform, ScopeProject)
			if err != nil {
				t.Fatalf("ConfigPath(project) error = %v", err)
			}
			if global != project {
				t.Errorf("project scope should fall back to global path: global=%q project=%q", global, project)
			}
		})
	}
}

func TestConfigPath_UnknownPlatform(t *testing.T) {
	r := testResolver("linux")

	_, err := r.ConfigPath("emacs", ScopeGlobal)
	if err == nil {
		t.Fatal("expected error for unknown platform")
	}
	if !errors.Is(err, errors.ErrUnknownPlatform) {
		t.Errorf("expected ErrUnknownPlatform, got %v", err)
	}
	if !strings.Contains(err.Error(), "emacs") {
		t.Errorf("error should name the platform, got %q", err.Error())
	}
}

func TestConfigPath_UnknownScope(t *testing.T) {
	r := testResolver("linux")

	_, err := r.ConfigPath(PlatformCursor, Scope("workspace"))
	if err == nil {
		t.Fatal("expected error for unknown scope")
	}
	if !errors.Is(err, errors.ErrUnknownScope) {
		t.Errorf("expected ErrUnknownScope, got %v", err)
	}
}

func TestConfigPath_MissingHome(t *testing.T) {
	r := Resolver{GOOS: "linux"}

	_, err := r.ConfigPath(PlatformCursor, ScopeGlobal)
	if !errors.Is(err, ErrHomeDirNotFound) {
		t.Errorf("expected ErrHomeDirNotFound, got %v", err)
	}
}

func TestRoamingConfigDir_Fallbacks(t *testing.T) {
	t.Run("windows without APPDATA", func(t *testing.T) {
		r := Resolver{HomeDir: `C:\Users\dev`, GOOS: "windows"}
		got := r.roamingConfigDir()
		want := filepath.Join(`C:\Users\dev`, "AppData", "Roaming")
		if got != want {
			t.Errorf("roamingConfigDir() = %q, want %q", got, want)
		}
	})

	t.Run("linux without XDG config home", func(t *testing.T) {
		r := Resolver{HomeDir: "/home/dev", GOOS: "linux"}
		got := r.roamingConfigDir()
		want := filepath.Join("/home/dev", ".config")
		if got != want {
			t.Errorf("roamingConfigDir() = %q, want %q", got, want)
		}
	})
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		input   string
		want    Scope
		wantErr bool
	}{
		{"global", ScopeGlobal, false},
		{"project", ScopeProject, false},
		{"workspace", "", true},
		{"", "", true},
		{"GLOBAL", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScope(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScope(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrUnknownScope) {
					t.Errorf("expected ErrUnknownScope, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseScope(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidPlatform(t *testing.T) {
	for _, platform := range Platforms() {
		if !ValidPlatform(platform) {
			t.Errorf("ValidPlatform(%q) = false, want true", platform)
		}
	}

	for _, platform := range []string{"", "emacs", "Claude-Desktop", "claude"} {
		if ValidPlatform(platform) {
			t.Errorf("ValidPlatform(%q) = true, want false", platform)
		}
	}
}

func TestPlatforms_Count(t *testing.T) {
	if got := len(Platforms()); got != 6 {
		t.Errorf("Platforms() returned %d entries, want 6", got)
	}
}

func TestNewResolver(t *testing.T) {
	r, err := NewResolver()
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	if r.HomeDir == "" {
		t.Error("HomeDir should be populated")
	}
	if r.WorkDir == "" {
		t.Error("WorkDir should be populated")
	}
	if r.GOOS == "" {
		t.Error("GOOS should be populated")
	}
}

func TestAppConfigDir(t *testing.T) {
	dir := AppConfigDir()
	if filepath.Base(dir) != "spectator" {
		t.Errorf("AppConfigDir() = %q, want a 'spectator' directory", dir)
	}
}
