package mcpfile

import (
	"encoding/json"
	"strings"
)

const (
	// ServerName is the registry key this tool owns in every config file.
	// No other entry is ever created, mutated, or deleted.
	ServerName = "spectator-voice-memory"

	// BaseURL is the remote MCP endpoint the written entries point at.
	BaseURL = "https://spectatorcontext.com/mcp-server/mcp"

	// EnvKeyVar is the environment variable the header entry form reads
	// the API key from.
	EnvKeyVar = "SPECTATOR_API_KEY"
)

// bearerPrefix starts the header argument of the legacy entry form.
const bearerPrefix = "Authorization: Bearer "

// Entry is the server entry this tool writes. Field order fixes the JSON
// key order: command, args, env.
type Entry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// RemoteEntry returns the canonical entry form, with the API key embedded
// in the endpoint URL.
func RemoteEntry(apiKey string) *Entry {
	return &Entry{
		Command: "npx",
		Args:    []string{"-y", "mcp-remote", BaseURL + "/" + apiKey},
	}
}

// HeaderEntry returns the bearer-token entry form. The key travels in an
// Authorization header sourced from the entry's env block instead of being
// embedded in the URL.
func HeaderEntry(apiKey string) *Entry {
	return &Entry{
		Command: "npx",
		Args: []string{
			"-y", "mcp-remote", BaseURL,
			"--header", bearerPrefix + "${" + EnvKeyVar + "}",
		},
		Env: map[string]string{EnvKeyVar: apiKey},
	}
}

// Form identifies which historical wire shape a server entry uses.
type Form int

const (
	// FormUnknown is an entry this tool does not recognize as one of its
	// own shapes.
	FormUnknown Form = iota
	// FormRemote is the canonical shape with the key embedded in the URL.
	FormRemote
	// FormHeader is the legacy shape with a bearer header and an
	// env-provided key.
	FormHeader
)

// String returns the form name for display.
func (f Form) String() string {
	switch f {
	case FormRemote:
		return "remote"
	case FormHeader:
		return "header"
	default:
		return "unknown"
	}
}

// ParsedEntry is the result of classifying a raw server entry.
type ParsedEntry struct {
	// Form is the recognized wire shape.
	Form Form
	// APIKey is the extracted key, or empty when the form carries none
	// that this tool can recover.
	APIKey string
	// Entry holds the decoded fields when the raw bytes decode at all.
	Entry *Entry
}

// ParseEntry classifies raw server entry bytes and extracts the embedded
// API key where the form allows it. Both historical forms written by
// earlier versions of this tool are recognized.
func ParseEntry(raw json.RawMessage) ParsedEntry {
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return ParsedEntry{Form: FormUnknown}
	}
	p := ParsedEntry{Form: FormUnknown, Entry: &e}

	hasBase := false
	for _, arg := range e.Args {
		if strings.HasPrefix(arg, BaseURL+"/") {
			p.Form = FormRemote
			p.APIKey = strings.TrimPrefix(arg, BaseURL+"/")
			return p
		}
		if arg == BaseURL {
			hasBase = true
		}
	}
	if !hasBase {
		return p
	}

	for i, arg := range e.Args {
		if arg != "--header" || i+1 >= len(e.Args) {
			continue
		}
		header := e.Args[i+1]
		if !strings.HasPrefix(header, bearerPrefix) {
			continue
		}
		p.Form = FormHeader
		token := strings.TrimPrefix(header, bearerPrefix)
		if name, ok := cutEnvRef(token); ok {
			p.APIKey = e.Env[name]
		} else {
			p.APIKey = token
		}
		return p
	}

	return p
}

// cutEnvRef extracts VAR from a ${VAR} reference.
func cutEnvRef(s string) (string, bool) {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return s[2 : len(s)-1], true
	}
	return "", false
}
