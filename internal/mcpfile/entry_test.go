package mcpfile

import (
	"encoding/json"
	"testing"
)

func TestRemoteEntry_JSON(t *testing.T) {
	data, err := json.Marshal(RemoteEntry("testkey99"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"command":"npx","args":["-y","mcp-remote","https://spectatorcontext.com/mcp-server/mcp/testkey99"]}`
	if string(data) != want {
		t.Errorf("RemoteEntry JSON = %s, want %s", data, want)
	}
}

func TestHeaderEntry_JSON(t *testing.T) {
	data, err := json.Marshal(HeaderEntry("testkey99"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"command":"npx","args":["-y","mcp-remote","https://spectatorcontext.com/mcp-server/mcp","--header","Authorization: Bearer ${SPECTATOR_API_KEY}"],"env":{"SPECTATOR_API_KEY":"testkey99"}}`
	if string(data) != want {
		t.Errorf("HeaderEntry JSON = %s, want %s", data, want)
	}
}

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantForm Form
		wantKey  string
	}{
		{
			name:     "remote form with key in URL",
			input:    `{"command":"npx","args":["-y","mcp-remote","https://spectatorcontext.com/mcp-server/mcp/testkey99"]}`,
			wantForm: FormRemote,
			wantKey:  "testkey99",
		},
		{
			name:     "header form with env reference",
			input:    `{"command":"npx","args":["-y","mcp-remote","https://spectatorcontext.com/mcp-server/mcp","--header","Authorization: Bearer ${SPECTATOR_API_KEY}"],"env":{"SPECTATOR_API_KEY":"testkey99"}}`,
			wantForm: FormHeader,
			wantKey:  "testkey99",
		},
		{
			name:     "header form with literal token",
			input:    `{"command":"npx","args":["-y","mcp-remote","https://spectatorcontext.com/mcp-server/mcp","--header","Authorization: Bearer testkey99"]}`,
			wantForm: FormHeader,
			wantKey:  "testkey99",
		},
		{
			name:     "header form with missing env variable",
			input:    `{"command":"npx","args":["-y","mcp-remote","https://spectatorcontext.com/mcp-server/mcp","--header","Authorization: Bearer ${SPECTATOR_API_KEY}"]}`,
			wantForm: FormHeader,
			wantKey:  "",
		},
		{
			name:     "bare remote URL without key",
			input:    `{"command":"npx","args":["-y","mcp-remote","https://spectatorcontext.com/mcp-server/mcp"]}`,
			wantForm: FormUnknown,
			wantKey:  "",
		},
		{
			name:     "foreign server entry",
			input:    `{"command":"deno","args":["run","server.ts"]}`,
			wantForm: FormUnknown,
			wantKey:  "",
		},
		{
			name:     "different host",
			input:    `{"command":"npx","args":["-y","mcp-remote","https://example.com/mcp-server/mcp/testkey99"]}`,
			wantForm: FormUnknown,
			wantKey:  "",
		},
		{
			name:     "empty object",
			input:    `{}`,
			wantForm: FormUnknown,
			wantKey:  "",
		},
		{
			name:     "invalid JSON",
			input:    `{command: npx`,
			wantForm: FormUnknown,
			wantKey:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEntry(json.RawMessage(tt.input))
			if got.Form != tt.wantForm {
				t.Errorf("Form = %v, want %v", got.Form, tt.wantForm)
			}
			if got.APIKey != tt.wantKey {
				t.Errorf("APIKey = %q, want %q", got.APIKey, tt.wantKey)
			}
		})
	}
}

func TestParseEntry_RoundTrip(t *testing.T) {
	const key = "sp_live_0123456789"

	remote, err := json.Marshal(RemoteEntry(key))
	if err != nil {
		t.Fatalf("Marshal(RemoteEntry) error = %v", err)
	}
	if got := ParseEntry(remote); got.Form != FormRemote || got.APIKey != key {
		t.Errorf("ParseEntry(RemoteEntry) = (%v, %q), want (FormRemote, %q)", got.Form, got.APIKey, key)
	}

	header, err := json.Marshal(HeaderEntry(key))
	if err != nil {
		t.Fatalf("Marshal(HeaderEntry) error = %v", err)
	}
	if got := ParseEntry(header); got.Form != FormHeader || got.APIKey != key {
		t.Errorf("ParseEntry(HeaderEntry) = (%v, %q), want (FormHeader, %q)", got.Form, got.APIKey, key)
	}
}

func TestForm_String(t *testing.T) {
	tests := []struct {
		form Form
		want string
	}{
		{FormRemote, "remote"},
		{FormHeader, "header"},
		{FormUnknown, "unknown"},
		{Form(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.form.String(); got != tt.want {
			t.Errorf("Form(%d).String() = %q, want %q", int(tt.form), got, tt.want)
		}
	}
}
