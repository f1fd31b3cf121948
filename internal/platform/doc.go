// Package platform configures the spectator MCP server entry across
// supported AI assistants.
//
// The package is built around three pieces:
//
//   - [Descriptor]: the static facts about one assistant (config paths come
//     from the paths package, probe targets and display strings live here).
//     [Registry] holds the fixed set: Claude Desktop, Claude Code, Cursor,
//     Windsurf, VS Code, and Cline.
//   - [Detector]: probes whether an assistant is installed, by CLI binary,
//     macOS app bundle, or config directory.
//   - [Adapter]: applies, checks, and removes the spectator entry in an
//     assistant's config file.
//
// There is one Adapter type for all platforms. Assistants differ only in
// where their config lives and how they are detected, which is data, not
// behavior; supporting a new assistant means adding a Descriptor value.
//
// # Typical Use
//
//	resolver, err := paths.NewResolver()
//	...
//	detector := platform.NewDetector(fsys, &resolver)
//	for _, det := range detector.DetectInstalled() {
//	    adapter := platform.NewAdapter(det.Descriptor, &resolver, fsys, log)
//	    result, err := adapter.Configure(mcpfile.RemoteEntry(apiKey), paths.ScopeGlobal)
//	    ...
//	}
//
// Adapter failures are per-platform: the caller collects errors and keeps
// going, so one unwritable config file does not abort the rest of the run.
package platform
