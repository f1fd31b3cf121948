// Package mcpfile reads, merges, and writes the MCP server registry inside
// AI assistant configuration files.
//
// Every supported platform keeps its registry under an "mcpServers" key in
// a JSON document. This package owns exactly one entry in that registry,
// [ServerName]. Everything else in the document (sibling server entries,
// unrelated top-level fields) is carried through a read-modify-write cycle
// as raw bytes and never interpreted.
//
// # Reading
//
// [Read] treats a missing or empty file as an empty document. Existing
// content is parsed tolerantly (JSONC comments and trailing commas are
// accepted, since several assistants let users hand-edit these files);
// content that still fails to parse surfaces as a [MalformedConfigError]
// and the file is left untouched.
//
// # Entry Forms
//
// Two wire shapes exist for the owned entry. [RemoteEntry] is the canonical
// form with the API key embedded in the endpoint URL:
//
//	{"command":"npx","args":["-y","mcp-remote","https://spectatorcontext.com/mcp-server/mcp/<key>"]}
//
// [HeaderEntry] is the bearer-token form, where the key travels in an
// Authorization header and the entry's env block. [ParseEntry] reads
// both back, so validate and remove work against configs written by any
// version of this tool.
package mcpfile
