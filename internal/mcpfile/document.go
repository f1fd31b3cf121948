package mcpfile

import (
	"encoding/json"
	"sort"
)

// ServersKey is the top-level object that holds MCP server entries in every
// supported platform's config file.
const ServersKey = "mcpServers"

// Document is the top-level JSON object of one platform config file.
//
// Only the entry this tool owns is ever decoded into a typed value. Sibling
// server entries and unrelated top-level fields are carried as raw bytes so
// a read-modify-write cycle preserves them exactly.
type Document struct {
	// Servers holds the mcpServers mapping. Values stay raw.
	Servers map[string]json.RawMessage

	// otherFields stores top-level fields other than mcpServers.
	otherFields map[string]json.RawMessage

	// hadServersKey records whether the source document carried an
	// mcpServers key. A document that never had the key and holds no
	// entries writes back without one.
	hadServersKey bool
}

// NewDocument returns an empty document, the in-memory form of a missing or
// empty config file.
func NewDocument() *Document {
	return &Document{}
}

// UnmarshalJSON implements json.Unmarshaler, keeping all fields other than
// mcpServers as raw bytes.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if serversData, ok := raw[ServersKey]; ok {
		if err := json.Unmarshal(serversData, &d.Servers); err != nil {
			return err
		}
		d.hadServersKey = true
		delete(raw, ServersKey)
	}

	if len(raw) > 0 {
		d.otherFields = raw
	}

	return nil
}

// MarshalJSON implements json.Marshaler. Raw sibling entries and unknown
// top-level fields are emitted verbatim. The mcpServers key is written when
// the source document had one or the document now holds entries.
func (d *Document) MarshalJSON() ([]byte, error) {
	result := make(map[string]json.RawMessage, len(d.otherFields)+1)
	for k, v := range d.otherFields {
		result[k] = v
	}

	if d.hadServersKey || len(d.Servers) > 0 {
		servers, err := json.Marshal(d.Servers)
		if err != nil {
			return nil, err
		}
		result[ServersKey] = servers
	}

	return json.Marshal(result)
}

// Has reports whether the named server entry exists.
func (d *Document) Has(name string) bool {
	_, ok := d.Servers[name]
	return ok
}

// Get returns the raw bytes of the named server entry.
func (d *Document) Get(name string) (json.RawMessage, bool) {
	raw, ok := d.Servers[name]
	return raw, ok
}

// Names returns all server entry names in sorted order.
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.Servers))
	for name := range d.Servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Upsert inserts or replaces the named server entry. The entry is assigned
// wholesale, never merged with a previous value. It reports whether an entry
// with that name already existed and whether any other entries were present
// before the change.
func (d *Document) Upsert(name string, entry *Entry) (updated, hadOtherServers bool, err error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return false, false, err
	}

	_, updated = d.Servers[name]
	for k := range d.Servers {
		if k != name {
			hadOtherServers = true
			break
		}
	}

	if d.Servers == nil {
		d.Servers = make(map[string]json.RawMessage)
	}
	d.Servers[name] = data

	return updated, hadOtherServers, nil
}

// Remove deletes the named server entry. It reports whether the entry was
// present. Removing the last entry from a document whose source never had
// an mcpServers key leaves the document without one.
func (d *Document) Remove(name string) bool {
	if _, ok := d.Servers[name]; !ok {
		return false
	}
	delete(d.Servers, name)
	return true
}
