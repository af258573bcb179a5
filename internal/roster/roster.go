// Package roster loads and refreshes the canonical athlete roster the
// matcher resolves mentions against.
package roster

import (
	"encoding/json"
	"os"
	"sort"

	"sentimizer/internal/apperr"
	"sentimizer/internal/models"
)

// Roster is the canonical name table. Immutable after construction and
// safe for concurrent readers.
type Roster struct {
	entries map[string]models.RosterEntry
	names   []string
}

// New builds a Roster from canonical-name-keyed entries.
func New(entries map[string]models.RosterEntry) *Roster {
	copied := make(map[string]models.RosterEntry, len(entries))
	names := make([]string, 0, len(entries))
	for name, entry := range entries {
		entry.Name = name
		copied[name] = entry
		names = append(names, name)
	}
	sort.Strings(names)

	return &Roster{entries: copied, names: names}
}

// Load reads a roster JSON file: a mapping canonical_name -> {id, team}.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Config(err, "read roster")
	}

	var entries map[string]models.RosterEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, apperr.Config(err, "parse roster")
	}

	return New(entries), nil
}

// Save writes entries to path as the mapping Load reads.
func Save(path string, entries map[string]models.RosterEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Names returns all canonical names in lexicographic order.
func (r *Roster) Names() []string {
	return r.names
}

// Get looks up an entry by canonical name.
func (r *Roster) Get(name string) (models.RosterEntry, bool) {
	entry, ok := r.entries[name]
	return entry, ok
}

// Len returns the number of roster entries.
func (r *Roster) Len() int {
	return len(r.names)
}
