// Package fallback provides the static curated table of known
// organizations consulted when live sources are unavailable or return
// incomplete records.
package fallback

import (
	_ "embed"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/contact-finder/internal/model"
)

//go:embed schools.yaml
var schoolsYAML []byte

// SourceTag marks records that originated from the curated dataset.
const SourceTag = "Tanzania Database"

// Entry is one curated record, keyed by lowercased canonical name.
type Entry struct {
	Name    string `yaml:"name"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
	Address string `yaml:"address"`
	Notes   string `yaml:"notes"`
}

// Dataset is a read-only keyed table of pre-populated contact fields.
type Dataset struct {
	entries map[string]Entry
	keys    []string // sorted, for deterministic iteration
}

var titleCaser = cases.Title(language.English)

// Load parses the embedded curated school table.
func Load() (*Dataset, error) {
	var raw map[string]Entry
	if err := yaml.Unmarshal(schoolsYAML, &raw); err != nil {
		return nil, eris.Wrap(err, "fallback: parse embedded dataset")
	}

	ds := &Dataset{entries: make(map[string]Entry, len(raw))}
	for key, e := range raw {
		key = strings.ToLower(strings.TrimSpace(key))
		if e.Name == "" {
			e.Name = titleCaser.String(key)
		}
		ds.entries[key] = e
		ds.keys = append(ds.keys, key)
	}
	sort.Strings(ds.keys)
	return ds, nil
}

// Len returns the number of curated entries.
func (d *Dataset) Len() int {
	return len(d.entries)
}

// Records converts up to limit entries into raw records, in stable key
// order. Used by the orchestrator's school fallback append.
func (d *Dataset) Records(limit int) []model.RawRecord {
	var out []model.RawRecord
	for _, key := range d.keys {
		if limit > 0 && len(out) >= limit {
			break
		}
		e := d.entries[key]
		out = append(out, model.RawRecord{
			Name:    e.Name,
			Phone:   e.Phone,
			Email:   e.Email,
			Address: e.Address,
			Source:  SourceTag,
		})
	}
	return out
}

// Lookup finds the entry best matching an organization name. Matching
// priority: exact key, substring containment either way, then a shared
// word overlap of at least two words. Returns nil when nothing matches.
func (d *Dataset) Lookup(name string) *Entry {
	target := model.NormalizeName(name)
	if target == "" {
		return nil
	}

	if e, ok := d.entries[target]; ok {
		return &e
	}

	for _, key := range d.keys {
		if strings.Contains(target, key) || strings.Contains(key, target) {
			e := d.entries[key]
			return &e
		}
	}

	targetWords := wordSet(target)
	for _, key := range d.keys {
		shared := 0
		for w := range wordSet(key) {
			if _, ok := targetWords[w]; ok {
				shared++
			}
		}
		if shared >= 2 {
			e := d.entries[key]
			return &e
		}
	}

	return nil
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}
