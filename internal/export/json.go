package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/contact-finder/internal/model"
)

// Document is the JSON export envelope: run metadata followed by the
// full organization set.
type Document struct {
	Metadata      Metadata             `json:"metadata"`
	Organizations []model.Organization `json:"organizations"`
}

// Metadata describes the run that produced an export.
type Metadata struct {
	Query       string         `json:"query,omitempty"`
	Type        model.OrgType  `json:"organization_type,omitempty"`
	Location    string         `json:"location,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
	Stats       model.RunStats `json:"stats"`
}

// WriteJSON writes the envelope with indented encoding.
func WriteJSON(w io.Writer, meta Metadata, orgs []model.Organization) error {
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now().UTC()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err := enc.Encode(Document{Metadata: meta, Organizations: orgs})
	return eris.Wrap(err, "export: encode json")
}

// ReadJSON parses a previously exported JSON document.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, eris.Wrap(err, "export: decode json")
	}
	for i := range doc.Organizations {
		doc.Organizations[i].Recalculate()
	}
	return &doc, nil
}
