package pipeline

import (
	"github.com/sells-group/contact-finder/internal/model"
)

// Merge folds duplicates into one organization per normalized name,
// preserving input order for first occurrences. Field conflicts resolve
// first-non-empty-wins: an existing value is never overwritten, so
// source order decides which value survives. No contact field value is
// lost except losing conflicts.
func Merge(orgs []model.Organization) []model.Organization {
	index := make(map[string]int, len(orgs))
	merged := make([]model.Organization, 0, len(orgs))

	for _, org := range orgs {
		key := model.NormalizeName(org.Name)
		if key == "" {
			continue
		}
		at, seen := index[key]
		if !seen {
			index[key] = len(merged)
			merged = append(merged, org)
			continue
		}
		mergeInto(&merged[at], org)
	}

	for i := range merged {
		merged[i].Recalculate()
	}
	return merged
}

// mergeInto folds src into dst. dst's populated fields always win;
// social media unions with existing-entry priority; provenance concats.
func mergeInto(dst *model.Organization, src model.Organization) {
	fillEmpty(&dst.Phone, src.Phone)
	fillEmpty(&dst.Email, src.Email)
	fillEmpty(&dst.Address, src.Address)
	fillEmpty(&dst.WebsiteURL, src.WebsiteURL)
	fillEmpty(&dst.Category, src.Category)
	fillEmpty(&dst.Size, src.Size)
	fillEmpty(&dst.Notes, src.Notes)

	if len(src.SocialMedia) > 0 {
		if dst.SocialMedia == nil {
			dst.SocialMedia = make(map[string]string, len(src.SocialMedia))
		}
		for platform, url := range src.SocialMedia {
			if _, exists := dst.SocialMedia[platform]; !exists {
				dst.SocialMedia[platform] = url
			}
		}
	}

	dst.AddSource(src.Source)
}

func fillEmpty(dst *string, src string) {
	if *dst == "" && src != "" {
		*dst = src
	}
}
