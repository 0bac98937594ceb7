package model

// RawRecord is an unvalidated candidate produced by a single source
// fetch. It carries no identity beyond its fields and is consumed once
// by the canonicalizer; it is never persisted directly.
type RawRecord struct {
	Name        string            `json:"name"`
	Phone       string            `json:"phone,omitempty"`
	Email       string            `json:"email,omitempty"`
	Address     string            `json:"address,omitempty"`
	Website     string            `json:"website,omitempty"`
	SocialMedia map[string]string `json:"social_media,omitempty"`
	Source      string            `json:"source"`
}

// ContactFieldCount returns the number of populated contact fields,
// excluding the name. Used by the canonicalizer's minimum-fields floor.
func (r RawRecord) ContactFieldCount() int {
	n := 0
	for _, v := range []string{r.Phone, r.Email, r.Address, r.Website} {
		if v != "" {
			n++
		}
	}
	return n
}
