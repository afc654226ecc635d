package directory

import (
	"errors"
	"strings"

	"github.com/basebase-ai/basebase-go/internal/utils"
)

// DefaultDescription is shown for projects whose source record has none.
const DefaultDescription = "No description provided"

// uncategorized entries stay on the record but are hidden from display.
const uncategorized = "uncategorized"

var MissingIDErr = errors.New("record has no id")

// Record is the canonical shape of a published project. Source records
// are heterogeneous; Normalize maps them onto this shape with explicit
// defaults so nothing is inferred at render time.
type Record struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	GithubURL     string         `json:"githubUrl,omitempty"`
	ProductionURL string         `json:"productionUrl,omitempty"`
	Users         int            `json:"users"`
	Forks         int            `json:"forks"`
	Categories    []string       `json:"categories"`
	OwnerID       string         `json:"ownerId,omitempty"`
	Extra         map[string]any `json:"extra,omitempty"` // unknown source fields, passed through untouched
}

// canonical field names consumed by Normalize; everything else is Extra.
var knownFields = map[string]struct{}{
	"id":            {},
	"name":          {},
	"description":   {},
	"githubUrl":     {},
	"productionUrl": {},
	"users":         {},
	"forks":         {},
	"categories":    {},
	"category":      {},
	"ownerId":       {},
}

// Normalize maps one loosely-shaped source record onto the canonical
// Record. Only id is required. Name defaults to the id, the description
// to DefaultDescription, counters to zero. Categories come from the
// plural array field when present, else from the legacy singular
// "category" string, else stay empty.
func Normalize(raw map[string]any) (Record, error) {
	id, _ := raw["id"].(string)
	if strings.TrimSpace(id) == "" {
		return Record{}, MissingIDErr
	}

	rec := Record{
		ID:          id,
		Name:        id,
		Description: DefaultDescription,
		Categories:  []string{},
	}

	if name, ok := raw["name"].(string); ok && strings.TrimSpace(name) != "" {
		rec.Name = name
	}
	if desc, ok := raw["description"].(string); ok && strings.TrimSpace(desc) != "" {
		rec.Description = desc
	}
	if url, ok := raw["githubUrl"].(string); ok {
		rec.GithubURL = url
	}
	if url, ok := raw["productionUrl"].(string); ok {
		rec.ProductionURL = url
	}
	rec.Users = utils.ToInt(raw["users"])
	rec.Forks = utils.ToInt(raw["forks"])

	if cats, ok := raw["categories"].([]any); ok {
		rec.Categories = utils.ToStringSlice(cats)
	} else if cats, ok := raw["categories"].([]string); ok {
		rec.Categories = append([]string{}, cats...)
	} else if cat, ok := raw["category"].(string); ok && cat != "" {
		rec.Categories = []string{cat}
	}

	if owner, ok := raw["ownerId"].(string); ok {
		rec.OwnerID = owner
	}

	for key, value := range raw {
		if _, known := knownFields[key]; known {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]any)
		}
		rec.Extra[key] = value
	}

	return rec, nil
}

// DisplayCategories returns the categories shown to users. Entries equal
// to "uncategorized" (any casing) are filtered out of the displayed list
// but stay on the record itself.
func (r Record) DisplayCategories() []string {
	out := make([]string, 0, len(r.Categories))
	for _, cat := range r.Categories {
		if strings.EqualFold(cat, uncategorized) {
			continue
		}
		out = append(out, cat)
	}
	return out
}

// Matches reports whether the record matches a case-insensitive substring
// query against name, description and every category. The empty query
// matches everything.
func (r Record) Matches(query string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	if strings.Contains(strings.ToLower(r.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description), query) {
		return true
	}
	for _, cat := range r.Categories {
		if strings.Contains(strings.ToLower(cat), query) {
			return true
		}
	}
	return false
}
