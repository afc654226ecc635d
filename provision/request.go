package provision

import (
	"regexp"
	"strings"

	apperrors "github.com/basebase-ai/basebase-go/internal/errors"
)

// Mode selects between creating a new project and editing an existing one.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

var (
	projectIDRegexp = regexp.MustCompile(`^[a-z0-9-]+$`)
	slugStripRegexp = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRegexp = regexp.MustCompile(`\s+`)
	slugDashRegexp  = regexp.MustCompile(`-+`)
)

// Request carries one submission of the project form. It lives only for
// the duration of a single Provision call.
type Request struct {
	ProjectID   string
	Name        string
	Description string
	Categories  []string
	OwnerID     string // derived from the current session, never caller-supplied
}

// trimmed returns a copy with the user-supplied text fields trimmed.
func (r Request) trimmed() Request {
	r.ProjectID = strings.TrimSpace(r.ProjectID)
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	categories := make([]string, 0, len(r.Categories))
	for _, cat := range r.Categories {
		if trimmedCat := strings.TrimSpace(cat); trimmedCat != "" {
			categories = append(categories, trimmedCat)
		}
	}
	r.Categories = categories
	return r
}

// Validate checks the request before any remote call is made.
func (r Request) Validate() error {
	if r.Name == "" || r.ProjectID == "" || r.Description == "" {
		return apperrors.NewValidation("Please fill in all fields")
	}
	if !projectIDRegexp.MatchString(r.ProjectID) {
		return apperrors.NewValidation("Project ID must contain only lowercase letters, numbers, and hyphens")
	}
	return nil
}

// Slugify derives a project id from a display name the way the platform's
// web form auto-generates one: lowercase, non-alphanumerics stripped,
// whitespace collapsed to single hyphens, leading/trailing hyphens
// removed. The result can still be empty for names with no usable
// characters; validation catches that.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugStripRegexp.ReplaceAllString(slug, "")
	slug = slugSpaceRegexp.ReplaceAllString(slug, "-")
	slug = slugDashRegexp.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// ParseCategories splits a comma-separated category field into a clean
// list, dropping empty entries.
func ParseCategories(raw string) []string {
	parts := strings.Split(raw, ",")
	categories := make([]string, 0, len(parts))
	for _, part := range parts {
		if cat := strings.TrimSpace(part); cat != "" {
			categories = append(categories, cat)
		}
	}
	return categories
}
