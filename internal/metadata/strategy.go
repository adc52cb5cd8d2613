package metadata

import (
	"fmt"
	"strings"

	"github.com/icemuppet/cinema/pkg/scene"
)

// searchQuery is one strategy in a resolution plan: a query text and an
// optional year (0 means yearless). Plans are evaluated in order,
// short-circuiting on the first query that yields an accepted candidate.
type searchQuery struct {
	Text string
	Year int
}

// Label renders the query for diagnostics.
func (q searchQuery) Label() string {
	if q.Year > 0 {
		return fmt.Sprintf("%q (%d)", q.Text, q.Year)
	}
	return fmt.Sprintf("%q", q.Text)
}

// movieQueryPlan builds the ordered strategy list for a movie-like identity.
//
// Identities with a year sweep the year outward first: y, y-1, y+1, y-2,
// y+2, then yearless. Standup and documentary names often embed a recording
// year or punctuation the provider doesn't index, so after the dated sweep
// they fall back to a yearless query with year tokens stripped, then a colon
// variant covering "Performer: Special" naming, then the plain variant with
// colons removed.
func movieQueryPlan(id *scene.Identity, cat scene.Category) []searchQuery {
	var plan []searchQuery
	if id.Year > 0 {
		for _, y := range []int{id.Year, id.Year - 1, id.Year + 1, id.Year - 2, id.Year + 2} {
			plan = append(plan, searchQuery{Text: id.Title, Year: y})
		}
	}
	if cat == scene.CategoryStandup || cat == scene.CategoryDocumentary {
		return append(plan, specialQueryPlan(id)...)
	}
	return append(plan, searchQuery{Text: id.Title})
}

func specialQueryPlan(id *scene.Identity) []searchQuery {
	base := scene.StripYearTokens(id.Title)
	if base == "" {
		base = id.Title
	}

	plan := []searchQuery{{Text: base}}
	if cv := colonVariant(base); cv != "" {
		plan = append(plan, searchQuery{Text: cv})
	}
	if stripped := strings.Join(strings.Fields(strings.ReplaceAll(base, ":", " ")), " "); stripped != base {
		plan = append(plan, searchQuery{Text: stripped})
	}
	return plan
}

// colonVariant rewrites the first delimiter boundary of a title as
// "Title: Subtitle". Two words split after the first, longer titles after
// the second. Returns "" when the title already has a colon or is too short.
func colonVariant(title string) string {
	if strings.Contains(title, ":") {
		return ""
	}
	words := strings.Fields(title)
	if len(words) < 2 {
		return ""
	}
	if len(words) == 2 {
		return words[0] + ": " + words[1]
	}
	return words[0] + " " + words[1] + ": " + strings.Join(words[2:], " ")
}

// showQueryPlan builds the ordered list of query texts for a show. Year, if
// parsed, never filters the search; it only contributes a scoring bonus.
func showQueryPlan(id *scene.Identity) []string {
	variants := []string{id.Title, id.Clean}

	var plan []string
	seen := make(map[string]bool)
	for _, v := range variants {
		v = strings.TrimSpace(v)
		if v == "" || seen[strings.ToLower(v)] {
			continue
		}
		seen[strings.ToLower(v)] = true
		plan = append(plan, v)
	}
	return plan
}
