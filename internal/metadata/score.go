package metadata

import (
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/icemuppet/cinema/pkg/scene"
)

// acceptThreshold is the minimum title similarity for a candidate to be
// accepted at all. It guards against false positives on short or common
// titles; bonuses only affect ranking among accepted candidates.
const acceptThreshold = 0.65

// maxCandidates bounds how many provider results are scored per query.
const maxCandidates = 10

// candidateScore combines title similarity with year proximity, poster
// presence and colon-variant containment. The returned accepted flag is based
// on title similarity alone.
func candidateScore(queryTitle string, queryYear int, candTitle string, candYear int, hasPoster bool) (score float64, accepted bool) {
	q := matchKey(queryTitle)
	c := matchKey(candTitle)
	if q == "" || c == "" {
		return 0, false
	}

	sim := titleSimilarity(q, c)
	score = sim
	score += yearBonus(queryYear, candYear)
	if hasPoster {
		score += 0.05
	}
	if q != c && (strings.Contains(c, q) || strings.Contains(q, c)) {
		// One title contains the other: typical for specials named
		// "Performer: Special" matched against "Performer Special".
		score += 0.08
	}
	return score, sim >= acceptThreshold
}

// titleSimilarity blends Jaro-Winkler similarity, which favors prefix
// matches, with token-overlap Jaccard, which tolerates reordering.
func titleSimilarity(q, c string) float64 {
	if q == c {
		return 1.0
	}
	jw := float64(edlib.JaroWinklerSimilarity(q, c))
	return 0.6*jw + 0.4*tokenJaccard(q, c)
}

func tokenJaccard(q, c string) float64 {
	qs := tokenSet(q)
	cs := tokenSet(c)
	if len(qs) == 0 || len(cs) == 0 {
		return 0
	}
	inter := 0
	for tok := range qs {
		if cs[tok] {
			inter++
		}
	}
	union := len(qs) + len(cs) - inter
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

// yearBonus rewards close release years and penalizes far ones. Either year
// being unknown is neutral.
func yearBonus(qYear, cYear int) float64 {
	if qYear == 0 || cYear == 0 {
		return 0
	}
	diff := qYear - cYear
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return 0.25
	case diff == 1:
		return 0.18
	case diff == 2:
		return 0.10
	default:
		return -0.10
	}
}

// matchKey normalizes a title for comparison. Unlike scene.CleanTitle it also
// drops a leading article, which is a matching concern, not a key concern.
func matchKey(title string) string {
	s := scene.CleanTitle(title)
	for _, art := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(s, art) {
			return strings.TrimPrefix(s, art)
		}
	}
	return s
}
