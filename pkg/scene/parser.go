package scene

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// sxxEyyRegex matches the canonical season/episode marker, tolerant of
// padding and separator noise between the S and E parts.
var sxxEyyRegex = regexp.MustCompile(`\b[Ss]\s*(\d{1,2})\s*[.\-_ ]*[Ee]\s*(\d{1,3})\b`)

// sparseNumberRegex matches a standalone 3-digit number used by some naming
// schemes as season*100+episode (e.g. "Show - 213 - Title" for S02E13).
var sparseNumberRegex = regexp.MustCompile(`\b(\d{3})\b`)

// Parse converts a raw file or folder name (extension already removed) into a
// structured identity for the given category. It returns ErrAmbiguous when no
// title token can be isolated.
//
// Parsing is a prioritized sequence of independent rules: separator
// normalization, season/episode extraction (shows), year extraction, and
// release-tag stripping. Each rule is deterministic so the same raw name
// always yields the same identity.
func Parse(rawName string, cat Category) (*Identity, error) {
	s := normalizeSeparators(rawName)
	if s == "" {
		return nil, ErrAmbiguous
	}

	if cat == CategoryShows {
		return parseShow(s)
	}
	return parseMovieLike(s)
}

// parseMovieLike isolates the title, stopping at the first year token or
// known release tag, whichever comes first.
func parseMovieLike(s string) (*Identity, error) {
	var titleTokens []string
	year := 0

	for _, tok := range strings.Fields(s) {
		if y, ok := plausibleYear(tok); ok {
			year = y
			break
		}
		if isTagToken(tok) {
			break
		}
		titleTokens = append(titleTokens, tok)
	}

	if len(titleTokens) == 0 {
		return nil, ErrAmbiguous
	}

	title := strings.Join(titleTokens, " ")
	return &Identity{
		Title: title,
		Clean: CleanTitle(title),
		Year:  year,
	}, nil
}

// parseShow extracts show title, season/episode and a best-effort episode
// title. The canonical SxxEyy marker wins; a standalone 3-digit number is the
// lossy fallback documented in the naming conventions this parser targets.
func parseShow(s string) (*Identity, error) {
	if m := sxxEyyRegex.FindStringSubmatchIndex(s); m != nil {
		season, _ := strconv.Atoi(s[m[2]:m[3]])
		episode, _ := strconv.Atoi(s[m[4]:m[5]])
		return buildShowIdentity(s[:m[0]], season, episode, s[m[1]:])
	}

	// Sparse numeric fallback. season*100+episode; a leading zero season is
	// rejected since it almost always means episode-only numbering.
	if m := sparseNumberRegex.FindStringSubmatchIndex(s); m != nil {
		n, _ := strconv.Atoi(s[m[2]:m[3]])
		season, episode := n/100, n%100
		if season > 0 && episode > 0 && strings.TrimSpace(s[:m[0]]) != "" {
			return buildShowIdentity(s[:m[0]], season, episode, s[m[1]:])
		}
	}

	return nil, ErrAmbiguous
}

func buildShowIdentity(head string, season, episode int, tail string) (*Identity, error) {
	titleTokens, year := showTitleTokens(head)
	if len(titleTokens) == 0 {
		return nil, ErrAmbiguous
	}

	title := strings.Join(titleTokens, " ")
	return &Identity{
		Title:        title,
		Clean:        CleanTitle(title),
		Year:         year,
		Season:       season,
		Episode:      episode,
		EpisodeTitle: episodeTitleFromTail(tail),
	}, nil
}

// showTitleTokens strips separator hyphens, trailing year tokens and release
// tags from the portion of the name before the season/episode marker.
func showTitleTokens(head string) ([]string, int) {
	var tokens []string
	year := 0
	for _, tok := range strings.Fields(head) {
		if tok == "-" {
			continue
		}
		if y, ok := plausibleYear(tok); ok {
			year = y
			continue
		}
		if isTagToken(tok) {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, year
}

// episodeTitleFromTail collects tokens after the marker until the first known
// release tag.
func episodeTitleFromTail(tail string) string {
	var tokens []string
	for _, tok := range strings.Fields(tail) {
		if tok == "-" && len(tokens) == 0 {
			continue
		}
		if isTagToken(tok) {
			break
		}
		tokens = append(tokens, tok)
	}
	return strings.Join(tokens, " ")
}

// plausibleYear reports whether a token is a release year between 1900 and
// next year.
func plausibleYear(tok string) (int, bool) {
	if len(tok) != 4 {
		return 0, false
	}
	y, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	if y < 1900 || y > time.Now().Year()+1 {
		return 0, false
	}
	return y, true
}
