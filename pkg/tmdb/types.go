package tmdb

// MovieResult is a single candidate from the movie search endpoint.
type MovieResult struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	ReleaseDate   string  `json:"release_date"` // YYYY-MM-DD, may be empty
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	Popularity    float64 `json:"popularity"`
	VoteAverage   float64 `json:"vote_average"`
}

// TVResult is a single candidate from the TV search endpoint.
type TVResult struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	OriginalName string  `json:"original_name"`
	FirstAirDate string  `json:"first_air_date"` // YYYY-MM-DD, may be empty
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
}

// Genre is a named genre reference.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CastMember is one credited actor.
type CastMember struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type credits struct {
	Cast []CastMember `json:"cast"`
}

// Movie is the detail response for a movie, with credits and release dates
// appended.
type Movie struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	ReleaseDate  string  `json:"release_date"`
	Overview     string  `json:"overview"`
	Genres       []Genre `json:"genres"`
	Runtime      int     `json:"runtime"`
	VoteAverage  float64 `json:"vote_average"`
	Tagline      string  `json:"tagline"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`

	Credits      credits      `json:"credits"`
	ReleaseDates releaseDates `json:"release_dates"`
}

type releaseDates struct {
	Results []struct {
		ISO3166 string `json:"iso_3166_1"`
		Dates   []struct {
			Certification string `json:"certification"`
		} `json:"release_dates"`
	} `json:"results"`
}

// Cast returns up to n credited actor names in billing order.
func (m *Movie) Cast(n int) []string {
	return castNames(m.Credits.Cast, n)
}

// USCertification returns the first non-empty US certification, or "".
func (m *Movie) USCertification() string {
	for _, entry := range m.ReleaseDates.Results {
		if entry.ISO3166 != "US" {
			continue
		}
		for _, rel := range entry.Dates {
			if cert := rel.Certification; cert != "" {
				return cert
			}
		}
	}
	return ""
}

// TV is the detail response for a series, with credits appended.
type TV struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	FirstAirDate string  `json:"first_air_date"`
	Overview     string  `json:"overview"`
	Genres       []Genre `json:"genres"`
	VoteAverage  float64 `json:"vote_average"`
	Tagline      string  `json:"tagline"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`

	Credits credits `json:"credits"`
}

// Cast returns up to n credited actor names in billing order.
func (t *TV) Cast(n int) []string {
	return castNames(t.Credits.Cast, n)
}

// Episode is the detail response for a single episode.
type Episode struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Overview string `json:"overview"`
	AirDate  string `json:"air_date"`
}

type movieSearchResponse struct {
	Results []MovieResult `json:"results"`
}

type tvSearchResponse struct {
	Results []TVResult `json:"results"`
}

func castNames(cast []CastMember, n int) []string {
	names := make([]string, 0, n)
	for _, c := range cast {
		if c.Name == "" {
			continue
		}
		names = append(names, c.Name)
		if len(names) == n {
			break
		}
	}
	return names
}
