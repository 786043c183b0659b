package models

import "time"

// Media type discriminants used wherever movies and series share a list.
const (
	MediaTypeMovie  = "movie"
	MediaTypeSeries = "series"
)

// Movie is a single movie record as stored and returned by the catalog.
type Movie struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	OriginalTitle string     `json:"original_title,omitempty"`
	Overview      string     `json:"overview,omitempty"`
	PosterPath    string     `json:"poster_path,omitempty"`
	BackdropPath  string     `json:"backdrop_path,omitempty"`
	Popularity    float64    `json:"popularity"`
	VoteAverage   *float64   `json:"vote_average"`
	ReleaseDate   *time.Time `json:"release_date"`
	Runtime       *int       `json:"runtime,omitempty"`
}

// Series is a single series record.
type Series struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	OriginalTitle   string     `json:"original_title,omitempty"`
	Overview        string     `json:"overview,omitempty"`
	PosterPath      string     `json:"poster_path,omitempty"`
	BackdropPath    string     `json:"backdrop_path,omitempty"`
	Popularity      float64    `json:"popularity"`
	VoteAverage     *float64   `json:"vote_average"`
	FirstAirDate    *time.Time `json:"first_air_date"`
	NumberOfSeasons *int       `json:"number_of_seasons,omitempty"`
}

// Genre is a catalog genre, many-to-many with movies.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StreamingProvider is a platform a title can be watched on.
// DisplayPriority defines display ordering, ascending.
type StreamingProvider struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	LogoPath        string `json:"logo_path,omitempty"`
	DisplayPriority int    `json:"display_priority"`
}

// Streaming link types. A movie/provider association carries exactly one.
const (
	LinkTypeFlatrate = "flatrate"
	LinkTypeRent     = "rent"
	LinkTypeBuy      = "buy"
)

// MovieProvider is one active streaming link for a movie joined with its
// provider record.
type MovieProvider struct {
	Type     string            `json:"type"`
	Provider StreamingProvider `json:"provider"`
}

// GroupedProviders partitions a movie's active streaming links by link type.
// Each bucket is sorted by display priority ascending and is never nil, so
// the JSON shape always carries all three keys.
type GroupedProviders struct {
	Flatrate []StreamingProvider `json:"flatrate"`
	Rent     []StreamingProvider `json:"rent"`
	Buy      []StreamingProvider `json:"buy"`
}

// MovieDetail is the single-movie response: the record itself plus its
// grouped streaming providers.
type MovieDetail struct {
	Movie
	StreamingProviders GroupedProviders `json:"streaming_providers"`
}

// MediaItem is a movie or series flattened into the shared shape used by
// mixed-type lists (search, favorites, recently watched). Date is the
// release date for movies and the first air date for series.
type MediaItem struct {
	MediaType    string     `json:"media_type"`
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	PosterPath   string     `json:"poster_path,omitempty"`
	BackdropPath string     `json:"backdrop_path,omitempty"`
	Popularity   float64    `json:"popularity"`
	VoteAverage  *float64   `json:"vote_average"`
	Date         *time.Time `json:"date"`
}

// MovieItem converts a movie into the mixed-list shape.
func MovieItem(m Movie) MediaItem {
	return MediaItem{
		MediaType:    MediaTypeMovie,
		ID:           m.ID,
		Title:        m.Title,
		PosterPath:   m.PosterPath,
		BackdropPath: m.BackdropPath,
		Popularity:   m.Popularity,
		VoteAverage:  m.VoteAverage,
		Date:         m.ReleaseDate,
	}
}

// SeriesItem converts a series into the mixed-list shape.
func SeriesItem(s Series) MediaItem {
	return MediaItem{
		MediaType:    MediaTypeSeries,
		ID:           s.ID,
		Title:        s.Title,
		PosterPath:   s.PosterPath,
		BackdropPath: s.BackdropPath,
		Popularity:   s.Popularity,
		VoteAverage:  s.VoteAverage,
		Date:         s.FirstAirDate,
	}
}

// Pagination describes the window of a list response. Count is the number
// of rows actually returned, not the number requested.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}
