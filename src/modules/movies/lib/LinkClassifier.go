package movies

import (
	movies "filmoasis/src/modules/movies/models"
)

const defaultServer = "Server 1"

// Classify splits links into download and watch buckets, keeping input order
// within each bucket. Links of any other type are left out. Both slices are
// non-nil so they encode as [] when empty.
func Classify(links []movies.MovieLink) movies.LinkGroups {
	groups := movies.LinkGroups{
		DownloadLinks: []movies.DownloadLink{},
		WatchLinks:    []movies.WatchLink{},
	}

	for _, l := range links {
		switch l.Type {
		case movies.LinkDownload:
			size := ""
			if l.Size != nil {
				size = *l.Size
			}
			groups.DownloadLinks = append(groups.DownloadLinks, movies.DownloadLink{
				ID:      l.ID,
				Quality: l.Quality,
				Size:    size,
				URL:     l.URL,
			})
		case movies.LinkWatch:
			server := defaultServer
			if l.Server != nil && *l.Server != "" {
				server = *l.Server
			}
			groups.WatchLinks = append(groups.WatchLinks, movies.WatchLink{
				ID:      l.ID,
				Quality: l.Quality,
				Server:  server,
				URL:     l.URL,
			})
		}
	}

	return groups
}

// Details attaches the classified links to a movie.
func Details(m movies.Movie, links []movies.MovieLink) movies.MovieDetails {
	return movies.MovieDetails{Movie: m, LinkGroups: Classify(links)}
}
