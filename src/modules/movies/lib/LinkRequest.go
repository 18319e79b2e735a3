package movies

import (
	movies "filmoasis/src/modules/movies/models"
)

type LinkCreateRequest struct {
	Type    movies.LinkType `json:"type"`
	Quality string          `json:"quality"`
	URL     string          `json:"url"`
	Size    *string         `json:"size"`
	Server  *string         `json:"server"`
}

func (r LinkCreateRequest) Link(movieID int64) movies.MovieLink {
	return movies.MovieLink{
		MovieID: movieID,
		Type:    r.Type,
		Quality: r.Quality,
		URL:     r.URL,
		Size:    r.Size,
		Server:  r.Server,
	}
}

type DownloadLinkInput struct {
	Quality string  `json:"quality"`
	Size    *string `json:"size"`
	URL     string  `json:"url"`
}

type WatchLinkInput struct {
	Quality string  `json:"quality"`
	Server  *string `json:"server"`
	URL     string  `json:"url"`
}

// LinksReplaceRequest is the full set of links a movie should end up with.
type LinksReplaceRequest struct {
	DownloadLinks []DownloadLinkInput `json:"download_links"`
	WatchLinks    []WatchLinkInput    `json:"watch_links"`
}

// Links flattens the request into rows for movieID, download links first.
func (r LinksReplaceRequest) Links(movieID int64) []movies.MovieLink {
	links := make([]movies.MovieLink, 0, len(r.DownloadLinks)+len(r.WatchLinks))
	for _, d := range r.DownloadLinks {
		links = append(links, movies.MovieLink{
			MovieID: movieID,
			Type:    movies.LinkDownload,
			Quality: d.Quality,
			Size:    d.Size,
			URL:     d.URL,
		})
	}
	for _, w := range r.WatchLinks {
		links = append(links, movies.MovieLink{
			MovieID: movieID,
			Type:    movies.LinkWatch,
			Quality: w.Quality,
			Server:  w.Server,
			URL:     w.URL,
		})
	}
	return links
}
