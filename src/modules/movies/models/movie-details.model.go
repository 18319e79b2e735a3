package movies

// MovieDetails is a movie with its links split into presentation buckets.
type MovieDetails struct {
	Movie
	LinkGroups
}

type LinkGroups struct {
	DownloadLinks []DownloadLink `json:"download_links"`
	WatchLinks    []WatchLink    `json:"watch_links"`
}

type DownloadLink struct {
	ID      int64  `json:"id"`
	Quality string `json:"quality"`
	Size    string `json:"size"`
	URL     string `json:"url"`
}

type WatchLink struct {
	ID      int64  `json:"id"`
	Quality string `json:"quality"`
	Server  string `json:"server"`
	URL     string `json:"url"`
}
