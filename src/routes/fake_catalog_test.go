package routes

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	lib "filmoasis/src/modules/movies/lib"
	movies "filmoasis/src/modules/movies/models"
	statistics "filmoasis/src/modules/statistics/models"
	"filmoasis/src/utils"
)

// memoryCatalog mirrors the repository's observable behaviour in memory.
type memoryCatalog struct {
	mu       sync.Mutex
	nextID   int64
	nextLink int64
	movies   map[int64]movies.Movie
	links    map[int64]movies.MovieLink
	failWith error
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{
		movies: map[int64]movies.Movie{},
		links:  map[int64]movies.MovieLink{},
	}
}

func (m *memoryCatalog) sorted(filter func(movies.Movie) bool) []movies.Movie {
	list := []movies.Movie{}
	for _, mv := range m.movies {
		if filter == nil || filter(mv) {
			list = append(list, mv)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list
}

func (m *memoryCatalog) ListMovies(context.Context) ([]movies.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.sorted(nil), nil
}

func (m *memoryCatalog) GetMovie(_ context.Context, id int64) (*movies.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mv, ok := m.movies[id]
	if !ok {
		return nil, utils.NotFound("Movie not found")
	}
	return &mv, nil
}

func (m *memoryCatalog) GetMovieByTMDBID(_ context.Context, tmdbID int64) (*movies.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.sorted(func(mv movies.Movie) bool { return mv.TMDBID != nil && *mv.TMDBID == tmdbID })
	if len(list) == 0 {
		return nil, utils.NotFound("Movie not found")
	}
	return &list[0], nil
}

func (m *memoryCatalog) CreateMovie(_ context.Context, req lib.MovieCreateRequest) (*movies.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mv := req.Movie()
	if mv.Title == "" {
		return nil, utils.StorageFailure("create movie", errFakeConstraint)
	}
	m.nextID++
	mv.ID = m.nextID
	mv.CreatedAt = time.Now()
	mv.UpdatedAt = mv.CreatedAt
	m.movies[mv.ID] = mv
	return &mv, nil
}

func (m *memoryCatalog) UpdateMovie(_ context.Context, id int64, req lib.MovieUpdateRequest) (*movies.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mv, ok := m.movies[id]
	if !ok {
		return nil, utils.NotFound("Movie not found")
	}
	mv.Title = req.Title
	mv.TitleAr = req.TitleAr
	mv.Description = req.Description
	mv.DescriptionAr = req.DescriptionAr
	mv.ReleaseDate = req.ReleaseDate
	mv.Rating = req.Rating
	mv.Genres = req.Genres
	mv.UpdatedAt = time.Now()
	m.movies[id] = mv
	return &mv, nil
}

func (m *memoryCatalog) DeleteMovie(_ context.Context, id int64) (*movies.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mv, ok := m.movies[id]
	if !ok {
		return nil, utils.NotFound("Movie not found")
	}
	delete(m.movies, id)
	for lid, l := range m.links {
		if l.MovieID == id {
			delete(m.links, lid)
		}
	}
	return &mv, nil
}

func (m *memoryCatalog) SearchMovies(_ context.Context, q string) ([]movies.Movie, error) {
	if strings.TrimSpace(q) == "" {
		return nil, utils.Invalid("Search query is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	needle := strings.ToLower(q)
	contains := func(s *string) bool { return s != nil && strings.Contains(strings.ToLower(*s), needle) }
	return m.sorted(func(mv movies.Movie) bool {
		return strings.Contains(strings.ToLower(mv.Title), needle) ||
			contains(mv.TitleAr) || contains(mv.Description) || contains(mv.DescriptionAr)
	}), nil
}

func (m *memoryCatalog) ListMovieLinks(_ context.Context, movieID int64) ([]movies.MovieLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	links := []movies.MovieLink{}
	for _, l := range m.links {
		if l.MovieID == movieID {
			links = append(links, l)
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].ID > links[j].ID })
	return links, nil
}

func (m *memoryCatalog) AddMovieLink(_ context.Context, movieID int64, req lib.LinkCreateRequest) (*movies.MovieLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := req.Link(movieID)
	if l.URL == "" {
		return nil, utils.StorageFailure("add movie link", errFakeConstraint)
	}
	m.nextLink++
	l.ID = m.nextLink
	l.CreatedAt = time.Now()
	m.links[l.ID] = l
	return &l, nil
}

func (m *memoryCatalog) DeleteMovieLink(_ context.Context, movieID, linkID int64) (*movies.MovieLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.links[linkID]
	if !ok || l.MovieID != movieID {
		return nil, utils.NotFound("Link not found")
	}
	delete(m.links, linkID)
	return &l, nil
}

func (m *memoryCatalog) ReplaceMovieLinks(_ context.Context, movieID int64, links []movies.MovieLink) ([]movies.MovieLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range links {
		if l.URL == "" {
			return nil, utils.StorageFailure("replace movie links", errFakeConstraint)
		}
	}
	for lid, l := range m.links {
		if l.MovieID == movieID {
			delete(m.links, lid)
		}
	}
	out := make([]movies.MovieLink, 0, len(links))
	for _, l := range links {
		m.nextLink++
		l.ID = m.nextLink
		l.MovieID = movieID
		m.links[l.ID] = l
		out = append(out, l)
	}
	return out, nil
}

type fixedReporter struct{}

func (fixedReporter) ComputeStatistics(context.Context) (*statistics.StatisticsReport, error) {
	return &statistics.StatisticsReport{
		MonthlyData: []statistics.MonthlyPoint{},
		WeeklyData:  []statistics.WeeklyPoint{},
	}, nil
}

type constraintError string

func (e constraintError) Error() string { return string(e) }

const errFakeConstraint = constraintError("violates check constraint")
