package statistics

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"filmoasis/src/metrics"
	movies "filmoasis/src/modules/movies/models"
	statistics "filmoasis/src/modules/statistics/models"
	"filmoasis/src/utils"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type monthRow struct {
	Month  int
	Views  int64
	Users  int64
	Movies int64
}

type dayRow struct {
	Day   int
	Views int64
}

// Aggregator computes the dashboard report from movies, users and
// watch_history.
type Aggregator struct {
	db  *gorm.DB
	now func() time.Time
	loc *time.Location
}

type Option func(*Aggregator)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// WithLocation sets the zone that calendar years and days are taken in.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) {
		if loc != nil {
			a.loc = loc
		}
	}
}

func NewAggregator(db *gorm.DB, opts ...Option) *Aggregator {
	a := &Aggregator{db: db, now: time.Now, loc: time.UTC}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ComputeStatistics runs the report queries concurrently. Any failure fails
// the whole report.
func (a *Aggregator) ComputeStatistics(ctx context.Context) (*statistics.StatisticsReport, error) {
	start := time.Now()
	defer func() { metrics.StatisticsDuration.Observe(time.Since(start).Seconds()) }()

	now := a.now().In(a.loc)
	yearStart, yearEnd := yearBounds(now)
	weekStart := weekWindowStart(now)
	tz := a.loc.String()

	var (
		kpis   statistics.KPIs
		avg    float64
		months []monthRow
		days   []dayRow
	)

	g, gctx := errgroup.WithContext(ctx)
	db := a.db.WithContext(gctx)

	g.Go(func() error {
		return db.Model(&movies.Movie{}).Count(&kpis.TotalMovies).Error
	})
	g.Go(func() error {
		return db.Model(&statistics.User{}).Count(&kpis.TotalUsers).Error
	})
	g.Go(func() error {
		return db.Model(&statistics.WatchHistory{}).Count(&kpis.TotalViews).Error
	})
	g.Go(func() error {
		return db.Model(&statistics.WatchHistory{}).
			Select("COALESCE(AVG(duration), 0)").
			Scan(&avg).Error
	})
	g.Go(func() error {
		return db.Model(&statistics.WatchHistory{}).
			Select("EXTRACT(MONTH FROM watch_time AT TIME ZONE ?)::int AS month, "+
				"COUNT(*) AS views, COUNT(DISTINCT user_id) AS users, COUNT(DISTINCT movie_id) AS movies", tz).
			Where("watch_time >= ? AND watch_time < ?", yearStart, yearEnd).
			Group("month").
			Order("month").
			Scan(&months).Error
	})
	g.Go(func() error {
		return db.Model(&statistics.WatchHistory{}).
			Select("EXTRACT(DOW FROM watch_time AT TIME ZONE ?)::int AS day, COUNT(*) AS views", tz).
			Where("watch_time >= ?", weekStart).
			Group("day").
			Order("day").
			Scan(&days).Error
	})

	if err := g.Wait(); err != nil {
		return nil, utils.StorageFailure("compute statistics", err)
	}

	kpis.AvgWatchTime = minutes(avg)
	return &statistics.StatisticsReport{
		KPIs:        kpis,
		MonthlyData: monthlyPoints(months),
		WeeklyData:  weeklyPoints(days),
	}, nil
}

// yearBounds returns [Jan 1, next Jan 1) of now's year in now's location.
func yearBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(1, 0, 0)
}

// weekWindowStart is midnight seven days before now's calendar date.
func weekWindowStart(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-7, 0, 0, 0, 0, now.Location())
}

// minutes converts an average in seconds to whole minutes, rounding half
// away from zero.
func minutes(seconds float64) int64 {
	return int64(math.Round(seconds / 60))
}

func monthlyPoints(rows []monthRow) []statistics.MonthlyPoint {
	points := make([]statistics.MonthlyPoint, 0, len(rows))
	for _, r := range rows {
		if r.Month < 1 || r.Month > 12 {
			continue
		}
		points = append(points, statistics.MonthlyPoint{
			Name:      monthNames[r.Month-1],
			Viewers:   r.Views,
			Members:   r.Users,
			Downloads: r.Movies,
		})
	}
	return points
}

func weeklyPoints(rows []dayRow) []statistics.WeeklyPoint {
	points := make([]statistics.WeeklyPoint, 0, len(rows))
	for _, r := range rows {
		if r.Day < 0 || r.Day > 6 {
			continue
		}
		points = append(points, statistics.WeeklyPoint{
			Name:  dayNames[r.Day],
			Views: r.Views,
		})
	}
	return points
}
