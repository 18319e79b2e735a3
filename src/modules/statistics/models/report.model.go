package statistics

// StatisticsReport is the dashboard payload. Key names are consumed by the
// existing admin UI.
type StatisticsReport struct {
	KPIs        KPIs           `json:"kpis"`
	MonthlyData []MonthlyPoint `json:"monthlyData"`
	WeeklyData  []WeeklyPoint  `json:"weeklyData"`
}

type KPIs struct {
	TotalMovies  int64 `json:"totalMovies"`
	TotalUsers   int64 `json:"totalUsers"`
	TotalViews   int64 `json:"totalViews"`
	AvgWatchTime int64 `json:"avgWatchTime"` // minutes
}

// MonthlyPoint holds views, distinct users and distinct movies for a month.
type MonthlyPoint struct {
	Name      string `json:"name"`
	Viewers   int64  `json:"viewers"`
	Members   int64  `json:"members"`
	Downloads int64  `json:"downloads"`
}

type WeeklyPoint struct {
	Name  string `json:"name"`
	Views int64  `json:"views"`
}
