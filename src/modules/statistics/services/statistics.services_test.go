package statistics

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	statistics "filmoasis/src/modules/statistics/models"
	"filmoasis/src/testinfra"
)

func TestMinutesRounding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seconds float64
		want    int64
	}{
		{0, 0},
		{29, 0},
		{30, 1},
		{89.9, 1},
		{90, 2},
		{5400, 90},
	}
	for _, tt := range tests {
		if got := minutes(tt.seconds); got != tt.want {
			t.Errorf("minutes(%v) = %d, want %d", tt.seconds, got, tt.want)
		}
	}
}

func TestMonthlyPointsNamesAndOrder(t *testing.T) {
	t.Parallel()

	got := monthlyPoints([]monthRow{
		{Month: 1, Views: 10, Users: 4, Movies: 3},
		{Month: 3, Views: 2, Users: 1, Movies: 1},
		{Month: 12, Views: 7, Users: 2, Movies: 5},
	})

	want := []statistics.MonthlyPoint{
		{Name: "Jan", Viewers: 10, Members: 4, Downloads: 3},
		{Name: "Mar", Viewers: 2, Members: 1, Downloads: 1},
		{Name: "Dec", Viewers: 7, Members: 2, Downloads: 5},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestWeeklyPointsUsesWeekdayIndex(t *testing.T) {
	t.Parallel()

	got := weeklyPoints([]dayRow{{Day: 0, Views: 3}, {Day: 2, Views: 1}, {Day: 6, Views: 9}})

	names := []string{"Sun", "Tue", "Sat"}
	if len(got) != len(names) {
		t.Fatalf("got %d points, want %d", len(got), len(names))
	}
	for i, name := range names {
		if got[i].Name != name {
			t.Errorf("point %d name = %q, want %q", i, got[i].Name, name)
		}
	}
	if got[2].Views != 9 {
		t.Errorf("Sat views = %d, want 9", got[2].Views)
	}
}

func TestEmptyReportEncodesArrays(t *testing.T) {
	t.Parallel()

	report := statistics.StatisticsReport{
		MonthlyData: monthlyPoints(nil),
		WeeklyData:  weeklyPoints(nil),
	}
	out, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"kpis":{"totalMovies":0,"totalUsers":0,"totalViews":0,"avgWatchTime":0},"monthlyData":[],"weeklyData":[]}`
	if string(out) != want {
		t.Errorf("got %s\nwant %s", out, want)
	}
}

func TestYearBounds(t *testing.T) {
	t.Parallel()

	cairo, err := time.LoadLocation("Africa/Cairo")
	if err != nil {
		t.Skipf("zone data unavailable: %v", err)
	}
	now := time.Date(2026, time.October, 19, 13, 0, 0, 0, cairo)

	start, end := yearBounds(now)
	if !start.Equal(time.Date(2026, time.January, 1, 0, 0, 0, 0, cairo)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2027, time.January, 1, 0, 0, 0, 0, cairo)) {
		t.Errorf("end = %v", end)
	}
}

func TestWeekWindowStart(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 3, 18, 45, 0, 0, time.UTC)
	got := weekWindowStart(now)

	want := time.Date(2026, time.February, 24, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("weekWindowStart = %v, want %v", got, want)
	}
}

func TestNewAggregatorOptions(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := NewAggregator(nil, WithClock(func() time.Time { return fixed }), WithLocation(nil))

	if a.loc != time.UTC {
		t.Errorf("nil location should keep UTC, got %v", a.loc)
	}
	if !a.now().Equal(fixed) {
		t.Errorf("clock not applied")
	}
}

func TestComputeStatisticsQueryShape(t *testing.T) {
	db, rec := testinfra.NewDryRun(t)

	fixed := time.Date(2026, time.March, 3, 18, 45, 0, 0, time.UTC)
	a := NewAggregator(db, WithClock(func() time.Time { return fixed }))

	// Dry-run scans cannot read rows, so the report itself fails.
	_, _ = a.ComputeStatistics(context.Background())

	tests := []struct {
		name     string
		marker   string
		contains []string
		vars     []interface{}
	}{
		{
			name:   "monthly buckets",
			marker: "EXTRACT(MONTH FROM watch_time",
			contains: []string{
				`FROM "watch_history"`,
				"watch_time >= $2 AND watch_time < $3",
				`GROUP BY "month" ORDER BY month`,
			},
			vars: []interface{}{
				"UTC",
				time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:   "weekly buckets",
			marker: "EXTRACT(DOW FROM watch_time",
			contains: []string{
				`FROM "watch_history"`,
				"watch_time >= $2",
				`GROUP BY "day" ORDER BY day`,
			},
			vars: []interface{}{
				"UTC",
				time.Date(2026, time.February, 24, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:     "average duration",
			marker:   "AVG(duration)",
			contains: []string{"COALESCE(AVG(duration), 0)", `FROM "watch_history"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, ok := rec.Find(tt.marker)
			if !ok {
				t.Fatalf("no statement containing %q in %v", tt.marker, rec.Statements())
			}
			for _, want := range tt.contains {
				if !strings.Contains(stmt.SQL, want) {
					t.Errorf("SQL %q missing %q", stmt.SQL, want)
				}
			}
			if strings.Contains(stmt.SQL, `GROUP BY "1"`) {
				t.Errorf("SQL %q groups by a quoted position", stmt.SQL)
			}
			if tt.vars == nil {
				return
			}
			if len(stmt.Vars) != len(tt.vars) {
				t.Fatalf("vars = %v, want %v", stmt.Vars, tt.vars)
			}
			for i, want := range tt.vars {
				if wantTime, isTime := want.(time.Time); isTime {
					got, ok := stmt.Vars[i].(time.Time)
					if !ok || !got.Equal(wantTime) {
						t.Errorf("var %d = %v, want %v", i, stmt.Vars[i], want)
					}
					continue
				}
				if stmt.Vars[i] != want {
					t.Errorf("var %d = %v, want %v", i, stmt.Vars[i], want)
				}
			}
		})
	}

	counts := 0
	for _, s := range rec.Statements() {
		if strings.HasPrefix(s.SQL, "SELECT count(*) FROM") {
			counts++
		}
	}
	if counts != 3 {
		t.Errorf("count statements = %d, want 3", counts)
	}
}
