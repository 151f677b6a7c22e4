package database

import (
	"context"
	"database/sql"
	"time"
)

type DashboardRepository struct {
	DB *sql.DB
}

func NewDashboardRepository(db *sql.DB) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type DailyStats struct {
	Date      string        `json:"date"`
	Prospects []StatusCount `json:"prospects"`
	PreTalks  []StatusCount `json:"pre_talks"`
}

type WeeklyStats struct {
	WeekStart      string     `json:"week_start"`
	WeekEnd        string     `json:"week_end"`
	ProspectsByDay []DayCount `json:"prospects_by_day"`
	PreTalksByDay  []DayCount `json:"pre_talks_by_day"`
}

type PreTalkTotals struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Scheduled int `json:"scheduled"`
}

type MonthlyStats struct {
	Month           string        `json:"month"`
	TotalProspects  int           `json:"total_prospects"`
	StatusBreakdown []StatusCount `json:"status_breakdown"`
	PreTalks        PreTalkTotals `json:"pre_talks"`
}

// scopeUserID restricts counts to prospects created by that user (member
// visibility); empty means organization-wide.

func (r *DashboardRepository) Daily(ctx context.Context, scopeUserID string) (*DailyStats, error) {
	start, end := DayWindow(time.Now())

	prospects, err := r.prospectStatusCounts(ctx, "created_at", start, end, scopeUserID)
	if err != nil {
		return nil, err
	}
	preTalks, err := r.preTalkStatusCounts(ctx, start, end, scopeUserID)
	if err != nil {
		return nil, err
	}

	return &DailyStats{
		Date:      start.Format("2006-01-02"),
		Prospects: prospects,
		PreTalks:  preTalks,
	}, nil
}

func (r *DashboardRepository) Weekly(ctx context.Context, scopeUserID string) (*WeeklyStats, error) {
	start, end := WeekWindow(time.Now())

	prospects, err := r.dayCounts(ctx, `
		SELECT DATE(created_at), COUNT(*)
		FROM prospects
		WHERE created_at >= $1 AND created_at < $2`, "created_by", start, end, scopeUserID,
		" GROUP BY DATE(created_at) ORDER BY DATE(created_at)")
	if err != nil {
		return nil, err
	}
	preTalks, err := r.dayCounts(ctx, `
		SELECT DATE(pt.scheduled_at), COUNT(*)
		FROM pre_talks pt
		LEFT JOIN prospects p ON pt.prospect_id = p.id
		WHERE pt.scheduled_at >= $1 AND pt.scheduled_at < $2`, "p.created_by", start, end, scopeUserID,
		" GROUP BY DATE(pt.scheduled_at) ORDER BY DATE(pt.scheduled_at)")
	if err != nil {
		return nil, err
	}

	return &WeeklyStats{
		WeekStart:      start.Format("2006-01-02"),
		WeekEnd:        end.Format("2006-01-02"),
		ProspectsByDay: prospects,
		PreTalksByDay:  preTalks,
	}, nil
}

func (r *DashboardRepository) Monthly(ctx context.Context, scopeUserID string) (*MonthlyStats, error) {
	start, end := MonthWindow(time.Now())

	query := `SELECT COUNT(*) FROM prospects WHERE created_at >= $1 AND created_at < $2`
	params := []any{start, end}
	if scopeUserID != "" {
		query += ` AND created_by = $3`
		params = append(params, scopeUserID)
	}
	var total int
	if err := r.DB.QueryRowContext(ctx, query, params...).Scan(&total); err != nil {
		return nil, err
	}

	breakdown, err := r.prospectStatusCounts(ctx, "created_at", start, end, scopeUserID)
	if err != nil {
		return nil, err
	}

	query = `
		SELECT COUNT(*),
		       COUNT(CASE WHEN pt.status = 'completed' THEN 1 END),
		       COUNT(CASE WHEN pt.status = 'scheduled' THEN 1 END)
		FROM pre_talks pt
		LEFT JOIN prospects p ON pt.prospect_id = p.id
		WHERE pt.scheduled_at >= $1 AND pt.scheduled_at < $2`
	params = []any{start, end}
	if scopeUserID != "" {
		query += ` AND p.created_by = $3`
		params = append(params, scopeUserID)
	}
	var totals PreTalkTotals
	if err := r.DB.QueryRowContext(ctx, query, params...).Scan(&totals.Total, &totals.Completed, &totals.Scheduled); err != nil {
		return nil, err
	}

	return &MonthlyStats{
		Month:           start.Format("2006-01"),
		TotalProspects:  total,
		StatusBreakdown: breakdown,
		PreTalks:        totals,
	}, nil
}

func (r *DashboardRepository) prospectStatusCounts(ctx context.Context, timeColumn string, start, end time.Time, scopeUserID string) ([]StatusCount, error) {
	query := `SELECT status, COUNT(*) FROM prospects WHERE ` + timeColumn + ` >= $1 AND ` + timeColumn + ` < $2`
	params := []any{start, end}
	if scopeUserID != "" {
		query += ` AND created_by = $3`
		params = append(params, scopeUserID)
	}
	query += ` GROUP BY status`
	return r.statusCounts(ctx, query, params)
}

func (r *DashboardRepository) preTalkStatusCounts(ctx context.Context, start, end time.Time, scopeUserID string) ([]StatusCount, error) {
	query := `
		SELECT pt.status, COUNT(*)
		FROM pre_talks pt
		LEFT JOIN prospects p ON pt.prospect_id = p.id
		WHERE pt.scheduled_at >= $1 AND pt.scheduled_at < $2`
	params := []any{start, end}
	if scopeUserID != "" {
		query += ` AND p.created_by = $3`
		params = append(params, scopeUserID)
	}
	query += ` GROUP BY pt.status`
	return r.statusCounts(ctx, query, params)
}

func (r *DashboardRepository) statusCounts(ctx context.Context, query string, params []any) ([]StatusCount, error) {
	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []StatusCount{}
	for rows.Next() {
		var c StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *DashboardRepository) dayCounts(ctx context.Context, baseQuery, scopeColumn string, start, end time.Time, scopeUserID, groupBy string) ([]DayCount, error) {
	query := baseQuery
	params := []any{start, end}
	if scopeUserID != "" {
		query += ` AND ` + scopeColumn + ` = $3`
		params = append(params, scopeUserID)
	}
	query += groupBy

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []DayCount{}
	for rows.Next() {
		var c DayCount
		var day time.Time
		if err := rows.Scan(&day, &c.Count); err != nil {
			return nil, err
		}
		c.Date = day.Format("2006-01-02")
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// DayWindow returns [midnight today, midnight tomorrow).
func DayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// WeekWindow returns the Sunday-based week containing now.
func WeekWindow(now time.Time) (time.Time, time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := midnight.AddDate(0, 0, -int(now.Weekday()))
	return start, start.AddDate(0, 0, 7)
}

// MonthWindow returns [first of this month, first of next month).
func MonthWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}
