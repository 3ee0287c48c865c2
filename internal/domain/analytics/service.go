package analytics

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"civic-reporter-go/internal/platform/config"
	"civic-reporter-go/internal/platform/errors"
	"civic-reporter-go/internal/platform/logging"
	"civic-reporter-go/internal/platform/storage"
)

// placeholderNotDone marks issues that were acknowledged but have no real
// proof photo yet; such issues do not count as completed.
const placeholderNotDone = "To be done"

// Insighter generates a short free-form text from a prompt. The scoring
// service satisfies it; absence means insights degrade to a placeholder.
type Insighter interface {
	Complete(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error)
}

// Service aggregates department-level statistics over reported issues.
type Service struct {
	db        *gorm.DB
	cfg       config.AnalyticsConfig
	insighter Insighter
	logger    *logging.Logger
}

func NewService(db *gorm.DB, cfg config.AnalyticsConfig, insighter Insighter, logger *logging.Logger) *Service {
	return &Service{
		db:        db,
		cfg:       cfg,
		insighter: insighter,
		logger:    logger,
	}
}

// Overview summarizes the whole department.
type Overview struct {
	TotalIssues        int64   `json:"total_issues"`
	AcknowledgedIssues int64   `json:"acknowledged_issues"`
	CompletedIssues    int64   `json:"completed_issues"`
	PendingIssues      int64   `json:"pending_issues"`
	CompletionRate     float64 `json:"completion_rate"`
	AcknowledgmentRate float64 `json:"acknowledgment_rate"`
	AvgUpvotes         float64 `json:"avg_upvotes"`
}

// GroupPerformance holds per-category or per-constituency aggregates.
type GroupPerformance struct {
	Group              string  `json:"group" gorm:"column:grp"`
	TotalIssues        int64   `json:"total_issues"`
	Acknowledged       int64   `json:"acknowledged"`
	Completed          int64   `json:"completed"`
	CompletionRate     float64 `json:"completion_rate"`
	AcknowledgmentRate float64 `json:"acknowledgment_rate"`
	TotalUpvotes       int64   `json:"total_upvotes"`
	AvgUpvotes         float64 `json:"avg_upvotes"`
}

// TimeSeriesPoint is one day of reporting activity.
type TimeSeriesPoint struct {
	Date               string `json:"date"`
	IssuesReported     int64  `json:"issues_reported"`
	IssuesAcknowledged int64  `json:"issues_acknowledged"`
	IssuesCompleted    int64  `json:"issues_completed"`
}

// UrgentIssue is an unresolved issue ranked by urgency.
type UrgentIssue struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	Constituency string  `json:"constituency"`
	Upvotes      int     `json:"upvotes"`
	DaysPending  float64 `json:"days_pending"`
	Status       string  `json:"status"`
	AssignedTo   string  `json:"assigned_to"`
}

// Dashboard is the comprehensive analytics payload.
type Dashboard struct {
	Overview                Overview           `json:"overview"`
	CategoryPerformance     []GroupPerformance `json:"category_performance"`
	ConstituencyPerformance []GroupPerformance `json:"constituency_performance"`
	TimeSeries              []TimeSeriesPoint  `json:"time_series"`
	UrgentIssues            []UrgentIssue      `json:"urgent_issues"`
	AIInsight               string             `json:"ai_insight"`
	GeneratedAt             time.Time          `json:"generated_at"`
}

// issues starts a fresh query chain; gorm chains accumulate conditions, so
// every count gets its own.
func (s *Service) issues(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&storage.Issue{})
}

// GetOverview computes department-wide counts and rates.
func (s *Service) GetOverview(ctx context.Context) (Overview, error) {
	var overview Overview

	if err := s.issues(ctx).Count(&overview.TotalIssues).Error; err != nil {
		return overview, errors.Wrap(errors.KindAnalytics, "analytics.overview", "count issues", err)
	}
	if err := s.issues(ctx).Where("acknowledged = ?", true).Count(&overview.AcknowledgedIssues).Error; err != nil {
		return overview, errors.Wrap(errors.KindAnalytics, "analytics.overview", "count acknowledged", err)
	}
	if err := s.issues(ctx).Where("proof_photo_url <> '' AND proof_photo_url <> ?", placeholderNotDone).
		Count(&overview.CompletedIssues).Error; err != nil {
		return overview, errors.Wrap(errors.KindAnalytics, "analytics.overview", "count completed", err)
	}
	if err := s.issues(ctx).Where("acknowledged = ?", false).Count(&overview.PendingIssues).Error; err != nil {
		return overview, errors.Wrap(errors.KindAnalytics, "analytics.overview", "count pending", err)
	}

	var avgUpvotes *float64
	if err := s.issues(ctx).Select("AVG(upvotes)").Scan(&avgUpvotes).Error; err != nil {
		return overview, errors.Wrap(errors.KindAnalytics, "analytics.overview", "average upvotes", err)
	}
	if avgUpvotes != nil {
		overview.AvgUpvotes = round2(*avgUpvotes)
	}

	if overview.AcknowledgedIssues > 0 {
		overview.CompletionRate = round2(float64(overview.CompletedIssues) / float64(overview.AcknowledgedIssues) * 100)
	}
	if overview.TotalIssues > 0 {
		overview.AcknowledgmentRate = round2(float64(overview.AcknowledgedIssues) / float64(overview.TotalIssues) * 100)
	}

	return overview, nil
}

// GetCategoryPerformance aggregates per category, busiest first.
func (s *Service) GetCategoryPerformance(ctx context.Context) ([]GroupPerformance, error) {
	return s.groupPerformance(ctx, "category")
}

// GetConstituencyPerformance aggregates per constituency, busiest first.
func (s *Service) GetConstituencyPerformance(ctx context.Context) ([]GroupPerformance, error) {
	return s.groupPerformance(ctx, "constituency")
}

func (s *Service) groupPerformance(ctx context.Context, column string) ([]GroupPerformance, error) {
	var rows []GroupPerformance
	query := fmt.Sprintf(`
		SELECT %s AS grp,
		       COUNT(*) AS total_issues,
		       SUM(CASE WHEN acknowledged THEN 1 ELSE 0 END) AS acknowledged,
		       SUM(CASE WHEN proof_photo_url <> '' AND proof_photo_url <> ? THEN 1 ELSE 0 END) AS completed,
		       COALESCE(SUM(upvotes), 0) AS total_upvotes,
		       COALESCE(AVG(upvotes), 0) AS avg_upvotes
		FROM issues
		GROUP BY %s
		ORDER BY total_issues DESC`, column, column)

	if err := s.db.WithContext(ctx).Raw(query, placeholderNotDone).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(errors.KindAnalytics, "analytics.group",
			fmt.Sprintf("aggregate by %s", column), err)
	}

	for i := range rows {
		if rows[i].Acknowledged > 0 {
			rows[i].CompletionRate = round2(float64(rows[i].Completed) / float64(rows[i].Acknowledged) * 100)
		}
		if rows[i].TotalIssues > 0 {
			rows[i].AcknowledgmentRate = round2(float64(rows[i].Acknowledged) / float64(rows[i].TotalIssues) * 100)
		}
		rows[i].AvgUpvotes = round2(rows[i].AvgUpvotes)
	}

	return rows, nil
}

// GetTimeSeries returns daily reporting counts for the last `days` days.
func (s *Service) GetTimeSeries(ctx context.Context, days int) ([]TimeSeriesPoint, error) {
	if days <= 0 {
		days = s.cfg.TimeSeriesDays
	}
	startDate := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	var rows []TimeSeriesPoint
	query := `
		SELECT DATE(created_at) AS date,
		       COUNT(*) AS issues_reported,
		       SUM(CASE WHEN acknowledged THEN 1 ELSE 0 END) AS issues_acknowledged,
		       SUM(CASE WHEN proof_photo_url <> '' AND proof_photo_url <> ? THEN 1 ELSE 0 END) AS issues_completed
		FROM issues
		WHERE DATE(created_at) >= ?
		GROUP BY DATE(created_at)
		ORDER BY DATE(created_at)`

	if err := s.db.WithContext(ctx).Raw(query, placeholderNotDone, startDate).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(errors.KindAnalytics, "analytics.time_series", "aggregate by day", err)
	}
	return rows, nil
}

// GetUrgentIssues lists unresolved issues ranked by upvotes and age.
func (s *Service) GetUrgentIssues(ctx context.Context, limit int) ([]UrgentIssue, error) {
	if limit <= 0 {
		limit = s.cfg.UrgentLimit
	}

	type urgentRow struct {
		ID           string
		Title        string
		Category     string
		Constituency string
		Upvotes      int
		Acknowledged bool
		AssignedTo   string
		DaysPending  float64
	}

	var rows []urgentRow
	query := `
		SELECT id, title, category, constituency, upvotes, acknowledged, assigned_to,
		       julianday('now') - julianday(created_at) AS days_pending
		FROM issues
		WHERE NOT acknowledged
		   OR (acknowledged AND (proof_photo_url = '' OR proof_photo_url = ?))
		ORDER BY upvotes DESC, days_pending DESC
		LIMIT ?`

	if err := s.db.WithContext(ctx).Raw(query, placeholderNotDone, limit).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(errors.KindAnalytics, "analytics.urgent", "list urgent issues", err)
	}

	urgent := make([]UrgentIssue, len(rows))
	for i, row := range rows {
		status := "Pending"
		if row.Acknowledged {
			status = "Acknowledged"
		}
		assignedTo := row.AssignedTo
		if assignedTo == "" {
			assignedTo = "Unassigned"
		}
		urgent[i] = UrgentIssue{
			ID:           row.ID,
			Title:        row.Title,
			Category:     row.Category,
			Constituency: row.Constituency,
			Upvotes:      row.Upvotes,
			DaysPending:  math.Round(row.DaysPending*10) / 10,
			Status:       status,
			AssignedTo:   assignedTo,
		}
	}
	return urgent, nil
}

// GenerateInsight produces a single AI-generated insight over the current
// aggregates. It is total: any failure yields a placeholder string.
func (s *Service) GenerateInsight(ctx context.Context) string {
	if s.insighter == nil {
		return "AI insights unavailable - scoring service not configured."
	}

	overview, err := s.GetOverview(ctx)
	if err != nil {
		return fmt.Sprintf("AI insight generation failed: %v", err)
	}
	categories, _ := s.GetCategoryPerformance(ctx)
	constituencies, _ := s.GetConstituencyPerformance(ctx)
	timeSeries, _ := s.GetTimeSeries(ctx, 0)
	urgent, _ := s.GetUrgentIssues(ctx, 5)

	prompt := fmt.Sprintf(`Based on this data:
DEPARTMENT SUMMARY:
- Total Issues: %d
- Completion Rate: %.2f%%
- Ack Rate: %.2f%%
TOP CATEGORIES: %s
TOP CONSTITUENCIES: %s
RECENT (7 days): %s
URGENT: %s

Give a single insight about departmental performance, upcoming issues, or improvement. Keep it clear and under 100 words.`,
		overview.TotalIssues,
		overview.CompletionRate,
		overview.AcknowledgmentRate,
		summarizeGroups(categories, 3),
		summarizeGroups(constituencies, 3),
		summarizeSeries(timeSeries, 7),
		summarizeUrgent(urgent, 3),
	)

	insight, err := s.insighter.Complete(ctx, prompt, 0.7, 150)
	if err != nil {
		s.logger.Warn("insight generation degraded: %v", err)
		return fmt.Sprintf("AI insight generation failed: %v", err)
	}
	return strings.TrimSpace(insight)
}

// GetDashboard assembles all analytics sections plus the AI insight.
func (s *Service) GetDashboard(ctx context.Context) (Dashboard, error) {
	overview, err := s.GetOverview(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	categories, err := s.GetCategoryPerformance(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	constituencies, err := s.GetConstituencyPerformance(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	timeSeries, err := s.GetTimeSeries(ctx, 0)
	if err != nil {
		return Dashboard{}, err
	}
	urgent, err := s.GetUrgentIssues(ctx, 0)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Overview:                overview,
		CategoryPerformance:     categories,
		ConstituencyPerformance: constituencies,
		TimeSeries:              timeSeries,
		UrgentIssues:            urgent,
		AIInsight:               s.GenerateInsight(ctx),
		GeneratedAt:             time.Now(),
	}, nil
}

func summarizeGroups(rows []GroupPerformance, limit int) string {
	parts := make([]string, 0, limit)
	for i, row := range rows {
		if i >= limit {
			break
		}
		parts = append(parts, fmt.Sprintf("%s: %d", row.Group, row.TotalIssues))
	}
	return strings.Join(parts, ", ")
}

func summarizeSeries(points []TimeSeriesPoint, last int) string {
	if len(points) > last {
		points = points[len(points)-last:]
	}
	parts := make([]string, 0, len(points))
	for _, p := range points {
		parts = append(parts, fmt.Sprintf("%s: %d", p.Date, p.IssuesReported))
	}
	return strings.Join(parts, ", ")
}

func summarizeUrgent(rows []UrgentIssue, limit int) string {
	parts := make([]string, 0, limit)
	for i, row := range rows {
		if i >= limit {
			break
		}
		parts = append(parts, fmt.Sprintf("%s (%d upvotes, %.1f days)", row.Title, row.Upvotes, row.DaysPending))
	}
	return strings.Join(parts, ", ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
