package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/tradelens/internal/analytics"
	"github.com/tradelens/internal/metrics"
	"github.com/tradelens/internal/models"
)

var (
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrInvalidMonth    = errors.New("invalid calendar month")
)

// Dataset is one uploaded trade log held in memory. Trades and Days are
// immutable after registration; analytics always derive fresh views from
// them. Nothing is written to durable storage.
type Dataset struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	UploadedAt time.Time            `json:"uploaded_at"`
	Trades     []models.TradeRecord `json:"-"`
	Days       []models.DailyEntry  `json:"-"`
	TradeCount int                  `json:"trade_count"`
	FirstDate  string               `json:"first_date"`
	LastDate   string               `json:"last_date"`
}

// Overview bundles every derived view for one dataset and date range
type Overview struct {
	Summary      models.SummaryStats         `json:"summary"`
	DayStats     models.DayStats             `json:"day_stats"`
	Direction    models.DirectionStats       `json:"direction"`
	Daily        []models.DailyEntry         `json:"daily"`
	Distribution []models.DistributionBucket `json:"distribution"`
}

// DatasetService keeps uploaded datasets in a mutex-guarded registry and
// runs the analytics engine over them. An optional Redis client memoizes
// computed overviews per (dataset, range); the cache is transparent and a
// nil client disables it entirely.
type DatasetService struct {
	mu       sync.RWMutex
	datasets map[string]*Dataset

	redis    *redis.Client
	cacheTTL time.Duration
}

// NewDatasetService creates a new DatasetService. rdb may be nil.
func NewDatasetService(rdb *redis.Client, cacheTTL time.Duration) *DatasetService {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &DatasetService{
		datasets: make(map[string]*Dataset),
		redis:    rdb,
		cacheTTL: cacheTTL,
	}
}

// Register stores a normalized trade list under a fresh dataset ID and
// derives its daily series once, over the full set, so the equity curve
// stays continuous under later range filters.
func (s *DatasetService) Register(name string, trades []models.TradeRecord) *Dataset {
	days := analytics.BuildDailyEntries(trades)

	ds := &Dataset{
		ID:         uuid.NewString(),
		Name:       name,
		UploadedAt: time.Now().UTC(),
		Trades:     trades,
		Days:       days,
		TradeCount: len(trades),
	}
	if len(days) > 0 {
		ds.FirstDate = days[0].Date
		ds.LastDate = days[len(days)-1].Date
	}

	s.mu.Lock()
	s.datasets[ds.ID] = ds
	s.mu.Unlock()
	return ds
}

// Get returns a dataset by ID
func (s *DatasetService) Get(id string) (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[id]
	if !ok {
		return nil, ErrDatasetNotFound
	}
	return ds, nil
}

// List returns all registered datasets, newest first
func (s *DatasetService) List() []*Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Dataset, 0, len(s.datasets))
	for _, ds := range s.datasets {
		out = append(out, ds)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out
}

// Delete removes a dataset from the registry
func (s *DatasetService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.datasets[id]; !ok {
		return ErrDatasetNotFound
	}
	delete(s.datasets, id)
	return nil
}

// Overview computes the summary, day statistics, direction split, daily
// series and duration distribution for the trades inside the range. The
// result is a pure function of (dataset, range); when Redis is configured
// the computed value is memoized under that key.
func (s *DatasetService) Overview(ctx context.Context, id string, r models.DateRange) (*Overview, error) {
	ds, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("overview:%s:%s:%s", ds.ID, r.Start, r.End)
	if cached := s.cacheGet(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	timer := prometheus.NewTimer(metrics.AnalyticsDuration.WithLabelValues("overview"))
	defer timer.ObserveDuration()

	trades := analytics.FilterTrades(ds.Trades, r)
	days := analytics.FilterDailyEntries(ds.Days, r)

	ov := &Overview{
		Summary:      analytics.Summarize(trades),
		DayStats:     analytics.DaySummary(days),
		Direction:    analytics.DirectionSplit(trades),
		Daily:        days,
		Distribution: analytics.Bucket(trades, analytics.DurationBands()),
	}

	s.cacheSet(ctx, cacheKey, ov)
	return ov, nil
}

// Calendar builds the month grid for the dataset's daily series. A zero
// year/month defaults to the month of the last day in the filtered range,
// matching what a dashboard opens on.
func (s *DatasetService) Calendar(id string, r models.DateRange, year, month int) (models.MonthGrid, error) {
	ds, err := s.Get(id)
	if err != nil {
		return models.MonthGrid{}, err
	}

	timer := prometheus.NewTimer(metrics.AnalyticsDuration.WithLabelValues("calendar"))
	defer timer.ObserveDuration()

	days := analytics.FilterDailyEntries(ds.Days, r)
	if year == 0 || month == 0 {
		year, month = defaultMonth(days)
	}
	if month < 1 || month > 12 || year < 1970 || year > 9999 {
		return models.MonthGrid{}, ErrInvalidMonth
	}
	return analytics.AggregateMonth(days, year, month), nil
}

// Trades returns one page of the filtered, sorted trade list along with
// the total number of filtered trades.
func (s *DatasetService) Trades(id string, r models.DateRange, sortField, sortDir string, page, pageSize int) ([]models.TradeRecord, int, error) {
	ds, err := s.Get(id)
	if err != nil {
		return nil, 0, err
	}

	trades := analytics.FilterTrades(ds.Trades, r)
	if sortField != "" {
		trades = analytics.SortBy(trades, sortField, sortDir)
	}
	total := len(trades)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	start := (page - 1) * pageSize
	if start >= total {
		return []models.TradeRecord{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return trades[start:end], total, nil
}

func defaultMonth(days []models.DailyEntry) (int, int) {
	ref := time.Now().UTC()
	if len(days) > 0 {
		if t, err := time.Parse("2006-01-02", days[len(days)-1].Date); err == nil {
			ref = t
		}
	}
	return ref.Year(), int(ref.Month())
}

// cacheGet is best effort: a cache miss and a Redis failure look the same
func (s *DatasetService) cacheGet(ctx context.Context, key string) *Overview {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var ov Overview
	if err := json.Unmarshal(data, &ov); err != nil {
		return nil
	}
	return &ov
}

func (s *DatasetService) cacheSet(ctx context.Context, key string, ov *Overview) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(ov)
	if err != nil {
		return
	}
	s.redis.Set(ctx, key, data, s.cacheTTL)
}
