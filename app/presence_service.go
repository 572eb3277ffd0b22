package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"presence-analyzer/domain/core"
	"presence-analyzer/domain/presence"
	"presence-analyzer/internal/analysis/weekday"
	"presence-analyzer/internal/cache"
	"presence-analyzer/ports"
)

// Cache keys owned by the service
const (
	PresenceTableKey = "presence-table"
	UsersXMLKey      = "users-xml"
)

// UserSummary is one entry of the v1 user listing
type UserSummary struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
}

// WeekdayValue pairs a weekday abbreviation with a number.
// It encodes as a two element JSON array, e.g. ["Tue", 30047].
type WeekdayValue struct {
	Weekday string
	Value   float64
}

func (v WeekdayValue) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{v.Weekday, v.Value})
}

// StartEndByWeekday maps "0".."6" (Monday first) to mean start and end times
type StartEndByWeekday map[string]presence.StartEnd

// DeviationByWeekday maps "0".."6" (Monday first) to standard deviation bands
type DeviationByWeekday map[string]presence.DeviationBand

// PresenceService answers per-user statistics queries. The presence table
// and the user metadata are read through time-bounded caches.
type PresenceService struct {
	presenceReader ports.PresenceReader
	userReader     ports.UserReader
	tables         *cache.Cache[string, presence.Table]
	users          *cache.Cache[string, []presence.User]
	ttl            time.Duration
	logger         ports.Logger
}

// NewPresenceService creates the service. Both caches are owned by the caller.
func NewPresenceService(
	presenceReader ports.PresenceReader,
	userReader ports.UserReader,
	tables *cache.Cache[string, presence.Table],
	users *cache.Cache[string, []presence.User],
	ttl time.Duration,
	logger ports.Logger,
) *PresenceService {
	return &PresenceService{
		presenceReader: presenceReader,
		userReader:     userReader,
		tables:         tables,
		users:          users,
		ttl:            ttl,
		logger:         logger,
	}
}

// Table returns the presence table, loading it when the cached copy is
// missing or older than the TTL.
func (s *PresenceService) Table(ctx context.Context) (presence.Table, error) {
	return s.tables.GetOrLoad(ctx, PresenceTableKey, s.ttl, func(ctx context.Context) (presence.Table, error) {
		table, err := s.presenceReader.ReadPresence(ctx)
		if err != nil {
			return nil, err
		}
		s.logger.Info("[PresenceService] loaded presence table: %d users, %d records", len(table), table.RecordCount())
		return table, nil
	})
}

// Users lists every user with presence data, ordered by id
func (s *PresenceService) Users(ctx context.Context) ([]UserSummary, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	ids := table.UserIDs()
	out := make([]UserSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, UserSummary{UserID: id, Name: fmt.Sprintf("User %d", id)})
	}
	return out, nil
}

// UsersWithAvatars lists users from the metadata file in document order
func (s *PresenceService) UsersWithAvatars(ctx context.Context) ([]presence.User, error) {
	return s.users.GetOrLoad(ctx, UsersXMLKey, s.ttl, s.userReader.ReadUsers)
}

// MeanTimeWeekday returns the mean presence interval per weekday
func (s *PresenceService) MeanTimeWeekday(ctx context.Context, userID int) ([]WeekdayValue, error) {
	records, err := s.userRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	means := weekday.MeanByWeekday(weekday.GroupByWeekday(records))
	out := make([]WeekdayValue, presence.DaysInWeek)
	for i, m := range means {
		out[i] = WeekdayValue{Weekday: presence.WeekdayAbbrev(i), Value: m}
	}
	return out, nil
}

// PresenceWeekday returns the total presence interval per weekday
func (s *PresenceService) PresenceWeekday(ctx context.Context, userID int) ([]WeekdayValue, error) {
	records, err := s.userRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	totals := weekday.TotalByWeekday(weekday.GroupByWeekday(records))
	out := make([]WeekdayValue, presence.DaysInWeek)
	for i, total := range totals {
		out[i] = WeekdayValue{Weekday: presence.WeekdayAbbrev(i), Value: float64(total)}
	}
	return out, nil
}

// PresenceStartEnd returns the mean arrival and departure per weekday
func (s *PresenceService) PresenceStartEnd(ctx context.Context, userID int) (StartEndByWeekday, error) {
	records, err := s.userRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	means := weekday.MeanStartEnd(weekday.ComputeWeekdayStats(records))
	out := make(StartEndByWeekday, presence.DaysInWeek)
	for i, se := range means {
		out[strconv.Itoa(i)] = se
	}
	return out, nil
}

// StandardDeviation returns the [mean-σ, mean+σ] bands of arrival and
// departure per weekday
func (s *PresenceService) StandardDeviation(ctx context.Context, userID int) (DeviationByWeekday, error) {
	records, err := s.userRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	report, err := weekday.Analyze(records)
	if err != nil {
		return nil, fmt.Errorf("standard deviation for user %d: %w", userID, err)
	}
	out := make(DeviationByWeekday, presence.DaysInWeek)
	for i, band := range report.Bands {
		out[strconv.Itoa(i)] = band
	}
	return out, nil
}

// CacheStatus reports the state of every key in both caches
func (s *PresenceService) CacheStatus() map[string][]cache.KeyStatus {
	return map[string][]cache.KeyStatus{
		s.tables.Name(): s.tables.Status(),
		s.users.Name():  s.users.Status(),
	}
}

// Invalidate marks both cached sources stale; the next read reloads them
func (s *PresenceService) Invalidate() {
	s.tables.Expire(PresenceTableKey)
	s.users.Expire(UsersXMLKey)
}

func (s *PresenceService) userRecords(ctx context.Context, userID int) (presence.UserRecords, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	records, ok := table.Lookup(userID)
	if !ok {
		s.logger.Debug("[PresenceService] user %d not found", userID)
		return nil, core.NewUserNotFoundError(userID)
	}
	return records, nil
}
