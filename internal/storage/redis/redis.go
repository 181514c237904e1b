// Package redis stores snapshots, saved filters and alerts in Redis and
// publishes alert matches over pub/sub.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/honeycarbs/careerhub/internal/domain"
	"github.com/honeycarbs/careerhub/internal/domain/alerts"
	"github.com/honeycarbs/careerhub/internal/domain/filters"
	"github.com/honeycarbs/careerhub/internal/domain/job"
)

const (
	snapshotKey    = "careerhub:jobs:snapshot"
	filtersPrefix  = "careerhub:filters:"
	alertsKey      = "careerhub:alerts"
	alertsByUser   = "careerhub:alerts:user:"
	alertMatchChan = "EVENT_ALERT_MATCH"
)

func seenKey(id uuid.UUID) string {
	return "careerhub:alerts:" + id.String() + ":seen"
}

var (
	_ job.SnapshotCache = (*SnapshotCache)(nil)
	_ filters.Store     = (*FilterStore)(nil)
	_ alerts.Store      = (*AlertStore)(nil)
	_ alerts.Notifier   = (*Notifier)(nil)
)

// SnapshotCache keeps the published job collection under one key with a TTL
type SnapshotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSnapshotCache(rdb *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{rdb: rdb, ttl: ttl}
}

func (c *SnapshotCache) LoadSnapshot(ctx context.Context) ([]domain.Job, bool, error) {
	data, err := c.rdb.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get snapshot: %w", err)
	}

	var jobs []domain.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return jobs, true, nil
}

func (c *SnapshotCache) SaveSnapshot(ctx context.Context, jobs []domain.Job) error {
	data, err := json.Marshal(jobs)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.rdb.Set(ctx, snapshotKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

// FilterStore keeps one hash per user with one JSON-encoded field per filter key
type FilterStore struct {
	rdb *redis.Client
}

func NewFilterStore(rdb *redis.Client) *FilterStore {
	return &FilterStore{rdb: rdb}
}

func (s *FilterStore) SaveFilters(ctx context.Context, userID string, f domain.SavedFilters) error {
	doc, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode filters: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return fmt.Errorf("split filters: %w", err)
	}

	values := make(map[string]any, len(fields))
	for k, v := range fields {
		values[k] = string(v)
	}

	key := filtersPrefix + userID
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, values)
		return nil
	})
	if err != nil {
		return fmt.Errorf("hset filters: %w", err)
	}
	return nil
}

func (s *FilterStore) LoadFilters(ctx context.Context, userID string) (domain.SavedFilters, error) {
	fields, err := s.rdb.HGetAll(ctx, filtersPrefix+userID).Result()
	if err != nil {
		return domain.SavedFilters{}, fmt.Errorf("hgetall filters: %w", err)
	}
	if len(fields) == 0 {
		return domain.SavedFilters{}, domain.ErrNotFound
	}

	raw := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		raw[k] = json.RawMessage(v)
	}
	doc, err := json.Marshal(raw)
	if err != nil {
		return domain.SavedFilters{}, fmt.Errorf("join filters: %w", err)
	}

	var f domain.SavedFilters
	if err := json.Unmarshal(doc, &f); err != nil {
		return domain.SavedFilters{}, fmt.Errorf("decode filters: %w", err)
	}
	return f, nil
}

func (s *FilterStore) DeleteFilters(ctx context.Context, userID string) error {
	if err := s.rdb.Del(ctx, filtersPrefix+userID).Err(); err != nil {
		return fmt.Errorf("del filters: %w", err)
	}
	return nil
}

// AlertStore keeps alerts in one hash keyed by ID, a set of IDs per user and
// a set of seen job IDs per alert
type AlertStore struct {
	rdb *redis.Client
}

func NewAlertStore(rdb *redis.Client) *AlertStore {
	return &AlertStore{rdb: rdb}
}

func (s *AlertStore) CreateAlert(ctx context.Context, a alerts.Alert) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, alertsKey, a.ID.String(), data)
		pipe.SAdd(ctx, alertsByUser+a.UserID, a.ID.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("store alert: %w", err)
	}
	return nil
}

func (s *AlertStore) ListAlerts(ctx context.Context, userID string) ([]alerts.Alert, error) {
	var values []any
	if userID == "" {
		all, err := s.rdb.HVals(ctx, alertsKey).Result()
		if err != nil {
			return nil, fmt.Errorf("hvals alerts: %w", err)
		}
		for _, v := range all {
			values = append(values, v)
		}
	} else {
		ids, err := s.rdb.SMembers(ctx, alertsByUser+userID).Result()
		if err != nil {
			return nil, fmt.Errorf("smembers alerts: %w", err)
		}
		if len(ids) == 0 {
			return []alerts.Alert{}, nil
		}
		values, err = s.rdb.HMGet(ctx, alertsKey, ids...).Result()
		if err != nil {
			return nil, fmt.Errorf("hmget alerts: %w", err)
		}
	}

	out := make([]alerts.Alert, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var a alerts.Alert
		if err := json.Unmarshal([]byte(str), &a); err != nil {
			return nil, fmt.Errorf("decode alert: %w", err)
		}
		out = append(out, a)
	}
	sortAlerts(out)
	return out, nil
}

func (s *AlertStore) DeleteAlert(ctx context.Context, id uuid.UUID) error {
	data, err := s.rdb.HGet(ctx, alertsKey, id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("hget alert: %w", err)
	}

	var a alerts.Alert
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("decode alert: %w", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, alertsKey, id.String())
		pipe.SRem(ctx, alertsByUser+a.UserID, id.String())
		pipe.Del(ctx, seenKey(id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	return nil
}

func (s *AlertStore) MarkSeen(ctx context.Context, id uuid.UUID, jobIDs []string) ([]string, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}

	members := make([]any, len(jobIDs))
	for i, jid := range jobIDs {
		members[i] = jid
	}

	key := seenKey(id)
	seen, err := s.rdb.SMIsMember(ctx, key, members...).Result()
	if err != nil {
		return nil, fmt.Errorf("smismember seen: %w", err)
	}

	var fresh []string
	var add []any
	for i, jid := range jobIDs {
		if !seen[i] {
			fresh = append(fresh, jid)
			add = append(add, jid)
		}
	}
	if len(add) == 0 {
		return nil, nil
	}
	if err := s.rdb.SAdd(ctx, key, add...).Err(); err != nil {
		return nil, fmt.Errorf("sadd seen: %w", err)
	}
	return fresh, nil
}

// Notifier publishes each match as JSON on EVENT_ALERT_MATCH
type Notifier struct {
	rdb *redis.Client
}

func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

func (n *Notifier) NotifyMatches(ctx context.Context, m alerts.Match) error {
	event, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode match: %w", err)
	}
	if err := n.rdb.Publish(ctx, alertMatchChan, event).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", alertMatchChan, err)
	}
	return nil
}

func sortAlerts(list []alerts.Alert) {
	slices.SortFunc(list, func(a, b alerts.Alert) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
}
