package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"roulette-table-backend/internal/config"
)

const (
	KeyTableRounds = "table:%s:rounds"

	// MaxStoredRounds caps the per-table history list.
	MaxStoredRounds = 50
)

// RoundOutcome is one player's result in a resolved round, keyed by the
// opaque hash so history reads expose no raw player ids.
type RoundOutcome struct {
	PlayerHash    string `json:"player_hash"`
	WinningAmount int    `json:"winning_amount"`
	BetAmount     int    `json:"bet_amount"`
	Balance       int    `json:"balance"`
}

// RoundRecord is one resolved round as stored in the history list.
type RoundRecord struct {
	WinningNumber int            `json:"winning_number"`
	Outcomes      []RoundOutcome `json:"outcomes"`
	ResolvedAt    int64          `json:"resolved_at"`
}

// HistoryService keeps a capped log of resolved rounds per table in Redis.
// Gameplay never depends on it; when Redis is not configured the service is
// simply nil and callers skip recording.
type HistoryService struct {
	client *redis.Client
	ctx    context.Context
}

func NewHistoryService(cfg *config.Config) (*HistoryService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &HistoryService{
		client: client,
		ctx:    ctx,
	}, nil
}

func (s *HistoryService) RecordRound(tableID string, winningNumber int, outcomes []RoundOutcome) error {
	key := fmt.Sprintf(KeyTableRounds, tableID)

	record := RoundRecord{
		WinningNumber: winningNumber,
		Outcomes:      outcomes,
		ResolvedAt:    time.Now().Unix(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal round record: %v", err)
	}

	tx := s.client.TxPipeline()
	tx.LPush(s.ctx, key, data)
	tx.LTrim(s.ctx, key, 0, MaxStoredRounds-1)
	if _, err := tx.Exec(s.ctx); err != nil {
		return fmt.Errorf("failed to store round record: %v", err)
	}

	return nil
}

// RecentRounds returns up to limit rounds, newest first.
func (s *HistoryService) RecentRounds(tableID string, limit int) ([]RoundRecord, error) {
	if limit <= 0 || limit > MaxStoredRounds {
		limit = MaxStoredRounds
	}

	key := fmt.Sprintf(KeyTableRounds, tableID)

	entries, err := s.client.LRange(s.ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read round history: %v", err)
	}

	records := make([]RoundRecord, 0, len(entries))
	for _, entry := range entries {
		var record RoundRecord
		if err := json.Unmarshal([]byte(entry), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal round record: %v", err)
		}
		records = append(records, record)
	}

	return records, nil
}

func (s *HistoryService) Close() error {
	return s.client.Close()
}
