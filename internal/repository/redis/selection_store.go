package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"skillCompare/domain"

	"github.com/redis/go-redis/v9"
)

const selectionKeyPrefix = "skillcompare-comparison:"

type selectionPayload struct {
	Courses []domain.ComparisonEntry `json:"courses"`
}

// SelectionStore persists comparison selections as
// {"courses":[...]} under one key per visitor. Keys never expire.
type SelectionStore struct {
	client *redis.Client
}

func NewSelectionStore(client *redis.Client) *SelectionStore {
	return &SelectionStore{client: client}
}

func selectionKey(visitorID string) string {
	return selectionKeyPrefix + visitorID
}

func (s *SelectionStore) Load(ctx context.Context, visitorID string) ([]domain.ComparisonEntry, error) {
	raw, err := s.client.Get(ctx, selectionKey(visitorID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load selection: %w", err)
	}

	return decodeSelection(raw)
}

func (s *SelectionStore) Save(ctx context.Context, visitorID string, entries []domain.ComparisonEntry) error {
	raw, err := encodeSelection(entries)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, selectionKey(visitorID), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}

	return nil
}

func encodeSelection(entries []domain.ComparisonEntry) ([]byte, error) {
	if entries == nil {
		entries = []domain.ComparisonEntry{}
	}

	raw, err := json.Marshal(selectionPayload{Courses: entries})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal selection: %w", err)
	}
	return raw, nil
}

func decodeSelection(raw []byte) ([]domain.ComparisonEntry, error) {
	var payload selectionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selection: %w", err)
	}
	return payload.Courses, nil
}
