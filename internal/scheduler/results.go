package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Run states stored in the result backend
const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
	StatusRevoked = "REVOKED"
)

// ErrResultNotFound is returned when no result exists for a run ID, either
// because the run never happened or its result already expired.
var ErrResultNotFound = errors.New("task result not found")

const resultKeyPrefix = "skuldata:task-result:"

// TaskResult is the persisted outcome of one job run
type TaskResult struct {
	RunID      string      `json:"runId"`
	Task       string      `json:"task"` // Schedule entry name
	Job        string      `json:"job"`  // Handler name
	Status     string      `json:"status"`
	Result     interface{} `json:"result,omitempty"`
	Error      string      `json:"error,omitempty"`
	EnqueuedAt time.Time   `json:"enqueuedAt"`
	StartedAt  time.Time   `json:"startedAt"`
	FinishedAt time.Time   `json:"finishedAt"`
}

// ResultStore keeps run outcomes in Redis under a TTL, so results expire
// instead of accumulating.
type ResultStore struct {
	client  *redis.Client
	expires time.Duration
}

// NewResultStore creates a ResultStore with the given result TTL
func NewResultStore(client *redis.Client, expires time.Duration) *ResultStore {
	return &ResultStore{
		client:  client,
		expires: expires,
	}
}

// Save persists a run result with the configured expiry
func (s *ResultStore) Save(ctx context.Context, result *TaskResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode task result: %w", err)
	}

	if err := s.client.Set(ctx, resultKeyPrefix+result.RunID, payload, s.expires).Err(); err != nil {
		return fmt.Errorf("failed to store task result: %w", err)
	}

	return nil
}

// Get retrieves a run result by run ID
func (s *ResultStore) Get(ctx context.Context, runID string) (*TaskResult, error) {
	payload, err := s.client.Get(ctx, resultKeyPrefix+runID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to fetch task result: %w", err)
	}

	result := &TaskResult{}
	if err := json.Unmarshal(payload, result); err != nil {
		return nil, fmt.Errorf("failed to decode task result: %w", err)
	}

	return result, nil
}
