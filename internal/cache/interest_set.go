package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const interestSetTTL = 24 * time.Hour

// InterestSet tracks which opportunities a student has marked interest in.
// It is a Redis set keyed per student, kept in lockstep with the interests
// table so clients can render "already applied" state without a DB round
// trip. The database remains the source of truth; a missing set is rebuilt
// on first read.
type InterestSet struct {
	client *redis.Client
}

func NewInterestSet(client *redis.Client) *InterestSet {
	return &InterestSet{client: client}
}

func (s *InterestSet) key(studentID string) string {
	return fmt.Sprintf("interested:%s", studentID)
}

// Add records an opportunity in the student's interested set. A set that
// was never built stays absent; creating it here would under-report the
// interests already in the database.
func (s *InterestSet) Add(ctx context.Context, studentID string, opportunityID uint) error {
	if s.client == nil {
		return nil
	}

	key := s.key(studentID)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("interest set exists check failed: %w", err)
	}
	if exists == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	pipe.SAdd(ctx, key, strconv.FormatUint(uint64(opportunityID), 10))
	pipe.Expire(ctx, key, interestSetTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// Remove drops an opportunity from the student's interested set.
func (s *InterestSet) Remove(ctx context.Context, studentID string, opportunityID uint) error {
	if s.client == nil {
		return nil
	}

	return s.client.SRem(ctx, s.key(studentID), strconv.FormatUint(uint64(opportunityID), 10)).Err()
}

// Contains reports whether the student already marked interest. The second
// return value is false when the set is absent and the caller should fall
// back to the database.
func (s *InterestSet) Contains(ctx context.Context, studentID string, opportunityID uint) (bool, bool, error) {
	if s.client == nil {
		return false, false, nil
	}

	key := s.key(studentID)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, false, fmt.Errorf("interest set exists check failed: %w", err)
	}
	if exists == 0 {
		return false, false, nil
	}

	member, err := s.client.SIsMember(ctx, key, strconv.FormatUint(uint64(opportunityID), 10)).Result()
	if err != nil {
		return false, false, fmt.Errorf("interest set membership check failed: %w", err)
	}
	return member, true, nil
}

// Members returns all opportunity IDs in the student's interested set.
func (s *InterestSet) Members(ctx context.Context, studentID string) ([]uint, bool, error) {
	if s.client == nil {
		return nil, false, nil
	}

	key := s.key(studentID)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, false, fmt.Errorf("interest set exists check failed: %w", err)
	}
	if exists == 0 {
		return nil, false, nil
	}

	raw, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, false, fmt.Errorf("interest set members failed: %w", err)
	}

	ids := make([]uint, 0, len(raw))
	for _, m := range raw {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, true, nil
}

// Rebuild replaces the student's set with the given opportunity IDs. An
// empty slice still creates the key with a sentinel so that absence keeps
// meaning "never built" rather than "no interests".
func (s *InterestSet) Rebuild(ctx context.Context, studentID string, opportunityIDs []uint) error {
	if s.client == nil {
		return nil
	}

	key := s.key(studentID)
	members := make([]interface{}, 0, len(opportunityIDs)+1)
	// Sentinel keeps empty sets representable; never parses as an ID.
	members = append(members, "-")
	for _, id := range opportunityIDs {
		members = append(members, strconv.FormatUint(uint64(id), 10))
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, interestSetTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Invalidate drops the student's set entirely.
func (s *InterestSet) Invalidate(ctx context.Context, studentID string) error {
	if s.client == nil {
		return nil
	}

	return s.client.Del(ctx, s.key(studentID)).Err()
}
