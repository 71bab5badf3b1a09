package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// BatchInvalidate invalidates multiple patterns in batch
func BatchInvalidate(ctx context.Context, helper *CacheHelper, patterns []string) error {
	var lastErr error
	for _, pattern := range patterns {
		if err := helper.InvalidatePattern(ctx, pattern); err != nil {
			lastErr = err
			slog.ErrorContext(ctx, "Failed to invalidate pattern in batch",
				"error", err,
				"pattern", pattern)
		}
	}
	return lastErr
}

// InvalidateOpportunityCache invalidates all opportunity-related caches
func InvalidateOpportunityCache(ctx context.Context, cm *CacheManager, opportunityID uint, professorID string) {
	SafeDelete(ctx, cm.Opportunity,
		fmt.Sprintf("id:%d", opportunityID),
		fmt.Sprintf("details:%d", opportunityID))

	SafeInvalidatePattern(ctx, cm.Opportunity, fmt.Sprintf("professor:%s:*", professorID))
	SafeInvalidatePattern(ctx, cm.Opportunity, "list:*")
	SafeInvalidatePattern(ctx, cm.Stats, fmt.Sprintf("opportunity:%d:*", opportunityID))
	SafeInvalidatePattern(ctx, cm.Stats, fmt.Sprintf("professor:%s:*", professorID))
}

// InvalidateUserCache invalidates cached profile data for a user
func InvalidateUserCache(ctx context.Context, cm *CacheManager, userID string) {
	SafeDelete(ctx, cm.User,
		fmt.Sprintf("id:%s", userID),
		fmt.Sprintf("profile:%s", userID))
	SafeInvalidatePattern(ctx, cm.User, "directory:*")
	SafeInvalidatePattern(ctx, cm.Exists, fmt.Sprintf("user:%s*", userID))
}
