package casdoor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/redis/go-redis/v9"

	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/repositories"
)

// CasdoorConfig holds the configuration for Casdoor connection
type CasdoorConfig struct {
	Endpoint         string
	ClientID         string
	ClientSecret     string
	Certificate      string
	OrganizationName string
	ApplicationName  string
}

type IdentityCasdoor struct {
	client *casdoorsdk.Client
	redis  *redis.Client
	config CasdoorConfig

	// Cache settings
	cachePrefix string
	cacheTTL    time.Duration
}

func NewIdentityCasdoor(config CasdoorConfig, redisClient *redis.Client) repositories.IdentityRepository {
	client := casdoorsdk.NewClient(
		config.Endpoint,
		config.ClientID,
		config.ClientSecret,
		config.Certificate,
		config.OrganizationName,
		config.ApplicationName,
	)

	return &IdentityCasdoor{
		client:      client,
		redis:       redisClient,
		config:      config,
		cachePrefix: "identity:",
		cacheTTL:    15 * time.Minute,
	}
}

// ===== CACHE METHODS =====

func (i *IdentityCasdoor) getCacheKey(key string) string {
	return fmt.Sprintf("%s%s", i.cachePrefix, key)
}

func (i *IdentityCasdoor) getIdentityFromCache(ctx context.Context, key string) (*repositories.Identity, error) {
	if i.redis == nil {
		return nil, nil // Cache not available
	}

	cacheKey := i.getCacheKey(key)
	data, err := i.redis.Get(ctx, cacheKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Not found in cache
		}
		return nil, fmt.Errorf("failed to get from cache: %w", err)
	}

	var identity repositories.Identity
	if err := json.Unmarshal([]byte(data), &identity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached identity: %w", err)
	}

	return &identity, nil
}

func (i *IdentityCasdoor) setIdentityCache(ctx context.Context, key string, identity *repositories.Identity) error {
	if i.redis == nil {
		return nil
	}

	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal identity for cache: %w", err)
	}

	cacheKey := i.getCacheKey(key)
	return i.redis.Set(ctx, cacheKey, data, i.cacheTTL).Err()
}

// ===== CONVERSION METHODS =====

func (i *IdentityCasdoor) convertCasdoorUser(casdoorUser *casdoorsdk.User) *repositories.Identity {
	if casdoorUser == nil {
		return nil
	}

	return &repositories.Identity{
		ID:            casdoorUser.Id,
		FullName:      casdoorUser.DisplayName,
		Email:         casdoorUser.Email,
		Role:          i.convertCasdoorRoles(casdoorUser),
		EmailVerified: casdoorUser.EmailVerified,
		AvatarURL:     casdoorUser.Avatar,
	}
}

// convertCasdoorRoles maps the account's Casdoor roles onto the campus
// role claimed at signup. First recognized role wins.
func (i *IdentityCasdoor) convertCasdoorRoles(casdoorUser *casdoorsdk.User) models.UserRole {
	for _, casdoorRole := range casdoorUser.Roles {
		switch strings.ToLower(casdoorRole.Name) {
		case "student":
			return models.RoleStudent
		case "professor", "teacher", "instructor", "faculty":
			return models.RoleProfessor
		}
	}
	return models.RoleStudent // Default role
}

// ===== READ OPERATIONS =====

// GetByID retrieves an identity by account ID
func (i *IdentityCasdoor) GetByID(ctx context.Context, id string) (*repositories.Identity, error) {
	cacheKey := fmt.Sprintf("id:%s", id)
	if cached, err := i.getIdentityFromCache(ctx, cacheKey); err == nil && cached != nil {
		return cached, nil
	}

	casdoorUser, err := i.client.GetUserByUserId(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user from Casdoor: %w", err)
	}

	if casdoorUser == nil {
		return nil, repositories.ErrNotFound
	}

	identity := i.convertCasdoorUser(casdoorUser)

	i.setIdentityCache(ctx, cacheKey, identity)

	return identity, nil
}
