// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package section

import "time"

const (
	// DefaultRetry is the number of extra attempts of a failed section fetch.
	DefaultRetry = 2
	// DefaultStaleTime applies to sections configured without one.
	DefaultStaleTime = 60 * time.Second
)

// SectionConfig is the configuration of one dashboard section.
// This is typically loaded from the sync manifest.
type SectionConfig struct {
	ID         string                 `yaml:"id" json:"id" validate:"required"`
	Type       string                 `yaml:"type" json:"type" validate:"required"` // e.g., "builtin.habits"
	Enabled    bool                   `yaml:"enabled" json:"enabled"`
	StaleTime  time.Duration          `yaml:"stale_time" json:"stale_time" validate:"gte=0"`
	Retry      *int                   `yaml:"retry,omitempty" json:"retry,omitempty" validate:"omitempty,gte=0,lte=10"`
	Parameters map[string]interface{} `yaml:"parameters" json:"parameters"`
}

// GetStaleTime returns the freshness window of the section.
func (c *SectionConfig) GetStaleTime() time.Duration {
	if c.StaleTime <= 0 {
		return DefaultStaleTime
	}
	return c.StaleTime
}

// GetRetry returns the retry count of the section.
func (c *SectionConfig) GetRetry() int {
	if c.Retry == nil {
		return DefaultRetry
	}
	return *c.Retry
}

// GetParameterInt retrieves an integer parameter with a default.
func (c *SectionConfig) GetParameterInt(key string, defaultValue int) int {
	if val, ok := c.Parameters[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case float64:
			return int(v)
		}
	}
	return defaultValue
}

// GetParameterString retrieves a string parameter with a default.
func (c *SectionConfig) GetParameterString(key string, defaultValue string) string {
	if val, ok := c.Parameters[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return defaultValue
}
