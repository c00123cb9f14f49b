// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

// ActionConfig is the base configuration for all actions.
// This is typically loaded from the dashboard manifest.
type ActionConfig struct {
	ID      string `yaml:"id" json:"id" validate:"required"`
	Name    string `yaml:"name" json:"name"`
	Type    string `yaml:"type" json:"type" validate:"required"` // e.g., "builtin.log_habit"
	Enabled bool   `yaml:"enabled" json:"enabled"`
	// Invalidates overrides the sections refetched after the mutation.
	Invalidates []string               `yaml:"invalidates,omitempty" json:"invalidates,omitempty"`
	Parameters  map[string]interface{} `yaml:"parameters" json:"parameters"`
}

// GetParameterString retrieves a string parameter with a default.
func (c *ActionConfig) GetParameterString(key string, defaultValue string) string {
	if val, ok := c.Parameters[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return defaultValue
}

// GetParameterBool retrieves a boolean parameter with a default.
func (c *ActionConfig) GetParameterBool(key string, defaultValue bool) bool {
	if val, ok := c.Parameters[key]; ok {
		if boolVal, ok := val.(bool); ok {
			return boolVal
		}
	}
	return defaultValue
}

// GetInvalidates returns the configured sections, or defaults when none are set.
func (c *ActionConfig) GetInvalidates(defaults []string) []string {
	if len(c.Invalidates) > 0 {
		return append([]string{}, c.Invalidates...)
	}
	return append([]string{}, defaults...)
}
