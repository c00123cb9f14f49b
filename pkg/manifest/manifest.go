// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package manifest loads the sync manifest: which dashboard sections are
// fetched, which mutations are offered and which sections each realtime
// delta key invalidates.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/AccelByte/extend-mission-control/pkg/action"
	actionBuiltin "github.com/AccelByte/extend-mission-control/pkg/action/builtin"
	"github.com/AccelByte/extend-mission-control/pkg/section"
	sectionBuiltin "github.com/AccelByte/extend-mission-control/pkg/section/builtin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the daemon looks for the manifest.
const DefaultPath = "config/sections.yaml"

// Manifest represents the complete sync configuration.
type Manifest struct {
	Sections    []section.SectionConfig `yaml:"sections" validate:"dive"`
	Actions     []action.ActionConfig   `yaml:"actions" validate:"dive"`
	DeltaRoutes []DeltaRoute            `yaml:"delta_routes" validate:"dive"`
}

// DeltaRoute overrides the sections invalidated by one delta key.
type DeltaRoute struct {
	Key         string   `yaml:"key" validate:"required"`
	Invalidates []string `yaml:"invalidates" validate:"required,min=1,dive,required"`
}

var validate = validator.New()

// Default returns the builtin manifest: all nine sections, both mutations
// and no route overrides.
func Default() *Manifest {
	return &Manifest{
		Sections: sectionBuiltin.DefaultConfigs(),
		Actions:  actionBuiltin.DefaultConfigs(),
	}
}

// Load reads the manifest at path. A missing file yields the builtin
// manifest; empty sections or actions lists are filled from it.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logrus.Infof("manifest %s not found, using builtin sections", path)
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes and validates manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	expanded := expandEnvVars(string(data))

	var m Manifest
	if err := yaml.Unmarshal([]byte(expanded), &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	defaults := Default()
	if len(m.Sections) == 0 {
		m.Sections = defaults.Sections
	}
	if len(m.Actions) == 0 {
		m.Actions = defaults.Actions
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	return &m, nil
}

// Validate validates the manifest for common errors.
func (m *Manifest) Validate() error {
	if err := validate.Struct(m); err != nil {
		return err
	}

	sectionIDs := make(map[string]bool)
	for _, s := range m.Sections {
		if sectionIDs[s.ID] {
			return fmt.Errorf("duplicate section ID: %s", s.ID)
		}
		sectionIDs[s.ID] = true
	}

	actionIDs := make(map[string]bool)
	for _, a := range m.Actions {
		if actionIDs[a.ID] {
			return fmt.Errorf("duplicate action ID: %s", a.ID)
		}
		actionIDs[a.ID] = true

		for _, target := range a.Invalidates {
			if !sectionIDs[target] {
				return fmt.Errorf("action %s invalidates unknown section: %s", a.ID, target)
			}
		}
	}

	routeKeys := make(map[string]bool)
	for _, r := range m.DeltaRoutes {
		if routeKeys[r.Key] {
			return fmt.Errorf("duplicate delta route: %s", r.Key)
		}
		routeKeys[r.Key] = true

		for _, target := range r.Invalidates {
			if !sectionIDs[target] {
				return fmt.Errorf("delta route %s invalidates unknown section: %s", r.Key, target)
			}
		}
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
