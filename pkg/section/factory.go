// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package section

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// SectionFactory is a function that creates a section from a configuration.
type SectionFactory func(config SectionConfig) (Section, error)

var (
	factoriesMu sync.RWMutex
	// factories stores registered section factories by type
	factories = make(map[string]SectionFactory)
)

// RegisterSectionType registers a factory function for a section type.
func RegisterSectionType(sectionType string, factory SectionFactory) {
	factoriesMu.Lock()
	factories[sectionType] = factory
	factoriesMu.Unlock()
	logrus.Debugf("registered section type: %s", sectionType)
}

// IsRegisteredType reports whether a factory exists for sectionType.
func IsRegisteredType(sectionType string) bool {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	_, ok := factories[sectionType]
	return ok
}

// CreateSection creates a section instance based on the configuration.
// Disabled sections yield nil without error.
func CreateSection(config SectionConfig) (Section, error) {
	if !config.Enabled {
		logrus.Infof("skipping disabled section: %s", config.ID)
		return nil, nil
	}

	factoriesMu.RLock()
	factory, exists := factories[config.Type]
	factoriesMu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("unknown section type: %s", config.Type)
	}

	logrus.Debugf("creating section: id=%s, type=%s", config.ID, config.Type)
	return factory(config)
}

// RegisterSections creates the configured sections and registers them.
// Creation errors are logged and skipped; registration errors abort.
func RegisterSections(registry *Registry, configs []SectionConfig) error {
	var created int
	for _, config := range configs {
		s, err := CreateSection(config)
		if err != nil {
			logrus.Warnf("section creation error: failed to create section %s: %v", config.ID, err)
			continue
		}
		if s == nil {
			continue
		}
		if err := registry.Register(s); err != nil {
			return fmt.Errorf("failed to register section %s: %w", s.ID(), err)
		}
		created++
	}

	logrus.Infof("registered %d sections", created)
	return nil
}
