// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package manifest

import (
	"fmt"
	"strings"

	"github.com/AccelByte/extend-mission-control/pkg/action"
	"github.com/AccelByte/extend-mission-control/pkg/delta"
	"github.com/AccelByte/extend-mission-control/pkg/section"
)

// ValidateWiring validates that the registries match the manifest.
// It checks that:
// - All enabled sections have registered instances
// - All enabled actions have registered instances
// - All delta routes name a registered handler
//
// This catches a forgotten factory registration or a typo in a type or key.
func ValidateWiring(sections *section.Registry, actions *action.Registry, handlers *delta.HandlerRegistry, m *Manifest) error {
	var errs []string

	for _, sc := range m.Sections {
		if !sc.Enabled {
			continue
		}
		if sections.Get(sc.ID) == nil {
			errs = append(errs, fmt.Sprintf("section '%s' (type=%s) is enabled in manifest but not registered", sc.ID, sc.Type))
		}
	}

	for _, ac := range m.Actions {
		if !ac.Enabled {
			continue
		}
		if actions.Get(ac.ID) == nil {
			errs = append(errs, fmt.Sprintf("action '%s' (type=%s) is enabled in manifest but not registered", ac.ID, ac.Type))
		}
	}

	for _, r := range m.DeltaRoutes {
		if handlers.Get(r.Key) == nil {
			errs = append(errs, fmt.Sprintf("delta route '%s' has no registered handler", r.Key))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("manifest wiring validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
