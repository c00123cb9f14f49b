// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AccelByte/extend-mission-control/pkg/action"
	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
	"github.com/AccelByte/extend-mission-control/pkg/gateway"
	"github.com/AccelByte/extend-mission-control/pkg/store"
)

// ParamStatuses lists the accepted RSVP states, comma separated.
const ParamStatuses = "statuses"

var defaultStatuses = strings.Join([]string{dashboard.RSVPGoing, dashboard.RSVPMaybe, dashboard.RSVPDeclined}, ",")

// RSVPEventAction answers an event invitation.
type RSVPEventAction struct {
	config      action.ActionConfig
	invalidates []string
	statusRule  string
}

// NewRSVPEventAction creates a new RSVP action.
func NewRSVPEventAction(config action.ActionConfig) *RSVPEventAction {
	statuses := strings.Fields(strings.ReplaceAll(config.GetParameterString(ParamStatuses, defaultStatuses), ",", " "))
	return &RSVPEventAction{
		config:      config,
		invalidates: config.GetInvalidates([]string{dashboard.SectionEvents}),
		statusRule:  "required,oneof=" + strings.Join(statuses, " "),
	}
}

func (a *RSVPEventAction) ID() string                  { return a.config.ID }
func (a *RSVPEventAction) Name() string                { return "RSVP To Event" }
func (a *RSVPEventAction) Config() action.ActionConfig { return a.config }
func (a *RSVPEventAction) Invalidates() []string       { return a.invalidates }

// Validate requires an event ID and one of the accepted RSVP states.
func (a *RSVPEventAction) Validate(req action.Request) error {
	if err := validate.Var(req.TargetID, "required"); err != nil {
		return fmt.Errorf("event id: %w", err)
	}
	if err := validate.Var(req.Status, a.statusRule); err != nil {
		return fmt.Errorf("status %q: %w", req.Status, err)
	}
	return nil
}

func (a *RSVPEventAction) Execute(ctx context.Context, gw gateway.Gateway, req action.Request) ([]byte, error) {
	resp, err := gw.Post(ctx, gateway.EventRSVPPath(req.TargetID), gateway.RSVPRequest{Status: req.Status})
	if err != nil {
		return nil, fmt.Errorf("failed to rsvp to event %s: %w", req.TargetID, err)
	}
	return resp, nil
}

// Confirm stores the event returned by the hub, or just the RSVP state when
// the hub answers without a body.
func (a *RSVPEventAction) Confirm(st *store.Store, req action.Request, resp []byte) error {
	if len(resp) == 0 || string(resp) == "null" {
		st.SetEventRSVP(req.TargetID, req.Status)
		return nil
	}

	var event dashboard.EventItem
	if err := json.Unmarshal(resp, &event); err != nil {
		return fmt.Errorf("failed to decode event response: %w", err)
	}
	if event.ID == "" {
		st.SetEventRSVP(req.TargetID, req.Status)
		return nil
	}
	if event.RSVPStatus == "" {
		event.RSVPStatus = req.Status
	}
	st.PatchEvent(event)
	return nil
}

func (a *RSVPEventAction) Optimistic(st *store.Store, req action.Request) {
	st.SetEventRSVP(req.TargetID, req.Status)
}
