// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package section

import "errors"

var (
	// ErrInvalidSpec indicates a section spec without a path, writer or fallback.
	ErrInvalidSpec = errors.New("invalid section spec")

	// ErrSectionNotFound indicates that a requested section doesn't exist in the registry.
	ErrSectionNotFound = errors.New("section not found in registry")

	// ErrNoFallback indicates that no fallback dataset is configured.
	ErrNoFallback = errors.New("no fallback dataset available")
)
