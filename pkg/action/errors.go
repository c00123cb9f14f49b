// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import "errors"

var (
	// ErrActionDisabled is returned for a mutation switched off in the manifest.
	ErrActionDisabled = errors.New("mutation is disabled")

	// ErrActionNotFound is returned for a mutation ID nobody configured.
	ErrActionNotFound = errors.New("unknown mutation")

	// ErrInvalidConfig marks a manifest action entry that cannot be built.
	ErrInvalidConfig = errors.New("invalid mutation configuration")

	// ErrInvalidRequest is returned when the mutation arguments fail
	// validation. The store is left untouched.
	ErrInvalidRequest = errors.New("invalid mutation request")
)
