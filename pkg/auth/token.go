// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package auth supplies the bearer token used for gateway and realtime calls.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// ErrNoToken is returned when no token is configured.
var ErrNoToken = errors.New("no auth token configured")

// TokenSource returns the current access token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource always returns the same token.
type StaticTokenSource string

func (s StaticTokenSource) Token(context.Context) (string, error) {
	if s == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}

// FileTokenSource re-reads the token from disk on every call so a rotated
// token is picked up by the next request or reconnect.
type FileTokenSource struct {
	Path string
}

func (f *FileTokenSource) Token(context.Context) (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read token file %s: %w", f.Path, err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// NewTokenSource picks the file source when path is set, else the static token.
func NewTokenSource(token, path string) TokenSource {
	if path != "" {
		return &FileTokenSource{Path: path}
	}
	return StaticTokenSource(token)
}

// Claims is the subset of access token claims the agent cares about.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token expired before now.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// InspectToken reads the claims of a JWT without verifying its signature.
// The hub verifies tokens; the agent only needs the subject for logging.
func InspectToken(token string) (*Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	out := &Claims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// LogTokenInfo logs who the agent acts for and warns on an expired token.
// Opaque tokens are accepted silently.
func LogTokenInfo(ctx context.Context, src TokenSource) {
	token, err := src.Token(ctx)
	if err != nil {
		logrus.Warnf("auth token unavailable: %v", err)
		return
	}

	claims, err := InspectToken(token)
	if err != nil {
		logrus.Debugf("auth token is not a JWT, skipping claim inspection")
		return
	}

	if claims.Expired(time.Now()) {
		logrus.Warnf("auth token for %s expired at %s", claims.Subject, claims.ExpiresAt.Format(time.RFC3339))
		return
	}
	logrus.Infof("acting for student %s", claims.Subject)
}
