package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/adspaceng/ratecard-wallet/internal/config"
	"github.com/adspaceng/ratecard-wallet/internal/services"
)

type failingPasswordSource struct {
	closed bool
}

func (s *failingPasswordSource) SigningKeyPassword(ctx context.Context) (string, error) {
	return "", errors.New("permission denied")
}

func (s *failingPasswordSource) Close() error {
	s.closed = true
	return nil
}

func stubPasswordSource(t *testing.T, fn func(context.Context, *config.ServerEnvironment) (services.PasswordSource, error)) {
	t.Helper()
	orig := newPasswordSource
	newPasswordSource = fn
	t.Cleanup(func() { newPasswordSource = orig })
}

func TestRun_InvalidConfigReturnsError(t *testing.T) {
	t.Setenv("ENVIRONMENT", "bogus")

	err := run()
	if err == nil {
		t.Fatal("run() error = nil, want configuration error")
	}
	if !strings.Contains(err.Error(), "invalid ENVIRONMENT") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestRun_PasswordSourceErrorReturnsError(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	stubPasswordSource(t, func(context.Context, *config.ServerEnvironment) (services.PasswordSource, error) {
		return nil, errors.New("no credentials")
	})

	err := run()
	if err == nil || !strings.Contains(err.Error(), "failed to create password source") {
		t.Fatalf("run() error = %v", err)
	}
}

func TestRun_PasswordReadErrorClosesSource(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	source := &failingPasswordSource{}
	stubPasswordSource(t, func(context.Context, *config.ServerEnvironment) (services.PasswordSource, error) {
		return source, nil
	})

	err := run()
	if err == nil || !strings.Contains(err.Error(), "permission denied") {
		t.Fatalf("run() error = %v", err)
	}
	if !source.closed {
		t.Error("password source was not closed")
	}
}
