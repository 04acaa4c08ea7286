// password.go provides the password that protects the PKCS#12 signing key.
//
// To add support for a new password source:
//  1. Create a new type that implements the PasswordSource interface
//  2. Add a case for it in NewPasswordSource() based on PASSWORD_SOURCE
package services

import (
	"context"
	"fmt"
	"hash/crc32"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"

	"github.com/adspaceng/ratecard-wallet/internal/config"
)

// PasswordSource supplies the signing key password
type PasswordSource interface {
	// SigningKeyPassword returns the password. An empty password is valid (unprotected PKCS#12 files).
	SigningKeyPassword(ctx context.Context) (string, error)

	// Close releases any client held by the source
	Close() error
}

// NewPasswordSource creates a PasswordSource based on the configuration.
func NewPasswordSource(ctx context.Context, cfg *config.ServerEnvironment) (PasswordSource, error) {
	switch cfg.PasswordSource {
	case config.PasswordSourceEnv:
		return &EnvPasswordSource{password: cfg.SigningKeyPassword}, nil

	case config.PasswordSourceGCPSecret:
		client, err := secretmanager.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create secret manager client: %w", err)
		}
		return NewSecretManagerPasswordSource(client, cfg.SigningKeyPasswordSecret), nil

	default:
		return nil, fmt.Errorf("unknown password source: %s", cfg.PasswordSource)
	}
}

// EnvPasswordSource returns the password read from SIGNING_KEY_PASSWORD
type EnvPasswordSource struct {
	password string
}

func (s *EnvPasswordSource) SigningKeyPassword(ctx context.Context) (string, error) {
	return s.password, nil
}

func (s *EnvPasswordSource) Close() error { return nil }

// SecretAccessor is the subset of the Secret Manager client used to read secrets
type SecretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
	Close() error
}

// SecretManagerPasswordSource reads the password from Google Cloud Secret Manager
type SecretManagerPasswordSource struct {
	client SecretAccessor

	// name is the secret version resource name (projects/*/secrets/*/versions/*)
	name string
}

// NewSecretManagerPasswordSource creates a password source for secret.
// secret is either a secret version resource name or a secret resource name, in which case the latest version is used.
func NewSecretManagerPasswordSource(client SecretAccessor, secret string) *SecretManagerPasswordSource {
	return &SecretManagerPasswordSource{
		client: client,
		name:   secretVersionName(secret),
	}
}

func secretVersionName(secret string) string {
	secret = strings.TrimSuffix(secret, "/")
	if strings.Contains(secret, "/versions/") {
		return secret
	}
	return secret + "/versions/latest"
}

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

func (s *SecretManagerPasswordSource) SigningKeyPassword(ctx context.Context) (string, error) {
	resp, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: s.name,
	})
	if err != nil {
		return "", fmt.Errorf("error accessing signing key password secret %s: %w", s.name, err)
	}

	payload := resp.GetPayload()
	if payload == nil {
		return "", fmt.Errorf("secret %s has no payload", s.name)
	}

	if payload.DataCrc32C != nil {
		if checksum := int64(crc32.Checksum(payload.GetData(), crc32cTable)); checksum != payload.GetDataCrc32C() {
			return "", fmt.Errorf("secret %s payload is corrupt (checksum mismatch)", s.name)
		}
	}

	// secrets created with "echo ... | gcloud secrets create" end in a newline
	return strings.TrimRight(string(payload.GetData()), "\r\n"), nil
}

func (s *SecretManagerPasswordSource) Close() error {
	return s.client.Close()
}
