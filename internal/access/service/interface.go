// Package service provides the token and key services used by the access gate:
// session token decoders, the development token signer and the secret keeper
// that unwraps signing material.
package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicapp/accessgate/internal/access/domain"
)

// TokenDecoder turns a raw session token into its claim map.
type TokenDecoder interface {
	// Decode returns the token payload. Any failure is reported as domain.ErrInvalidToken.
	Decode(ctx context.Context, token string) (jwt.MapClaims, error)
}

// TokenSigner mints HS256 session tokens for local development.
type TokenSigner interface {
	// Sign returns a signed token for subject carrying role, valid for ttl from now.
	Sign(subject string, role domain.Role, now time.Time, ttl time.Duration) (string, error)
}

// Keeper is the subset of *secrets.Keeper the services rely on.
type Keeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Close() error
}

// KeeperService opens gocloud.dev secret keepers from URIs.
type KeeperService interface {
	// OpenKeeper supports gcpkms://, awskms://, azurekeyvault://, hashivault:// and base64key://.
	OpenKeeper(ctx context.Context, keyURI string) (Keeper, error)
}
