package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

type keeperService struct{}

// NewKeeperService creates a KeeperService backed by gocloud.dev/secrets.
func NewKeeperService() KeeperService {
	return &keeperService{}
}

func (k *keeperService) OpenKeeper(ctx context.Context, keyURI string) (Keeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open secret keeper: %w", err)
	}
	return keeper, nil
}

// LoadSigningSecret resolves the HS256 signing secret. Without a keeper URI the configured
// value is the secret itself; otherwise it is base64 ciphertext decrypted by the keeper.
func LoadSigningSecret(
	ctx context.Context,
	keepers KeeperService,
	keeperURI string,
	configured string,
) ([]byte, error) {
	if configured == "" {
		return nil, fmt.Errorf("signing secret is not configured")
	}
	if keeperURI == "" {
		return []byte(configured), nil
	}

	ciphertext, err := base64.StdEncoding.DecodeString(configured)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signing secret ciphertext: %w", err)
	}

	keeper, err := keepers.OpenKeeper(ctx, keeperURI)
	if err != nil {
		return nil, err
	}
	defer func() { _ = keeper.Close() }()

	secret, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt signing secret: %w", err)
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("signing secret is empty")
	}
	return secret, nil
}
