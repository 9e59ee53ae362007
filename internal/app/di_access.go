package app

import (
	"fmt"

	"github.com/clinicapp/accessgate/internal/access/domain"
	accessHTTP "github.com/clinicapp/accessgate/internal/access/http"
	accessRepository "github.com/clinicapp/accessgate/internal/access/repository"
	"github.com/clinicapp/accessgate/internal/access/service"
	accessUseCase "github.com/clinicapp/accessgate/internal/access/usecase"
	"github.com/clinicapp/accessgate/internal/config"
)

// RouteMatrix returns the route matrix: the YAML file named by ACCESS_MATRIX_FILE, or the
// built-in matrix when unset.
func (c *Container) RouteMatrix() (*domain.RouteMatrix, error) {
	var err error
	c.routeMatrixInit.Do(func() {
		c.routeMatrix, err = c.initRouteMatrix()
		if err != nil {
			c.initErrors["routeMatrix"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["routeMatrix"]; exists {
		return nil, storedErr
	}
	return c.routeMatrix, nil
}

// KeeperService returns the secret keeper service used to unwrap the HS256 secret.
func (c *Container) KeeperService() service.KeeperService {
	c.keeperServiceInit.Do(func() {
		c.keeperService = service.NewKeeperService()
	})
	return c.keeperService
}

// TokenDecoder returns the session token decoder selected by AUTH_TOKEN_VERIFICATION.
func (c *Container) TokenDecoder() (service.TokenDecoder, error) {
	var err error
	c.tokenDecoderInit.Do(func() {
		c.tokenDecoder, err = c.initTokenDecoder()
		if err != nil {
			c.initErrors["tokenDecoder"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenDecoder"]; exists {
		return nil, storedErr
	}
	return c.tokenDecoder, nil
}

// TokenSigner returns the HS256 signer for development tokens.
func (c *Container) TokenSigner() (service.TokenSigner, error) {
	var err error
	c.tokenSignerInit.Do(func() {
		c.tokenSigner, err = c.initTokenSigner()
		if err != nil {
			c.initErrors["tokenSigner"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenSigner"]; exists {
		return nil, storedErr
	}
	return c.tokenSigner, nil
}

// ProfileRepository returns the user profile repository for the configured database driver.
func (c *Container) ProfileRepository() (accessUseCase.ProfileRepository, error) {
	var err error
	c.profileRepositoryInit.Do(func() {
		c.profileRepository, err = c.initProfileRepository()
		if err != nil {
			c.initErrors["profileRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["profileRepository"]; exists {
		return nil, storedErr
	}
	return c.profileRepository, nil
}

// ClaimsStore returns the claims store selected by CLAIMS_STORE_DRIVER.
func (c *Container) ClaimsStore() (accessUseCase.ClaimsStore, error) {
	var err error
	c.claimsStoreInit.Do(func() {
		c.claimsStore, err = c.initClaimsStore()
		if err != nil {
			c.initErrors["claimsStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["claimsStore"]; exists {
		return nil, storedErr
	}
	return c.claimsStore, nil
}

// GateUseCase returns the authorization gate.
func (c *Container) GateUseCase() (accessUseCase.GateUseCase, error) {
	var err error
	c.gateUseCaseInit.Do(func() {
		c.gateUseCase, err = c.initGateUseCase()
		if err != nil {
			c.initErrors["gateUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["gateUseCase"]; exists {
		return nil, storedErr
	}
	return c.gateUseCase, nil
}

// SyncUseCase returns the claims synchronizer.
func (c *Container) SyncUseCase() (accessUseCase.SyncUseCase, error) {
	var err error
	c.syncUseCaseInit.Do(func() {
		c.syncUseCase, err = c.initSyncUseCase()
		if err != nil {
			c.initErrors["syncUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["syncUseCase"]; exists {
		return nil, storedErr
	}
	return c.syncUseCase, nil
}

// TokenIssueUseCase returns the development token issuer.
func (c *Container) TokenIssueUseCase() (accessUseCase.TokenIssueUseCase, error) {
	var err error
	c.tokenIssueUseCaseInit.Do(func() {
		c.tokenIssueUseCase, err = c.initTokenIssueUseCase()
		if err != nil {
			c.initErrors["tokenIssueUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenIssueUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenIssueUseCase, nil
}

// SyncHandler returns the HTTP handler for the sync endpoint.
func (c *Container) SyncHandler() (*accessHTTP.SyncHandler, error) {
	var err error
	c.syncHandlerInit.Do(func() {
		c.syncHandler, err = c.initSyncHandler()
		if err != nil {
			c.initErrors["syncHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["syncHandler"]; exists {
		return nil, storedErr
	}
	return c.syncHandler, nil
}

func (c *Container) initRouteMatrix() (*domain.RouteMatrix, error) {
	return domain.LoadRouteMatrix(c.config.AccessMatrixFile)
}

func (c *Container) signingSecret() ([]byte, error) {
	return service.LoadSigningSecret(
		c.ctx,
		c.KeeperService(),
		c.config.AuthTokenSecretKeeperURI,
		c.config.AuthTokenSecret,
	)
}

func (c *Container) initTokenDecoder() (service.TokenDecoder, error) {
	switch c.config.AuthTokenVerification {
	case config.VerificationJWKS:
		if c.config.AuthJWKSURL == "" {
			return nil, fmt.Errorf("AUTH_JWKS_URL is required for jwks token verification")
		}
		return service.NewJWKSDecoder(c.ctx, c.config.AuthJWKSURL)
	case config.VerificationHMAC:
		secret, err := c.signingSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to load token secret: %w", err)
		}
		return service.NewHMACDecoder(secret)
	case config.VerificationNone:
		c.Logger().Warn("session token signatures are not verified")
		return service.NewUnverifiedDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported token verification mode: %s", c.config.AuthTokenVerification)
	}
}

func (c *Container) initTokenSigner() (service.TokenSigner, error) {
	secret, err := c.signingSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to load token secret: %w", err)
	}
	return service.NewHMACSigner(secret, c.config.AuthTokenIssuer)
}

func (c *Container) initProfileRepository() (accessUseCase.ProfileRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for profile repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return accessRepository.NewMySQLProfileRepository(db), nil
	case "postgres":
		return accessRepository.NewPostgreSQLProfileRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initClaimsStore() (accessUseCase.ClaimsStore, error) {
	switch c.config.ClaimsStoreDriver {
	case config.ClaimsStoreHTTP:
		if c.config.IdentityAdminURL == "" || c.config.IdentityAdminKey == "" {
			return nil, fmt.Errorf("IDENTITY_ADMIN_URL and IDENTITY_ADMIN_KEY are required for the http claims store")
		}
		return accessRepository.NewHTTPClaimsStore(
			c.config.IdentityAdminURL,
			c.config.IdentityAdminKey,
			c.config.IdentityAdminTimeout,
		), nil
	case config.ClaimsStoreDatabase:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for claims store: %w", err)
		}
		switch c.config.DBDriver {
		case "mysql":
			return accessRepository.NewMySQLClaimsRepository(db), nil
		case "postgres":
			return accessRepository.NewPostgreSQLClaimsRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	default:
		return nil, fmt.Errorf("unsupported claims store driver: %s", c.config.ClaimsStoreDriver)
	}
}

func (c *Container) initGateUseCase() (accessUseCase.GateUseCase, error) {
	matrix, err := c.RouteMatrix()
	if err != nil {
		return nil, fmt.Errorf("failed to get route matrix for gate use case: %w", err)
	}

	decoder, err := c.TokenDecoder()
	if err != nil {
		return nil, fmt.Errorf("failed to get token decoder for gate use case: %w", err)
	}

	baseUseCase := accessUseCase.NewGateUseCase(matrix, domain.DefaultExemptions(), decoder, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for gate use case: %w", err)
		}
		return accessUseCase.NewGateUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initSyncUseCase() (accessUseCase.SyncUseCase, error) {
	profiles, err := c.ProfileRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile repository for sync use case: %w", err)
	}

	claims, err := c.ClaimsStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get claims store for sync use case: %w", err)
	}

	baseUseCase := accessUseCase.NewSyncUseCase(profiles, claims, c.config.SyncConcurrency, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for sync use case: %w", err)
		}
		return accessUseCase.NewSyncUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initTokenIssueUseCase() (accessUseCase.TokenIssueUseCase, error) {
	store, err := c.ClaimsStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get claims store for token issue use case: %w", err)
	}

	reader, ok := store.(accessUseCase.ClaimsReader)
	if !ok {
		return nil, fmt.Errorf("token issuance requires the %s claims store", config.ClaimsStoreDatabase)
	}

	signer, err := c.TokenSigner()
	if err != nil {
		return nil, fmt.Errorf("failed to get token signer for token issue use case: %w", err)
	}

	baseUseCase := accessUseCase.NewTokenIssueUseCase(reader, signer, c.config.AuthTokenExpiration)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token issue use case: %w", err)
		}
		return accessUseCase.NewTokenIssueUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initSyncHandler() (*accessHTTP.SyncHandler, error) {
	syncUseCase, err := c.SyncUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get sync use case for sync handler: %w", err)
	}
	return accessHTTP.NewSyncHandler(syncUseCase, c.Logger()), nil
}
