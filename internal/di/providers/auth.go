package providers

import (
	"github.com/samber/do/v2"

	"github.com/cardvault/cardvault-server/internal/auth"
	"github.com/cardvault/cardvault-server/internal/config"
	"github.com/cardvault/cardvault-server/internal/logger"
)

// AuthKey is the hex-encoded PASETO symmetric key.
type AuthKey string

// ProvideAuthKey loads or generates the authentication key.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	keyHex, err := auth.LoadOrGenerateKey(cfg.Store.DataPath)
	if err != nil {
		return "", err
	}

	// Update config with the loaded key.
	cfg.Auth.AccessTokenKey = keyHex

	log.Info("Authentication key loaded",
		"access_token_duration", cfg.Auth.AccessTokenDuration,
	)

	return AuthKey(keyHex), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService(string(authKey), cfg.Auth.AccessTokenDuration)
}

// AdminHash is the argon2id hash of the configured admin password.
// Hashing happens once at startup so the plaintext is never held by the
// HTTP layer.
type AdminHash string

// ProvideAdminHash hashes the admin password from configuration.
func ProvideAdminHash(i do.Injector) (AdminHash, error) {
	cfg := do.MustInvoke[*config.Config](i)

	hash, err := auth.HashPassword(cfg.Auth.AdminPassword)
	if err != nil {
		return "", err
	}

	return AdminHash(hash), nil
}
