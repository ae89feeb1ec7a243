package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/band-ledger/internal/api/shared/errors"
	"github.com/feral-file/band-ledger/internal/domain"
	"github.com/feral-file/band-ledger/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	CALLER_KEY     contextKey = "caller"
	JWT_CLAIMS_KEY contextKey = "jwt_claims"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
}

// AuthResult holds the result of authentication
type AuthResult struct {
	Success bool
	Claims  *jwt.RegisteredClaims
	Caller  domain.Account
	Error   error
}

// Authenticate validates the Authorization header and resolves the caller account
// from the subject of the bearer token
func Authenticate(authHeader string, publicKey *rsa.PublicKey) AuthResult {
	result := AuthResult{
		Success: false,
	}

	if authHeader == "" {
		result.Error = errors.New("missing Authorization header")
		return result
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		result.Error = errors.New("invalid Authorization header format")
		return result
	}

	if !strings.EqualFold(parts[0], "bearer") {
		result.Error = fmt.Errorf("unsupported authorization type: %s", strings.ToLower(parts[0]))
		return result
	}

	claims, err := validateJWT(parts[1], publicKey)
	if err != nil {
		result.Error = err
		return result
	}

	caller, err := domain.ParseAccount(claims.Subject)
	if err != nil {
		result.Error = fmt.Errorf("token subject is not an account: %w", err)
		return result
	}

	result.Success = true
	result.Claims = claims
	result.Caller = caller

	return result
}

// Auth returns a gin middleware for bearer token authentication.
// The authenticated account is available through Caller.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	publicKey, keyErr := parseRSAPublicKey(cfg.JWTPublicKey)
	if keyErr != nil && cfg.JWTPublicKey != "" {
		logger.Warn("Invalid JWT public key, authenticated routes will reject every request", zap.Error(keyErr))
	}

	return func(c *gin.Context) {
		var result AuthResult
		if keyErr != nil {
			result.Error = errors.New("JWT public key not configured")
		} else {
			result = Authenticate(c.GetHeader("Authorization"), publicKey)
		}

		if !result.Success {
			logger.WarnCtx(c.Request.Context(), "Authentication failed",
				zap.Error(result.Error),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			apiErr := apierrors.NewUnauthorizedError("Authentication failed", result.Error.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiErr)
			return
		}

		c.Set(string(JWT_CLAIMS_KEY), result.Claims)
		c.Set(string(CALLER_KEY), result.Caller)
		c.Request = c.Request.WithContext(logger.WithFields(c.Request.Context(), zap.String("caller", result.Caller.Hex())))

		logger.DebugCtx(c.Request.Context(), "JWT authentication successful",
			zap.String("path", c.Request.URL.Path),
		)

		c.Next()
	}
}

// Caller returns the account authenticated by Auth
func Caller(c *gin.Context) (domain.Account, bool) {
	value, exists := c.Get(string(CALLER_KEY))
	if !exists {
		return domain.Account{}, false
	}
	caller, ok := value.(domain.Account)
	return caller, ok
}

// validateJWT validates an RS256 signed token and returns its claims
func validateJWT(tokenString string, publicKey *rsa.PublicKey) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// parseRSAPublicKey parses an RSA public key from PEM format
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	// Try parsing as PKIX (most common format)
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		// Try parsing as PKCS1 format
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}
