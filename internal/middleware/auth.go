package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"RealEgo_Backend/internal/models"

	"github.com/gin-gonic/gin"
)

const accountKey = "account"

type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

type AccountLookup interface {
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
}

// AuthMiddleware resolves the bearer token to an account. Every failure gets the same 401.
func AuthMiddleware(tokens TokenValidator, accounts AccountLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			Unauthorized(c)
			return
		}

		account, err := Authenticate(c.Request.Context(), tokens, accounts, tokenString)
		if err != nil {
			slog.Debug("AuthMiddleware(): rejected token", "error", err)
			Unauthorized(c)
			return
		}
		c.Set(accountKey, account)
		c.Next()
	}
}

// Authenticate validates a raw token and loads its account.
func Authenticate(ctx context.Context, tokens TokenValidator, accounts AccountLookup, tokenString string) (*models.Account, error) {
	username, err := tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return accounts.GetAccountByUsername(ctx, username)
}

// Unauthorized aborts with the uniform credentials error.
func Unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
}

// CurrentAccount returns the account set by AuthMiddleware.
func CurrentAccount(c *gin.Context) *models.Account {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil
	}
	account, _ := v.(*models.Account)
	return account
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
