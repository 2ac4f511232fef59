package utils

import (
	"context"
	"crypto/rand"
	"os"
	"strconv"
	"time"

	"hostelhub-server/models"
	"hostelhub-server/storage"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// AccessToken is the claims payload carried by every authenticated request.
// Role is embedded at sign time so the RBAC middlewares never hit the DB.
type AccessToken struct {
	ID   uint   `json:"ID"`
	Role string `json:"role"`
}

// ForgotPasswordToken is a short-lived claims payload mailed to a resident
// who requested a password reset.
type ForgotPasswordToken struct {
	ID    uint   `json:"ID"`
	Email string `json:"email"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 365 * 24 * time.Hour
)

var bgContext = context.Background()

// CreateForgotPasswordToken signs a reset token valid for ten minutes.
func CreateForgotPasswordToken(id uint, email string) (string, error) {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("EMAIL_TOKEN_SECRET"), 10*time.Minute)

	token, err := signer.Sign(ForgotPasswordToken{ID: id, Email: email})
	if err != nil {
		return "", err
	}

	return string(token), nil
}

// CreateTokenPair issues a fresh access/refresh pair for the user and
// whitelists the refresh token in Redis. Refresh tokens are single use:
// RefreshToken deletes the entry before issuing the next pair.
func CreateTokenPair(id uint) (*jwt.TokenPair, error) {
	accessSigner := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), accessTokenTTL)
	refreshSigner := jwt.NewSigner(jwt.HS256, os.Getenv("REFRESH_TOKEN_SECRET"), refreshTokenTTL)

	role := "guest"
	var u models.User
	if err := storage.DB.Select("id, role").First(&u, id).Error; err == nil && u.Role != "" {
		role = u.Role
	}

	accessToken, err := accessSigner.Sign(AccessToken{ID: id, Role: role})
	if err != nil {
		return nil, err
	}

	refreshToken, err := refreshSigner.Sign(jwt.Claims{
		Subject: strconv.FormatUint(uint64(id), 10),
	})
	if err != nil {
		return nil, err
	}

	// The whitelist entry outlives the token slightly so an expired token
	// fails verification rather than looking revoked.
	storage.Redis.Set(bgContext, string(refreshToken), "true", refreshTokenTTL+5*time.Minute)

	return &jwt.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RefreshToken rotates a verified refresh token: the old token must still be
// whitelisted, and it is revoked before the new pair is issued.
func RefreshToken(ctx iris.Context) {
	token := jwt.GetVerifiedToken(ctx)
	tokenStr := string(token.Token)

	whitelisted, err := storage.Redis.Get(bgContext, tokenStr).Result()
	if err != nil {
		CreateNotFound(ctx)
		return
	}
	if whitelisted != "true" {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	storage.Redis.Del(bgContext, tokenStr)

	userID, err := strconv.ParseUint(token.StandardClaims.Subject, 10, 32)
	if err != nil {
		CreateInternalServerError(ctx)
		return
	}

	pair, err := CreateTokenPair(uint(userID))
	if err != nil {
		CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"accessToken":  string(pair.AccessToken),
		"refreshToken": string(pair.RefreshToken),
	})
}

// GenerateShortToken returns n random bytes hex-encoded, used for receipt
// download links.
func GenerateShortToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	const hex = "0123456789abcdef"
	out := make([]byte, n*2)
	for i, v := range b {
		out[i*2] = hex[v>>4]
		out[i*2+1] = hex[v&0x0f]
	}
	return string(out)
}
