package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/hmiyake/classquiz/internal/dto"
)

const identityKey = "identity"

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// Claims is what the external identity provider puts in its HS256 tokens.
// The core trusts these for every ownership check.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Auth verifies the Bearer token and stashes the caller identity in the
// request context. Requests without a valid token are rejected.
func Auth(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := ""
		if authHeader := ctx.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing credentials"})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid credentials"})
			return
		}

		ctx.Set(identityKey, claims)
		ctx.Next()
	}
}

// RequireTeacher guards the admin content surface.
func RequireTeacher() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims := Identity(ctx)
		if claims == nil || claims.Role != RoleTeacher {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Teacher role required"})
			return
		}
		ctx.Next()
	}
}

// Identity returns the verified caller claims, or nil outside Auth.
func Identity(ctx *gin.Context) *Claims {
	val, ok := ctx.Get(identityKey)
	if !ok {
		return nil
	}
	claims, ok := val.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
