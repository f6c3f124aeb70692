package handlers

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/buildcanada/trade-tracker/internal/auth"
)

// bearerToken pulls the token out of the Authorization header, empty when the
// header is missing or not a Bearer scheme.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// RequireAuth guards admin routes: a valid bearer token is required, and the
// caller's user id and email are stored on the request context.
func RequireAuth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No token provided"})
		}

		claims, err := auth.Parse(token, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		c.Locals("userID", claims.Subject)
		c.Locals("email", claims.Email)
		return c.Next()
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler checks email/password and issues a session token.
func LoginHandler(users UserStore, secret []byte, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Email == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
		}

		user, err := users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			log.Printf("Error looking up user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
		if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
		}

		token, err := auth.Sign(user.ID, user.Email, secret, ttl)
		if err != nil {
			log.Printf("Error signing token: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user":  fiber.Map{"id": user.ID, "email": user.Email},
		})
	}
}

// SessionHandler validates a bearer token and returns the logged-in user.
func SessionHandler(users UserStore, secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No token provided"})
		}

		claims, err := auth.Parse(token, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		user, err := users.GetByID(ctx, claims.Subject)
		if err != nil {
			log.Printf("Error looking up user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		return c.JSON(fiber.Map{
			"user":  fiber.Map{"id": user.ID, "email": user.Email},
			"valid": true,
		})
	}
}

type updatePasswordRequest struct {
	Password string `json:"password"`
}

// UpdatePasswordHandler sets a new password for the user identified by the
// bearer token's subject claim. The token payload is decoded without
// signature verification on this path; reset tokens are minted out-of-band.
func UpdatePasswordHandler(users UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing or invalid authorization header"})
		}

		var req updatePasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if len(req.Password) < 6 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password must be at least 6 characters long"})
		}

		userID, err := auth.Subject(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update password"})
		}

		found, err := users.UpdatePassword(ctx, userID, string(hash))
		if err != nil {
			log.Printf("Error updating password: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update password"})
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}

		return c.JSON(fiber.Map{"message": "Password updated successfully"})
	}
}
