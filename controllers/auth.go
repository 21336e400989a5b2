package controllers

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"time"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/opscheduler/opscheduler-api/db"
	"github.com/opscheduler/opscheduler-api/models"
	"github.com/opscheduler/opscheduler-api/redis"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionTTL = 24 * time.Hour

func sessionKey(userID uint) string {
	return fmt.Sprintf("session:%d", userID)
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return []byte(secret)
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	DOB      string `json:"dob"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

// Register creates the account, its role record, and the patient profile in
// one transaction. A failure in any step rolls back the whole sequence, so
// no identity can exist without its role and profile.
func Register(c *fiber.Ctx) error {
	input := new(RegisterInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Email == "" || input.Password == "" || input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	// Check if user already exists
	var existingUser models.User
	if db.DB.Where("email = ?", input.Email).First(&existingUser).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "User with this email already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	var user models.User
	var patient models.Patient

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// Step 1: the identity
		var patientRole models.Role
		if err := tx.Where("name = ?", models.RolePatient).First(&patientRole).Error; err != nil {
			log.Printf("Error finding patient role: %v", err)
			return err
		}

		user = models.User{
			Name:     input.Name,
			Email:    input.Email,
			Password: string(hashedPassword),
			RoleID:   patientRole.ID,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		user.Role = patientRole

		// Step 2: the profile, linked back to the identity
		patient = models.Patient{
			Name:    input.Name,
			Email:   input.Email,
			Phone:   input.Phone,
			DOB:     input.DOB,
			Address: input.Address,
			AuthUID: user.ID,
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		log.Printf("Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user: " + err.Error(),
		})
	}

	// Remove password from response
	user.Password = ""

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Registration successful! You will now be redirected to the login page.",
		"user":     user,
		"patient":  patient,
		"redirect": "/login",
	})
}

// Login handles user authentication
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	// Local validation first: no store call is made for these.
	if input.Email == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please fill in both fields.",
		})
	}

	if _, err := mail.ParseAddress(input.Email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid email address.",
		})
	}

	// Find user. Unknown email and wrong password share one message.
	var user models.User
	if err := db.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Incorrect email or password.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Something went wrong: " + err.Error(),
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Incorrect email or password.",
		})
	}

	// Read the role fresh from the store; an account with no role record
	// resolves to "member".
	roleName := models.RoleMember
	var role models.Role
	if user.RoleID != 0 {
		if err := db.DB.First(&role, user.RoleID).Error; err == nil {
			roleName = role.Name
		}
	}

	// Create access token
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  roleName,
		"exp":   time.Now().Add(sessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	// Create refresh token with longer expiration
	refreshClaims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  roleName,
		"exp":   time.Now().Add(7 * sessionTTL).Unix(),
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString(jwtSecret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate refresh token",
		})
	}

	// Cache the session token; cleared again on logout.
	if redis.Client != nil {
		if err := redis.Client.Set(redis.Ctx, sessionKey(user.ID), tokenString, sessionTTL).Err(); err != nil {
			log.Printf("Failed to cache session token for user %d: %v", user.ID, err)
		}
	}

	redirect := "/patient/dashboard"
	if roleName == models.RoleAdmin {
		redirect = "/admin/dashboard"
	}

	return c.JSON(fiber.Map{
		"message":      "Login successful! Redirecting...",
		"token":        tokenString,
		"refreshToken": refreshTokenString,
		"redirect":     redirect,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  roleName,
		},
	})
}

// GetUserProfile returns the current user's identity with the role re-read
// from the store, not echoed from the token.
func GetUserProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.Preload("Role").First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	// Don't send password
	user.Password = ""

	return c.JSON(fiber.Map{
		"user": user,
		"role": user.RoleName(),
	})
}

// Logout clears the cached session token. On failure the token stays
// cached and the caller gets an error instead of a redirect, so they can
// retry.
func Logout(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if redis.Client != nil {
		if err := redis.Client.Del(redis.Ctx, sessionKey(userID)).Err(); err != nil {
			log.Printf("Failed to clear session for user %d: %v", userID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error signing out, please try again.",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message":  "Successfully logged out",
		"redirect": "/",
	})
}

// RefreshToken generates a new access token using a refresh token
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	refreshRequest := new(RefreshRequest)
	if err := c.BodyParser(refreshRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	token, err := jwt.Parse(refreshRequest.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})

	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	claims := token.Claims.(jwt.MapClaims)
	newClaims := jwt.MapClaims{
		"id":    claims["id"],
		"email": claims["email"],
		"role":  claims["role"],
		"exp":   time.Now().Add(sessionTTL).Unix(),
	}

	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims)
	tokenString, err := newToken.SignedString(jwtSecret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
	})
}
