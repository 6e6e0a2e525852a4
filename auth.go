package main

import (
	"errors"
	"fmt"
	"strings"

	"strukpos/models"

	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = errors.New("invalid credentials")

// RegisterUser creates a user with the default "user" role. Duplicate
// usernames are rejected both by the pre-check and by the unique index,
// so concurrent registrations of the same name fail cleanly.
func RegisterUser(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username required")
	}
	if len(password) < 6 {
		return fmt.Errorf("password too short (min 6)")
	}
	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		return fmt.Errorf("user already exists")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	role, err := ensureRole("user", "regular user")
	if err != nil {
		return err
	}
	rid := role.ID
	user := models.User{Username: username, HashedPassword: hashed, RoleID: &rid}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("user already exists")
		}
		return err
	}
	return nil
}

// Authenticate resolves a username/password pair to its user row. The
// error never distinguishes a missing user from a wrong password.
func Authenticate(username, password string) (models.User, error) {
	var user models.User
	if err := db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		return models.User{}, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return models.User{}, errInvalidCredentials
	}
	return user, nil
}

func ensureRole(name, description string) (models.Role, error) {
	role := models.Role{Name: name, Description: description}
	if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
		return models.Role{}, fmt.Errorf("ensure role %s: %w", name, err)
	}
	return role, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
