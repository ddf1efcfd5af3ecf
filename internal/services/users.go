package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/lojf/registry/internal/models"
)

// UserDirectory manages staff logins. Passwords are stored and compared in
// plaintext; see DESIGN.md before exposing this beyond a trusted LAN.
type UserDirectory struct {
	db *gorm.DB
}

func NewUserDirectory(db *gorm.DB) *UserDirectory {
	return &UserDirectory{db: db}
}

func (d *UserDirectory) List(ctx context.Context) ([]models.User, error) {
	out := []models.User{}
	if err := d.db.WithContext(ctx).Order("usuario").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

// Create adds an active user. Usernames are unique.
func (d *UserDirectory) Create(ctx context.Context, username, password, role string) error {
	username = strings.TrimSpace(username)
	role = strings.TrimSpace(role)
	switch {
	case username == "":
		return missing("usuario")
	case password == "":
		return missing("clave")
	case role == "":
		return missing("rol")
	}

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("usuario = ?", username).Count(&n).Error; err != nil {
			return fmt.Errorf("lookup user: %w", err)
		}
		if n > 0 {
			return &FieldError{Err: ErrConflict, Field: "usuario"}
		}
		row := models.User{Username: username, Password: password, Role: role, Active: true}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
}

// Update replaces password, role and active flag. nil password or role means
// the caller omitted them.
func (d *UserDirectory) Update(ctx context.Context, username string, password, role *string, active any) error {
	if password == nil {
		return missing("clave")
	}
	if role == nil {
		return missing("rol")
	}
	res := d.db.WithContext(ctx).Model(&models.User{}).
		Where("usuario = ?", username).
		Updates(map[string]any{"clave": *password, "rol": *role, "activo": ParseActive(active)})
	if res.Error != nil {
		return fmt.Errorf("update user %s: %w", username, res.Error)
	}
	if res.RowsAffected == 0 {
		return &FieldError{Err: ErrNotFound, Field: "usuario"}
	}
	return nil
}

// Login returns the stored role for a matching, active credential pair.
// Unknown user, wrong password and disabled user are indistinguishable.
func (d *UserDirectory) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", missing("credenciales")
	}
	var u models.User
	err := d.db.WithContext(ctx).
		Where("usuario = ? AND clave = ?", username, password).
		Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !u.Active) {
		return "", ErrAuthFailure
	}
	if err != nil {
		return "", fmt.Errorf("login lookup: %w", err)
	}
	return u.Role, nil
}
