package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"devtinder-api/internal/model"
	"devtinder-api/internal/validation"
)

// Sentinel errors translated to HTTP status codes at the handler boundary.
var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("user already exists")
)

// ValidationError marks input the store refuses to persist. Handlers map
// it to a 400 response carrying the reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// UserStore is the persistence port for user records. The production
// implementation is backed by PostgreSQL through GORM; tests and the
// storage-free configuration use the in-memory one.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	UpdateByID(ctx context.Context, id uint, fields map[string]any) error
	DeleteByID(ctx context.Context, id uint) (*model.User, error)
}

// Fields a PATCH may touch. Any other key rejects the whole update.
var updatableFields = map[string]bool{
	"age":      true,
	"photoUrl": true,
	"bio":      true,
	"skills":   true,
}

const maxSkills = 5

// prepareForCreate applies schema-level constraints and defaults before a
// record is persisted. Email is stored lowercased.
func prepareForCreate(u *model.User) error {
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	switch {
	case u.FirstName == "":
		return invalid("First name is required")
	case utf8.RuneCountInString(u.FirstName) < 3 || utf8.RuneCountInString(u.FirstName) > 20:
		return invalid("First name must be between 3 and 20 characters")
	case utf8.RuneCountInString(u.LastName) > 20:
		return invalid("Last name must be less than 20 characters")
	case u.Email == "":
		return invalid("Email is required")
	case !validation.IsEmail(u.Email):
		return invalid("Email is not valid")
	case u.Password == "":
		return invalid("Password is required")
	}

	if u.Gender != "" && u.Gender != "male" && u.Gender != "female" && u.Gender != "others" {
		return invalid("Gender data is not valid")
	}
	if u.PhotoURL == "" {
		u.PhotoURL = model.DefaultPhotoURL
	} else if !validation.IsURL(u.PhotoURL) {
		return invalid("Photo URL is not valid")
	}
	if u.Bio == "" {
		u.Bio = model.DefaultBio
	}
	return nil
}

// userUpdate is a parsed, whitelisted partial update.
type userUpdate struct {
	Age      *int
	PhotoURL *string
	Bio      *string
	Skills   []string
}

// parseUpdate enforces the all-or-nothing field whitelist: one disallowed
// key fails the whole request and nothing is written.
func parseUpdate(fields map[string]any) (*userUpdate, error) {
	if len(fields) == 0 {
		return nil, invalid("No fields to update")
	}
	for key := range fields {
		if !updatableFields[key] {
			return nil, invalid("Update not allowed for field: %s", key)
		}
	}

	upd := &userUpdate{}
	if v, ok := fields["age"]; ok {
		n, ok := v.(float64)
		if !ok || n != float64(int(n)) {
			return nil, invalid("Age must be a number")
		}
		age := int(n)
		upd.Age = &age
	}
	if v, ok := fields["photoUrl"]; ok {
		s, ok := v.(string)
		if !ok || !validation.IsURL(s) {
			return nil, invalid("Photo URL is not valid")
		}
		upd.PhotoURL = &s
	}
	if v, ok := fields["bio"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, invalid("Bio must be a string")
		}
		upd.Bio = &s
	}
	if v, ok := fields["skills"]; ok {
		raw, ok := v.([]any)
		if !ok {
			return nil, invalid("Skills must be a list of strings")
		}
		if len(raw) > maxSkills {
			return nil, invalid("Skills cannot have more than %d entries", maxSkills)
		}
		skills := make([]string, 0, len(raw))
		for _, item := range raw {
			s, ok := item.(string)
			if !ok {
				return nil, invalid("Skills must be a list of strings")
			}
			skills = append(skills, s)
		}
		upd.Skills = skills
	}
	return upd, nil
}
