package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"devtinder-api/internal/model"

	"gorm.io/gorm"
)

// GormStore persists users in PostgreSQL through GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, u *model.User) error {
	if err := prepareForCreate(u); err != nil {
		return err
	}

	// Pre-check gives the friendly error; the unique index on email is
	// what actually guarantees uniqueness under concurrent signups.
	var existing model.User
	if err := s.db.WithContext(ctx).Where("email = ?", u.Email).First(&existing).Error; err == nil {
		return ErrDuplicateEmail
	}

	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *GormStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) FindAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormStore) UpdateByID(ctx context.Context, id uint, fields map[string]any) error {
	upd, err := parseUpdate(fields)
	if err != nil {
		return err
	}

	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}

	values, err := buildUpdateValues(upd)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(values).Error
}

// buildUpdateValues maps a parsed update onto column assignments. Skills
// are marshalled here: a raw []string in an Updates map bypasses the
// model's JSON serializer and expands into per-entry placeholders.
func buildUpdateValues(upd *userUpdate) (map[string]any, error) {
	values := map[string]any{}
	if upd.Age != nil {
		values["age"] = *upd.Age
	}
	if upd.PhotoURL != nil {
		values["photo_url"] = *upd.PhotoURL
	}
	if upd.Bio != nil {
		values["bio"] = *upd.Bio
	}
	if upd.Skills != nil {
		raw, err := json.Marshal(upd.Skills)
		if err != nil {
			return nil, err
		}
		values["skills"] = string(raw)
	}
	return values, nil
}

func (s *GormStore) DeleteByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&model.User{}, id).Error; err != nil {
		return nil, err
	}
	return user, nil
}
