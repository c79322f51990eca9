package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Defaults applied when a user signs up without these fields.
const (
	DefaultPhotoURL = "https://www.tassigns.com/uploads/11032988/File/m5.jpeg"
	DefaultBio      = "This is a default bio"
)

// User represents the user model stored in the database
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"firstName" gorm:"type:varchar(20)"`
	LastName  string    `json:"lastName,omitempty" gorm:"type:varchar(20)"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password  string    `json:"-" gorm:"type:varchar(255)"`
	Age       *int      `json:"age,omitempty"`
	Gender    string    `json:"gender,omitempty" gorm:"type:varchar(10)"`
	PhotoURL  string    `json:"photoUrl" gorm:"type:text"`
	Bio       string    `json:"bio" gorm:"type:text"`
	Skills    []string  `json:"skills,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SetPassword hashes the plaintext password with bcrypt and stores the
// hash. Plaintext never reaches the database.
func (u *User) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword compares a candidate password against the stored bcrypt
// hash. A plain mismatch returns false, not an error.
func (u *User) CheckPassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate)) == nil
}
