package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"default:'user'" json:"role"`

	Recipes []*Recipe `gorm:"foreignKey:UserID" json:"recipes,omitempty"`
	Timestamp
}

// Subscription links a follower to an author. The pair is unique and a
// check constraint keeps user_id <> author_id at the database level.
type Subscription struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"not null;uniqueIndex:idx_user_author" json:"user_id"`
	AuthorID uuid.UUID `gorm:"not null;uniqueIndex:idx_user_author" json:"author_id"`

	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Timestamp
}
