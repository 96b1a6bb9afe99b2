package server

import (
	"time"

	"gorm.io/gorm"
)

// Game is a stored game. State holds the engine serialization and is
// rewritten after every accepted command.
type Game struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug      string    `gorm:"type:text;uniqueIndex" json:"slug"`
	RuleID    int       `gorm:"not null" json:"rule_id"`
	Status    string    `gorm:"type:text;default:'initial'" json:"status"`
	Turn      int       `gorm:"default:0" json:"turn"`
	State     string    `gorm:"type:text" json:"-"`
	UserID    *int64    `gorm:"index" json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Seats    []Seat    `gorm:"foreignKey:GameID" json:"seats,omitempty"`
	Commands []Command `gorm:"foreignKey:GameID" json:"commands,omitempty"`
}

// Seat binds a user to one direction of a game.
type Seat struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	GameID    int64     `gorm:"not null;uniqueIndex:idx_game_direction" json:"game_id"`
	Direction int       `gorm:"not null;uniqueIndex:idx_game_direction" json:"direction"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Command is one accepted command, in the order it was applied.
type Command struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	GameID    int64     `gorm:"index;not null" json:"game_id"`
	UserID    int64     `gorm:"index" json:"user_id"`
	Type      string    `gorm:"type:text;not null" json:"type"`
	Body      string    `gorm:"type:text" json:"body"`
	Turn      int       `gorm:"not null" json:"turn"`
	CreatedAt time.Time `json:"created_at"`
}

// User is a registered player.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID         string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`
	Username     string    `gorm:"type:varchar(128);not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255)" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AutoMigrate runs the database migrations
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Game{}, &Seat{}, &Command{})
}
