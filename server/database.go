package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/icco/goshogi"
	"github.com/ifo/sanic"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"moul.io/zapgorm2"
)

// Seat errors.
var (
	ErrSeatTaken  = errors.New("seat is already taken")
	ErrNoFreeSeat = errors.New("game is full")
	ErrNotSeated  = errors.New("you are not seated in this game")
)

// OpenDB connects to a postgres URL, or to a sqlite file when the URL has
// the form "sqlite:<path>", and migrates the schema.
func OpenDB(url string, zl *zap.Logger) (*gorm.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	gl := zapgorm2.New(zl)
	gl.IgnoreRecordNotFoundError = true
	gl.SetAsDefault()

	var dialector gorm.Dialector
	if path, ok := strings.CutPrefix(url, "sqlite:"); ok {
		dialector = sqlite.Open(path)
	} else {
		dialector = postgres.Open(url)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gl.LogMode(logger.Warn)})
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return db, nil
}

// Store persists games, their seats and command logs.
type Store struct {
	db     *gorm.DB
	rules  goshogi.RuleSource
	opts   []goshogi.Option
	worker *sanic.Worker
}

// NewStore wraps a migrated database. Games are rebuilt against rules with
// opts applied.
func NewStore(db *gorm.DB, rules goshogi.RuleSource, opts ...goshogi.Option) *Store {
	return &Store{db: db, rules: rules, opts: opts, worker: sanic.NewWorker7()}
}

// CreateGame stores a new game of the rule and seats its creator at
// direction 0.
func (s *Store) CreateGame(ctx context.Context, ruleID int, user *User) (string, error) {
	g, err := goshogi.NewGame(s.rules, ruleID, s.opts...)
	if err != nil {
		return "", err
	}
	g.Teban().SetUser(0, user.UUID)
	if g.Teban().Count() == 1 {
		if err := g.Start(); err != nil {
			return "", err
		}
	}

	slug := s.worker.IDString(s.worker.NextID())

	rec := Game{
		Slug:   slug,
		RuleID: ruleID,
		UserID: &user.ID,
		Seats:  []Seat{{Direction: 0, UserID: user.ID}},
	}
	if err := setState(&rec, g); err != nil {
		return "", err
	}

	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return "", err
	}
	return slug, nil
}

// LoadGame returns the stored row and the game rebuilt from it.
func (s *Store) LoadGame(ctx context.Context, slug string) (*Game, *goshogi.Game, error) {
	var rec Game
	if err := s.db.WithContext(ctx).Preload("Seats.User").Where("slug = ?", slug).First(&rec).Error; err != nil {
		return nil, nil, err
	}
	g, err := goshogi.UnmarshalGame(s.rules, []byte(rec.State), s.opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("game %s: %w", slug, err)
	}
	return &rec, g, nil
}

// SaveCommand writes the new game state and appends the command to the
// log in one transaction.
func (s *Store) SaveCommand(ctx context.Context, rec *Game, g *goshogi.Game, c goshogi.Command, user *User) error {
	body, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := setState(rec, g); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveState(tx, rec); err != nil {
			return err
		}
		return tx.Create(&Command{
			GameID: rec.ID,
			UserID: user.ID,
			Type:   string(c.Type),
			Body:   string(body),
			Turn:   rec.Turn,
		}).Error
	})
}

// Join seats the user at want, or at the first free direction when want is
// nil. The game starts once every seat is filled.
func (s *Store) Join(ctx context.Context, rec *Game, g *goshogi.Game, user *User, want *goshogi.Direction) (goshogi.Direction, error) {
	taken := map[goshogi.Direction]bool{}
	for _, seat := range rec.Seats {
		taken[goshogi.Direction(seat.Direction)] = true
	}

	d := goshogi.NoDirection
	if want != nil {
		if !g.Teban().Valid(*want) {
			return d, fmt.Errorf("%w: no seat %d", goshogi.ErrIllegalMove, *want)
		}
		if taken[*want] {
			return d, ErrSeatTaken
		}
		d = *want
	} else {
		for _, dir := range g.Teban().Directions() {
			if !taken[dir] {
				d = dir
				break
			}
		}
		if d == goshogi.NoDirection {
			return d, ErrNoFreeSeat
		}
	}

	g.Teban().SetUser(d, user.UUID)
	if len(taken)+1 == g.Teban().Count() && g.Status() == goshogi.StatusInitial {
		if err := g.Start(); err != nil {
			return d, err
		}
	}
	if err := setState(rec, g); err != nil {
		return d, err
	}

	seat := Seat{GameID: rec.ID, Direction: int(d), UserID: user.ID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&seat).Error; err != nil {
			return err
		}
		return saveState(tx, rec)
	})
	if err != nil {
		return d, err
	}
	seat.User = *user
	rec.Seats = append(rec.Seats, seat)
	return d, nil
}

// Commands returns the command log of a game, oldest first.
func (s *Store) Commands(ctx context.Context, gameID int64) ([]Command, error) {
	var cmds []Command
	if err := s.db.WithContext(ctx).Where("game_id = ?", gameID).Order("id").Find(&cmds).Error; err != nil {
		return nil, err
	}
	return cmds, nil
}

// CreateUser stores a user with an already hashed password.
func (s *Store) CreateUser(ctx context.Context, username, email, hash string) (*User, error) {
	user := User{
		UUID:         uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UserByEmail looks a user up for login.
func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UserByUUID looks up the subject of a token.
func (s *Store) UserByUUID(ctx context.Context, id string) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).Where("uuid = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SeatsOf lists the directions the user holds in a game.
func SeatsOf(rec *Game, user *User) []goshogi.Direction {
	var ds []goshogi.Direction
	for _, seat := range rec.Seats {
		if seat.UserID == user.ID {
			ds = append(ds, goshogi.Direction(seat.Direction))
		}
	}
	return ds
}

func setState(rec *Game, g *goshogi.Game) error {
	state, err := json.Marshal(g)
	if err != nil {
		return err
	}
	rec.State = string(state)
	rec.RuleID = g.RuleID()
	rec.Status = g.Status().String()
	rec.Turn = g.Kifu().Len()
	return nil
}

func saveState(tx *gorm.DB, rec *Game) error {
	result := tx.Model(&Game{}).Where("id = ?", rec.ID).Updates(map[string]any{
		"rule_id": rec.RuleID,
		"state":   rec.State,
		"status":  rec.Status,
		"turn":    rec.Turn,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
