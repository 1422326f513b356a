// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error
	CountUsers() (int, error)
	// CreateFirstUser creates the account only while no account exists.
	CreateFirstUser(email, hashedPassword string, name *string) (int, error)

	// station settings
	GetStation() (model.Station, error)
	SaveStation(station model.Station) (model.Station, error)

	// program definitions
	ListPrograms() ([]model.Program, error)
	GetProgram(id string) (model.Program, error)
	CreateProgram(program model.Program) (model.Program, error)
	UpdateProgram(program model.Program) (model.Program, error)
	DeleteProgram(id string) error

	// weekly schedule
	GetSchedule() (model.Schedule, error)
	ReplaceSchedule(schedule model.Schedule) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
// required so linter doesn't complain
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}

var (
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrSignupClosed     = errors.New("an admin account already exists")
	ErrDuplicateProgram = errors.New("program id already exists")
)

// isUniqueViolation matches postgres error 23505.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
