package store

import (
	"context"
	"errors"
	"time"

	"github.com/clearlens/camwatch/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	LoginData() LoginData
	Roles() Roles
	Profiles() Profiles
	Cameras() Cameras
	Terminations() Terminations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is used during registration.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the username or email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateSalt replaces the user's salt and bumps updated_at. This is the
	// sole token revocation mechanism.
	UpdateSalt(ctx context.Context, userID, salt string) error

	// ConfirmEmail flips is_email_confirmed and bumps updated_at.
	ConfirmEmail(ctx context.Context, userID string) error

	// DeleteUser cascades to login_data and profiles (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type LoginData interface {
	// CreateLoginData stores the credential record for a new user.
	CreateLoginData(ctx context.Context, d domain.LoginData) error

	// GetLoginDataByUserID fetches the credential record.
	GetLoginDataByUserID(ctx context.Context, userID string) (domain.LoginData, error)

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// SetConfirmationCode stores a fresh confirmation code with its expiry.
	SetConfirmationCode(ctx context.Context, userID, code string, expiresAt time.Time) error

	// ClearConfirmationCode removes the code once registration completes.
	ClearConfirmationCode(ctx context.Context, userID string) error

	// UpdateRecoveryToken replaces the recovery token issued at registration.
	UpdateRecoveryToken(ctx context.Context, userID, token string, generatedAt time.Time) error
}

type Terminations interface {
	// CreateTermination records an account closure. Returns ErrAlreadyExists
	// when the account is already terminated.
	CreateTermination(ctx context.Context, t domain.Termination) error

	// GetTerminationByUserID fetches the closure record for a user.
	GetTerminationByUserID(ctx context.Context, userID string) (domain.Termination, error)
}

type Roles interface {
	// GetRoleByID fetches a role by its ID
	GetRoleByID(ctx context.Context, id string) (domain.Role, error)

	// GetRoleByName fetches a role by its name (for registration defaults)
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListAll returns all roles in the system
	ListAll(ctx context.Context) ([]domain.Role, error)

	// CreateRole inserts a new role (id is ULID)
	CreateRole(ctx context.Context, r domain.Role) error

	// IsEmpty returns true if there are no roles
	IsEmpty(ctx context.Context) (bool, error)
}

type Profiles interface {
	// CreateProfile inserts the profile written at registration completion.
	CreateProfile(ctx context.Context, p domain.Profile) error

	// GetProfileByUserID fetches a profile.
	GetProfileByUserID(ctx context.Context, userID string) (domain.Profile, error)

	// UpdateProfile replaces the mutable profile fields and bumps updated_at.
	UpdateProfile(ctx context.Context, p domain.Profile) error
}

type Cameras interface {
	// GetCameraByID fetches a single camera.
	GetCameraByID(ctx context.Context, id string) (domain.Camera, error)

	// ListCameras returns cameras ordered by name, windowed for pagination.
	ListCameras(ctx context.Context, limit, offset int) ([]domain.Camera, error)

	// CountCameras returns the total number of cameras.
	CountCameras(ctx context.Context) (int, error)

	// CreateCamera inserts a camera (id is ULID).
	CreateCamera(ctx context.Context, c domain.Camera) error

	// UpdateContamination records a new contamination reading for a camera.
	UpdateContamination(ctx context.Context, cameraID string, contamination float64, at time.Time) error
}
