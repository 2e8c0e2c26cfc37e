package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// UserService provides user lifecycle operations.
type UserService interface {
	// CreateUser creates a new user. Returns a DuplicateEmailError when a
	// user with the same email is already registered.
	CreateUser(ctx context.Context, input UserInput) (*UserDTO, error)

	// ListUsers returns the page of all users.
	ListUsers(ctx context.Context, page store.PageRequest) (store.Page[UserDTO], error)

	// GetUserByID returns the user with the given id or a NotFoundError.
	GetUserByID(ctx context.Context, id int64) (*UserDTO, error)
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	users  store.UserStore
	db     *sql.DB
	logger *slog.Logger
}

// NewUserService creates a new UserService. The db handle is used to run
// each mutation within a single transaction; a nil db runs mutations
// directly, which is only appropriate for tests backed by fake stores.
// It returns an error if the user store is nil.
func NewUserService(users store.UserStore, db *sql.DB, logger *slog.Logger) (UserService, error) {
	if users == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "users store cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		users:  users,
		db:     db,
		logger: logger.With("component", "user_service"),
	}, nil
}

// inTransaction runs fn within a database transaction when a db handle is
// configured, and directly otherwise.
func (s *userServiceImpl) inTransaction(ctx context.Context, fn store.TxFn) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return store.RunInTransaction(ctx, s.db, fn)
}

// userStore returns the user store bound to the given transaction, or the
// plain store when tx is nil.
func (s *userServiceImpl) userStore(tx *sql.Tx) store.UserStore {
	if tx == nil {
		return s.users
	}
	return s.users.WithTx(tx)
}

// CreateUser implements UserService.CreateUser
func (s *userServiceImpl) CreateUser(ctx context.Context, input UserInput) (*UserDTO, error) {
	user, err := domain.NewUser(input.Name, input.Email)
	if err != nil {
		s.logger.Warn("invalid user input", "error", err)
		return nil, err
	}

	err = s.inTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		userStore := s.userStore(tx)

		exists, err := userStore.ExistsByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if exists {
			return &DuplicateEmailError{Email: user.Email}
		}

		// The unique index still backs this check: a concurrent insert of
		// the same email surfaces as store.ErrEmailExists.
		if err := userStore.Create(ctx, user); err != nil {
			if errors.Is(err, store.ErrEmailExists) {
				return &DuplicateEmailError{Email: user.Email}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", "user_id", user.ID)

	return userToDTO(user), nil
}

// ListUsers implements UserService.ListUsers
func (s *userServiceImpl) ListUsers(ctx context.Context, page store.PageRequest) (store.Page[UserDTO], error) {
	users, err := s.users.List(ctx, page)
	if err != nil {
		return store.Page[UserDTO]{}, err
	}

	result := store.Page[UserDTO]{
		Items:         make([]UserDTO, 0, len(users.Items)),
		Number:        users.Number,
		Size:          users.Size,
		TotalElements: users.TotalElements,
	}
	for i := range users.Items {
		result.Items = append(result.Items, *userToDTO(&users.Items[i]))
	}

	return result, nil
}

// GetUserByID implements UserService.GetUserByID
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*UserDTO, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, NewUserNotFoundError(id)
		}
		return nil, err
	}

	return userToDTO(user), nil
}
