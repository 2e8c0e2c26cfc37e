package service

import (
	"context"
	"database/sql"

	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// fakeTaskStore is an in-memory TaskStore for exercising the services
// without a database. Tasks keep insertion order, matching the store
// contract.
type fakeTaskStore struct {
	tasks  []*domain.Task
	nextID int64

	// forcedErr, when set, is returned by every operation.
	forcedErr error
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{nextID: 1}
}

func (f *fakeTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}

	clone := *task
	clone.ID = f.nextID
	f.nextID++
	f.tasks = append(f.tasks, &clone)

	task.ID = clone.ID
	return nil
}

func (f *fakeTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}

	for _, task := range f.tasks {
		if task.ID == id {
			clone := *task
			return &clone, nil
		}
	}
	return nil, store.ErrTaskNotFound
}

func (f *fakeTaskStore) List(ctx context.Context, filter store.TaskFilter, page store.PageRequest) (store.Page[domain.Task], error) {
	if f.forcedErr != nil {
		return store.Page[domain.Task]{}, f.forcedErr
	}

	var matched []domain.Task
	for _, task := range f.tasks {
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		if filter.AssignedToID != nil {
			if task.AssignedToID == nil || *task.AssignedToID != *filter.AssignedToID {
				continue
			}
		}
		matched = append(matched, *task)
	}

	total := int64(len(matched))
	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}

	return store.Page[domain.Task]{
		Items:         matched[start:end],
		Number:        page.Number,
		Size:          page.Size,
		TotalElements: total,
	}, nil
}

func (f *fakeTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}

	for i, existing := range f.tasks {
		if existing.ID == task.ID {
			clone := *task
			f.tasks[i] = &clone
			return nil
		}
	}
	return store.ErrTaskNotFound
}

func (f *fakeTaskStore) Delete(ctx context.Context, id int64) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}

	for i, task := range f.tasks {
		if task.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return store.ErrTaskNotFound
}

func (f *fakeTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return f
}

// fakeUserStore is an in-memory UserStore counterpart to fakeTaskStore.
type fakeUserStore struct {
	users  []*domain.User
	nextID int64

	forcedErr error
	// createErr, when set, is returned by Create only. It lets tests model
	// an insert failing after the existence check passed.
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1}
}

// addUser seeds a user directly, bypassing validation.
func (f *fakeUserStore) addUser(name, email string) *domain.User {
	user := &domain.User{ID: f.nextID, Name: name, Email: email}
	f.nextID++
	f.users = append(f.users, user)
	return user
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	if f.createErr != nil {
		return f.createErr
	}

	for _, existing := range f.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}

	clone := *user
	clone.ID = f.nextID
	f.nextID++
	f.users = append(f.users, &clone)

	user.ID = clone.ID
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}

	for _, user := range f.users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if f.forcedErr != nil {
		return false, f.forcedErr
	}

	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) List(ctx context.Context, page store.PageRequest) (store.Page[domain.User], error) {
	if f.forcedErr != nil {
		return store.Page[domain.User]{}, f.forcedErr
	}

	total := int64(len(f.users))
	start := page.Offset()
	if start > len(f.users) {
		start = len(f.users)
	}
	end := start + page.Size
	if end > len(f.users) {
		end = len(f.users)
	}

	items := make([]domain.User, 0, end-start)
	for _, user := range f.users[start:end] {
		items = append(items, *user)
	}

	return store.Page[domain.User]{
		Items:         items,
		Number:        page.Number,
		Size:          page.Size,
		TotalElements: total,
	}, nil
}

func (f *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return f
}
