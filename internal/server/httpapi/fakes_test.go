package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/observability"
	"github.com/dmitrijs2005/gophtasks/internal/server/auth"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
)

var testSecret = []byte("test-secret")

type fakeUsers struct {
	users   map[int64]*models.User
	loginFn func(username, password string) (string, error)
	err     error
}

func (f *fakeUsers) Register(_ context.Context, name, email, password string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u := &models.User{ID: int64(len(f.users) + 1), Name: name, Email: email, PasswordHash: "h:" + password}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsers) Login(_ context.Context, username, password string) (string, error) {
	return f.loginFn(username, password)
}

func (f *fakeUsers) List(context.Context) ([]models.User, error) {
	if len(f.users) == 0 {
		return nil, common.ErrorNotFound
	}
	out := make([]models.User, 0, len(f.users))
	for i := int64(1); i <= int64(len(f.users)); i++ {
		if u, ok := f.users[i]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUsers) Get(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsers) Update(_ context.Context, caller auth.Identity, id int64, upd services.UserUpdate) (*models.User, error) {
	if caller.SubjectID != id {
		return nil, common.ErrorForbidden
	}
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.Name, u.Email = upd.Name, upd.Email
	return u, nil
}

func (f *fakeUsers) Delete(_ context.Context, caller auth.Identity, id int64) error {
	if caller.SubjectID != id {
		return common.ErrorForbidden
	}
	if _, ok := f.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeTasks struct {
	tasks map[int64]*models.Task
	calls int
	err   error
}

func (f *fakeTasks) Create(_ context.Context, userID int64, title string, description *string, status models.TaskStatus) (*models.Task, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if !status.Valid() {
		return nil, common.ErrorValidation
	}
	for _, t := range f.tasks {
		if t.Title == title {
			return nil, common.ErrorAlreadyExists
		}
	}
	t := &models.Task{ID: int64(len(f.tasks) + 1), Title: title, Description: description, Status: status, UserID: userID}
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTasks) List(_ context.Context, userID int64) ([]models.Task, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Task{}
	for i := int64(1); i <= int64(len(f.tasks)); i++ {
		if t, ok := f.tasks[i]; ok && t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTasks) Get(_ context.Context, userID, id int64) (*models.Task, error) {
	f.calls++
	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (f *fakeTasks) UpdateStatus(ctx context.Context, userID, id int64, status models.TaskStatus) (*models.Task, error) {
	t, err := f.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	t.Status = status
	return t, nil
}

func (f *fakeTasks) Delete(ctx context.Context, userID, id int64) error {
	if _, err := f.Get(ctx, userID, id); err != nil {
		return err
	}
	delete(f.tasks, id)
	return nil
}

type testEnv struct {
	srv     *HTTPServer
	users   *fakeUsers
	tasks   *fakeTasks
	codec   *auth.Codec
	metrics *observability.Metrics
	reg     *prometheus.Registry
}

func newTestEnv() *testEnv {
	codec := auth.NewCodec(testSecret)
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	env := &testEnv{
		users:   &fakeUsers{users: map[int64]*models.User{}},
		tasks:   &fakeTasks{tasks: map[int64]*models.Task{}},
		codec:   codec,
		metrics: m,
		reg:     reg,
	}
	env.srv = NewHTTPServer("127.0.0.1:0", logging.Nop{}, env.users, env.tasks, auth.NewGuard(codec), m)
	env.srv.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return env
}

func (e *testEnv) token(name string, id int64, ttl time.Duration) string {
	tok, err := e.codec.Encode(auth.Claims{Subject: name, SubjectID: id}, ttl)
	if err != nil {
		panic(err)
	}
	return tok
}
