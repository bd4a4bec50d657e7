package service_test

import (
	"access-request-server/internal/model"
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

// fakeTx : исполнитель запросов для фейковых репозиториев. Записи применяются на commit
type fakeTx struct {
	ops []func()
}

func (f *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (f *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (f *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return &sql.Row{}
}
func (f *fakeTx) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	return nil, nil
}
func (f *fakeTx) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	return &sqlx.Row{}
}
func (f *fakeTx) BindNamed(query string, arg interface{}) (string, []interface{}, error) {
	return "", nil, nil
}
func (f *fakeTx) DriverName() string         { return "fake" }
func (f *fakeTx) Rebind(query string) string { return query }

// fakeDB : исполнитель вне транзакции, записи применяются сразу
var fakeDB = &fakeTx{}

func apply(exec sqlx.ExtContext, op func()) {
	if tx, ok := exec.(*fakeTx); ok && tx != fakeDB {
		tx.ops = append(tx.ops, op)
		return
	}
	op()
}

type fakeTransactor struct {
	mu        *sync.Mutex
	commits   int
	rollbacks int
}

func (t *fakeTransactor) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx := &fakeTx{}
	done := false
	commit := func() error {
		t.mu.Lock()
		for _, op := range tx.ops {
			op()
		}
		t.commits++
		t.mu.Unlock()
		done = true
		return nil
	}
	rollback := func() error {
		if !done {
			t.rollbacks++
			done = true
		}
		return nil
	}
	return tx, rollback, commit, nil
}

// ===== заявки =====

type fakeAccessRequestRepository struct {
	fakeTransactor
	rows   map[int64]model.AccessRequest
	nextID int64
}

func newFakeAccessRequestRepository() *fakeAccessRequestRepository {
	return &fakeAccessRequestRepository{
		fakeTransactor: fakeTransactor{mu: &sync.Mutex{}},
		rows:           map[int64]model.AccessRequest{},
	}
}

func (r *fakeAccessRequestRepository) Create(ctx context.Context, exec sqlx.ExtContext, request *model.AccessRequest) (*model.AccessRequest, error) {
	r.nextID++
	created := *request
	created.ID = r.nextID
	apply(exec, func() { r.rows[created.ID] = created })
	return &created, nil
}

func (r *fakeAccessRequestRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.AccessRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, model.ErrRequestNotFound
	}
	return &row, nil
}

func (r *fakeAccessRequestRepository) GetForUpdate(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.AccessRequest, error) {
	return r.GetByID(ctx, exec, id)
}

func (r *fakeAccessRequestRepository) Update(ctx context.Context, exec sqlx.ExtContext, request *model.AccessRequest) error {
	if _, ok := r.rows[request.ID]; !ok {
		return model.ErrRequestNotFound
	}
	updated := *request
	apply(exec, func() { r.rows[updated.ID] = updated })
	return nil
}

func (r *fakeAccessRequestRepository) ListByReceiver(ctx context.Context, exec sqlx.ExtContext, receiverUserID int64) ([]model.AccessRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	requests := []model.AccessRequest{}
	for _, row := range r.rows {
		if row.ReceiverUserID == receiverUserID {
			requests = append(requests, row)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID > requests[j].ID })
	return requests, nil
}

func (r *fakeAccessRequestRepository) GetByReceiver(ctx context.Context, exec sqlx.ExtContext, id int64, receiverUserID int64) (*model.AccessRequest, error) {
	row, err := r.GetByID(ctx, exec, id)
	if err != nil {
		return nil, err
	}
	if row.ReceiverUserID != receiverUserID {
		return nil, model.ErrRequestNotFound
	}
	return row, nil
}

func (r *fakeAccessRequestRepository) get(id int64) model.AccessRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id]
}

// ===== секретные ссылки =====

type fakeSecretLinkRepository struct {
	fakeTransactor
	rows            map[int64]model.SecretLink
	nextID          int64
	failUpdateToken bool
}

func newFakeSecretLinkRepository() *fakeSecretLinkRepository {
	return &fakeSecretLinkRepository{
		fakeTransactor: fakeTransactor{mu: &sync.Mutex{}},
		rows:           map[int64]model.SecretLink{},
	}
}

func (r *fakeSecretLinkRepository) Create(ctx context.Context, exec sqlx.ExtContext, link *model.SecretLink) (*model.SecretLink, error) {
	r.nextID++
	created := *link
	created.ID = r.nextID
	created.Token = ""
	apply(exec, func() { r.rows[created.ID] = created })
	return &created, nil
}

func (r *fakeSecretLinkRepository) UpdateToken(ctx context.Context, exec sqlx.ExtContext, id int64, token string) error {
	if r.failUpdateToken {
		return errors.New("connection reset")
	}
	apply(exec, func() {
		row := r.rows[id]
		row.Token = token
		r.rows[id] = row
	})
	return nil
}

func (r *fakeSecretLinkRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.SecretLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, model.ErrLinkNotFound
	}
	return &row, nil
}

func (r *fakeSecretLinkRepository) Revoke(ctx context.Context, exec sqlx.ExtContext, id int64, revokedAt time.Time) (bool, error) {
	row, ok := r.rows[id]
	if !ok || row.RevokedAt != nil {
		return false, nil
	}
	apply(exec, func() {
		row := r.rows[id]
		row.RevokedAt = &revokedAt
		r.rows[id] = row
	})
	return true, nil
}

func (r *fakeSecretLinkRepository) ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUserID int64) ([]model.SecretLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	links := []model.SecretLink{}
	for _, row := range r.rows {
		if row.OwnerUserID == ownerUserID && row.Token != "" {
			links = append(links, row)
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].ID > links[j].ID })
	return links, nil
}

func (r *fakeSecretLinkRepository) GetByOwner(ctx context.Context, exec sqlx.ExtContext, id int64, ownerUserID int64) (*model.SecretLink, error) {
	row, err := r.GetByID(ctx, exec, id)
	if err != nil {
		return nil, err
	}
	if row.OwnerUserID != ownerUserID {
		return nil, model.ErrLinkNotFound
	}
	return row, nil
}

func (r *fakeSecretLinkRepository) get(id int64) (model.SecretLink, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	return row, ok
}

// ===== моки коллабораторов =====

type MockMailer struct{ mock.Mock }

func (m *MockMailer) Send(ctx context.Context, message model.MailMessage) error {
	return m.Called(ctx, message).Error(0)
}

func (m *MockMailer) sent() []model.MailMessage {
	messages := []model.MailMessage{}
	for _, call := range m.Calls {
		if call.Method == "Send" {
			messages = append(messages, call.Arguments.Get(1).(model.MailMessage))
		}
	}
	return messages
}

type MockRecordResolver struct{ mock.Mock }

func (m *MockRecordResolver) GetRecord(ctx context.Context, id int64) (*model.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
