package account

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tripsee/internal/domain"
	"tripsee/internal/model"
)

// DefaultLatency stands in for the round trip to a registration backend.
const DefaultLatency = 1500 * time.Millisecond

// UserStore persists registered users. UserByEmail returns a
// domain.NotFoundError when nobody holds the address.
type UserStore interface {
	UserByEmail(ctx context.Context, email string) (model.User, error)
	InsertUser(ctx context.Context, u model.User) (int64, error)
}

// Service is the simulated registration backend.
type Service struct {
	store    UserStore
	latency  time.Duration
	hashCost int
	now      func() time.Time
}

func NewService(store UserStore, latency time.Duration) *Service {
	return &Service{
		store:    store,
		latency:  latency,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// Register validates reg, waits out the simulated latency and stores the new
// user with a bcrypt hash of the password. Cancelling ctx abandons the call
// before anything is written.
func (s *Service) Register(ctx context.Context, reg Registration) (model.User, error) {
	if err := reg.Validate(); err != nil {
		return model.User{}, err
	}
	reg = reg.Normalized()

	if err := s.wait(ctx); err != nil {
		return model.User{}, domain.ServiceError{Op: "register", Msg: "request cancelled", Err: err}
	}

	_, err := s.store.UserByEmail(ctx, reg.Email)
	switch {
	case err == nil:
		return model.User{}, domain.ServiceError{Op: "register", Msg: "an account with this email already exists"}
	case !domain.IsNotFound(err):
		return model.User{}, domain.ServiceError{Op: "register", Msg: "could not check existing accounts", Err: err}
	}

	hash, err := HashPassword(reg.Password, s.hashCost)
	if err != nil {
		return model.User{}, domain.ServiceError{Op: "register", Msg: "could not secure password", Err: err}
	}

	u := model.User{
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	id, err := s.store.InsertUser(ctx, u)
	if err != nil {
		return model.User{}, domain.ServiceError{Op: "register", Msg: "could not save account", Err: err}
	}
	u.ID = id
	return u, nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func HashPassword(password string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(b), err
}

// ComparePassword returns nil when plain matches the stored hash.
func ComparePassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
