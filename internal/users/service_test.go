package users

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type fakeUserRepo struct {
	users map[uuid.UUID]User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]User)}
}

func (f *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, shared.NotFound("user", id)
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, orgID uuid.UUID, email string) (*User, error) {
	for _, u := range f.users {
		if u.OrgID == orgID && u.Email == email {
			return &u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, u User) (uuid.UUID, error) {
	for _, existing := range f.users {
		if existing.OrgID == u.OrgID && existing.Email == u.Email {
			return uuid.Nil, shared.ErrDuplicate
		}
	}
	u.ID = uuid.New()
	f.users[u.ID] = u
	return u.ID, nil
}

func TestUserCreate(t *testing.T) {
	tenant := shared.Tenant{OrgID: uuid.New()}
	repo := newFakeUserRepo()
	service := NewService(repo)

	created, err := service.Create(context.Background(), tenant, CreateUserRequest{
		Email:     "  Usta@CamFab.Example ",
		Password:  "gizli-sifre-1",
		FirstName: "Ahmet",
		LastName:  "Usta",
	})
	require.NoError(t, err)
	assert.Equal(t, "usta@camfab.example", created.Email)
	assert.True(t, created.Active)
	assert.NotEqual(t, "gizli-sifre-1", created.PasswordHash)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := service.Create(context.Background(), tenant, CreateUserRequest{
			Email:     "usta@camfab.example",
			Password:  "gizli-sifre-2",
			FirstName: "Mehmet",
			LastName:  "Usta",
		})
		assert.True(t, errors.Is(err, shared.ErrDuplicate))
	})
}

func TestAuthenticate(t *testing.T) {
	tenant := shared.Tenant{OrgID: uuid.New()}
	repo := newFakeUserRepo()
	service := NewService(repo)

	_, err := service.Create(context.Background(), tenant, CreateUserRequest{
		Email:     "usta@camfab.example",
		Password:  "gizli-sifre-1",
		FirstName: "Ahmet",
		LastName:  "Usta",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := service.Authenticate(context.Background(), tenant, LoginRequest{
			Email:    "usta@camfab.example",
			Password: "gizli-sifre-1",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ahmet", user.FirstName)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Authenticate(context.Background(), tenant, LoginRequest{
			Email:    "usta@camfab.example",
			Password: "yanlis",
		})
		assert.True(t, errors.Is(err, shared.ErrInvalidCredentials))
	})

	t.Run("unknown email reports the same error", func(t *testing.T) {
		_, err := service.Authenticate(context.Background(), tenant, LoginRequest{
			Email:    "yok@camfab.example",
			Password: "gizli-sifre-1",
		})
		assert.True(t, errors.Is(err, shared.ErrInvalidCredentials))
	})
}
