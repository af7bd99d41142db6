package partners

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type fakePartnerRepo struct {
	partners   map[uuid.UUID]Partner
	lastSearch *string
}

func newFakePartnerRepo() *fakePartnerRepo {
	return &fakePartnerRepo{partners: make(map[uuid.UUID]Partner)}
}

func (f *fakePartnerRepo) Get(_ context.Context, id uuid.UUID) (*Partner, error) {
	p, ok := f.partners[id]
	if !ok {
		return nil, shared.NotFound("partner", id)
	}
	return &p, nil
}

func (f *fakePartnerRepo) List(_ context.Context, orgID uuid.UUID, req ListPartnersRequest) ([]Partner, int, error) {
	f.lastSearch = req.Search
	var result []Partner
	for _, p := range f.partners {
		if p.OrgID == orgID {
			result = append(result, p)
		}
	}
	return result, len(result), nil
}

func (f *fakePartnerRepo) Create(_ context.Context, p Partner) (uuid.UUID, error) {
	for _, existing := range f.partners {
		if p.Email != nil && existing.Email != nil && *existing.Email == *p.Email {
			return uuid.Nil, shared.ErrDuplicate
		}
	}
	p.ID = uuid.New()
	f.partners[p.ID] = p
	return p.ID, nil
}

func (f *fakePartnerRepo) Update(_ context.Context, id uuid.UUID, upd UpdatePartnerRequest) error {
	p, ok := f.partners[id]
	if !ok {
		return shared.NotFound("partner", id)
	}
	if upd.Type != nil {
		p.Type = *upd.Type
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Email != nil {
		p.Email = upd.Email
	}
	f.partners[id] = p
	return nil
}

func (f *fakePartnerRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.partners[id]; !ok {
		return false, nil
	}
	delete(f.partners, id)
	return true, nil
}

func TestPartnerCreateAndUpdate(t *testing.T) {
	tenant := shared.Tenant{OrgID: uuid.New()}
	repo := newFakePartnerRepo()
	service := NewService(repo)

	email := "siparis@camci.example"
	created, err := service.Create(context.Background(), tenant, CreatePartnerRequest{
		Type:  PartnerTypeCustomer,
		Name:  "Işık Cam",
		Email: &email,
	})
	require.NoError(t, err)
	assert.Equal(t, PartnerTypeCustomer, created.Type)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := service.Create(context.Background(), tenant, CreatePartnerRequest{
			Type:  PartnerTypeSupplier,
			Name:  "Başka Cam",
			Email: &email,
		})
		assert.True(t, errors.Is(err, shared.ErrDuplicate))
	})

	t.Run("type patch", func(t *testing.T) {
		both := PartnerTypeBoth
		updated, err := service.Update(context.Background(), created.ID, UpdatePartnerRequest{Type: &both})
		require.NoError(t, err)
		assert.Equal(t, PartnerTypeBoth, updated.Type)
		assert.Equal(t, "Işık Cam", updated.Name)
	})

	t.Run("unknown partner", func(t *testing.T) {
		_, err := service.Update(context.Background(), uuid.New(), UpdatePartnerRequest{})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestPartnerListSearchFolding(t *testing.T) {
	tenant := shared.Tenant{OrgID: uuid.New()}
	repo := newFakePartnerRepo()
	service := NewService(repo)

	// Dotless capital I must fold to dotless lowercase ı, not latin i.
	search := "IŞIK"
	_, _, err := service.List(context.Background(), tenant, ListPartnersRequest{Search: &search})
	require.NoError(t, err)
	require.NotNil(t, repo.lastSearch)
	assert.Equal(t, "ışık", *repo.lastSearch)
}
