package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"fittrack/internal/catalog/models"
	"fittrack/internal/catalog/service/mocks"
	"fittrack/internal/platform/metrics"
	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
	"fittrack/pkg/platform/sentinel"
)

type CatalogServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	metrics *metrics.Metrics
	svc     *Service
	ctx     context.Context

	admin domain.Principal
	owner domain.Principal
	other domain.Principal
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceSuite))
}

func (s *CatalogServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.svc = New(s.store, WithMetrics(s.metrics))
	s.ctx = context.Background()

	s.admin = domain.Principal{UserID: domain.NewUserID(), Role: domain.RoleAdmin}
	s.owner = domain.Principal{UserID: domain.NewUserID(), Role: domain.RoleUser}
	s.other = domain.Principal{UserID: domain.NewUserID(), Role: domain.RoleUser}
}

func (s *CatalogServiceSuite) personal() *models.Template {
	return &models.Template{ID: domain.NewTemplateID(), OwnerID: s.owner.UserID, Name: "My Core"}
}

func (s *CatalogServiceSuite) global() *models.Template {
	return &models.Template{ID: domain.NewTemplateID(), OwnerID: s.admin.UserID, Name: "Leg Day", IsGlobal: true}
}

func (s *CatalogServiceSuite) TestCreate() {
	s.Run("admin creates and becomes owner", func() {
		s.store.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, t *models.Template) error {
				s.Equal(s.admin.UserID, t.OwnerID)
				s.Equal("Leg Day", t.Name)
				s.True(t.IsGlobal)
				s.False(t.ID.IsNil())
				return nil
			})

		t, err := s.svc.Create(s.ctx, s.admin, &models.CreateRequest{Name: "Leg Day", IsGlobal: true})
		s.Require().NoError(err)
		s.Equal("Leg Day", t.Name)
		s.Equal(1.0, promtest.ToFloat64(s.metrics.TemplatesCreated))
	})

	s.Run("non-admin is forbidden even for a personal template", func() {
		_, err := s.svc.Create(s.ctx, s.owner, &models.CreateRequest{Name: "Mine"})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("empty name is invalid input", func() {
		_, err := s.svc.Create(s.ctx, s.admin, &models.CreateRequest{Name: ""})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("store failure is internal", func() {
		s.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
		_, err := s.svc.Create(s.ctx, s.admin, &models.CreateRequest{Name: "X"})
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *CatalogServiceSuite) TestGet() {
	personal := s.personal()

	s.Run("owner reads personal template", func() {
		s.store.EXPECT().FindByID(gomock.Any(), personal.ID).Return(personal, nil)
		t, err := s.svc.Get(s.ctx, s.owner.UserID, personal.ID)
		s.Require().NoError(err)
		s.Equal(personal.ID, t.ID)
	})

	s.Run("stranger is forbidden", func() {
		s.store.EXPECT().FindByID(gomock.Any(), personal.ID).Return(personal, nil)
		_, err := s.svc.Get(s.ctx, s.other.UserID, personal.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("global is readable by anyone", func() {
		global := s.global()
		s.store.EXPECT().FindByID(gomock.Any(), global.ID).Return(global, nil)
		_, err := s.svc.Get(s.ctx, s.other.UserID, global.ID)
		s.NoError(err)
	})

	s.Run("missing is not found", func() {
		id := domain.NewTemplateID()
		s.store.EXPECT().FindByID(gomock.Any(), id).Return(nil, sentinel.ErrNotFound)
		_, err := s.svc.Get(s.ctx, s.owner.UserID, id)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *CatalogServiceSuite) TestUpdate() {
	name := "Renamed"

	s.Run("owner updates personal template", func() {
		personal := s.personal()
		s.store.EXPECT().FindByID(gomock.Any(), personal.ID).Return(personal, nil)
		s.store.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, t *models.Template) error {
				s.Equal("Renamed", t.Name)
				return nil
			})
		_, err := s.svc.Update(s.ctx, s.owner, personal.ID, &models.UpdateRequest{Name: &name})
		s.NoError(err)
	})

	s.Run("owner cannot touch a global template", func() {
		global := s.global()
		global.OwnerID = s.owner.UserID
		s.store.EXPECT().FindByID(gomock.Any(), global.ID).Return(global, nil)
		_, err := s.svc.Update(s.ctx, s.owner, global.ID, &models.UpdateRequest{Name: &name})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("stranger cannot update personal template", func() {
		personal := s.personal()
		s.store.EXPECT().FindByID(gomock.Any(), personal.ID).Return(personal, nil)
		_, err := s.svc.Update(s.ctx, s.other, personal.ID, &models.UpdateRequest{Name: &name})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("admin updates any template", func() {
		personal := s.personal()
		s.store.EXPECT().FindByID(gomock.Any(), personal.ID).Return(personal, nil)
		s.store.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		_, err := s.svc.Update(s.ctx, s.admin, personal.ID, &models.UpdateRequest{Name: &name})
		s.NoError(err)
	})

	s.Run("owner may publish as global and then loses edit rights", func() {
		personal := s.personal()
		global := true
		var stored *models.Template
		s.store.EXPECT().FindByID(gomock.Any(), personal.ID).Return(personal, nil)
		s.store.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, t *models.Template) error {
				stored = t.Clone()
				return nil
			})
		updated, err := s.svc.Update(s.ctx, s.owner, personal.ID, &models.UpdateRequest{IsGlobal: &global})
		s.Require().NoError(err)
		s.True(updated.IsGlobal)
		s.Require().NotNil(stored)
		s.True(stored.IsGlobal)

		s.store.EXPECT().FindByID(gomock.Any(), personal.ID).Return(stored, nil)
		_, err = s.svc.Update(s.ctx, s.owner, personal.ID, &models.UpdateRequest{Name: &name})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("empty name is invalid input", func() {
		personal := s.personal()
		empty := ""
		s.store.EXPECT().FindByID(gomock.Any(), personal.ID).Return(personal, nil)
		_, err := s.svc.Update(s.ctx, s.owner, personal.ID, &models.UpdateRequest{Name: &empty})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("missing template is not found", func() {
		id := domain.NewTemplateID()
		s.store.EXPECT().FindByID(gomock.Any(), id).Return(nil, sentinel.ErrNotFound)
		_, err := s.svc.Update(s.ctx, s.admin, id, &models.UpdateRequest{Name: &name})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *CatalogServiceSuite) TestDelete() {
	s.Run("owner deletes personal template", func() {
		personal := s.personal()
		s.store.EXPECT().FindByID(gomock.Any(), personal.ID).Return(personal, nil)
		s.store.EXPECT().Delete(gomock.Any(), personal.ID).Return(nil)
		s.NoError(s.svc.Delete(s.ctx, s.owner, personal.ID))
	})

	s.Run("non-admin cannot delete global", func() {
		global := s.global()
		s.store.EXPECT().FindByID(gomock.Any(), global.ID).Return(global, nil)
		err := s.svc.Delete(s.ctx, s.other, global.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("admin deletes global", func() {
		global := s.global()
		s.store.EXPECT().FindByID(gomock.Any(), global.ID).Return(global, nil)
		s.store.EXPECT().Delete(gomock.Any(), global.ID).Return(nil)
		s.NoError(s.svc.Delete(s.ctx, s.admin, global.ID))
	})

	s.Run("concurrent delete surfaces as not found", func() {
		personal := s.personal()
		s.store.EXPECT().FindByID(gomock.Any(), personal.ID).Return(personal, nil)
		s.store.EXPECT().Delete(gomock.Any(), personal.ID).Return(sentinel.ErrNotFound)
		err := s.svc.Delete(s.ctx, s.owner, personal.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *CatalogServiceSuite) TestListPassesFilterThrough() {
	filter := models.Filter{Equipment: []string{"Barbell"}}
	s.store.EXPECT().List(gomock.Any(), s.owner.UserID, filter).Return([]*models.Template{s.global()}, nil)

	out, err := s.svc.List(s.ctx, s.owner.UserID, filter)
	s.Require().NoError(err)
	s.Len(out, 1)
}
