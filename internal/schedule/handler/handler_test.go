package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	catalogmodels "fittrack/internal/catalog/models"
	"fittrack/internal/schedule/models"
	"fittrack/internal/schedule/service"
	"fittrack/internal/storage"
	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
	"fittrack/pkg/testutil"
)

type tokenAuth map[string]domain.Principal

func (a tokenAuth) Authenticate(r *http.Request) (domain.Principal, error) {
	p, ok := a[r.Header.Get(testutil.HeaderAccessToken)]
	if !ok {
		return domain.Principal{}, dErrors.New(dErrors.CodeUnauthorized, "token is missing")
	}
	return p, nil
}

// fixedTemplates serves a single global template.
type fixedTemplates struct {
	template *catalogmodels.Template
}

func (f fixedTemplates) Get(_ context.Context, _ domain.UserID, id domain.TemplateID) (*catalogmodels.Template, error) {
	if id != f.template.ID {
		return nil, dErrors.New(dErrors.CodeNotFound, "template not found")
	}
	return f.template.Clone(), nil
}

type HandlerSuite struct {
	suite.Suite
	router     http.Handler
	tracking   *storage.InMemoryTracking
	templateID domain.TemplateID
	bob        domain.UserID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	s.tracking = storage.NewInMemoryTracking()
	s.bob = domain.NewUserID()
	tmpl := &catalogmodels.Template{
		ID:        domain.NewTemplateID(),
		Name:      "Leg Day",
		IsGlobal:  true,
		Exercises: []domain.Exercise{{Name: "Squat", Sets: 5, Reps: "5"}},
	}
	s.templateID = tmpl.ID

	auth := tokenAuth{
		"bob":   {UserID: s.bob, Role: domain.RoleUser},
		"carol": {UserID: domain.NewUserID(), Role: domain.RoleUser},
	}
	svc := service.New(s.tracking.Workouts, fixedTemplates{template: tmpl}, s.tracking)

	r := chi.NewRouter()
	New(svc, auth, logger).Register(r)
	s.router = r
}

func (s *HandlerSuite) do(token string, req *http.Request) *httptest.ResponseRecorder {
	return testutil.DoRequest(s.router, testutil.WithAccessToken(req, token))
}

func (s *HandlerSuite) scheduleFor(token, date string) string {
	rr := s.do(token, testutil.NewJSONRequest(s.T(), http.MethodPost, "/daily_workouts",
		map[string]string{"template_id": s.templateID.String(), "date": date}))
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	return (*testutil.UnmarshalResponse[map[string]string](s.T(), rr))["id"]
}

func (s *HandlerSuite) TestScheduleValidation() {
	s.Run("missing date is 400", func() {
		rr := s.do("bob", testutil.NewJSONRequest(s.T(), http.MethodPost, "/daily_workouts",
			map[string]string{"template_id": s.templateID.String()}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})

	s.Run("unknown template is 404", func() {
		rr := s.do("bob", testutil.NewJSONRequest(s.T(), http.MethodPost, "/daily_workouts",
			map[string]string{"template_id": domain.NewTemplateID().String(), "date": "2025-01-10"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

func (s *HandlerSuite) TestLifecycle() {
	id := s.scheduleFor("bob", "2025-01-10")

	rr := s.do("bob", testutil.NewRequest(s.T(), http.MethodGet, "/daily_workouts/"+id))
	testutil.AssertStatusOK(s.T(), rr)
	workout := testutil.UnmarshalResponse[models.DailyWorkout](s.T(), rr)
	s.Equal(models.StatusUpcoming, workout.Status)
	s.Equal(domain.Date("2025-01-10"), workout.Date)
	s.Equal("Leg Day", workout.TemplateName)

	rr = s.do("bob", testutil.NewJSONRequest(s.T(), http.MethodPost, "/daily_workouts/"+id+"/complete",
		map[string]any{"duration_seconds": 1800}))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertMessage(s.T(), rr, "workout completed")

	rr = s.do("bob", testutil.NewJSONRequest(s.T(), http.MethodPost, "/daily_workouts/"+id+"/complete",
		map[string]any{"duration_seconds": 60}))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_state")

	rr = s.do("bob", testutil.NewRequest(s.T(), http.MethodGet, "/daily_workouts/"+id))
	workout = testutil.UnmarshalResponse[models.DailyWorkout](s.T(), rr)
	s.Equal(models.StatusCompleted, workout.Status)
	s.Require().NotNil(workout.DurationSeconds)
	s.Equal(1800, *workout.DurationSeconds)

	rr = s.do("bob", testutil.NewRequest(s.T(), http.MethodPost, "/daily_workouts/"+id+"/reset_status"))
	testutil.AssertStatusOK(s.T(), rr)

	rr = s.do("bob", testutil.NewRequest(s.T(), http.MethodPost, "/daily_workouts/"+id+"/reset_status"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_state")

	entries, err := s.tracking.Progress.ListByUser(context.Background(), s.bob)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(0, entries[0].WorkoutsCompleted)
}

func (s *HandlerSuite) TestCompleteWithEmptyBody() {
	id := s.scheduleFor("bob", "2025-01-10")
	rr := s.do("bob", testutil.NewRequest(s.T(), http.MethodPost, "/daily_workouts/"+id+"/complete"))
	testutil.AssertStatusOK(s.T(), rr)
}

func (s *HandlerSuite) TestCompleteWithChunkedEmptyBody() {
	id := s.scheduleFor("bob", "2025-01-10")
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/daily_workouts/"+id+"/complete", "")
	req.ContentLength = -1
	rr := s.do("bob", req)
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertMessage(s.T(), rr, "workout completed")
}

func (s *HandlerSuite) TestOtherUsersSeeNotFound() {
	id := s.scheduleFor("bob", "2025-01-10")

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodGet, "/daily_workouts/" + id},
		{http.MethodDelete, "/daily_workouts/" + id},
		{http.MethodPost, "/daily_workouts/" + id + "/complete"},
		{http.MethodPost, "/daily_workouts/" + id + "/reset_status"},
	} {
		rr := s.do("carol", testutil.NewRequest(s.T(), tc.method, tc.path))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	}

	rr := s.do("carol", testutil.NewRequest(s.T(), http.MethodGet, "/daily_workouts"))
	testutil.AssertStatusOK(s.T(), rr)
	s.JSONEq(`[]`, rr.Body.String())
}

func (s *HandlerSuite) TestDeleteAndMalformedID() {
	id := s.scheduleFor("bob", "2025-01-10")

	rr := s.do("bob", testutil.NewRequest(s.T(), http.MethodDelete, "/daily_workouts/"+id))
	testutil.AssertStatusOK(s.T(), rr)

	rr = s.do("bob", testutil.NewRequest(s.T(), http.MethodGet, "/daily_workouts/"+id))
	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)

	rr = s.do("bob", testutil.NewRequest(s.T(), http.MethodGet, "/daily_workouts/xyz"))
	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
}

func (s *HandlerSuite) TestListOrder() {
	s.scheduleFor("bob", "2025-01-09")
	s.scheduleFor("bob", "2025-01-12")

	rr := s.do("bob", testutil.NewRequest(s.T(), http.MethodGet, "/daily_workouts"))
	testutil.AssertStatusOK(s.T(), rr)
	list := *testutil.UnmarshalResponse[[]models.DailyWorkout](s.T(), rr)
	s.Require().Len(list, 2)
	s.Equal(domain.Date("2025-01-12"), list[0].Date)
}
