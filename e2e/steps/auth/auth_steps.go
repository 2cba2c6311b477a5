package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string) error
	GetLastStatusCode() int
	GetResponseField(field string) (interface{}, error)
	GetAccessToken() string
	SetAccessToken(token string)
	Remember(key, value string)
	Recall(key string) (string, error)
}

// RegisterSteps registers authentication-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^I am logged in as the demo admin$`, steps.loginAsDemoAdmin)
	ctx.Step(`^I log in with email "([^"]*)" and password "([^"]*)"$`, steps.login)
	ctx.Step(`^a fresh user "([^"]*)" is registered and logged in$`, steps.registerFreshUser)
	ctx.Step(`^I log out$`, steps.logout)
	ctx.Step(`^I request my profile$`, steps.requestProfile)
	ctx.Step(`^I use the access token "([^"]*)"$`, steps.useToken)
	ctx.Step(`^I switch to "([^"]*)"$`, steps.switchTo)
}

type authSteps struct {
	tc TestContext
}

func (s *authSteps) loginAsDemoAdmin(ctx context.Context) error {
	if err := s.login(ctx, "admin@example.com", "admin"); err != nil {
		return err
	}
	if s.tc.GetLastStatusCode() != 200 {
		return fmt.Errorf("demo admin login failed with %d; is SEED_DEMO_DATA enabled?", s.tc.GetLastStatusCode())
	}
	s.tc.Remember("token:admin", s.tc.GetAccessToken())
	return nil
}

func (s *authSteps) login(ctx context.Context, email, password string) error {
	s.tc.SetAccessToken("")
	err := s.tc.POST("/login", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	if s.tc.GetLastStatusCode() != 200 {
		return nil
	}
	token, err := s.tc.GetResponseField("token")
	if err != nil {
		return err
	}
	s.tc.SetAccessToken(token.(string))
	return nil
}

// registerFreshUser suffixes the name so scenarios can rerun against the
// same server.
func (s *authSteps) registerFreshUser(ctx context.Context, name string) error {
	username := fmt.Sprintf("%s-%d", name, time.Now().UnixNano())
	email := username + "@e2e.local"
	password := "e2e-password"

	s.tc.SetAccessToken("")
	if err := s.tc.POST("/register", map[string]interface{}{
		"username": username,
		"email":    email,
		"password": password,
	}); err != nil {
		return err
	}
	if s.tc.GetLastStatusCode() != 201 {
		return fmt.Errorf("register %s: status %d", username, s.tc.GetLastStatusCode())
	}
	if err := s.login(ctx, email, password); err != nil {
		return err
	}
	s.tc.Remember("token:"+name, s.tc.GetAccessToken())
	return nil
}

func (s *authSteps) logout(ctx context.Context) error {
	return s.tc.POST("/logout", nil)
}

func (s *authSteps) requestProfile(ctx context.Context) error {
	return s.tc.GET("/my_profile_data")
}

func (s *authSteps) useToken(ctx context.Context, token string) error {
	s.tc.SetAccessToken(token)
	return nil
}

// switchTo resumes acting as a user logged in earlier in the scenario.
func (s *authSteps) switchTo(ctx context.Context, name string) error {
	token, err := s.tc.Recall("token:" + name)
	if err != nil {
		return err
	}
	s.tc.SetAccessToken(token)
	return nil
}
