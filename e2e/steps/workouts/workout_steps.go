package workouts

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string) error
	DELETE(path string) error
	GetLastStatusCode() int
	GetLastResponseBody() []byte
	GetResponseField(field string) (interface{}, error)
	GetResponseList() ([]map[string]interface{}, error)
	Remember(key, value string)
	Recall(key string) (string, error)
}

// RegisterSteps registers template, schedule and progress step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &workoutSteps{tc: tc}

	ctx.Step(`^I create a global template "([^"]*)"$`, steps.createGlobalTemplate)
	ctx.Step(`^I delete the template$`, steps.deleteTemplate)
	ctx.Step(`^I schedule the template for "([^"]*)"$`, steps.scheduleTemplate)
	ctx.Step(`^I complete the scheduled workout with duration (\d+)$`, steps.completeWorkout)
	ctx.Step(`^I reset the scheduled workout$`, steps.resetWorkout)
	ctx.Step(`^I fetch the scheduled workout$`, steps.fetchWorkout)
	ctx.Step(`^I log my weight as ([\d.]+) on "([^"]*)"$`, steps.logWeight)
	ctx.Step(`^I reset all my data$`, steps.resetAllData)
	ctx.Step(`^the workout status should be "([^"]*)"$`, steps.workoutStatusShouldBe)
	ctx.Step(`^the workout should be named "([^"]*)"$`, steps.workoutNameShouldBe)
	ctx.Step(`^my progress for "([^"]*)" should show (\d+) completed workouts?$`, steps.progressShouldShow)
	ctx.Step(`^my progress should be empty$`, steps.progressShouldBeEmpty)
}

type workoutSteps struct {
	tc TestContext
}

func (s *workoutSteps) createGlobalTemplate(ctx context.Context, name string) error {
	err := s.tc.POST("/workout_templates", map[string]interface{}{
		"name":          name,
		"description":   "created by e2e",
		"is_global":     true,
		"muscle_groups": []string{"Legs"},
		"equipment":     []string{"Barbell"},
		"exercises": []map[string]interface{}{
			{"name": "Squat", "sets": 5, "reps": "5"},
		},
	})
	if err != nil {
		return err
	}
	return s.rememberID("template")
}

func (s *workoutSteps) deleteTemplate(ctx context.Context) error {
	id, err := s.tc.Recall("template")
	if err != nil {
		return err
	}
	return s.tc.DELETE("/workout_templates/" + id)
}

func (s *workoutSteps) scheduleTemplate(ctx context.Context, date string) error {
	id, err := s.tc.Recall("template")
	if err != nil {
		return err
	}
	if err := s.tc.POST("/daily_workouts", map[string]interface{}{
		"template_id": id,
		"date":        date,
	}); err != nil {
		return err
	}
	return s.rememberID("workout")
}

func (s *workoutSteps) completeWorkout(ctx context.Context, duration int) error {
	id, err := s.tc.Recall("workout")
	if err != nil {
		return err
	}
	return s.tc.POST("/daily_workouts/"+id+"/complete", map[string]interface{}{
		"duration_seconds": duration,
	})
}

func (s *workoutSteps) resetWorkout(ctx context.Context) error {
	id, err := s.tc.Recall("workout")
	if err != nil {
		return err
	}
	return s.tc.POST("/daily_workouts/"+id+"/reset_status", nil)
}

func (s *workoutSteps) fetchWorkout(ctx context.Context) error {
	id, err := s.tc.Recall("workout")
	if err != nil {
		return err
	}
	return s.tc.GET("/daily_workouts/" + id)
}

func (s *workoutSteps) logWeight(ctx context.Context, weight float64, date string) error {
	return s.tc.POST("/my_progress", map[string]interface{}{
		"weight": weight,
		"date":   date,
	})
}

func (s *workoutSteps) resetAllData(ctx context.Context) error {
	return s.tc.DELETE("/reset_my_data")
}

func (s *workoutSteps) workoutStatusShouldBe(ctx context.Context, expected string) error {
	return s.fieldShouldBe("status", expected)
}

func (s *workoutSteps) workoutNameShouldBe(ctx context.Context, expected string) error {
	return s.fieldShouldBe("template_name", expected)
}

func (s *workoutSteps) progressShouldShow(ctx context.Context, date string, expected int) error {
	if err := s.tc.GET("/my_progress"); err != nil {
		return err
	}
	entries, err := s.tc.GetResponseList()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e["date"] != date {
			continue
		}
		got, _ := e["workouts_completed"].(float64)
		if int(got) != expected {
			return fmt.Errorf("expected %d completed workouts on %s, got %v", expected, date, e["workouts_completed"])
		}
		return nil
	}
	if expected == 0 {
		return nil
	}
	return fmt.Errorf("no progress entry for %s: %s", date, s.tc.GetLastResponseBody())
}

func (s *workoutSteps) progressShouldBeEmpty(ctx context.Context) error {
	if err := s.tc.GET("/my_progress"); err != nil {
		return err
	}
	entries, err := s.tc.GetResponseList()
	if err != nil {
		return err
	}
	if len(entries) != 0 {
		return fmt.Errorf("expected no progress entries, got %d", len(entries))
	}
	return nil
}

func (s *workoutSteps) rememberID(key string) error {
	if s.tc.GetLastStatusCode() != 201 {
		return fmt.Errorf("create %s: status %d (body: %s)", key, s.tc.GetLastStatusCode(), s.tc.GetLastResponseBody())
	}
	id, err := s.tc.GetResponseField("id")
	if err != nil {
		return err
	}
	s.tc.Remember(key, id.(string))
	return nil
}

func (s *workoutSteps) fieldShouldBe(field, expected string) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if v != expected {
		return fmt.Errorf("expected %s %q, got %v", field, expected, v)
	}
	return nil
}
