// Package seed loads a small demo dataset into an empty deployment.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	catalogmodels "fittrack/internal/catalog/models"
	identitymodels "fittrack/internal/identity/models"
	progressmodels "fittrack/internal/progress/models"
	schedulemodels "fittrack/internal/schedule/models"
	"fittrack/pkg/domain"
	"fittrack/pkg/requestcontext"
)

type Identity interface {
	Register(ctx context.Context, req *identitymodels.RegisterRequest) (*identitymodels.User, error)
}

type UserCounter interface {
	Count(ctx context.Context) (int, error)
}

// TemplateWriter bypasses the catalog's admin-only rule so personal
// templates can be owned by ordinary users.
type TemplateWriter interface {
	Create(ctx context.Context, t *catalogmodels.Template) error
}

type Scheduler interface {
	Schedule(ctx context.Context, userID domain.UserID, req *schedulemodels.ScheduleRequest) (*schedulemodels.DailyWorkout, error)
	Complete(ctx context.Context, userID domain.UserID, id domain.WorkoutID, req *schedulemodels.CompleteRequest) (*schedulemodels.DailyWorkout, error)
}

type WeightLog interface {
	LogWeight(ctx context.Context, userID domain.UserID, req *progressmodels.LogWeightRequest) (*progressmodels.Entry, error)
}

type Deps struct {
	Users     UserCounter
	Identity  Identity
	Templates TemplateWriter
	Schedule  Scheduler
	Progress  WeightLog
	Logger    *slog.Logger
}

// Run seeds only when no user exists yet. The first registered account is
// the admin, so the accounts are created in order.
func Run(ctx context.Context, d Deps) error {
	count, err := d.Users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		d.Logger.InfoContext(ctx, "demo data skipped, users already present", "users", count)
		return nil
	}

	accounts := make([]*identitymodels.User, 0, len(demoUsers))
	for _, u := range demoUsers {
		user, err := d.Identity.Register(ctx, &identitymodels.RegisterRequest{
			Username: u.username, Email: u.email, Password: u.password,
		})
		if err != nil {
			return fmt.Errorf("register %s: %w", u.username, err)
		}
		accounts = append(accounts, user)
	}
	admin, user1 := accounts[0], accounts[1]

	templates := demoTemplates(admin.ID, user1.ID, requestcontext.Now(ctx))
	for _, t := range templates {
		if err := d.Templates.Create(ctx, t); err != nil {
			return fmt.Errorf("create template %q: %w", t.Name, err)
		}
	}

	for _, p := range demoWeights {
		weight := p.weight
		if _, err := d.Progress.LogWeight(ctx, user1.ID, &progressmodels.LogWeightRequest{Weight: &weight, Date: p.date}); err != nil {
			return fmt.Errorf("log weight %s: %w", p.date, err)
		}
	}

	if err := seedWorkouts(ctx, d.Schedule, user1.ID, templates[0], templates[3]); err != nil {
		return err
	}

	d.Logger.InfoContext(ctx, "demo data seeded",
		"users", len(accounts),
		"templates", len(templates),
	)
	return nil
}

func seedWorkouts(ctx context.Context, s Scheduler, userID domain.UserID, done, upcoming *catalogmodels.Template) error {
	completed, err := s.Schedule(ctx, userID, &schedulemodels.ScheduleRequest{
		TemplateID: done.ID.String(), Date: "2025-07-01",
	})
	if err != nil {
		return fmt.Errorf("schedule demo workout: %w", err)
	}
	bench, incline := 60.0, 20.0
	duration := 3600
	exercises := domain.CloneExercises(done.Exercises[:2])
	exercises[0].ActualWeight, exercises[0].ActualSetsReps = &bench, "4x10"
	exercises[1].ActualWeight, exercises[1].ActualSetsReps = &incline, "3x12"
	if _, err := s.Complete(ctx, userID, completed.ID, &schedulemodels.CompleteRequest{
		Exercises: exercises, DurationSeconds: &duration,
	}); err != nil {
		return fmt.Errorf("complete demo workout: %w", err)
	}

	if _, err := s.Schedule(ctx, userID, &schedulemodels.ScheduleRequest{
		TemplateID: upcoming.ID.String(), Date: "2025-07-03",
	}); err != nil {
		return fmt.Errorf("schedule demo workout: %w", err)
	}
	return nil
}
