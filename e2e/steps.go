package e2e

import (
	"github.com/cucumber/godog"

	"fittrack/e2e/steps/auth"
	"fittrack/e2e/steps/common"
	"fittrack/e2e/steps/workouts"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Background, generic requests, assertions
	common.RegisterSteps(ctx, tc)

	// Registration and login
	auth.RegisterSteps(ctx, tc)

	// Templates, schedule and progress
	workouts.RegisterSteps(ctx, tc)
}
