package testutil

import "testing"

// Given, When and Then name nested subtests after the scenario phase they
// cover. A failing phase does not stop its siblings.
func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	phase(t, "Given", desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	phase(t, "When", desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	phase(t, "Then", desc, fn)
}

// Step is for sequential scenarios: later steps read state earlier ones
// wrote, so the parent stops at the first failing step.
func Step(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	if !phase(t, "", desc, fn) {
		t.FailNow()
	}
}

func phase(t *testing.T, keyword, desc string, fn func(t *testing.T)) bool {
	t.Helper()
	name := desc
	if keyword != "" {
		name = keyword + " " + desc
	}
	return t.Run(name, fn)
}
