package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
)

func TestVisibility(t *testing.T) {
	owner := domain.NewUserID()
	other := domain.NewUserID()

	personal := &Template{OwnerID: owner}
	global := &Template{OwnerID: owner, IsGlobal: true}

	assert.True(t, personal.VisibleTo(owner))
	assert.False(t, personal.VisibleTo(other))
	assert.True(t, global.VisibleTo(other))
}

func TestMutableBy(t *testing.T) {
	owner := domain.Principal{UserID: domain.NewUserID(), Role: domain.RoleUser}
	stranger := domain.Principal{UserID: domain.NewUserID(), Role: domain.RoleUser}
	admin := domain.Principal{UserID: domain.NewUserID(), Role: domain.RoleAdmin}

	personal := &Template{OwnerID: owner.UserID}
	global := &Template{OwnerID: owner.UserID, IsGlobal: true}

	assert.True(t, personal.MutableBy(owner))
	assert.False(t, personal.MutableBy(stranger))
	assert.True(t, personal.MutableBy(admin))

	assert.False(t, global.MutableBy(owner), "owners lose write access once a template is global")
	assert.True(t, global.MutableBy(admin))
}

func TestFilterEquipmentIsSuperset(t *testing.T) {
	tpl := &Template{Equipment: []string{"Barbell", "Dumbbells"}}

	assert.True(t, Filter{Equipment: []string{"Barbell"}}.Matches(tpl))
	assert.True(t, Filter{Equipment: []string{"Dumbbells", "Barbell"}}.Matches(tpl))
	assert.False(t, Filter{Equipment: []string{"Barbell", "Machine"}}.Matches(tpl))
	assert.True(t, Filter{}.Matches(tpl))
}

func TestFilterScalarAxes(t *testing.T) {
	tpl := &Template{
		MuscleGroups:     []string{"Legs", "Glutes"},
		Goal:             "Strength",
		Difficulty:       "Intermediate",
		DurationCategory: "45-60 min",
	}

	assert.True(t, Filter{MuscleGroup: "Legs", Goal: "Strength"}.Matches(tpl))
	assert.False(t, Filter{MuscleGroup: "Chest"}.Matches(tpl))
	assert.False(t, Filter{Goal: "Endurance"}.Matches(tpl))
	assert.False(t, Filter{Difficulty: "Beginner"}.Matches(tpl))
	assert.False(t, Filter{DurationCategory: "15-30 min"}.Matches(tpl))
}

func TestCreateRequestValidate(t *testing.T) {
	req := CreateRequest{Name: "   "}
	req.Normalize()
	assert.True(t, dErrors.HasCode(req.Validate(), dErrors.CodeInvalidInput))

	req = CreateRequest{Name: "Leg Day", Exercises: []domain.Exercise{{Name: ""}}}
	req.Normalize()
	assert.True(t, dErrors.HasCode(req.Validate(), dErrors.CodeInvalidInput))

	req = CreateRequest{Name: " Leg Day ", Equipment: []string{"Barbell", " Barbell"}}
	req.Normalize()
	require.NoError(t, req.Validate())
	assert.Equal(t, "Leg Day", req.Name)
	assert.Equal(t, []string{"Barbell"}, req.Equipment)
}

func TestUpdateRequestApplyIsPartial(t *testing.T) {
	tpl := &Template{
		Name:        "Leg Day",
		Description: "squats",
		Goal:        "Strength",
		Exercises:   []domain.Exercise{{Name: "Squat", Sets: 5, Reps: "5"}},
	}
	desc := "squats and lunges"
	req := UpdateRequest{Description: &desc}
	req.Normalize()
	require.NoError(t, req.Validate())
	req.Apply(tpl)

	assert.Equal(t, "Leg Day", tpl.Name)
	assert.Equal(t, "squats and lunges", tpl.Description)
	assert.Equal(t, "Strength", tpl.Goal)
	assert.Len(t, tpl.Exercises, 1)
}

func TestUpdateRequestRejectsEmptyName(t *testing.T) {
	empty := " "
	req := UpdateRequest{Name: &empty}
	req.Normalize()
	assert.True(t, dErrors.HasCode(req.Validate(), dErrors.CodeInvalidInput))
}

func TestCloneDoesNotShareSlices(t *testing.T) {
	tpl := &Template{Exercises: []domain.Exercise{{Name: "Squat"}}, Equipment: []string{"Barbell"}}
	c := tpl.Clone()
	c.Exercises[0].Name = "Lunge"
	c.Equipment[0] = "Machine"

	assert.Equal(t, "Squat", tpl.Exercises[0].Name)
	assert.Equal(t, "Barbell", tpl.Equipment[0])
}
