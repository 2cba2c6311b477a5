package domain

// Exercise is one entry of a template or a scheduled workout. The Actual*
// fields are only populated on completed workouts.
type Exercise struct {
	Name           string   `json:"name"`
	Sets           int      `json:"sets"`
	Reps           string   `json:"reps"`
	ActualWeight   *float64 `json:"actual_weight,omitempty"`
	ActualSetsReps string   `json:"actual_sets_reps,omitempty"`
}

// CloneExercises deep-copies exercises, including the ActualWeight pointers.
// A nil input yields an empty, non-nil slice.
func CloneExercises(exercises []Exercise) []Exercise {
	out := make([]Exercise, len(exercises))
	for i, e := range exercises {
		out[i] = e
		if e.ActualWeight != nil {
			w := *e.ActualWeight
			out[i].ActualWeight = &w
		}
	}
	return out
}

// WithoutActuals returns a copy with the performance fields cleared.
func WithoutActuals(exercises []Exercise) []Exercise {
	out := CloneExercises(exercises)
	for i := range out {
		out[i].ActualWeight = nil
		out[i].ActualSetsReps = ""
	}
	return out
}
