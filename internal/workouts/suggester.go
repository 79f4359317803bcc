package workouts

import "strings"

type Suggestion struct {
	Goal      string     `json:"goal"`
	Title     string     `json:"title"`
	Exercises []Exercise `json:"exercises"`
}

// Suggester maps a training goal keyword to a starter workout template.
// The table is static, suggestions carry no IDs and are not persisted
// until the client saves them as a routine.
type Suggester struct {
	templates map[string]Suggestion
	fallback  Suggestion
}

func NewSuggester() *Suggester {
	fullBody := Suggestion{
		Goal:  "general",
		Title: "Full Body Basics",
		Exercises: []Exercise{
			{Name: "squat", Sets: 3, Reps: 10},
			{Name: "push up", Sets: 3, Reps: 12},
			{Name: "bent over row", Sets: 3, Reps: 10},
			{Name: "plank", Sets: 3, Reps: 1},
		},
	}

	return &Suggester{
		fallback: fullBody,
		templates: map[string]Suggestion{
			"general": fullBody,
			"strength": {
				Goal:  "strength",
				Title: "Strength Foundation",
				Exercises: []Exercise{
					{Name: "deadlift", Sets: 5, Reps: 5},
					{Name: "bench press", Sets: 5, Reps: 5},
					{Name: "barbell squat", Sets: 5, Reps: 5},
				},
			},
			"cardio": {
				Goal:  "cardio",
				Title: "Cardio Circuit",
				Exercises: []Exercise{
					{Name: "burpee", Sets: 4, Reps: 15},
					{Name: "mountain climber", Sets: 4, Reps: 20},
					{Name: "jumping jack", Sets: 4, Reps: 30},
				},
			},
			"mobility": {
				Goal:  "mobility",
				Title: "Mobility Flow",
				Exercises: []Exercise{
					{Name: "hip opener", Sets: 2, Reps: 10},
					{Name: "thoracic rotation", Sets: 2, Reps: 10},
					{Name: "deep squat hold", Sets: 3, Reps: 1},
				},
			},
		},
	}
}

// Suggest returns the template for the given goal, falling back to the
// full body template for unknown or empty goals.
func (s *Suggester) Suggest(goal string) Suggestion {
	if suggestion, ok := s.templates[strings.ToLower(strings.TrimSpace(goal))]; ok {
		return suggestion
	}
	return s.fallback
}
