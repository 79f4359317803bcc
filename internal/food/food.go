package food

import (
	"errors"
	"time"
)

var (
	ErrEntryNotFound = errors.New("food entry not found")
	ErrMissingName   = errors.New("food entry name empty")
	ErrBadCalories   = errors.New("calories must not be negative")
)

// Entry is one consumed food item. Calories are required, the macros are
// optional and stay nil when the user did not log them. An entry belongs
// to the calendar day of ConsumedAt.
type Entry struct {
	ID         int       `json:"id"`
	UserID     int       `json:"userId"`
	Name       string    `json:"name"`
	Calories   int       `json:"calories"`
	Protein    *float64  `json:"protein,omitempty"`
	Carbs      *float64  `json:"carbs,omitempty"`
	Fat        *float64  `json:"fat,omitempty"`
	ConsumedAt time.Time `json:"consumedAt"`
}

func (e *Entry) Validate() error {
	if e.Name == "" {
		return ErrMissingName
	}
	if e.Calories < 0 {
		return ErrBadCalories
	}
	for _, macro := range []*float64{e.Protein, e.Carbs, e.Fat} {
		if macro != nil && *macro < 0 {
			return errors.New("macros must not be negative")
		}
	}
	return nil
}
