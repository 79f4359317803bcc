// Seed tool: registers a demo user on a running fittrack instance and fills
// the account with fake workouts, routines and food entries. Meant for local
// development against an empty database.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	log "github.com/sirupsen/logrus"
)

const authTokenHeader = "X-FITTRACK-TOKEN"

var exercisePool = []string{
	"squat", "deadlift", "bench press", "overhead press", "bent over row",
	"pull up", "push up", "lunge", "plank", "bicep curl", "tricep dip",
	"leg press", "lat pulldown", "hip thrust", "calf raise",
}

var foodPool = []string{
	"chicken breast", "brown rice", "oats", "banana", "greek yogurt",
	"salmon", "broccoli", "eggs", "almonds", "cottage cheese",
}

type seeder struct {
	apiURL     string
	token      string
	httpClient *http.Client
}

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "base URL of a running fittrack instance")
	workoutsCount := flag.Int("workouts", 30, "number of workouts to create")
	foodDays := flag.Int("food-days", 14, "number of days to fill with food entries")
	flag.Parse()

	s := &seeder{
		apiURL:     *apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	username := fmt.Sprintf("%s%d", gofakeit.Username(), rand.Intn(1000))
	if err := s.register(username); err != nil {
		log.Fatalf("register seed user: %s", err)
	}
	log.Printf("seed user registered: %s", username)

	for i := 0; i < *workoutsCount; i++ {
		daysAgo := rand.Intn(60)
		if err := s.addWorkout(daysAgo); err != nil {
			log.Fatalf("add workout: %s", err)
		}
	}
	log.Printf("seeded %d workouts", *workoutsCount)

	for day := 0; day < *foodDays; day++ {
		mealsCount := 2 + rand.Intn(3)
		for meal := 0; meal < mealsCount; meal++ {
			if err := s.addFoodEntry(day); err != nil {
				log.Fatalf("add food entry: %s", err)
			}
		}
	}
	log.Printf("seeded food entries for %d days", *foodDays)
}

func (s *seeder) register(username string) error {
	registerReq := map[string]string{
		"username":    username,
		"password":    gofakeit.Password(true, true, true, false, false, 16),
		"displayName": gofakeit.Name(),
	}

	var registerResp struct {
		Token string `json:"token"`
	}
	if err := s.post("/a/register", registerReq, &registerResp); err != nil {
		return err
	}
	if registerResp.Token == "" {
		return fmt.Errorf("empty token for user %s", username)
	}

	s.token = registerResp.Token
	return nil
}

func (s *seeder) addWorkout(daysAgo int) error {
	exercisesCount := 3 + rand.Intn(4)
	exercises := make([]map[string]any, 0, exercisesCount)
	for i := 0; i < exercisesCount; i++ {
		kilos := 10 + rand.Float64()*90
		exercises = append(exercises, map[string]any{
			"name":  exercisePool[rand.Intn(len(exercisePool))],
			"sets":  2 + rand.Intn(4),
			"reps":  5 + rand.Intn(10),
			"kilos": kilos,
		})
	}

	createdAt := time.Now().AddDate(0, 0, -daysAgo).Add(-time.Duration(rand.Intn(12)) * time.Hour)
	workoutReq := map[string]any{
		"title":     fmt.Sprintf("%s Workout", gofakeit.HipsterWord()),
		"createdAt": createdAt,
		"exercises": exercises,
	}

	var workoutResp struct {
		ID int `json:"id"`
	}
	if err := s.post("/workouts", workoutReq, &workoutResp); err != nil {
		return err
	}

	// finish most of the seeded workouts so streaks and stats have data
	if rand.Intn(10) < 8 {
		finishReq := map[string]any{
			"durationSeconds": 20*60 + rand.Intn(60*60),
		}
		finishPath := fmt.Sprintf("/workouts/%d/finish", workoutResp.ID)
		if err := s.post(finishPath, finishReq, nil); err != nil {
			return fmt.Errorf("finish workout %d: %w", workoutResp.ID, err)
		}
	}

	return nil
}

func (s *seeder) addFoodEntry(daysAgo int) error {
	protein := rand.Float64() * 40
	carbs := rand.Float64() * 80
	fat := rand.Float64() * 30
	consumedAt := time.Now().AddDate(0, 0, -daysAgo).Add(-time.Duration(rand.Intn(12)) * time.Hour)

	entryReq := map[string]any{
		"name":       foodPool[rand.Intn(len(foodPool))],
		"calories":   100 + rand.Intn(700),
		"protein":    protein,
		"carbs":      carbs,
		"fat":        fat,
		"consumedAt": consumedAt,
	}
	return s.post("/food", entryReq, nil)
}

func (s *seeder) post(path string, payload any, response any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL+path, bytes.NewReader(payloadBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "FitTrack/1.0 seed-tool")
	if s.token != "" {
		req.Header.Set(authTokenHeader, s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("POST %s: unexpected status %d", path, resp.StatusCode)
	}

	if response != nil {
		if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
