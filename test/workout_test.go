//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"
	"sync"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idResponse struct {
	ID string `json:"id"`
}

type setPayload struct {
	SetsCount int     `json:"setsCount"`
	Reps      int     `json:"reps"`
	WeightKg  float64 `json:"weightKg"`
}

type workoutExercisePayload struct {
	ID             string       `json:"id"`
	OrderInWorkout int          `json:"orderInWorkout"`
	Sets           []setPayload `json:"sets"`
}

type statsPayload struct {
	DataPoints []struct {
		Date        string  `json:"date"`
		SessionID   string  `json:"sessionId"`
		MaxWeightKg float64 `json:"maxWeightKg"`
	} `json:"dataPoints"`
	Summary *struct {
		TotalSessions      int     `json:"totalSessions"`
		PersonalRecord     float64 `json:"personalRecord"`
		PRDate             string  `json:"prDate"`
		FirstWeight        float64 `json:"firstWeight"`
		LatestWeight       float64 `json:"latestWeight"`
		ProgressPercentage float64 `json:"progressPercentage"`
	} `json:"summary"`
}

func (s *IntegrationTestSuite) newCatalogExercise(ctx context.Context, token string) string {
	t := s.T()
	suffix := gofakeit.UUID()

	resp := doRequest(ctx, t, "POST", "/catalog/categories", token, map[string]string{
		"name":          "chest-" + suffix,
		"nameSecondary": "brust-" + suffix,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Body))
	var category idResponse
	resp.decode(t, &category)

	resp = doRequest(ctx, t, "POST", "/catalog/exercises", token, map[string]string{
		"categoryId": category.ID,
		"name":       "bench-" + suffix,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Body))
	var exercise idResponse
	resp.decode(t, &exercise)
	return exercise.ID
}

func (s *IntegrationTestSuite) newSession(ctx context.Context, token, date string) string {
	t := s.T()
	resp := doRequest(ctx, t, "POST", "/sessions", token, map[string]string{"date": date})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Body))
	var session idResponse
	resp.decode(t, &session)
	return session.ID
}

func (s *IntegrationTestSuite) addExercise(ctx context.Context, token, sessionID, exerciseID string, sets ...setPayload) workoutExercisePayload {
	t := s.T()
	resp := doRequest(ctx, t, "POST", "/sessions/"+sessionID+"/exercises", token, map[string]any{
		"exerciseId": exerciseID,
		"sets":       sets,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Body))
	var we workoutExercisePayload
	resp.decode(t, &we)
	return we
}

func (s *IntegrationTestSuite) TestWorkoutProgressFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := registerAndLogin(ctx, t)
	exerciseID := s.newCatalogExercise(ctx, token)

	// 70 / 75 / 77.5 kg across three weeks
	first := s.newSession(ctx, token, "2025-01-01")
	s.addExercise(ctx, token, first, exerciseID, setPayload{3, 8, 60}, setPayload{1, 5, 70})
	second := s.newSession(ctx, token, "2025-01-08")
	we := s.addExercise(ctx, token, second, exerciseID, setPayload{1, 5, 72.5})
	third := s.newSession(ctx, token, "2025-01-15")
	s.addExercise(ctx, token, third, exerciseID, setPayload{1, 3, 77.5})

	resp := doRequest(ctx, t, "PUT", "/workout-exercises/"+we.ID+"/sets", token, map[string]any{
		"sets": []setPayload{{1, 5, 75}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Body))

	// a deleted session does not count
	deleted := s.newSession(ctx, token, "2025-01-10")
	s.addExercise(ctx, token, deleted, exerciseID, setPayload{1, 1, 150})
	resp = doRequest(ctx, t, "DELETE", "/sessions/"+deleted, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doRequest(ctx, t, "DELETE", "/sessions/"+deleted, token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp = doRequest(ctx, t, "POST", "/sessions/"+deleted+"/exercises", token, map[string]any{"exerciseId": exerciseID})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(ctx, t, "GET", "/stats/exercises/"+exerciseID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Body))
	var stats statsPayload
	resp.decode(t, &stats)

	require.Len(t, stats.DataPoints, 3)
	assert.Equal(t, first, stats.DataPoints[0].SessionID)
	assert.Equal(t, 70.0, stats.DataPoints[0].MaxWeightKg)
	assert.Equal(t, 75.0, stats.DataPoints[1].MaxWeightKg)
	assert.Equal(t, "2025-01-15", stats.DataPoints[2].Date)
	require.NotNil(t, stats.Summary)
	assert.Equal(t, 3, stats.Summary.TotalSessions)
	assert.Equal(t, 77.5, stats.Summary.PersonalRecord)
	assert.Equal(t, "2025-01-15", stats.Summary.PRDate)
	assert.Equal(t, 10.71, stats.Summary.ProgressPercentage)

	resp = doRequest(ctx, t, "GET", "/stats/exercises/"+exerciseID+"?from=2025-01-08&to=2025-01-08", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats = statsPayload{}
	resp.decode(t, &stats)
	require.Len(t, stats.DataPoints, 1)
	assert.Equal(t, second, stats.DataPoints[0].SessionID)

	// another user sees nothing
	otherToken := registerAndLogin(ctx, t)
	resp = doRequest(ctx, t, "GET", "/stats/exercises/"+exerciseID, otherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"exerciseId":"`+exerciseID+`","dataPoints":[],"summary":null}`, string(resp.Body))
	resp = doRequest(ctx, t, "GET", "/sessions/"+first, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(ctx, t, "GET", "/stats/exercises/"+gofakeit.UUID(), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// exercise in use cannot be removed from the catalog
	resp = doRequest(ctx, t, "DELETE", "/catalog/exercises/"+exerciseID, token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestConcurrentAddExercise() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := registerAndLogin(ctx, t)
	exerciseID := s.newCatalogExercise(ctx, token)
	sessionID := s.newSession(ctx, token, "2025-02-01")

	const workers = 8
	var wg sync.WaitGroup
	statuses := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := doRequest(ctx, t, "POST", "/sessions/"+sessionID+"/exercises", token, map[string]any{
				"exerciseId": exerciseID,
			})
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)
	for status := range statuses {
		assert.Equal(t, http.StatusCreated, status)
	}

	resp := doRequest(ctx, t, "GET", "/sessions/"+sessionID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var session struct {
		Exercises []workoutExercisePayload `json:"exercises"`
	}
	resp.decode(t, &session)
	require.Len(t, session.Exercises, workers)

	orders := map[int]bool{}
	for _, we := range session.Exercises {
		orders[we.OrderInWorkout] = true
	}
	for i := 1; i <= workers; i++ {
		assert.True(t, orders[i], "missing order %d", i)
	}
}
