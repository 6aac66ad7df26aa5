package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftlog/liftlog/internal/auth"
	"github.com/liftlog/liftlog/internal/leaderboard"
	"github.com/liftlog/liftlog/internal/workouts"
	"github.com/liftlog/liftlog/internal/workouts/stats"
)

func (s *IntegrationTestSuite) doAuthenticatedRequest(
	ctx context.Context,
	token, method, url string,
	body []byte,
) *http.Response {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(auth.AuthTokenHeader, token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	return resp
}

func (s *IntegrationTestSuite) addWorkoutRaw(
	ctx context.Context,
	token string,
	workoutJson string,
) workouts.AddWorkoutResponse {
	resp := s.doAuthenticatedRequest(
		ctx, token,
		"POST", fmt.Sprintf("%s/workouts", serverEndpoint),
		[]byte(workoutJson),
	)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var added workouts.AddWorkoutResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &added))
	return added
}

func (s *IntegrationTestSuite) getWorkout(ctx context.Context, token string, id int) workouts.Workout {
	resp := s.doAuthenticatedRequest(
		ctx, token,
		"GET", fmt.Sprintf("%s/workouts/%d", serverEndpoint, id),
		nil,
	)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var workout workouts.Workout
	require.NoError(s.T(), json.Unmarshal(respBytes, &workout))
	return workout
}

func day(daysAgo int) string {
	return time.Now().AddDate(0, 0, -daysAgo).Format(workouts.DayFormat)
}

func (s *IntegrationTestSuite) TestWorkouts_AddGetUpdateDelete() {
	ctx := context.Background()
	token := doLogin(ctx, s.T())
	defer doLogout(ctx, s.T(), token)

	notes := gofakeit.Sentence(5)
	added := s.addWorkoutRaw(ctx, token, fmt.Sprintf(`{
		"userId": "crud-user",
		"date": %q,
		"notes": %q,
		"exercises": [
			{
				"exerciseId": "bench-press",
				"name": "Bench Press",
				"modality": "strength",
				"strengthSets": [{"reps": 5, "weight": 100}, {"reps": 5, "weight": 102.5}]
			}
		]
	}`, day(1), notes))
	require.NotZero(s.T(), added.ID)
	assert.Equal(s.T(), 1, added.CountForDay)
	assert.Equal(s.T(), notes, added.Notes)

	workout := s.getWorkout(ctx, token, added.ID)
	require.Len(s.T(), workout.Exercises, 1)
	assert.Equal(s.T(), workouts.ModalityStrength, workout.Exercises[0].Modality)
	assert.InDelta(s.T(), 1012.5, workout.TotalVolume(), 0.001)

	// legacy single-set shape, must come back normalized
	addedLegacy := s.addWorkoutRaw(ctx, token, fmt.Sprintf(`{
		"userId": "crud-user",
		"date": %q,
		"exercises": [
			{"name": "Deadlift", "sets": 1, "reps": 3, "weight": 140}
		]
	}`, day(1)))
	assert.Equal(s.T(), 2, addedLegacy.CountForDay)

	legacyWorkout := s.getWorkout(ctx, token, addedLegacy.ID)
	require.Len(s.T(), legacyWorkout.Exercises, 1)
	require.Len(s.T(), legacyWorkout.Exercises[0].StrengthSets, 1)
	assert.Equal(s.T(), 3, legacyWorkout.Exercises[0].StrengthSets[0].Reps)
	assert.InDelta(s.T(), 140, legacyWorkout.Exercises[0].StrengthSets[0].Weight, 0.001)

	// update the first workout
	updateJson := fmt.Sprintf(`{
		"id": %d,
		"userId": "crud-user",
		"date": %q,
		"notes": "updated",
		"exercises": [
			{
				"exerciseId": "bench-press",
				"name": "Bench Press",
				"modality": "strength",
				"strengthSets": [{"reps": 3, "weight": 110}]
			}
		]
	}`, added.ID, day(1))
	resp := s.doAuthenticatedRequest(
		ctx, token,
		"PUT", fmt.Sprintf("%s/workouts", serverEndpoint),
		[]byte(updateJson),
	)
	resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	updated := s.getWorkout(ctx, token, added.ID)
	assert.Equal(s.T(), "updated", updated.Notes)
	assert.InDelta(s.T(), 330, updated.TotalVolume(), 0.001)

	// list
	resp = s.doAuthenticatedRequest(
		ctx, token,
		"GET", fmt.Sprintf("%s/workouts/list/page/1/size/10?user_id=crud-user", serverEndpoint),
		nil,
	)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	var listResp workouts.ListResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &listResp))
	assert.Equal(s.T(), 2, listResp.Total)

	// delete the legacy one
	resp = s.doAuthenticatedRequest(
		ctx, token,
		"DELETE", fmt.Sprintf("%s/workouts/%d", serverEndpoint, addedLegacy.ID),
		nil,
	)
	resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	resp = s.doAuthenticatedRequest(
		ctx, token,
		"GET", fmt.Sprintf("%s/workouts/%d", serverEndpoint, addedLegacy.ID),
		nil,
	)
	resp.Body.Close()
	require.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)

	// the row must really be gone
	var count int
	err = s.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM workout WHERE id = $1", addedLegacy.ID,
	).Scan(&count)
	require.NoError(s.T(), err)
	assert.Zero(s.T(), count)
}

func (s *IntegrationTestSuite) TestStatsAndPRs() {
	ctx := context.Background()
	token := doLogin(ctx, s.T())
	defer doLogout(ctx, s.T(), token)

	s.addWorkoutRaw(ctx, token, fmt.Sprintf(`{
		"userId": "stats-user",
		"date": %q,
		"exercises": [
			{
				"exerciseId": "squat",
				"name": "Squat",
				"modality": "strength",
				"strengthSets": [{"reps": 5, "weight": 100}]
			}
		]
	}`, day(1)))
	s.addWorkoutRaw(ctx, token, fmt.Sprintf(`{
		"userId": "stats-user",
		"date": %q,
		"exercises": [
			{
				"exerciseId": "squat",
				"name": "Squat",
				"modality": "strength",
				"strengthSets": [{"reps": 3, "weight": 120}]
			},
			{
				"name": "Morning Run",
				"modality": "cardio",
				"cardioData": {"duration": 1800, "distance": 5}
			}
		]
	}`, day(0)))

	resp := s.doAuthenticatedRequest(
		ctx, token,
		"GET", fmt.Sprintf("%s/stats/summary?user_id=stats-user", serverEndpoint),
		nil,
	)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var summary stats.Summary
	require.NoError(s.T(), json.Unmarshal(respBytes, &summary))
	assert.Equal(s.T(), 2, summary.Workouts)
	assert.Equal(s.T(), 2, summary.ActiveDays)
	assert.Equal(s.T(), 2, summary.CurrentStreak)
	assert.InDelta(s.T(), 860, summary.TotalVolume, 0.001)
	assert.InDelta(s.T(), 5, summary.TotalCardioDistance, 0.001)
	require.NotNil(s.T(), summary.FavoriteExercise)
	assert.Equal(s.T(), "squat", summary.FavoriteExercise.ExerciseID)

	resp = s.doAuthenticatedRequest(
		ctx, token,
		"GET", fmt.Sprintf("%s/stats/prs?user_id=stats-user", serverEndpoint),
		nil,
	)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var prs []stats.ExercisePR
	require.NoError(s.T(), json.Unmarshal(respBytes, &prs))
	require.NotEmpty(s.T(), prs)

	var maxWeight *stats.ExercisePR
	for i := range prs {
		if prs[i].ExerciseID == "squat" && prs[i].PRType == stats.PRTypeMaxWeight {
			maxWeight = &prs[i]
		}
	}
	require.NotNil(s.T(), maxWeight)
	assert.InDelta(s.T(), 120, maxWeight.Value, 0.001)
	assert.Equal(s.T(), day(0), maxWeight.Date)
}

func (s *IntegrationTestSuite) TestLeaderboard_PublicAccess() {
	ctx := context.Background()
	token := doLogin(ctx, s.T())

	s.addWorkoutRaw(ctx, token, fmt.Sprintf(`{
		"userId": "board-user-1",
		"date": %q,
		"exercises": [
			{"name": "Press", "modality": "strength", "strengthSets": [{"reps": 10, "weight": 50}]}
		]
	}`, day(0)))
	s.addWorkoutRaw(ctx, token, fmt.Sprintf(`{
		"userId": "board-user-2",
		"date": %q,
		"exercises": [
			{"name": "Press", "modality": "strength", "strengthSets": [{"reps": 10, "weight": 80}]}
		]
	}`, day(0)))
	doLogout(ctx, s.T(), token)

	// no token, standings are public
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/leaderboard/volume?period=7days", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var standings leaderboard.StandingsResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &standings))
	assert.Equal(s.T(), leaderboard.BoardVolume, standings.Board)
	require.GreaterOrEqual(s.T(), len(standings.Entries), 2)
	assert.Equal(s.T(), 1, standings.Entries[0].Rank)
	assert.GreaterOrEqual(s.T(), standings.Entries[0].Value, standings.Entries[1].Value)
}

func (s *IntegrationTestSuite) TestCatalog() {
	ctx := context.Background()
	token := doLogin(ctx, s.T())
	defer doLogout(ctx, s.T(), token)

	entryJson := `{"exerciseId": "ohp", "name": "Overhead Press", "muscleGroup": "shoulders"}`
	resp := s.doAuthenticatedRequest(
		ctx, token,
		"POST", fmt.Sprintf("%s/catalog", serverEndpoint),
		[]byte(entryJson),
	)
	resp.Body.Close()
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)

	// same exercise id again, must conflict
	resp = s.doAuthenticatedRequest(
		ctx, token,
		"POST", fmt.Sprintf("%s/catalog", serverEndpoint),
		[]byte(entryJson),
	)
	resp.Body.Close()
	require.Equal(s.T(), http.StatusConflict, resp.StatusCode)

	resp = s.doAuthenticatedRequest(
		ctx, token,
		"GET", fmt.Sprintf("%s/catalog", serverEndpoint),
		nil,
	)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var entries []workouts.CatalogEntry
	require.NoError(s.T(), json.Unmarshal(respBytes, &entries))
	require.NotEmpty(s.T(), entries)

	var found bool
	for _, e := range entries {
		if e.ExerciseID == "ohp" {
			found = true
			assert.Equal(s.T(), "Overhead Press", e.Name)
			assert.Equal(s.T(), "shoulders", e.MuscleGroup)
		}
	}
	assert.True(s.T(), found)
}
