package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOccupancyJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "occupancy.json")
	body := `{"observations":[
		{"room":"lecture_hall","count":27},
		{"room":"lecture_hall","count":31},
		{"room":"seminar_room","count":9}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	survey, err := LoadOccupancyJSON(path)
	require.NoError(t, err)
	require.Len(t, survey.Observations, 3)

	byRoom := GroupByRoom(survey)
	assert.Equal(t, []int{27, 31}, byRoom["lecture_hall"])
	assert.Equal(t, []int{9}, byRoom["seminar_room"])

	assert.Equal(t, []int{27, 31}, Counts(survey, "lecture_hall"))
	assert.Equal(t, []int{27, 31, 9}, Counts(survey, ""))
	assert.Empty(t, Counts(survey, "unknown"))
}

func TestLoadOccupancyJSONErrors(t *testing.T) {
	_, err := LoadOccupancyJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = LoadOccupancyJSON(bad)
	assert.Error(t, err)
}

func TestCountsNilSurvey(t *testing.T) {
	assert.Empty(t, Counts(nil, ""))
	assert.Empty(t, GroupByRoom(nil))
}
