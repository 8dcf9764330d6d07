package data

import (
	"encoding/json"
	"fmt"
	"os"
)

// OccupancySurvey matches the JSON shape of an occupancy observations file:
//
//	{
//	  "observations": [
//	    {"room": "lecture_hall", "count": 27},
//	    ...
//	  ]
//	}
type OccupancySurvey struct {
	Observations []OccupancyObservation `json:"observations"`
}

// OccupancyObservation is one counted headcount for a room.
type OccupancyObservation struct {
	Room  string `json:"room"`
	Count int    `json:"count"`
}

func LoadOccupancyJSON(path string) (*OccupancySurvey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var survey OccupancySurvey
	if err := json.Unmarshal(raw, &survey); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &survey, nil
}

// GroupByRoom splits a survey into room-keyed count slices.
func GroupByRoom(survey *OccupancySurvey) map[string][]int {
	out := map[string][]int{}
	if survey == nil {
		return out
	}
	for _, obs := range survey.Observations {
		out[obs.Room] = append(out[obs.Room], obs.Count)
	}
	return out
}

// Counts flattens a survey to raw counts, optionally filtered by room.
func Counts(survey *OccupancySurvey, room string) []int {
	var out []int
	if survey == nil {
		return out
	}
	for _, obs := range survey.Observations {
		if room != "" && obs.Room != room {
			continue
		}
		out = append(out, obs.Count)
	}
	return out
}
