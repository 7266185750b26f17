package curriculum

import "encoding/json"

func floatingCityJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Floating Futures: Our City on the Sea",
		"targetGrade": "Grade 4",
		"narrativeRole": "Ocean Engineer",
		"overview": "Learners design a self-sustaining community that floats on the sea, investigating buoyancy, fresh water and fair rules for living together.",
		"modules": [
			{
				"subject": "Science",
				"focus": "Buoyancy and the water cycle",
				"activities": ["Build and test foil rafts with coins", "Make a solar still from a bowl and cling film"]
			},
			{
				"subject": "Math",
				"focus": "Area and budgets",
				"activities": ["Plan deck space on grid paper", "Balance a city budget with play money"]
			},
			{
				"subject": "Social Studies",
				"focus": "Community rules",
				"activities": ["Draft a floating city charter"]
			}
		],
		"joyMechanism": {
			"title": "Storm Challenge",
			"description": "Each week a surprise storm card tests whether the city models stay afloat and dry.",
			"learningOutcome": "Learners iterate on designs using evidence instead of fear of failure."
		},
		"finalShowcase": {
			"format": "Harbor Expo",
			"description": "Teams present working models to families and vote on a shared city charter."
		},
		"assessment": [
			{"name": "Collaboration", "value": 85, "description": "Observed through team design logs"},
			{"name": "Systems Thinking", "value": 72.6, "description": "Explaining how water, energy and food connect"},
			{"name": "Creativity", "value": 90, "description": "Variety of raft designs tested"}
		]
	}`)
}

func withField(raw json.RawMessage, mutate func(map[string]any)) json.RawMessage {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		panic(err)
	}
	mutate(m)
	out, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	return out
}
