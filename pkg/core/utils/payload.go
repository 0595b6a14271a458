package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON fixes the JSON defects AI price responses commonly carry:
// single quotes, unquoted keys, trailing commas, markdown code fences.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %w", err)
	}
	return repaired, nil
}

// ParseHJSONToStruct parses Hjson (comments, unquoted keys, optional commas)
// directly into a struct. The registry data files are maintained in Hjson so
// they can carry inline annotations.
func ParseHJSONToStruct(data []byte, schema interface{}) error {
	if err := hjson.Unmarshal(data, schema); err != nil {
		return fmt.Errorf("hjson unmarshal failed: %w", err)
	}
	return nil
}

// ParsePayload extracts a structured payload from a raw response string,
// trying progressively more lenient strategies:
//  1. standard JSON
//  2. repaired JSON
//  3. Hjson
//
// The AI pricing sources answer in prose-wrapped near-JSON often enough that
// going straight to json.Unmarshal would discard half the usable responses.
func ParsePayload(input string, schema interface{}) error {
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}

	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return nil
		}
	}

	if err := hjson.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}

	return fmt.Errorf("payload is not parseable as JSON, repaired JSON, or Hjson")
}
