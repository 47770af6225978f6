package main

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const jobClass = "ComparisonWorker"

// parseInt64 extracts an int64 from a Sidekiq payload argument that may be encoded
// either as a JSON number or as a quoted string.
func parseInt64(raw json.RawMessage) (int64, error) {
	var asNumber int64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber, nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString == "" {
			return 0, fmt.Errorf("empty string")
		}
		v, err := strconv.ParseInt(asString, 10, 64)
		if err != nil {
			return 0, err
		}
		return v, nil
	}

	return 0, fmt.Errorf("unsupported arg: %s", string(raw))
}

// comparisonIDFromPayload decodes a Sidekiq job and returns its comparison id.
func comparisonIDFromPayload(payload string) (int64, error) {
	var job sidekiqJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		return 0, fmt.Errorf("invalid job json: %w", err)
	}
	if job.Class != jobClass {
		return 0, fmt.Errorf("unexpected job class=%s", job.Class)
	}
	if len(job.Args) == 0 {
		return 0, fmt.Errorf("job missing comparison_id: %s", payload)
	}
	id, err := parseInt64(job.Args[0])
	if err != nil {
		return 0, fmt.Errorf("job comparison_id: %w", err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("job comparison_id must be positive, got %d", id)
	}
	return id, nil
}
