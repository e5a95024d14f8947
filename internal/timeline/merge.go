/**
* Name: 			merge.go
* Description: 		타임라인 JSON 병합
* Workflow: 		기존 타임라인 파싱, 추출 결과 파싱, 카테고리 단위 덮어쓰기
 */

package timeline

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// Timeline maps a category key to its raw JSON value (string or object).
type Timeline map[string]json.RawMessage

// Parse decodes a stored timeline. Empty input yields an empty timeline.
func Parse(data string) (Timeline, error) {
	t := Timeline{}
	if strings.TrimSpace(data) == "" {
		return t, nil
	}
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return nil, fmt.Errorf("parse timeline: %w", err)
	}
	return t, nil
}

// Merge overwrites whole categories of current with those present in extracted.
// Nested values are replaced, never merged. Keys outside the nine categories are dropped.
func Merge(current, extracted Timeline) Timeline {
	merged := make(Timeline, len(current)+len(extracted))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range extracted {
		if _, ok := GetCategory(k); !ok {
			slog.Debug("timeline.Merge(): dropping unknown category", "key", k)
			continue
		}
		merged[k] = v
	}
	return merged
}

// MergeJSON is Merge over serialized timelines.
func MergeJSON(current, extracted string) (string, error) {
	cur, err := Parse(current)
	if err != nil {
		return "", err
	}
	ext, err := Parse(extracted)
	if err != nil {
		return "", fmt.Errorf("extracted data: %w", err)
	}
	out, err := json.Marshal(Merge(cur, ext))
	if err != nil {
		return "", fmt.Errorf("encode timeline: %w", err)
	}
	return string(out), nil
}
