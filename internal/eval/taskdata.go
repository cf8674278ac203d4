package eval

import (
	"encoding/json"
	"fmt"
	"os"

	"chronocorpus/internal/stream"
)

// TaskData holds the reference answers keyed the same way as the QA source:
// category → element → optional attribute → task block.
type TaskData struct {
	root map[string]map[string]json.RawMessage
}

type taskEntry struct {
	TaskAccumulate struct {
		GroundTruth string `json:"ground_truth"`
	} `json:"task_accumulate"`
}

func LoadTaskData(path string) (*TaskData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task data %s: %w", path, err)
	}
	var root map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode task data %s: %w", path, err)
	}
	return &TaskData{root: root}, nil
}

// GroundTruth resolves the reference answer for one subject.
func (t *TaskData) GroundTruth(category stream.Category, element, attribute string) (string, error) {
	elements, ok := t.root[string(category)]
	if !ok {
		return "", fmt.Errorf("task data missing category %s", category)
	}
	raw, ok := elements[element]
	if !ok {
		return "", fmt.Errorf("task data missing %s/%s", category, element)
	}
	if category.HasAttribute() {
		var byAttribute map[string]taskEntry
		if err := json.Unmarshal(raw, &byAttribute); err != nil {
			return "", fmt.Errorf("decode task data %s/%s: %w", category, element, err)
		}
		entry, ok := byAttribute[attribute]
		if !ok {
			return "", fmt.Errorf("task data missing %s/%s/%s", category, element, attribute)
		}
		return entry.TaskAccumulate.GroundTruth, nil
	}
	var entry taskEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return "", fmt.Errorf("decode task data %s/%s: %w", category, element, err)
	}
	return entry.TaskAccumulate.GroundTruth, nil
}
