// Package clips validates AI-proposed clip boundaries at the system
// boundary. The model's JSON is the only contract this tool relies on, so
// anything that does not conform is rejected here before it can reach the
// timing logic.
package clips

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"clipcutter/internal/domain/timecode"
	"clipcutter/internal/types"
)

// MalformedRecordError reports a clip record missing a required field or
// carrying an invalid value. The pipeline halts before rendering such a
// record rather than guessing.
type MalformedRecordError struct {
	Index int
	Field string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("clip record %d: field %q: %v", e.Index, e.Field, e.Err)
	}
	return fmt.Sprintf("clip record %d: field %q is missing or empty", e.Index, e.Field)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// record mirrors the JSON shape the clip-finding prompt asks for. Pointers
// distinguish "absent" from "empty".
type record struct {
	Platform   *string `json:"platform"`
	Start      *string `json:"start"`
	End        *string `json:"end"`
	Transcript *string `json:"transcript"`
	Hook       *string `json:"hook"`
	Caption    *string `json:"caption"`
}

// DecodeRecords parses and validates the clip array returned by the LLM.
// Timestamps are normalized to seconds, platforms lowercased, and every
// invariant checked: required fields present, end > start, and a caption
// present whenever the platform is LinkedIn.
func DecodeRecords(data []byte) ([]types.Clip, error) {
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode clip records: %w", err)
	}

	out := make([]types.Clip, 0, len(recs))
	for i, r := range recs {
		c := types.Clip{Index: i + 1}

		platform, err := requireString(i, "platform", r.Platform)
		if err != nil {
			return nil, err
		}
		c.Platform = types.Platform(strings.ToLower(platform))

		startStr, err := requireString(i, "start", r.Start)
		if err != nil {
			return nil, err
		}
		if c.Start, err = timecode.Parse(startStr); err != nil {
			return nil, &MalformedRecordError{Index: i, Field: "start", Err: err}
		}

		endStr, err := requireString(i, "end", r.End)
		if err != nil {
			return nil, err
		}
		if c.End, err = timecode.Parse(endStr); err != nil {
			return nil, &MalformedRecordError{Index: i, Field: "end", Err: err}
		}
		if c.End <= c.Start {
			return nil, &MalformedRecordError{Index: i, Field: "end", Err: fmt.Errorf("end %v is not after start %v", c.End, c.Start)}
		}

		if c.Transcript, err = requireString(i, "transcript", r.Transcript); err != nil {
			return nil, err
		}
		if c.Hook, err = requireString(i, "hook", r.Hook); err != nil {
			return nil, err
		}

		if r.Caption != nil {
			c.Caption = strings.TrimSpace(*r.Caption)
		}
		if c.Platform == types.PlatformLinkedIn && c.Caption == "" {
			return nil, &MalformedRecordError{Index: i, Field: "caption", Err: errors.New("linkedin clips require a caption")}
		}

		out = append(out, c)
	}
	return out, nil
}

func requireString(idx int, field string, v *string) (string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", &MalformedRecordError{Index: idx, Field: field}
	}
	return strings.TrimSpace(*v), nil
}

// ExtractJSONArray pulls the first JSON array out of model output, stripping
// markdown code fences first. Models wrap JSON in fences often enough that
// refusing fenced output would make the pipeline flaky.
func ExtractJSONArray(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", errors.New("empty model output")
	}

	if strings.HasPrefix(t, "```") {
		if i := strings.Index(t, "\n"); i >= 0 {
			t = t[i+1:]
		}
		if j := strings.LastIndex(t, "```"); j >= 0 {
			t = t[:j]
		}
		t = strings.TrimSpace(t)
	}

	start := strings.Index(t, "[")
	end := strings.LastIndex(t, "]")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON array in model output: %q", truncate(t, 200))
	}
	return t[start : end+1], nil
}

// ExtractJSONObject is the object-shaped sibling of ExtractJSONArray, used
// for single-record responses such as SEO captions.
func ExtractJSONObject(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", errors.New("empty model output")
	}

	if strings.HasPrefix(t, "```") {
		if i := strings.Index(t, "\n"); i >= 0 {
			t = t[i+1:]
		}
		if j := strings.LastIndex(t, "```"); j >= 0 {
			t = t[:j]
		}
		t = strings.TrimSpace(t)
	}

	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in model output: %q", truncate(t, 200))
	}
	return t[start : end+1], nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
