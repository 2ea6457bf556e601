package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/okian/dugout/internal/domain/model"
)

const maxPatchBytes = 64 << 10

// readOnlyFields may appear in a player response but never in a patch.
var readOnlyFields = map[string]struct{}{
	"id":          {},
	"description": {},
}

// decodePatch parses and validates a PATCH body. Every failure wraps
// ErrInvalidPatch.
func decodePatch(body io.Reader) (model.Override, error) {
	raw, err := io.ReadAll(io.LimitReader(body, maxPatchBytes+1))
	if err != nil {
		return model.Override{}, fmt.Errorf("%w: read body: %w", ErrInvalidPatch, err)
	}
	if len(raw) > maxPatchBytes {
		return model.Override{}, fmt.Errorf("%w: body too large", ErrInvalidPatch)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return model.Override{}, fmt.Errorf("%w: body must be a JSON object", ErrInvalidPatch)
	}
	if len(fields) == 0 {
		return model.Override{}, fmt.Errorf("%w: patch is empty", ErrInvalidPatch)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := readOnlyFields[k]; ok {
			return model.Override{}, fmt.Errorf("%w: field %q cannot be edited", ErrInvalidPatch, k)
		}
		if bytes.Equal(bytes.TrimSpace(fields[k]), []byte("null")) {
			return model.Override{}, fmt.Errorf("%w: field %q must not be null", ErrInvalidPatch, k)
		}
	}

	var patch model.Override
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		return model.Override{}, fmt.Errorf("%w: %s", ErrInvalidPatch, describeDecodeError(err))
	}
	if err := validatePatch(patch); err != nil {
		return model.Override{}, err
	}
	return patch, nil
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("field %q must be %s", typeErr.Field, expectedKind(typeErr.Type.String()))
	}
	return strings.TrimPrefix(err.Error(), "json: ")
}

func expectedKind(goType string) string {
	switch strings.TrimPrefix(goType, "*") {
	case "int":
		return "a non-negative integer"
	case "float64":
		return "a number"
	default:
		return "a string"
	}
}

func validatePatch(p model.Override) error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("%w: field \"name\" must not be empty", ErrInvalidPatch)
	}

	counts := []struct {
		name string
		v    *int
	}{
		{"games", p.Games}, {"atBats", p.AtBats}, {"runs", p.Runs}, {"hits", p.Hits},
		{"doubles", p.Doubles}, {"triples", p.Triples}, {"homeRuns", p.HomeRuns},
		{"rbi", p.RBI}, {"walks", p.Walks}, {"strikeouts", p.Strikeouts},
		{"stolenBases", p.StolenBases}, {"caughtStealing", p.CaughtStealing},
	}
	for _, c := range counts {
		if c.v != nil && *c.v < 0 {
			return fmt.Errorf("%w: field %q must be a non-negative integer", ErrInvalidPatch, c.name)
		}
	}

	if p.Average != nil && (*p.Average < 0 || *p.Average > 1) {
		return fmt.Errorf("%w: field \"avg\" must be between 0 and 1", ErrInvalidPatch)
	}
	rates := []struct {
		name string
		v    *float64
	}{
		{"obp", p.OnBase}, {"slg", p.Slugging}, {"ops", p.OPS},
	}
	for _, r := range rates {
		if r.v != nil && *r.v < 0 {
			return fmt.Errorf("%w: field %q must be non-negative", ErrInvalidPatch, r.name)
		}
	}
	return nil
}
