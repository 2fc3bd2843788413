package server

import (
	"encoding/json"
	"math"

	"github.com/mj1618/desktop-vision/internal/capture"
	"github.com/mj1618/desktop-vision/internal/model"
)

// Parameter helpers. A missing or null parameter yields the zero value; a
// parameter of the wrong type is an invalid request.

func stringParam(params map[string]any, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", capture.InvalidRequest("%s must be a string", key)
	}
	return s, nil
}

func requiredString(params map[string]any, key string) (string, error) {
	s, err := stringParam(params, key)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", capture.InvalidRequest("%s is required", key)
	}
	return s, nil
}

func numberParam(params map[string]any, key string) (float64, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, capture.InvalidRequest("%s must be a number", key)
		}
		return f, nil
	}
	return 0, capture.InvalidRequest("%s must be a number", key)
}

// optionalIntParam returns nil when key is absent.
func optionalIntParam(params map[string]any, key string) (*int, error) {
	if v, ok := params[key]; !ok || v == nil {
		return nil, nil
	}
	f, err := numberParam(params, key)
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return nil, capture.InvalidRequest("%s must be an integer", key)
	}
	n := int(f)
	return &n, nil
}

func stringSliceParam(params map[string]any, key string) ([]string, error) {
	switch v := params[key].(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, capture.InvalidRequest("%s must be an array of strings", key)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, capture.InvalidRequest("%s must be an array of strings", key)
}

func modeParam(params map[string]any) (model.CaptureMode, error) {
	s, err := stringParam(params, "mode")
	return model.CaptureMode(s), err
}
