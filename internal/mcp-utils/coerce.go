// Package mcputils binds loosely-typed MCP tool arguments to Go structs.
package mcputils

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// ArgumentGetter is an interface for getting arguments from a request
type ArgumentGetter interface {
	GetArguments() map[string]any
}

// CoerceBindArguments binds request arguments to target using the json tags
// of its fields. Clients often send every value as a string, so numeric and
// boolean strings are converted. Empty and "null" values are treated as
// absent, which leaves pointer fields nil.
func CoerceBindArguments[T any](request ArgumentGetter, target *T) error {
	args := presentArguments(request.GetArguments())

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			numericStringHook,
			wholeNumberHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
		Result:  target,
		TagName: "json",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(args)
}

func presentArguments(raw map[string]any) map[string]any {
	args := make(map[string]any, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			trimmed := strings.TrimSpace(s)
			if trimmed == "" || trimmed == "null" {
				continue
			}
		}
		args[k] = v
	}
	return args
}

// numericStringHook converts "42" or "true" into json values so integer and
// boolean fields accept string-typed input.
func numericStringHook(f reflect.Type, t reflect.Type, data any) (any, error) {
	if f.Kind() != reflect.String {
		return data, nil
	}
	raw := strings.TrimSpace(data.(string))

	switch {
	case t.Kind() == reflect.Bool:
		if raw == "true" || raw == "false" {
			return raw == "true", nil
		}
	case t.Kind() >= reflect.Int && t.Kind() <= reflect.Float64:
		var n json.Number
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			return nil, fmt.Errorf("%q is not a number", raw)
		}
		return n, nil
	}
	return data, nil
}

// wholeNumberHook rejects fractional values for integer fields instead of
// silently truncating them.
func wholeNumberHook(f reflect.Type, t reflect.Type, data any) (any, error) {
	if t.Kind() < reflect.Int || t.Kind() > reflect.Uint64 {
		return data, nil
	}
	switch v := data.(type) {
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("%v is not a whole number", v)
		}
		return int64(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		return nil, fmt.Errorf("%s is not a whole number", v)
	}
	return data, nil
}
