package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cferrors "github.com/mvp-joe/gradle-class-finder/internal/errors"
	"github.com/mvp-joe/gradle-class-finder/internal/finder"
)

func TestFindClassHandler_ValidRequest(t *testing.T) {
	t.Parallel()

	f := &mockFinder{}
	handler := createFindClassHandler(f, log.Default())

	result, err := handler(context.Background(), callRequest(map[string]any{
		"workspace_dir":  "/work/project",
		"class_name":     "com.example.Foo",
		"submodule_path": "app",
	}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	assert.Equal(t, finder.Query{WorkspaceDir: "/work/project", ClassName: "com.example.Foo", Submodule: "app"}, f.lastQuery)

	var response FindClassResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(result)), &response))
	assert.Equal(t, "com.example.Foo", response.ClassName)
	assert.Equal(t, 1, response.Total)
	require.Len(t, response.Matches, 1)
	assert.Equal(t, "com.example:lib:1.0", response.Matches[0].DependencyCoordinates)
}

func TestFindClassHandler_JSONShape(t *testing.T) {
	t.Parallel()

	handler := createFindClassHandler(&mockFinder{}, log.Default())
	result, err := handler(context.Background(), callRequest(map[string]any{
		"workspace_dir": "/work/project",
		"class_name":    "com.example.Foo",
	}))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(result)), &raw))
	match := raw["matches"].([]any)[0].(map[string]any)
	assert.Contains(t, match, "dependency_coordinates")
	assert.Contains(t, match, "jar_path")
	assert.Contains(t, match, "class_name")
	assert.NotContains(t, match, "source_jar_path")
	assert.NotContains(t, match, "is_local")
}

func TestFindClassHandler_NotFound(t *testing.T) {
	t.Parallel()

	f := &mockFinder{findFunc: func(context.Context, finder.Query) ([]finder.Match, error) {
		return []finder.Match{}, nil
	}}
	handler := createFindClassHandler(f, log.Default())

	result, err := handler(context.Background(), callRequest(map[string]any{
		"workspace_dir": "/work/project",
		"class_name":    "com.example.Missing",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Class com.example.Missing not found in dependencies", resultText(result))
}

func TestFindClassHandler_MissingArguments(t *testing.T) {
	t.Parallel()

	handler := createFindClassHandler(&mockFinder{}, log.Default())

	tests := []struct {
		name    string
		args    any
		wantMsg string
	}{
		{"missing workspace", map[string]any{"class_name": "Foo"}, "workspace_dir parameter is required"},
		{"missing class", map[string]any{"workspace_dir": "/w"}, "class_name parameter is required"},
		{"wrong shape", []any{"Foo"}, "invalid arguments format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handler(context.Background(), callRequest(tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(result), tt.wantMsg)
		})
	}
}

func TestFindClassHandler_CodedErrorIsToolError(t *testing.T) {
	t.Parallel()

	f := &mockFinder{findFunc: func(context.Context, finder.Query) ([]finder.Match, error) {
		return nil, cferrors.New(cferrors.ErrCodeUpstreamQuery, "gradle dependencies failed: Could not resolve").
			WithHint("run ./gradlew dependencies in the workspace")
	}}
	handler := createFindClassHandler(f, log.Default())

	result, err := handler(context.Background(), callRequest(map[string]any{
		"workspace_dir": "/work/project",
		"class_name":    "com.example.Foo",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	text := resultText(result)
	assert.Contains(t, text, "UPSTREAM_QUERY_FAILURE")
	assert.Contains(t, text, "Could not resolve")
	assert.Contains(t, text, "hint: run ./gradlew dependencies")
}

func TestFindClassHandler_InternalErrorPropagates(t *testing.T) {
	t.Parallel()

	f := &mockFinder{findFunc: func(context.Context, finder.Query) ([]finder.Match, error) {
		return nil, errors.New("boom")
	}}
	handler := createFindClassHandler(f, log.Default())

	result, err := handler(context.Background(), callRequest(map[string]any{
		"workspace_dir": "/work/project",
		"class_name":    "com.example.Foo",
	}))
	assert.Nil(t, result)
	assert.EqualError(t, err, "boom")
}
