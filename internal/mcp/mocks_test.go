package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mvp-joe/gradle-class-finder/internal/finder"
	"github.com/mvp-joe/gradle-class-finder/internal/source"
)

// mockFinder implements ClassFinder for testing
type mockFinder struct {
	findFunc  func(ctx context.Context, q finder.Query) ([]finder.Match, error)
	lastQuery finder.Query
}

func (m *mockFinder) Find(ctx context.Context, q finder.Query, _ finder.ProgressReporter) ([]finder.Match, error) {
	m.lastQuery = q
	if m.findFunc != nil {
		return m.findFunc(ctx, q)
	}
	return []finder.Match{{
		DependencyCoordinates: "com.example:lib:1.0",
		JarPath:               "/cache/com.example/lib/1.0/abc/lib-1.0.jar",
		ClassName:             q.ClassName,
	}}, nil
}

// mockResolver implements SourceResolver for testing
type mockResolver struct {
	rec         *source.Recovered
	err         error
	lastRequest source.Request
}

func (m *mockResolver) Resolve(_ context.Context, req source.Request) (*source.Recovered, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.rec, nil
}

func callRequest(args any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		return ""
	}
	return text.Text
}
