package echo

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openapiYAML []byte

var (
	documentOnce sync.Once
	document     *openapi3.T
	documentErr  error
)

// Document returns the validated OpenAPI description of the demo endpoints.
func Document(ctx context.Context) (*openapi3.T, error) {
	documentOnce.Do(func() {
		document, documentErr = loadDocument(ctx, openapiYAML)
	})
	return document, documentErr
}

func loadDocument(ctx context.Context, raw []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("echo: load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("echo: validate openapi document: %w", err)
	}
	return doc, nil
}

// Route summarises one documented operation.
type Route struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	MediaTypes  []string
}

// Routes lists the operations of doc ordered by path then method.
func Routes(doc *openapi3.T) []Route {
	if doc == nil || doc.Paths == nil {
		return nil
	}

	var routes []Route
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			routes = append(routes, Route{
				Method:      strings.ToUpper(method),
				Path:        path,
				OperationID: op.OperationID,
				Summary:     op.Summary,
				MediaTypes:  requestMediaTypes(op),
			})
		}
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	return routes
}

func requestMediaTypes(op *openapi3.Operation) []string {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	types := make([]string, 0, len(op.RequestBody.Value.Content))
	for mediaType := range op.RequestBody.Value.Content {
		types = append(types, mediaType)
	}
	sort.Strings(types)
	return types
}

// AllowsMethod reports whether doc documents method on path.
func AllowsMethod(doc *openapi3.T, method, path string) bool {
	if doc == nil || doc.Paths == nil {
		return false
	}
	item := doc.Paths.Find(path)
	return item != nil && item.GetOperation(strings.ToUpper(method)) != nil
}
