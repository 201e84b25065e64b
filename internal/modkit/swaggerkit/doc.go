package swaggerkit

import (
	"encoding/json"
	"net/http"
	"sort"

	"bankingops/internal/platform/version"
)

type (
	document struct {
		OpenAPI string                     `json:"openapi"`
		Info    info                       `json:"info"`
		Paths   map[string]map[string]item `json:"paths"`
	}
	info struct {
		Title   string `json:"title"`
		Version string `json:"version"`
	}
	item struct {
		Summary    string           `json:"summary"`
		Tags       []string         `json:"tags"`
		Parameters []param          `json:"parameters,omitempty"`
		Responses  map[string]reply `json:"responses"`
	}
	param struct {
		Name     string         `json:"name"`
		In       string         `json:"in"`
		Required bool           `json:"required"`
		Schema   map[string]any `json:"schema"`
	}
	reply struct {
		Description string `json:"description"`
	}
)

func get(tag, summary string) map[string]item {
	return map[string]item{"get": {
		Summary:   summary,
		Tags:      []string{tag},
		Responses: map[string]reply{"200": {Description: "ok"}},
	}}
}

// buildDoc describes the v1 surface; ops fills the operation path enum
func buildDoc(ops []string) document {
	ops = append([]string(nil), ops...)
	sort.Strings(ops)

	opSchema := map[string]any{"type": "string"}
	if len(ops) > 0 {
		opSchema["enum"] = ops
	}

	return document{
		OpenAPI: "3.0.3",
		Info:    info{Title: "bankingops API", Version: version.Info("bankingops-api").Version},
		Paths: map[string]map[string]item{
			"/api/v1/meta/health":  get("Meta", "Health check"),
			"/api/v1/meta/ready":   get("Meta", "Readiness with dependency checks"),
			"/api/v1/meta/version": get("Meta", "Build and version info"),
			"/api/v1/meta/service": get("Meta", "Service info and uptime"),
			"/api/v1/operations":   get("Operations", "List dispatchable operations"),
			"/api/v1/operations/{operation}": {"post": {
				Summary:    "Invoke an operation",
				Tags:       []string{"Operations"},
				Parameters: []param{{Name: "operation", In: "path", Required: true, Schema: opSchema}},
				Responses: map[string]reply{
					"200": {Description: "ok"},
					"400": {Description: "malformed body"},
					"422": {Description: "invalid input or policy violation"},
					"502": {Description: "dependency rejected the call"},
					"503": {Description: "dependency unavailable"},
				},
			}},
		},
	}
}

func serveDocJSON(ops []string) http.HandlerFunc {
	body, err := json.Marshal(buildDoc(ops))
	if err != nil {
		panic("swaggerkit: encode doc: " + err.Error())
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(body)
	}
}
