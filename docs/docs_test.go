package docs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

var routerAnnotation = regexp.MustCompile(`@Router\s+(\S+)\s+\[(\w+)\]`)

func TestSwaggerCoversAnnotatedRoutes(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("swagger doc is not valid JSON: %v", err)
	}

	files, err := filepath.Glob(filepath.Join("..", "internal", "handler", "*.go"))
	if err != nil || len(files) == 0 {
		t.Fatalf("no handler sources found: %v", err)
	}

	count := 0
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			t.Fatal(err)
		}
		for _, m := range routerAnnotation.FindAllStringSubmatch(string(src), -1) {
			count++
			path, method := m[1], m[2]
			if _, ok := doc.Paths[path][method]; !ok {
				t.Errorf("%s: %s %s missing from swagger doc", filepath.Base(file), method, path)
			}
		}
	}
	if count == 0 {
		t.Fatal("no @Router annotations found")
	}
}
