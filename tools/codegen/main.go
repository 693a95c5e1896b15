// Command codegen generates the model handle types of the mlpack package from
// the C headers of the native Go bindings.
//
// Usage:
//
//	go run ./tools/codegen -headers /path/to/mlpack/build/src/mlpack/bindings/go/mlpack/capi -out mlpack
package main

import (
	"bufio"
	"bytes"
	_ "embed"
	"flag"
	"fmt"
	"go/format"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"text/template"
)

var (
	// Regular expressions for parsing the binding headers
	setterPattern = regexp.MustCompile(`\bmlpackSet([A-Za-z0-9_]+)Ptr\s*\(`)
	entryPattern  = regexp.MustCompile(`\bvoid\s+mlpack([A-Z][A-Za-z0-9_]*)\s*\(`)
)

//go:embed templates/models.go.tmpl
var modelsTemplate string

type Model struct {
	Name string
}

type Header struct {
	Path       string
	EntryPoint string
	Models     []string
}

type GeneratorConfig struct {
	Models      []Model
	PackageName string
	Source      string
}

func main() {
	headerDir := flag.String("headers", "", "Directory holding the capi/*.h binding headers")
	outDir := flag.String("out", "", "Output directory (e.g., mlpack)")
	pkg := flag.String("package", "mlpack", "Package name of the generated file")
	flag.Parse()

	if *headerDir == "" || *outDir == "" {
		log.Fatal("Header and output directories are required (-headers, -out flags)")
	}

	paths, err := filepath.Glob(filepath.Join(*headerDir, "*.h"))
	if err != nil {
		log.Fatalf("Failed to list headers: %v", err)
	}
	if len(paths) == 0 {
		log.Fatalf("No headers found in %s", *headerDir)
	}

	seen := make(map[string]bool)
	var models []Model
	for _, path := range paths {
		header, err := parseHeaderFile(path)
		if err != nil {
			log.Fatalf("Failed to parse %s: %v", path, err)
		}
		if header.EntryPoint == "" {
			log.Printf("Skipping %s: no entry point", filepath.Base(path))
			continue
		}
		for _, name := range header.Models {
			if !seen[name] {
				seen[name] = true
				models = append(models, Model{Name: name})
			}
		}
	}
	slices.SortFunc(models, func(a, b Model) int { return strings.Compare(a.Name, b.Name) })

	log.Printf("Found %d model types in %d headers", len(models), len(paths))

	config := GeneratorConfig{
		Models:      models,
		PackageName: *pkg,
		Source:      "capi/*.h",
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	if err := executeTemplate(filepath.Join(*outDir, "models_gen.go"), modelsTemplate, config); err != nil {
		log.Fatalf("Failed to generate models_gen.go: %v", err)
	}

	log.Println("Generated models_gen.go")
	log.Println("Note: binding specs in bindings.go must be updated manually for new programs")
}

func parseHeaderFile(path string) (*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, err := parseHeader(bufio.NewScanner(f))
	if err != nil {
		return nil, err
	}
	header.Path = path
	return header, nil
}

func parseHeader(scanner *bufio.Scanner) (*Header, error) {
	header := &Header{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
			continue
		}

		if match := setterPattern.FindStringSubmatch(line); match != nil {
			header.Models = append(header.Models, match[1])
			continue
		}

		// The entry point is the only void function left once accessors are skipped.
		if strings.Contains(line, "mlpackGet") || strings.Contains(line, "mlpackDelete") {
			continue
		}
		if match := entryPattern.FindStringSubmatch(line); match != nil {
			header.EntryPoint = "mlpack" + match[1]
		}
	}

	return header, scanner.Err()
}

func executeTemplate(path, tmplStr string, config GeneratorConfig) error {
	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, config); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	// Format the generated code
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// If formatting fails, write unformatted code for debugging
		log.Printf("Warning: failed to format code: %v", err)
		formatted = buf.Bytes()
	}

	if err := os.WriteFile(path, formatted, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
