// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package validate

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/bigeen/site/internal/"

// TestLayeringRules enforces the leaf-first package layering: tokens and
// content are pure data, primitives are stateless, and only the server
// knows about sessions.
func TestLayeringRules(t *testing.T) {
	projectRoot := findProjectRoot(t)

	rules := []struct {
		dir       string
		forbidden []string
		reason    string
	}{
		{"internal/content", []string{modulePath}, "content registry is a leaf package"},
		{"internal/theme", []string{modulePath}, "design tokens are a leaf package"},
		{"internal/motion", []string{modulePath}, "motion presets are a leaf package"},
		{"internal/store", []string{modulePath + "ui", modulePath + "pages", modulePath + "session", modulePath + "server"}, "store must not depend on views or transport"},
		{"internal/ui", []string{modulePath + "store", modulePath + "session", modulePath + "server", modulePath + "pages"}, "primitives are stateless"},
		{"internal/pages", []string{modulePath + "session", modulePath + "server", "net/http"}, "pages receive the store by injection"},
		{"internal/shell", []string{modulePath + "session", modulePath + "server"}, "shell receives state by injection"},
		{"internal/session", []string{modulePath + "server", modulePath + "pages"}, "sessions sit below the server"},
	}

	var violations []string
	for _, rule := range rules {
		for _, prefix := range rule.forbidden {
			violations = append(violations, checkForbiddenImport(t, projectRoot, rule.dir, prefix, rule.reason)...)
		}
	}

	if len(violations) > 0 {
		t.Errorf("Layering violations detected:\n\n%s", strings.Join(violations, "\n"))
	}
}

// TestNoUtilsPackages prevents creation of catch-all helper packages.
func TestNoUtilsPackages(t *testing.T) {
	projectRoot := findProjectRoot(t)

	for _, dir := range []string{"internal/utils", "internal/util", "internal/common", "internal/helpers", "internal/shared"} {
		if _, err := os.Stat(filepath.Join(projectRoot, dir)); err == nil {
			t.Errorf("forbidden package detected: %s (use a semantically named package)", dir)
		}
	}
}

func checkForbiddenImport(t *testing.T, projectRoot, sourceDir, forbiddenImportPrefix, reason string) []string {
	t.Helper()

	files, err := findGoFiles(filepath.Join(projectRoot, sourceDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("Failed to scan %s: %v", sourceDir, err)
	}

	var violations []string
	for _, file := range files {
		imports, err := extractImports(file)
		if err != nil {
			t.Logf("Warning: failed to parse %s: %v", file, err)
			continue
		}
		for _, imp := range imports {
			if imp == forbiddenImportPrefix || strings.HasPrefix(imp, forbiddenImportPrefix) {
				relPath, _ := filepath.Rel(projectRoot, file)
				violations = append(violations, fmt.Sprintf("  %s imports %s\n     Reason: %s", relPath, imp, reason))
			}
		}
	}
	return violations
}

func findGoFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".go") && !strings.HasSuffix(path, "_test.go") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func extractImports(filePath string) ([]string, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filePath, nil, parser.ImportsOnly)
	if err != nil {
		return nil, err
	}

	imports := make([]string, 0, len(f.Imports))
	for _, imp := range f.Imports {
		imports = append(imports, strings.Trim(imp.Path.Value, `"`))
	}
	return imports, nil
}

func findProjectRoot(t *testing.T) string {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("Could not find project root (no go.mod found)")
		}
		dir = parent
	}
}
