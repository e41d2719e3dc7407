package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// detectUserModule detects the user's Go module name by finding and reading go.mod.
// Returns the module name and the directory that holds go.mod.
func detectUserModule(outputDir string) (string, string, error) {
	root, err := findModuleRoot(outputDir)
	if err != nil {
		return "", "", err
	}
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return "", "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "module ") {
			continue
		}
		moduleName := strings.TrimSpace(strings.TrimPrefix(line, "module "))
		// Remove any comments
		if idx := strings.Index(moduleName, "//"); idx != -1 {
			moduleName = strings.TrimSpace(moduleName[:idx])
		}
		return strings.Trim(moduleName, `"`), root, nil
	}
	return "", "", fmt.Errorf("module declaration not found in go.mod")
}

// findModuleRoot finds the directory containing go.mod
func findModuleRoot(outputDir string) (string, error) {
	dir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached root
		}
		dir = parent
	}
	return "", fmt.Errorf("go.mod not found")
}

// calculateImportPath calculates the import path of the generated package
// at outputDir, like "userModule/db"
func calculateImportPath(userModule, moduleRoot, outputDir string) (string, error) {
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return "", err
	}
	relPath, err := filepath.Rel(moduleRoot, abs)
	if err != nil {
		return "", fmt.Errorf("failed to calculate relative path: %w", err)
	}

	// Normalize path to use forward slashes (even on Windows)
	importBase := filepath.ToSlash(relPath)
	if strings.HasPrefix(importBase, "..") {
		return "", fmt.Errorf("output %s is outside module %s", outputDir, userModule)
	}
	if importBase == "." {
		return userModule, nil
	}
	return userModule + "/" + importBase, nil
}
