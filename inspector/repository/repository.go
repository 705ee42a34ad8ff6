package repository

import "golang.org/x/mod/modfile"

// Project represents information about a detected project
type Project struct {
	RootPath     string          // Absolute path to the project root directory
	Type         string          // Type of project (ruby, go, git, unknown)
	Name         string          // Name of the project (extracted from manifest files)
	RelativePath string          // Path from project root to the inspected location
	Origin       string          // Git origin URL when available
	GoModule     *modfile.Module // Set for Go projects
}
