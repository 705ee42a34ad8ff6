package repository

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

var (
	gemspecNameRe = regexp.MustCompile(`\.name\s*=\s*["']([^"']+)["']`)
	gemfileNameRe = regexp.MustCompile(`(?m)^\s*gemspec\s+name:\s*["']([^"']+)["']`)
)

// Detector identifies project root folders and provides project-related information
type Detector struct {
	fs afs.Service
	// Common project root marker files/directories, in priority order
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		fs: afs.New(),
		markers: []string{
			"Gemfile",  // Ruby projects
			".gemspec", // Ruby gems (suffix)
			"go.mod",   // Go projects
			".git",     // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given path and returns project info
func (d *Detector) DetectProject(location string) (*Project, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}

	// If it's a file, start from its parent directory
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, projectType := d.findProjectRoot(startDir)
	info := &Project{
		Type:     "unknown",
		RootPath: startDir,
		Name:     filepath.Base(startDir),
	}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
		info.Name = d.extractProjectName(rootPath, projectType, info)
	}
	if gitRoot := d.findGitRoot(info.RootPath); gitRoot != "" {
		info.Origin = extractGitOrigin(gitRoot)
	}

	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)
	return info, nil
}

// findProjectRoot searches up from the start directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if d.hasMarker(dir, marker) {
				return dir, determineProjectType(marker)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// We've reached the filesystem root with no match
			break
		}
		dir = parent
	}
	return "", ""
}

func (d *Detector) hasMarker(dir, marker string) bool {
	if strings.HasPrefix(marker, ".") && marker != ".git" {
		matches, _ := filepath.Glob(filepath.Join(dir, "*"+marker))
		return len(matches) > 0
	}
	_, err := os.Stat(filepath.Join(dir, marker))
	return err == nil
}

// findGitRoot finds the root of the git repository containing the given directory
func (d *Detector) findGitRoot(startDir string) string {
	dir := startDir
	homeDir := os.Getenv("HOME")
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || parent == homeDir {
			return ""
		}
		dir = parent
	}
}

// extractProjectName attempts to extract a project name from manifest files
func (d *Detector) extractProjectName(rootPath string, projectType string, info *Project) string {
	switch projectType {
	case "ruby":
		if name := d.extractGemName(rootPath); name != "" {
			return name
		}
	case "go":
		if module := d.extractGoModule(filepath.Join(rootPath, "go.mod")); module != nil {
			info.GoModule = module
			return module.Mod.Path
		}
	case "git":
		if origin := extractGitOrigin(rootPath); origin != "" {
			origin = strings.TrimSuffix(origin, ".git")
			return origin[strings.LastIndexAny(origin, "/:")+1:]
		}
	}
	return filepath.Base(rootPath)
}

func (d *Detector) extractGemName(rootPath string) string {
	specs, _ := filepath.Glob(filepath.Join(rootPath, "*.gemspec"))
	for _, spec := range specs {
		content, err := d.fs.DownloadWithURL(context.Background(), spec)
		if err != nil {
			continue
		}
		if matches := gemspecNameRe.FindSubmatch(content); len(matches) == 2 {
			return string(matches[1])
		}
		return strings.TrimSuffix(filepath.Base(spec), ".gemspec")
	}
	content, err := d.fs.DownloadWithURL(context.Background(), filepath.Join(rootPath, "Gemfile"))
	if err != nil {
		return ""
	}
	if matches := gemfileNameRe.FindSubmatch(content); len(matches) == 2 {
		return string(matches[1])
	}
	return ""
}

func (d *Detector) extractGoModule(goModPath string) *modfile.Module {
	content, err := d.fs.DownloadWithURL(context.Background(), goModPath)
	if err != nil || len(content) == 0 {
		return nil
	}
	mod, err := modfile.ParseLax(goModPath, content, nil)
	if err != nil || mod.Module == nil {
		return nil
	}
	return mod.Module
}

// extractGitOrigin extracts the origin URL from git config
func extractGitOrigin(gitRoot string) string {
	data, err := os.ReadFile(filepath.Join(gitRoot, ".git", "config"))
	if err != nil {
		return ""
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			foundRemote = strings.Contains(line, `[remote "origin"]`)
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url") {
			if idx := strings.Index(line, "="); idx != -1 {
				return strings.TrimSpace(line[idx+1:])
			}
		}
	}
	return ""
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case "Gemfile", ".gemspec":
		return "ruby"
	case "go.mod":
		return "go"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}
