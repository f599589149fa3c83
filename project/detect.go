package project

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// ProjectInfo is what Detector resolves for a given analysis root: its kind
// (go/rust/python/javascript/typescript/cpp/java/...), the declared module
// or package name used to label the rendered graphs, and the root path
// source discovery should walk from.
type ProjectInfo struct {
	RootPath string
	Type     string
	Name     string
}

// Detector locates the project root that owns an analysis target by
// walking up from it looking for a marker file, the same heuristic a
// human would use to decide "which go.mod am I under".
type Detector struct {
	markers []string
}

// NewDetector builds a Detector with llmcc's supported-language markers
// (spec.md §4.3's five languages) plus the generic VCS marker.
func NewDetector() *Detector {
	return &Detector{
		markers: []string{
			"go.mod",
			"Cargo.toml",
			"pyproject.toml",
			"requirements.txt",
			"package.json",
			"tsconfig.json",
			"CMakeLists.txt",
			".git",
		},
	}
}

// Detect identifies the project root for path (a file or directory) and
// extracts a human-readable project name from whatever marker matched.
func (d *Detector) Detect(path string) (*ProjectInfo, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	startDir := absPath
	fi, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, marker := d.findRoot(startDir)
	info := &ProjectInfo{RootPath: absPath, Type: "unknown"}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType(marker)
		info.Name = d.projectName(rootPath, marker)
	}
	return info, nil
}

func (d *Detector) findRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, marker
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

func (d *Detector) projectName(rootPath, marker string) string {
	switch marker {
	case "go.mod":
		return goModuleName(filepath.Join(rootPath, marker))
	case "Cargo.toml":
		return regexName(filepath.Join(rootPath, marker), `\[package\](?:.|\n)*?name\s*=\s*["']([^"']+)["']`, rootPath)
	case "pyproject.toml":
		return regexName(filepath.Join(rootPath, marker), `\[(?:tool\.poetry|project)\](?:.|\n)*?name\s*=\s*["']([^"']+)["']`, rootPath)
	case "package.json":
		return regexName(filepath.Join(rootPath, marker), `"name"\s*:\s*"([^"]+)"`, rootPath)
	case "tsconfig.json":
		return filepath.Base(rootPath)
	case "CMakeLists.txt":
		return regexName(filepath.Join(rootPath, marker), `project\s*\(\s*([A-Za-z0-9_.-]+)`, rootPath)
	case ".git":
		return gitOriginName(rootPath)
	default:
		return filepath.Base(rootPath)
	}
}

// goModuleName reads go.mod through afs (spec.md's domain-stack wiring
// note: file content flows through afs, not bare os.ReadFile) and falls
// back to the directory name if the module declaration can't be parsed.
func goModuleName(goModPath string) string {
	fs := afs.New()
	if content, err := fs.DownloadWithURL(context.Background(), goModPath); err == nil && len(content) > 0 {
		if mod, err := modfile.Parse(goModPath, content, nil); err == nil && mod.Module != nil {
			return mod.Module.Mod.Path
		}
	}
	return filepath.Base(filepath.Dir(goModPath))
}

func regexName(path, pattern, fallbackDir string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return filepath.Base(fallbackDir)
	}
	re := regexp.MustCompile(pattern)
	matches := re.FindSubmatch(data)
	if len(matches) < 2 {
		return filepath.Base(fallbackDir)
	}
	return string(matches[1])
}

func gitOriginName(gitRoot string) string {
	configPath := filepath.Join(gitRoot, ".git", "config")
	file, err := os.Open(configPath)
	if err != nil {
		return filepath.Base(gitRoot)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	foundOrigin := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, `[remote "origin"]`) {
			foundOrigin = true
			continue
		}
		if foundOrigin && strings.HasPrefix(line, "url = ") {
			url := strings.TrimSuffix(strings.TrimPrefix(line, "url = "), ".git")
			parts := strings.Split(url, "/")
			if len(parts) > 0 {
				return parts[len(parts)-1]
			}
		}
	}
	return filepath.Base(gitRoot)
}

func projectType(marker string) string {
	switch marker {
	case "go.mod":
		return "go"
	case "Cargo.toml":
		return "rust"
	case "pyproject.toml", "requirements.txt":
		return "python"
	case "package.json":
		return "javascript"
	case "tsconfig.json":
		return "typescript"
	case "CMakeLists.txt":
		return "cpp"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}
