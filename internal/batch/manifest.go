package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"foldfeat/internal/extract"
	"foldfeat/internal/textutil"
)

// Manifest is the on-disk batch description.
type Manifest struct {
	Jobs []ManifestJob `toml:"job"`
}

// ManifestJob is one [[job]] table.
type ManifestJob struct {
	Name   string `toml:"name"`
	CT     string `toml:"ct"`
	Dot    string `toml:"dot"`
	Output string `toml:"output"`
	Format string `toml:"format"`
}

// LoadManifest reads a manifest file. Relative paths are resolved against the
// manifest's directory.
func LoadManifest(path string) ([]extract.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var manifest Manifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(manifest.Jobs) == 0 {
		return nil, errors.New("manifest lists no jobs")
	}

	base := filepath.Dir(path)
	jobs := make([]extract.Job, 0, len(manifest.Jobs))
	for i, entry := range manifest.Jobs {
		if strings.TrimSpace(entry.CT) == "" || strings.TrimSpace(entry.Dot) == "" {
			return nil, fmt.Errorf("manifest job %d: ct and dot are required", i+1)
		}
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			name = textutil.SequenceName(entry.CT)
		}
		job := extract.Job{
			Name:    name,
			CTPath:  resolve(base, entry.CT),
			DotPath: resolve(base, entry.Dot),
			Format:  strings.TrimSpace(entry.Format),
		}
		if entry.Output != "" {
			job.OutputPath = resolve(base, entry.Output)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Discover pairs every *.ct file in dir with a sibling *.dot file of the
// same stem. CT files without a companion are returned in missing.
func Discover(dir string) (jobs []extract.Job, missing []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read batch directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".ct") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		stem := textutil.SequenceName(name)
		ctPath := filepath.Join(dir, name)
		dotPath := filepath.Join(dir, stem+".dot")
		if info, statErr := os.Stat(dotPath); statErr != nil || info.IsDir() {
			missing = append(missing, ctPath)
			continue
		}
		jobs = append(jobs, extract.Job{Name: stem, CTPath: ctPath, DotPath: dotPath})
	}
	return jobs, missing, nil
}

func resolve(base, path string) string {
	path = strings.TrimSpace(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
