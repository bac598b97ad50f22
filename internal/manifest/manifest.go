// Package manifest records what a build consumed and produced: the source
// commit, every page with a content fingerprint, and the blocks on it.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/styleguide/internal/docblock"
	"git.home.luguber.info/inful/styleguide/internal/pages"
)

// BuildManifest is a complete record of one build's inputs and outputs.
type BuildManifest struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Inputs    Inputs      `json:"inputs"`
	Pages     []PageEntry `json:"pages"`
	Status    string      `json:"status"`
	Duration  int64       `json:"duration_ms"`
	Warnings  int         `json:"warnings"`
}

// Inputs captures the build inputs.
type Inputs struct {
	Source       string `json:"source"`
	SourceCommit string `json:"source_commit,omitempty"`
	ConfigHash   string `json:"config_hash,omitempty"`
	Files        int    `json:"files"`
	Blocks       int    `json:"blocks"`
}

// PageEntry describes one written page.
type PageEntry struct {
	Name        string          `json:"name"`
	Title       string          `json:"title,omitempty"`
	Fingerprint string          `json:"fingerprint"`
	Blocks      []docblock.Meta `json:"blocks,omitempty"`
}

// New starts a manifest for the build identified by id.
func New(id string, now time.Time) *BuildManifest {
	return &BuildManifest{ID: id, Timestamp: now.UTC()}
}

// AddPages records every page in set, sorted by name.
func (m *BuildManifest) AddPages(set *pages.Set) {
	for _, name := range set.Names() {
		page, _ := set.Get(name)
		m.Pages = append(m.Pages, PageEntry{
			Name:        name,
			Title:       page.Title(),
			Fingerprint: Fingerprint(page),
			Blocks:      append([]docblock.Meta(nil), page.Blocks...),
		})
	}
}

// Fingerprint hashes a page's block metadata and markdown. Two pages with
// the same fingerprint render identically given the same templates.
func Fingerprint(page *pages.Page) string {
	meta := ""
	if len(page.Blocks) > 0 {
		data, err := yaml.Marshal(page.Blocks)
		if err == nil {
			meta = strings.TrimSuffix(string(data), "\n")
		}
	}
	return mdfp.CalculateFingerprintFromParts(meta, page.Markdown())
}

// ChangedPages lists pages whose fingerprint differs from prev, plus pages
// that are new. A nil prev, or one built from a different configuration,
// reports every page since headings and templates may have changed.
func (m *BuildManifest) ChangedPages(prev *BuildManifest) []string {
	old := make(map[string]string)
	if prev != nil && prev.Inputs.ConfigHash == m.Inputs.ConfigHash {
		for _, p := range prev.Pages {
			old[p.Name] = p.Fingerprint
		}
	}
	var changed []string
	for _, p := range m.Pages {
		if fp, ok := old[p.Name]; !ok || fp != p.Fingerprint {
			changed = append(changed, p.Name)
		}
	}
	sort.Strings(changed)
	return changed
}

// HashConfig returns a stable hash of raw configuration content.
func HashConfig(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum)
}

// SourceCommit returns the HEAD commit of the git worktree containing dir.
func SourceCommit(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	ref, err := repo.Head()
	if err != nil {
		return "", err
	}
	return ref.Hash().String(), nil
}

// ToJSON serializes the manifest to JSON.
func (m *BuildManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*BuildManifest, error) {
	var m BuildManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Write stores the manifest at path, creating parent directories.
func (m *BuildManifest) Write(path string) error {
	data, err := m.ToJSON()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads the manifest at path. A missing file yields (nil, nil).
func Read(path string) (*BuildManifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}
