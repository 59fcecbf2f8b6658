// Package targets reads target descriptor files.
package targets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/prebuild/internal/core/domain"
	"go.trai.ch/prebuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.TargetProvider = (*Reader)(nil)

// Reader implements ports.TargetProvider for a directory of target files.
//
// A target file is YAML (or JSON) holding either a list of browser queries or
// a mapping with a "browsers" list. Anything else is read as one query per
// line, with '#' starting a comment, like a browserslist file.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Targets returns one target per regular file in dir, in name order.
// Hidden files are skipped. A missing directory yields no targets.
func (r *Reader) Targets(dir string) ([]domain.Target, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTargetsReadFailed.Error()), "dir", dir)
	}

	targets := make([]domain.Target, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		t, err := r.Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// Load reads a single target file.
func (r *Reader) Load(path string) (domain.Target, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	// #nosec G304 -- target files are listed from the configured targets directory
	content, err := os.ReadFile(abs)
	if err != nil {
		return domain.Target{}, zerr.With(zerr.Wrap(err, domain.ErrTargetsReadFailed.Error()), "file", abs)
	}
	if content == nil {
		content = []byte{}
	}

	browsers, err := parseBrowsers(content)
	if err != nil {
		return domain.Target{}, zerr.With(err, "file", abs)
	}

	return domain.Target{
		Browsers: browsers,
		Path:     abs,
		Content:  content,
	}, nil
}

type browsersDoc struct {
	Browsers []string `yaml:"browsers"`
}

func parseBrowsers(content []byte) ([]string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err == nil && len(node.Content) > 0 {
		doc := node.Content[0]
		switch doc.Kind {
		case yaml.SequenceNode:
			var list []string
			if err := doc.Decode(&list); err != nil {
				return nil, zerr.Wrap(err, domain.ErrTargetParseFailed.Error())
			}
			return list, nil
		case yaml.MappingNode:
			var bd browsersDoc
			if err := doc.Decode(&bd); err != nil {
				return nil, zerr.Wrap(err, domain.ErrTargetParseFailed.Error())
			}
			if bd.Browsers == nil {
				return nil, zerr.Wrap(errors.New("mapping has no browsers key"), domain.ErrTargetParseFailed.Error())
			}
			return bd.Browsers, nil
		}
	}

	return parseLines(string(content)), nil
}

func parseLines(content string) []string {
	var queries []string
	for _, line := range strings.Split(content, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, q := range strings.Split(line, ",") {
			if q = strings.TrimSpace(q); q != "" {
				queries = append(queries, q)
			}
		}
	}
	return queries
}
