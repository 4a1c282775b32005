// internal/knowledge/knowledge.go
// File-backed knowledge retrieval for debate preparation. Snippets live
// under a base directory as <identity>/<topic-slug>.txt; a missing file
// simply means no knowledge, never an error surfaced to the debate.
package knowledge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileSize is the largest snippet we will load (256KB).
const MaxFileSize = 256 * 1024

// Retriever returns contextual factual text for a topic/identity pair.
// An empty string is a valid result.
type Retriever interface {
	Retrieve(ctx context.Context, topic, identity string) (string, error)
}

// Nop is the retriever used when RAG is disabled.
type Nop struct{}

func (Nop) Retrieve(context.Context, string, string) (string, error) {
	return "", nil
}

// Dir serves snippets from a local directory tree.
type Dir struct {
	base string
}

// NewDir returns a directory-backed retriever rooted at base.
func NewDir(base string) *Dir {
	return &Dir{base: base}
}

// Retrieve looks for <base>/<identity>/<slug(topic)>.txt, then the
// identity-level default <base>/<identity>.txt. Both missing yields an
// empty result.
func (d *Dir) Retrieve(_ context.Context, topic, identity string) (string, error) {
	if d.base == "" {
		return "", nil
	}

	candidates := []string{
		filepath.Join(d.base, identity, Slug(topic)+".txt"),
		filepath.Join(d.base, identity+".txt"),
	}
	for _, path := range candidates {
		content, err := loadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", err
		}
		return content, nil
	}
	return "", nil
}

func loadFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("knowledge path %s is a directory", path)
	}
	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("knowledge file too large (%d bytes, max %d)", info.Size(), MaxFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(content)), nil
}

// Slug converts a topic into a lowercase hyphenated file name.
func Slug(topic string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(topic) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			sb.WriteRune('-')
		}
	}
	out := sb.String()
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	return strings.Trim(out, "-")
}
