// Package servicedir lists the services tracked as directories on disk.
package servicedir

import (
	"fmt"
	"os"
	"sort"

	"github.com/noplagiarism/upptimectl/internal/domain"
)

// Ensure Lister implements domain.ServiceDirectory.
var _ domain.ServiceDirectory = (*Lister)(nil)

// Lister implements domain.ServiceDirectory on a directory.
type Lister struct {
	dir string
}

// New creates a Lister for dir.
func New(dir string) *Lister {
	return &Lister{dir: dir}
}

// List returns the names of the immediate subdirectories of dir, sorted.
// Files are ignored. A missing directory is an error, since an empty
// listing would mark every service as stale.
func (l *Lister) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("list services in %s: %w", l.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
