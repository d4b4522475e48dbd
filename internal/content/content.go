// Package content lists the directories browsed by the menu.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry is a single directory listing row.
type Entry struct {
	Name    string
	Path    string
	Dir     bool
	Size    int64
	ModTime time.Time
}

// Ext returns the lower-cased extension without the leading dot.
func (e Entry) Ext() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(e.Name), "."))
}

// Snapshot is the result of scanning one directory.
type Snapshot struct {
	Dir     string
	Entries []Entry
	Scanned time.Time
}

// Options controls which entries a scan keeps.
type Options struct {
	ShowHidden bool
	// Extensions restricts files to the listed extensions (lower case,
	// no dot). Directories are never filtered. Empty allows every file.
	Extensions []string
}

func (o Options) allows(name string, dir bool) bool {
	if !o.ShowHidden && strings.HasPrefix(name, ".") {
		return false
	}
	if dir || len(o.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	for _, allowed := range o.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Scan lists dir: directories first, then files, each group sorted
// case-insensitively by name.
func Scan(dir string, opts Options) (Snapshot, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Snapshot{}, fmt.Errorf("resolve %s: %w", dir, err)
	}
	dirents, err := os.ReadDir(abs)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", abs, err)
	}
	entries := make([]Entry, 0, len(dirents))
	for _, de := range dirents {
		path := filepath.Join(abs, de.Name())
		isDir := de.IsDir()
		if de.Type()&os.ModeSymlink != 0 {
			if target, err := os.Stat(path); err == nil {
				isDir = target.IsDir()
			}
		}
		if !opts.allows(de.Name(), isDir) {
			continue
		}
		entry := Entry{Name: de.Name(), Path: path, Dir: isDir}
		if info, err := de.Info(); err == nil {
			entry.ModTime = info.ModTime()
			if !isDir {
				entry.Size = info.Size()
			}
		}
		entries = append(entries, entry)
	}
	Sort(entries)
	return Snapshot{Dir: abs, Entries: entries, Scanned: time.Now()}, nil
}

// Sort orders entries directories first, then case-insensitively by name.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Dir != b.Dir {
			return a.Dir
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}

// Find looks up an entry by absolute path.
func (s Snapshot) Find(path string) (Entry, bool) {
	for _, entry := range s.Entries {
		if entry.Path == path {
			return entry, true
		}
	}
	return Entry{}, false
}
