// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// filesystem logic while this package handles presentation concerns like
// column alignment and tree rendering.
package format

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// Entry describes one filesystem entry for display.
type Entry struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"` // workspace-relative, forward slashes
	IsDir   bool      `json:"is_dir"`
	Symlink bool      `json:"symlink,omitempty"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modified"`
}

// label returns the display name with a trailing "/" for directories.
func (e Entry) label(name string) string {
	switch {
	case e.IsDir:
		return name + "/"
	case e.Symlink:
		return name + "@"
	default:
		return name
	}
}

// HumanSize formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func HumanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// List prints entry names, one per line.
func List(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		fmt.Fprintln(w, e.label(e.Name))
	}
	return nil
}

// Long prints entries in long format.
//
// Column order is TYPE, SIZE, MODIFIED, NAME. Fixed-width columns come first
// so they align properly; the variable-length name goes last.
func Long(w io.Writer, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	fmt.Fprintf(w, "%-4s  %6s  %-16s  %s\n", "TYPE", "SIZE", "MODIFIED", "NAME")
	for _, e := range entries {
		kind := "file"
		size := HumanSize(e.Size)
		switch {
		case e.IsDir:
			kind, size = "dir", "-"
		case e.Symlink:
			kind = "link"
		}
		fmt.Fprintf(w, "%-4s  %6s  %-16s  %s\n", kind, size, e.ModTime.Format("2006-01-02 15:04"), e.label(e.Name))
	}
	return nil
}

// Tree prints entries as a directory tree. Entry paths are split on "/" and
// rendered relative to their common root.
func Tree(w io.Writer, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	type node struct {
		children map[string]*node
		entry    *Entry
	}

	root := &node{children: make(map[string]*node)}

	for i := range entries {
		parts := strings.Split(entries[i].Path, "/")
		current := root
		for _, part := range parts {
			if current.children[part] == nil {
				current.children[part] = &node{children: make(map[string]*node)}
			}
			current = current.children[part]
		}
		current.entry = &entries[i]
	}

	var printNode func(n *node, prefix string)
	printNode = func(n *node, prefix string) {
		names := make([]string, 0, len(n.children))
		for name := range n.children {
			names = append(names, name)
		}
		sort.Strings(names)

		for i, name := range names {
			child := n.children[name]
			last := i == len(names)-1

			connector := "├── "
			if last {
				connector = "└── "
			}

			display := name + "/"
			if child.entry != nil {
				display = child.entry.label(name)
			}
			fmt.Fprintf(w, "%s%s%s\n", prefix, connector, display)

			pfx := prefix
			if last {
				pfx += "    "
			} else {
				pfx += "│   "
			}

			if len(child.children) > 0 {
				printNode(child, pfx)
			}
		}
	}

	printNode(root, "")
	return nil
}

// Paths prints paths, one per line.
func Paths(w io.Writer, paths []string) error {
	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
	return nil
}
