// Package upptimerc reads and rewrites the sites of an Upptime config file.
//
// Only the lines of the top-level `sites` entry are rewritten. Every other
// byte of the file, comments and blank lines included, is kept as is.
package upptimerc

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/noplagiarism/upptimectl/internal/domain"
)

// Ensure Store implements domain.SiteStore.
var _ domain.SiteStore = (*Store)(nil)

const sitesKey = "sites"

// Store implements domain.SiteStore on a YAML file.
type Store struct {
	path string
}

// New creates a new Store for the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the file path.
func (s *Store) Path() string {
	return s.path
}

// Sites returns the site records in file order.
// A missing or null `sites` key yields no sites.
func (s *Store) Sites() ([]domain.Site, error) {
	_, doc, err := s.read()
	if err != nil {
		return nil, err
	}

	_, value := findKey(root(doc), sitesKey)
	if value == nil || value.Tag == "!!null" {
		return nil, nil
	}
	if value.Kind != yaml.SequenceNode {
		return nil, domain.ErrSitesNotSequence
	}

	sites := make([]domain.Site, 0, len(value.Content))
	for i, item := range value.Content {
		var site domain.Site
		if err := item.Decode(&site); err != nil {
			return nil, fmt.Errorf("decode site %d: %w", i, err)
		}
		sites = append(sites, site)
	}
	return sites, nil
}

// ReplaceSites replaces the whole sites sequence and rewrites the file.
// A missing `sites` key is appended at the end of the file.
func (s *Store) ReplaceSites(sites []domain.Site) error {
	content, doc, err := s.read()
	if err != nil {
		return err
	}

	seq, err := sitesNode(sites)
	if err != nil {
		return err
	}

	mapping := root(doc)
	key, value := findKey(mapping, sitesKey)
	block, err := encode(sitesEntry(key, value, seq))
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	out, ok := spliceSites(content, mapping, block)
	if !ok {
		// Flow mappings and odd layouts cannot be cut by line
		if value != nil {
			seq.HeadComment = value.HeadComment
			seq.LineComment = value.LineComment
			seq.FootComment = value.FootComment
			*value = *seq
		} else {
			k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: sitesKey}
			mapping.Content = append(mapping.Content, k, seq)
		}
		if out, err = encode(doc); err != nil {
			return fmt.Errorf("encode %s: %w", s.path, err)
		}
	}

	return s.write(out)
}

func (s *Store) read() ([]byte, *yaml.Node, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		}
	}
	if r := root(&doc); r == nil || r.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("parse %s: top level is not a mapping", s.path)
	}
	return content, &doc, nil
}

func (s *Store) write(content []byte) error {
	perm := fs.FileMode(0o644)
	if info, err := os.Stat(s.path); err == nil {
		perm = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, perm); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func encode(n *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sitesEntry wraps seq in a one-key mapping ready to be spliced in.
// A line comment on the old `sites:` line is carried over; head comments
// sit above the entry and are never cut.
func sitesEntry(key, value, seq *yaml.Node) *yaml.Node {
	k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: sitesKey}
	if key != nil {
		k.LineComment = key.LineComment
		if k.LineComment == "" && value != nil {
			k.LineComment = value.LineComment
		}
	}
	return &yaml.Node{
		Kind:    yaml.MappingNode,
		Tag:     "!!map",
		Content: []*yaml.Node{k, seq},
	}
}

// spliceSites replaces the lines of the top-level sites entry with block.
// The entry runs from the `sites:` line up to the next top-level key, minus
// the blank lines and unindented comments that lead into that key.
// It reports false when the entry cannot be located by line.
func spliceSites(content []byte, mapping *yaml.Node, block []byte) ([]byte, bool) {
	if mapping.Style&yaml.FlowStyle != 0 {
		return nil, false
	}

	idx := -1
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == sitesKey {
			idx = i
			break
		}
	}

	if idx < 0 {
		out := append([]byte(nil), content...)
		if len(out) > 0 && out[len(out)-1] != '\n' {
			out = append(out, '\n')
		}
		return append(out, block...), true
	}

	lines := bytes.SplitAfter(content, []byte("\n"))
	key := mapping.Content[idx]
	if key.Column != 1 || key.Line < 1 || key.Line > len(lines) {
		return nil, false
	}
	start := key.Line - 1
	end := len(lines)
	if idx+2 < len(mapping.Content) {
		next := mapping.Content[idx+2]
		if next.Line-1 <= start || next.Line > len(lines) {
			return nil, false
		}
		end = next.Line - 1
	}
	for end > start+1 && leadsIntoNext(lines[end-1]) {
		end--
	}

	var out bytes.Buffer
	for _, l := range lines[:start] {
		out.Write(l)
	}
	out.Write(block)
	for _, l := range lines[end:] {
		out.Write(l)
	}
	return out.Bytes(), true
}

func leadsIntoNext(line []byte) bool {
	return len(bytes.TrimSpace(line)) == 0 || line[0] == '#'
}

func root(doc *yaml.Node) *yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	return doc.Content[0]
}

// findKey returns the key and value nodes of a mapping entry.
func findKey(mapping *yaml.Node, key string) (*yaml.Node, *yaml.Node) {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil, nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i], mapping.Content[i+1]
		}
	}
	return nil, nil
}

// sitesNode builds the block sequence for a site list.
func sitesNode(sites []domain.Site) (*yaml.Node, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, site := range sites {
		n, err := siteNode(site)
		if err != nil {
			return nil, fmt.Errorf("encode site %s: %w", site.URL, err)
		}
		seq.Content = append(seq.Content, n)
	}
	return seq, nil
}

// siteNode builds one site mapping with a fixed key order:
// known fields first, extra fields sorted by key.
// expectedStatusCodes is rendered in flow style.
func siteNode(site domain.Site) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	add := func(key string, value any, style yaml.Style) error {
		var v yaml.Node
		if err := v.Encode(value); err != nil {
			return err
		}
		v.Style |= style
		k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		m.Content = append(m.Content, k, &v)
		return nil
	}

	type field struct {
		key   string
		value any
		set   bool
		style yaml.Style
	}
	fields := []field{
		{"name", site.Name, true, 0},
		{"url", site.URL, true, 0},
		{"method", site.Method, site.Method != "", 0},
		{"port", site.Port, site.Port != 0, 0},
		{"body", site.Body, site.Body != "", 0},
		{"icon", site.Icon, site.Icon != "", 0},
		{"expectedStatusCodes", site.ExpectedStatusCodes, len(site.ExpectedStatusCodes) > 0, yaml.FlowStyle},
	}
	for _, f := range fields {
		if !f.set {
			continue
		}
		if err := add(f.key, f.value, f.style); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(site.Extra))
	for k := range site.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := add(k, site.Extra[k], 0); err != nil {
			return nil, err
		}
	}
	return m, nil
}
