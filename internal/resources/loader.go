package resources

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

var (
	ErrMappingNotFound    = errors.New("namespace mapping file not found")
	ErrResourceNotFound   = errors.New("translation resource not found")
	ErrDuplicateNamespace = errors.New("duplicate namespace in mapping")
	ErrInvalidMapping     = errors.New("invalid namespace mapping")
	ErrUnsupportedFormat  = errors.New("unsupported resource format")
)

// Mapping associates namespace names with resource locators, in file order.
type Mapping struct {
	// Path is the absolute path of the mapping file.
	Path       string
	Namespaces []string
	Locators   map[string]string
}

// Dir is the directory relative resource locators resolve against.
func (m *Mapping) Dir() string {
	return filepath.Dir(m.Path)
}

// Bundle holds one resource tree per namespace for the duration of a run.
type Bundle struct {
	Mapping *Mapping
	Trees   map[string]Tree
}

// Tree returns the resource tree for namespace, or nil when the mapping does
// not define it.
func (b *Bundle) Tree(namespace string) Tree {
	if b == nil {
		return nil
	}
	return b.Trees[namespace]
}

// Lookup resolves key inside namespace.
func (b *Bundle) Lookup(namespace, key string, suffixes []string) (any, bool) {
	path, ok := ParseKeyPath(key)
	if !ok {
		return nil, false
	}
	return Resolve(b.Tree(namespace), path, suffixes)
}

// Loader reads mapping and resource files. It keeps no state between calls:
// every load reads the files from disk again, so edits made between runs are
// always observed.
type Loader struct {
	// WorkDir resolves relative mapping locators. Empty means the process
	// working directory.
	WorkDir string

	Logger zerolog.Logger
}

func NewLoader() *Loader {
	return &Loader{Logger: log.With().Str("sys", "resources").Logger()}
}

// LoadBundle loads the mapping file and every namespace resource it lists.
func (l *Loader) LoadBundle(mappingLocator string) (*Bundle, error) {
	mapping, err := l.LoadMapping(mappingLocator)
	if err != nil {
		return nil, err
	}

	bundle := &Bundle{
		Mapping: mapping,
		Trees:   make(map[string]Tree, len(mapping.Namespaces)),
	}
	for _, ns := range mapping.Namespaces {
		tree, err := l.LoadResource(mapping.Locators[ns], mapping.Dir())
		if err != nil {
			return nil, fmt.Errorf("namespace %q: %w", ns, err)
		}
		bundle.Trees[ns] = tree
	}

	l.Logger.Debug().
		Str("mapping", mapping.Path).
		Int("namespaces", len(mapping.Namespaces)).
		Msg("Loaded translation bundle")

	return bundle, nil
}

// LoadMapping reads the namespace mapping. Relative locators resolve against
// the working directory.
func (l *Loader) LoadMapping(locator string) (*Mapping, error) {
	if locator == "" {
		return nil, fmt.Errorf("%w: empty path", ErrMappingNotFound)
	}

	path, err := resolvePath(locator, l.workDir())
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMappingNotFound, path)
		}
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	mapping := &Mapping{Path: path, Locators: make(map[string]string)}
	if err := parseMapping(path, data, mapping); err != nil {
		return nil, err
	}

	l.Logger.Debug().
		Str("path", path).
		Strs("namespaces", mapping.Namespaces).
		Msg("Loaded namespace mapping")

	return mapping, nil
}

// LoadResource reads one translation resource. Relative locators resolve
// against baseDir.
func (l *Loader) LoadResource(locator, baseDir string) (Tree, error) {
	path, err := resolvePath(locator, baseDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the mapping file
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to read translation resource %s: %w", path, err)
	}

	raw, err := decode(path, data)
	if err != nil {
		return nil, err
	}

	tree, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: top level is not an object", ErrUnsupportedFormat, path)
	}

	l.Logger.Debug().Str("path", path).Int("keys", len(tree)).Msg("Loaded translation resource")

	return Tree(tree), nil
}

func (l *Loader) workDir() string {
	if l.WorkDir != "" {
		return l.WorkDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func resolvePath(locator, base string) (string, error) {
	if filepath.IsAbs(locator) {
		return filepath.Clean(locator), nil
	}
	abs, err := filepath.Abs(filepath.Join(base, locator))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", locator, err)
	}
	return abs, nil
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}

func parseMapping(path string, data []byte, mapping *Mapping) error {
	add := func(ns string, value any) error {
		if _, dup := mapping.Locators[ns]; dup {
			return fmt.Errorf("%w: %q in %s", ErrDuplicateNamespace, ns, path)
		}
		locator, ok := value.(string)
		if !ok || locator == "" {
			return fmt.Errorf("%w: namespace %q in %s must map to a file path", ErrInvalidMapping, ns, path)
		}
		mapping.Namespaces = append(mapping.Namespaces, ns)
		mapping.Locators[ns] = locator
		return nil
	}

	switch format(path) {
	case "json":
		// gjson walks the object in file order and reports repeated keys,
		// which a map-based decoder would silently merge.
		if !gjson.ValidBytes(data) {
			return fmt.Errorf("%w: %s is not valid JSON", ErrInvalidMapping, path)
		}
		root := gjson.ParseBytes(data)
		if !root.IsObject() {
			return fmt.Errorf("%w: %s: top level is not an object", ErrInvalidMapping, path)
		}
		var err error
		root.ForEach(func(key, value gjson.Result) bool {
			var v any
			if value.Type == gjson.String {
				v = value.String()
			}
			err = add(key.String(), v)
			return err == nil
		})
		return err

	case "yaml":
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidMapping, path, err)
		}
		if len(doc.Content) == 0 {
			return fmt.Errorf("%w: %s is empty", ErrInvalidMapping, path)
		}
		root := doc.Content[0]
		if root.Kind != yaml.MappingNode {
			return fmt.Errorf("%w: %s: top level is not a mapping", ErrInvalidMapping, path)
		}
		for i := 0; i+1 < len(root.Content); i += 2 {
			key, value := root.Content[i], root.Content[i+1]
			var v any
			if value.Kind == yaml.ScalarNode {
				v = value.Value
			}
			if err := add(key.Value, v); err != nil {
				return err
			}
		}
		return nil

	case "toml":
		var raw map[string]any
		md, err := toml.Decode(string(data), &raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidMapping, path, err)
		}
		for _, key := range md.Keys() {
			if len(key) != 1 {
				continue
			}
			if err := add(key[0], raw[key[0]]); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func decode(path string, data []byte) (any, error) {
	var raw any
	switch format(path) {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON resource %s: %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML resource %s: %w", path, err)
		}
	case "toml":
		var m map[string]any
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, fmt.Errorf("failed to parse TOML resource %s: %w", path, err)
		}
		raw = m
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return raw, nil
}

// normalize converts decoder-specific containers into map[string]any and
// []any so the resolver deals with a single tree shape.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
