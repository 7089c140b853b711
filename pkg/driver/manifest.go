package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"baik/interpreter-go/pkg/parser"
)

// ManifestFileName is the project manifest looked up by FindManifest.
const ManifestFileName = "baik.yml"

// Manifest represents the parsed contents of baik.yml.
type Manifest struct {
	Path        string
	Name        string
	Version     string
	Authors     []string
	Sources     []string
	Targets     map[string]*TargetSpec
	TargetOrder []string
	Parser      ParserConfig

	targetEntries []manifestTargetEntry
}

// TargetSpec describes a runnable or importable unit of the project.
type TargetSpec struct {
	Name         string
	OriginalName string
	Type         TargetType
	Main         string
}

type manifestTargetEntry struct {
	sanitized string
	spec      *TargetSpec
}

// TargetType enumerates supported target kinds.
type TargetType string

const (
	TargetTypeScript  TargetType = "script"
	TargetTypeLibrary TargetType = "library"
)

// ParserConfig carries the parser settings of a project.
type ParserConfig struct {
	Mode       string
	MaxNesting int
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

var ErrManifestNotFound = errors.New("manifest: " + ManifestFileName + " not found")

// FindManifest walks up from dir looking for baik.yml.
func FindManifest(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(abs, ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("manifest: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrManifestNotFound
		}
		abs = parent
	}
}

// LoadManifest parses baik.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	manifest, err := decodeManifest(file, absPath)
	if err != nil {
		return nil, err
	}
	return manifest, nil
}

// ParseManifest decodes manifest content that did not come from disk, such
// as a blob read from a git revision. path is used for messages and for
// resolving relative sources.
func ParseManifest(content []byte, path string) (*Manifest, error) {
	return decodeManifest(bytes.NewReader(content), path)
}

func decodeManifest(r io.Reader, path string) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", path)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}

	manifest := raw.toManifest(path)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Version != "" && !versionPattern.MatchString(m.Version) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("invalid version %q", m.Version))
	}
	for i, author := range m.Authors {
		if author == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("authors[%d] must be a non-empty string", i))
		}
	}
	for i, source := range m.Sources {
		if source == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("sources[%d] must be a non-empty path", i))
		} else if filepath.IsAbs(source) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("sources[%d] must be relative to the manifest", i))
		}
	}

	targetNames := make(map[string]string, len(m.targetEntries))
	for _, entry := range m.targetEntries {
		target := entry.spec
		if target == nil {
			continue
		}
		if other, exists := targetNames[entry.sanitized]; exists {
			errs.Issues = append(errs.Issues, fmt.Sprintf("targets %q and %q collide after sanitization", other, target.OriginalName))
		} else {
			targetNames[entry.sanitized] = target.OriginalName
		}
		if target.Type == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q missing type", target.OriginalName))
		} else if !target.Type.IsValid() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q has unsupported type %q", target.OriginalName, target.Type))
		}
		if target.Type.RequiresMain() && target.Main == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q requires a main entrypoint", target.OriginalName))
		}
	}

	if _, err := parser.ParseMode(m.Parser.Mode); err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("parser.mode: unsupported value %q", m.Parser.Mode))
	}
	if m.Parser.MaxNesting < 0 {
		errs.Issues = append(errs.Issues, "parser.max_nesting must not be negative")
	} else if m.Parser.MaxNesting > parser.MaxNestingLimit {
		errs.Issues = append(errs.Issues, fmt.Sprintf("parser.max_nesting must not exceed %d", parser.MaxNestingLimit))
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

var versionPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+){0,2}([-+][0-9A-Za-z\-\.]+)?$`)

// IsValid reports whether the target type is recognised.
func (t TargetType) IsValid() bool {
	switch t {
	case TargetTypeScript, TargetTypeLibrary:
		return true
	default:
		return false
	}
}

// RequiresMain reports if the target requires a main entrypoint.
func (t TargetType) RequiresMain() bool {
	return t == TargetTypeScript
}

var ErrNoScriptTarget = errors.New("manifest: no script targets defined")

// DefaultScriptTarget returns the first script target in manifest order.
func (m *Manifest) DefaultScriptTarget() (*TargetSpec, error) {
	if m == nil {
		return nil, ErrNoScriptTarget
	}
	for _, entry := range m.targetEntries {
		if entry.spec != nil && entry.spec.Type == TargetTypeScript {
			return entry.spec, nil
		}
	}
	return nil, ErrNoScriptTarget
}

// MainPath resolves a target's main file against the manifest directory.
// It returns "" for targets without one.
func (m *Manifest) MainPath(target *TargetSpec) string {
	if target == nil || target.Main == "" {
		return ""
	}
	return filepath.Join(m.Dir(), filepath.FromSlash(target.Main))
}

// FindTarget looks up a target by sanitized or original name.
func (m *Manifest) FindTarget(name string) (*TargetSpec, bool) {
	if m == nil {
		return nil, false
	}
	key := sanitizeSegment(strings.TrimSpace(name))
	if key != "" {
		if target, ok := m.Targets[key]; ok && target != nil {
			return target, true
		}
	}
	for _, entry := range m.targetEntries {
		if entry.spec == nil {
			continue
		}
		if strings.EqualFold(entry.spec.OriginalName, strings.TrimSpace(name)) {
			return entry.spec, true
		}
	}
	return nil, false
}

// Dir is the directory holding the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// SourcePaths resolves the manifest's sources against its directory. A
// manifest without sources covers its whole directory.
func (m *Manifest) SourcePaths() []string {
	if len(m.Sources) == 0 {
		return []string{m.Dir()}
	}
	out := make([]string, len(m.Sources))
	for i, source := range m.Sources {
		out[i] = filepath.Join(m.Dir(), filepath.FromSlash(source))
	}
	return out
}

// ParserOptions builds the parser settings declared by the manifest.
func (m *Manifest) ParserOptions(logger *slog.Logger) (parser.Mode, parser.Options, error) {
	mode, err := parser.ParseMode(m.Parser.Mode)
	if err != nil {
		return mode, parser.Options{}, fmt.Errorf("manifest: %w", err)
	}
	return mode, parser.Options{MaxNesting: m.Parser.MaxNesting, Logger: logger}, nil
}

type manifestFile struct {
	Name    string     `yaml:"name"`
	Version string     `yaml:"version"`
	Authors stringList `yaml:"authors"`
	Sources stringList `yaml:"sources"`
	Targets targetMap  `yaml:"targets"`
	Parser  parserYAML `yaml:"parser"`
}

type parserYAML struct {
	Mode       string `yaml:"mode"`
	MaxNesting int    `yaml:"max_nesting"`
}

type targetYAML struct {
	Type TargetType `yaml:"type"`
	Main string     `yaml:"main"`
}

type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	spec *targetYAML
}

func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: targets must not use empty keys")
		}
		entry := new(targetYAML)
		if err := valueNode.Decode(entry); err != nil {
			return fmt.Errorf("manifest: target %q: %w", key, err)
		}
		items = append(items, targetMapEntry{name: key, spec: entry})
	}
	tm.items = items
	return nil
}

type stringList []string

func (mf manifestFile) toManifest(path string) *Manifest {
	targetCapacity := len(mf.Targets.items)
	result := &Manifest{
		Path:        path,
		Name:        sanitizeSegment(strings.TrimSpace(mf.Name)),
		Version:     strings.TrimSpace(mf.Version),
		Authors:     mf.Authors.Clone(),
		Sources:     mf.Sources.Clone(),
		Targets:     make(map[string]*TargetSpec, targetCapacity),
		TargetOrder: make([]string, 0, targetCapacity),
		Parser: ParserConfig{
			Mode:       strings.TrimSpace(mf.Parser.Mode),
			MaxNesting: mf.Parser.MaxNesting,
		},
		targetEntries: make([]manifestTargetEntry, 0, targetCapacity),
	}

	for _, item := range mf.Targets.items {
		target := item.spec
		if target == nil {
			continue
		}
		original := strings.TrimSpace(item.name)
		sanitized := sanitizeSegment(original)
		spec := &TargetSpec{
			Name:         sanitized,
			OriginalName: original,
			Type:         TargetType(strings.TrimSpace(string(target.Type))),
			Main:         strings.TrimSpace(target.Main),
		}
		if _, exists := result.Targets[sanitized]; !exists {
			result.Targets[sanitized] = spec
			result.TargetOrder = append(result.TargetOrder, sanitized)
		}
		result.targetEntries = append(result.targetEntries, manifestTargetEntry{
			sanitized: sanitized,
			spec:      spec,
		})
	}
	return result
}

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		out = append(out, strings.TrimSpace(item))
	}
	return out
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			items = append(items, strings.TrimSpace(str))
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}

// sanitizeSegment lowercases a name and folds anything outside [a-z0-9_]
// into underscores.
func sanitizeSegment(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
