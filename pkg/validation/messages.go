package validation

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when a constraint set does not name a locale and as
// the fallback for locales the catalog cannot match.
const DefaultLocale = "en-US"

// Message keys understood by the evaluator. Each locale provides them per
// value type, addressed as "<type>.<key>" (e.g. "string.lengthEqual").
const (
	MsgEmpty             = "empty"
	MsgInvalid           = "invalid"
	MsgInBetween         = "inBetween"
	MsgLessThan          = "lessThan"
	MsgGreaterThan       = "greaterThan"
	MsgLengthEqual       = "lengthEqual"
	MsgTwoInputsNotEqual = "twoInputsNotEqual"

	// msgName formats the field name before it is interpolated as {name}.
	msgName = "name"
)

//go:embed messages.yaml
var defaultMessages []byte

// Translator resolves message keys for a locale. Args are key/value pairs
// interpolated into "{key}" placeholders.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// LocaleResolver is implemented by translators that can tell whether they
// support a locale. Resolve returns the locale to use and whether the input
// was recognized as is.
type LocaleResolver interface {
	Resolve(locale string) (string, bool)
}

// MissingTranslationHandler produces the message used when a translation
// cannot be found.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_ string, key string, _ []any, _ error) string {
	return key
}

// MessageSet holds the messages of one locale.
type MessageSet struct {
	Name   string            `json:"name" yaml:"name"`
	String map[string]string `json:"string" yaml:"string"`
	Number map[string]string `json:"number" yaml:"number"`
}

func (s MessageSet) lookup(key string) (string, bool) {
	if key == msgName {
		return s.Name, s.Name != ""
	}
	group, name, ok := strings.Cut(key, ".")
	if !ok {
		return "", false
	}
	var table map[string]string
	switch ValueType(group) {
	case TypeString:
		table = s.String
	case TypeNumber:
		table = s.Number
	default:
		return "", false
	}
	msg, ok := table[name]
	return msg, ok && msg != ""
}

// Catalog is a Translator backed by in-memory message sets. It is safe for
// concurrent use.
type Catalog struct {
	mu            sync.RWMutex
	defaultLocale string
	sets          map[string]MessageSet
	order         []string
	matcher       language.Matcher
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
)

// DefaultCatalog returns the shared catalog holding the embedded en-US and
// zh-CN messages.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		catalog, err := LoadCatalog(defaultMessages)
		if err != nil {
			panic(fmt.Errorf("validation: embedded messages: %w", err))
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}

// NewCatalog creates an empty catalog. An empty defaultLocale selects
// DefaultLocale.
func NewCatalog(defaultLocale string) *Catalog {
	locale := strings.TrimSpace(defaultLocale)
	if canonical, err := canonicalLocale(locale); err == nil {
		locale = canonical
	}
	if locale == "" {
		locale = DefaultLocale
	}
	return &Catalog{
		defaultLocale: locale,
		sets:          make(map[string]MessageSet),
	}
}

// LoadCatalog parses a YAML (or JSON) document mapping locales to message
// sets.
func LoadCatalog(data []byte) (*Catalog, error) {
	var raw map[string]MessageSet
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("validation: parse catalog: %w", err)
	}

	catalog := NewCatalog(DefaultLocale)
	locales := make([]string, 0, len(raw))
	for locale := range raw {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	for _, locale := range locales {
		if err := catalog.Register(locale, raw[locale]); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// Register adds or replaces the message set of a locale.
func (c *Catalog) Register(locale string, set MessageSet) error {
	canonical, err := canonicalLocale(locale)
	if err != nil {
		return fmt.Errorf("validation: register locale %q: %w", locale, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.sets[canonical]; !exists {
		if canonical == c.defaultLocale {
			c.order = append([]string{canonical}, c.order...)
		} else {
			c.order = append(c.order, canonical)
		}
	}
	c.sets[canonical] = set
	c.rebuildMatcher()
	return nil
}

// Locales lists the registered locales, default first.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order...)
}

// DefaultLocale returns the fallback locale.
func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

// Resolve maps a requested locale onto a registered one. The boolean is false
// when the locale is not registered as is; the returned locale is then the
// closest match, or the default.
func (c *Catalog) Resolve(locale string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return c.defaultLocale, true
	}

	canonical, err := canonicalLocale(trimmed)
	if err != nil {
		return c.defaultLocale, false
	}
	if _, ok := c.sets[canonical]; ok {
		return canonical, true
	}
	if c.matcher == nil {
		return c.defaultLocale, false
	}

	_, idx, confidence := c.matcher.Match(language.Make(canonical))
	if confidence == language.No || idx < 0 || idx >= len(c.order) {
		return c.defaultLocale, false
	}
	return c.order[idx], false
}

// Translate looks up key for locale and interpolates args.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	canonical, err := canonicalLocale(locale)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}

	c.mu.RLock()
	set, ok := c.sets[canonical]
	c.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}

	msg, ok := set.lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrMissingMessage, canonical, key)
	}
	return interpolate(msg, args), nil
}

func (c *Catalog) rebuildMatcher() {
	if len(c.order) == 0 {
		c.matcher = nil
		return
	}
	tags := make([]language.Tag, 0, len(c.order))
	for _, locale := range c.order {
		tags = append(tags, language.Make(locale))
	}
	c.matcher = language.NewMatcher(tags)
}

func canonicalLocale(locale string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return "", err
	}
	return tag.String(), nil
}

func interpolate(msg string, args []any) string {
	if len(args) < 2 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		pairs = append(pairs, "{"+key+"}", fmt.Sprint(args[i+1]))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
