package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-formcontent/pkg/content"
	"github.com/goliatone/go-formcontent/pkg/contenterr"
	"github.com/goliatone/go-formcontent/pkg/questions"
)

// Loader loads and caches framework content. It is safe for concurrent use.
type Loader struct {
	files  fs.FS
	root   string
	logger *zap.Logger

	mu         sync.RWMutex
	frameworks map[string]*frameworkCache
	group      singleflight.Group
}

type frameworkCache struct {
	manifests map[string]*content.Manifest
	questions map[string]map[string]any
	messages  map[string]*content.Message
	metadata  map[string]*content.Metadata
}

func newFrameworkCache() *frameworkCache {
	return &frameworkCache{
		manifests: make(map[string]*content.Manifest),
		questions: make(map[string]map[string]any),
		messages:  make(map[string]*content.Message),
		metadata:  make(map[string]*content.Metadata),
	}
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for cache and load diagnostics. The default
// discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New returns a loader reading from files, whose root holds frameworks/.
func New(files fs.FS, options ...Option) *Loader {
	l := &Loader{
		files:      files,
		logger:     zap.NewNop(),
		frameworks: make(map[string]*frameworkCache),
	}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// NewFromDir returns a loader reading from the content directory dir.
func NewFromDir(dir string, options ...Option) *Loader {
	l := New(os.DirFS(dir), options...)
	l.root = dir
	return l
}

// NewFromConfig is NewFromDir for cfg.ContentPath.
func NewFromConfig(cfg Config, options ...Option) *Loader {
	return NewFromDir(cfg.ContentPath, options...)
}

// Open is NewFromConfig that also honours cfg.Watch: when set, a Watcher is
// started on the content directory and runs until ctx is done or the
// returned close function is called. Close is a no-op without a watcher.
func Open(ctx context.Context, cfg Config, options ...Option) (*Loader, func() error, error) {
	l := NewFromConfig(cfg, options...)
	if !cfg.Watch {
		return l, func() error { return nil }, nil
	}
	w, err := NewWatcher(l, "")
	if err != nil {
		return nil, nil, fmt.Errorf("loader: watch %s: %w", cfg.ContentPath, err)
	}
	w.Start(ctx)
	return l, w.Close, nil
}

// Root returns the content directory, or "" for loaders built with New.
func (l *Loader) Root() string { return l.root }

// Reset drops cached content for framework, or for every framework when
// framework is empty.
func (l *Loader) Reset(framework string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if framework == "" {
		l.frameworks = make(map[string]*frameworkCache)
		return
	}
	delete(l.frameworks, framework)
}

func (l *Loader) cache(framework string) *frameworkCache {
	cache, ok := l.frameworks[framework]
	if !ok {
		cache = newFrameworkCache()
		l.frameworks[framework] = cache
	}
	return cache
}

func (l *Loader) store(framework string, fn func(*frameworkCache)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.cache(framework))
}

func (l *Loader) lookup(framework string, fn func(*frameworkCache) bool) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cache, ok := l.frameworks[framework]
	return ok && fn(cache)
}

func frameworkPath(framework string, parts ...string) string {
	return path.Join(append([]string{"frameworks", framework}, parts...)...)
}

func manifestPath(framework, manifest string) string {
	return frameworkPath(framework, "manifests", manifest+".yml")
}

func questionPath(framework, questionSet, id string) string {
	return frameworkPath(framework, "questions", questionSet, id+".yml")
}

func messagePath(framework, block string) string {
	return frameworkPath(framework, "messages", block+".yml")
}

func metadataPath(framework, block string) string {
	return frameworkPath(framework, "metadata", block+".yml")
}

// LoadManifest reads, resolves and caches a manifest. Loading a manifest that
// is already cached is a no-op.
func (l *Loader) LoadManifest(ctx context.Context, framework, questionSet, manifest string) error {
	if l.lookup(framework, func(c *frameworkCache) bool { _, ok := c.manifests[manifest]; return ok }) {
		l.logger.Debug("manifest cache hit", zap.String("framework", framework), zap.String("manifest", manifest))
		return nil
	}

	name := manifestPath(framework, manifest)
	_, err, _ := l.group.Do("manifest:"+name, func() (any, error) {
		var records []map[string]any
		if err := readYAML(ctx, l.files, name, &records); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, contenterr.NotFound("no manifest at %s", name)
			}
			return nil, err
		}

		for _, record := range records {
			if record == nil {
				return nil, fmt.Errorf("loader: %s: empty section record", name)
			}
			if err := l.resolveNested(ctx, framework, questionSet, record, nil); err != nil {
				return nil, err
			}
		}

		built, err := content.NewManifest(records)
		if err != nil {
			return nil, fmt.Errorf("loader: %s: %w", name, err)
		}
		l.store(framework, func(c *frameworkCache) { c.manifests[manifest] = built })
		l.logger.Debug("manifest loaded", zap.String("path", name), zap.Int("sections", len(records)))
		return built, nil
	})
	return err
}

// GetManifest returns a copy of a loaded manifest.
func (l *Loader) GetManifest(framework, manifest string) (*content.Manifest, error) {
	var found *content.Manifest
	l.lookup(framework, func(c *frameworkCache) bool {
		found = c.manifests[manifest]
		return found != nil
	})
	if found == nil {
		return nil, contenterr.NotFound("content not found for %s and %s", framework, manifest)
	}
	return found.Copy(), nil
}

// TryLoadManifest is LoadManifest that logs and ignores missing content.
func (l *Loader) TryLoadManifest(ctx context.Context, framework, questionSet, manifest string) error {
	err := l.LoadManifest(ctx, framework, questionSet, manifest)
	if errors.Is(err, contenterr.ErrContentNotFound) {
		l.logger.Info("could not load manifest",
			zap.String("framework", framework),
			zap.String("manifest", manifest),
			zap.Error(err))
		return nil
	}
	return err
}

// GetQuestion loads a question fragment with its nested questions and builds
// a new question from it.
func (l *Loader) GetQuestion(ctx context.Context, framework, questionSet, id string) (*questions.Question, error) {
	record, err := l.questionRecord(ctx, framework, questionSet, id, nil)
	if err != nil {
		return nil, err
	}
	question, err := questions.FromRecord(record)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", questionPath(framework, questionSet, id), err)
	}
	return question, nil
}

// questionRecord returns a copy of the resolved fragment for id. chain holds
// the fragments being resolved above this one.
func (l *Loader) questionRecord(ctx context.Context, framework, questionSet, id string, chain []string) (map[string]any, error) {
	name := questionPath(framework, questionSet, id)
	for _, parent := range chain {
		if parent == name {
			return nil, fmt.Errorf("loader: question %s includes itself", name)
		}
	}

	key := path.Join(questionSet, id)
	var cached map[string]any
	if l.lookup(framework, func(c *frameworkCache) bool { cached = c.questions[key]; return cached != nil }) {
		return cloneRecord(cached), nil
	}

	value, err, _ := l.group.Do("question:"+name, func() (any, error) {
		var record map[string]any
		if err := readYAML(ctx, l.files, name, &record); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, contenterr.NotFound("no question %s at %s", id, path.Dir(name))
			}
			return nil, err
		}
		if record == nil {
			record = map[string]any{}
		}
		if _, ok := record["id"]; !ok {
			record["id"] = id
		}
		if err := l.resolveNested(ctx, framework, questionSet, record, append(chain, name)); err != nil {
			return nil, err
		}

		l.store(framework, func(c *frameworkCache) { c.questions[key] = record })
		l.logger.Debug("question fragment loaded", zap.String("path", name))
		return record, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneRecord(value.(map[string]any)), nil
}

// resolveNested splices question fragments into record's questions and
// derives a slug when the record has none: from the name for records with
// questions, from the id otherwise.
func (l *Loader) resolveNested(ctx context.Context, framework, questionSet string, record map[string]any, chain []string) error {
	raw, hasQuestions := record["questions"]
	if hasQuestions {
		items, ok := raw.([]any)
		if !ok {
			return fmt.Errorf("loader: questions of %v must be a list, got %T", record["id"], raw)
		}
		resolved := make([]any, len(items))
		for i, item := range items {
			switch typed := item.(type) {
			case string:
				nested, err := l.questionRecord(ctx, framework, questionSet, typed, chain)
				if err != nil {
					return err
				}
				resolved[i] = nested
			case map[string]any:
				inline := cloneRecord(typed)
				if err := l.resolveNested(ctx, framework, questionSet, inline, chain); err != nil {
					return err
				}
				resolved[i] = inline
			default:
				return fmt.Errorf("loader: question reference %v has type %T", item, item)
			}
		}
		record["questions"] = resolved
	}

	if slug, _ := record["slug"].(string); slug != "" {
		return nil
	}
	source := record["id"]
	if hasQuestions && record["name"] != nil {
		source = record["name"]
	}
	if source != nil {
		record["slug"] = MakeSlug(fmt.Sprint(source))
	}
	return nil
}

func cloneRecord(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for key, value := range record {
		out[key] = value
	}
	return out
}
