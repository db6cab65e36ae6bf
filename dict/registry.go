package dict

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/maypok86/otter/v2"
	"github.com/sarthakjha889/go-aho-corasick/internal/metrics"
	"github.com/sarthakjha889/go-aho-corasick/pkg/logger"
)

// Info describes a loaded dictionary.
type Info struct {
	Name        string    `json:"name"`
	Path        string    `json:"path,omitempty"`
	Patterns    int       `json:"patterns"`
	Fingerprint string    `json:"fingerprint"`
	LoadedAt    time.Time `json:"loaded_at"`
}

type entry struct {
	info Info
	abs  string
	dict *Dictionary
}

// CacheOptions size the cache of compiled dictionaries. A zero TTL keeps
// entries until they are evicted by size.
type CacheOptions struct {
	Capacity int
	TTL      time.Duration
}

// Registry holds named dictionaries. Compiled dictionaries are cached by the
// fingerprint of their content and options, so names backed by identical
// files share one automaton and unchanged files are not recompiled on reload.
// Dictionaries handed out by Get are built and safe for concurrent scanning;
// a reload replaces them instead of mutating them.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	cache   *otter.Cache[uint64, *Dictionary]
	opts    Options
	log     logger.Logger
}

func NewRegistry(log logger.Logger, opts Options, co CacheOptions) (*Registry, error) {
	o := &otter.Options[uint64, *Dictionary]{
		MaximumSize:     co.Capacity,
		InitialCapacity: min(co.Capacity, 64),
	}
	if co.TTL > 0 {
		o.ExpiryCalculator = otter.ExpiryAccessing[uint64, *Dictionary](co.TTL)
	}
	cache, err := otter.New(o)
	if err != nil {
		return nil, fmt.Errorf("create dictionary cache: %w", err)
	}

	return &Registry{
		entries: make(map[string]*entry),
		cache:   cache,
		opts:    opts,
		log:     logger.NewPrefixedLogger(log, "dict"),
	}, nil
}

func (r *Registry) fingerprint(data []byte) uint64 {
	h := xxhash.New()
	_, _ = h.Write(data)
	_, _ = h.Write([]byte{r.opts.flags()})
	return h.Sum64()
}

// Load reads and compiles the file at path and registers it under name,
// replacing any dictionary of that name. On error the previous dictionary
// stays in place.
func (r *Registry) Load(name, path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		metrics.Reloads.WithLabelValues(name, "error").Inc()
		return Info{}, fmt.Errorf("load dictionary %s: %w", name, err)
	}
	return r.install(name, path, data)
}

// LoadBytes registers an in-memory dictionary file under name.
func (r *Registry) LoadBytes(name string, data []byte) (Info, error) {
	return r.install(name, "", data)
}

func (r *Registry) install(name, path string, data []byte) (Info, error) {
	fp := r.fingerprint(data)
	result := "cached"
	d, ok := r.cache.GetIfPresent(fp)
	if !ok {
		var err error
		if d, err = ParseBytes(data, r.opts); err != nil {
			metrics.Reloads.WithLabelValues(name, "error").Inc()
			return Info{}, fmt.Errorf("load dictionary %s: %w", name, err)
		}
		r.cache.Set(fp, d)
		result = "ok"
	}

	e := &entry{
		info: Info{
			Name:        name,
			Path:        path,
			Patterns:    d.Len(),
			Fingerprint: strconv.FormatUint(fp, 16),
			LoadedAt:    time.Now(),
		},
		dict: d,
	}
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			e.abs = abs
		}
	}

	r.mu.Lock()
	r.entries[name] = e
	r.mu.Unlock()

	metrics.Reloads.WithLabelValues(name, result).Inc()
	metrics.Patterns.WithLabelValues(name).Set(float64(d.Len()))
	r.log.Info("dictionary loaded", "name", name, "patterns", d.Len(), "fingerprint", e.info.Fingerprint, "result", result)
	return e.info, nil
}

// Remove unregisters name.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	_, ok := r.entries[name]
	delete(r.entries, name)
	r.mu.Unlock()

	if ok {
		metrics.Patterns.DeleteLabelValues(name)
		r.log.Info("dictionary removed", "name", name)
	}
	return ok
}

// Get returns the dictionary registered under name.
func (r *Registry) Get(name string) (*Dictionary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.dict, true
}

// Info returns the description of the dictionary registered under name.
func (r *Registry) Info(name string) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return Info{}, false
	}
	return e.info, true
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// List returns the description of every dictionary, sorted by name.
func (r *Registry) List() []Info {
	names := r.Names()
	out := make([]Info, 0, len(names))
	for _, name := range names {
		if info, ok := r.Info(name); ok {
			out = append(out, info)
		}
	}
	return out
}

// Watch reloads file-backed dictionaries when their files are written or
// replaced, until ctx is done. Directories are watched rather than files so
// that editors that save by renaming are noticed. Only the directories of
// dictionaries registered when Watch starts are watched.
func (r *Registry) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	dirs := make(map[string]struct{})
	r.mu.RLock()
	for _, e := range r.entries {
		if e.abs != "" {
			dirs[filepath.Dir(e.abs)] = struct{}{}
		}
	}
	r.mu.RUnlock()

	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	r.log.Info("watching dictionaries", "dirs", len(dirs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				r.reload(event.Name)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.log.Error("dictionary watcher error", err)
		}
	}
}

// reload reloads every dictionary backed by file.
func (r *Registry) reload(file string) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return
	}

	r.mu.RLock()
	var stale []Info
	for _, e := range r.entries {
		if e.abs == abs {
			stale = append(stale, e.info)
		}
	}
	r.mu.RUnlock()

	for _, info := range stale {
		if _, err := r.Load(info.Name, info.Path); err != nil {
			r.log.Error("dictionary reload failed", err, "name", info.Name)
		}
	}
}

// Close drops every dictionary and empties the cache.
func (r *Registry) Close() error {
	r.mu.Lock()
	for name := range r.entries {
		metrics.Patterns.DeleteLabelValues(name)
	}
	clear(r.entries)
	r.mu.Unlock()

	r.cache.InvalidateAll()
	return nil
}
