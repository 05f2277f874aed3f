package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/fsnotify.v1"
)

// Registry holds profiles by name, optionally kept in sync with a directory
// of YAML files.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	files    map[string]string
	dir      string
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	onChange func(event string, p *Profile)
	log      *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		profiles: make(map[string]*Profile),
		files:    make(map[string]string),
		log:      log,
	}
}

// Register validates p and adds it. Re-registering a name is allowed only
// with a different version.
func (r *Registry) Register(p *Profile) error {
	if p == nil {
		return fmt.Errorf("profile cannot be nil")
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.profiles[p.Name]; ok && existing.Version == p.Version && existing.Path == p.Path {
		return fmt.Errorf("profile %q version %s already registered", p.Name, p.Version)
	}
	r.profiles[p.Name] = p
	if p.Path != "" {
		r.files[p.Path] = p.Name
	}
	return nil
}

// Unregister removes the named profile.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[name]
	if !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	delete(r.profiles, name)
	if p.Path != "" {
		delete(r.files, p.Path)
	}
	return nil
}

// Get returns the named profile.
func (r *Registry) Get(name string) (*Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[name]
	return p, ok
}

// List returns the registered profiles sorted by name.
func (r *Registry) List() []*Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})
	return profiles
}

// Count returns the number of registered profiles.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// LoadDirectory loads every YAML file in dir. A missing directory loads
// nothing. Files that fail are reported together after the rest load.
func (r *Registry) LoadDirectory(dir string) error {
	r.dir = dir

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var loadErrors []string
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			loadErrors = append(loadErrors, fmt.Sprintf("%s: %v", entry.Name(), err))
		}
	}

	if len(loadErrors) > 0 {
		return fmt.Errorf("errors loading profiles: %s", strings.Join(loadErrors, "; "))
	}
	return nil
}

// LoadFile loads and registers one profile file.
func (r *Registry) LoadFile(path string) error {
	p, err := Load(path)
	if err != nil {
		return err
	}
	if err := r.Register(p); err != nil {
		return fmt.Errorf("registering profile: %w", err)
	}
	r.log.Debug("profile loaded", "name", p.Name, "version", p.Version, "path", path)
	return nil
}

// Reload clears the registry and loads the configured directory again.
func (r *Registry) Reload() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for reload")
	}

	r.mu.Lock()
	r.profiles = make(map[string]*Profile)
	r.files = make(map[string]string)
	r.mu.Unlock()

	return r.LoadDirectory(r.dir)
}

// SetOnChange sets a callback run after a watched file changes. The profile
// is nil for removals.
func (r *Registry) SetOnChange(fn func(event string, p *Profile)) {
	r.onChange = fn
}

// Watch reloads profiles as files in the directory change, until StopWatch.
func (r *Registry) Watch() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching directory %s: %w", r.dir, err)
	}

	r.watcher = watcher
	r.stopChan = make(chan struct{})
	go r.watchLoop(watcher, r.stopChan)
	return nil
}

func (r *Registry) watchLoop(watcher *fsnotify.Watcher, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isYAML(event.Name) {
				continue
			}

			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				r.handleFileChange(event.Name, "create")
			case event.Op&fsnotify.Write == fsnotify.Write:
				r.handleFileChange(event.Name, "modify")
			case event.Op&fsnotify.Remove == fsnotify.Remove,
				event.Op&fsnotify.Rename == fsnotify.Rename:
				r.handleFileRemove(event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.log.Warn("profile watch error", "dir", r.dir, "error", err)
		}
	}
}

func (r *Registry) handleFileChange(path, event string) {
	p, err := Load(path)
	if err != nil {
		r.log.Warn("profile reload failed", "path", path, "error", err)
		return
	}

	r.mu.Lock()
	if old, ok := r.files[path]; ok && old != p.Name {
		delete(r.profiles, old)
	}
	r.profiles[p.Name] = p
	r.files[path] = p.Name
	r.mu.Unlock()

	r.log.Info("profile changed", "event", event, "name", p.Name, "path", path)
	if r.onChange != nil {
		r.onChange(event, p)
	}
}

func (r *Registry) handleFileRemove(path string) {
	r.mu.Lock()
	name, ok := r.files[path]
	if ok {
		delete(r.files, path)
		delete(r.profiles, name)
	}
	r.mu.Unlock()

	if !ok {
		return
	}
	r.log.Info("profile removed", "name", name, "path", path)
	if r.onChange != nil {
		r.onChange("remove", nil)
	}
}

// StopWatch stops a running Watch.
func (r *Registry) StopWatch() {
	if r.stopChan != nil {
		close(r.stopChan)
		r.stopChan = nil
	}
	if r.watcher != nil {
		r.watcher.Close()
		r.watcher = nil
	}
}
