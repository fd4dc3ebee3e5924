package config

import (
	"errors"
	"sync"
	"time"

	"github.com/Hakkology/MuginCAD-sub001/internal/config/loader"
	"github.com/Hakkology/MuginCAD-sub001/internal/config/notify"
	"github.com/Hakkology/MuginCAD-sub001/internal/config/watcher"
)

// Manager owns the live configuration. It reloads the file on request or
// when the watcher sees it change, and tells subscribers which sections
// moved.
type Manager struct {
	mu sync.RWMutex

	path    string
	env     loader.Loader
	current *Config

	notifier *notify.Notifier
	watcher  *watcher.Watcher
	debounce time.Duration

	closed bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithEnvLoader replaces the MUGINCAD_ environment loader. Pass nil to
// ignore the environment.
func WithEnvLoader(l loader.Loader) ManagerOption {
	return func(m *Manager) {
		m.env = l
	}
}

// WithReloadDebounce sets how long the watcher waits for writes to settle.
func WithReloadDebounce(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.debounce = d
	}
}

// NewManager loads path and returns a manager holding the result.
func NewManager(path string, opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		path:     path,
		env:      loader.NewEnvLoader(loader.DefaultEnvPrefix),
		notifier: notify.New(),
		debounce: watcher.DefaultDebounce,
	}
	for _, opt := range opts {
		opt(m)
	}

	cfg, err := load(loader.NewTOMLLoader(path), m.env)
	if err != nil {
		m.notifier.Close()
		return nil, err
	}
	m.current = cfg
	return m, nil
}

// Path returns the watched config file path.
func (m *Manager) Path() string {
	return m.path
}

// Current returns a copy of the active configuration.
func (m *Manager) Current() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Clone()
}

// Subscribe registers an observer for every change.
func (m *Manager) Subscribe(obs notify.Observer) *notify.Subscription {
	return m.notifier.Subscribe(obs)
}

// SubscribeSection registers an observer for one section.
func (m *Manager) SubscribeSection(section string, obs notify.Observer) *notify.Subscription {
	return m.notifier.SubscribeSection(section, obs)
}

// Reload re-reads the file and environment. On failure the previous
// configuration stays active and subscribers get a ChangeError event.
// It returns the sections that changed.
func (m *Manager) Reload() ([]string, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrManagerClosed
	}

	next, err := load(loader.NewTOMLLoader(m.path), m.env)
	if err != nil {
		m.mu.Unlock()
		m.notifier.NotifyError(m.path, err)
		return nil, err
	}

	old := m.current
	m.current = next
	changed := ChangedSections(old, next)
	m.mu.Unlock()

	for _, name := range changed {
		before, _ := old.Section(name)
		after, _ := next.Section(name)
		m.notifier.NotifySection(name, before, after, m.path)
	}
	m.notifier.NotifyReload(m.path)
	return changed, nil
}

// Watch starts reloading whenever the config file changes. Watching a
// manager without a path is an error.
func (m *Manager) Watch() error {
	if m.path == "" {
		return errors.New("config: no file to watch")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrManagerClosed
	}
	if m.watcher != nil {
		return nil
	}

	w, err := watcher.New(watcher.WithDebounce(m.debounce))
	if err != nil {
		return err
	}
	if err := w.Add(m.path); err != nil {
		w.Close()
		return err
	}
	w.OnChange(func(watcher.Event) {
		// Failures reach subscribers as ChangeError events.
		_, _ = m.Reload()
	})
	w.OnError(func(err error) {
		m.notifier.NotifyError(m.path, err)
	})

	m.watcher = w
	return nil
}

// Close stops watching and releases subscribers.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	w := m.watcher
	m.watcher = nil
	m.mu.Unlock()

	var err error
	if w != nil {
		err = w.Close()
	}
	m.notifier.Close()
	return err
}
