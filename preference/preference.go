// Package preference persists user playback settings across player instances.
//
// Values live in a single JSON document keyed by "<baseKey>:<setting>".
// Persistence is best effort: when the backing file cannot be read or written
// the store behaves as if nothing was ever saved.
package preference

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/grauman/grauman/constant"
	"github.com/grauman/grauman/filesystem"
	"github.com/grauman/grauman/key"
	"github.com/grauman/grauman/log"
	"github.com/grauman/grauman/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Setting names shared by the players.
const (
	Volume        = "volume"
	Muted         = "muted"
	Loop          = "loop"
	PlaybackSpeed = "playbackSpeed"
	ViewMode      = "viewMode"
)

type document = map[string]json.RawMessage

// Store reads and writes namespaced preferences.
type Store struct {
	mu      *sync.Mutex
	baseKey string
	cache   *gache.Cache[document]
}

// New returns a store persisting to path. An empty path yields a store that never persists.
func New(path, baseKey string) *Store {
	s := &Store{mu: &sync.Mutex{}, baseKey: constant.DefaultPreferenceBaseKey}
	s.SetBaseKey(baseKey)

	if path != "" {
		s.cache = gache.New[document](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		})
	}

	return s
}

// Disabled returns a store that never persists.
func Disabled() *Store {
	return New("", "")
}

var (
	shared     *Store
	sharedOnce sync.Once
)

// FromConfig returns the process-wide store described by the storage.* settings.
// Players share it so that their writes never race on the same file.
func FromConfig() *Store {
	sharedOnce.Do(func() {
		if !viper.GetBool(key.StorageEnabled) {
			log.WarnOnce("preference.disabled", "preference storage disabled, settings will not persist")
			shared = Disabled()
			return
		}
		shared = New(where.Preferences(), viper.GetString(key.StorageBaseKey))
	})
	return shared
}

// Namespace returns a store sharing s's backing file under another base key.
// An empty baseKey keeps s's.
func (s *Store) Namespace(baseKey string) *Store {
	if baseKey == "" || baseKey == s.BaseKey() {
		return s
	}

	ns := &Store{mu: s.mu, baseKey: s.BaseKey(), cache: s.cache}
	ns.SetBaseKey(baseKey)
	return ns
}

// Available reports whether the store has a backing file.
func (s *Store) Available() bool {
	return s.cache != nil
}

// SetBaseKey changes the namespace. Empty keys are ignored with a warning.
func (s *Store) SetBaseKey(baseKey string) {
	if baseKey == "" {
		return
	}
	if strings.TrimSpace(baseKey) == "" {
		log.Warn("preference base key needs a non-empty string")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseKey = baseKey
}

func (s *Store) BaseKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseKey
}

func (s *Store) qualify(setting string) string {
	return s.baseKey + ":" + setting
}

func (s *Store) load() document {
	if s.cache == nil {
		return document{}
	}

	doc, expired, err := s.cache.Get()
	if err != nil {
		log.WarnOnce("preference.read", "preferences unreadable, treating as empty: %s", err)
		return document{}
	}
	if expired || doc == nil {
		return document{}
	}
	return doc
}

func (s *Store) save(doc document) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(doc); err != nil {
		log.WarnOnce("preference.write", "preferences not saved: %s", err)
	}
}

// Get returns the raw stored value of setting.
func (s *Store) Get(setting string) mo.Option[json.RawMessage] {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.load()[s.qualify(setting)]
	if !ok || !json.Valid(raw) {
		return mo.None[json.RawMessage]()
	}
	return mo.Some(raw)
}

// Set stores value under setting. Failures are dropped.
func (s *Store) Set(setting string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warnf("preference %s: %s", setting, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache == nil {
		return
	}

	doc := s.load()
	doc[s.qualify(setting)] = raw
	s.save(doc)
}

// Remove deletes setting.
func (s *Store) Remove(setting string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	name := s.qualify(setting)
	if _, ok := doc[name]; !ok {
		return
	}
	delete(doc, name)
	s.save(doc)
}

// All returns the settings stored under the current base key, without the prefix.
func (s *Store) All() map[string]json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := s.baseKey + ":"
	settings := make(map[string]json.RawMessage)
	for name, raw := range s.load() {
		if setting, ok := strings.CutPrefix(name, prefix); ok {
			settings[setting] = raw
		}
	}
	return settings
}

// Reset removes every setting under the current base key.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := s.baseKey + ":"
	doc := s.load()
	for name := range doc {
		if strings.HasPrefix(name, prefix) {
			delete(doc, name)
		}
	}
	s.save(doc)
}

// Lookup decodes setting into T. Absent or corrupt values are None.
func Lookup[T any](s *Store, setting string) mo.Option[T] {
	raw, ok := s.Get(setting).Get()
	if !ok {
		return mo.None[T]()
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return mo.None[T]()
	}
	return mo.Some(value)
}
