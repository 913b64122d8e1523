// Package history records how far media was played in the terminal player so
// that playback can resume there.
package history

import (
	"time"

	"github.com/grauman/grauman/filesystem"
	"github.com/grauman/grauman/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

var cacher = gache.New[map[string]*Entry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every entry keyed by media URL.
func Get() (map[string]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Lookup returns the entry of url.
func Lookup(url string) (mo.Option[*Entry], error) {
	saved, err := Get()
	if err != nil {
		return mo.None[*Entry](), err
	}
	if entry, ok := saved[url]; ok {
		return mo.Some(entry), nil
	}
	return mo.None[*Entry](), nil
}

// Save records entry. The watched percentage never decreases so that
// replaying the start of a finished file keeps it marked as watched.
func Save(entry *Entry) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now()
	}
	entry.WatchedPercentage = entry.watched()
	if existing, ok := saved[entry.URL]; ok && existing.WatchedPercentage > entry.WatchedPercentage {
		entry.WatchedPercentage = existing.WatchedPercentage
	}

	saved[entry.URL] = entry
	return cacher.Set(saved)
}

// Remove deletes the entry of url.
func Remove(url string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, url)
	return cacher.Set(saved)
}
