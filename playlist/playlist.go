// Package playlist keeps the ordered list of tracks queued for playback.
package playlist

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/lyra-cli/lyra/filesystem"
	"github.com/lyra-cli/lyra/log"
	"github.com/lyra-cli/lyra/player"
	"github.com/lyra-cli/lyra/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Prober builds a track for a path, typically by reading its tags.
type Prober func(path string) player.Track

// Options configures what a playlist accepts.
type Options struct {
	// Prober fills in track metadata. The title defaults to the file name.
	Prober Prober

	// Supported reports whether a file can be played.
	Supported func(path string) bool

	// Ignored lists extensions that are never added, compared case-insensitively.
	Ignored []string
}

// Playlist is an ordered, duplicate-free list of tracks with a cursor.
// It is safe for concurrent use.
type Playlist struct {
	opts Options

	mu      sync.RWMutex
	tracks  []player.Track
	seen    map[string]struct{}
	current int
}

// New returns an empty playlist.
func New(opts Options) *Playlist {
	if opts.Prober == nil {
		opts.Prober = func(path string) player.Track {
			return player.Track{Locator: path, Title: util.FileStem(path)}
		}
	}
	if opts.Supported == nil {
		opts.Supported = func(string) bool { return true }
	}
	opts.Ignored = lo.Map(opts.Ignored, func(ext string, _ int) string {
		return strings.ToLower(ext)
	})

	return &Playlist{opts: opts, seen: make(map[string]struct{})}
}

// normalize turns path into the key used for duplicate detection.
func normalize(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (p *Playlist) accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return !lo.Contains(p.opts.Ignored, ext) && p.opts.Supported(path)
}

// expand lists the playable files under path, in lexical order.
func (p *Playlist) expand(path string) []string {
	afs := filesystem.API()

	isDir, err := afs.IsDir(path)
	if err != nil {
		log.Warnf("playlist: %v", err)
		return nil
	}
	if !isDir {
		return []string{path}
	}

	var files []string
	err = afs.Walk(path, func(file string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, file)
		}
		return nil
	})
	if err != nil {
		log.Warnf("playlist: walk %s: %v", path, err)
	}

	sort.Strings(files)
	return files
}

// Add appends the files at paths, expanding directories. Ignored extensions,
// unsupported files and paths already in the playlist are skipped.
// It returns the tracks that were added.
func (p *Playlist) Add(paths ...string) []player.Track {
	var candidates []string
	for _, path := range paths {
		candidates = append(candidates, p.expand(path)...)
	}

	var added []player.Track
	for _, path := range candidates {
		key := normalize(path)
		if !p.accepts(key) {
			continue
		}

		p.mu.Lock()
		_, dup := p.seen[key]
		if !dup {
			p.seen[key] = struct{}{}
		}
		p.mu.Unlock()
		if dup {
			continue
		}

		track := p.opts.Prober(key)
		track.Locator = key

		p.mu.Lock()
		p.tracks = append(p.tracks, track)
		p.mu.Unlock()

		added = append(added, track)
	}

	return added
}

// Contains reports whether path is in the queue.
func (p *Playlist) Contains(path string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	key := normalize(path)
	return lo.ContainsBy(p.tracks, func(t player.Track) bool { return t.Locator == key })
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.tracks)
}

// Tracks returns a copy of the tracks.
func (p *Playlist) Tracks() []player.Track {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]player.Track(nil), p.tracks...)
}

// Index returns the cursor position.
func (p *Playlist) Index() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Current returns the track under the cursor.
func (p *Playlist) Current() mo.Option[player.Track] {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.current < 0 || p.current >= len(p.tracks) {
		return mo.None[player.Track]()
	}
	return mo.Some(p.tracks[p.current])
}

// Select moves the cursor to index.
func (p *Playlist) Select(index int) mo.Option[player.Track] {
	p.mu.Lock()
	if index >= 0 && index < len(p.tracks) {
		p.current = index
	}
	p.mu.Unlock()
	return p.Current()
}

// Next moves the cursor forward, wrapping around when wrap is set.
// It returns None past the last track without wrap.
func (p *Playlist) Next(wrap bool) mo.Option[player.Track] {
	p.mu.Lock()
	n := len(p.tracks)
	if n == 0 || (!wrap && p.current+1 >= n) {
		p.mu.Unlock()
		return mo.None[player.Track]()
	}
	p.current = (p.current + 1) % n
	p.mu.Unlock()
	return p.Current()
}

// Previous moves the cursor back, wrapping to the last track.
func (p *Playlist) Previous() mo.Option[player.Track] {
	p.mu.Lock()
	n := len(p.tracks)
	if n == 0 {
		p.mu.Unlock()
		return mo.None[player.Track]()
	}
	p.current = (p.current - 1 + n) % n
	p.mu.Unlock()
	return p.Current()
}

// Keep retains only the tracks at indices, in queue order. Dropped paths stay
// known, so adding them again is rejected.
func (p *Playlist) Keep(indices []int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	keep := lo.Uniq(lo.Filter(indices, func(i int, _ int) bool { return i >= 0 && i < len(p.tracks) }))
	sort.Ints(keep)

	p.tracks = lo.Map(keep, func(i int, _ int) player.Track { return p.tracks[i] })
	p.current = 0
}

// label is what Find matches against.
func label(t player.Track) string {
	return strings.Join(lo.Compact([]string{t.Title, t.Performer, t.Album, filepath.Base(t.Locator)}), " ")
}

// Find returns the indices of tracks fuzzily matching query, best match first.
func (p *Playlist) Find(query string) []int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	labels := lo.Map(p.tracks, func(t player.Track, _ int) string { return label(t) })
	ranks := fuzzy.RankFindNormalizedFold(query, labels)
	sort.Stable(ranks)

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) int { return r.OriginalIndex })
}
