package audio

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/lyra-cli/lyra/artwork"
	"github.com/lyra-cli/lyra/filesystem"
	"github.com/lyra-cli/lyra/util"
	"github.com/samber/lo"
	"go.senan.xyz/taglib"
)

// ErrNoArtwork is returned for files without an embedded cover.
var ErrNoArtwork = errors.New("no embedded artwork")

// Tags is the metadata read from an audio file.
type Tags struct {
	Title     string  `json:"title"`
	Performer string  `json:"performer"`
	Album     string  `json:"album"`
	Duration  float64 `json:"duration"`
}

// ReadTags reads the title, performer, album and duration of path.
// The title falls back to the file name when the file carries none.
func ReadTags(path string) (Tags, error) {
	tags := Tags{Title: util.FileStem(path)}

	// taglib reads straight from the operating system
	if !filesystem.IsOs() {
		return tags, nil
	}

	values, err := taglib.ReadTags(path)
	if err != nil {
		return tags, fmt.Errorf("read tags: %w", err)
	}

	tags.Title = lo.CoalesceOrEmpty(firstTag(values, taglib.Title), tags.Title)
	tags.Performer = lo.CoalesceOrEmpty(firstTag(values, taglib.Artist), firstTag(values, taglib.AlbumArtist))
	tags.Album = firstTag(values, taglib.Album)

	if props, err := taglib.ReadProperties(path); err == nil && props.Length > 0 {
		tags.Duration = props.Length.Seconds()
	}

	return tags, nil
}

func firstTag(values map[string][]string, key string) string {
	for _, v := range values[key] {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// ReadArtwork decodes the first embedded cover of path.
func ReadArtwork(path string) (image.Image, error) {
	if !filesystem.IsOs() {
		return nil, ErrNoArtwork
	}

	data, err := taglib.ReadImage(path)
	if err != nil {
		return nil, fmt.Errorf("read artwork: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoArtwork
	}

	return artwork.Decode(data)
}
