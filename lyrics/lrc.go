package lyrics

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lyra-cli/lyra/filesystem"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// ErrNoLyrics is returned when a lyric file contains no timed lines.
var ErrNoLyrics = errors.New("no timed lyric lines")

var (
	timeTagPattern = regexp.MustCompile(`\[(\d+):(\d{1,2})(?:[.:](\d{1,3}))?\]`)
	metaTagPattern = regexp.MustCompile(`^\[([A-Za-z#]+):(.*)\]$`)
)

// tagNames maps LRC id tags to readable names.
var tagNames = map[string]string{
	"ti":     "Title",
	"ar":     "Artist",
	"al":     "Album",
	"au":     "Author",
	"by":     "Creator",
	"re":     "Editor",
	"ve":     "Version",
	"length": "Length",
	"offset": "Offset",
	"#":      "Comment",
}

// Tag is an LRC id tag such as [ar:Artist].
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Document is the decoded content of a lyric file.
type Document struct {
	Tags  []Tag   `json:"tags"`
	Lines []Entry `json:"lines"`
}

// LRC decodes .lrc lyric files.
//
// Decode loads a file; ReadPacket then yields its lines once, in time order.
type LRC struct {
	doc Document
	pos int
}

// NewLRC returns an empty decoder.
func NewLRC() *LRC {
	return &LRC{}
}

// Decode reads and parses the lyric file at path.
func (d *LRC) Decode(path string) error {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return fmt.Errorf("read lyrics: %w", err)
	}
	return d.Parse(bytes.NewReader(data))
}

// Parse parses LRC content from r, replacing anything decoded before.
func (d *LRC) Parse(r io.Reader) error {
	d.doc = Document{}
	d.pos = 0

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read lyrics: %w", err)
	}

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		if decoded, err := simplifiedchinese.GB18030.NewDecoder().Bytes(data); err == nil {
			data = decoded
		}
	}

	var offset int64
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		stamps := timeTagPattern.FindAllStringSubmatchIndex(line, -1)
		if len(stamps) == 0 {
			if m := metaTagPattern.FindStringSubmatch(line); m != nil {
				tag := Tag{Key: strings.ToLower(m[1]), Value: strings.TrimSpace(m[2])}
				if tag.Key == "offset" {
					offset, _ = strconv.ParseInt(tag.Value, 10, 64)
				}
				d.doc.Tags = append(d.doc.Tags, tag)
			}
			continue
		}

		// text follows the last leading time tag
		text := strings.TrimSpace(line[stamps[len(stamps)-1][1]:])
		for _, loc := range stamps {
			d.doc.Lines = append(d.doc.Lines, Entry{
				PTS:  stampMillis(line, loc),
				Text: text,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan lyrics: %w", err)
	}

	if len(d.doc.Lines) == 0 {
		return ErrNoLyrics
	}

	// a positive offset makes lines appear sooner
	for i := range d.doc.Lines {
		d.doc.Lines[i].PTS = max(d.doc.Lines[i].PTS-offset, 0)
	}
	sort.SliceStable(d.doc.Lines, func(i, j int) bool {
		return d.doc.Lines[i].PTS < d.doc.Lines[j].PTS
	})

	return nil
}

// stampMillis converts the submatch at loc into milliseconds.
func stampMillis(line string, loc []int) int64 {
	group := func(n int) string {
		if loc[2*n] < 0 {
			return ""
		}
		return line[loc[2*n]:loc[2*n+1]]
	}

	minutes, _ := strconv.ParseInt(group(1), 10, 64)
	seconds, _ := strconv.ParseInt(group(2), 10, 64)

	var fraction int64
	if frac := group(3); frac != "" {
		fraction, _ = strconv.ParseInt(frac, 10, 64)
		for i := len(frac); i < 3; i++ {
			fraction *= 10
		}
	}

	return (minutes*60+seconds)*1000 + fraction
}

// ReadPacket yields the next line, or false once all lines were read.
func (d *LRC) ReadPacket() (Entry, bool) {
	if d.pos >= len(d.doc.Lines) {
		return Entry{}, false
	}
	e := d.doc.Lines[d.pos]
	d.pos++
	return e, true
}

// Document returns everything decoded so far.
func (d *LRC) Document() Document {
	return d.doc
}

// Tag returns the value of the id tag key, if present.
func (d *LRC) Tag(key string) (string, bool) {
	for _, t := range d.doc.Tags {
		if t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}

// DumpMetadata writes the id tags to w, one per line.
func (d *LRC) DumpMetadata(w io.Writer) {
	for _, t := range d.doc.Tags {
		name, ok := tagNames[t.Key]
		if !ok {
			name = t.Key
		}
		fmt.Fprintf(w, "%s: %s\n", name, t.Value)
	}
}
