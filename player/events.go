package player

// EventKind identifies a change in observable playback state.
type EventKind int

const (
	TrackChanged EventKind = iota
	ProgressChanged
	DurationChanged
	VolumeChanged
	RunningChanged
	TitleChanged
	PerformerChanged
	AlbumChanged
	LyricIndexChanged
	LyricsChanged
	ArtworkChanged
	StateChanged
	Finished
	Error
)

var eventNames = map[EventKind]string{
	TrackChanged:      "track",
	ProgressChanged:   "progress",
	DurationChanged:   "duration",
	VolumeChanged:     "volume",
	RunningChanged:    "running",
	TitleChanged:      "title",
	PerformerChanged:  "performer",
	AlbumChanged:      "album",
	LyricIndexChanged: "lyric-index",
	LyricsChanged:     "lyrics",
	ArtworkChanged:    "artwork",
	StateChanged:      "state",
	Finished:          "finished",
	Error:             "error",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is a change notification. Err is set for Error events.
type Event struct {
	Kind EventKind
	Err  error
}

// Emitter receives events on the coordinator goroutine. It must not block for long.
type Emitter func(Event)

// State is the coordinator lifecycle phase.
type State int

const (
	Idle State = iota
	Opening
	Playing
	Suspended
	Ended
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Opening:
		return "opening"
	case Playing:
		return "playing"
	case Suspended:
		return "suspended"
	case Ended:
		return "finished"
	default:
		return "unknown"
	}
}
