// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 19

// Audio Output - these keys shape the decoded stream and the device buffer it is pumped into.
const (
	AudioSampleRate   = "audio.sample_rate"
	AudioBufferMs     = "audio.buffer_ms"
	AudioPeriodMs     = "audio.period_ms"
	AudioPacketFrames = "audio.packet_frames"
	AudioNull         = "audio.null"
)

// Playback - these keys configure the coordinator and playlist progression.
const (
	PlayerVolume   = "player.volume"
	PlayerAutoplay = "player.autoplay"
	PlayerSeekStep = "player.seek_step"
)

// Lyrics - these keys control sidecar lyric discovery.
const (
	LyricsEnable       = "lyrics.enable"
	LyricsExtension    = "lyrics.extension"
	LyricsDumpMetadata = "lyrics.dump_metadata"
)

// Playlist - these keys filter what can be added to the play queue.
const (
	PlaylistIgnoredExtensions = "playlist.ignored_extensions"
)

// Terminal User Interface (TUI) - these keys define the player screen.
const (
	TUILyricContext = "tui.lyric_context"
	TUIShowArtwork  = "tui.show_artwork"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
