package constant

// Sidecar and playlist file extensions.
const (
	LyricExtension = ".lrc"
)

// SubtitleExtensions lists files that sit next to media but are never played.
var SubtitleExtensions = []string{
	".srt", ".ssa", ".ass", ".txt", ".lrc", ".sup",
	".stl", ".aqt", ".smi", ".pjs", ".rt", ".sami",
}
