// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Reproduction - these keys govern playback session defaults.
const (
	ReproductionVolume       = "reproduction.volume"
	ReproductionPollInterval = "reproduction.poll_interval"
	ReproductionTempo        = "reproduction.tempo"
)

// Synthetic Playback - these keys tune the timer-driven play-along backend.
const (
	SimulatedTick = "simulated.tick"
)

// Timeline - these keys configure the timeline geometry and range selection interaction.
const (
	TimelineZoomLevel      = "timeline.zoom_level"
	TimelineEdgeTolerance  = "timeline.edge_tolerance"
	TimelineClickThreshold = "timeline.click_threshold"
	TimelineContainerWidth = "timeline.container_width"
)

// Metronome - these keys control the audible counting-in click.
const (
	MetronomeEnabled   = "metronome.enabled"
	MetronomeFrequency = "metronome.frequency"
)

// Video Backends - these keys configure the external video player and availability probing.
const (
	PlayerMPVPath   = "player.mpv_path"
	ProbeCacheHours = "probe.cache_hours"
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

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
