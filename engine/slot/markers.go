package slot

// Template elements equal to one of these markers are expanded by the
// composer. A marker only matches a whole element.
const (
	MarkerTag        = "{TAG}"
	MarkerCommand    = "{COMMAND}"
	MarkerContext    = "{CONTEXT}"
	MarkerRunCommand = "{RUN_COMMAND}"
	MarkerArgs       = "{ARGS}"
	MarkerTime       = "{TIME}"
)

// Markers lists every reserved marker.
var Markers = []string{MarkerTag, MarkerCommand, MarkerContext, MarkerRunCommand, MarkerArgs, MarkerTime}
