package alerts

// Level is the severity of an alert.
type Level int

// Alert levels, most severe first.
const (
	LevelWarning Level = iota
	LevelInfo
	LevelSuccess
)

const resetColor = "\033[0m"

type style struct {
	icon  string
	color string
}

var styles = map[Level]style{
	LevelWarning: {icon: "⚠️", color: "\033[33m"},
	LevelInfo:    {icon: "ℹ️", color: "\033[36m"},
	LevelSuccess: {icon: "✓", color: "\033[32m"},
}

// Icon returns the symbol printed before an alert of this level.
func (l Level) Icon() string {
	if s, ok := styles[l]; ok {
		return s.icon
	}
	return "?"
}

// Color returns the ANSI color for the level, or the reset sequence for an
// unknown level.
func (l Level) Color() string {
	if s, ok := styles[l]; ok {
		return s.color
	}
	return resetColor
}
