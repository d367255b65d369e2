package tui

// statusLogSize is the number of status lines kept in memory.
const statusLogSize = 200

// StatusLog keeps the newest status lines. Once full, each new line
// replaces the oldest one.
type StatusLog struct {
	lines []string
	start int
	n     int
}

// NewStatusLog creates a log holding up to size lines.
func NewStatusLog(size int) *StatusLog {
	if size <= 0 {
		size = statusLogSize
	}
	return &StatusLog{lines: make([]string, size)}
}

// Add appends line unless it repeats the newest line, and reports whether
// it was added.
func (l *StatusLog) Add(line string) bool {
	if l.n > 0 && l.at(l.n-1) == line {
		return false
	}
	if l.n == len(l.lines) {
		l.lines[l.start] = line
		l.start = (l.start + 1) % len(l.lines)
		return true
	}
	l.lines[(l.start+l.n)%len(l.lines)] = line
	l.n++
	return true
}

// Len returns the number of lines held.
func (l *StatusLog) Len() int {
	return l.n
}

// Latest returns the newest line, or "" when the log is empty.
func (l *StatusLog) Latest() string {
	if l.n == 0 {
		return ""
	}
	return l.at(l.n - 1)
}

// Tail returns up to n of the newest lines, oldest first.
func (l *StatusLog) Tail(n int) []string {
	n = min(n, l.n)
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = l.at(l.n - n + i)
	}
	return out
}

// Lines returns every line held, oldest first.
func (l *StatusLog) Lines() []string {
	return l.Tail(l.n)
}

func (l *StatusLog) at(i int) string {
	return l.lines[(l.start+i)%len(l.lines)]
}
