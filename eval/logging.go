package eval

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/lyraproj/issue/issue"
	"github.com/mattn/go-isatty"
)

type (
	LogLevel string

	Logger interface {
		Log(level LogLevel, args ...Value)

		Logf(level LogLevel, format string, args ...interface{})

		LogIssue(issue issue.Reported)

		// Enabled returns true if entries on the given level are recorded
		Enabled(level LogLevel) bool
	}

	stdlog struct {
		lock  sync.Mutex
		out   io.Writer
		err   io.Writer
		min   int
		color bool
	}

	LogEntry struct {
		level   LogLevel
		message string
	}

	ArrayLogger struct {
		lock    sync.Mutex
		min     int
		entries []*LogEntry
	}
)

const (
	ALERT   = LogLevel(`alert`)
	CRIT    = LogLevel(`crit`)
	DEBUG   = LogLevel(`debug`)
	EMERG   = LogLevel(`emerg`)
	ERR     = LogLevel(`err`)
	INFO    = LogLevel(`info`)
	NOTICE  = LogLevel(`notice`)
	WARNING = LogLevel(`warning`)
)

var LogLevels = []LogLevel{DEBUG, INFO, NOTICE, WARNING, ERR, ALERT, EMERG, CRIT}

// Severity returns the position of the level in LogLevels or -1 if the level is unknown
func (l LogLevel) Severity() int {
	for i, ll := range LogLevels {
		if ll == l {
			return i
		}
	}
	return -1
}

// ParseLogLevel returns the LogLevel with the given name
func ParseLogLevel(name string) (LogLevel, bool) {
	l := LogLevel(name)
	return l, l.Severity() >= 0
}

func Debug(logger Logger, format string, args ...interface{}) {
	if logger.Enabled(DEBUG) {
		logger.Logf(DEBUG, format, args...)
	}
}

func Info(logger Logger, format string, args ...interface{}) {
	logger.Logf(INFO, format, args...)
}

func Notice(logger Logger, format string, args ...interface{}) {
	logger.Logf(NOTICE, format, args...)
}

func Warning(logger Logger, format string, args ...interface{}) {
	logger.Logf(WARNING, format, args...)
}

func Err(logger Logger, format string, args ...interface{}) {
	logger.Logf(ERR, format, args...)
}

// NewStdLogger creates a logger that writes debug, info, and notice entries on stdout and
// everything else on stderr. Entries below the given level are discarded. The level prefix
// is colored when stderr is a terminal.
func NewStdLogger(min LogLevel) Logger {
	return &stdlog{out: os.Stdout, err: os.Stderr, min: min.Severity(), color: isatty.IsTerminal(os.Stderr.Fd())}
}

func (l *stdlog) Enabled(level LogLevel) bool {
	return level.Severity() >= l.min
}

func (l *stdlog) Log(level LogLevel, args ...Value) {
	if !l.Enabled(level) {
		return
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	w := l.writerFor(level)
	l.prefix(w, level)
	for _, arg := range args {
		io.WriteString(w, arg.String())
	}
	io.WriteString(w, "\n")
}

func (l *stdlog) Logf(level LogLevel, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	w := l.writerFor(level)
	l.prefix(w, level)
	fmt.Fprintf(w, format, args...)
	io.WriteString(w, "\n")
}

func (l *stdlog) prefix(w io.Writer, level LogLevel) {
	if l.color {
		color := `32`
		switch level {
		case DEBUG, INFO, NOTICE:
		case WARNING:
			color = `33`
		default:
			color = `31`
		}
		fmt.Fprintf(w, "\x1b[%sm%s\x1b[0m: ", color, level)
		return
	}
	fmt.Fprintf(w, `%s: `, level)
}

func (l *stdlog) writerFor(level LogLevel) io.Writer {
	switch level {
	case DEBUG, INFO, NOTICE:
		return l.out
	default:
		return l.err
	}
}

func (l *stdlog) LogIssue(i issue.Reported) {
	l.Logf(issueLevel(i), `%s`, i.Error())
}

// NewArrayLogger creates a logger that records all entries on the given level or above
func NewArrayLogger(min LogLevel) *ArrayLogger {
	return &ArrayLogger{min: min.Severity(), entries: make([]*LogEntry, 0, 16)}
}

func (l *ArrayLogger) Enabled(level LogLevel) bool {
	return level.Severity() >= l.min
}

func (l *ArrayLogger) Entries(level LogLevel) (result []string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	result = make([]string, 0, 8)
	for _, entry := range l.entries {
		if entry.level == level {
			result = append(result, entry.message)
		}
	}
	return
}

func (l *ArrayLogger) Log(level LogLevel, args ...Value) {
	if !l.Enabled(level) {
		return
	}
	s := ``
	for _, arg := range args {
		s += arg.String()
	}
	l.add(level, s)
}

func (l *ArrayLogger) Logf(level LogLevel, format string, args ...interface{}) {
	if l.Enabled(level) {
		l.add(level, fmt.Sprintf(format, args...))
	}
}

func (l *ArrayLogger) LogIssue(i issue.Reported) {
	l.Logf(issueLevel(i), `%s`, i.Error())
}

func (l *ArrayLogger) add(level LogLevel, message string) {
	l.lock.Lock()
	l.entries = append(l.entries, &LogEntry{level, message})
	l.lock.Unlock()
}

func issueLevel(i issue.Reported) LogLevel {
	if i.Severity() == issue.SEVERITY_ERROR {
		return ERR
	}
	return WARNING
}
