package bootstrap

import (
	"bytes"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// prefixFormatter renders "[+] message" for info and below, "[!] message"
// for warn and above, with any structured fields appended as key=value
// pairs. Output is for humans at a terminal, not a machine interface
// (spec.md §6) — there is deliberately no JSON mode.
type prefixFormatter struct{}

func (prefixFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	prefix := "[+]"
	if entry.Level <= logrus.WarnLevel {
		prefix = "[!]"
	}

	var buf bytes.Buffer
	buf.WriteString(prefix)
	buf.WriteByte(' ')
	buf.WriteString(entry.Message)
	for k, v := range entry.Data {
		buf.WriteByte(' ')
		buf.WriteString(k)
		buf.WriteByte('=')
		buf.WriteString(formatValue(v))
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func formatValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// NewLogger returns a logrus.Logger configured with prefixFormatter,
// writing info-and-below to stdout and warn-and-above to stderr. logrus
// only writes each entry to one io.Writer (its Out), so splitting by
// level is done with the main Out discarded and two level-scoped hooks.
func NewLogger(stdout, stderr io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(prefixFormatter{})
	log.SetOutput(io.Discard)
	log.AddHook(&writerHook{writer: stdout, formatter: prefixFormatter{}, levels: []logrus.Level{
		logrus.InfoLevel, logrus.DebugLevel, logrus.TraceLevel,
	}})
	log.AddHook(&writerHook{writer: stderr, formatter: prefixFormatter{}, levels: []logrus.Level{
		logrus.WarnLevel, logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel,
	}})
	log.SetLevel(logrus.InfoLevel)
	return log
}

// writerHook renders every entry matching Levels through formatter and
// writes it to writer.
type writerHook struct {
	writer    io.Writer
	formatter logrus.Formatter
	levels    []logrus.Level
}

func (h *writerHook) Levels() []logrus.Level { return h.levels }

func (h *writerHook) Fire(entry *logrus.Entry) error {
	b, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(b)
	return err
}
