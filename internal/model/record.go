package model

// LogRecord represents a single parsed log line.
// Timestamp keeps the date and time tokens exactly as they appeared.
type LogRecord struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"` // "<date> <time>"
	Level     string `json:"level" yaml:"level"`         // verbatim, e.g. INFO, ERROR
	Message   string `json:"message" yaml:"message"`     // everything after the level
}

// String renders the record as a detail line: "<timestamp> - <message>".
func (r LogRecord) String() string {
	return r.Timestamp + " - " + r.Message
}
