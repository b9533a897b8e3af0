package failure

type Severity int

// caller control flow: fatal aborts the client, recoverable
// means the caller decides whether to retry
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

type ClassifiedError interface {
	error
	Severity() Severity
}
