// Package severity provides the severity levels of generation issues.
//
// The levels are ordered from least to most severe:
// Info < Warning < Error < Critical
//
//   - SeverityInfo: a choice the generator made on the user's behalf (e.g. a fallback file name)
//   - SeverityWarning: something that generated but may not compile or decode as expected
//   - SeverityError: a bundle-wide problem that fails the run in strict mode
//   - SeverityCritical: a definition that could not be generated at all
package severity

// Severity indicates the severity level of a generation issue.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity as its string form in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
