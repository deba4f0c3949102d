// Package classify provides the business boundary for trigon's triangle
// classification. It defines the Service (parsing, verdicts, persistence),
// the Store interface, metrics, and the Record model.
package classify
