package status

// Status is a custom type to represent the possible states of the sheet load
type Status int

const (
	// Idle means no load was attempted yet
	Idle Status = 0

	// Loading means the sheet is being downloaded and parsed
	Loading Status = 1

	// Ready means a collection is published and can be queried
	Ready Status = 2

	// Failed means the last load attempt failed
	Failed Status = 3
)

var (
	statusText = map[Status]string{
		Idle:    "System is idle",
		Loading: "System is loading the sheet",
		Ready:   "System is ready",
		Failed:  "System failed to load the sheet",
	}
)

// Text returns a text for a status. It returns the empty
// string if the status is unknown.
func Text(status Status) string {
	return statusText[status]
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return Text(s)
}
