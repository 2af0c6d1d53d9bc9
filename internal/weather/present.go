package weather

import "fmt"

const (
	// Sentinel replaces any field the provider did not report.
	Sentinel = "N/A"

	// NoDataToPresent is returned by Present for a nil reading.
	NoDataToPresent = "No data to present"
)

// Present formats a reading into a single display sentence.
func Present(r *Reading) string {
	if r == nil {
		return NoDataToPresent
	}
	return fmt.Sprintf("The current temperature is %s°C with %s.",
		orSentinel(measurementText(r.Temperature)), orSentinel(r.Description))
}

func measurementText(m *Measurement) *string {
	if m == nil {
		return nil
	}
	s := m.String()
	return &s
}

func orSentinel(s *string) string {
	if s == nil {
		return Sentinel
	}
	return *s
}
