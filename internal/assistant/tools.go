package assistant

// Tool describes one pipeline stage as a named, callable capability.
type Tool struct {
	Name           string `json:"name"`
	Role           string `json:"role"`
	Goal           string `json:"goal"`
	ExpectedOutput string `json:"expectedOutput"`
}

var tools = []Tool{
	{
		Name:           "fetch_weather",
		Role:           "Weather Data Fetcher",
		Goal:           "Fetch the current weather data for a given location",
		ExpectedOutput: "Raw weather data from the API",
	},
	{
		Name:           "handle_weather_data",
		Role:           "Weather Data Analyst",
		Goal:           "Analyze the fetched weather data",
		ExpectedOutput: "Analyzed weather data with key information",
	},
	{
		Name:           "present_weather_report",
		Role:           "Weather Report Writer",
		Goal:           "Present the weather data in a user-friendly format",
		ExpectedOutput: "A user-friendly weather report",
	},
}

// Tools returns the pipeline stages in execution order.
func Tools() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}
