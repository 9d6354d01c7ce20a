package event

// Raw holds the unparsed field strings an extractor found for one event entry.
// Empty fields mean the page did not provide the value.
type Raw struct {
	Series   string
	Title    string
	DateText string
	TimeText string
	Location string
	Speaker  string
	URL      string
}
