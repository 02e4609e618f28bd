package messages

// Run summary output.
const (
	ReportSummaryHeader   = "Summary:"
	ReportStatusOKLabel   = "[ OK ]"
	ReportStatusSkipLabel = "[SKIP]"
	ReportStatusFailLabel = "[FAIL]"
	ReportTotalsFmt       = "%d tools: %d succeeded, %d skipped, %d failed"
)
