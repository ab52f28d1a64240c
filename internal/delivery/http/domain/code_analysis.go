package domain

var (
	CODE_ANALYSIS_SUCCESS            = "Code analyzed successfully"
	CODE_ANALYSIS_FAILED             = "Failed to analyze code"
	CODE_ANALYSIS_EMPTY_INPUT        = "Please enter or upload some code first."
	CODE_ANALYSIS_GENERIC_FAILURE    = "Failed to analyze code. Please try again."
	CODE_ANALYSIS_UNEXPECTED_FAILURE = "An unexpected error occurred during analysis."
	CODE_ANALYSIS_UNSUPPORTED_FILE   = "Unsupported file type"
	TUTOR_SESSION_GET_SUCCESS        = "Session state retrieved"
)
