package http

// Export private functions for testing
var (
	VerifySlackSignature = verifySlackSignature
	ParseCoordinates     = parseCoordinates
)
