package codes

// ErrorCodes maps sass executable exit codes (sysexits) to their descriptions
var ErrorCodes = map[int]string{
	0:  "Success",
	1:  "General failure",
	64: "Invalid command line usage",
	65: "Stylesheet contains errors",
	66: "Input file could not be read",
	70: "Internal compiler error",
	74: "Output could not be written",
}

// CLI exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitAborted = 2
)

// IsSuccess returns true if the exit code indicates successful compilation
func IsSuccess(code int) bool {
	return code == 0
}

// GetErrorMessage returns the error message for a given exit code, or a generic message if unknown
func GetErrorMessage(code int) string {
	if msg, ok := ErrorCodes[code]; ok {
		return msg
	}

	return "Unknown error"
}
