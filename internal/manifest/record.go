package manifest

import "time"

// Record is the persisted outcome of the last compile attempt for an asset
type Record struct {
	// Asset is the configured asset name, also the record key
	Asset string `json:"asset"`

	// Fingerprint identifies the compile options the attempt ran with
	Fingerprint string `json:"fingerprint"`

	// Source is the absolute path of the SCSS entry file
	Source string `json:"source"`

	// Destination is the absolute path of the compiled stylesheet
	Destination string `json:"destination"`

	// Dependencies are the files loaded by the source at the time of the attempt
	Dependencies []string `json:"dependencies"`

	Success    bool  `json:"success"`
	DurationMS int64 `json:"duration_ms"`

	// Size is the number of bytes written, zero for failed attempts
	Size int64 `json:"size"`

	// Error is the compiler message of a failed attempt
	Error string `json:"error,omitempty"`

	CompiledAt time.Time `json:"compiled_at"`
}
