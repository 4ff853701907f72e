package types

// Probe is one directory inspected by a library search.
type Probe struct {
	// Candidate source that produced the directory.
	// example: install_dir
	Source string `json:"source" example:"install_dir"`
	// Directory that was probed.
	// example: /opt/intel/openvino/runtime/lib/intel64
	Dir string `json:"dir" example:"/opt/intel/openvino/runtime/lib/intel64"`
}

// FindResponse is returned by GET /find/{name} and `ovfind find --json`.
type FindResponse struct {
	// Logical library name.
	// example: openvino_c
	Library string `json:"library" example:"openvino_c"`
	// Platform file name searched for.
	// example: libopenvino_c.so
	File string `json:"file" example:"libopenvino_c.so"`
	// Whether a readable file was found.
	// example: true
	Found bool `json:"found" example:"true"`
	// Absolute path of the match.
	// example: /opt/intel/openvino/runtime/lib/intel64/libopenvino_c.so
	Path string `json:"path,omitempty" example:"/opt/intel/openvino/runtime/lib/intel64/libopenvino_c.so"`
	// Directories probed, in order. Only populated on a miss.
	Probed []Probe `json:"probed,omitempty"`
	// Error text on a miss.
	Error string `json:"error,omitempty"`
}

// BuildInfo reports the link settings compiled into the binary.
type BuildInfo struct {
	// example: runtime
	Mode string `json:"mode" example:"runtime"`
	// example: /opt/intel/openvino/runtime/lib/intel64/libopenvino_c.so
	LibraryPath string `json:"library_path,omitempty"`
	// example: false
	SkipLink bool `json:"skip_link" example:"false"`
	// example: false
	CgoLinked bool `json:"cgo_linked" example:"false"`
}

// BindStatus is returned by GET /status and `ovfind bind --json`.
type BindStatus struct {
	// Binder state: unbound, loading, bound or failed.
	// example: bound
	State string `json:"state" example:"bound"`
	// Effective link mode.
	// example: runtime
	Mode string `json:"mode" example:"runtime"`
	// example: openvino_c
	Library string `json:"library" example:"openvino_c"`
	// Path the library was loaded from.
	// example: /opt/intel/openvino/runtime/lib/intel64/libopenvino_c.so
	Path string `json:"path,omitempty"`
	// Number of resolved manifest symbols.
	// example: 17
	Symbols int `json:"symbols" example:"17"`
	// OpenVINO build number as reported by the library.
	// example: 2024.1.0-15008-f4afc983258-releases/2024/1
	Version string `json:"version,omitempty"`
	// example: false
	SkipLink bool `json:"skip_link" example:"false"`
	// Error kind: not_found, load_failed, symbol_missing, skipped.
	// example: not_found
	ErrorKind string `json:"error_kind,omitempty" example:"not_found"`
	// Full error text.
	Error string `json:"error,omitempty"`
	Build BuildInfo `json:"build"`
}

// EnvReport is returned by GET /env and `ovfind env --json`.
type EnvReport struct {
	// Platform conventions in use.
	// example: linux
	Platform string `json:"platform" example:"linux"`
	// Relevant environment variables that are set.
	Vars map[string]string `json:"vars"`
	// Directories a search would probe, in order.
	Candidates []Probe `json:"candidates"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: library not found
	Error string `json:"error" example:"library not found"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}
