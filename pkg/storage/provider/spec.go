package provider

// Spec configures a storage service: a namespace prefix plus exactly one
// backend.
type Spec struct {
	Prefix  string      `json:"prefix,omitempty"`
	Backend BackendSpec `json:"backend"`
}

// BackendSpec selects a backend. Exactly one field must be set; the JSON
// field name doubles as the registry key.
type BackendSpec struct {
	Memory    *MemorySpec    `json:"memory,omitempty"`
	File      *FileSpec      `json:"file,omitempty"`
	SQLite    *SQLiteSpec    `json:"sqlite,omitempty"`
	Extension *ExtensionSpec `json:"extension,omitempty"`
}

// MemorySpec configures the in-process backend. It carries no options.
type MemorySpec struct{}

// FileSpec configures the file-per-key backend.
type FileSpec struct {
	Dir string `json:"dir"`
}

// SQLiteSpec configures the SQLite backend.
type SQLiteSpec struct {
	Path string `json:"path"`
}

// ExtensionSpec configures the callback-store adapter over the in-process
// event-loop store.
type ExtensionSpec struct{}
