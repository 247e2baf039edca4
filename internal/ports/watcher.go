package ports

// Watcher monitors a fixed set of files and reports changes.
// Editors often replace files by rename, so adapters watch the parent
// directories and filter events down to the requested paths.
type Watcher interface {
	// Watch starts monitoring paths. onChange is called with the absolute
	// path of each changed file, at most once per debounce interval per
	// file. The callback may be invoked from any goroutine. Returns an error
	// if a parent directory doesn't exist or permissions are insufficient.
	Watch(paths []string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
