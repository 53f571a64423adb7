package resolver

type Kind int

const (
	KindNotFound Kind = iota
	KindFile
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "not_found"
	}
}

// Target is what a request path resolved to.
type Target struct {
	Kind Kind
	// Name is the root-relative name handed to the filesystem.
	Name string
	// Path is the request-facing path, the title of a listing.
	Path    string
	Entries []string
}

func File(name string) Target {
	return Target{Kind: KindFile, Name: name, Path: "/" + name}
}

func Directory(name string, entries []string) Target {
	return Target{Kind: KindDirectory, Name: name, Path: "/" + name, Entries: entries}
}

func NotFound() Target {
	return Target{Kind: KindNotFound}
}
