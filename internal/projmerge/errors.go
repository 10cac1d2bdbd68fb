package projmerge

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

var (
	// ErrInvalidArgument marks a required path argument that was left empty.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound marks a missing project file or source directory.
	// errors.Is(ErrNotFound, fs.ErrNotExist) holds.
	ErrNotFound error = notFoundError{}
	// ErrInvalidProject marks a document that cannot be merged as an MSBuild project.
	ErrInvalidProject = errors.New("invalid project")
)

type notFoundError struct{}

func (notFoundError) Error() string        { return "not found" }
func (notFoundError) Is(target error) bool { return target == fs.ErrNotExist }

// OpError describes a failed merger operation.
type OpError struct {
	Op   string // merge, copy or exclude
	Arg  string // name of the offending argument, if any
	Path string
	Kind error
	Msg  string
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	if e.Arg != "" {
		b.WriteString(e.Arg)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.Path != "" {
		fmt.Fprintf(&b, " %q", e.Path)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	return b.String()
}

func (e *OpError) Unwrap() error { return e.Kind }

func invalidArgument(op, arg string) error {
	return &OpError{Op: op, Arg: arg, Kind: ErrInvalidArgument, Msg: "path is required"}
}

func notFound(op, arg, path string) error {
	return &OpError{Op: op, Arg: arg, Path: path, Kind: ErrNotFound}
}

func invalidProjectf(op, path, format string, args ...any) error {
	return &OpError{Op: op, Path: path, Kind: ErrInvalidProject, Msg: fmt.Sprintf(format, args...)}
}
