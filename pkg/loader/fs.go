package loader

import (
	"context"
	"errors"
	"io/fs"

	"gopkg.in/yaml.v3"
)

func readYAML(ctx context.Context, files fs.FS, name string, out any) error {
	if files == nil {
		return errors.New("loader: filesystem is not configured")
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := fs.ReadFile(files, name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return &ParseError{Path: name, Err: err}
	}
	return nil
}

// ParseError reports a content file that is not valid YAML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "loader: parse " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
