package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/goliatone/go-formcontent/pkg/content"
	"github.com/goliatone/go-formcontent/pkg/contenterr"
)

// LoadMessages reads and compiles message blocks. Blocks are reloaded on
// every call.
func (l *Loader) LoadMessages(ctx context.Context, framework string, blocks ...string) error {
	for _, block := range blocks {
		name := messagePath(framework, block)
		var data map[string]any
		if err := readYAML(ctx, l.files, name, &data); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return contenterr.NotFound("no message file at %s", name)
			}
			return err
		}
		message, err := content.NewMessage(data)
		if err != nil {
			return fmt.Errorf("loader: %s: %w", name, err)
		}
		l.store(framework, func(c *frameworkCache) { c.messages[block] = message })
		l.logger.Debug("messages loaded", zap.String("path", name))
	}
	return nil
}

// GetMessage returns a loaded message block.
func (l *Loader) GetMessage(framework, block string) (*content.Message, error) {
	var found *content.Message
	l.lookup(framework, func(c *frameworkCache) bool {
		found = c.messages[block]
		return found != nil
	})
	if found == nil {
		return nil, contenterr.NotFound("message file at %s not loaded", messagePath(framework, block))
	}
	return found, nil
}

// TryLoadMessages is LoadMessages that logs and ignores missing content.
func (l *Loader) TryLoadMessages(ctx context.Context, framework string, blocks ...string) error {
	err := l.LoadMessages(ctx, framework, blocks...)
	if errors.Is(err, contenterr.ErrContentNotFound) {
		l.logger.Info("could not load messages",
			zap.Strings("blocks", blocks),
			zap.String("framework", framework),
			zap.Error(err))
		return nil
	}
	return err
}

// LoadMetadata reads metadata blocks. Blocks are reloaded on every call.
func (l *Loader) LoadMetadata(ctx context.Context, framework string, blocks ...string) error {
	for _, block := range blocks {
		name := metadataPath(framework, block)
		var data map[string]any
		if err := readYAML(ctx, l.files, name, &data); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return contenterr.NotFound("no metadata file at %s", name)
			}
			return err
		}
		metadata := content.NewMetadata(data)
		l.store(framework, func(c *frameworkCache) { c.metadata[block] = metadata })
		l.logger.Debug("metadata loaded", zap.String("path", name))
	}
	return nil
}

// GetMetadata returns a loaded metadata block.
func (l *Loader) GetMetadata(framework, block string) (*content.Metadata, error) {
	var found *content.Metadata
	l.lookup(framework, func(c *frameworkCache) bool {
		found = c.metadata[block]
		return found != nil
	})
	if found == nil {
		return nil, contenterr.NotFound("metadata file at %s not loaded", metadataPath(framework, block))
	}
	return found, nil
}

// TryLoadMetadata is LoadMetadata that logs and ignores missing content.
func (l *Loader) TryLoadMetadata(ctx context.Context, framework string, blocks ...string) error {
	err := l.LoadMetadata(ctx, framework, blocks...)
	if errors.Is(err, contenterr.ErrContentNotFound) {
		l.logger.Info("could not load metadata",
			zap.Strings("blocks", blocks),
			zap.String("framework", framework),
			zap.Error(err))
		return nil
	}
	return err
}
