package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchAndRender 在场景文件变化时重新渲染，直到 ctx 结束。
// 监听的是所在目录：很多编辑器保存时会替换文件而不是原地写入。
func watchAndRender(ctx context.Context, cfg config, logger *slog.Logger) error {
	if cfg.input == "" {
		return fmt.Errorf("-watch 需要配合 -in 使用")
	}
	target, err := filepath.Abs(cfg.input)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("监听目录 %s 失败: %w", filepath.Dir(target), err)
	}
	logger.Info("watching scene", "path", target)

	return watchLoop(ctx, w.Events, w.Errors, target, func() {
		if err := run(cfg); err != nil {
			logger.Error("re-render failed", "err", err)
			return
		}
		logger.Info("re-rendered", "out", cfg.output)
	}, logger)
}

func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, target string, render func(), logger *slog.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !isSceneChange(ev, target) {
				continue
			}
			logger.Debug("scene changed", "op", ev.Op.String())
			render()
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		}
	}
}

func isSceneChange(ev fsnotify.Event, target string) bool {
	name, err := filepath.Abs(ev.Name)
	if err != nil || name != target {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
