package profile

import (
	"fmt"
	"path/filepath"
)

// Engine copies catalog items between a live profile and a backup root.
// Runs are synchronous; there is no rollback, so a failure partway through
// leaves earlier items in place.
type Engine struct {
	fsmgr  FilesystemManager
	logger Logger
}

// NewEngine creates a copy engine.
func NewEngine(fsmgr FilesystemManager, logger Logger) *Engine {
	return &Engine{fsmgr: fsmgr, logger: logger}
}

// Backup copies every requested, detected item from the profile into root/<key>.
// Items absent from the catalog or not detected are skipped with a notice.
func (e *Engine) Backup(catalog Catalog, root string, keys []ItemKey) (*Report, error) {
	report := &Report{Action: ActionBackup, Root: root}
	if err := checkRoot(root); err != nil {
		return report, err
	}

	e.logger.Info("backup started", "root", root, "items", len(keys))
	for _, key := range uniqueKeys(keys) {
		item, ok := catalog.Get(key)
		if !ok {
			e.skip(report, key, "not available for this profile")
			continue
		}
		if item.DetectErr != nil {
			e.skip(report, key, "cannot read "+item.SourcePath+": "+item.DetectErr.Error())
			continue
		}
		if !item.Detected {
			e.skip(report, key, "nothing to back up at "+item.SourcePath)
			continue
		}

		dest := filepath.Join(root, string(key))
		if err := e.fsmgr.MkdirAll(dest); err != nil {
			report.add(ItemResult{Key: key, Outcome: OutcomeFailed, Reason: err.Error()})
			return report, fmt.Errorf("%w: creating %s: %w", ErrCopyIO, dest, err)
		}

		n, err := e.copyMatches(item.SourcePath, dest, item.MatchPattern, item.Recursive())
		if err != nil {
			report.add(ItemResult{Key: key, Outcome: OutcomeFailed, Files: n, Reason: err.Error()})
			return report, fmt.Errorf("%w: backing up %s: %w", ErrCopyIO, key, err)
		}

		report.add(ItemResult{Key: key, Outcome: OutcomeCopied, Files: n})
		e.logger.Info("item backed up", "item", key, "files", n, "dest", dest)
	}

	e.logger.Info("backup complete", "copied", len(report.Keys(OutcomeCopied)), "skipped", len(report.Keys(OutcomeSkipped)))
	return report, nil
}

// Restore copies root/<key> back into each requested item's source path.
// Detection is not required; keys with no backup subdirectory are skipped.
func (e *Engine) Restore(catalog Catalog, root string, keys []ItemKey) (*Report, error) {
	report := &Report{Action: ActionRestore, Root: root}
	if err := checkRoot(root); err != nil {
		return report, err
	}

	e.logger.Info("restore started", "root", root, "items", len(keys))
	for _, key := range uniqueKeys(keys) {
		item, ok := catalog.Get(key)
		if !ok {
			e.skip(report, key, "not available for this profile")
			continue
		}

		src := filepath.Join(root, string(key))
		exists, err := e.fsmgr.IsDir(src)
		if err != nil {
			report.add(ItemResult{Key: key, Outcome: OutcomeFailed, Reason: err.Error()})
			return report, fmt.Errorf("%w: checking %s: %w", ErrCopyIO, src, err)
		}
		if !exists {
			e.skip(report, key, "no backup at "+src)
			continue
		}

		n, err := e.copyMatches(src, item.SourcePath, "*", item.Recursive())
		if err != nil {
			report.add(ItemResult{Key: key, Outcome: OutcomeFailed, Files: n, Reason: err.Error()})
			return report, fmt.Errorf("%w: restoring %s: %w", ErrCopyIO, key, err)
		}

		report.add(ItemResult{Key: key, Outcome: OutcomeCopied, Files: n})
		e.logger.Info("item restored", "item", key, "files", n, "dest", item.SourcePath)
	}

	e.logger.Info("restore complete", "copied", len(report.Keys(OutcomeCopied)), "skipped", len(report.Keys(OutcomeSkipped)))
	return report, nil
}

// copyMatches copies every file under srcDir matching pattern into the same
// relative location under destDir. It returns the number of files copied
// before any error.
func (e *Engine) copyMatches(srcDir, destDir, pattern string, recursive bool) (int, error) {
	files, err := e.fsmgr.Match(srcDir, pattern, recursive)
	if err != nil {
		return 0, fmt.Errorf("listing %s: %w", srcDir, err)
	}

	if err := e.fsmgr.MkdirAll(destDir); err != nil {
		return 0, fmt.Errorf("creating %s: %w", destDir, err)
	}

	for i, rel := range files {
		src := filepath.Join(srcDir, rel)
		dst := filepath.Join(destDir, rel)
		if err := e.fsmgr.CopyFile(src, dst); err != nil {
			return i, err
		}
		e.logger.Debug("file copied", "src", src, "dst", dst)
	}
	return len(files), nil
}

func (e *Engine) skip(report *Report, key ItemKey, reason string) {
	report.add(ItemResult{Key: key, Outcome: OutcomeSkipped, Reason: reason})
	e.logger.Info("item skipped", "item", key, "reason", reason, "kind", ErrItemNotFound)
}

func checkRoot(root string) error {
	if root == "" {
		return fmt.Errorf("%w: backup root path", ErrMissingArgument)
	}
	if !filepath.IsAbs(root) {
		return fmt.Errorf("backup root must be an absolute path: %q", root)
	}
	return nil
}
