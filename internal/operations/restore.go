package operations

import (
	"context"
	"fmt"
)

// Restore moves the contents of a previously created backup folder back
// to its parent location. It mirrors Backup: terminal failures surface
// through the reporter, individual move failures are skipped with a
// warning.
func (o *Operator) Restore(ctx context.Context, folderName string) error {
	if err := o.restore(ctx, folderName); err != nil {
		o.log.Error("restore failed", "error", err.Error())
		if repErr := o.rep.SetOutput(outputError, failurePrefix+err.Error()); repErr != nil {
			o.log.Warn("writing error output failed", "error", repErr.Error())
		}
		o.rep.Fail(err.Error())
		return err
	}
	return nil
}

func (o *Operator) restore(ctx context.Context, folderName string) error {
	if err := o.cfg.Validate(); err != nil {
		return err
	}
	if folderName == "" {
		return fmt.Errorf("restore: backup folder name is required")
	}
	org, repo, path := o.cfg.Backup.Org, o.cfg.Backup.Repo, o.cfg.Backup.Path

	if _, err := o.tokens.Token(ctx); err != nil {
		return fmt.Errorf("acquire credentials: %w", err)
	}

	folderPath := folderName
	if path != "" {
		folderPath = path + "/" + folderName
	}

	o.log.Info("listing backup folder", "org", org, "repo", repo, "path", folderPath)
	sources, err := o.client.List(ctx, org, repo, folderPath)
	if err != nil {
		return fmt.Errorf("list backup folder: %w", err)
	}

	restored := 0
	for _, src := range sources {
		if src.Path == "" && src.Name == "" {
			o.log.Warn("skipping malformed source record", "record", src.Extra)
			continue
		}

		destination := fmt.Sprintf("/%s/%s", org, repo)
		if path != "" {
			destination += "/" + path
		}
		destination += "/" + src.FileName()

		if err := o.client.Move(ctx, src.Path, destination); err != nil {
			o.log.Warn("move failed, continuing",
				"source", src.Path,
				"destination", destination,
				"error", err.Error(),
			)
			continue
		}
		o.log.Info("restored item", "source", src.Path, "destination", destination)
		restored++
	}

	o.log.Info("restore complete", "restored", restored, "listed", len(sources), "folder", folderName)
	if repErr := o.rep.SetOutput("restored_count", fmt.Sprintf("%d", restored)); repErr != nil {
		o.log.Warn("writing restore output failed", "error", repErr.Error())
	}
	return nil
}
