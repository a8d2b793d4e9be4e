package cmd

import (
	"fmt"

	"github.com/jimezsa/horizons/internal/snapshot"
)

type SnapshotCmd struct {
	Diff   SnapshotDiffCmd   `cmd:"" help:"Write jobs present in A but not in B to JSON."`
	Update SnapshotUpdateCmd `cmd:"" help:"Merge new jobs into a history JSON file."`
}

type SnapshotDiffCmd struct {
	New   string `name:"new" required:"" help:"Path to new jobs JSON file (A)."`
	Seen  string `name:"seen" required:"" help:"Path to seen jobs JSON file (B). Missing file is treated as empty."`
	Out   string `name:"out" required:"" help:"Output path for unseen jobs JSON file."`
	Stats bool   `name:"stats" help:"Print comparison stats."`
}

type SnapshotUpdateCmd struct {
	Seen  string `name:"seen" required:"" help:"Path to seen jobs JSON file. Missing file is treated as empty."`
	Input string `name:"input" required:"" help:"Path to input jobs JSON file to merge into history."`
	Out   string `name:"out" required:"" help:"Output path for updated history JSON."`
	Stats bool   `name:"stats" help:"Print merge stats."`
}

func (c *SnapshotDiffCmd) Run(ctx *Context) error {
	newJobs, err := snapshot.Read(c.New)
	if err != nil {
		return fmt.Errorf("read --new: %w", err)
	}
	seenJobs, err := snapshot.Load(c.Seen)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}

	unseenJobs, stats := snapshot.Diff(newJobs, seenJobs)
	if err := snapshot.Save(c.Out, unseenJobs); err != nil {
		return fmt.Errorf("write --out: %w", err)
	}

	if c.Stats {
		_, err := fmt.Fprintf(
			ctx.Out,
			"total_new=%d total_seen=%d invalid_skipped=%d unseen_emitted=%d\n",
			stats.TotalNew,
			stats.TotalSeen,
			stats.InvalidSkipped(),
			stats.Unseen,
		)
		return err
	}

	return nil
}

func (c *SnapshotUpdateCmd) Run(ctx *Context) error {
	seenJobs, err := snapshot.Load(c.Seen)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}
	inputJobs, err := snapshot.Read(c.Input)
	if err != nil {
		return fmt.Errorf("read --input: %w", err)
	}

	mergedJobs, stats := snapshot.Update(seenJobs, inputJobs)
	if err := snapshot.Save(c.Out, mergedJobs); err != nil {
		return fmt.Errorf("write --out: %w", err)
	}

	if c.Stats {
		_, err := fmt.Fprintf(
			ctx.Out,
			"total_seen=%d total_input=%d invalid_skipped=%d added=%d total_out=%d\n",
			stats.TotalSeen,
			stats.TotalInput,
			stats.InvalidSkipped(),
			stats.Added,
			stats.TotalOut,
		)
		return err
	}

	return nil
}
