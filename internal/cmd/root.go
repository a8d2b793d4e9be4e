package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version  VersionCmd  `cmd:"" help:"Print version."`
	Config   ConfigCmd   `cmd:"" help:"Manage configuration."`
	Run      RunCmd      `cmd:"" help:"Scrape all boards once and update the snapshot."`
	Watch    WatchCmd    `cmd:"" help:"Scrape on a cron schedule."`
	Serve    ServeCmd    `cmd:"" help:"Serve the snapshot as a web dashboard."`
	Jobs     JobsCmd     `cmd:"" help:"Query the snapshot."`
	Snapshot SnapshotCmd `cmd:"" help:"Snapshot file utilities."`
	Proxies  ProxiesCmd  `cmd:"" help:"Proxy utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}
