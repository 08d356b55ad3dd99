// Command policies-to-json writes web_demo/policies.json, the catalog of
// trained policies found under policy_models/.
//
// Run without flags from the project root it behaves like the original
// one-shot script, except that every level of the catalog is sorted and a
// seed without name.txt gets an empty name.
package main

import (
	"github.com/shinji-kodama/webdemo-index/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewPoliciesToJSONCommand())
}
