// Command list-base-envs writes web_demo/base_envs_set.json, the sorted
// list of every entry in web_demo/base_envs_set/.
//
// Run without flags from the project root it behaves like the original
// one-shot script; see --help for the optional overrides.
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

	cli.Execute(cli.NewListBaseEnvsCommand())
}
