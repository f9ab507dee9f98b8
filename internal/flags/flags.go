package flags

import (
	"github.com/urfave/cli/v2"

	"github.com/starforge-games/arena-settle/params"
)

// NewApp creates an app with sane defaults.
func NewApp(gitCommit, gitDate, usage string) *cli.App {
	app := cli.NewApp()
	app.EnableBashCompletion = true
	app.Version = params.VersionWithCommit(gitCommit, gitDate)
	app.Usage = usage
	app.Copyright = "Copyright 2023-2026 The arena-settle Authors"
	return app
}
