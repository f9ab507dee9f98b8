// settlefn is the arena matchmaking settlement function. It runs exactly
// once per container invocation inside the enclave: decode the oracle
// request, draw the settlement randomness, assemble the settle instruction
// and hand the result to the oracle emission channel on stdout. All logging
// goes to stderr; stdout belongs to the channel.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/starforge-games/arena-settle/entropy"
	"github.com/starforge-games/arena-settle/fnrunner"
	"github.com/starforge-games/arena-settle/internal/flags"
	"github.com/starforge-games/arena-settle/params"
	"github.com/starforge-games/arena-settle/settle"
)

// Git SHA1 commit hash of the release (set via linker flags)
var gitCommit = ""
var gitDate = ""

var app *cli.App

var (
	clusterFlag = &cli.StringFlag{
		Name:     "cluster",
		Usage:    "target cluster (devnet, mainnet-beta, localnet)",
		Value:    "devnet",
		EnvVars:  []string{"CLUSTER"},
		Category: flags.FunctionCategory,
	}
	paramsFlag = &cli.StringFlag{
		Name:     "params",
		Usage:    "container params blob, overrides the oracle environment",
		Category: flags.FunctionCategory,
	}
	paramsFileFlag = &cli.StringFlag{
		Name:     "paramsfile",
		Usage:    "file holding the container params blob",
		Category: flags.FunctionCategory,
	}
	entropyDeviceFlag = &cli.StringFlag{
		Name:     "entropy-device",
		Usage:    "enclave-mapped random device node",
		Value:    entropy.DefaultDevicePath,
		Category: flags.EntropyCategory,
	}
	verbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "logging verbosity: 0=error, 1=warn, 2=info, 3=debug",
		Value:    2,
		Category: flags.LoggingCategory,
	}
)

func init() {
	app = flags.NewApp(gitCommit, gitDate, "the arena matchmaking settlement function")
	app.Flags = []cli.Flag{
		clusterFlag,
		paramsFlag,
		paramsFileFlag,
		entropyDeviceFlag,
		verbosityFlag,
	}
	app.Action = run
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	log, err := newLogger(ctx.Int(verbosityFlag.Name))
	if err != nil {
		return err
	}
	defer log.Sync()

	cluster, err := params.ClusterByName(ctx.String(clusterFlag.Name))
	if err != nil {
		return err
	}

	source := entropy.Device{Path: ctx.String(entropyDeviceFlag.Name)}
	runner, err := fnrunner.NewFromEnv(cluster, source)
	if err != nil {
		return err
	}

	raw, err := requestData(ctx)
	if err != nil {
		return err
	}

	settler := settle.New(runner, source, fnrunner.NewOracleEmitter(os.Stdout), log)
	return settler.Run(ctx.Context, raw)
}

// requestData resolves the container params blob: explicit flag, then file,
// then the oracle-populated environment.
func requestData(ctx *cli.Context) ([]byte, error) {
	if blob := ctx.String(paramsFlag.Name); blob != "" {
		return []byte(blob), nil
	}
	if path := ctx.String(paramsFileFlag.Name); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read params file: %w", err)
		}
		return raw, nil
	}
	return fnrunner.RequestDataFromEnv(), nil
}
