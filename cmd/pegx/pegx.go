/*
pegx is a console utility parsing files with bundled grammars.
Usage is

	pegx parse [-g <grammar>] [-r <rule>] [-f text|json|yaml|table] [-j <jobs>] [<file> ...]
	pegx check [-g <grammar>] [-r <rule>] <file> ...
	pegx grammar [<grammar>]

parse prints parse trees of the files (standard input when no files or "-" given),
check prints "ok" or a diagnostic for each file, grammar prints grammar rules or lists bundled grammars.

Grammar defaults to the file name extension. Settings are read from the file given with --config,
or from $XDG_CONFIG_HOME/pegx/config.toml, ~/.config/pegx/config.toml, ~/.pegx.toml,
and then from PEGX_* environment variables.
*/
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewCLI().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
