package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/blang/semver/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tilt-dev/simpleserve/internal/iostreams"
)

// Version is the build version. Overridden with ldflags at release
// time.
var Version = "0.1.0-dev"

type VersionOptions struct {
	iostreams.IOStreams
}

func NewVersionOptions() *VersionOptions {
	return &VersionOptions{
		IOStreams: iostreams.IOStreams{Out: os.Stdout, ErrOut: os.Stderr, In: os.Stdin},
	}
}

func (o *VersionOptions) Command() *cobra.Command {
	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version and exit",
		Run:   o.Run,
		Args:  cobra.NoArgs,
	}

	return versionCmd
}

func (o *VersionOptions) Run(cmd *cobra.Command, args []string) {
	err := o.run()
	if err != nil {
		_, _ = fmt.Fprintf(o.ErrOut, "%v\n", err)
		os.Exit(1)
	}
}

func (o *VersionOptions) run() error {
	v, err := semver.ParseTolerant(Version)
	if err != nil {
		return errors.Wrapf(err, "parsing build version %q", Version)
	}
	_, _ = fmt.Fprintf(o.Out, "simpleserve v%s %s/%s\n", v, runtime.GOOS, runtime.GOARCH)
	return nil
}
