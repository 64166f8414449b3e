// Command sysroot-bootstrap builds a minimal Debian/Ubuntu-style sysroot
// from a suite name and target directory.
package main

import (
	"context"
	"errors"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sysroot-tools/sysroot-bootstrap/internal/bootstrap"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log := bootstrap.NewLogger(os.Stdout, os.Stderr)

	var arch string
	var include []string
	var excludeRequired bool

	cmd := &cobra.Command{
		Use:           "sysroot-bootstrap <suite> <target>",
		Short:         "Build a minimal Debian/Ubuntu-style sysroot",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			req := bootstrap.Request{
				Suite:           positional[0],
				Target:          positional[1],
				Arch:            arch,
				Include:         include,
				ExcludeRequired: excludeRequired,
			}
			return bootstrap.Run(context.Background(), req, log)
		},
	}

	cmd.Flags().StringVar(&arch, "arch", runtime.GOARCH, "target architecture")
	cmd.Flags().StringSliceVar(&include, "include", nil, "additional seed package names")
	cmd.Flags().BoolVar(&excludeRequired, "exclude-required", false, "omit the Priority: required base set from seeds")
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		var fatal *bootstrap.FatalError
		if errors.As(err, &fatal) {
			log.Error(fatal.Error())
			return 1
		}
		// cobra's own errors (bad flags, wrong arg count) get the same
		// [!]-prefixed line, followed by the usage text on stderr.
		log.Error(err.Error())
		cmd.Usage()
		return 1
	}
	return 0
}
