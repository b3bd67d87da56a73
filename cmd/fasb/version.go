package main

import (
	"github.com/spf13/cobra"

	"github.com/operator-framework/fasb/pkg/output"
	"github.com/operator-framework/fasb/pkg/version"
)

type versionView struct {
	version.Info
}

func (v versionView) Text(output.Palette) string {
	return version.String()
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of fasb",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := version.Get()
			if err != nil {
				return err
			}
			return a.printer.Print(versionView{info})
		},
	}
}
