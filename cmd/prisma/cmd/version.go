package cmd

import (
	"runtime"

	"github.com/carlosnayan/bemestar"
	"github.com/carlosnayan/bemestar/cli"
)

var versionCmd = &cli.Command{
	Name:  "version",
	Short: "Mostra a versão do CLI",
	Run: func(args []string) error {
		printf("prisma (bemestar) %s\n", prisma.Version)
		printf("go %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return nil
	},
}
