package main

import (
	"fmt"
	"io"
	"os"

	"github.com/qatrackplus/qcpump/internal/config"
	"github.com/qatrackplus/qcpump/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func printBuildInfo(w io.Writer) {
	fmt.Fprint(w, models.NewBuildInfo(config.Version, buildVersion, buildDate, buildCommit))
}
