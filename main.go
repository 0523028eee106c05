package main

import (
	"os"

	"github.com/tphakala/video-enrichment-api/cmd"
	"github.com/tphakala/video-enrichment-api/internal/conf"
)

func main() {
	settings := &conf.Settings{}

	if err := cmd.RootCommand(settings).Execute(); err != nil {
		os.Exit(1)
	}
}
