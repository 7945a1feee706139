// Command squtil inspects and patches the superblock of a squashfs image.
//
//	squtil -i [-le|-be] image
//	squtil -e [-le|-be] image field value
//	squtil -t image srcimage
package main

import (
	"log"
	"os"

	"github.com/ecnx/squtil/internal/cli"
	"github.com/ecnx/squtil/internal/config"
	"github.com/ecnx/squtil/internal/logger"
)

func main() {
	cfg := config.Load()

	log.SetFlags(0)
	log.SetPrefix("squtil: ")
	logger.SetLevel(cfg.LogLevel)

	os.Exit(cli.Run(cfg, os.Args[1:], os.Stdout, os.Stderr))
}
