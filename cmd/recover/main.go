// Command recover dumps ext4 superblock metadata from a disk image or block
// device, without mounting it or touching anything beyond the primary
// superblock and group descriptor table.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/byhowe/recover/backend/file"
	"github.com/byhowe/recover/filesystem/ext4"
	"github.com/byhowe/recover/internal/dump"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	switch cmd := flag.Arg(0); cmd {
	case "dump":
		runDump(flag.Args()[1:])
	default:
		fmt.Fprintf(os.Stderr, "recover: unknown subcommand %q\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: recover dump [-offset N] <path>")
}

func runDump(args []string) {
	fset := flag.NewFlagSet("dump", flag.ExitOnError)
	offset := fset.Int64("offset", 0, "partition offset in bytes")
	fset.Parse(args)

	if fset.NArg() < 1 {
		usage()
		os.Exit(1)
	}
	path := fset.Arg(0)

	// Flags may also follow the path: dump <path> -offset N.
	fset.Parse(fset.Args()[1:])
	if fset.NArg() != 0 {
		usage()
		os.Exit(1)
	}

	storage, err := file.OpenFromPath(path)
	if err != nil {
		logrus.WithError(err).Fatal("could not open image")
	}
	defer storage.Close()

	fs, err := ext4.Open(storage, *offset)
	if err != nil {
		logrus.WithError(err).Fatal("could not decode superblock")
	}

	if sigErr := fs.Superblock.CheckSignature(); sigErr != nil {
		logrus.WithField("magic", fmt.Sprintf("%#x", sigErr.Magic)).
			Warn("bad filesystem signature; this dump may not be accurate")
	}

	if err := dump.Superblock(os.Stdout, fs.Superblock); err != nil {
		logrus.WithError(err).Fatal("could not print superblock")
	}
}
