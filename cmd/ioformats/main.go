package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/suparena/ioregistry"
	"github.com/suparena/ioregistry/dataset"

	// Built-in formats self-register with the default registry.
	_ "github.com/suparena/ioregistry/formats/ddbitem"
	_ "github.com/suparena/ioregistry/formats/yamlfmt"
)

var (
	versionFlag  = flag.Bool("version", false, "Show version information")
	vFlag        = flag.Bool("v", false, "Show version information (short)")
	listFlag     = flag.Bool("list", false, "List registered formats")
	identifyFlag = flag.String("identify", "", "Identify the format of the given file")
	opFlag       = flag.String("op", "read", "Operation to identify for: read or write")
)

func main() {
	// Optional .env configuration, same bootstrap as the other tooling
	_ = godotenv.Load()

	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := ioregistry.GetVersionInfo()
		fmt.Printf("ioformats version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	switch {
	case *listFlag:
		listFormats()
	case *identifyFlag != "":
		identify(*identifyFlag, *opFlag)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func listFormats() {
	rows := ioregistry.Formats(nil, nil)
	if len(rows) == 0 {
		fmt.Println("no formats registered")
		return
	}
	fmt.Print(ioregistry.RenderFormatsTable(ioregistry.OperationRead, rows))
}

func identify(path, op string) {
	operation := ioregistry.Operation(strings.ToLower(op))
	if operation != ioregistry.OperationRead && operation != ioregistry.OperationWrite {
		fmt.Fprintf(os.Stderr, "unknown operation %q, want read or write\n", op)
		os.Exit(2)
	}

	var fileobj io.Reader
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		if f, err := os.Open(path); err == nil {
			fileobj = f
			defer f.Close()
		}
	}

	var args []any
	if fileobj != nil {
		args = []any{fileobj}
	} else {
		args = []any{path}
	}
	formats := ioregistry.IdentifyFormat(nil, operation, dataset.Class, path, fileobj, args)
	if len(formats) == 0 {
		fmt.Println("format could not be identified")
		os.Exit(1)
	}
	fmt.Println(strings.Join(formats, ", "))
}
