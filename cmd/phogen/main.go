// Phogen builds a minimal perfect hash table over the tokens of an
// input file and emits a constant-time lookup routine.
//
// Usage:
//
//	phogen -file keywords.txt -name kw_lookup -output kw.c
//
// Flags:
//
//	-file       Input file; tokens separated by runs of newlines/commas (required)
//	-key-type   Token type: string, i32, i64, u32, u64 (default: string)
//	-output     Output source file (default: pho_output.c)
//	-name       Lookup function name (default: <namespace>_lookup)
//	-namespace  Symbol prefix in generated code (default: pho)
//	-fo-hash    First-order hash name (default: murmur3)
//	-so-hash    Second-order hash name (default: xorshift)
//	-lang       Output language, c or py (default: c)
//	-workers    Parallel hashing goroutines during ingestion (default: 1)
//	-verbose    Log dropped items and placement progress
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/phogen/phogen"
	"github.com/phogen/phogen/fohash"
	"github.com/phogen/phogen/gen"
	"github.com/phogen/phogen/sohash"
)

func main() {
	fileFlag := flag.String("file", "", "input token file")
	keyTypeFlag := flag.String("key-type", "string", "token type: string, i32, i64, u32, u64")
	outputFlag := flag.String("output", "pho_output.c", "output source file")
	nameFlag := flag.String("name", "", "lookup function name")
	namespaceFlag := flag.String("namespace", "pho", "symbol prefix in generated code")
	foFlag := flag.String("fo-hash", fohash.DefaultName, "first-order hash: "+strings.Join(fohash.Names(), ", "))
	soFlag := flag.String("so-hash", "xorshift", "second-order hash: "+strings.Join(sohash.Names(), ", "))
	langFlag := flag.String("lang", "c", "output language: c or py")
	workersFlag := flag.Int("workers", 1, "parallel hashing goroutines")
	verboseFlag := flag.Bool("verbose", false, "log dropped items and placement progress")
	flag.Parse()

	if *fileFlag == "" {
		fmt.Fprintln(os.Stderr, "phogen: -file is required")
		flag.Usage()
		os.Exit(2)
	}

	kind, err := phogen.ParseKind(*keyTypeFlag)
	if err != nil {
		fatal(err)
	}

	opts := []phogen.BuildOption{
		phogen.WithFirstOrderHash(*foFlag),
		phogen.WithSecondOrderHash(*soFlag),
		phogen.WithKeyType(kind),
		phogen.WithWorkers(*workersFlag),
	}
	if *verboseFlag {
		opts = append(opts, phogen.WithLogger(log.New(os.Stderr, "phogen: ", log.LstdFlags)))
	}

	start := time.Now()
	p, err := phogen.FromFile(*fileFlag, opts...)
	if err != nil {
		fatal(err)
	}
	elapsed := time.Since(start)

	stats := p.Stats()
	fmt.Printf("perfect hash found in %d ms (%d keys, %d buckets, %d dropped)\n",
		elapsed.Milliseconds(), p.Len(), p.BucketCount(),
		stats.DroppedDuplicates+stats.DroppedCollisions)

	err = writeGenerated(*outputFlag, p, gen.Config{
		Name:      *nameFlag,
		Namespace: *namespaceFlag,
		Language:  *langFlag,
	})
	if err != nil {
		fatal(err)
	}
}

// writeGenerated renders lookup source into path through a temporary
// file, so a generation failure cannot leave a truncated output behind.
func writeGenerated(path string, p *phogen.PHash, cfg gen.Config) error {
	tmp := path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	err = gen.Generate(out, p, cfg)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "phogen: %v\n", err)
	os.Exit(1)
}
