package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"golang.org/x/exp/slog"

	"github.com/cardhelper/cardforge/generator"
	"github.com/cardhelper/cardforge/internal/authmsg"
	"github.com/cardhelper/cardforge/internal/bindb"
)

var (
	flagBIN      = flag.String("bin", "532959", "BIN prefix to generate from")
	flagCount    = flag.Int("count", 10, "number of cards to generate")
	flagRegistry = flag.String("registry", "", "URL of the JSON BIN registry (optional)")
	flagFormat   = flag.String("format", "plain", "output format: plain|iso8583")
	flagOut      = flag.String("out", "", "write to file instead of stdout")
)

func main() {
	flag.Parse()
	if *flagCount <= 0 {
		fail("-count must be positive")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr))
	var registry *bindb.Registry
	if *flagRegistry != "" {
		registry = bindb.NewRegistry(*flagRegistry, nil, logger)
	}
	svc := generator.NewService(bindb.NewResolver(registry), nil, generator.DefaultConfig())

	out := os.Stdout
	if *flagOut != "" {
		f := must1(os.Create(*flagOut))
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)
	defer w.Flush()

	ctx := context.Background()
	for i := 0; i < *flagCount; i++ {
		card := must1(svc.GenerateCard(ctx, *flagBIN))
		switch *flagFormat {
		case "plain":
			fmt.Fprintln(w, card.Line())
		case "iso8583":
			raw := must1(authmsg.Pack(authmsg.Request{
				PAN:        card.Number,
				ExpiryYYMM: card.ExpiryYYMM(),
				Amount:     100,
				Currency:   "840",
			}))
			fmt.Fprintln(w, hex.EncodeToString(raw))
		default:
			fail("unsupported format: %s", *flagFormat)
		}
	}
}

func must1[T any](v T, err error) T {
	if err != nil {
		fail("%v", err)
	}
	return v
}

func fail(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
