package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"isoworld/internal/providers"
	"isoworld/internal/world"
	"isoworld/pkg/hashfield"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			printHelp(os.Stderr)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "seed":
		if len(args) < 2 {
			return fmt.Errorf("%w: seedutil seed <key>", errUsage)
		}
		fmt.Fprintln(out, hashfield.WorldSeed(args[1]))
	case "hash":
		if len(args) < 3 {
			return fmt.Errorf("%w: seedutil hash <label> <seed>", errUsage)
		}
		seed, err := strconv.ParseUint(args[2], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid seed %q: %w", args[2], err)
		}
		fmt.Fprintln(out, hashfield.Hash32(args[1], uint32(seed)))
	case "tile":
		if len(args) < 5 {
			return fmt.Errorf("%w: seedutil tile <provider> <key> <i> <j>", errUsage)
		}
		return describeTile(out, args[1], args[2], args[3], args[4])
	case "providers":
		fmt.Fprintln(out, strings.Join(providers.Names(), "\n"))
	default:
		return errUsage
	}
	return nil
}

func describeTile(out io.Writer, name, key, is, js string) error {
	i, err := strconv.Atoi(is)
	if err != nil {
		return fmt.Errorf("invalid i %q: %w", is, err)
	}
	j, err := strconv.Atoi(js)
	if err != nil {
		return fmt.Errorf("invalid j %q: %w", js, err)
	}

	p, err := providers.New(name)
	if err != nil {
		return err
	}
	defer providers.Release(p)

	d, ok := p.(world.Describer)
	if !ok {
		return fmt.Errorf("provider %s does not describe tiles", name)
	}
	p.Setup()
	p.WorldKeyChanged(key)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(d.DescribeTile(world.TileCoord{I: i, J: j}))
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, `Seed Utility - проверка детерминированной генерации мира
Commands:
  seed <key>                        - сид мира для ключа
  hash <label> <seed>               - Hash32 метки с сидом
  tile <provider> <key> <i> <j>     - описание тайла провайдером (JSON)
  providers                         - список провайдеров`)
}
