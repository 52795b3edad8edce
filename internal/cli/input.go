package cli

import (
	"errors"
	"io"
	"io/fs"

	"github.com/matzehuels/dominochain/pkg/domino"
	errs "github.com/matzehuels/dominochain/pkg/errors"
	pkgio "github.com/matzehuels/dominochain/pkg/io"
	"github.com/matzehuels/dominochain/pkg/pipeline"
)

// input is one tile set read from a file or standard input.
type input struct {
	source  string
	tiles   []domino.Domino
	skipped int
}

// readInputs reads every argument as a tile file. No arguments, or "-",
// reads standard input. Files ending in .json are read as documents.
func readInputs(stdin io.Reader, args []string) ([]input, error) {
	if len(args) == 0 {
		args = []string{stdinSource}
	}

	inputs := make([]input, 0, len(args))
	for _, arg := range args {
		in, err := readInput(stdin, arg)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func readInput(stdin io.Reader, arg string) (input, error) {
	if arg == stdinSource {
		tiles, skipped, err := domino.ReadTiles(stdin)
		if err != nil {
			return input{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "read standard input")
		}
		return input{source: pipeline.DefaultSource, tiles: tiles, skipped: skipped}, nil
	}

	if err := errs.ValidateSourceName(arg); err != nil {
		return input{}, err
	}
	tiles, skipped, err := pkgio.ImportTiles(arg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return input{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "file not found: %s", arg)
		}
		return input{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "read %s", arg)
	}
	return input{source: arg, tiles: tiles, skipped: skipped}, nil
}

// options builds pipeline options for an input from the loaded config.
func (c *CLI) options(in input, f solveFlags) pipeline.Options {
	return pipeline.Options{
		Source:     in.source,
		Tiles:      in.tiles,
		Skipped:    in.skipped,
		SkipFilter: f.skipFilter || c.Config.Solve.SkipFilter,
		MaxTiles:   c.Config.Solve.MaxTiles,
		Timeout:    f.timeoutOr(c.Config.Solve.Timeout.Std()),
		Refresh:    f.refresh,
	}
}
