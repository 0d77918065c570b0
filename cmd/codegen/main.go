package main

import (
	"context"
	"fmt"
	"go/format"
	"log"
	"os"
	"time"

	"github.com/delaneyj/reactor/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	genericParamCountKey = "count"
	outputPathKey        = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate typed Computed/Effect combinators for the reactive package",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  genericParamCountKey,
				Usage: "Number of generic parameters to generate",
				Value: 4,
			},
			&cli.StringFlag{
				Name:  outputPathKey,
				Usage: "File to write the combinators to",
				Value: "reactive/combinators.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for reactive combinators started !")
	defer func() {
		log.Printf("Codegen for reactive combinators finished in %v", time.Since(start))
	}()

	count := int(cmd.Uint(genericParamCountKey))
	if count < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", genericParamCountKey, count)
	}
	out := cmd.String(outputPathKey)
	log.Printf("Generating %d combinators into %s", count, out)

	contents := templates.CombinatorsGen(count)
	formatted, err := format.Source([]byte(contents))
	if err != nil {
		return fmt.Errorf("format generated code: %w", err)
	}

	if err := os.WriteFile(out, formatted, 0644); err != nil {
		return err
	}
	return nil
}
