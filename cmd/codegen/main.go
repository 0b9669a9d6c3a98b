package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/delaneyj/propcell/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	outDirKey = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the typed interpolators of the property package",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  outDirKey,
				Usage: "Directory of the property package",
				Value: "property",
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
	log.Printf("Codegen for property started !")
	defer func() {
		log.Printf("Codegen for property finished in %v", time.Since(start))
	}()

	kinds := templates.DefaultLerpKinds
	log.Printf("Interpolators: %d", len(kinds))

	contents := templates.LerpGen(kinds)
	out := filepath.Join(cmd.String(outDirKey), "lerp_gen.go")
	if err := os.WriteFile(out, []byte(contents), 0644); err != nil {
		return err
	}
	return nil
}
