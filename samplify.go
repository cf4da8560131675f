package main

import (
	"os"

	"github.com/mhkc/samplify/samplify_api"
	log "github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:            "samplify",
		Usage:           "Normalize the results of a genomics pipeline into one standardized sample report",
		HideHelpCommand: true,
		Version:         "0.1.0dev",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "sample",
				Aliases:  []string{"s"},
				Usage:    "Sample manifest (YAML) naming the sample and the result files to parse",
				Required: true,
				Category: "Required",
			},
			&cli.StringFlag{
				Name:     "targets",
				Aliases:  []string{"t"},
				Usage:    "Resistance gene target table (YAML) used to annotate structural variants",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "The location of the output JSON file, defaults to stdout",
				Category: "Optional",
			},
			&cli.BoolFlag{
				Name:     "verbose",
				Usage:    "Enable debug logging",
				Category: "Optional",
			},
		},
		Action: func(Cctx *cli.Context) error {
			log.SetOutput(os.Stderr)
			if Cctx.Bool("verbose") {
				log.SetLevel(log.DebugLevel)
			}

			config, err := samplify_api.ReadSampleConfig(Cctx.String("sample"))
			if err != nil {
				return err
			}

			var targets []samplify_api.GeneTarget
			if Cctx.String("targets") != "" {
				if targets, err = samplify_api.ReadGeneTargets(Cctx.String("targets")); err != nil {
					return err
				}
			}

			result, err := samplify_api.Assemble(config, targets)
			if err != nil {
				return err
			}
			return samplify_api.WriteResult(result, Cctx.String("output"))
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
