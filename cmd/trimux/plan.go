package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trimux/trimux/internal/discovery"
	"github.com/trimux/trimux/internal/ffmpeg"
	"github.com/trimux/trimux/internal/ffprobe"
	"github.com/trimux/trimux/internal/inventory"
	"github.com/trimux/trimux/internal/rules"
	"github.com/trimux/trimux/internal/util"
)

func newPlanCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the dry-run plan for every file without executing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executePlan(opts)
		},
	}
}

func executePlan(opts *globalOptions) error {
	cfg, err := opts.buildConfig()
	if err != nil {
		return err
	}

	files, err := discovery.FindMediaFiles(cfg.InputDir)
	if err != nil {
		return err
	}

	for _, inputPath := range files {
		filename := util.GetFilename(inputPath)
		fmt.Printf("\nAnalyzing: %s\n", filename)

		inv := probeInventory(inputPath)
		fmt.Println("=== Summary ===")
		fmt.Println(inventory.Summarize(inv))
		fmt.Println()

		plan := rules.Apply(inv, rules.Options{
			SynthesisChannels: cfg.SynthesisChannels,
			SynthesisBitrate:  cfg.SynthesisBitrate,
		})

		if plan.IsNoOp() {
			fmt.Printf("No changes needed for '%s'. Skipping.\n", filename)
			continue
		}

		outputPath := util.OutputArtifactPath(inputPath)
		cmdArgs := ffmpeg.BuildRemuxArgs(inputPath, outputPath, plan)

		fmt.Println("=== ffmpeg command (dry-run) ===")
		fmt.Println(ffmpeg.CommandLine(cmdArgs))
		fmt.Println()
		fmt.Println("=== Command explanation ===")
		fmt.Println(ffmpeg.Explain(plan))
		fmt.Println()
		fmt.Println("=== Resulting streams (dry-run) ===")
		fmt.Println(ffmpeg.SummarizeResulting(inv, plan))
	}

	return nil
}

// probeInventory degrades probe failures to an empty inventory, same as
// the run pipeline.
func probeInventory(path string) inventory.Inventory {
	streams, err := ffprobe.Probe(path)
	if err != nil {
		fmt.Printf("(probe failed: %v)\n", err)
		return inventory.Inventory{}
	}
	return inventory.FromStreams(streams)
}
