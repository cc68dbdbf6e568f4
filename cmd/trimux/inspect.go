package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/trimux/trimux/internal/discovery"
	"github.com/trimux/trimux/internal/inventory"
	"github.com/trimux/trimux/internal/mediainfo"
	"github.com/trimux/trimux/internal/util"
)

func newInspectCommand(opts *globalOptions) *cobra.Command {
	var withMediaInfo bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the stream inventory of every file as a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeInspect(opts, withMediaInfo)
		},
	}
	cmd.Flags().BoolVar(&withMediaInfo, "mediainfo", false, "Include the MediaInfo description")
	return cmd
}

func executeInspect(opts *globalOptions, withMediaInfo bool) error {
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
		fmt.Printf("\n%s\n", filename)

		inv := probeInventory(inputPath)
		if inv.IsEmpty() {
			fmt.Println("  (no streams found)")
			continue
		}

		fmt.Println(renderInventoryTable(inv))

		if withMediaInfo {
			fmt.Println(mediainfo.Describe(inputPath))
		}
	}

	return nil
}

func renderInventoryTable(inv inventory.Inventory) string {
	headers := []string{"Type", "Pos", "Codec", "Channels", "Language", "Extras"}
	aligns := []columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignLeft, alignLeft}

	var rows [][]string
	for _, v := range inv.Video {
		rows = append(rows, []string{
			"video", strconv.Itoa(v.TypePos), v.CodecName, "", "", inventory.ClassifyHDR(v),
		})
	}
	for _, a := range inv.Audio {
		channels := "?"
		if a.HasChannels() {
			channels = strconv.Itoa(a.Channels)
		}
		extras := ""
		switch {
		case a.IsAtmos:
			extras = "Atmos"
		case a.IsDtsX:
			extras = "DTS:X"
		}
		rows = append(rows, []string{
			"audio", strconv.Itoa(a.TypePos), a.CodecName, channels, a.Language, extras,
		})
	}
	for _, s := range inv.Subtitle {
		rows = append(rows, []string{
			"subtitle", strconv.Itoa(s.TypePos), s.CodecName, "", s.Language, "",
		})
	}

	return renderTable(headers, rows, aligns)
}
