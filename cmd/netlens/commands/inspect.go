package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/netlens/graph"
)

// InspectCmd summarises a snapshot
var InspectCmd = &cobra.Command{
	Use:   "inspect <snapshot.json>",
	Short: "Summarise a snapshot",
	Long: `Load a snapshot and show its size, features, components and any
integrity issues found while loading (dangling links, unknown component
members, unresolved neighbour ids).`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var inspectView string

func init() {
	InspectCmd.Flags().StringVar(&inspectView, "view", string(graph.ViewOverview), "View to load the snapshot into (overview, detail)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	_, engine, report, err := openSession(args[0], inspectView)
	if err != nil {
		return err
	}
	d := engine.Dataset()
	stats := d.Stats()
	meta := d.Meta()

	pterm.DefaultHeader.Println(args[0])

	pterm.DefaultSection.Println("Dataset")
	pterm.Info.Printfln("Nodes:      %d (%d visible in baseline)", stats.TotalNodes, stats.VisibleNodes)
	pterm.Info.Printfln("Links:      %d (%d visible in baseline)", stats.TotalLinks, stats.VisibleLinks)
	pterm.Info.Printfln("Components: %d (%d derived)", stats.Components, report.DerivedComponents)
	pterm.Info.Printfln("Rows:       %d (%d active)", stats.Rows, stats.ActiveRows)
	pterm.Info.Printfln("Max degree: %d", meta.MaxDegree)

	if len(meta.Features) > 0 {
		pterm.DefaultSection.Println("Features")
		data := pterm.TableData{{"Feature", "Label", "Nodes", "Color"}}
		for _, f := range meta.Features {
			data = append(data, []string{f.Feature, f.Label, fmt.Sprint(f.Count), f.Color})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
	}

	if comps := d.Components(); len(comps) > 0 {
		pterm.DefaultSection.Println("Components")
		data := pterm.TableData{{"ID", "Nodes", "Entries"}}
		for _, c := range comps {
			data = append(data, []string{c.ID, fmt.Sprint(len(c.Nodes)), fmt.Sprint(len(c.Entries))})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
	}

	if len(report.Issues) == 0 {
		pterm.Success.Println("No integrity issues")
		return nil
	}
	pterm.DefaultSection.Println("Integrity issues")
	for _, issue := range report.Issues {
		pterm.Warning.Printfln("%s: %v", issue.Subcategory, issue)
	}
	return nil
}
