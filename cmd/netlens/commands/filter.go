package commands

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/netlens/errors"
	"github.com/teranos/netlens/graph"
	grapherr "github.com/teranos/netlens/graph/error"
)

// FilterCmd applies one visibility mode to a snapshot
var FilterCmd = &cobra.Command{
	Use:   "filter <snapshot.json>",
	Short: "Apply a visibility mode and print the visible nodes",
	Long: `Load a snapshot, select nodes, apply a visibility mode and print which
nodes stay visible together with the active table rows.

Examples:
  netlens filter graph.json --mode DIRECT --origin alice
  netlens filter graph.json --select a,b --mode UNION
  netlens filter graph.json --select a,b,c --mode INTERSECTION --threshold 2
  netlens filter graph.json --mode DEGREE_FILTER --min 3 --max 10
  netlens filter graph.json --mode CHART_FILTER --property feature --value org
  netlens filter graph.json --mode NEIGHBOURS --origin alice --depth 2 --feature person`,
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

var filterFlags modeFlags

func init() {
	filterFlags.register(FilterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	_, engine, _, err := openSession(args[0], filterFlags.view)
	if err != nil {
		return err
	}

	res, err := filterFlags.apply(engine)
	if err != nil {
		printGraphError(err)
		return fmt.Errorf("mode %s rejected", filterFlags.mode)
	}

	if filterFlags.jsonOutput {
		return writeResultJSON(cmd.OutOrStdout(), engine, res)
	}
	renderResult(engine, res)
	return nil
}

type resultOutput struct {
	View         graph.View  `json:"view"`
	Mode         string      `json:"mode"`
	VisibleNodes []string    `json:"visible_nodes"`
	VisibleLinks int         `json:"visible_links"`
	ActiveRows   []graph.Row `json:"active_rows"`
	Stats        graph.Stats `json:"stats"`
	// Notice describes an empty result for display
	Notice map[string]string `json:"notice,omitempty"`
}

func writeResultJSON(w io.Writer, e *graph.Engine, res graph.Result) error {
	out := resultOutput{
		View:         res.View,
		Mode:         res.Mode.String(),
		VisibleNodes: res.VisibleNodes,
		VisibleLinks: res.VisibleLinks,
		ActiveRows:   e.Dataset().ActiveTableData(),
		Stats:        e.Dataset().Stats(),
	}
	var ge *grapherr.GraphError
	if errors.As(res.Err(), &ge) {
		out.Notice = ge.ToMeta()
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result to JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func renderResult(e *graph.Engine, res graph.Result) {
	d := e.Dataset()
	stats := d.Stats()

	pterm.DefaultSection.Printfln("%s view, mode %s", res.View, res.Mode)
	if res.Empty() {
		var ge *grapherr.GraphError
		if errors.As(res.Err(), &ge) {
			pterm.Warning.Println(ge.ToUIMessage())
		}
		return
	}

	data := pterm.TableData{{"ID", "Label", "Feature", "Component", "Degree", "Selected"}}
	for _, id := range res.VisibleNodes {
		n, ok := d.Node(id)
		if !ok {
			continue
		}
		selected := ""
		if n.Selected {
			selected = "✓"
		}
		data = append(data, []string{n.ID, n.Label, n.Feature, n.Component, fmt.Sprint(n.Degree()), selected})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}

	pterm.Info.Printfln("%d/%d nodes, %d/%d links, %d/%d rows active",
		stats.VisibleNodes, stats.TotalNodes,
		stats.VisibleLinks, stats.TotalLinks,
		stats.ActiveRows, stats.Rows,
	)
}
