package cli

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fluvia/pkg/pipeline"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "preview [terrain.json]",
		Short: "Browse a generated land-type map in the terminal",
		Long: `Browse a generated land-type map in the terminal.

The file must be the output of 'generate'. Land is shaded by elevation,
rivers are highlighted and river mouths are marked with '*'. Use --plain
to print the map without the interactive viewer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := readDocument(args[0])
			if err != nil {
				return err
			}
			if plain {
				fmt.Fprint(cmd.OutOrStdout(), landMap(res.Types, res.Rivers))
				return nil
			}
			_, err = tea.NewProgram(NewMapModel(res), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the map as plain text")

	return cmd
}

// readDocument loads the terrain of a generate output file.
func readDocument(path string) (*pipeline.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc pipeline.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	res, err := doc.Terrain.Result()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return res, nil
}
