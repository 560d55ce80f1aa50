package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nerdneilsfield/go-doc-humanizer/pkg/providers/ollama"
	"github.com/spf13/cobra"
)

// newListModelsCommand lists the models the Ollama instance can serve.
func newListModelsCommand() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "list-models",
		Short: "List models available on the Ollama instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ollama.DefaultConfig()
			if url != "" {
				cfg.APIEndpoint = url
			}
			cfg.Timeout = 10 * time.Second
			provider := ollama.New(cfg)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			models, err := provider.ListModels(ctx)
			if err != nil {
				return fmt.Errorf("failed to list models: %w", err)
			}
			if len(models) == 0 {
				fmt.Println("no models installed")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Name", "Size", "Modified"})
			for _, m := range models {
				t.AppendRow(table.Row{m.Name, fmt.Sprintf("%.1f GB", float64(m.Size)/1e9), m.ModifiedAt.Format("2006-01-02")})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Ollama API URL (default http://localhost:11434)")
	return cmd
}
