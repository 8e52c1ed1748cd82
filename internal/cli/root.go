// Package cli implements the equipctl commands on top of the client-side
// container, list view and form.
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"equipment-tracker/internal/client"
	"equipment-tracker/internal/inventory"
)

const defaultServerURL = "http://localhost:5000"

type options struct {
	serverURL string
	timeout   time.Duration
}

// NewRootCommand builds the equipctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "equipctl",
		Short:         "Manage the equipment inventory from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serverURL := os.Getenv("EQUIPMENT_API_URL")
	if serverURL == "" {
		serverURL = defaultServerURL
	}
	root.PersistentFlags().StringVarP(&opts.serverURL, "server", "s", serverURL, "equipment API base URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-request timeout")

	root.AddCommand(
		newListCommand(opts),
		newAddCommand(opts),
		newEditCommand(opts),
		newDeleteCommand(opts),
	)
	return root
}

func (o *options) container() *inventory.Container {
	api := client.New(o.serverURL).WithHTTPClient(&http.Client{Timeout: o.timeout})
	return inventory.New(api)
}

// banner prints the container's error message the way the UI shows it.
func banner(w io.Writer, c *inventory.Container) {
	if msg := c.Snapshot().Err; msg != "" {
		fmt.Fprintf(w, "Error: %s\n", msg)
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid equipment ID %q", raw)
	}
	return id, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
