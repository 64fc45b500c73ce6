package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/restaurant-stars/backend/internal/client"
	"github.com/zhouzirui/restaurant-stars/backend/internal/model/starred"
)

type rootOptions struct {
	Server  string
	Timeout time.Duration
	JSON    bool
}

func defaultServer() string {
	if v := strings.TrimSpace(os.Getenv("STARCTL_SERVER")); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "starctl",
		Short:         "Manage starred restaurants from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.Server, "server", "s", defaultServer(), "API base URL (env STARCTL_SERVER)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 10*time.Second, "Request timeout")
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "Print raw JSON")

	cmd.AddCommand(
		newListCommand(opts),
		newGetCommand(opts),
		newAddCommand(opts),
		newDeleteCommand(opts),
		newCommentCommand(opts),
		newRestaurantsCommand(opts),
	)
	return cmd
}

func (o *rootOptions) client() (*client.Client, error) {
	return client.New(o.Server, client.WithTimeout(o.Timeout))
}

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List starred restaurants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			views, err := c.ListStarred(cmd.Context())
			if err != nil {
				return err
			}
			if opts.JSON {
				return printJSON(cmd.OutOrStdout(), views)
			}
			printViews(cmd.OutOrStdout(), views...)
			return nil
		},
	}
}

func newGetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get ENTRY_ID",
		Short: "Show one starred restaurant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			view, err := c.GetStarred(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.JSON {
				return printJSON(cmd.OutOrStdout(), view)
			}
			printViews(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

func newAddCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add RESTAURANT_ID",
		Short: "Star a catalog restaurant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			view, err := c.Star(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.JSON {
				return printJSON(cmd.OutOrStdout(), view)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "starred %s as %s\n", view.Name, view.ID)
			return nil
		},
	}
}

func newDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ENTRY_ID",
		Aliases: []string{"rm"},
		Short:   "Remove a starred restaurant",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			if err := c.Unstar(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newCommentCommand(opts *rootOptions) *cobra.Command {
	var clearComment bool

	cmd := &cobra.Command{
		Use:   "comment ENTRY_ID [TEXT]",
		Short: "Set or clear the comment of a starred restaurant",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var comment *string
			switch {
			case clearComment && len(args) == 2:
				return fmt.Errorf("--clear cannot be combined with TEXT")
			case !clearComment && len(args) == 1:
				return fmt.Errorf("TEXT is required unless --clear is given")
			case !clearComment:
				comment = &args[1]
			}

			c, err := opts.client()
			if err != nil {
				return err
			}
			if err := c.UpdateComment(cmd.Context(), args[0], comment); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearComment, "clear", false, "Clear the comment (sends null)")
	return cmd
}

func newRestaurantsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restaurants",
		Short: "List the restaurant catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			items, err := c.ListRestaurants(cmd.Context())
			if err != nil {
				return err
			}
			if opts.JSON {
				return printJSON(cmd.OutOrStdout(), items)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCUISINE")
			for _, r := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.Name, r.Cuisine)
			}
			return tw.Flush()
		},
	}
}

func printViews(w io.Writer, views ...starred.View) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRESTAURANT\tCOMMENT")
	for _, v := range views {
		comment := "-"
		if v.Comment != nil {
			comment = *v.Comment
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", v.ID, v.Name, comment)
	}
	tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
