package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-pagebuilder/cmd/pagebuilder/internal/bootstrap"
	pagescmd "github.com/goliatone/go-pagebuilder/internal/commands/pages"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/internal/personalization"
	"github.com/goliatone/go-pagebuilder/internal/validation"
	"github.com/goliatone/go-pagebuilder/schema"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	dir        string
	verbose    bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "pagebuilder",
		Short: "Edit and preview personalized landing pages",
		Long: `Manage landing pages assembled from typed components.

Pages are stored as JSON documents. Components carry base fields plus named
variants that override a subset of them for one audience segment.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.dir, "dir", "", "Page directory; selects file storage and overrides the config")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newTypesCommand(opts),
		newListCommand(opts),
		newShowCommand(opts),
		newCreateCommand(opts),
		newAddCommand(opts),
		newEditCommand(opts),
		newMoveCommand(opts),
		newRemoveCommand(opts),
		newValidateCommand(opts),
	)
	return root
}

type moduleRunner func(ctx context.Context, cmd *cobra.Command, module *bootstrap.Module, args []string) error

func withModule(opts *rootOptions, run moduleRunner) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		module, err := moduleBuilder(bootstrap.Options{
			ConfigPath: opts.configPath,
			Dir:        opts.dir,
			Verbose:    opts.verbose,
		})
		if err != nil {
			return err
		}
		defer module.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return run(ctx, cmd, module, args)
	}
}

func newTypesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List registered component types",
		Args:  cobra.NoArgs,
		RunE: withModule(opts, func(_ context.Context, cmd *cobra.Command, module *bootstrap.Module, _ []string) error {
			reg := module.Module.Registry()
			out := cmd.OutOrStdout()
			for _, typ := range reg.ListTypes() {
				meta, ok := reg.GetMetadata(typ)
				if !ok {
					continue
				}
				fmt.Fprintf(out, "%-20s %-14s %s\n", typ, meta.Category, meta.Name)
			}
			return nil
		}),
	}
}

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored pages",
		Args:  cobra.NoArgs,
		RunE: withModule(opts, func(ctx context.Context, cmd *cobra.Command, module *bootstrap.Module, _ []string) error {
			slugs, err := module.Module.Pages().List(ctx)
			if err != nil {
				return err
			}
			for _, slug := range slugs {
				fmt.Fprintln(cmd.OutOrStdout(), slug)
			}
			return nil
		}),
	}
}

func newShowCommand(opts *rootOptions) *cobra.Command {
	var segment, locale string
	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Print a page resolved for an audience segment and locale",
		Args:  cobra.ExactArgs(1),
		RunE: withModule(opts, func(ctx context.Context, cmd *cobra.Command, module *bootstrap.Module, args []string) error {
			cfg := module.Module.Config()
			values := url.Values{}
			if segment = strings.TrimSpace(segment); segment != "" {
				values.Set(cfg.Editing.SegmentParam, segment)
			}
			audience := personalization.ContextFromQuery(values, cfg.Editing.SegmentParam)
			if strings.TrimSpace(locale) == "" {
				locale = cfg.DefaultLocale
			}

			view, err := module.Module.Pages().Resolve(ctx, args[0], audience, schema.Locale(locale))
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(view)
		}),
	}
	cmd.Flags().StringVar(&segment, "segment", "", "Audience segment whose variants apply")
	cmd.Flags().StringVar(&locale, "locale", "", "Locale to resolve text for (defaults to the configured default locale)")
	return cmd
}

func newCreateCommand(opts *rootOptions) *cobra.Command {
	var title, description string
	cmd := &cobra.Command{
		Use:   "create <slug>",
		Short: "Create an empty page",
		Args:  cobra.ExactArgs(1),
		RunE: withModule(opts, func(ctx context.Context, cmd *cobra.Command, module *bootstrap.Module, args []string) error {
			msg := pagescmd.CreatePageCommand{Slug: args[0], Title: title, Description: description}
			if err := dispatcher.Dispatch(ctx, msg); err != nil {
				return err
			}
			key, err := pages.NormalizeSlug(args[0])
			if err != nil {
				return err
			}
			doc, err := module.Module.Pages().Get(ctx, key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", doc.Slug)
			return nil
		}),
	}
	cmd.Flags().StringVar(&title, "title", "", "Page title")
	cmd.Flags().StringVar(&description, "description", "", "Page description")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newAddCommand(opts *rootOptions) *cobra.Command {
	var position int
	cmd := &cobra.Command{
		Use:   "add <slug> <type>",
		Short: "Insert a component with default content",
		Args:  cobra.ExactArgs(2),
		RunE: withModule(opts, func(ctx context.Context, cmd *cobra.Command, module *bootstrap.Module, args []string) error {
			msg := pagescmd.InsertComponentCommand{Slug: args[0], ComponentType: args[1], Position: position}
			if err := dispatcher.Dispatch(ctx, msg); err != nil {
				return err
			}
			doc, err := module.Module.Pages().Get(ctx, args[0])
			if err != nil {
				return err
			}
			index := position
			if index < 0 || index >= len(doc.Components) {
				index = len(doc.Components) - 1
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", doc.Components[index].ID)
			return nil
		}),
	}
	cmd.Flags().IntVar(&position, "position", -1, "Render position; -1 appends")
	return cmd
}

func newEditCommand(opts *rootOptions) *cobra.Command {
	var variant, locale string
	cmd := &cobra.Command{
		Use:   "edit <slug> <component> <field> <text>",
		Short: "Replace the text of one field, on the base record or a variant",
		Args:  cobra.ExactArgs(4),
		RunE: withModule(opts, func(ctx context.Context, cmd *cobra.Command, _ *bootstrap.Module, args []string) error {
			msg := pagescmd.UpdateTextCommand{
				Slug:        args[0],
				ComponentID: args[1],
				Field:       args[2],
				Text:        args[3],
				Variant:     variant,
				Locale:      locale,
			}
			if err := dispatcher.Dispatch(ctx, msg); err != nil {
				return err
			}
			target := "base"
			if v := strings.TrimSpace(variant); v != "" {
				target = "variant " + v
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s.%s (%s)\n", args[1], args[2], target)
			return nil
		}),
	}
	cmd.Flags().StringVar(&variant, "variant", "", "Variant to edit; empty edits the base record")
	cmd.Flags().StringVar(&locale, "locale", "", "Locale to write (defaults to the fallback locale)")
	return cmd
}

func newMoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "move <slug> <component> <position>",
		Short: "Move a component to a new render position",
		Args:  cobra.ExactArgs(3),
		RunE: withModule(opts, func(ctx context.Context, cmd *cobra.Command, _ *bootstrap.Module, args []string) error {
			position, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("position must be an integer: %w", err)
			}
			msg := pagescmd.MoveComponentCommand{Slug: args[0], ComponentID: args[1], Position: position}
			if err := dispatcher.Dispatch(ctx, msg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "moved %s to %d\n", args[1], position)
			return nil
		}),
	}
}

func newRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <slug> <component>",
		Short: "Remove a component from a page",
		Args:  cobra.ExactArgs(2),
		RunE: withModule(opts, func(ctx context.Context, cmd *cobra.Command, _ *bootstrap.Module, args []string) error {
			msg := pagescmd.RemoveComponentCommand{Slug: args[0], ComponentID: args[1]}
			if err := dispatcher.Dispatch(ctx, msg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[1])
			return nil
		}),
	}
}

func newValidateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <slug>",
		Short: "Check a stored page against the component schemas",
		Args:  cobra.ExactArgs(1),
		RunE: withModule(opts, func(ctx context.Context, cmd *cobra.Command, module *bootstrap.Module, args []string) error {
			doc, err := module.Module.Container().Store().GetPage(ctx, args[0])
			if err != nil {
				return err
			}
			validator := module.Module.Validator()
			if validator == nil {
				validator = validation.NewValidator(module.Module.Registry())
			}
			if err := validator.ValidateDocument(doc); err != nil {
				out := cmd.OutOrStdout()
				for _, issue := range validation.Issues(err) {
					if issue.Location != "" {
						fmt.Fprintf(out, "%s: %s\n", issue.Location, issue.Message)
						continue
					}
					fmt.Fprintln(out, issue.Message)
				}
				return fmt.Errorf("page %s is invalid", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s ok (%d components)\n", args[0], len(doc.Components))
			return nil
		}),
	}
}
