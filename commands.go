package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"droppables/core"
	"droppables/db"
	"droppables/dispatch"
	"droppables/dropdata"
	"droppables/host"
	"droppables/layout"
	"droppables/settings"
)

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "droppables",
		Short:         "Drop folders, actors and files onto a virtual tabletop scene",
		Version:       core.VersionInfo(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file to load")

	// open lazily so that help and layout previews need no database
	withApp := func(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, err := openApp(envFile, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.close()
			return run(cmd, a, args)
		}
	}

	root.AddCommand(
		newDropCommand(withApp),
		newLayoutCommand(),
		newSettingsCommand(withApp),
		newHistoryCommand(withApp),
		newDocumentsCommand(withApp),
	)
	return root
}

type appRunner func(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error

func newDropCommand(withApp appRunner) *cobra.Command {
	var (
		layer   string
		tools   []string
		answers    string
		folderData bool
	)
	cmd := &cobra.Command{
		Use:   "drop EVENT_FILE",
		Short: "Dispatch a drop event described in a YAML file",
		Example: `
droppables drop goblins.yaml
droppables drop art.yaml --layer tiles --tool tiles/foreground
droppables drop folder.yaml --answers answers.yaml
droppables drop sidebar-folder.yaml --folder-data`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			ctx := contextOrBackground(cmd.Context())

			ev, err := host.LoadEvent(args[0])
			if err != nil {
				return err
			}

			var dialogs core.Dialogs = host.NewTerminalDialogs(cmd.InOrStdin(), cmd.OutOrStdout())
			if answers != "" {
				script, err := host.LoadDialogScript(answers)
				if err != nil {
					return err
				}
				dialogs = script
			}

			ref := host.New(host.Options{
				Config:    a.config,
				Repo:      a.repo,
				Localizer: a.local,
				Dialogs:   dialogs,
				Out:       cmd.ErrOrStderr(),
				Logger:    a.logger.Named("host"),
				Layer:     layer,
				Tools:     tools,
			})
			if path, ok := a.worldFile(); ok {
				world, err := host.LoadWorldFile(path)
				if err != nil {
					return err
				}
				if err := world.Import(ctx, ref.Documents); err != nil {
					return err
				}
			}

			d := dispatch.Default(dispatch.Config{
				Host:     ref.Core(),
				Settings: a.settings,
				Styles:   a.settings,
				Recorder: a.repo,
				Logger:   a.logger,
				SceneID:  a.config.SceneID,
			})

			var handled bool
			if folderData {
				handled, err = d.DropFolderData(ctx, ev, dropdata.Extract(ev))
			} else {
				handled, err = d.Dispatch(ctx, ev)
			}
			if err != nil {
				return err
			}
			if !handled {
				a.printf("%s\n", color.YellowString("not handled: the host default applies"))
				return &exitError{code: core.ExitCodeNotHandled}
			}
			a.printf("%s\n", color.GreenString("handled"))
			return nil
		}),
	}
	cmd.Flags().StringVar(&layer, "layer", "tokens", "active canvas layer (tokens, tiles, sounds, notes)")
	cmd.Flags().StringSliceVar(&tools, "tool", nil, "toggled control tools, as control/tool")
	cmd.Flags().StringVar(&answers, "answers", "", "YAML file answering dialogs instead of the terminal")
	cmd.Flags().BoolVar(&folderData, "folder-data", false, "treat the event text as folder drag data and drop it onto the token layer")
	return cmd
}

func newLayoutCommand() *cobra.Command {
	var (
		style string
		count int
		x, y  float64
		cell  float64
	)
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Preview the coordinates a drop style produces",
		Example: `
droppables layout --style random --count 9
droppables layout --style horizontalLine --count 4 --x 100 --y 100 --cell 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			points, err := layout.Positions(layout.Style(style), core.Point{X: x, Y: y},
				core.Size{Width: cell, Height: cell}, layout.Uniform(count))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, p := range points {
				fmt.Fprintf(out, "%d\t%g\t%g\n", i+1, p.X, p.Y)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&style, "style", string(layout.StyleRandom), "stack, random, horizontalLine or verticalLine")
	cmd.Flags().IntVar(&count, "count", 9, "number of items")
	cmd.Flags().Float64Var(&x, "x", 0, "origin x")
	cmd.Flags().Float64Var(&y, "y", 0, "origin y")
	cmd.Flags().Float64Var(&cell, "cell", 100, "grid cell size in pixels")
	return cmd
}

func newSettingsCommand(withApp appRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and change client settings",
	}
	cmd.AddCommand(&cobra.Command{
		Use:       "get [KEY]",
		Short:     "Print one or all settings",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: settings.Keys(),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			keys := settings.Keys()
			if len(args) == 1 {
				keys = args
			}
			for _, k := range keys {
				v, err := a.settings.Get(contextOrBackground(cmd.Context()), k)
				if err != nil {
					return err
				}
				a.printf("%s=%s\n", k, v)
			}
			return nil
		}),
	}, &cobra.Command{
		Use:       "set KEY VALUE",
		Short:     "Change a setting",
		Args:      cobra.ExactArgs(2),
		ValidArgs: settings.Keys(),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			return a.settings.Set(contextOrBackground(cmd.Context()), args[0], args[1])
		}),
	})
	return cmd
}

func newHistoryCommand(withApp appRunner) *cobra.Command {
	var (
		limit       int
		correlation string
		pruneDays   int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent drops",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			ctx := contextOrBackground(cmd.Context())
			if pruneDays > 0 {
				res, err := a.database.PruneDropHistory(ctx, pruneDays)
				if err != nil {
					return err
				}
				a.logger.Info("Pruned drop history", zap.Int64("deleted", res.Deleted), zap.Duration("duration", res.Duration))
			}

			recs, err := a.repo.QueryRecentDrops(ctx, limit)
			if correlation != "" {
				recs, err = a.repo.QueryDropsByCorrelationID(ctx, correlation)
			}
			if err != nil {
				return err
			}
			for _, r := range recs {
				status := r.Status
				switch r.Status {
				case db.StatusHandled:
					status = color.GreenString(status)
				case db.StatusError:
					status = color.RedString(status)
				}
				handler := r.Handler
				if handler == "" {
					handler = "-"
				}
				a.printf("%s  %-8s  %-12s  %5dms  %s  %s\n",
					r.CreatedAt.Format(time.DateTime), status, handler, r.DurationMS, r.CorrelationID, r.ErrorMessage)
			}
			return nil
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of drops to show")
	cmd.Flags().StringVar(&correlation, "correlation-id", "", "show the drop with this correlation id")
	cmd.Flags().IntVar(&pruneDays, "prune-days", 0, "first delete drops older than this many days")
	return cmd
}

func newDocumentsCommand(withApp appRunner) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "List the documents created on the configured scene",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			docs, err := a.repo.ListSceneDocuments(contextOrBackground(cmd.Context()), a.config.SceneID, kind)
			if err != nil {
				return err
			}
			for _, d := range docs {
				var body map[string]any
				if err := json.Unmarshal([]byte(d.Data), &body); err != nil {
					a.logger.Warn("Skipping unreadable document", zap.String("id", d.ID), zap.Error(err))
					continue
				}
				delete(body, "id")
				a.printf("%-12s %s %s\n", d.Kind, d.ID, compactJSON(body))
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only this kind (Token, Note, Tile, AmbientSound)")
	return cmd
}

func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSpace(string(data))
}
