// Package main provides the CLI entrypoint for funtext.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/funtext"
)

const (
	defaultWidth    = 800
	defaultHeight   = 480
	defaultFontSize = 32
)

var (
	configPath string
	debugMode  bool

	renderAt  float64
	renderOut string

	playWidth  int
	playHeight int
	playSize   float64
	playFPS    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "funtext",
		Short:         "Animate text containers letter by letter",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			funtext.SetDebugMode(debugMode)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML or TOML options file")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "print diagnostics to stderr")

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newCSSCmd())
	return rootCmd
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <file.html>",
		Short: "Split and style an HTML document, then print it",
		Args:  cobra.ExactArgs(1),
		RunE:  runRenderCmd,
	}
	cmd.Flags().Float64Var(&renderAt, "at", 0, "advance the document clock by this many seconds before printing")
	cmd.Flags().StringVarP(&renderOut, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <file.html>",
		Short: "Open a window and play the animation",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlayCmd,
	}
	cmd.Flags().IntVar(&playWidth, "width", defaultWidth, "window width")
	cmd.Flags().IntVar(&playHeight, "height", defaultHeight, "window height")
	cmd.Flags().Float64Var(&playSize, "size", defaultFontSize, "font size")
	cmd.Flags().BoolVar(&playFPS, "fps", false, "show an FPS/TPS readout")
	return cmd
}

func newCSSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "css",
		Short: "Print the companion stylesheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), funtext.NewStylesheet(cfg).CSS())
			return err
		},
	}
}

func loadConfig() (funtext.Config, error) {
	cfg := funtext.DefaultConfig()
	if configPath == "" {
		return cfg, nil
	}
	opts, err := funtext.LoadOptionsFile(configPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	return opts.Apply(cfg)
}

// loadDocument parses path and runs the engine over it.
func loadDocument(path string) (*funtext.Document, *funtext.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := funtext.ParseHTML(f)
	if err != nil {
		return nil, nil, err
	}
	engine := funtext.NewEngine(doc, cfg)
	if err := engine.Initialize(); err != nil {
		return nil, nil, err
	}
	return doc, engine, nil
}

func runRenderCmd(cmd *cobra.Command, args []string) error {
	doc, _, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	if renderAt > 0 {
		doc.Update(renderAt)
	}

	var w io.Writer = cmd.OutOrStdout()
	if renderOut != "" {
		f, err := os.Create(renderOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", renderOut, err)
		}
		defer f.Close()
		w = f
	}
	if err := doc.WriteHTML(w); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}

func runPlayCmd(_ *cobra.Command, args []string) error {
	doc, engine, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	defer engine.Teardown()

	face, err := funtext.LoadFace(goregular.TTF, playSize)
	if err != nil {
		return err
	}
	player := &funtext.Player{
		Doc:        doc,
		Sheet:      engine.Stylesheet(),
		Background: funtext.Color{R: 0.08, G: 0.08, B: 0.1, A: 1},
		Options: funtext.DrawOptions{
			Face:  face,
			X:     24,
			Y:     24,
			Width: float64(playWidth) - 48,
		},
	}
	return funtext.Run(player, funtext.RunConfig{
		Title:   "funtext - " + args[0],
		Width:   playWidth,
		Height:  playHeight,
		ShowFPS: playFPS,
	})
}
