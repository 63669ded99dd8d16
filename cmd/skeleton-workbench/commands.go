package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"skeleton-workbench/internal/algorithms/convolution"
	"skeleton-workbench/internal/algorithms/equalization"
	"skeleton-workbench/internal/algorithms/otsu"
	"skeleton-workbench/internal/algorithms/pixelization"
	"skeleton-workbench/internal/algorithms/stretching"
	"skeleton-workbench/internal/processing/histogram"
	"skeleton-workbench/internal/processing/skeleton"
)

// applySettings parses "name=value" pairs into the algorithm's parameters.
func (app *application) applySettings(algorithm string, settings []string) error {
	for _, setting := range settings {
		name, value, ok := strings.Cut(setting, "=")
		if !ok {
			return fmt.Errorf("invalid setting %q: want name=value", setting)
		}
		if err := app.coordinator.Algorithms().SetParameterString(algorithm, strings.TrimSpace(name), value); err != nil {
			return err
		}
	}
	return nil
}

// printDescriptor writes the algorithm's parameters and both serialized
// blocks after uploading them.
func (app *application) printDescriptor(w io.Writer, algorithm string) error {
	full, err := app.coordinator.Submit(algorithm)
	if err != nil {
		return err
	}
	delta, err := app.coordinator.ContinuousSubmit(algorithm)
	if err != nil {
		return err
	}

	params := app.coordinator.Algorithms().GetParameters(algorithm)
	names := lo.Keys(params)
	sort.Strings(names)

	fmt.Fprintf(w, "algorithm: %s\n", algorithm)
	for _, name := range names {
		fmt.Fprintf(w, "  %s = %v\n", name, params[name])
	}
	fmt.Fprintf(w, "submit: %d bytes, continuous submit: %d bytes\n", len(full), len(delta))
	fmt.Fprint(w, hex.Dump(full))
	return nil
}

func (app *application) loadImage(path string) error {
	_, err := app.coordinator.LoadImage(app.cfg.ResolveImage(path))
	return err
}

func newHistogramCommand(app *application) *cobra.Command {
	var channelName string

	cmd := &cobra.Command{
		Use:   "histogram <image>",
		Short: "Print the non-empty histogram buckets of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			channel, err := parseChannel(channelName)
			if err != nil {
				return err
			}
			if err := app.loadImage(args[0]); err != nil {
				return err
			}

			h, err := app.coordinator.Histogram()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			counts := h.Counts(channel)
			cdf := h.Distributant(channel)
			fmt.Fprintf(w, "channel: %s, samples: %d\n", channel, h.SampleCount())
			for level, count := range counts {
				if count > 0 {
					fmt.Fprintf(w, "%3d %8d %.6f\n", level, count, cdf[level])
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&channelName, "channel", "all", "channel: all, r, g or b")
	return cmd
}

func parseChannel(name string) (histogram.Channel, error) {
	for _, ch := range []histogram.Channel{histogram.ChannelAll, histogram.ChannelR, histogram.ChannelG, histogram.ChannelB} {
		if strings.EqualFold(name, ch.String()) {
			return ch, nil
		}
	}
	return 0, fmt.Errorf("unknown channel %q", name)
}

// newPrepareCommand builds a command for an algorithm derived from image
// content.
func newPrepareCommand(app *application, use, short, algorithm string) *cobra.Command {
	var settings []string

	cmd := &cobra.Command{
		Use:   use + " <image>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.loadImage(args[0]); err != nil {
				return err
			}
			if err := app.applySettings(algorithm, settings); err != nil {
				return err
			}
			if err := app.coordinator.Prepare(algorithm); err != nil {
				return err
			}

			if err := app.printSummary(cmd.OutOrStdout(), algorithm); err != nil {
				return err
			}
			return app.printDescriptor(cmd.OutOrStdout(), algorithm)
		},
	}
	cmd.Flags().StringArrayVar(&settings, "set", nil, "parameter override as name=value (repeatable)")
	return cmd
}

func (app *application) printSummary(w io.Writer, algorithm string) error {
	alg, err := app.coordinator.Algorithms().GetAlgorithm(algorithm)
	if err != nil {
		return err
	}

	switch p := alg.(type) {
	case *otsu.Processor:
		fmt.Fprintf(w, "threshold: %.6f (level %.0f)\n", p.Descriptor.Threshold, p.Descriptor.Threshold*255)
	case *equalization.Processor:
		fmt.Fprintf(w, "floor: r=%.6f g=%.6f b=%.6f\n", p.Descriptor.Floor[0], p.Descriptor.Floor[1], p.Descriptor.Floor[2])
	case *stretching.Processor:
		low, high := p.Descriptor.LocalMin, p.Descriptor.LocalMax
		fmt.Fprintf(w, "min: r=%.6f g=%.6f b=%.6f\n", low.R, low.G, low.B)
		fmt.Fprintf(w, "max: r=%.6f g=%.6f b=%.6f\n", high.R, high.G, high.B)
	}
	return nil
}

// newParameterCommand builds a command for an algorithm configured only by
// user parameters.
func newParameterCommand(app *application, use, short, algorithm string) *cobra.Command {
	var settings []string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.applySettings(algorithm, settings); err != nil {
				return err
			}
			return app.printDescriptor(cmd.OutOrStdout(), algorithm)
		},
	}
	cmd.Flags().StringArrayVar(&settings, "set", nil, "parameter override as name=value (repeatable)")
	return cmd
}

func newConvolveCommand(app *application) *cobra.Command {
	var settings []string

	cmd := &cobra.Command{
		Use:   "convolve <kernel>",
		Short: "Load a kernel file into the convolution descriptor",
		Long: "Load a kernel file into the convolution descriptor. The kernel is a path " +
			"or the name of a " + convolution.FilterExtension + " file in the filters directory.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.applySettings(convolution.Name, settings); err != nil {
				return err
			}
			if err := app.coordinator.LoadKernel(convolution.Name, app.resolveFilter(args[0])); err != nil {
				return err
			}

			alg, err := app.coordinator.Algorithms().GetAlgorithm(convolution.Name)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			kernel := alg.(*convolution.Processor).Kernel()
			fmt.Fprintf(w, "kernel radius %d:\n", kernel.Radius)
			for y := 0; y < kernel.Side(); y++ {
				row := make([]string, kernel.Side())
				for x := range row {
					row[x] = fmt.Sprintf("%9.5f", kernel.At(x, y))
				}
				fmt.Fprintln(w, strings.Join(row, " "))
			}
			return app.printDescriptor(w, convolution.Name)
		},
	}
	cmd.Flags().StringArrayVar(&settings, "set", nil, "parameter override as name=value (repeatable)")
	return cmd
}

func (app *application) resolveFilter(arg string) string {
	if _, err := os.Stat(arg); err == nil {
		return arg
	}
	name := arg
	if !strings.EqualFold(filepath.Ext(name), convolution.FilterExtension) {
		name += convolution.FilterExtension
	}
	return filepath.Join(app.cfg.FiltersDir, name)
}

func newPixelizeCommand(app *application) *cobra.Command {
	var settings []string

	cmd := &cobra.Command{
		Use:   "pixelize <image>",
		Short: "Build the pixelization descriptor and its dispatch size for an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.loadImage(args[0]); err != nil {
				return err
			}
			if err := app.applySettings(pixelization.Name, settings); err != nil {
				return err
			}

			alg, err := app.coordinator.Algorithms().GetAlgorithm(pixelization.Name)
			if err != nil {
				return err
			}
			img := app.coordinator.Image()
			x, y := alg.(*pixelization.Processor).DispatchGroups(img.Width, img.Height)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "image: %dx%d, dispatch groups: %dx%d\n", img.Width, img.Height, x, y)
			return app.printDescriptor(w, pixelization.Name)
		},
	}
	cmd.Flags().StringArrayVar(&settings, "set", nil, "parameter override as name=value (repeatable)")
	return cmd
}

func newSkeletonizeCommand(app *application) *cobra.Command {
	var variantName, output string

	cmd := &cobra.Command{
		Use:   "skeletonize <image>",
		Short: "Thin the ink (black) pixels of a binary image to a one-pixel skeleton",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := skeleton.ParseVariant(variantName)
			if err != nil {
				return err
			}
			if err := app.loadImage(args[0]); err != nil {
				return err
			}

			result, err := app.coordinator.Skeletonize(variant)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d passes, %d -> %d pixels (%d removed)\n",
				result.Variant, result.Passes, result.Foreground, result.Skeleton, result.Removed())

			if output == "" {
				return nil
			}
			return app.coordinator.SaveImage(output)
		},
	}
	cmd.Flags().StringVar(&variantName, "variant", skeleton.KMM.String(), "thinning algorithm: kmm or k3m")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the skeleton image here")
	return cmd
}

func newMinutiaeCommand(app *application) *cobra.Command {
	var variantName, output string

	cmd := &cobra.Command{
		Use:   "minutiae <image>",
		Short: "Classify skeleton pixels by crossing number and write the report",
		Long: "Classify skeleton pixels by crossing number, mark them in colour and write " +
			"the per-class counts to the report file. With --variant the image is " +
			"skeletonized first.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.loadImage(args[0]); err != nil {
				return err
			}

			if variantName != "" {
				variant, err := skeleton.ParseVariant(variantName)
				if err != nil {
					return err
				}
				if _, err := app.coordinator.Skeletonize(variant); err != nil {
					return err
				}
			}

			report, err := app.coordinator.ClassifyMinutiae(app.cfg.ReportPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.String())

			if output == "" {
				return nil
			}
			return app.coordinator.SaveImage(output)
		},
	}
	cmd.Flags().StringVar(&variantName, "variant", "", "skeletonize first with kmm or k3m")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the marked image here")
	return cmd
}

func newFiltersCommand(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the kernel files in the filters directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := convolution.ListFilters(app.cfg.FiltersDir)
			if err != nil {
				return err
			}
			for _, f := range filters {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}
