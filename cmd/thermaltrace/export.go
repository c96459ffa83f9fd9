package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/thermal-trace/internal/adapter/chart"
	"github.com/couchcryptid/thermal-trace/internal/session"
)

var (
	exportOut       string
	exportFormat    string
	exportHighlight int
	exportWidth     int
	exportHeight    int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the trace to an SVG or PNG image",
	Long:  `Render the trace map to an image file. With --highlight the map is zoomed onto that reading, as if it were hovered.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output image path")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "svg or png (default: from --out extension, else svg)")
	exportCmd.Flags().IntVar(&exportHighlight, "highlight", -1, "reading index to highlight")
	exportCmd.Flags().IntVar(&exportWidth, "width", 1024, "image width in pixels")
	exportCmd.Flags().IntVar(&exportHeight, "height", 768, "image height in pixels")
	_ = exportCmd.MarkFlagRequired("out")
}

func runExport(_ *cobra.Command, _ []string) error {
	format, err := chart.ParseFormat(outputFormat(exportFormat, exportOut))
	if err != nil {
		return err
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.close()

	readings, err := a.readings()
	if err != nil {
		return err
	}
	exp := chart.NewExporter(a.theme, exportWidth, exportHeight)
	sess := session.New(exp, a.sessionOptions(), a.logger, a.metrics)
	if err := sess.OnLoad(readings); err != nil {
		return err
	}
	if exportHighlight >= 0 {
		if err := sess.OnHoverMapPoint(exportHighlight); err != nil {
			return err
		}
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", exportOut, err)
	}
	if err := exp.Render(f, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.logger.Info("image exported", "path", exportOut, "format", format)
	return nil
}

// outputFormat prefers an explicit format, then the file extension, then svg.
func outputFormat(explicit, path string) string {
	if explicit != "" {
		return explicit
	}
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		return ext
	}
	return string(chart.SVG)
}
