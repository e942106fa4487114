// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/office2pdf/internal/extract"
)

var imagesCmd = &cobra.Command{
	Use:   "images <file.pptx>",
	Short: "Save the pictures of one presentation",
	Long: `Images saves every picture placed on the slides of a .pptx file as
slide_<n>_img_<m>.<ext>, without converting the document. Pictures go to
<output>/<name>_images/ unless --dir is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runImages,
}

func init() {
	imagesCmd.Flags().String("dir", "", "destination folder (default: <output>/<name>_images)")
	rootCmd.AddCommand(imagesCmd)
}

func runImages(cmd *cobra.Command, args []string) error {
	path := args[0]
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		dir = filepath.Join(viper.GetString("output_dir"), stem+"_images")
	}

	images, err := extract.NewPPTXImageExtractor().ExtractImages(path, dir)
	if err != nil {
		return err
	}
	for _, img := range images {
		fmt.Fprintln(os.Stdout, img)
	}
	fmt.Fprintf(os.Stderr, "%d image(s) saved to %s\n", len(images), dir)
	return nil
}
