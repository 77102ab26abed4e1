package admin

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agiantii/bcoj/internal/api"
	"github.com/agiantii/bcoj/internal/cli"
)

func newImageCmd(client *api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Manage images",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image and print its URL",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			imageFile, err := os.Open(args[0])
			cobra.CheckErr(err)
			defer imageFile.Close()

			imageURL, err := client.UploadImage(cmd.Context(), filepath.Base(args[0]), imageFile)
			cobra.CheckErr(err)
			cli.UserInput("%s\n", imageURL)
		},
	})
	return cmd
}
