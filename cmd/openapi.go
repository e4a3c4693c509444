package cmd

import (
	"os"

	"github.com/nijaru/video-api/docs"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var openapiOutput string

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Write the OpenAPI document",
	Long:  `Write the OpenAPI 3.0 document served at /api/swagger.json to stdout or a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		data, err := docs.New(cfg.Version).JSON()
		if err != nil {
			return errors.Wrap(err, "failed to encode OpenAPI document")
		}
		data = append(data, '\n')

		if openapiOutput == "" || openapiOutput == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		if err := os.WriteFile(openapiOutput, data, 0644); err != nil {
			return errors.Wrapf(err, "failed to write %s", openapiOutput)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openapiCmd)
	openapiCmd.Flags().StringVarP(&openapiOutput, "output", "o", "", "output file (default: stdout)")
}
