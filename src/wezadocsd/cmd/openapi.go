package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OmaR-WezA/weza-docs/src/wezadocsd/cmd/utils"
)

var openapiCmd = &cobra.Command{
	Use:    "openapi",
	Short:  "Produces the OpenAPI specification for the document service",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, specErr := utils.OpenAPISpecJSON()
		if specErr != nil {
			return fmt.Errorf("failed to generate OpenAPI specs: %w", specErr)
		}

		fmt.Println(string(spec))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openapiCmd)
}
