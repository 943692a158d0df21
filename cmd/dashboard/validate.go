package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/content-dashboard/internal/schemas"
	rootschemas "github.com/jonathan/content-dashboard/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a saved response against the dashboard schema",
	Long:  "Validate a JSON file, typically a saved /api/data body, against the embedded dashboard response schema or a schema given with --schema.",
	RunE:  runValidate,
}

var (
	validateJSON   string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to the JSON file (required)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON Schema file (default: embedded dashboard schema)")
	_ = validateCmd.MarkFlagRequired("json")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	var err error
	if validateSchema != "" {
		err = schemas.ValidateJSON(validateSchema, validateJSON)
	} else {
		err = schemas.ValidateFile(rootschemas.DashboardResponseFile, rootschemas.DashboardResponse, validateJSON)
	}

	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Validation failed: %s\n%s", validateJSON, verr.Error())
		return fmt.Errorf("%d schema violation(s)", len(verr.Errors))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s\n", validateJSON)
	return nil
}
