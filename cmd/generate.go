package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile the metadata CSVs into a SQL Server DDL script",
	RunE: func(cmd *cobra.Command, args []string) error {
		strict := viper.GetBool("compile.strict")
		if cmd.Flags().Changed("strict") {
			strict, _ = cmd.Flags().GetBool("strict")
		}

		res, err := compileFromFlags(cmd, strict)
		if err != nil {
			return err
		}

		script := res.Script()
		fmt.Fprintln(cmd.OutOrStdout(), script)

		outFile := viper.GetString("output.file")
		if v, _ := cmd.Flags().GetString("output"); v != "" {
			outFile = v
		}
		if err := writeScript(outFile, script); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Schema generated → %s\n", outFile)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)

	addMetadataFlags(generateCmd)
	generateCmd.Flags().StringP("output", "o", "", "output file (default output.file, generated_schema.sql)")
	generateCmd.Flags().Bool("strict", false, "reject relations with unknown tables/columns and duplicate constraint names")
}

func writeScript(path, script string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
