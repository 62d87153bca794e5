package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nl2sql/internal/engine"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate INSERT statements with fake data for the compiled schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := viper.GetInt("sample.rows")
		if cmd.Flags().Changed("rows") {
			rows, _ = cmd.Flags().GetInt("rows")
		}
		if rows <= 0 {
			return fmt.Errorf("rows must be positive, got %d", rows)
		}
		seed := viper.GetInt64("sample.seed")
		if cmd.Flags().Changed("seed") {
			seed, _ = cmd.Flags().GetInt64("seed")
		}
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		res, err := compileFromFlags(cmd, viper.GetBool("compile.strict"))
		if err != nil {
			return err
		}

		log.Printf("Generating %d rows per table (seed %d)...", rows, seed)
		script, results := engine.SampleScript(res.Tables, rows, engine.NewGenerator(seed, time.Now()))

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			fmt.Fprint(cmd.OutOrStdout(), script)
		} else {
			if err := writeScript(out, script); err != nil {
				return err
			}
			fmt.Printf("Sample data generated → %s\n", out)
		}

		for i, r := range results {
			icon := "✓"
			if r.Actual < r.Target {
				icon = "!"
			}
			log.Printf("[%s] [%02d/%02d] %-20s : %d rows (Target: %d)", icon, i+1, len(results), r.TableName, r.Actual, r.Target)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(sampleCmd)

	addMetadataFlags(sampleCmd)
	sampleCmd.Flags().Int("rows", 0, "rows per table (default sample.rows)")
	sampleCmd.Flags().Int64("seed", 0, "random seed; 0 picks one from the clock (default sample.seed)")
	sampleCmd.Flags().StringP("output", "o", "", "write the script to this file instead of stdout")
}
