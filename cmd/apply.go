package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nl2sql/internal/dialect"
	"nl2sql/internal/engine"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Create the compiled schema in the active database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		scriptFile, _ := cmd.Flags().GetString("script")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		var statements, tableNames []string
		if scriptFile != "" {
			raw, err := os.ReadFile(scriptFile)
			if err != nil {
				return fmt.Errorf("failed to read script: %w", err)
			}
			statements = engine.SplitScript(string(raw))
		} else {
			res, err := compileFromFlags(cmd, viper.GetBool("compile.strict"))
			if err != nil {
				return err
			}
			statements = res.Statements()
			for _, t := range res.Tables {
				tableNames = append(tableNames, t.Name)
			}
		}

		if dryRun {
			log.Println("[SIMULATION] Dry-Run Mode Active: nothing will be executed.")
			for i, stmt := range statements {
				kind := "DDL"
				if engine.IsAddConstraint(stmt) {
					kind = "FK"
				}
				fmt.Printf("[%02d] %s\n%s\n\n", i+1, kind, stmt)
			}
			return nil
		}

		config, err := resolveDBConfig()
		if err != nil {
			return err
		}
		if err := engine.CheckScript(dialect.GetDialect(config.Driver), statements); err != nil {
			return err
		}

		conn, err := openDB(ctx, config)
		if err != nil {
			return err
		}
		defer conn.DB.Close()
		fmt.Printf("🦅 Connected to %s\n", conn.Config.Target())

		log.Printf("Applying %d statements...", len(statements))
		start := time.Now()

		uiprogress.Start()
		bar := uiprogress.AddBar(len(statements)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Applying: "
		})

		res, err := engine.Apply(ctx, conn.DB, conn.Dialect, statements, func() {
			bar.Incr()
		})

		uiprogress.Stop()

		if err != nil {
			return err
		}

		fmt.Println("\n📊 Summary Report:")
		fmt.Printf("Executed: %d, Skipped: %d\n", res.Executed, res.Skipped)
		if res.Skipped > 0 {
			fmt.Printf("    └ %s cannot add foreign keys after CREATE TABLE; constraints were not created\n", conn.Config.Driver)
		}

		if len(tableNames) > 0 {
			checks, err := engine.VerifyTables(ctx, conn.DB, conn.Dialect, conn.SchemaName, tableNames)
			if err != nil {
				return err
			}
			missing := 0
			for i, c := range checks {
				icon := "✓"
				status := "OK (Verified)"
				if !c.Exists {
					icon, status = "!", "MISSING"
					missing++
				}
				fmt.Printf("[%s] [%02d/%02d] %-20s : %s\n", icon, i+1, len(checks), c.Name, status)
			}
			if missing > 0 {
				return fmt.Errorf("%d table(s) not found after apply", missing)
			}
		}
		fmt.Println("--------------------------------------------------")
		log.Printf("Apply Done! Time Elapsed: %s", time.Since(start))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(applyCmd)

	addMetadataFlags(applyCmd)
	applyCmd.Flags().String("script", "", "execute this SQL script instead of compiling the metadata")
	applyCmd.Flags().Bool("dry-run", false, "print the statements without connecting")
}
