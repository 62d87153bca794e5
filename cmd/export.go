package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"nl2sql/internal/metadata"
	"nl2sql/internal/schema"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active database's schema as metadata CSVs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dir, _ := cmd.Flags().GetString("dir")

		config, err := resolveDBConfig()
		if err != nil {
			return err
		}
		conn, err := openDB(ctx, config)
		if err != nil {
			return err
		}
		defer conn.DB.Close()
		fmt.Printf("🦅 Connected to %s\n", conn.Config.Target())

		log.Println("Analyzing schema...")
		tables, err := schema.Analyze(ctx, conn.DB, conn.Dialect, conn.SchemaName)
		if err != nil {
			return err
		}

		set := metadata.FromTables(tables)
		paths := metadata.PathsIn(dir)
		if err := metadata.Write(paths, set); err != nil {
			return err
		}

		fmt.Printf("Exported %d tables, %d fields, %d relations\n", len(set.Tables), len(set.Fields), len(set.Relations))
		for _, p := range []string{paths.Tables, paths.Fields, paths.Relations} {
			fmt.Printf("    └ %s\n", p)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("dir", ".", "directory for the exported CSV files")
}
