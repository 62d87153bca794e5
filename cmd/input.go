package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nl2sql/internal/compiler"
	"nl2sql/internal/metadata"
)

// addMetadataFlags registers the three CSV path flags on a command. Values fall back to
// the input.* config keys when the flag is not given.
func addMetadataFlags(c *cobra.Command) {
	c.Flags().String("tables", "", "tables CSV (default input.tables)")
	c.Flags().String("fields", "", "field descriptions CSV (default input.fields)")
	c.Flags().String("relations", "", "relation keys CSV (default input.relations)")
}

func metadataPaths(c *cobra.Command) metadata.Paths {
	pick := func(flag, key string) string {
		if v, _ := c.Flags().GetString(flag); v != "" {
			return v
		}
		return viper.GetString(key)
	}
	return metadata.Paths{
		Tables:    pick("tables", "input.tables"),
		Fields:    pick("fields", "input.fields"),
		Relations: pick("relations", "input.relations"),
	}
}

// compileFromFlags loads the metadata named by the command's flags and compiles it,
// logging every unmapped type.
func compileFromFlags(c *cobra.Command, strict bool) (*compiler.Result, error) {
	paths := metadataPaths(c)
	set, err := metadata.Load(paths)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d tables, %d fields, %d relations", len(set.Tables), len(set.Fields), len(set.Relations))

	res, err := compiler.Compile(set, compiler.Options{Strict: strict})
	if err != nil {
		return nil, fmt.Errorf("compile failed: %w", err)
	}
	for _, w := range res.Warnings {
		log.Printf("Warning: %s", w)
	}
	return res, nil
}
