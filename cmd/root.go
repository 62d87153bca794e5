package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nl2sql/internal/dialect"
	"nl2sql/internal/metadata"
)

var (
	cfgFile    string
	dsn        string
	driverFlag string
)

var RootCmd = &cobra.Command{
	Use:   "nl2sql",
	Short: "Compile CSV schema metadata into SQL Server DDL",
	Long: `
  _   _ _     ____  ____   ___  _     
 | \ | | |   |___ \/ ___| / _ \| |    
 |  \| | |     __) \___ \| | | | |    
 | |\  | |___ / __/ ___) | |_| | |___ 
 |_| \_|_____|_____|____/ \__\_\_____|
                                      
NL2SQL - Schema Compiler (tables, fields, relations -> CREATE TABLE / FOREIGN KEY)
`,
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./nl2sql.yaml)")
	RootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Database Source Name (DSN)")
	RootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "database/sql driver (sqlserver, mysql, postgres, oracle, sqlite); detected from the DSN when empty")

	viper.BindPFlag("database.dsn", RootCmd.PersistentFlags().Lookup("dsn"))
	viper.BindPFlag("database.driver", RootCmd.PersistentFlags().Lookup("driver"))

	viper.SetDefault("input.tables", metadata.DefaultPaths.Tables)
	viper.SetDefault("input.fields", metadata.DefaultPaths.Fields)
	viper.SetDefault("input.relations", metadata.DefaultPaths.Relations)
	viper.SetDefault("output.file", "generated_schema.sql")
	viper.SetDefault("compile.strict", false)
	viper.SetDefault("sample.rows", 10)
	viper.SetDefault("sample.seed", 0)
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	if err := loadDotEnv(); err != nil {
		log.Printf("Warning: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		if ex, err := os.Executable(); err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}
		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("nl2sql")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.BindEnv("database.dsn", "DATABASE_DSN", "SQL_DB_URI")

	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// loadDotEnv loads .env (or the given files) into the environment. A missing file is
// not an error.
func loadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load .env: %w", err)
}

// connection is an open database plus everything the commands need to talk to it.
type connection struct {
	DB         *sql.DB
	Config     DBConfig
	Dialect    dialect.Dialect
	SchemaName string
}

// openDB connects to the database config describes and resolves its schema name.
func openDB(ctx context.Context, config *DBConfig) (*connection, error) {
	db, err := sql.Open(config.Driver, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	conn := &connection{DB: db, Config: *config, Dialect: dialect.GetDialect(config.Driver)}
	switch config.Driver {
	case "mysql":
		if err := db.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&conn.SchemaName); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to get database name: %w", err)
		}
		if conn.SchemaName == "" {
			db.Close()
			return nil, fmt.Errorf("no database selected in DSN")
		}
	case "oracle":
		if err := db.QueryRowContext(ctx, "SELECT USER FROM DUAL").Scan(&conn.SchemaName); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to get schema name: %w", err)
		}
	default:
		conn.SchemaName = conn.Dialect.GetSchemaName("")
	}

	log.Printf("Using Dialect: %s (schema %s)", config.Driver, conn.SchemaName)
	return conn, nil
}

// resolveDBConfig picks the target database: the active databases[] entry when the
// config has one, otherwise database.dsn and database.driver (flag > config > env).
// An explicit --dsn skips the list. A broken list is an error, never a fallback.
func resolveDBConfig() (*DBConfig, error) {
	if !RootCmd.PersistentFlags().Changed("dsn") {
		active, err := GetActiveDBConfig()
		switch {
		case err == nil:
			if active.Driver == "" {
				active.Driver = dialect.DetectDriver(active.DSN)
			}
			return active, nil
		case !errors.Is(err, ErrNoActiveDatabase):
			return nil, err
		}
	}

	connStr := viper.GetString("database.dsn")
	if connStr == "" {
		return nil, fmt.Errorf("database.dsn is required (via --dsn, config, DATABASE_DSN or SQL_DB_URI)")
	}
	driver := viper.GetString("database.driver")
	if driver == "" {
		driver = dialect.DetectDriver(connStr)
	}
	return &DBConfig{Name: "CLI", Driver: driver, DSN: connStr, Active: true}, nil
}
