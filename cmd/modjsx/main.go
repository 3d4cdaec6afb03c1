package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"modjsx/internal/config"
	"modjsx/internal/crawler"
	"modjsx/internal/engine"
	"modjsx/internal/server"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "modjsx",
		Short: "Split monolithic React files into one component per file",
	}
	configPath string
	dryRun     bool
	outDir     string
	serveAddr  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "modjsx.yaml", "Path to the configuration file")

	splitCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print what would be extracted without writing files")
	splitCmd.Flags().StringVar(&outDir, "out", "", "Components directory name (overrides config)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address to serve the HTTP API on")

	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(serveCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if outDir != "" {
		cfg.Project.ComponentsDir = outDir
		cfg.Project.ImportPrefix = "./" + outDir
	}
	return cfg
}

var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Extract components from a React file into a components directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hostPath := args[0]
		cfg := loadConfig()
		eng := engine.New(cfg)

		result, err := eng.ProcessFile(context.Background(), hostPath)
		if err != nil {
			log.Fatalf("Split failed: %v", err)
		}

		if len(result.Components) == 0 {
			fmt.Println("✅ No extractable components found, file left unchanged.")
			return
		}

		fmt.Printf("📦 Extracted %d components from %s in %v:\n",
			len(result.Components), hostPath, result.ProcessingTime)
		for _, comp := range result.Components {
			fmt.Printf("  - %s (%s)\n", comp.Name, comp.Filename)
		}

		if dryRun {
			fmt.Println("🔍 Dry run, nothing written.")
			return
		}

		if err := eng.WriteResult(hostPath, result); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("✅ Wrote %s and %s/\n", hostPath, cfg.Project.ComponentsDir)
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Report files containing extractable components, without modifying anything",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		cfg := loadConfig()

		fmt.Printf("📂 Scanning %s...\n", root)
		files := 0
		total := 0
		cr := crawler.New(cfg)
		err := cr.Scan(context.Background(), root, func(report crawler.FileReport) {
			files++
			total += len(report.Components)
			fmt.Printf("  %s: %d extractable\n", report.Path, len(report.Components))
			for _, name := range report.Components {
				fmt.Printf("    - %s\n", name)
			}
		})
		if err != nil {
			log.Fatalf("Scan failed: %v", err)
		}
		fmt.Printf("✅ %d components across %d files.\n", total, files)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the modularization HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		srv := server.New(engine.New(cfg))

		fmt.Printf("🚀 Serving on %s (POST /api/modularize)\n", serveAddr)
		if err := srv.ListenAndServe(serveAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	},
}
