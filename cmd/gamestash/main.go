package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gamestash/pkg/config"
	"gamestash/pkg/consoles"
	"gamestash/pkg/estimate"
	"gamestash/pkg/export"
	"gamestash/pkg/inventory"
	"gamestash/pkg/manifest"
	"gamestash/pkg/models"
	"gamestash/pkg/pricecharting"
	"gamestash/pkg/pricecsv"
	"gamestash/pkg/pricing"
	"gamestash/pkg/rates"
	"gamestash/pkg/service"
	"gamestash/pkg/storage"
)

var (
	cfgFile    string
	verbose    bool
	cliFilters filters
)

// app bundles everything a command needs, wired from config.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	store    *inventory.Store
	resolver *rates.Resolver
	catalog  *pricecharting.Client
	updater  *service.Updater
}

func buildApp(cmd *cobra.Command) (*app, error) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gamestash",
		Level:           level,
	})

	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	kv := storage.OpenFile(cfg.DataFile, logger)
	store := inventory.NewStore(kv, logger)
	resolver := rates.NewResolver(kv, logger,
		rates.NewBankOfCanada(cfg.FetchTimeout),
		rates.NewExchangeRateAPI(cfg.FetchTimeout),
	)
	catalog := pricecharting.NewClient(cfg.BaseURL, cfg.APIToken, cfg.FetchTimeout)
	updater := service.NewUpdater(store, resolver, pricing.New(catalog, logger), logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		resolver: resolver,
		catalog:  catalog,
		updater:  updater,
	}, nil
}

var rootCmd = &cobra.Command{
	Use:   "gamestash",
	Short: "Retro game inventory tracker with price-guide lookups",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the collection with current values",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}

		games := cliFilters.apply(app.store.List())

		if asCSV, _ := cmd.Flags().GetBool("csv"); asCSV {
			os.Stdout.Write(export.CSV(games, nil))
			return nil
		}

		p := message.NewPrinter(language.English)
		for _, g := range games {
			change := g.CurrentPrice - g.LastPrice
			p.Printf("%-14s  %-32s x%-3d %-15s $%.2f CAD (%+.2f)\n",
				g.Console, g.Title, g.Quantity, g.Condition, g.CurrentPrice, change)
		}
		p.Printf("\n%d items, total value $%.2f CAD\n",
			app.store.TotalItems(), app.store.TotalValue())
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a game to the collection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}

		consoleName, _ := cmd.Flags().GetString("console")
		title, _ := cmd.Flags().GetString("title")
		quantity, _ := cmd.Flags().GetInt("quantity")
		conditionText, _ := cmd.Flags().GetString("condition")

		condition, err := models.ParseCondition(conditionText)
		if err != nil {
			return err
		}

		game, err := app.store.Add(models.Game{
			Console:   consoleName,
			Title:     title,
			Quantity:  quantity,
			Condition: condition,
		})
		if err != nil {
			return err
		}
		fmt.Printf("added %s (%s) id=%s\n", game.Title, game.Console, game.ID)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a game by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}

		game, ok := app.store.Get(args[0])
		if !ok {
			return fmt.Errorf("no game with id %s", args[0])
		}

		if cmd.Flags().Changed("console") {
			game.Console, _ = cmd.Flags().GetString("console")
		}
		if cmd.Flags().Changed("title") {
			game.Title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("quantity") {
			game.Quantity, _ = cmd.Flags().GetInt("quantity")
		}
		if cmd.Flags().Changed("condition") {
			text, _ := cmd.Flags().GetString("condition")
			game.Condition, err = models.ParseCondition(text)
			if err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("price") {
			game.CurrentPrice, _ = cmd.Flags().GetFloat64("price")
		}

		if err := app.store.Edit(game); err != nil {
			return err
		}
		fmt.Printf("updated %s\n", game.Title)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a game by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		return app.store.Delete(args[0])
	},
}

var fixCmd = &cobra.Command{
	Use:   "fix [title]",
	Short: "Mark a title's price as manually fixed so updates never touch it",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}

		if clear, _ := cmd.Flags().GetBool("clear"); clear {
			app.store.ClearFixed()
			fmt.Println("cleared all manual overrides")
			return nil
		}
		if len(args) != 1 {
			return fmt.Errorf("expected a title (or --clear)")
		}
		app.store.MarkFixed(args[0])
		fmt.Printf("%s is now manually fixed\n", args[0])
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh every price from the price guide",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}

		summary := app.updater.UpdatePrices(cmd.Context())

		fmt.Printf("updated %d games (1 USD = %.4f CAD, %s)\n",
			len(summary.Results), summary.Rate.Rate, summary.Rate.Source)

		for _, e := range summary.Errors {
			fmt.Printf("  %s: %s\n", e.Title, e.Message)
			if e.Reason == models.NoSalesData {
				game, ok := app.store.Get(e.GameID)
				if !ok {
					continue
				}
				est := estimate.ForGame(game.Title, game.Console, game.Condition, summary.Rate.Rate)
				fmt.Printf("    rarity-based estimate: $%.2f CAD (%s, %s confidence), set with "+
					"`gamestash edit %s --price %.2f` then `gamestash fix %q`\n",
					est.PriceCAD, est.Rarity, est.Confidence, game.ID, est.PriceCAD, game.Title)
			}
		}
		return nil
	},
}

var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Show today's USD→CAD exchange rate",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		snapshot := app.resolver.Resolve(cmd.Context())
		fmt.Printf("1 USD = %.6f CAD (source: %s, as of %s)\n",
			snapshot.Rate, snapshot.Source, snapshot.AsOf)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <manifest>",
	Short: "Bulk-add games from a YAML, CSV, or XLS manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}

		games, err := manifest.NewLoader(app.logger).Load(args[0])
		if err != nil {
			return err
		}

		added := 0
		for _, game := range games {
			if _, err := app.store.Add(game); err != nil {
				app.logger.Warn("skipping manifest entry", "title", game.Title, "error", err)
				continue
			}
			added++
		}
		fmt.Printf("imported %d of %d games\n", added, len(games))
		return nil
	},
}

var debugCmd = &cobra.Command{
	Use:   "debug <title> <console> [condition]",
	Short: "Show how a title matches and prices against the guide",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}

		title, consoleName := args[0], args[1]
		condition := models.CartOnly
		if len(args) == 3 {
			condition, err = models.ParseCondition(args[2])
			if err != nil {
				return err
			}
		}

		ctx := cmd.Context()
		snapshot := app.resolver.Resolve(ctx)
		fmt.Printf("1 USD = %.6f CAD (%s)\n", snapshot.Rate, snapshot.Source)

		probe := models.Game{ID: "debug", Console: consoleName, Title: title, Quantity: 1, Condition: condition}
		engine := pricing.New(app.catalog, app.logger)
		results, errs := engine.Reconcile(ctx, []models.Game{probe}, snapshot.Rate)

		if len(results) > 0 {
			pp.Println(results[0])
			return nil
		}
		for _, e := range errs {
			pp.Println(e)
		}

		est := estimate.ForGame(title, consoleName, condition, snapshot.Rate)
		fmt.Printf("rarity-based estimate: $%.2f CAD (%s)\n", est.PriceCAD, est.Rarity)

		// Offer nearby product names so a typo is easy to spot.
		consoleID := consoles.ToID(consoleName)
		text, err := app.catalog.FetchCatalog(ctx, consoleID)
		if err != nil {
			return nil
		}
		words := strings.Fields(strings.ToLower(title))
		if len(words) == 0 {
			return nil
		}
		firstWord := words[0]
		shown := 0
		for _, record := range pricecsv.Parse(text) {
			if shown >= 10 {
				break
			}
			if strings.Contains(strings.ToLower(record.ProductName()), firstWord) {
				fmt.Printf("  similar: %s (loose %s)\n", record.ProductName(), record["loose-price"])
				shown++
			}
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the collection as CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}

		out := export.CSV(app.store.List(), cliFilters.toFilterFunc())
		if len(args) == 0 {
			os.Stdout.Write(out)
			return nil
		}
		if err := os.WriteFile(args[0], out, 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("exported to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	for _, cmd := range []*cobra.Command{listCmd, exportCmd} {
		cmd.Flags().StringVar(&cliFilters.console, "console", "", "Filter by console")
		cmd.Flags().StringVar(&cliFilters.search, "search", "", "Filter by title substring")
		cmd.Flags().StringVar(&cliFilters.condition, "condition", "", "Filter by condition")
		cmd.Flags().Float64Var(&cliFilters.minPrice, "min", 0, "Minimum current price")
		cmd.Flags().Float64Var(&cliFilters.maxPrice, "max", 0, "Maximum current price")
	}

	listCmd.Flags().Bool("csv", false, "Output as CSV")

	addCmd.Flags().String("console", "", "Console name (required)")
	addCmd.Flags().String("title", "", "Game title (required)")
	addCmd.Flags().Int("quantity", 1, "Quantity owned")
	addCmd.Flags().String("condition", string(models.CartOnly), "Condition")
	addCmd.MarkFlagRequired("console")
	addCmd.MarkFlagRequired("title")

	editCmd.Flags().String("console", "", "Console name")
	editCmd.Flags().String("title", "", "Game title")
	editCmd.Flags().Int("quantity", 0, "Quantity owned")
	editCmd.Flags().String("condition", "", "Condition")
	editCmd.Flags().Float64("price", 0, "Current price in CAD")

	fixCmd.Flags().Bool("clear", false, "Clear every manual override")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(debugCmd)
}

func main() {
	// .env carries the PriceCharting token in development.
	gotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
