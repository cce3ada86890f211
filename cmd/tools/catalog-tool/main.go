// cmd/tools/catalog-tool/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"grocery-assistant/internal/catalog"
	"grocery-assistant/internal/common/config"
	"grocery-assistant/internal/common/database"
	"grocery-assistant/internal/common/logger"
	"grocery-assistant/internal/models"
	"grocery-assistant/internal/search"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	indexCmd := flag.NewFlagSet("index", flag.ExitOnError)

	exportPath := exportCmd.String("path", "configs/catalog.json", "Path to write the built-in catalog to")
	exportVersion := exportCmd.String("version", "1.0.0", "Catalog version")

	addPath := addCmd.String("path", "configs/catalog.json", "Path to catalog file")
	addName := addCmd.String("name", "", "Item name (e.g., paneer)")
	addPrice := addCmd.Int("price", 0, "Price in INR")
	addCategory := addCmd.String("category", "", "Category (guessed when empty)")
	addSeasonal := addCmd.String("seasonal", "", "Comma separated months 1-12 the item is in season")

	validatePath := validateCmd.String("path", "configs/catalog.json", "Path to catalog file")

	indexPath := indexCmd.String("path", "", "Catalog file to index (built-in catalog when empty)")
	indexAddress := indexCmd.String("address", "http://localhost:9200", "Elasticsearch address")
	indexName := indexCmd.String("index", "catalog", "Index name")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		err = catalog.WriteFile(catalog.Default().ToFile(*exportVersion), *exportPath)
		if err == nil {
			fmt.Printf("Exported built-in catalog to %s\n", *exportPath)
		}

	case "add":
		addCmd.Parse(os.Args[2:])
		if *addName == "" || *addPrice <= 0 {
			fmt.Println("Error: name and a positive price are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		err = addItem(*addPath, *addName, *addPrice, *addCategory, *addSeasonal)
		if err == nil {
			fmt.Printf("Added item: %s\n", *addName)
		}

	case "validate":
		validateCmd.Parse(os.Args[2:])
		var cat *catalog.Catalog
		if cat, err = catalog.LoadFromFile(*validatePath); err == nil {
			fmt.Printf("Catalog validation passed. Found %d items.\n", cat.Len())
		}

	case "index":
		indexCmd.Parse(os.Args[2:])
		err = indexCatalog(*indexPath, *indexAddress, *indexName)

	case "help":
		help()
		return

	default:
		help()
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func addItem(path, name string, price int, category, seasonal string) error {
	f, err := catalog.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		f = &catalog.File{Version: "1.0.0"}
	}

	entry := models.CatalogEntry{Name: name, Price: price, Category: category}
	if entry.Seasonal, err = parseMonths(seasonal); err != nil {
		return err
	}
	if err := f.Add(entry); err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return err
	}
	return catalog.WriteFile(f, path)
}

func parseMonths(s string) ([]time.Month, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var months []time.Month
	for _, part := range strings.Split(s, ",") {
		m, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || m < 1 || m > 12 {
			return nil, fmt.Errorf("invalid month %q", part)
		}
		months = append(months, time.Month(m))
	}
	return months, nil
}

func indexCatalog(path, address, index string) error {
	cat := catalog.Default()
	if path != "" {
		var err error
		if cat, err = catalog.LoadFromFile(path); err != nil {
			return err
		}
	}

	es, err := database.NewElasticsearch(config.ElasticsearchConfig{Addresses: []string{address}, Index: index})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := es.Ping(ctx); err != nil {
		return err
	}

	idx := search.NewIndex(es.Client, es.Index, 10*time.Second, logger.NewStructured("info", "console", "stderr"))
	if err := idx.IndexCatalog(ctx, cat); err != nil {
		return err
	}
	fmt.Printf("Indexed %d items into %s\n", cat.Len(), es.Index)
	return nil
}

func help() {
	fmt.Print(`
Usage: catalog-tool <command> [flags]

Commands:
  export    Write the built-in catalog to a file
  add       Add an item to a catalog file
  validate  Validate a catalog file
  index     Bulk index a catalog into Elasticsearch
  help      Show this help message

Examples:
  catalog-tool export -path configs/catalog.json
  catalog-tool add -path configs/catalog.json -name paneer -price 90
  catalog-tool add -path configs/catalog.json -name mango -price 120 -seasonal 4,5,6,7
  catalog-tool validate -path configs/catalog.json
  catalog-tool index -address http://localhost:9200 -index catalog

Use 'catalog-tool <command> -h' for more information about a command.
` + "\n")
}
