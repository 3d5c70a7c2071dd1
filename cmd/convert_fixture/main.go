package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"skincat/internal/fixture"
	applog "skincat/internal/log"
)

const (
	defaultIngredientPath = "ingredient-data.json"
	defaultItemPath       = "item-data.json"
	defaultOutputPath     = "fixtures/items-data.json"
)

func main() {
	paths := []string{defaultIngredientPath, defaultItemPath, defaultOutputPath}
	for idx, arg := range os.Args[1:] {
		if idx < len(paths) {
			paths[idx] = arg
		}
	}

	if err := run(context.Background(), paths[0], paths[1], paths[2]); err != nil {
		fmt.Fprintf(os.Stderr, "convert failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, ingredientPath, itemPath, outPath string) error {
	for name, path := range map[string]string{"ingredient": ingredientPath, "item": itemPath, "output": outPath} {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("%s path must not be empty", name)
		}
	}

	f, err := fixture.ConvertFiles(ingredientPath, itemPath, outPath)
	if err != nil {
		return err
	}

	applog.Info(ctx, "fixture written",
		"path", outPath,
		"ingredients", len(f.Ingredients),
		"items", len(f.Items),
	)
	return nil
}
