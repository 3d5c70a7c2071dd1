package fixture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"skincat/models"
)

const (
	ModelIngredient = "item.ingredient"
	ModelItem       = "item.item"
)

// Record is a single tagged entry of the fixture file.
type Record struct {
	Model  string          `json:"model"`
	Fields json.RawMessage `json:"fields"`
}

// Records flattens the fixture into tagged records, ingredients first.
func (f *Fixture) Records() ([]Record, error) {
	records := make([]Record, 0, len(f.Ingredients)+len(f.Items))
	for _, ingredient := range f.Ingredients {
		fields, err := json.Marshal(ingredient)
		if err != nil {
			return nil, fmt.Errorf("encode ingredient %q: %w", ingredient.Name, err)
		}
		records = append(records, Record{Model: ModelIngredient, Fields: fields})
	}
	for _, item := range f.Items {
		fields, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("encode item %d: %w", item.ID, err)
		}
		records = append(records, Record{Model: ModelItem, Fields: fields})
	}
	return records, nil
}

// Write encodes the fixture as a JSON array of tagged records.
func Write(w io.Writer, f *Fixture) error {
	records, err := f.Records()
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(records)
}

// Read decodes a fixture file written by Write.
func Read(r io.Reader) (*Fixture, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	f := &Fixture{}
	for idx, record := range records {
		switch record.Model {
		case ModelIngredient:
			var ingredient models.Ingredient
			if err := json.Unmarshal(record.Fields, &ingredient); err != nil {
				return nil, fmt.Errorf("record %d: decode ingredient: %w", idx+1, err)
			}
			f.Ingredients = append(f.Ingredients, ingredient)
		case ModelItem:
			var item models.Item
			if err := json.Unmarshal(record.Fields, &item); err != nil {
				return nil, fmt.Errorf("record %d: decode item: %w", idx+1, err)
			}
			f.Items = append(f.Items, item)
		default:
			return nil, fmt.Errorf("record %d: unknown model %q", idx+1, record.Model)
		}
	}
	return f, nil
}

// ReadFile opens and decodes a fixture file.
func ReadFile(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}

// ReadIngredients decodes the raw ingredient table.
func ReadIngredients(r io.Reader) ([]IngredientRecord, error) {
	var records []IngredientRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode ingredient table: %w", err)
	}
	return records, nil
}

// ReadItems decodes the raw item table.
func ReadItems(r io.Reader) ([]ItemRecord, error) {
	var records []ItemRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode item table: %w", err)
	}
	return records, nil
}

// ConvertFiles reads both raw tables, prepares the fixture and writes it to
// outPath, creating the parent directory when needed. The output file is only
// replaced once the whole dataset has been prepared.
func ConvertFiles(ingredientPath, itemPath, outPath string) (*Fixture, error) {
	ingredients, err := readTable(ingredientPath, ReadIngredients)
	if err != nil {
		return nil, err
	}
	items, err := readTable(itemPath, ReadItems)
	if err != nil {
		return nil, err
	}

	f, err := Prepare(ingredients, items)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".fixture-*.json")
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, f); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write fixture: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return nil, fmt.Errorf("replace output: %w", err)
	}
	return f, nil
}

func readTable[T any](path string, decode func(io.Reader) ([]T, error)) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("locate %s: %w", path, err)
		}
		return nil, err
	}
	defer file.Close()

	records, err := decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return records, nil
}
