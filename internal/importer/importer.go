// Package importer loads ingredient reference data from CSV.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/mlazarev/foodgram/internal/database"
	fgHttp "github.com/mlazarev/foodgram/internal/http"
)

// ImportIngredients reads "name,measurement_unit" rows from source (a
// local path or an http(s) URL) and bulk-inserts them, skipping pairs
// already present. Returns the number of newly inserted rows.
func ImportIngredients(ctx context.Context, db *database.Database, client *fgHttp.HTTP, source string) (int64, error) {
	reader, err := open(ctx, client, source)
	if err != nil {
		return 0, err
	}
	defer func() { _ = reader.Close() }()

	ingredients, err := ParseCSV(reader)
	if err != nil {
		return 0, err
	}
	if len(ingredients) == 0 {
		return 0, nil
	}

	inserted, err := db.BulkInsertIngredients(ctx, ingredients)
	if err != nil {
		return inserted, fmt.Errorf("inserting ingredients: %w", err)
	}
	return inserted, nil
}

// ParseCSV reads ingredient rows. Rows with fewer than two fields or an
// empty name are skipped rather than failing the whole import.
func ParseCSV(r io.Reader) ([]database.CreateIngredientParams, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1

	var out []database.CreateIngredientParams
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}

		if len(record) < 2 {
			continue
		}
		name := strings.TrimSpace(record[0])
		unit := strings.TrimSpace(record[1])
		if name == "" || unit == "" {
			continue
		}
		out = append(out, database.CreateIngredientParams{
			Name:            name,
			MeasurementUnit: unit,
		})
	}
	return out, nil
}

func open(ctx context.Context, client *fgHttp.HTTP, source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := retryablehttp.NewRequestWithContext(ctx, "GET", source, nil)
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching %q: %w", source, err)
		}
		if err := fgHttp.ExpectStatus2xx(resp); err != nil {
			return nil, err
		}
		return resp.Body, nil
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", source, err)
	}
	return file, nil
}
