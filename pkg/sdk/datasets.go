package datadex

import (
	"context"
	"fmt"
	"time"

	"github.com/datadex-io/datadex/internal/domain/dataset"
)

// GetDataset fetches one catalog entry by ID.
func (c *Client) GetDataset(ctx context.Context, id string) (_ Dataset, err error) {
	start := time.Now()
	defer func() { c.obs.observe("dataset.get", start, err) }()

	rec, err := c.datasets.Get(ctx, id)
	if err != nil {
		return Dataset{}, fmt.Errorf("datadex: get dataset: %w", err)
	}
	return fromInternalRecord(&rec), nil
}

// UpsertDataset writes a catalog entry. When an embedder is configured, the
// dataset's name and description are vectorized for semantic retrieval.
func (c *Client) UpsertDataset(ctx context.Context, ds Dataset) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("dataset.upsert", start, err) }()

	rec := toInternalRecord(&ds)

	var vector []float32
	if c.embedder != nil {
		text := rec.Name
		if rec.Description != "" {
			text = rec.Name + "\n" + rec.Description
		}
		res, embErr := c.embedder.Embed(ctx, text)
		if embErr != nil {
			err = fmt.Errorf("datadex: embed dataset: %w", embErr)
			return err
		}
		vector = res.Embedding
	}

	if err = c.datasets.Upsert(ctx, &rec, vector); err != nil {
		return fmt.Errorf("datadex: upsert dataset: %w", err)
	}
	return nil
}

// DeleteDataset removes a catalog entry.
func (c *Client) DeleteDataset(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("dataset.delete", start, err) }()

	if err = c.datasets.Delete(ctx, id); err != nil {
		return fmt.Errorf("datadex: delete dataset: %w", err)
	}
	return nil
}

func fromInternalRecord(rec *dataset.Record) Dataset {
	cols := make([]Column, len(rec.Schema.Columns))
	for i, col := range rec.Schema.Columns {
		cols[i] = Column{Name: col.Name, Type: col.Type}
	}
	ifaces := make([]string, len(rec.Interfaces))
	for i, iface := range rec.Interfaces {
		ifaces[i] = iface.Path
	}
	return Dataset{
		ID:                rec.ID,
		Name:              rec.Name,
		Type:              DatasetType(rec.Type),
		BusinessCategory:  rec.BusinessCategory,
		TechnicalCategory: rec.TechnicalCategory,
		KeyFields:         rec.KeyFields,
		Columns:           cols,
		Description:       rec.Description,
		Interfaces:        ifaces,
		Excluded:          rec.Excluded,
	}
}

func toInternalRecord(ds *Dataset) dataset.Record {
	cols := make([]dataset.Column, len(ds.Columns))
	for i, col := range ds.Columns {
		cols[i] = dataset.Column{Name: col.Name, Type: col.Type}
	}
	ifaces := make([]dataset.Interface, len(ds.Interfaces))
	for i, path := range ds.Interfaces {
		ifaces[i] = dataset.Interface{Path: path}
	}
	return dataset.Record{
		ID:                ds.ID,
		Name:              ds.Name,
		Type:              dataset.ParseType(string(ds.Type)),
		BusinessCategory:  ds.BusinessCategory,
		TechnicalCategory: ds.TechnicalCategory,
		KeyFields:         ds.KeyFields,
		Schema:            dataset.Schema{Columns: cols},
		Description:       ds.Description,
		Interfaces:        ifaces,
		Excluded:          ds.Excluded,
	}
}
