package source

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"crosswarped.com/segdecode"
)

// BigQueryParams names a table with an INT64 `line_number` column and a
// STRING `line` column.
type BigQueryParams struct {
	Project  string
	Table    string
	Location string
	// Limit caps the number of rows read; zero reads all of them.
	Limit int
}

func (p BigQueryParams) query() (string, error) {
	if p.Project == "" {
		return "", fmt.Errorf("bigquery project must not be empty")
	}
	// Table references go into the query text, so keep them to plain identifiers.
	if p.Table == "" || strings.ContainsAny(p.Table, "`;\n ") {
		return "", fmt.Errorf("invalid bigquery table %q", p.Table)
	}
	q := fmt.Sprintf("SELECT line_number, line FROM `%s` ORDER BY line_number", p.Table)
	if p.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", p.Limit)
	}
	return q, nil
}

// FromBigQuery reads puzzle lines from a BigQuery table, ordered by line number.
func FromBigQuery(ctx context.Context, p BigQueryParams) ([]segdecode.Line, error) {
	query, err := p.query()
	if err != nil {
		return nil, err
	}

	client, err := bigquery.NewClient(ctx, p.Project)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	q := client.Query(query)
	q.Location = p.Location
	if q.Location == "" {
		q.Location = "US"
	}

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var lines []segdecode.Line
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}
		line, err := lineFromRow(row)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func lineFromRow(row []bigquery.Value) (segdecode.Line, error) {
	if len(row) != 2 {
		return segdecode.Line{}, fmt.Errorf("row has %d columns, want 2", len(row))
	}
	number, ok := row[0].(int64)
	if !ok {
		return segdecode.Line{}, fmt.Errorf("row[0] is not an int64: %v", row[0])
	}
	text, ok := row[1].(string)
	if !ok {
		return segdecode.Line{}, fmt.Errorf("row[1] is not a string: %v", row[1])
	}
	return segdecode.Line{Number: int(number), Text: strings.TrimSpace(text)}, nil
}
