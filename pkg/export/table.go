package export

import "fmt"

// Table is the tabular payload handed to renderers. Every row must carry
// one cell per column.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Renderer turns a Table into a downloadable document.
type Renderer interface {
	Render(Table) ([]byte, error)
	ContentType() string
	Extension() string
}

func (t Table) validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("table requires at least one column")
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(t.Columns))
		}
	}
	return nil
}
