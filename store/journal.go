package store

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	models "inventory-billing/model"

	"go.uber.org/multierr"
)

// FileJournal appends one comma-separated line per sale. Fields are not
// escaped, so commas inside names shift columns.
type FileJournal struct {
	Path string
}

func NewFileJournal(path string) *FileJournal {
	return &FileJournal{Path: path}
}

func (j *FileJournal) Append(ctx context.Context, entries []models.SalesJournalEntry) (err error) {
	if len(entries) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(j.Path), 0o755); err != nil {
		return err
	}
	fd, err := os.OpenFile(j.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, fd.Close())
	}()

	w := bufio.NewWriter(fd)
	for _, e := range entries {
		if _, err := w.WriteString(FormatJournalLine(e)); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (j *FileJournal) Close() error { return nil }

// FormatJournalLine renders an entry as
// flag,name,email,phone,productId,productName,qty,unitPrice,lineTotal,timestamp.
func FormatJournalLine(e models.SalesJournalEntry) string {
	return fmt.Sprintf("%d,%s,%s,%s,%s,%s,%d,%s,%s,%s\n",
		e.Flag,
		e.Customer.Name, e.Customer.Email, e.Customer.Phone,
		e.ProductID, e.Name,
		e.Quantity,
		e.UnitPrice.String(), e.LineTotal.String(),
		e.Timestamp.Format(time.ANSIC),
	)
}
