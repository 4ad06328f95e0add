package feedback

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/unmoha/restaurant-customer-order-management/model"
	"github.com/unmoha/restaurant-customer-order-management/store"
)

type IRepo interface {
	Load(ctx context.Context) ([]model.Feedback, error)
	Append(ctx context.Context, fb model.Feedback) error
}

func NewRepo(path string) IRepo {
	return &repo{
		file: store.File{Path: path, Delimiter: store.Semicolon},
	}
}

type repo struct {
	file store.File
}

func (r repo) Load(ctx context.Context) ([]model.Feedback, error) {
	if err := r.file.Touch(); err != nil {
		return nil, err
	}
	rows, err := r.file.ReadRows()
	if err != nil {
		return nil, err
	}

	res := make([]model.Feedback, 0, len(rows))
	for i, row := range rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("%w: %s line %d has %d fields", model.ErrIO, r.file.Path, i+1, len(row))
		}
		orderID, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: bad order id %q", model.ErrIO, r.file.Path, i+1, row[0])
		}
		res = append(res, model.Feedback{
			OrderID:   orderID,
			Timestamp: row[1],
			// an unquoted legacy message may have been split on stray delimiters
			Message: strings.Join(row[2:], ";"),
		})
	}
	return res, nil
}

func (r repo) Append(ctx context.Context, fb model.Feedback) error {
	return r.file.AppendRow([]string{
		strconv.FormatInt(fb.OrderID, 10),
		fb.Timestamp,
		fb.Message,
	})
}
