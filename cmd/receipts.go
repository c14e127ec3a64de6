package main

import (
	"context"
	"fmt"

	"github.com/arf3lix/songorder/internal/formatter"
	"github.com/arf3lix/songorder/internal/repositories"
	"github.com/arf3lix/songorder/internal/shared"
	"github.com/urfave/cli/v3"
)

// ReceiptsList prints the stored receipt history, newest first.
func (r *Runner) ReceiptsList(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open receipt database (run 'songorder setup database'?): %w", err)
	}
	defer db.Close()

	criteria := map[string]any{}
	if phone := cmd.String("phone"); phone != "" {
		criteria["phone_number"] = phone
	}
	if delivery := cmd.String("delivery"); delivery != "" {
		criteria["delivery_type"] = delivery
	}

	repo := repositories.NewReceiptRepository(db)
	receipts, err := repo.List(criteria)
	if err != nil {
		return err
	}

	if len(receipts) == 0 {
		return r.writePlain("no receipts found\n")
	}

	if cmd.Bool("csv") {
		data, err := formatter.ReceiptsToCSV(receipts)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	}

	for _, receipt := range receipts {
		r.writePlain("%s  %s  %-13s  %3d songs  %8s  %s\n",
			receipt.CreatedAt().Format("2006-01-02 15:04"),
			receipt.OrderTempID(),
			receipt.Delivery(),
			receipt.TotalSongs(),
			formatter.FormatPrice(receipt.PriceCents()),
			receipt.PhoneNumber(),
		)
	}
	return r.writePlain("%d receipts\n", len(receipts))
}
