package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/arf3lix/songorder/internal/models"
	"github.com/arf3lix/songorder/internal/shared"
)

// ReceiptRepository implements models.Repository[*models.Receipt].
//
// Receipts are append-mostly: created on successful submission, soft-deleted
// when the user clears history. Updates only exist to satisfy the repository
// contract.
type ReceiptRepository struct {
	db *sql.DB
}

// NewReceiptRepository creates a ReceiptRepository with the given database connection.
func NewReceiptRepository(db *sql.DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

// Create inserts a new [models.Receipt] with a generated id and sequence.
func (r *ReceiptRepository) Create(receipt *models.Receipt) error {
	sequence, err := NextSequence(r.db, "receipts")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	receipt.SetID(shared.GenerateID())
	receipt.SetSequence(sequence)

	if err := receipt.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO receipts (id, sequence, order_temp_id, phone_number, delivery_type, total_songs, price_cents, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		receipt.ID(),
		receipt.Sequence(),
		receipt.OrderTempID(),
		receipt.PhoneNumber(),
		string(receipt.Delivery()),
		receipt.TotalSongs(),
		receipt.PriceCents(),
		receipt.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	return nil
}

// Get retrieves a receipt by id, excluding soft-deleted rows.
func (r *ReceiptRepository) Get(id string) (*models.Receipt, error) {
	query := `
		SELECT id, sequence, order_temp_id, phone_number, delivery_type, total_songs, price_cents, created_at, deleted_at
		FROM receipts
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// Update is not meaningful for receipts; it exists to satisfy the repository contract.
func (r *ReceiptRepository) Update(receipt *models.Receipt) error {
	return fmt.Errorf("receipts are immutable: %w", shared.ErrNotImplemented)
}

// Delete soft-deletes a receipt by id.
func (r *ReceiptRepository) Delete(id string) error {
	res, err := r.db.Exec("UPDATE receipts SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("receipt %s not found", id)
	}

	return nil
}

// List retrieves receipts matching the given criteria. Supported keys:
// "phone_number", "delivery_type". Results are newest-first.
func (r *ReceiptRepository) List(criteria map[string]any) ([]*models.Receipt, error) {
	query := `
		SELECT id, sequence, order_temp_id, phone_number, delivery_type, total_songs, price_cents, created_at, deleted_at
		FROM receipts
		WHERE deleted_at IS NULL
	`
	var args []any

	for _, key := range []string{"phone_number", "delivery_type"} {
		if v, ok := criteria[key]; ok {
			query += fmt.Sprintf(" AND %s = ?", key)
			args = append(args, v)
		}
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}

	return receipts, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func (r *ReceiptRepository) scanOne(row *sql.Row) (*models.Receipt, error) {
	receipt, err := scanReceipt(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("receipt not found")
	}
	return receipt, err
}

func scanReceipt(row scannable) (*models.Receipt, error) {
	var (
		id, orderTempID, phone, delivery string
		sequence, totalSongs             int
		priceCents                       int64
		createdAt                        time.Time
		deletedAt                        *time.Time
	)

	if err := row.Scan(&id, &sequence, &orderTempID, &phone, &delivery, &totalSongs, &priceCents, &createdAt, &deletedAt); err != nil {
		return nil, err
	}

	return models.RestoreReceipt(id, sequence, orderTempID, phone, models.DeliveryType(delivery), totalSongs, priceCents, createdAt, deletedAt), nil
}
