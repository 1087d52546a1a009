// Package outbox is the durability-of-last-resort store for bookings whose
// database write failed after a successful payment. Records are appended to a
// per-user JSON file and replayed into the database by the payment service's
// reconciliation pass; until then the dashboard reads them as a supplementary
// source so no paid booking is ever invisible.
package outbox

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Record struct {
	BookingID             uuid.UUID `json:"booking_id"`
	ClerkUserID           string    `json:"clerk_user_id"`
	SessionID             uuid.UUID `json:"session_id"`
	StudentName           string    `json:"student_name"`
	StudentAge            int32     `json:"student_age"`
	ParentEmail           string    `json:"parent_email"`
	ParentPhone           string    `json:"parent_phone,omitempty"`
	EmergencyContact      string    `json:"emergency_contact"`
	EmergencyPhone        string    `json:"emergency_phone"`
	DietaryRestrictions   string    `json:"dietary_restrictions,omitempty"`
	SpecialNeeds          string    `json:"special_needs,omitempty"`
	StripePaymentIntentID string    `json:"stripe_payment_intent_id"`
	TotalAmount           string    `json:"total_amount"`
	CreatedAt             time.Time `json:"created_at"`
	Reconciled            bool      `json:"reconciled"`
}

type Store struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (store *Store) Append(record Record) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return fmt.Errorf("creating outbox directory: %w", err)
	}

	records, err := store.readUserFile(record.ClerkUserID)

	if err != nil {
		return err
	}

	records = append(records, record)

	return store.writeUserFile(record.ClerkUserID, records)
}

// UserRecords returns the pending (not yet reconciled) records for one user.
func (store *Store) UserRecords(clerkUserID string) ([]Record, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	records, err := store.readUserFile(clerkUserID)

	if err != nil {
		return nil, err
	}

	pending := make([]Record, 0, len(records))

	for _, record := range records {
		if !record.Reconciled {
			pending = append(pending, record)
		}
	}

	return pending, nil
}

// Pending returns every unreconciled record across all user files.
func (store *Store) Pending() ([]Record, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entries, err := os.ReadDir(store.dir)

	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading outbox directory: %w", err)
	}

	var pending []Record

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		records, err := store.readUserFile(strings.TrimSuffix(entry.Name(), ".json"))

		if err != nil {
			return nil, err
		}

		for _, record := range records {
			if !record.Reconciled {
				pending = append(pending, record)
			}
		}
	}

	return pending, nil
}

func (store *Store) MarkReconciled(clerkUserID string, paymentIntentID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	records, err := store.readUserFile(clerkUserID)

	if err != nil {
		return err
	}

	updated := false

	for i := range records {
		if records[i].StripePaymentIntentID == paymentIntentID && !records[i].Reconciled {
			records[i].Reconciled = true
			updated = true
		}
	}

	if !updated {
		return nil
	}

	return store.writeUserFile(clerkUserID, records)
}

func (store *Store) readUserFile(clerkUserID string) ([]Record, error) {
	data, err := os.ReadFile(store.userFile(clerkUserID))

	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading outbox file for user %s: %w", clerkUserID, err)
	}

	var records []Record

	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("corrupt outbox file for user %s: %w", clerkUserID, err)
	}

	return records, nil
}

func (store *Store) writeUserFile(clerkUserID string, records []Record) error {
	data, err := json.MarshalIndent(records, "", "  ")

	if err != nil {
		return fmt.Errorf("marshalling outbox records: %w", err)
	}

	return os.WriteFile(store.userFile(clerkUserID), data, 0o644)
}

func (store *Store) userFile(clerkUserID string) string {
	return filepath.Join(store.dir, clerkUserID+".json")
}
